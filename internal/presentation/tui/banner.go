package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the IOracle banner to w, coloured for the terminal's profile.
func PrintBanner(w io.Writer, version string) {
	p := termenv.NewOutput(w).Profile
	rows := []struct {
		text, colour string
	}{
		{"  ___  ___                 _", "#6d28d9"},
		{" |_ _|/ _ \\ _ __ __ _  ___| | ___", "#7c3aed"},
		{"  | || | | | '__/ _` |/ __| |/ _ \\", "#8b5cf6"},
		{"  | || |_| | | | (_| | (__| |  __/", "#a78bfa"},
		{" |___|\\___/|_|  \\__,_|\\___|_|\\___|", "#c4b5fd"},
	}

	fmt.Fprintln(w)
	for _, row := range rows {
		fmt.Fprintln(w, termenv.String(row.text).Foreground(p.Color(row.colour)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
