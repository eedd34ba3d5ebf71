package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkuanyshbaev/ioracle-core/internal/presentation/graph"
	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	"github.com/dkuanyshbaev/ioracle-core/pkg/reaction"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the trigram reaction table as a Mermaid flowchart",
	RunE: func(cmd *cobra.Command, args []string) error {
		reading, _ := cmd.Flags().GetString("reading")

		var overlay *graph.GraphOverlay
		if reading != "" {
			h, err := domain.ParseHexagram(reading)
			if err != nil {
				return err
			}
			overlay = &graph.GraphOverlay{Reading: h}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(reaction.Table, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("reading", "", "Highlight the trigrams of a primary hexagram, e.g. 110010")
}
