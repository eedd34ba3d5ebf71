package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

const (
	yangGlyph = "▅▅▅▅▅▅▅▅▅"
	yinGlyph  = "▅▅▅   ▅▅▅"
)

// NewRenderer returns a function that renders markdown using glamour.
// An empty style picks the style from the terminal background.
func NewRenderer(style string) (func(string) (string, error), error) {
	opt := glamour.WithAutoStyle()
	if style != "" {
		opt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r.Render, nil
}

// ReadingMarkdown draws both hexagrams side by side, top line first.
func ReadingMarkdown(primary, related domain.Hexagram) string {
	var sb strings.Builder
	sb.WriteString("## Reading\n\n")
	fmt.Fprintf(&sb, "| Line | Primary `%s` | Related `%s` |\n", primary, related)
	sb.WriteString("|:---:|:---:|:---:|\n")
	for pos := 6; pos >= 1; pos-- {
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", pos, glyph(primary.Line(pos)), glyph(related.Line(pos)))
	}
	return sb.String()
}

func glyph(l domain.Line) string {
	if l == domain.Yang {
		return yangGlyph
	}
	return yinGlyph
}
