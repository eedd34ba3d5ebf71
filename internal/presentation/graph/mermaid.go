package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	"github.com/dkuanyshbaev/ioracle-core/pkg/reaction"
)

// GraphOverlay highlights the trigrams of one reading.
type GraphOverlay struct {
	Reading domain.Hexagram
}

// GenerateMermaid produces a Mermaid flowchart of a reaction table.
// Shapes:
// - Trigram: {{Hexagon}}
// - Pin: [Rectangle]
// - Sound: [/Parallelogram/]
// - Fire: ((Circle))
// Pump-linked edges are dotted and labelled. The overlay marks the lower and
// upper trigram of a reading.
func GenerateMermaid(table map[domain.Trigram]reaction.Reaction, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	trigrams := make([]domain.Trigram, 0, len(table))
	for t := range table {
		trigrams = append(trigrams, t)
	}
	sort.Slice(trigrams, func(i, j int) bool { return trigrams[i] > trigrams[j] })

	declared := make(map[string]bool)
	for _, t := range trigrams {
		row := table[t]
		tid := trigramID(t)
		fmt.Fprintf(&sb, "    %s{{\"%s\"}}\n", tid, t)

		for _, e := range row.Effects {
			eid, shape := effectNode(e)
			if !declared[eid] {
				declared[eid] = true
				fmt.Fprintf(&sb, "    %s%s\n", eid, shape)
			}

			arrow := "-->"
			if row.Pump && e.Kind == domain.EffectActivatePin {
				arrow = "-. pump .->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", tid, arrow, eid)
		}
	}

	if overlay != nil && len(overlay.Reading) == 6 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef lower fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef upper fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		fmt.Fprintf(&sb, "    class %s lower;\n", trigramID(overlay.Reading.Lower()))
		// A reading with equal halves keeps the upper style.
		fmt.Fprintf(&sb, "    class %s upper;\n", trigramID(overlay.Reading.Upper()))
	}

	return sb.String()
}

func trigramID(t domain.Trigram) string {
	return "t" + string(t)
}

func effectNode(e domain.Effect) (id, shape string) {
	switch e.Kind {
	case domain.EffectActivatePin, domain.EffectReleasePin:
		id = "pin_" + string(e.Pin)
		return id, fmt.Sprintf("[\"pin %s\"]", e.Pin)
	case domain.EffectPlaySound:
		id = "sound_" + sanitizeMermaidID(e.Clip)
		return id, fmt.Sprintf("[/\"%s\"/]", e.Clip)
	default:
		return "fire", "((\"fire\"))"
	}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
