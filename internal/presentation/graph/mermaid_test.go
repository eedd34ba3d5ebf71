package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkuanyshbaev/ioracle-core/internal/presentation/graph"
	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
	"github.com/dkuanyshbaev/ioracle-core/pkg/reaction"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		table    map[domain.Trigram]reaction.Reaction
		contains []string
		excludes []string
	}{
		{
			name: "Shapes",
			table: map[domain.Trigram]reaction.Reaction{
				"111": {Effects: []domain.Effect{domain.ActivatePin(domain.PinA)}},
				"100": {Effects: []domain.Effect{domain.PlaySound("thunder")}},
				"101": {Effects: []domain.Effect{domain.TriggerFire()}},
			},
			contains: []string{
				`t111{{"111"}}`,
				`pin_A["pin A"]`,
				`sound_thunder[/"thunder"/]`,
				`fire(("fire"))`,
				"t111 --> pin_A",
				"t100 --> sound_thunder",
				"t101 --> fire",
			},
		},
		{
			name: "Pump Edge",
			table: map[domain.Trigram]reaction.Reaction{
				"001": {Effects: []domain.Effect{domain.ActivatePin(domain.PinE), domain.PlaySound("mountain")}, Pump: true},
			},
			contains: []string{
				"t001 -. pump .-> pin_E",
				"t001 --> sound_mountain",
			},
		},
		{
			name: "Shared Effect Declared Once",
			table: map[domain.Trigram]reaction.Reaction{
				"001": {Effects: []domain.Effect{domain.PlaySound("mountain")}},
				"000": {Effects: []domain.Effect{domain.PlaySound("mountain")}},
			},
			contains: []string{
				"t001 --> sound_mountain",
				"t000 --> sound_mountain",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.table, nil)
			assert.True(t, strings.HasPrefix(got, "graph LR\n"))
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			assert.NotContains(t, got, "classDef")
		})
	}
}

func TestGenerateMermaid_SharedDeclaration(t *testing.T) {
	got := graph.GenerateMermaid(map[domain.Trigram]reaction.Reaction{
		"001": {Effects: []domain.Effect{domain.PlaySound("mountain")}},
		"000": {Effects: []domain.Effect{domain.PlaySound("mountain")}},
	}, nil)
	assert.Equal(t, 1, strings.Count(got, `sound_mountain[/"mountain"/]`))
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	got := graph.GenerateMermaid(reaction.Table, &graph.GraphOverlay{Reading: "110010"})

	assert.Contains(t, got, "class t110 lower;")
	assert.Contains(t, got, "class t010 upper;")
	for _, tri := range []string{"111", "110", "101", "011", "100", "010", "001", "000"} {
		assert.Contains(t, got, "t"+tri+`{{"`+tri+`"}}`)
	}
}
