package process

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/dkuanyshbaev/ioracle-core/pkg/domain"
)

// Tool names looked up in the registry.
const (
	ToolPinOn  = "pin_on"
	ToolPinOff = "pin_off"
	ToolSound  = "sound"
	ToolFire   = "fire"
	ToolRender = "render"
)

type pinArgs struct {
	Pin string `mapstructure:"pin"`
}

type soundArgs struct {
	Clip string `mapstructure:"clip"`
}

type sceneArgs struct {
	Kind string `mapstructure:"kind"`
}

type lineArgs struct {
	Kind     string `mapstructure:"kind"`
	Position int    `mapstructure:"position"`
	Line     string `mapstructure:"line"`
	Colour   string `mapstructure:"colour"`
	Red      uint8  `mapstructure:"red"`
	Green    uint8  `mapstructure:"green"`
	Blue     uint8  `mapstructure:"blue"`
}

type displayArgs struct {
	Kind    string `mapstructure:"kind"`
	Primary string `mapstructure:"primary"`
	Related string `mapstructure:"related"`
}

// effectCall resolves an effect to a tool name and its arguments.
func effectCall(e domain.Effect) (string, map[string]any, error) {
	switch e.Kind {
	case domain.EffectActivatePin:
		return toArgs(ToolPinOn, pinArgs{Pin: string(e.Pin)})
	case domain.EffectReleasePin:
		return toArgs(ToolPinOff, pinArgs{Pin: string(e.Pin)})
	case domain.EffectPlaySound:
		return toArgs(ToolSound, soundArgs{Clip: e.Clip})
	case domain.EffectTriggerFire:
		return ToolFire, map[string]any{}, nil
	default:
		return "", nil, fmt.Errorf("unknown effect kind %q", e.Kind)
	}
}

// renderCall resolves a render command to the render tool's arguments.
func renderCall(cmd domain.RenderCommand) (string, map[string]any, error) {
	switch cmd.Kind {
	case domain.RenderLine:
		r, g, b := ParseColour(cmd.Colour)
		return toArgs(ToolRender, lineArgs{
			Kind:     string(cmd.Kind),
			Position: cmd.Position,
			Line:     cmd.Line.String(),
			Colour:   cmd.Colour,
			Red:      r,
			Green:    g,
			Blue:     b,
		})
	case domain.RenderDisplay:
		return toArgs(ToolRender, displayArgs{
			Kind:    string(cmd.Kind),
			Primary: string(cmd.Primary),
			Related: string(cmd.Related),
		})
	case domain.RenderClear, domain.RenderResting:
		return toArgs(ToolRender, sceneArgs{Kind: string(cmd.Kind)})
	default:
		return "", nil, fmt.Errorf("unknown render kind %q", cmd.Kind)
	}
}

func toArgs(tool string, in any) (string, map[string]any, error) {
	args := map[string]any{}
	if err := mapstructure.Decode(in, &args); err != nil {
		return "", nil, fmt.Errorf("failed to encode %s args: %w", tool, err)
	}
	return tool, args, nil
}
