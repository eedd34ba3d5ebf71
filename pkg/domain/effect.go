package domain

import "fmt"

// EffectKind tags the Effect variant.
type EffectKind string

const (
	EffectActivatePin EffectKind = "activate_pin"
	EffectReleasePin  EffectKind = "release_pin"
	EffectPlaySound   EffectKind = "play_sound"
	EffectTriggerFire EffectKind = "trigger_fire"
)

// PinID names an output pin of the installation.
type PinID string

// Pins driven by the reaction table. B, D and E feed the water pumps.
const (
	PinA PinID = "A"
	PinB PinID = "B"
	PinC PinID = "C"
	PinD PinID = "D"
	PinE PinID = "E"
)

// Effect is a physical reaction requested from the Actuator.
// Pin is set for pin effects, Clip for PlaySound.
type Effect struct {
	Kind EffectKind `json:"kind"`
	Pin  PinID      `json:"pin,omitempty"`
	Clip string     `json:"clip,omitempty"`
}

// ActivatePin requests a pin to be switched on.
func ActivatePin(id PinID) Effect {
	return Effect{Kind: EffectActivatePin, Pin: id}
}

// ReleasePin requests a pin to be switched off.
func ReleasePin(id PinID) Effect {
	return Effect{Kind: EffectReleasePin, Pin: id}
}

// PlaySound requests an audio clip.
func PlaySound(clip string) Effect {
	return Effect{Kind: EffectPlaySound, Clip: clip}
}

// TriggerFire requests the fire effect.
func TriggerFire() Effect {
	return Effect{Kind: EffectTriggerFire}
}

// String implements fmt.Stringer.
func (e Effect) String() string {
	switch e.Kind {
	case EffectActivatePin, EffectReleasePin:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Pin)
	case EffectPlaySound:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Clip)
	default:
		return string(e.Kind)
	}
}

// RenderKind defines the LED scene requested from the Actuator.
type RenderKind string

const (
	RenderClear   RenderKind = "clear"   // All LEDs off
	RenderLine    RenderKind = "line"    // One line at Position with Line polarity and Colour
	RenderResting RenderKind = "resting" // Idle animation frame
	RenderDisplay RenderKind = "display" // Result scene for Primary/Related
)

// RenderCommand describes a LED update. Only the fields relevant to Kind are set.
type RenderCommand struct {
	Kind     RenderKind `json:"kind"`
	Position int        `json:"position,omitempty"`
	Line     Line       `json:"line,omitempty"`
	Colour   string     `json:"colour,omitempty"`
	Primary  Hexagram   `json:"primary,omitempty"`
	Related  Hexagram   `json:"related,omitempty"`
}
