package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineComplement(t *testing.T) {
	assert.Equal(t, Yang, Yin.Complement())
	assert.Equal(t, Yin, Yang.Complement())
}

func TestHexagramParts(t *testing.T) {
	h := NewHexagram(NewTrigram(Yang, Yang, Yin), NewTrigram(Yin, Yang, Yin))
	assert.Equal(t, Hexagram("110010"), h)
	assert.Equal(t, Trigram("110"), h.Lower())
	assert.Equal(t, Trigram("010"), h.Upper())
	assert.Equal(t, Yang, h.Line(1))
	assert.Equal(t, Yin, h.Line(6))
}

func TestParseHexagram(t *testing.T) {
	h, err := ParseHexagram("100101")
	require.NoError(t, err)
	assert.Equal(t, Hexagram("100101"), h)

	_, err = ParseHexagram("1001")
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = ParseHexagram("10010x")
	assert.Error(t, err)
}

func TestEffectString(t *testing.T) {
	assert.Equal(t, "activate_pin(B)", ActivatePin(PinB).String())
	assert.Equal(t, "release_pin(E)", ReleasePin(PinE).String())
	assert.Equal(t, "play_sound(thunder)", PlaySound("thunder").String())
	assert.Equal(t, "trigger_fire", TriggerFire().String())
}
