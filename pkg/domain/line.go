package domain

import (
	"fmt"
	"strings"
)

// Line is a single classified window.
type Line byte

const (
	Yin  Line = '0'
	Yang Line = '1'
)

// Complement returns the opposite line.
func (l Line) Complement() Line {
	if l == Yang {
		return Yin
	}
	return Yang
}

// String implements fmt.Stringer.
func (l Line) String() string {
	return string(l)
}

// Valid reports whether l is Yin or Yang.
func (l Line) Valid() bool {
	return l == Yin || l == Yang
}

// Trigram is three lines in acquisition order, e.g. "110".
type Trigram string

// NewTrigram concatenates lines in the order given.
func NewTrigram(lines ...Line) Trigram {
	var b strings.Builder
	for _, l := range lines {
		b.WriteByte(byte(l))
	}
	return Trigram(b.String())
}

// Hexagram is six lines: positions 1-3 form the lower trigram, 4-6 the upper.
type Hexagram string

// NewHexagram builds a hexagram from the lower and upper trigrams.
func NewHexagram(lower, upper Trigram) Hexagram {
	return Hexagram(string(lower) + string(upper))
}

// ParseHexagram validates s as six lines.
func ParseHexagram(s string) (Hexagram, error) {
	if len(s) != 6 {
		return "", fmt.Errorf("%w: %q has %d lines", ErrInvalidLength, s, len(s))
	}
	for i := 0; i < len(s); i++ {
		if !Line(s[i]).Valid() {
			return "", fmt.Errorf("invalid line %q at position %d", s[i], i+1)
		}
	}
	return Hexagram(s), nil
}

// Line returns the line at 1-based position pos.
func (h Hexagram) Line(pos int) Line {
	return Line(h[pos-1])
}

// Lower returns positions 1-3.
func (h Hexagram) Lower() Trigram {
	return Trigram(h[:3])
}

// Upper returns positions 4-6.
func (h Hexagram) Upper() Trigram {
	return Trigram(h[3:])
}
