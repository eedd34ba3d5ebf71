package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseCycle(t *testing.T) {
	for _, start := range []Phase{PhaseIdle, PhaseAcquire, PhasePresent} {
		t.Run(string(start), func(t *testing.T) {
			s := Session{Phase: start}
			s = s.Next().Next().Next()
			assert.Equal(t, start, s.Phase)
		})
	}
}

func TestSessionNext(t *testing.T) {
	s := NewSession()
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Equal(t, Placeholder, s.Primary)
	assert.Equal(t, Placeholder, s.Related)

	acquiring := s.Next()
	assert.Equal(t, PhaseAcquire, acquiring.Phase)
	assert.Equal(t, PhaseIdle, s.Phase, "Next must not mutate the receiver")

	acquiring.Primary = "111010"
	acquiring.Related = "000101"
	presenting := acquiring.Next()
	assert.Equal(t, PhasePresent, presenting.Phase)
	assert.Equal(t, Hexagram("111010"), presenting.Primary)
	assert.Equal(t, Hexagram("000101"), presenting.Related)

	assert.Equal(t, PhaseIdle, presenting.Next().Phase)
}

func TestUnknownPhaseReturnsToIdle(t *testing.T) {
	assert.Equal(t, PhaseIdle, Phase("bogus").Next())
}
