package domain

// Phase defines where the installation is in its reading cycle.
type Phase string

const (
	PhaseIdle    Phase = "idle"    // Waiting for a trigger, rendering the resting scene
	PhaseAcquire Phase = "acquire" // Sampling and classifying the six lines
	PhasePresent Phase = "present" // Showing and publishing the result
)

// Next returns the phase that follows p. The cycle repeats indefinitely.
func (p Phase) Next() Phase {
	switch p {
	case PhaseIdle:
		return PhaseAcquire
	case PhaseAcquire:
		return PhasePresent
	default:
		return PhaseIdle
	}
}

// String implements fmt.Stringer.
func (p Phase) String() string {
	return string(p)
}

// Placeholder is the value of Primary and Related before the first reading.
const Placeholder Hexagram = "000000"

// Session is the single in-flight reading.
//
// Primary and Related are meaningless while Phase == PhaseIdle. Both hold six
// valid lines once Phase == PhasePresent. A Session is never persisted.
type Session struct {
	Phase Phase

	// ReadingID correlates logs and status of one Acquire/Present pass.
	ReadingID string

	Primary Hexagram
	Related Hexagram
}

// NewSession creates a session resting in PhaseIdle.
func NewSession() Session {
	return Session{
		Phase:   PhaseIdle,
		Primary: Placeholder,
		Related: Placeholder,
	}
}

// Next consumes s and returns the session in the following phase.
// The payload is carried over unchanged; callers fill it during their own turn.
func (s Session) Next() Session {
	next := s
	next.Phase = s.Phase.Next()
	return next
}
