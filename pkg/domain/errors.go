package domain

import "errors"

// ErrCounterNotFound is returned by a CounterStore when nothing was saved yet.
var ErrCounterNotFound = errors.New("counter not found")

// ErrCounterMalformed is returned by a CounterStore when the stored value is not a decimal integer.
var ErrCounterMalformed = errors.New("counter malformed")

// ErrToolNotRegistered is returned by an Actuator when no script handles an effect.
var ErrToolNotRegistered = errors.New("tool not registered")

// ErrInvalidLength is returned when a symbol string has the wrong number of lines.
var ErrInvalidLength = errors.New("invalid symbol length")
