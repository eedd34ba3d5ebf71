package ports

import "context"

// CounterStore persists the pump usage counter as a single integer.
//
// There is no locking contract: a store shared by several processes is subject
// to a read-modify-write race unless the caller holds a Locker around Load/Save.
type CounterStore interface {
	// Load returns the stored value.
	// Returns domain.ErrCounterNotFound if nothing was saved and
	// domain.ErrCounterMalformed if the stored text is not an integer.
	Load(ctx context.Context) (int, error)

	// Save replaces the stored value.
	Save(ctx context.Context, value int) error
}
