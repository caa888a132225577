package reconcile

import "context"

// Adapter defines the interface for model-specific reconciliation logic.
// Each adapter implements how to load and compare both sides for a model.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "families").
	Name() string

	// LoadPrevious returns the previous side indexed by entity key.
	// A nil map means the previous side is absent.
	LoadPrevious(ctx context.Context) (map[string]Item, error)

	// LoadCurrent returns the current side indexed by entity key.
	LoadCurrent(ctx context.Context) (map[string]Item, error)

	// CompareFields compares both versions of an entity and returns a list
	// of difference descriptions. Both items are guaranteed to be non-nil.
	CompareFields(previous, current Item) []string
}
