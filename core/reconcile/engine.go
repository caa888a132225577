package reconcile

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// BuildSnapshot loads both sides of the adapter concurrently.
func BuildSnapshot(ctx context.Context, adapter Adapter) (*Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		idx, err := adapter.LoadPrevious(gctx)
		if err != nil {
			return fmt.Errorf("%s: failed to load previous: %w", adapter.Name(), err)
		}
		snap.Previous = idx
		return nil
	})
	g.Go(func() error {
		idx, err := adapter.LoadCurrent(gctx)
		if err != nil {
			return fmt.Errorf("%s: failed to load current: %w", adapter.Name(), err)
		}
		snap.Current = idx
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snap, nil
}

// ReconcileAll loads both sides and returns a result for each key of their
// union, sorted by key.
func ReconcileAll(ctx context.Context, adapter Adapter) ([]ReconcileResult, error) {
	snap, err := BuildSnapshot(ctx, adapter)
	if err != nil {
		return nil, err
	}
	return Compare(snap, adapter.CompareFields), nil
}

// Compare builds the union of keys of both sides and a result for each key,
// sorted by key.
func Compare(snap *Snapshot, compare func(previous, current Item) []string) []ReconcileResult {
	union := buildUnion(snap.Previous, snap.Current)

	results := make([]ReconcileResult, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, snap, compare))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})

	return results
}

// buildUnion creates a union of all keys from both sides.
func buildUnion(previous, current map[string]Item) map[string]struct{} {
	union := make(map[string]struct{}, len(current))
	for key := range previous {
		union[key] = struct{}{}
	}
	for key := range current {
		union[key] = struct{}{}
	}
	return union
}

// buildResult creates a ReconcileResult for a single key.
func buildResult(key string, snap *Snapshot, compare func(previous, current Item) []string) ReconcileResult {
	prev, prevPresent := snap.Previous[key]
	cur, curPresent := snap.Current[key]

	result := ReconcileResult{
		ID:              key,
		PreviousPresent: prevPresent,
		CurrentPresent:  curPresent,
		Mismatch:        []string{},
	}

	if prevPresent && curPresent && compare != nil {
		if mismatch := compare(prev, cur); len(mismatch) > 0 {
			result.Mismatch = mismatch
		}
	}

	return result
}
