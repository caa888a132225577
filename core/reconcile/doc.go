// Package reconcile compares two keyed snapshots of the same entities.
//
// It is used to diff a previously published database against the one
// produced by the current run, but knows nothing about fonts itself.
//
// # Architecture
//
// 1. Adapter: model-specific loading of both sides and field comparison.
//
// 2. Engine: loads both sides concurrently, builds the union of keys and
// classifies every key as added, removed, changed or unchanged.
//
// 3. Plan: sorted results plus aggregate counts.
//
// # Usage Example
//
//	plan, err := reconcile.ReconcileWithPlan(ctx, adapter)
//	if plan.Summary.Empty() {
//	    // nothing changed
//	}
//	for _, r := range reconcile.Filter(plan.Results, reconcile.StatusAdded) {
//	    fmt.Println(r.ID)
//	}
package reconcile
