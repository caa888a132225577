package reconcile

import "context"

// ReconcileWithPlan performs reconciliation and returns the results with
// their summary.
func ReconcileWithPlan(ctx context.Context, adapter Adapter) (*ReconcilePlan, error) {
	results, err := ReconcileAll(ctx, adapter)
	if err != nil {
		return nil, err
	}
	return &ReconcilePlan{
		Results: results,
		Summary: Summarize(results),
	}, nil
}

// Summarize counts the results by status.
func Summarize(results []ReconcileResult) PlanSummary {
	summary := PlanSummary{TotalItems: len(results)}

	for _, result := range results {
		switch result.Status() {
		case StatusAdded:
			summary.Added++
		case StatusRemoved:
			summary.Removed++
		case StatusChanged:
			summary.Changed++
		default:
			summary.Unchanged++
		}
	}

	return summary
}

// Filter returns the results with the given status, keeping their order.
func Filter(results []ReconcileResult, status Status) []ReconcileResult {
	var out []ReconcileResult
	for _, result := range results {
		if result.Status() == status {
			out = append(out, result)
		}
	}
	return out
}
