package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileWithPlan(t *testing.T) {
	tests := []struct {
		name     string
		previous map[string]Item
		current  map[string]Item
		want     PlanSummary
		empty    bool
	}{
		{
			name:     "Identical",
			previous: map[string]Item{"a": "1", "b": "2"},
			current:  map[string]Item{"a": "1", "b": "2"},
			want:     PlanSummary{TotalItems: 2, Unchanged: 2},
			empty:    true,
		},
		{
			name:     "Mixed",
			previous: map[string]Item{"a": "1", "b": "2"},
			current:  map[string]Item{"b": "3", "c": "1"},
			want:     PlanSummary{TotalItems: 3, Added: 1, Removed: 1, Changed: 1},
		},
		{
			name:    "Both empty",
			want:    PlanSummary{},
			empty:   true,
			current: map[string]Item{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ReconcileWithPlan(context.Background(), &mockAdapter{previous: tt.previous, current: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.Summary)
			assert.Equal(t, tt.empty, plan.Summary.Empty())
		})
	}
}

func TestFilter(t *testing.T) {
	results := []ReconcileResult{
		{ID: "a", CurrentPresent: true},
		{ID: "b", PreviousPresent: true},
		{ID: "c", CurrentPresent: true},
	}

	added := Filter(results, StatusAdded)
	require.Len(t, added, 2)
	assert.Equal(t, "a", added[0].ID)
	assert.Equal(t, "c", added[1].ID)
	assert.Empty(t, Filter(results, StatusChanged))
}
