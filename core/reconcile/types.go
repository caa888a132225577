package reconcile

// Item is an entity held by one side of a reconciliation.
// Adapters define the concrete type.
type Item any

// Status classifies a key after both sides have been compared.
type Status string

const (
	// StatusAdded means the key exists only in the current side.
	StatusAdded Status = "added"
	// StatusRemoved means the key exists only in the previous side.
	StatusRemoved Status = "removed"
	// StatusChanged means the key exists on both sides with differences.
	StatusChanged Status = "changed"
	// StatusUnchanged means the key exists on both sides and compares equal.
	StatusUnchanged Status = "unchanged"
)

// ReconcileResult represents the reconciliation output for a single entity.
type ReconcileResult struct {
	// ID is the unique identifier for the entity.
	ID string `json:"id"`

	// PreviousPresent indicates whether the entity exists in the previous side.
	PreviousPresent bool `json:"previous_present"`

	// CurrentPresent indicates whether the entity exists in the current side.
	CurrentPresent bool `json:"current_present"`

	// Mismatch contains descriptions of differences between both sides.
	// Each string describes one difference, e.g., "variants: 2 -> 3".
	Mismatch []string `json:"mismatch"`
}

// Status returns the classification of the result.
func (r ReconcileResult) Status() Status {
	switch {
	case r.CurrentPresent && !r.PreviousPresent:
		return StatusAdded
	case r.PreviousPresent && !r.CurrentPresent:
		return StatusRemoved
	case len(r.Mismatch) > 0:
		return StatusChanged
	default:
		return StatusUnchanged
	}
}

// Snapshot holds both loaded indices.
type Snapshot struct {
	// Previous is the indexed map of previous items by entity key.
	Previous map[string]Item

	// Current is the indexed map of current items by entity key.
	Current map[string]Item
}

// ReconcilePlan contains reconciliation results and their summary.
type ReconcilePlan struct {
	// Results contains per-entity reconciliation data sorted by ID.
	Results []ReconcileResult `json:"results"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the total number of unique entities.
	TotalItems int `json:"total_items"`

	// Added counts entities only present in the current side.
	Added int `json:"added"`

	// Removed counts entities only present in the previous side.
	Removed int `json:"removed"`

	// Changed counts entities with differences.
	Changed int `json:"changed"`

	// Unchanged counts entities equal on both sides.
	Unchanged int `json:"unchanged"`
}

// Empty reports whether the plan records no difference at all.
func (s PlanSummary) Empty() bool {
	return s.Added == 0 && s.Removed == 0 && s.Changed == 0
}
