package changelog

import (
	"sort"

	"fontdb/core/models"
)

// FamilyUpdate describes why a family counts as updated. Both causes may
// apply at once.
type FamilyUpdate struct {
	PreviousVariants int  `json:"previous_variants"`
	CurrentVariants  int  `json:"current_variants"`
	PreviewAdded     bool `json:"preview_added,omitempty"`
}

// CountChanged reports whether the number of variants changed.
func (u FamilyUpdate) CountChanged() bool {
	return u.PreviousVariants != u.CurrentVariants
}

// Delta is the signed change in variant count.
func (u FamilyUpdate) Delta() int {
	return u.CurrentVariants - u.PreviousVariants
}

// ChangeSet is the difference between two snapshots. Every list is sorted.
type ChangeSet struct {
	PreviousVersion string `json:"previous_version,omitempty"`
	CurrentVersion  string `json:"current_version"`
	PreviousTotal   int    `json:"previous_total"`
	CurrentTotal    int    `json:"current_total"`
	// FirstRun is set when there was no previous snapshot.
	FirstRun bool `json:"first_run"`

	NewFamilies             []string                       `json:"new_families"`
	UpdatedFamilies         map[string]FamilyUpdate        `json:"updated_families"`
	RemovedFamilies         []string                       `json:"removed_families"`
	NewVariantsByFamily     map[string][]models.VariantKey `json:"new_variants_by_family"`
	RemovedVariantsByFamily map[string][]models.VariantKey `json:"removed_variants_by_family"`

	newFamilyCategories map[string]models.Category
	newFamilyVariants   map[string]int
}

func newChangeSet() *ChangeSet {
	return &ChangeSet{
		NewFamilies:             []string{},
		UpdatedFamilies:         map[string]FamilyUpdate{},
		RemovedFamilies:         []string{},
		NewVariantsByFamily:     map[string][]models.VariantKey{},
		RemovedVariantsByFamily: map[string][]models.VariantKey{},
		newFamilyCategories:     map[string]models.Category{},
		newFamilyVariants:       map[string]int{},
	}
}

// Empty reports whether nothing changed.
func (c *ChangeSet) Empty() bool {
	return len(c.NewFamilies) == 0 &&
		len(c.UpdatedFamilies) == 0 &&
		len(c.RemovedFamilies) == 0 &&
		len(c.NewVariantsByFamily) == 0 &&
		len(c.RemovedVariantsByFamily) == 0
}

// NetChange is the signed change in family count.
func (c *ChangeSet) NetChange() int {
	return c.CurrentTotal - c.PreviousTotal
}

// UpdatedNames returns the updated family names in order.
func (c *ChangeSet) UpdatedNames() []string {
	return sortedKeys(c.UpdatedFamilies)
}

// NewVariantFamilies returns the names of families with new variants in order.
func (c *ChangeSet) NewVariantFamilies() []string {
	return sortedKeys(c.NewVariantsByFamily)
}

// RemovedVariantFamilies returns the names of families that lost variants in order.
func (c *ChangeSet) RemovedVariantFamilies() []string {
	return sortedKeys(c.RemovedVariantsByFamily)
}

// NewByCategory groups the new families by category.
func (c *ChangeSet) NewByCategory() map[models.Category][]string {
	groups := make(map[models.Category][]string)
	for _, name := range c.NewFamilies {
		category := c.newFamilyCategories[name]
		groups[category] = append(groups[category], name)
	}
	return groups
}

// NewFamilyVariants returns the variant count of a new family.
func (c *ChangeSet) NewFamilyVariants(name string) int {
	return c.newFamilyVariants[name]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
