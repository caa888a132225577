package changelog

import (
	"context"
	"fmt"
	"sort"

	"fontdb/core/models"
	"fontdb/core/reconcile"

	"go.uber.org/zap"
)

// familyAdapter reconciles the family maps of two snapshots.
type familyAdapter struct {
	previous *models.FontDatabase
	current  *models.FontDatabase
}

func (a *familyAdapter) Name() string {
	return "families"
}

func (a *familyAdapter) LoadPrevious(ctx context.Context) (map[string]reconcile.Item, error) {
	if a.previous == nil {
		return nil, nil
	}
	return toItems(a.previous), nil
}

func (a *familyAdapter) LoadCurrent(ctx context.Context) (map[string]reconcile.Item, error) {
	return toItems(a.current), nil
}

func (a *familyAdapter) CompareFields(previous, current reconcile.Item) []string {
	prev := previous.(*models.FontFamily)
	cur := current.(*models.FontFamily)

	var mismatch []string
	if len(prev.Variants) != len(cur.Variants) {
		mismatch = append(mismatch, fmt.Sprintf("variants: %d -> %d", len(prev.Variants), len(cur.Variants)))
	}
	if prev.Preview == nil && cur.Preview != nil {
		mismatch = append(mismatch, "preview: added")
	}
	for _, key := range addedKeys(prev, cur) {
		mismatch = append(mismatch, "new variant: "+key.String())
	}
	for _, key := range addedKeys(cur, prev) {
		mismatch = append(mismatch, "removed variant: "+key.String())
	}
	return mismatch
}

func lookup(db *models.FontDatabase, name string) *models.FontFamily {
	if family := db.Fonts[name]; family != nil {
		return family
	}
	return &models.FontFamily{}
}

func toItems(db *models.FontDatabase) map[string]reconcile.Item {
	items := make(map[string]reconcile.Item, len(db.Fonts))
	for name, family := range db.Fonts {
		if family == nil {
			family = &models.FontFamily{}
		}
		items[name] = family
	}
	return items
}

// addedKeys returns the variant keys of to that from lacks, ordered by
// (weight, style).
func addedKeys(from, to *models.FontFamily) []models.VariantKey {
	have := from.VariantKeys()
	var added []models.VariantKey
	seen := make(map[models.VariantKey]struct{})
	for _, v := range to.Variants {
		key := v.Key()
		if _, ok := have[key]; ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		added = append(added, key)
	}
	sort.Slice(added, func(i, j int) bool {
		if added[i].Weight != added[j].Weight {
			return added[i].Weight < added[j].Weight
		}
		return added[i].Style < added[j].Style
	})
	return added
}

// Differ computes change sets.
type Differ struct {
	logger *zap.Logger
}

// NewDiffer returns a Differ.
func NewDiffer(logger *zap.Logger) *Differ {
	return &Differ{logger: logger}
}

// Diff compares previous, which may be nil, with current.
func (d *Differ) Diff(ctx context.Context, previous, current *models.FontDatabase) (*ChangeSet, error) {
	adapter := &familyAdapter{previous: previous, current: current}
	plan, err := reconcile.ReconcileWithPlan(ctx, adapter)
	if err != nil {
		return nil, err
	}

	cs := newChangeSet()
	cs.CurrentVersion = current.Version
	cs.CurrentTotal = len(current.Fonts)
	if previous == nil {
		cs.FirstRun = true
	} else {
		cs.PreviousVersion = previous.Version
		cs.PreviousTotal = len(previous.Fonts)
	}

	for _, result := range plan.Results {
		name := result.ID
		switch result.Status() {
		case reconcile.StatusAdded:
			family := current.Fonts[name]
			cs.NewFamilies = append(cs.NewFamilies, name)
			if family != nil {
				cs.newFamilyCategories[name] = family.Category
				cs.newFamilyVariants[name] = len(family.Variants)
			}
		case reconcile.StatusRemoved:
			cs.RemovedFamilies = append(cs.RemovedFamilies, name)
		case reconcile.StatusChanged:
			prev, cur := lookup(previous, name), lookup(current, name)
			if keys := addedKeys(prev, cur); len(keys) > 0 {
				cs.NewVariantsByFamily[name] = keys
			}
			if keys := addedKeys(cur, prev); len(keys) > 0 {
				cs.RemovedVariantsByFamily[name] = keys
			}
			update := FamilyUpdate{
				PreviousVariants: len(prev.Variants),
				CurrentVariants:  len(cur.Variants),
				PreviewAdded:     prev.Preview == nil && cur.Preview != nil,
			}
			if update.CountChanged() || update.PreviewAdded {
				cs.UpdatedFamilies[name] = update
			}
		}
	}

	d.logger.Info("Computed changes",
		zap.Bool("first_run", cs.FirstRun),
		zap.Int("new", len(cs.NewFamilies)),
		zap.Int("updated", len(cs.UpdatedFamilies)),
		zap.Int("removed", len(cs.RemovedFamilies)),
		zap.Int("new_variant_families", len(cs.NewVariantsByFamily)),
	)
	return cs, nil
}
