package changelog

import (
	"fmt"
	"sort"
	"strings"

	"fontdb/core/models"
	"fontdb/core/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxNewPerCategory      = 10
	maxVariantFamilies     = 10
	maxRemovedFamilies     = 20
	unknownCategory        = "unknown"
	noChangesHeading       = "### 📝 No Changes"
	noChangesDescription   = "No new, updated, or removed fonts in this release."
	databaseChangesHeading = "## 📈 Database Changes"
)

var titleCase = cases.Title(language.English)

// ReleaseNotes renders cs as markdown.
func ReleaseNotes(cs *ChangeSet) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add(databaseChangesHeading)
	add("")
	add("**Total font families:** %s (%s from previous version)", utils.Count(cs.CurrentTotal), utils.Signed(cs.NetChange()))
	add("")

	if len(cs.NewFamilies) > 0 {
		add("### ✨ New Fonts (%d)", len(cs.NewFamilies))
		add("")

		groups := cs.NewByCategory()
		categories := make([]string, 0, len(groups))
		byName := make(map[string][]string, len(groups))
		for category, names := range groups {
			label := string(category)
			if label == "" {
				label = unknownCategory
			}
			categories = append(categories, label)
			byName[label] = append(byName[label], names...)
		}
		sort.Strings(categories)

		for _, category := range categories {
			names := byName[category]
			sort.Strings(names)
			add("**%s:**", titleCase.String(category))
			for _, name := range names[:min(len(names), maxNewPerCategory)] {
				add("- **%s** (%d variants)", name, cs.NewFamilyVariants(name))
			}
			if len(names) > maxNewPerCategory {
				add("- ... and %d more %s fonts", len(names)-maxNewPerCategory, category)
			}
			add("")
		}
	}

	if len(cs.UpdatedFamilies) > 0 {
		add("### 🔄 Updated Fonts (%d)", len(cs.UpdatedFamilies))
		add("")
		for _, name := range cs.UpdatedNames() {
			update := cs.UpdatedFamilies[name]
			switch {
			case update.CountChanged() && update.PreviewAdded:
				add("- **%s**: %d → %d variants (%s), preview added", name, update.PreviousVariants, update.CurrentVariants, utils.Signed(update.Delta()))
			case update.CountChanged():
				add("- **%s**: %d → %d variants (%s)", name, update.PreviousVariants, update.CurrentVariants, utils.Signed(update.Delta()))
			default:
				add("- **%s**: Preview added", name)
			}
		}
		add("")
	}

	if len(cs.NewVariantsByFamily) > 0 {
		lines = append(lines, variantSection("### 🆕 New Variants", "more families with new variants", cs.NewVariantFamilies(), cs.NewVariantsByFamily)...)
	}

	if len(cs.RemovedVariantsByFamily) > 0 {
		lines = append(lines, variantSection("### ➖ Removed Variants", "more families with removed variants", cs.RemovedVariantFamilies(), cs.RemovedVariantsByFamily)...)
	}

	if len(cs.RemovedFamilies) > 0 {
		add("### ❌ Removed Fonts (%d)", len(cs.RemovedFamilies))
		add("")
		for _, name := range cs.RemovedFamilies[:min(len(cs.RemovedFamilies), maxRemovedFamilies)] {
			add("- %s", name)
		}
		if len(cs.RemovedFamilies) > maxRemovedFamilies {
			add("- ... and %d more", len(cs.RemovedFamilies)-maxRemovedFamilies)
		}
		add("")
	}

	if cs.Empty() {
		add(noChangesHeading)
		add("")
		add(noChangesDescription)
		add("")
	}

	return strings.Join(lines, "\n")
}

func variantSection(heading, more string, families []string, keys map[string][]models.VariantKey) []string {
	lines := []string{fmt.Sprintf("%s (%d families)", heading, len(families)), ""}
	for _, name := range families[:min(len(families), maxVariantFamilies)] {
		descs := make([]string, 0, len(keys[name]))
		for _, key := range keys[name] {
			descs = append(descs, key.String())
		}
		lines = append(lines, fmt.Sprintf("- **%s**: %s", name, strings.Join(descs, ", ")))
	}
	if len(families) > maxVariantFamilies {
		lines = append(lines, fmt.Sprintf("- ... and %d %s", len(families)-maxVariantFamilies, more))
	}
	return append(lines, "")
}
