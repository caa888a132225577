package checks

import (
	"fontdb/core/models"
	"fontdb/feature/preview"
)

// CheckPreviews decompresses the previews of the first sample families that
// have one and checks their SVG. A sample of zero or less checks every
// preview. An error rate above maxErrorRate is a warning.
func CheckPreviews(db *models.FontDatabase, sample int, maxErrorRate float64) Findings {
	var f Findings

	checked, failed := 0, 0
	for _, name := range db.FamilyNames() {
		family := db.Fonts[name]
		if family == nil || family.Preview == nil {
			continue
		}
		if sample > 0 && checked >= sample {
			break
		}
		checked++

		if len(family.Preview.Data) == 0 {
			f.Warnf("Font %s has empty preview data", name)
			failed++
			continue
		}
		svg, err := preview.Decode(family.Preview)
		if err != nil {
			f.Errorf("Font %s preview decompression failed: %v", name, err)
			failed++
			continue
		}
		if err := preview.CheckSVG(svg); err != nil {
			f.Warnf("Font %s preview is not a valid svg: %v", name, err)
			failed++
		}
		if len([]rune(family.Preview.Text)) > models.MaxPreviewText {
			f.Warnf("Font %s preview text longer than %d characters", name, models.MaxPreviewText)
		}
	}

	if checked == 0 {
		return f
	}
	rate := float64(failed) / float64(checked)
	f.Infof("Preview validation: %d previews checked, %d errors (%.1f%% error rate)", checked, failed, rate*100)
	if rate > maxErrorRate {
		f.Warnf("High preview error rate: %.1f%%", rate*100)
	}
	return f
}
