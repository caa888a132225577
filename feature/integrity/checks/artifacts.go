package checks

import (
	"encoding/json"

	"fontdb/core/artifact"
	"fontdb/core/models"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// CheckFiles reports missing required files and present optional ones.
func CheckFiles(ws *artifact.Workspace, required, optional []string) Findings {
	var f Findings
	for _, name := range required {
		if ws.Exists(name) {
			f.Infof("Required file found: %s", name)
		} else {
			f.Errorf("Required file missing: %s", name)
		}
	}
	for _, name := range optional {
		if ws.Exists(name) {
			f.Infof("Optional file found: %s", name)
		}
	}
	return f
}

// CheckChecksums recomputes the digest of every file listed in the checksum
// file. A listed file that is missing or differs is an error.
func CheckChecksums(ws *artifact.Workspace) Findings {
	var f Findings

	if !ws.Exists(artifact.Checksums) {
		f.Infof("No checksums file found - skipping checksum validation")
		return f
	}
	sums, err := ws.ReadChecksums()
	if err != nil {
		f.Errorf("Invalid JSON in %s: %v", artifact.Checksums, err)
		return f
	}

	failed := 0
	for _, name := range sortedKeys(sums) {
		if !ws.Exists(name) {
			f.Errorf("Checksum file missing: %s", name)
			failed++
			continue
		}
		got, err := ws.HashFile(name)
		if err != nil {
			f.Errorf("Failed to hash %s: %v", name, err)
			failed++
			continue
		}
		if got != sums[name] {
			f.Errorf("Checksum mismatch for %s", name)
			failed++
			continue
		}
		f.Infof("Checksum valid: %s", name)
	}
	if failed == 0 {
		f.Infof("All checksums validated successfully")
	}
	return f
}

// CheckIndexes validates the structure of the index files and their counts
// against db.
func CheckIndexes(ws *artifact.Workspace, db *models.FontDatabase) Findings {
	var f Findings

	if doc, ok := readObject(ws, artifact.FamiliesIndex, &f); ok {
		requireFields(&f, doc, "families index", "families", "count", "version")
		var families []string
		var count int
		if raw, ok := doc["families"]; ok {
			if err := json.Unmarshal(raw, &families); err != nil {
				f.Errorf("families field must be a list")
			}
		}
		if raw, ok := doc["count"]; ok {
			if err := json.Unmarshal(raw, &count); err != nil {
				f.Errorf("count field must be a number")
			}
		}
		if len(families) != count {
			f.Warnf("Family count mismatch: listed %d, reported %d", len(families), count)
		}
		if db != nil && count != len(db.Fonts) {
			f.Warnf("Families index count %d differs from database total %d", count, len(db.Fonts))
		}
	}

	if doc, ok := readObject(ws, artifact.CategoriesIndex, &f); ok {
		requireFields(&f, doc, "categories index", "categories", "version")
		var categories map[string][]string
		if raw, ok := doc["categories"]; ok {
			if err := json.Unmarshal(raw, &categories); err != nil {
				f.Errorf("categories field must be a dictionary of lists")
			} else if db != nil {
				listed := 0
				for _, names := range categories {
					listed += len(names)
				}
				if listed != len(db.Fonts) {
					f.Warnf("Categories index lists %d families, database has %d", listed, len(db.Fonts))
				}
			}
		}
	}

	if doc, ok := readObject(ws, artifact.PopularIndex, &f); ok {
		requireFields(&f, doc, "popular index", "popular", "version")
		var popular []struct {
			Family   string `json:"family"`
			Variants int    `json:"variants"`
		}
		if raw, ok := doc["popular"]; ok {
			if err := json.Unmarshal(raw, &popular); err != nil {
				f.Errorf("popular field must be a list of families")
			}
		}
	}
	return f
}

// StatsSections are the sections a statistics file is expected to carry.
var StatsSections = []string{"basic", "file_sizes", "previews", "licenses", "popular", "quality", "database"}

// CheckStats warns about missing statistics sections.
func CheckStats(ws *artifact.Workspace) Findings {
	var f Findings
	if doc, ok := readObject(ws, artifact.Stats, &f); ok {
		for _, section := range StatsSections {
			if _, ok := doc[section]; !ok {
				f.Warnf("Missing statistics section: %s", section)
			}
		}
	}
	return f
}

// CheckCompressed verifies that the compressed artifact decompresses to a
// database structurally equal to want.
func CheckCompressed(ws *artifact.Workspace, want *models.FontDatabase) Findings {
	var f Findings

	if !ws.Exists(artifact.CompressedDatabase) {
		return f
	}
	data, err := ws.ReadFile(artifact.CompressedDatabase)
	if err != nil {
		f.Errorf("Error reading compressed database: %v", err)
		return f
	}
	raw, err := artifact.Decompress(data)
	if err != nil {
		f.Errorf("Error reading compressed database: %v", err)
		return f
	}
	var got models.FontDatabase
	if err := json.Unmarshal(raw, &got); err != nil {
		f.Errorf("Error reading compressed database: %v", err)
		return f
	}

	if want == nil {
		f.Infof("Compressed database readable")
		return f
	}
	if diff := cmp.Diff(want, &got, cmpopts.EquateEmpty()); diff != "" {
		f.Errorf("Compressed database doesn't match optimized database")
		return f
	}
	f.Infof("Compressed database integrity verified")
	return f
}

// SizeLimits are the thresholds CheckSizes applies.
type SizeLimits struct {
	MaxDatabaseBytes    int64
	InfoDatabaseBytes   int64
	MaxCompressionRatio float64
}

// CheckSizes reports oversized databases and poor compression.
func CheckSizes(ws *artifact.Workspace, limits SizeLimits) Findings {
	var f Findings

	canonical, err := ws.Size(artifact.CanonicalDatabase)
	if err == nil {
		switch {
		case canonical > limits.MaxDatabaseBytes:
			f.Warnf("Main database very large: %.1fMB", mib(canonical))
		case canonical > limits.InfoDatabaseBytes:
			f.Infof("Main database size: %.1fMB", mib(canonical))
		}
	}

	optimized, errOpt := ws.Size(artifact.OptimizedDatabase)
	compressed, errGz := ws.Size(artifact.CompressedDatabase)
	if errOpt != nil || errGz != nil || optimized == 0 {
		return f
	}
	ratio := float64(compressed) / float64(optimized)
	if ratio > limits.MaxCompressionRatio {
		f.Warnf("Poor compression ratio: %.2f", ratio)
	} else {
		f.Infof("Good compression ratio: %.2f", ratio)
	}
	return f
}

func readObject(ws *artifact.Workspace, name string, f *Findings) (map[string]json.RawMessage, bool) {
	if !ws.Exists(name) {
		return nil, false
	}
	var doc map[string]json.RawMessage
	if err := ws.ReadJSON(name, &doc); err != nil {
		f.Errorf("Invalid JSON in %s: %v", name, err)
		return nil, false
	}
	f.Infof("JSON structure valid: %s", name)
	return doc, true
}

func requireFields(f *Findings, doc map[string]json.RawMessage, what string, fields ...string) {
	for _, field := range fields {
		if _, ok := doc[field]; !ok {
			f.Errorf("Missing required field in %s: %s", what, field)
		}
	}
}

func mib(n int64) float64 {
	return float64(n) / (1024 * 1024)
}
