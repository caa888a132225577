package aggregate

import (
	"encoding/json"
	"fmt"

	"fontdb/core/artifact"
	"fontdb/core/utils"
)

// Record is the metadata of one font file.
type Record struct {
	Family      string
	Subfamily   string
	Weight      int
	Style       string
	WeightClass int
	FileSize    int64
	DownloadURL string
	LicenseType string
	LicenseURL  string
	Category    string
}

// RecordFromMap coerces a loosely typed record.
func RecordFromMap(m map[string]any) Record {
	return Record{
		Family:      utils.ToString(m["family"]),
		Subfamily:   utils.ToString(m["subfamily"]),
		Weight:      utils.ToInt(m["weight"]),
		Style:       utils.ToString(m["style"]),
		WeightClass: utils.ToInt(m["weight_class"]),
		FileSize:    utils.ToInt64(m["file_size"]),
		DownloadURL: utils.ToString(m["download_url"]),
		LicenseType: utils.ToString(m["license_type"]),
		LicenseURL:  utils.ToString(m["license_url"]),
		Category:    utils.ToString(m["category"]),
	}
}

// Decode parses a record document: an object mapping relative font paths to
// records.
func Decode(data []byte) (map[string]Record, error) {
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse font records: %w", err)
	}
	records := make(map[string]Record, len(raw))
	for path, m := range raw {
		records[path] = RecordFromMap(m)
	}
	return records, nil
}

// Load reads the record document name from ws.
func Load(ws *artifact.Workspace, name string) (map[string]Record, error) {
	data, err := ws.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
