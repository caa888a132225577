package preview

import (
	"fmt"
	"sort"

	"fontdb/core/artifact"
	"fontdb/core/metrics"
	"fontdb/core/models"

	"go.uber.org/zap"
)

// AttachResult counts what Attach did.
type AttachResult struct {
	Attached int
	Unknown  int
	Failed   int
}

// Load reads a JSON document mapping family names to SVG text.
func Load(ws *artifact.Workspace, name string) (map[string]string, error) {
	var previews map[string]string
	if err := ws.ReadJSON(name, &previews); err != nil {
		return nil, fmt.Errorf("failed to load previews: %w", err)
	}
	return previews, nil
}

// Attach stores the given previews on their families and refreshes the
// preview statistics. Previews for unknown families are skipped. A preview
// that fails to encode is logged and the family is left unchanged.
func Attach(db *models.FontDatabase, previews map[string]string, logger *zap.Logger, rec *metrics.Recorder) AttachResult {
	var res AttachResult

	names := make([]string, 0, len(previews))
	for name := range previews {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		family, ok := db.Fonts[name]
		if !ok || family == nil {
			res.Unknown++
			rec.Inc(metrics.StagePreview, metrics.SeverityInfo)
			logger.Debug("Preview for unknown family", zap.String("family", name))
			continue
		}

		p, err := Encode(Minify(previews[name]), models.PreviewText(name))
		if err != nil {
			res.Failed++
			rec.Inc(metrics.StagePreview, metrics.SeverityFailure)
			logger.Warn("Failed to encode preview", zap.String("family", name), zap.Error(err))
			continue
		}
		family.Preview = p
		res.Attached++
	}

	db.RefreshPreviewStats()
	return res
}
