package metrics

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Severity classifies a counted condition.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	// SeverityFailure is a recoverable per-item failure.
	SeverityFailure Severity = "failure"
)

// Pipeline stage labels.
const (
	StageAggregate = "aggregate"
	StagePreview   = "preview"
	StageOptimize  = "optimize"
	StageIndex     = "index"
	StageValidate  = "validate"
	StageChangelog = "changelog"
	StageArchive   = "archive"
	StageStats     = "stats"
	StageHistory   = "history"
)

// Recorder counts conditions for one run. A nil Recorder discards everything.
type Recorder struct {
	registry   *prometheus.Registry
	conditions *prometheus.CounterVec
	durations  *prometheus.HistogramVec

	mu     sync.Mutex
	counts map[string]map[Severity]int
}

// New returns a Recorder backed by its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		conditions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fontdb",
			Name:      "conditions_total",
			Help:      "Conditions reported by pipeline stages.",
		}, []string{"stage", "severity"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fontdb",
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each stage.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"stage"}),
		counts: make(map[string]map[Severity]int),
	}
	r.registry.MustRegister(r.conditions, r.durations)
	return r
}

// Inc counts one condition.
func (r *Recorder) Inc(stage string, sev Severity) {
	r.Add(stage, sev, 1)
}

// Add counts n conditions.
func (r *Recorder) Add(stage string, sev Severity, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.conditions.WithLabelValues(stage, string(sev)).Add(float64(n))

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts[stage] == nil {
		r.counts[stage] = make(map[Severity]int)
	}
	r.counts[stage][sev] += n
}

// ObserveStage records how long a stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.durations.WithLabelValues(stage).Observe(d.Seconds())
}

// Count returns the number of conditions recorded for stage and severity.
func (r *Recorder) Count(stage string, sev Severity) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[stage][sev]
}

// Total returns the number of conditions of sev across all stages.
func (r *Recorder) Total(sev Severity) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, bySev := range r.counts {
		total += bySev[sev]
	}
	return total
}

// Line is one row of the run summary.
type Line struct {
	Stage    string
	Severity Severity
	Count    int
}

// String formats the line for the summary log.
func (l Line) String() string {
	return fmt.Sprintf("%s/%s=%d", l.Stage, l.Severity, l.Count)
}

// Summary returns every non-zero count ordered by stage, then severity.
func (r *Recorder) Summary() []Line {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var lines []Line
	for stage, bySev := range r.counts {
		for sev, n := range bySev {
			if n > 0 {
				lines = append(lines, Line{Stage: stage, Severity: sev, Count: n})
			}
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Stage != lines[j].Stage {
			return lines[i].Stage < lines[j].Stage
		}
		return lines[i].Severity < lines[j].Severity
	})
	return lines
}

// WriteTextfile writes the registry in the Prometheus text format to path.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
