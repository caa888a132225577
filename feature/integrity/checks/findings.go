package checks

import "fmt"

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one validation message.
type Finding struct {
	Severity Severity
	Message  string
}

// Findings collects messages in the order checks report them.
type Findings []Finding

// Errorf records an error.
func (f *Findings) Errorf(format string, args ...any) {
	*f = append(*f, Finding{Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a warning.
func (f *Findings) Warnf(format string, args ...any) {
	*f = append(*f, Finding{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// Infof records an informational message.
func (f *Findings) Infof(format string, args ...any) {
	*f = append(*f, Finding{Severity: SeverityInfo, Message: fmt.Sprintf(format, args...)})
}

// Count returns the number of findings of sev.
func (f Findings) Count(sev Severity) int {
	n := 0
	for _, finding := range f {
		if finding.Severity == sev {
			n++
		}
	}
	return n
}

// Messages returns the messages of sev, never nil.
func (f Findings) Messages(sev Severity) []string {
	out := []string{}
	for _, finding := range f {
		if finding.Severity == sev {
			out = append(out, finding.Message)
		}
	}
	return out
}
