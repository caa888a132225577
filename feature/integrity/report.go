package integrity

import (
	"time"

	"fontdb/feature/integrity/checks"
)

// Status is the overall outcome of a validation.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Details lists every message by severity.
type Details struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Info     []string `json:"info"`
}

// Report is the validation report written next to the artifacts.
type Report struct {
	ValidationDate time.Time `json:"validation_date"`
	Errors         int       `json:"errors"`
	Warnings       int       `json:"warnings"`
	InfoMessages   int       `json:"info_messages"`
	OverallStatus  Status    `json:"overall_status"`
	Details        Details   `json:"details"`
}

// NewReport summarizes findings. The status is PASS iff there are no errors.
func NewReport(now time.Time, findings checks.Findings) *Report {
	r := &Report{
		ValidationDate: now.UTC(),
		Errors:         findings.Count(checks.SeverityError),
		Warnings:       findings.Count(checks.SeverityWarning),
		InfoMessages:   findings.Count(checks.SeverityInfo),
		Details: Details{
			Errors:   findings.Messages(checks.SeverityError),
			Warnings: findings.Messages(checks.SeverityWarning),
			Info:     findings.Messages(checks.SeverityInfo),
		},
	}
	r.OverallStatus = StatusPass
	if r.Errors > 0 {
		r.OverallStatus = StatusFail
	}
	return r
}

// Passed reports whether the validation found no errors.
func (r *Report) Passed() bool {
	return r.OverallStatus == StatusPass
}
