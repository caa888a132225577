// Package metrics counts the conditions every pipeline stage reports.
//
// Each logged condition (error, warning, info or recoverable failure)
// increments a Prometheus counter labelled by stage and severity. The counts
// are printed in the final run summary and may be exported in the Prometheus
// text format for a node exporter textfile collector.
package metrics
