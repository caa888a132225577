// Package stats derives the descriptive statistics published as stats.json.
package stats
