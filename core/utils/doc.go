// Package utils provides small helpers shared by the pipeline stages.
// It includes loose type conversion for externally produced records and
// human readable formatting of sizes and counts.
package utils
