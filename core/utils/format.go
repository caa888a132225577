package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Bytes formats a byte count for humans, e.g. "1.2 MB".
func Bytes(n int64) string {
	if n < 0 {
		return "-" + humanize.Bytes(uint64(-n))
	}
	return humanize.Bytes(uint64(n))
}

// Count formats an integer with thousands separators, e.g. "1,482".
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Signed formats a delta with an explicit sign, e.g. "+3" or "-1".
func Signed(n int) string {
	if n >= 0 {
		return "+" + humanize.Comma(int64(n))
	}
	return humanize.Comma(int64(n))
}

// Percent formats a ratio in [0,1] as a percentage with one decimal.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
