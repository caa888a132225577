package preview

import (
	"testing"
	"time"
)

func mustTime(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
}
