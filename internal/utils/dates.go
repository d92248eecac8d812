package utils

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidInstant = errors.New("must be RFC3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD")

// instantLayouts are tried in order; the second is what an HTML datetime-local input sends.
var instantLayouts = []struct {
	layout      string
	granularity time.Duration
}{
	{time.RFC3339, time.Minute},
	{"2006-01-02T15:04", time.Minute},
	{"2006-01-02", 24 * time.Hour},
}

// ParseInstant parses s as a point in time. Layouts without a zone are read as UTC.
// The returned granularity is the precision callers should compare at.
func ParseInstant(s string) (time.Time, time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, l := range instantLayouts {
		if t, err := time.Parse(l.layout, s); err == nil {
			return t.UTC(), l.granularity, nil
		}
	}
	return time.Time{}, 0, ErrInvalidInstant
}

// NotBefore reports whether t is at or after now when both are truncated to granularity.
func NotBefore(t, now time.Time, granularity time.Duration) bool {
	return !t.UTC().Truncate(granularity).Before(now.UTC().Truncate(granularity))
}
