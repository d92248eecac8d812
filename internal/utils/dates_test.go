package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstant(t *testing.T) {
	cases := []struct {
		in          string
		want        time.Time
		granularity time.Duration
	}{
		{"2030-05-01T14:30:00Z", time.Date(2030, 5, 1, 14, 30, 0, 0, time.UTC), time.Minute},
		{"2030-05-01T14:30:00-03:00", time.Date(2030, 5, 1, 17, 30, 0, 0, time.UTC), time.Minute},
		{"2030-05-01T14:30", time.Date(2030, 5, 1, 14, 30, 0, 0, time.UTC), time.Minute},
		{" 2030-05-01 ", time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), 24 * time.Hour},
	}
	for _, tc := range cases {
		got, g, err := ParseInstant(tc.in)
		require.NoError(t, err, tc.in)
		assert.True(t, tc.want.Equal(got), tc.in)
		assert.Equal(t, tc.granularity, g, tc.in)
	}

	for _, bad := range []string{"", "tomorrow", "2030-13-01", "01/05/2030"} {
		_, _, err := ParseInstant(bad)
		assert.ErrorIs(t, err, ErrInvalidInstant, bad)
	}
}

func TestNotBefore(t *testing.T) {
	now := time.Date(2030, 5, 1, 14, 30, 45, 0, time.UTC)

	assert.True(t, NotBefore(now.Add(-30*time.Second), now, time.Minute), "same minute counts as present")
	assert.False(t, NotBefore(now.Add(-time.Minute), now, time.Minute))
	assert.True(t, NotBefore(time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), now, 24*time.Hour))
	assert.False(t, NotBefore(time.Date(2030, 4, 30, 0, 0, 0, 0, time.UTC), now, 24*time.Hour))
}
