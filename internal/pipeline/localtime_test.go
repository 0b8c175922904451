package pipeline_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/flightboard/internal/pipeline"
)

func newConverter(t *testing.T) *pipeline.LocalTimeConverter {
	t.Helper()
	c, err := pipeline.NewLocalTimeConverter("America/New_York")
	require.NoError(t, err)
	return c
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		local  string
		tzName string
	}{
		{"summer", "2024-07-01T12:00:00+00:00", "2024-07-01 08:00", "EDT"},
		{"winter", "2024-01-15T12:00:00Z", "2024-01-15 07:00", "EST"},
		{"unqualified is UTC", "2024-01-15T12:00:00", "2024-01-15 07:00", "EST"},
		{"non-UTC offset", "2024-01-15T13:30:00+01:00", "2024-01-15 07:30", "EST"},
		{"just before spring forward", "2024-03-10T06:59:00+00:00", "2024-03-10 01:59", "EST"},
		{"just after spring forward", "2024-03-10T07:00:00+00:00", "2024-03-10 03:00", "EDT"},
		{"fall back first pass", "2024-11-03T05:30:00+00:00", "2024-11-03 01:30", "EDT"},
		{"fall back second pass", "2024-11-03T06:30:00+00:00", "2024-11-03 01:30", "EST"},
	}
	c := newConverter(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			local, tzName := c.Convert(tc.in)
			assert.Equal(t, tc.local, local)
			assert.Equal(t, tc.tzName, tzName)
		})
	}
}

func TestConvert_MissingOrMalformed(t *testing.T) {
	c := newConverter(t)
	for _, in := range []string{"", "   ", "N/A", "2024-02-30T10:00:00Z", "10:00", "2024/07/01 10:00"} {
		local, tzName := c.Convert(in)
		assert.Equal(t, "N/A", local, "input %q", in)
		assert.Empty(t, tzName, "input %q", in)
	}
}

func TestConvert_ConcurrentUse(t *testing.T) {
	c := newConverter(t)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(h int) {
			defer wg.Done()
			ts := time.Date(2024, 7, 1, h%24, 0, 0, 0, time.UTC).Format(time.RFC3339)
			local, tzName := c.Convert(ts)
			assert.NotEqual(t, "N/A", local)
			assert.Equal(t, "EDT", tzName)
		}(i)
	}
	wg.Wait()
}

func TestNewLocalTimeConverter_UnknownZone(t *testing.T) {
	_, err := pipeline.NewLocalTimeConverter("Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	accepted := []string{
		"2024-07-01T12:00:00+00:00",
		"2024-07-01T12:00:00Z",
		"2024-07-01T12:00:00.000Z",
		"2024-07-01T14:00:00+02:00",
		"2024-07-01T14:00:00+0200",
		"2024-07-01T14:00:00+02",
		"2024-07-01T08:00:00-04:00",
		"2024-07-01T12:00:00",
		"2024-07-01T12:00",
		"2024-07-01 12:00:00",
		"2024-07-01 12:00:00+00:00",
		"  2024-07-01T12:00:00Z  ",
		// Hour-only times.
		"2024-07-01T12",
		"2024-07-01T12Z",
		"2024-07-01T14+02:00",
		// Basic format.
		"20240701T120000Z",
		"20240701T120000.000Z",
		"20240701T140000+0200",
		"20240701T140000+02:00",
		"20240701T1200Z",
		"20240701T12Z",
		"20240701T120000",
		"20240701T1200",
		"20240701T12",
	}
	for _, in := range accepted {
		got, ok := pipeline.ParseTimestamp(in)
		require.True(t, ok, "input %q", in)
		assert.True(t, want.Equal(got), "input %q: got %v", in, got)
		assert.Equal(t, time.UTC, got.Location(), "input %q", in)
	}

	for _, in := range []string{"2024-07-01", "20240701"} {
		day, ok := pipeline.ParseTimestamp(in)
		require.True(t, ok, "input %q", in)
		assert.True(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC).Equal(day), "input %q", in)
	}

	for _, in := range []string{"", "tomorrow", "2024-13-01T00:00:00Z", "2024-07-01T25:00:00+00:00", "07/01/2024", "20241301", "2024-07-01T"} {
		_, ok := pipeline.ParseTimestamp(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestParseTimestamp_Deterministic(t *testing.T) {
	a, okA := pipeline.ParseTimestamp("2024-07-01T12:34:56.789+05:30")
	b, okB := pipeline.ParseTimestamp("2024-07-01T12:34:56.789+05:30")
	require.True(t, okA)
	require.True(t, okB)
	assert.True(t, a.Equal(b))
}
