package repo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/flightboard/internal/repo"
)

func TestRateLimit_SlidingWindow(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	rl := repo.NewRateLimit(2, time.Hour)
	rl.SetClock(func() time.Time { return now })

	assert.True(t, rl.Take())
	now = now.Add(10 * time.Minute)
	assert.True(t, rl.Take())
	assert.False(t, rl.Take())
	assert.Equal(t, 50*time.Minute, rl.WaitDuration())

	// The first request leaves the window after an hour.
	now = now.Add(50*time.Minute + time.Second)
	assert.Zero(t, rl.WaitDuration())
	assert.True(t, rl.Take())
	assert.False(t, rl.Take())
}

func TestRateLimit_ZeroBudgetNeverAllows(t *testing.T) {
	rl := repo.NewRateLimit(0, time.Minute)

	assert.False(t, rl.Take())
}
