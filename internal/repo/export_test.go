package repo

import "time"

// SetClock replaces the clock used by r. Test-only.
func (r *RateLimit) SetClock(now func() time.Time) {
	r.now = now
}
