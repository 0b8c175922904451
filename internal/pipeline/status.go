package pipeline

import "strings"

// Display vocabulary for flight status.
const (
	StatusLanded    = "landed"
	StatusInFlight  = "in-flight"
	StatusScheduled = "scheduled"

	// statusActive is the upstream word for an airborne flight.
	statusActive = "active"
)

// NormalizeStatus maps an upstream status to the lowercase token used for
// comparison and display. Unknown values pass through lowercased, never as an
// error. NormalizeStatus(NormalizeStatus(s)) == NormalizeStatus(s).
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DisplayStatus is NormalizeStatus followed by the rewrite of the upstream
// "active" to "in-flight" that kept records receive.
func DisplayStatus(s string) string {
	if n := NormalizeStatus(s); n != statusActive {
		return n
	}
	return StatusInFlight
}
