// Package season derives the holiday phase and countdown shown on the
// landing page. Everything here is a pure function of the supplied time:
// no persisted or shared state, every caller computes independently.
package season

import "time"

// Phase is the current stretch of the holiday season.
type Phase string

const (
	// PhasePreChristmas runs until Dec 25.
	PhasePreChristmas Phase = "pre-christmas"
	// PhaseChristmas covers Dec 25 through Dec 28.
	PhaseChristmas Phase = "christmas"
	// PhasePreNewYear runs from Dec 29 until Jan 1.
	PhasePreNewYear Phase = "pre-newyear"
)

// Countdown is the remaining time to the current phase target, broken down
// for display.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Status bundles the derived phase with its countdown and label.
type Status struct {
	Phase     Phase     `json:"phase"`
	Message   string    `json:"message"`
	Target    time.Time `json:"target,omitempty"`
	Countdown Countdown `json:"countdown"`
}

// DerivePhase returns the phase for the given instant, evaluated in now's
// location. Boundaries follow the public site: Christmas Day starts the
// christmas phase, Dec 29 flips to the New Year countdown.
func DerivePhase(now time.Time) Phase {
	christmas := time.Date(now.Year(), time.December, 25, 0, 0, 0, 0, now.Location())
	dec29 := time.Date(now.Year(), time.December, 29, 0, 0, 0, 0, now.Location())

	switch {
	case now.Before(christmas):
		return PhasePreChristmas
	case now.Before(dec29):
		return PhaseChristmas
	default:
		return PhasePreNewYear
	}
}

// Current computes the full seasonal status for the given instant. During
// the christmas phase there is nothing to count down to and Target is zero.
func Current(now time.Time) Status {
	switch DerivePhase(now) {
	case PhaseChristmas:
		return Status{Phase: PhaseChristmas, Message: "Merry Christmas! 🎄"}
	case PhasePreNewYear:
		target := time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, now.Location())
		return Status{
			Phase:     PhasePreNewYear,
			Message:   "Until New Year",
			Target:    target,
			Countdown: until(now, target),
		}
	default:
		target := time.Date(now.Year(), time.December, 25, 0, 0, 0, 0, now.Location())
		return Status{
			Phase:     PhasePreChristmas,
			Message:   "Until Christmas",
			Target:    target,
			Countdown: until(now, target),
		}
	}
}

// until breaks the distance to target into display units. A target in the
// past yields the zero Countdown.
func until(now, target time.Time) Countdown {
	d := target.Sub(now)
	if d < 0 {
		return Countdown{}
	}
	return Countdown{
		Days:    int(d / (24 * time.Hour)),
		Hours:   int(d % (24 * time.Hour) / time.Hour),
		Minutes: int(d % time.Hour / time.Minute),
		Seconds: int(d % time.Minute / time.Second),
	}
}
