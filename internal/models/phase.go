// Package models contains domain types for the lunar review analysis.
// CSV ingestion lives in internal/adapters/csvsource; these types carry
// no parsing or persistence concerns.
package models

import "time"

// PhaseCode encodes a principal moon phase as a small integer.
// The ordering matters: a lunation walks 1→2→3→4 and wraps back to 1.
type PhaseCode int

// Phase code constants
const (
	PhaseUnknown      PhaseCode = 0
	PhaseNewMoon      PhaseCode = 1
	PhaseFirstQuarter PhaseCode = 2
	PhaseFullMoon     PhaseCode = 3
	PhaseLastQuarter  PhaseCode = 4
)

// phaseLabels maps the recognized source-file labels to their codes.
// Any label outside this map is a data-entry error in the source file
// and must be surfaced, not coerced.
var phaseLabels = map[string]PhaseCode{
	"New Moon":      PhaseNewMoon,
	"First Quarter": PhaseFirstQuarter,
	"Full Moon":     PhaseFullMoon,
	"Last Quarter":  PhaseLastQuarter,
}

// ParsePhaseLabel maps a phase label string to its code.
// Returns PhaseUnknown and false for unrecognized labels.
func ParsePhaseLabel(label string) (PhaseCode, bool) {
	code, ok := phaseLabels[label]
	if !ok {
		return PhaseUnknown, false
	}
	return code, true
}

// String returns the canonical label for the code.
func (c PhaseCode) String() string {
	switch c {
	case PhaseNewMoon:
		return "New Moon"
	case PhaseFirstQuarter:
		return "First Quarter"
	case PhaseFullMoon:
		return "Full Moon"
	case PhaseLastQuarter:
		return "Last Quarter"
	default:
		return "Unknown"
	}
}

// Valid reports whether the code is one of the four principal phases.
func (c PhaseCode) Valid() bool {
	return c >= PhaseNewMoon && c <= PhaseLastQuarter
}

// PhaseRange marks the start of a named phase. The phase is in effect
// from StartDate until the next PhaseRange's StartDate in chronological
// order (half-open interval, inclusive lower bound).
type PhaseRange struct {
	StartDate time.Time
	Label     string
	Code      PhaseCode
}
