package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase is the part of a game day a timing code points at.
type Phase int

const (
	PhaseNight Phase = iota
	PhaseDay
	PhaseMeeting
	PhaseUnknown
)

func (p Phase) String() string {
	switch p {
	case PhaseNight:
		return "Nuit"
	case PhaseDay:
		return "Journée"
	case PhaseMeeting:
		return "Meeting"
	default:
		return "Inconnu"
	}
}

func (p Phase) letter() string {
	switch p {
	case PhaseNight:
		return "N"
	case PhaseDay:
		return "J"
	case PhaseMeeting:
		return "M"
	default:
		return "U"
	}
}

// Timing is a parsed phase+ordinal code such as "N2", "J3" or "M1".
type Timing struct {
	Phase  Phase
	Number int
}

// ParseTiming parses a short timing code. The empty string and anything
// that does not start with a known phase letter followed by a number
// fail with ok=false; callers degrade rather than abort.
func ParseTiming(code string) (Timing, bool) {
	code = strings.TrimSpace(code)
	if len(code) < 2 {
		return Timing{}, false
	}

	var phase Phase
	switch strings.ToUpper(code[:1]) {
	case "N":
		phase = PhaseNight
	case "J":
		phase = PhaseDay
	case "M":
		phase = PhaseMeeting
	case "U":
		phase = PhaseUnknown
	default:
		return Timing{}, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(code[1:]))
	if err != nil || n < 0 {
		return Timing{}, false
	}

	return Timing{Phase: phase, Number: n}, true
}

func (t Timing) String() string {
	return fmt.Sprintf("%s%d", t.Phase.letter(), t.Number)
}

// Less orders timings by ordinal first, then Night < Day < Meeting
// within the same ordinal. Unknown sorts after everything of its
// ordinal.
func (t Timing) Less(other Timing) bool {
	if t.Number != other.Number {
		return t.Number < other.Number
	}
	return t.Phase < other.Phase
}
