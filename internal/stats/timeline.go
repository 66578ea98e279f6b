package stats

import (
	"fmt"
	"sort"
	"time"

	"lycans-tracker/internal/domain"
)

const (
	EventAction     = "action"
	EventVote       = "vote"
	EventDeath      = "death"
	EventRoleChange = "roleChange"
	EventGameEnd    = "gameEnd"
)

// phaseLength is the assumed duration of one game phase, used only to
// bucket role changes that carry no native timing code. It is an
// approximation: the real phase clock varies by a few dozen seconds
// per game.
const phaseLength = 4 * time.Minute

type TimelineEvent struct {
	Type      string           `json:"type"`
	Player    string           `json:"player,omitempty"`
	Target    string           `json:"target,omitempty"`
	Detail    string           `json:"detail,omitempty"`
	Timing    string           `json:"timing,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *domain.Position `json:"position,omitempty"`
}

type TimelinePhase struct {
	Code   string          `json:"code"`
	Phase  string          `json:"phase"`
	Events []TimelineEvent `json:"events"`
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
}

type GameTimeline struct {
	GameID      string          `json:"gameId"`
	Phases      []TimelinePhase `json:"phases"`
	TotalEvents int             `json:"totalEvents"`
	AllPlayers  []string        `json:"allPlayers"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
}

// BuildTimeline merges one game's per-player event lists into a single
// chronological, phase-grouped view. Events whose timing code cannot
// be parsed stay in the flat count but are left out of the phase
// grouping. Phases are ordered by game logic (ordinal, then
// Night < Day < Meeting), not by their first event's wall clock, since
// recorded clocks occasionally disagree with phase logic.
func BuildTimeline(game *domain.GameRecord) GameTimeline {
	var events []TimelineEvent

	for i := range game.Players {
		p := &game.Players[i]

		for _, a := range p.Actions {
			events = append(events, TimelineEvent{
				Type:      EventAction,
				Player:    p.Name,
				Target:    a.Target,
				Detail:    a.Type,
				Timing:    a.Timing,
				Timestamp: a.Timestamp,
				Position:  a.Position,
			})
		}

		for _, v := range p.Votes {
			events = append(events, TimelineEvent{
				Type:      EventVote,
				Player:    p.Name,
				Target:    v.Target,
				Timing:    meetingCode(v.Timing),
				Timestamp: v.Timestamp,
			})
		}

		if p.Death != nil {
			events = append(events, TimelineEvent{
				Type:      EventDeath,
				Player:    p.Name,
				Detail:    p.Death.Type,
				Target:    p.Death.Killer,
				Timing:    p.Death.Timing,
				Timestamp: p.Death.Timestamp,
			})
		}

		for _, rc := range p.RoleChanges {
			timing := rc.Timing
			if timing == "" {
				timing = approximateTiming(game.StartedAt, rc.Timestamp)
			}
			events = append(events, TimelineEvent{
				Type:      EventRoleChange,
				Player:    p.Name,
				Detail:    rc.Role,
				Timing:    timing,
				Timestamp: rc.Timestamp,
			})
		}
	}

	events = append(events, TimelineEvent{
		Type:      EventGameEnd,
		Timing:    game.EndTiming,
		Timestamp: game.EndedAt,
	})

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	out := GameTimeline{
		GameID:      game.ID,
		TotalEvents: len(events),
		Start:       game.StartedAt,
		End:         game.EndedAt,
	}

	for i := range game.Players {
		out.AllPlayers = append(out.AllPlayers, game.Players[i].Name)
	}

	phases := map[Timing]*TimelinePhase{}
	var order []Timing
	for _, ev := range events {
		t, ok := ParseTiming(ev.Timing)
		if !ok {
			continue
		}
		ph, seen := phases[t]
		if !seen {
			ph = &TimelinePhase{Code: t.String(), Phase: t.Phase.String(), Start: ev.Timestamp, End: ev.Timestamp}
			phases[t] = ph
			order = append(order, t)
		}
		ph.Events = append(ph.Events, ev)
		if ev.Timestamp.Before(ph.Start) {
			ph.Start = ev.Timestamp
		}
		if ev.Timestamp.After(ph.End) {
			ph.End = ev.Timestamp
		}
	}

	sort.Slice(order, func(i, j int) bool { return order[i].Less(order[j]) })
	for _, t := range order {
		out.Phases = append(out.Phases, *phases[t])
	}

	return out
}

// meetingCode rewrites a vote's timing onto the meeting phase of its
// day: votes only ever happen in meetings, whatever phase letter the
// export recorded.
func meetingCode(timing string) string {
	t, ok := ParseTiming(timing)
	if !ok {
		return timing
	}
	return fmt.Sprintf("M%d", t.Number)
}

// approximateTiming places an untimed event by elapsed time since game
// start, walking the Night/Day/Meeting cycle in fixed-length slots.
func approximateTiming(start, at time.Time) string {
	if start.IsZero() || at.Before(start) {
		return ""
	}

	slot := int(at.Sub(start) / phaseLength)
	day := slot/3 + 1
	switch slot % 3 {
	case 0:
		return fmt.Sprintf("N%d", day)
	case 1:
		return fmt.Sprintf("J%d", day)
	default:
		return fmt.Sprintf("M%d", day)
	}
}
