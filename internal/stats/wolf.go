package stats

import (
	"sort"

	"lycans-tracker/internal/domain"
)

var transformActions = map[string]bool{
	"transformation": true,
	"transform":      true,
}

var untransformActions = map[string]bool{
	"détransformation": true,
	"detransformation": true,
	"untransform":      true,
}

// NightsAsWolf counts how many nights a wolf had a transformation
// opportunity before the given death-or-game-end timing. Dying during
// night k still counts that night; reaching day or meeting k means
// k-1 completed nights. An unresolved "U{k}" code gets the
// conservative estimate (k-1)/2 — a placeholder heuristic, not an
// exact rule. Missing or unparseable codes count zero.
func NightsAsWolf(timing string) int {
	t, ok := ParseTiming(timing)
	if !ok {
		return 0
	}

	var nights int
	switch t.Phase {
	case PhaseNight:
		nights = t.Number
	case PhaseDay, PhaseMeeting:
		nights = t.Number - 1
	default:
		nights = (t.Number - 1) / 2
	}

	if nights < 0 {
		return 0
	}
	return nights
}

type TransformStat struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Games              int     `json:"games"`
	Transforms         int     `json:"transforms"`
	Untransforms       int     `json:"untransforms"`
	Nights             int     `json:"nights"`
	TransformsPerNight float64 `json:"transformsPerNight"`
}

// TransformStatsOf computes opportunity-adjusted transformation ratios
// for every wolf-family player. Counting nights instead of games keeps
// a wolf shot on night one from looking passive.
func TransformStatsOf(games []domain.GameRecord) []TransformStat {
	buckets := foldPlayers(games,
		func(pc playerContext) (string, bool) {
			if !IsWolfFamily(pc.FinalCamp) {
				return "", false
			}
			return playerKey(pc.Player)
		},
		func(pc playerContext) *TransformStat {
			id, _ := playerKey(pc.Player)
			return &TransformStat{ID: id}
		},
		func(s *TransformStat, pc playerContext) {
			s.Name = pc.Player.Name
			s.Games++

			for _, a := range pc.Player.Actions {
				switch t := normalize(a.Type); {
				case transformActions[t]:
					s.Transforms++
				case untransformActions[t]:
					s.Untransforms++
				}
			}

			timing := pc.Game.EndTiming
			if pc.Player.Death != nil && pc.Player.Death.Timing != "" {
				timing = pc.Player.Death.Timing
			}
			s.Nights += NightsAsWolf(timing)
		},
	)

	var out []TransformStat
	for _, s := range buckets {
		if s.Nights > 0 {
			s.TransformsPerNight = float64(s.Transforms) / float64(s.Nights)
		}
		out = append(out, *s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Nights != out[j].Nights {
			return out[i].Nights > out[j].Nights
		}
		return out[i].ID < out[j].ID
	})

	return out
}
