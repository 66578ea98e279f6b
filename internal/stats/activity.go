package stats

import (
	"sort"

	"lycans-tracker/internal/domain"
)

type DayActivity struct {
	Date       string  `json:"date"` // "2006-01-02"
	Games      int     `json:"games"`
	Players    int     `json:"players"`
	AvgPlayers float64 `json:"avgPlayers"`
}

// ActivityByDay groups games by the calendar date they started on.
func ActivityByDay(games []domain.GameRecord) []DayActivity {
	byDay := map[string]*DayActivity{}

	for i := range games {
		g := &games[i]
		if g.StartedAt.IsZero() {
			continue
		}
		date := g.StartedAt.Format("2006-01-02")
		d, seen := byDay[date]
		if !seen {
			d = &DayActivity{Date: date}
			byDay[date] = d
		}
		d.Games++
		d.Players += len(g.Players)
	}

	var out []DayActivity
	for _, d := range byDay {
		if d.Games > 0 {
			d.AvgPlayers = float64(d.Players) / float64(d.Games)
		}
		out = append(out, *d)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
