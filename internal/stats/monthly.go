package stats

import (
	"sort"

	"lycans-tracker/internal/domain"
)

type MonthlyPlayerRank struct {
	Rank    int    `json:"rank"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Games   int    `json:"games"`
	Wins    int    `json:"wins"`
	WinRate Rate   `json:"winRate"`
	// Delta is the rank movement against the previous prefix when the
	// ranking is replayed progressively; positive means climbing.
	Delta int `json:"delta,omitempty"`
}

type MonthRanking struct {
	Month   string              `json:"month"` // "2006-01"
	Games   int                 `json:"games"`
	Ranking []MonthlyPlayerRank `json:"ranking"`
}

type MonthlyRanking struct {
	Months []MonthRanking `json:"months"`
}

// MonthlyRankingOf groups games by calendar month of their start date
// and ranks each month's players by win rate. participationFloor is
// the fraction of the month's games a player must have played to be
// ranked at all; small samples otherwise dominate the top of the
// table.
func MonthlyRankingOf(games []domain.GameRecord, participationFloor float64) MonthlyRanking {
	byMonth := splitByMonth(games)

	var out MonthlyRanking
	for month, monthGames := range byMonth {
		out.Months = append(out.Months, MonthRanking{
			Month:   month,
			Games:   len(monthGames),
			Ranking: rankGames(monthGames, participationFloor),
		})
	}

	sort.Slice(out.Months, func(i, j int) bool {
		return out.Months[i].Month < out.Months[j].Month
	})

	return out
}

// MonthRankingAt recomputes one month's ranking over its first prefix
// games (in chronological order) and fills Delta against the ranking
// at prefix-1. This drives the progressive leaderboard animation.
func MonthRankingAt(games []domain.GameRecord, month string, prefix int, participationFloor float64) MonthRanking {
	monthGames := splitByMonth(games)[month]
	if prefix < 0 {
		prefix = 0
	}
	if prefix > len(monthGames) {
		prefix = len(monthGames)
	}

	current := rankGames(monthGames[:prefix], participationFloor)

	if prefix > 1 {
		previous := map[string]int{}
		for _, r := range rankGames(monthGames[:prefix-1], participationFloor) {
			previous[r.ID] = r.Rank
		}
		for i := range current {
			if prev, ok := previous[current[i].ID]; ok {
				current[i].Delta = prev - current[i].Rank
			}
		}
	}

	return MonthRanking{Month: month, Games: prefix, Ranking: current}
}

func splitByMonth(games []domain.GameRecord) map[string][]domain.GameRecord {
	byMonth := map[string][]domain.GameRecord{}
	for _, g := range games {
		if g.StartedAt.IsZero() {
			continue
		}
		month := g.StartedAt.Format("2006-01")
		byMonth[month] = append(byMonth[month], g)
	}
	for _, monthGames := range byMonth {
		sort.SliceStable(monthGames, func(i, j int) bool {
			return monthGames[i].StartedAt.Before(monthGames[j].StartedAt)
		})
	}
	return byMonth
}

func rankGames(games []domain.GameRecord, participationFloor float64) []MonthlyPlayerRank {
	if len(games) == 0 {
		return nil
	}

	data := PlayerStatsOf(games)

	var ranking []MonthlyPlayerRank
	for _, p := range data.Players {
		if float64(p.Games) < participationFloor*float64(len(games)) {
			continue
		}
		ranking = append(ranking, MonthlyPlayerRank{
			ID:      p.ID,
			Name:    p.Name,
			Games:   p.Games,
			Wins:    p.Wins,
			WinRate: p.WinRate,
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		ri, _ := ranking[i].WinRate.Value()
		rj, _ := ranking[j].WinRate.Value()
		if ri != rj {
			return ri > rj
		}
		if ranking[i].Wins != ranking[j].Wins {
			return ranking[i].Wins > ranking[j].Wins
		}
		if ranking[i].Games != ranking[j].Games {
			return ranking[i].Games > ranking[j].Games
		}
		return ranking[i].ID < ranking[j].ID
	})

	for i := range ranking {
		ranking[i].Rank = i + 1
	}

	return ranking
}
