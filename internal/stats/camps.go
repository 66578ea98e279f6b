package stats

import (
	"sort"

	"lycans-tracker/internal/domain"
)

type CampWinStat struct {
	Camp    Camp `json:"camp"`
	Wins    int  `json:"wins"`
	WinRate Rate `json:"winRate"`
}

type CampWinStats struct {
	TotalGames      int           `json:"totalGames"`
	GamesWithWinner int           `json:"gamesWithWinner"`
	Camps           []CampWinStat `json:"camps"`
}

// CampWinStatsOf tallies the winning camp of every decided game. Games
// without a victor count in TotalGames but in no camp's numerator, and
// every rate shares the decided-games denominator.
func CampWinStatsOf(games []domain.GameRecord) CampWinStats {
	wins := map[Camp]int{}
	decided := 0

	for i := range games {
		winning, ok := WinningCamp(&games[i])
		if !ok {
			continue
		}
		decided++
		wins[winning]++
	}

	out := CampWinStats{TotalGames: len(games), GamesWithWinner: decided}
	for camp, n := range wins {
		out.Camps = append(out.Camps, CampWinStat{
			Camp:    camp,
			Wins:    n,
			WinRate: NewRate(n, decided),
		})
	}

	sort.Slice(out.Camps, func(i, j int) bool {
		if out.Camps[i].Wins != out.Camps[j].Wins {
			return out.Camps[i].Wins > out.Camps[j].Wins
		}
		return out.Camps[i].Camp < out.Camps[j].Camp
	})

	return out
}
