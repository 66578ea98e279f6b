package stats

import (
	"sort"

	"lycans-tracker/internal/domain"
)

type PairStat struct {
	Players [2]string `json:"players"` // display names, sorted
	Games   int       `json:"games"`
	Wins    int       `json:"wins"`
	WinRate Rate      `json:"winRate"`
}

type PairingStats struct {
	WolfPairs  []PairStat `json:"wolfPairs"`
	LoverPairs []PairStat `json:"loverPairs"`
}

type pairKey struct {
	a, b string // identity keys, a < b
}

type pairBucket struct {
	names [2]string
	games int
	wins  int
}

// PairingStatsOf enumerates unordered pairs of players sharing a
// special assignment in the same game: two wolf-family members, or two
// lovers. minWolf and minLovers gate how many co-occurrences a pair
// needs before it appears in the table; tiny samples read as noise.
func PairingStatsOf(games []domain.GameRecord, minWolf, minLovers int) PairingStats {
	wolves := map[pairKey]*pairBucket{}
	lovers := map[pairKey]*pairBucket{}

	for i := range games {
		g := &games[i]
		winning, hasWinner := WinningCamp(g)

		var wolfSide, loverSide []*domain.PlayerRecord
		for j := range g.Players {
			p := &g.Players[j]
			switch camp := ResolveCamp(g, p, Initial); {
			case IsWolfFamily(camp):
				wolfSide = append(wolfSide, p)
			case camp == CampAmoureux:
				loverSide = append(loverSide, p)
			}
		}

		tallyPairs(wolves, wolfSide, hasWinner && winning == CampLoups)
		tallyPairs(lovers, loverSide, hasWinner && winning == CampAmoureux)
	}

	return PairingStats{
		WolfPairs:  finishPairs(wolves, minWolf),
		LoverPairs: finishPairs(lovers, minLovers),
	}
}

func tallyPairs(buckets map[pairKey]*pairBucket, side []*domain.PlayerRecord, won bool) {
	for i := 0; i < len(side); i++ {
		ki, ok := playerKey(side[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(side); j++ {
			kj, ok := playerKey(side[j])
			if !ok || ki == kj {
				continue
			}

			key := pairKey{a: ki, b: kj}
			names := [2]string{side[i].Name, side[j].Name}
			if kj < ki {
				key = pairKey{a: kj, b: ki}
				names = [2]string{side[j].Name, side[i].Name}
			}

			b, seen := buckets[key]
			if !seen {
				b = &pairBucket{}
				buckets[key] = b
			}
			b.names = names
			b.games++
			if won {
				b.wins++
			}
		}
	}
}

func finishPairs(buckets map[pairKey]*pairBucket, min int) []PairStat {
	var out []PairStat
	for _, b := range buckets {
		if b.games < min {
			continue
		}
		out = append(out, PairStat{
			Players: b.names,
			Games:   b.games,
			Wins:    b.wins,
			WinRate: NewRate(b.wins, b.games),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Players[0] < out[j].Players[0]
	})

	return out
}
