package stats

import (
	"sort"

	"lycans-tracker/internal/domain"
)

type PlayerStat struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"` // latest display name seen
	Games       int          `json:"games"`
	Wins        int          `json:"wins"`
	WinRate     Rate         `json:"winRate"`
	CampGames   map[Camp]int `json:"campGames"` // final-camp appearance histogram
	FirstPlayed string       `json:"firstPlayed,omitempty"`
	LastPlayed  string       `json:"lastPlayed,omitempty"`
}

type PlayerStatsData struct {
	TotalGames int          `json:"totalGames"`
	Players    []PlayerStat `json:"players"`
}

type playerBucket struct {
	stat        PlayerStat
	lastStarted int64
}

// PlayerStatsOf builds the per-player table, keyed by stable id when
// the record carries one and by normalized display name otherwise. The
// display name surfaced is the one from the player's most recent game.
func PlayerStatsOf(games []domain.GameRecord) PlayerStatsData {
	buckets := foldPlayers(games,
		func(pc playerContext) (string, bool) {
			return playerKey(pc.Player)
		},
		func(pc playerContext) *playerBucket {
			id, _ := playerKey(pc.Player)
			return &playerBucket{stat: PlayerStat{
				ID:        id,
				CampGames: map[Camp]int{},
			}}
		},
		func(b *playerBucket, pc playerContext) {
			b.stat.Games++
			if pc.Won {
				b.stat.Wins++
			}
			b.stat.CampGames[pc.FinalCamp]++

			started := pc.Game.StartedAt.Unix()
			if b.stat.Name == "" || started >= b.lastStarted {
				b.stat.Name = pc.Player.Name
				b.lastStarted = started
				b.stat.LastPlayed = pc.Game.StartedAt.Format("2006-01-02")
			}
			if b.stat.FirstPlayed == "" || pc.Game.StartedAt.Format("2006-01-02") < b.stat.FirstPlayed {
				b.stat.FirstPlayed = pc.Game.StartedAt.Format("2006-01-02")
			}
		},
	)

	out := PlayerStatsData{TotalGames: len(games)}
	for _, b := range buckets {
		b.stat.WinRate = NewRate(b.stat.Wins, b.stat.Games)
		out.Players = append(out.Players, b.stat)
	}

	sort.Slice(out.Players, func(i, j int) bool {
		if out.Players[i].Games != out.Players[j].Games {
			return out.Players[i].Games > out.Players[j].Games
		}
		return out.Players[i].ID < out.Players[j].ID
	})

	return out
}
