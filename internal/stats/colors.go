package stats

import (
	"sort"

	"lycans-tracker/internal/domain"
)

type ColorStat struct {
	Color       string  `json:"color"`
	Appearances int     `json:"appearances"`
	Wins        int     `json:"wins"`
	WinRate     Rate    `json:"winRate"`
	UsesPerGame float64 `json:"usesPerGame"` // appearances / total games, population-wide popularity
}

type ColorStats struct {
	TotalGames int         `json:"totalGames"`
	Colors     []ColorStat `json:"colors"`
}

type colorBucket struct {
	appearances int
	wins        int
}

// ColorStatsOf tallies the cosmetic colors. UsesPerGame divides by the
// whole population's game count, not the color's own, so it reads as
// popularity rather than trivially 1.0.
func ColorStatsOf(games []domain.GameRecord) ColorStats {
	buckets := foldPlayers(games,
		func(pc playerContext) (string, bool) {
			c := normalize(pc.Player.Color)
			return c, c != ""
		},
		func(pc playerContext) *colorBucket { return &colorBucket{} },
		func(b *colorBucket, pc playerContext) {
			b.appearances++
			if pc.Won {
				b.wins++
			}
		},
	)

	out := ColorStats{TotalGames: len(games)}
	for color, b := range buckets {
		uses := 0.0
		if len(games) > 0 {
			uses = float64(b.appearances) / float64(len(games))
		}
		out.Colors = append(out.Colors, ColorStat{
			Color:       color,
			Appearances: b.appearances,
			Wins:        b.wins,
			WinRate:     NewRate(b.wins, b.appearances),
			UsesPerGame: uses,
		})
	}

	sort.Slice(out.Colors, func(i, j int) bool {
		if out.Colors[i].Appearances != out.Colors[j].Appearances {
			return out.Colors[i].Appearances > out.Colors[j].Appearances
		}
		return out.Colors[i].Color < out.Colors[j].Color
	})

	return out
}
