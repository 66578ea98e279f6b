package stats

import (
	"encoding/json"
	"math"

	"lycans-tracker/internal/domain"
)

// Rate is a 0-100 percentage that distinguishes "0%" from "no
// denominator". It marshals to a JSON number rounded for display, or
// null when no denominator ever existed.
type Rate struct {
	value float64
	known bool
}

func NewRate(num, den int) Rate {
	if den == 0 {
		return Rate{}
	}
	return Rate{value: 100 * float64(num) / float64(den), known: true}
}

// Value returns the exact rate and whether one exists. Internal
// consumers (scalers, rankings) use this to keep full precision;
// rounding happens only at the JSON boundary.
func (r Rate) Value() (float64, bool) {
	return r.value, r.known
}

func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.known {
		return []byte("null"), nil
	}
	return json.Marshal(math.Round(r.value*10) / 10)
}

func (r *Rate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Rate{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Rate{value: v, known: true}
	return nil
}

// playerContext is what one (game, player) pair contributes to a
// keyed report: the resolved final camp, the game's outcome and
// whether this player counts as a winner.
type playerContext struct {
	Game      *domain.GameRecord
	Player    *domain.PlayerRecord
	Winning   Camp
	HasWinner bool
	FinalCamp Camp
	Won       bool
}

// foldPlayers is the shared aggregation pipeline: one linear pass over
// every (game, player) pair, bucketed by the extracted key. key may
// reject a pair (ok=false) to drop it from the report; newBucket allocates
// a bucket on first sight. Camp resolution and win determination are
// computed once per game, not once per bucket.
func foldPlayers[K comparable, A any](
	games []domain.GameRecord,
	key func(pc playerContext) (K, bool),
	newBucket func(pc playerContext) *A,
	accum func(a *A, pc playerContext),
) map[K]*A {
	out := map[K]*A{}
	for i := range games {
		g := &games[i]
		winning, hasWinner := WinningCamp(g)
		for j := range g.Players {
			p := &g.Players[j]
			camp := ResolveCamp(g, p, Final)
			pc := playerContext{
				Game:      g,
				Player:    p,
				Winning:   winning,
				HasWinner: hasWinner,
				FinalCamp: camp,
				Won:       hasWinner && CampWon(camp, winning, p.Victorious),
			}
			k, ok := key(pc)
			if !ok {
				continue
			}
			a, seen := out[k]
			if !seen {
				a = newBucket(pc)
				out[k] = a
			}
			accum(a, pc)
		}
	}
	return out
}

// playerKey prefers the stable identity id and falls back to the
// normalized display name for records that predate stable ids.
func playerKey(p *domain.PlayerRecord) (string, bool) {
	if id := normalize(p.StableID); id != "" {
		return id, true
	}
	if name := normalize(p.Name); name != "" {
		return name, true
	}
	return "", false
}
