package stats

import (
	"math"

	"lycans-tracker/internal/domain"
)

// BuildScaler fits a min-max normalizer over the given population and
// returns a function mapping a raw value onto [0,100] relative to it.
// A degenerate population (empty, or every value equal) yields the
// constant 50: there is no spread to place anyone on, and pretending
// otherwise is false precision.
func BuildScaler(values []float64) func(float64) float64 {
	if len(values) == 0 {
		return func(float64) float64 { return 50 }
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		return func(float64) float64 { return 50 }
	}

	spread := max - min
	return func(v float64) float64 {
		score := 100 * (v - min) / spread
		if score < 0 {
			return 0
		}
		if score > 100 {
			return 100
		}
		return score
	}
}

const (
	// consistencyFloor is returned below the minimum sample: an
	// explicit "insufficient evidence" answer instead of extrapolating
	// from a handful of games.
	consistencyFloor = 25

	// minCampSample gates each camp sub-history before its variance
	// contributes to the composite.
	minCampSample = 10

	// naturalAlternation is the alternation frequency of a coin-flip
	// outcome sequence; deviations in either direction read as
	// streakiness or churn.
	naturalAlternation = 0.5

	weightCampVariance = 0.40
	weightTemporal     = 0.35
	weightStreak       = 0.25
)

type outcome struct {
	camp Camp
	won  bool
}

// AdvancedConsistency scores how repeatable a player's results are,
// on [5,95]. It blends outcome variance inside the Villageois and
// wolf-family sub-histories, win-rate stability across the early,
// middle and late thirds of the player's history, and a streak
// volatility penalty. Players with fewer than minSample games get the
// fixed floor.
func AdvancedConsistency(games []domain.GameRecord, playerID string, minSample int) float64 {
	history := playerHistory(games, playerID)
	if len(history) < minSample {
		return consistencyFloor
	}

	total := 0.0
	weighted := 0.0

	if s, ok := campVarianceScore(history); ok {
		weighted += weightCampVariance * s
		total += weightCampVariance
	}
	weighted += weightTemporal * temporalStabilityScore(history)
	total += weightTemporal
	weighted += weightStreak * streakScore(history)
	total += weightStreak

	score := weighted / total
	if score < 5 {
		return 5
	}
	if score > 95 {
		return 95
	}
	return score
}

// playerHistory collects the player's (camp, outcome) pairs in
// chronological game order.
func playerHistory(games []domain.GameRecord, playerID string) []outcome {
	id := normalize(playerID)
	var history []outcome

	for i := range games {
		g := &games[i]
		winning, hasWinner := WinningCamp(g)
		for j := range g.Players {
			p := &g.Players[j]
			key, ok := playerKey(p)
			if !ok || key != id {
				continue
			}
			camp := ResolveCamp(g, p, Final)
			history = append(history, outcome{
				camp: camp,
				won:  hasWinner && CampWon(camp, winning, p.Victorious),
			})
		}
	}

	return history
}

// campVarianceScore turns the Bernoulli outcome variance of the two
// main sub-histories into a 0-100 consistency reading. p(1-p) peaks at
// 0.25 for a coin-flip player, so 1-4p(1-p) is 1 for perfectly
// repeatable results and 0 for maximal churn. Sub-histories below the
// gate are left out; ok is false when neither qualifies.
func campVarianceScore(history []outcome) (float64, bool) {
	var village, wolves []bool
	for _, o := range history {
		switch {
		case o.camp == CampVillageois:
			village = append(village, o.won)
		case IsWolfFamily(o.camp):
			wolves = append(wolves, o.won)
		}
	}

	sum := 0.0
	n := 0
	for _, sub := range [][]bool{village, wolves} {
		if len(sub) < minCampSample {
			continue
		}
		p := winFraction(sub)
		sum += 100 * (1 - 4*p*(1-p))
		n++
	}

	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// temporalStabilityScore compares win rates across the early, middle
// and late thirds of the history; the wider the spread, the lower the
// score.
func temporalStabilityScore(history []outcome) float64 {
	third := len(history) / 3
	if third == 0 {
		return 50
	}

	rates := []float64{
		winFractionOf(history[:third]),
		winFractionOf(history[third : 2*third]),
		winFractionOf(history[2*third:]),
	}

	min, max := rates[0], rates[0]
	for _, r := range rates[1:] {
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
	}

	return 100 * (1 - (max - min))
}

// streakScore penalizes alternation frequencies far from the natural
// coin-flip target, in either direction.
func streakScore(history []outcome) float64 {
	if len(history) < 2 {
		return 50
	}

	alternations := 0
	for i := 1; i < len(history); i++ {
		if history[i].won != history[i-1].won {
			alternations++
		}
	}

	freq := float64(alternations) / float64(len(history)-1)
	return 100 * (1 - 2*math.Abs(freq-naturalAlternation))
}

func winFraction(outcomes []bool) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	wins := 0
	for _, w := range outcomes {
		if w {
			wins++
		}
	}
	return float64(wins) / float64(len(outcomes))
}

func winFractionOf(history []outcome) float64 {
	if len(history) == 0 {
		return 0
	}
	wins := 0
	for _, o := range history {
		if o.won {
			wins++
		}
	}
	return float64(wins) / float64(len(history))
}
