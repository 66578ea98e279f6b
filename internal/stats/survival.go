package stats

import (
	"sort"

	"lycans-tracker/internal/domain"
)

type PlayerSurvivalStat struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Games         int            `json:"games"`
	Deaths        int            `json:"deaths"`
	SurvivalRate  Rate           `json:"survivalRate"`
	DeathsByPhase map[string]int `json:"deathsByPhase,omitempty"`
	DeathsByType  map[string]int `json:"deathsByType,omitempty"`
}

type KillerStat struct {
	Name          string `json:"name"`
	Kills         int    `json:"kills"`
	UniqueVictims int    `json:"uniqueVictims"`
	TopVictim     string `json:"topVictim,omitempty"`
	TopVictimCamp Camp   `json:"topVictimCamp,omitempty"`
}

type TimingDeathStat struct {
	Code   string `json:"code"`
	Deaths int    `json:"deaths"`
}

type DeathEvent struct {
	Name   string `json:"name"`
	Timing string `json:"timing,omitempty"`
	Type   string `json:"type,omitempty"`
	Killer string `json:"killer,omitempty"`
}

type GameMortality struct {
	GameID        string       `json:"gameId"`
	Players       int          `json:"players"`
	Deaths        int          `json:"deaths"`
	MortalityRate Rate         `json:"mortalityRate"`
	Progression   []DeathEvent `json:"progression,omitempty"`
}

type SurvivalAnalysis struct {
	Players        []PlayerSurvivalStat `json:"players"`
	Killers        []KillerStat         `json:"killers"`
	DeathsByTiming []TimingDeathStat    `json:"deathsByTiming"`
	Games          []GameMortality      `json:"games"`
}

type killerBucket struct {
	name    string
	kills   int
	victims map[string]int
	camps   map[Camp]int
}

// SurvivalAnalysisOf builds every death-centric view in one pass:
// per-player survival, the killer table, the death distribution over
// timing codes, and per-game mortality with the ordered death
// progression.
func SurvivalAnalysisOf(games []domain.GameRecord) SurvivalAnalysis {
	players := foldPlayers(games,
		func(pc playerContext) (string, bool) { return playerKey(pc.Player) },
		func(pc playerContext) *PlayerSurvivalStat {
			id, _ := playerKey(pc.Player)
			return &PlayerSurvivalStat{
				ID:            id,
				DeathsByPhase: map[string]int{},
				DeathsByType:  map[string]int{},
			}
		},
		func(s *PlayerSurvivalStat, pc playerContext) {
			s.Name = pc.Player.Name
			s.Games++
			d := pc.Player.Death
			if d == nil {
				return
			}
			s.Deaths++
			if t, ok := ParseTiming(d.Timing); ok {
				s.DeathsByPhase[t.Phase.String()]++
			}
			if d.Type != "" {
				s.DeathsByType[d.Type]++
			}
		},
	)

	killers := map[string]*killerBucket{}
	timings := map[string]int{}
	var mortality []GameMortality

	for i := range games {
		g := &games[i]
		gm := GameMortality{GameID: g.ID, Players: len(g.Players)}

		for j := range g.Players {
			p := &g.Players[j]
			d := p.Death
			if d == nil {
				continue
			}
			gm.Deaths++
			gm.Progression = append(gm.Progression, DeathEvent{
				Name:   p.Name,
				Timing: d.Timing,
				Type:   d.Type,
				Killer: d.Killer,
			})

			if t, ok := ParseTiming(d.Timing); ok {
				timings[t.String()]++
			}

			if key := normalize(d.Killer); key != "" {
				kb, seen := killers[key]
				if !seen {
					kb = &killerBucket{victims: map[string]int{}, camps: map[Camp]int{}}
					killers[key] = kb
				}
				kb.name = d.Killer
				kb.kills++
				kb.victims[p.Name]++
				kb.camps[ResolveCamp(g, p, Final)]++
			}
		}

		gm.MortalityRate = NewRate(gm.Deaths, gm.Players)
		sortProgression(gm.Progression, g)
		mortality = append(mortality, gm)
	}

	out := SurvivalAnalysis{Games: mortality}

	for _, s := range players {
		s.SurvivalRate = NewRate(s.Games-s.Deaths, s.Games)
		out.Players = append(out.Players, *s)
	}
	sort.Slice(out.Players, func(i, j int) bool {
		if out.Players[i].Games != out.Players[j].Games {
			return out.Players[i].Games > out.Players[j].Games
		}
		return out.Players[i].ID < out.Players[j].ID
	})

	for _, kb := range killers {
		ks := KillerStat{Name: kb.name, Kills: kb.kills, UniqueVictims: len(kb.victims)}
		ks.TopVictim = maxKey(kb.victims)
		ks.TopVictimCamp = maxCamp(kb.camps)
		out.Killers = append(out.Killers, ks)
	}
	sort.Slice(out.Killers, func(i, j int) bool {
		if out.Killers[i].Kills != out.Killers[j].Kills {
			return out.Killers[i].Kills > out.Killers[j].Kills
		}
		return out.Killers[i].Name < out.Killers[j].Name
	})

	for code, n := range timings {
		out.DeathsByTiming = append(out.DeathsByTiming, TimingDeathStat{Code: code, Deaths: n})
	}
	sort.Slice(out.DeathsByTiming, func(i, j int) bool {
		ti, iok := ParseTiming(out.DeathsByTiming[i].Code)
		tj, jok := ParseTiming(out.DeathsByTiming[j].Code)
		if iok && jok {
			return ti.Less(tj)
		}
		return out.DeathsByTiming[i].Code < out.DeathsByTiming[j].Code
	})

	return out
}

// sortProgression orders a game's deaths by timing code, falling back
// to the recorded wall clock when a code is missing or unparseable.
func sortProgression(events []DeathEvent, game *domain.GameRecord) {
	stamps := map[string]int64{}
	for i := range game.Players {
		if d := game.Players[i].Death; d != nil {
			stamps[game.Players[i].Name] = d.Timestamp.Unix()
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		ti, iok := ParseTiming(events[i].Timing)
		tj, jok := ParseTiming(events[j].Timing)
		if iok && jok && ti != tj {
			return ti.Less(tj)
		}
		return stamps[events[i].Name] < stamps[events[j].Name]
	})
}

func maxKey(m map[string]int) string {
	best, bestN := "", 0
	for k, n := range m {
		if n > bestN || (n == bestN && (best == "" || k < best)) {
			best, bestN = k, n
		}
	}
	return best
}

func maxCamp(m map[Camp]int) Camp {
	best, bestN := Camp(""), 0
	for k, n := range m {
		if n > bestN || (n == bestN && (best == "" || k < best)) {
			best, bestN = k, n
		}
	}
	return best
}
