package stats

import (
	"fmt"
	"sort"

	"lycans-tracker/internal/domain"
)

// Signature is a game's team makeup by role category. The five counts
// always sum to the game's player count.
type Signature struct {
	PureWolves int `json:"pureWolves"`
	Traitors   int `json:"traitors"`
	Louveteaux int `json:"louveteaux"`
	Solos      int `json:"solos"`
	Villageois int `json:"villageois"`
}

func (s Signature) String() string {
	return fmt.Sprintf("%dL/%dT/%dLv/%dS/%dV",
		s.PureWolves, s.Traitors, s.Louveteaux, s.Solos, s.Villageois)
}

func (s Signature) total() int {
	return s.PureWolves + s.Traitors + s.Louveteaux + s.Solos + s.Villageois
}

type SignatureStat struct {
	Signature   Signature `json:"signature"`
	Label       string    `json:"label"`
	Appearances int       `json:"appearances"`
	WolfWins    int       `json:"wolfWins"`
	VillageWins int       `json:"villageWins"`
	SoloWins    int       `json:"soloWins"`
	WolfWinRate Rate      `json:"wolfWinRate"`
}

type CompositionBucket struct {
	PlayerCount int             `json:"playerCount"`
	Games       int             `json:"games"`
	Signatures  []SignatureStat `json:"signatures"`
	MostCommon  *SignatureStat  `json:"mostCommon,omitempty"`
	// BestWolfRate is the eligible signature where the wolf alliance
	// converts best; eligibility requires the minimum appearance count.
	BestWolfRate *SignatureStat `json:"bestWolfRate,omitempty"`
}

type TeamCompositionStats struct {
	Buckets []CompositionBucket `json:"buckets"`
}

// SignatureOf categorizes a game's starting lineup.
func SignatureOf(game *domain.GameRecord) Signature {
	var sig Signature
	for i := range game.Players {
		switch camp := ResolveCamp(game, &game.Players[i], Initial); {
		case camp == CampLoup:
			sig.PureWolves++
		case camp == CampTraitre:
			sig.Traitors++
		case camp == CampLouveteau:
			sig.Louveteaux++
		case IsSolo(camp):
			sig.Solos++
		default:
			sig.Villageois++
		}
	}
	return sig
}

// TeamCompositionStatsOf groups games by player count, then by lineup
// signature, and tracks which family each signature's wins went to.
// The per-bucket highlights only consider signatures seen at least
// minAppearances times.
func TeamCompositionStatsOf(games []domain.GameRecord, minAppearances int) TeamCompositionStats {
	type bucketAcc struct {
		games int
		sigs  map[Signature]*SignatureStat
	}
	buckets := map[int]*bucketAcc{}

	for i := range games {
		g := &games[i]
		sig := SignatureOf(g)
		count := sig.total()
		if count == 0 {
			continue
		}

		b, seen := buckets[count]
		if !seen {
			b = &bucketAcc{sigs: map[Signature]*SignatureStat{}}
			buckets[count] = b
		}
		b.games++

		st, seen := b.sigs[sig]
		if !seen {
			st = &SignatureStat{Signature: sig, Label: sig.String()}
			b.sigs[sig] = st
		}
		st.Appearances++

		if winning, ok := WinningCamp(g); ok {
			switch {
			case winning == CampLoups:
				st.WolfWins++
			case winning == CampVillageois:
				st.VillageWins++
			default:
				st.SoloWins++
			}
		}
	}

	var out TeamCompositionStats
	for count, b := range buckets {
		cb := CompositionBucket{PlayerCount: count, Games: b.games}
		for _, st := range b.sigs {
			st.WolfWinRate = NewRate(st.WolfWins, st.Appearances)
			cb.Signatures = append(cb.Signatures, *st)
		}

		sort.Slice(cb.Signatures, func(i, j int) bool {
			if cb.Signatures[i].Appearances != cb.Signatures[j].Appearances {
				return cb.Signatures[i].Appearances > cb.Signatures[j].Appearances
			}
			return cb.Signatures[i].Label < cb.Signatures[j].Label
		})

		for i := range cb.Signatures {
			st := &cb.Signatures[i]
			if st.Appearances < minAppearances {
				continue
			}
			if cb.MostCommon == nil {
				cb.MostCommon = st // list is sorted by appearances
			}
			if cb.BestWolfRate == nil {
				cb.BestWolfRate = st
			} else if better(st, cb.BestWolfRate) {
				cb.BestWolfRate = st
			}
		}

		out.Buckets = append(out.Buckets, cb)
	}

	sort.Slice(out.Buckets, func(i, j int) bool {
		return out.Buckets[i].PlayerCount < out.Buckets[j].PlayerCount
	})

	return out
}

func better(a, b *SignatureStat) bool {
	av, aok := a.WolfWinRate.Value()
	bv, bok := b.WolfWinRate.Value()
	if aok != bok {
		return aok
	}
	return av > bv
}
