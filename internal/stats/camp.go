package stats

import (
	"strings"

	"lycans-tracker/internal/domain"
)

// Camp is the faction a player scores under. It is always derived,
// never stored on the record.
type Camp string

const (
	CampVillageois Camp = "Villageois"
	CampLoup       Camp = "Loup"
	CampTraitre    Camp = "Traître"
	CampLouveteau  Camp = "Louveteau"

	// solo roles acting as their own camp
	CampAmoureux         Camp = "Amoureux"
	CampAgent            Camp = "Agent"
	CampScientifique     Camp = "Scientifique"
	CampEspion           Camp = "Espion"
	CampVaudou           Camp = "Vaudou"
	CampLaBete           Camp = "La Bête"
	CampChasseurDePrimes Camp = "Chasseur de primes"

	// CampLoups is the alliance label shared by the whole wolf family.
	// Only win determination uses it; per-camp breakdowns keep the
	// family members distinct.
	CampLoups Camp = "Loups"
)

// roleCamps is the exhaustive mapping from raw role strings (normalized)
// to camps. A role missing here resolves to Villageois, so extending the
// game with a new role means extending this table.
var roleCamps = map[string]Camp{
	"villageois":         CampVillageois,
	"loup":               CampLoup,
	"traître":            CampTraitre,
	"traitre":            CampTraitre,
	"louveteau":          CampLouveteau,
	"amoureux":           CampAmoureux,
	"agent":              CampAgent,
	"scientifique":       CampScientifique,
	"espion":             CampEspion,
	"vaudou":             CampVaudou,
	"la bête":            CampLaBete,
	"la bete":            CampLaBete,
	"bête":               CampLaBete,
	"chasseur de primes": CampChasseurDePrimes,
}

// villagerPowers are the sub-abilities that mark a player as a special
// villager. A power listed here pins the initial camp to Villageois no
// matter what the role field says.
var villagerPowers = map[string]bool{
	"chasseur":   true,
	"médium":     true,
	"medium":     true,
	"garde":      true,
	"ancien":     true,
	"voyante":    true,
	"pisteur":    true,
	"alchimiste": true,
}

// Snapshot selects which point of the game a camp resolution refers to.
type Snapshot int

const (
	Initial Snapshot = iota
	Final
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolveCamp maps a player to exactly one camp at the requested point
// of the game. It never fails: missing or unknown signals fall through
// to Villageois.
//
// Initial precedence: explicit traitor flag, then a distinguished
// villager power, then the raw role field, then the game's roster
// lists, then Villageois. Final applies the role-change history on top;
// the chronologically last change wins.
func ResolveCamp(game *domain.GameRecord, player *domain.PlayerRecord, at Snapshot) Camp {
	if at == Final {
		if camp, ok := lastRoleChangeCamp(player.RoleChanges); ok {
			return camp
		}
	}

	if player.Traitor {
		return CampTraitre
	}

	if villagerPowers[normalize(player.Power)] {
		return CampVillageois
	}

	if camp, ok := roleCamps[normalize(player.MainRole)]; ok {
		return camp
	}

	if game != nil {
		name := normalize(player.Name)
		for _, w := range game.Wolves {
			if normalize(w) == name {
				return CampLoup
			}
		}
		for _, l := range game.Lovers {
			if normalize(l) == name {
				return CampAmoureux
			}
		}
		for solo, role := range game.Solos {
			if normalize(solo) != name {
				continue
			}
			if camp, ok := roleCamps[normalize(role)]; ok {
				return camp
			}
		}
	}

	return CampVillageois
}

func lastRoleChangeCamp(changes []domain.RoleChangeEvent) (Camp, bool) {
	if len(changes) == 0 {
		return "", false
	}

	// The list is ordered on the wire but a stray out-of-order entry
	// must not flip the result, so pick by timestamp.
	last := changes[0]
	for _, c := range changes[1:] {
		if c.Timestamp.After(last.Timestamp) {
			last = c
		}
	}

	if camp, ok := roleCamps[normalize(last.Role)]; ok {
		return camp, true
	}
	return CampVillageois, true
}

// IsWolfFamily reports whether the camp shares the wolves' win
// condition.
func IsWolfFamily(c Camp) bool {
	return c == CampLoup || c == CampTraitre || c == CampLouveteau
}

// IsSolo reports whether the camp is a lone role playing for itself.
func IsSolo(c Camp) bool {
	return c != CampVillageois && !IsWolfFamily(c) && c != CampLoups
}
