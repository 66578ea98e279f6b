package stats

import (
	"lycans-tracker/internal/domain"
)

// WinningCamp decides which camp won a game from the victorious
// players' final camps. ok is false when no player is flagged
// victorious; such games keep counting in total-game denominators but
// never in win numerators.
//
// Any wolf-family victor means the wolf alliance won, regardless of
// who else is flagged. Failing that, an all-Villageois victor list is a
// village win, and otherwise the first victor outside the village and
// the wolf family names the solo winning camp.
func WinningCamp(game *domain.GameRecord) (Camp, bool) {
	var firstSolo Camp
	sawVictor := false
	allVillage := true

	for i := range game.Players {
		p := &game.Players[i]
		if !p.Victorious {
			continue
		}
		sawVictor = true

		camp := ResolveCamp(game, p, Final)
		if IsWolfFamily(camp) {
			return CampLoups, true
		}
		if camp != CampVillageois {
			allVillage = false
			if firstSolo == "" {
				firstSolo = camp
			}
		}
	}

	if !sawVictor {
		return "", false
	}
	if allVillage {
		return CampVillageois, true
	}
	return firstSolo, true
}

// CampWon reports whether a player belonging to playerCamp counts as a
// winner of a game won by winning. Wolf-family members share the
// alliance win. Agents are the exception: several can coexist in one
// game and at most one personally wins, so the player's own victorious
// flag decides.
func CampWon(playerCamp, winning Camp, victorious bool) bool {
	if winning == "" {
		return false
	}
	if winning == CampLoups {
		return IsWolfFamily(playerCamp)
	}
	if playerCamp == CampAgent {
		return winning == CampAgent && victorious
	}
	return playerCamp == winning
}
