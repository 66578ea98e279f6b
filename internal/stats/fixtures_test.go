package stats

import (
	"time"

	"lycans-tracker/internal/domain"
)

var testStart = time.Date(2025, 3, 14, 21, 0, 0, 0, time.UTC)

func testGame(id string, players ...domain.PlayerRecord) domain.GameRecord {
	return domain.GameRecord{
		ID:        id,
		StartedAt: testStart,
		EndedAt:   testStart.Add(25 * time.Minute),
		MapName:   "Village",
		EndTiming: "J3",
		Players:   players,
	}
}

func testGameAt(id string, at time.Time, players ...domain.PlayerRecord) domain.GameRecord {
	g := testGame(id, players...)
	g.StartedAt = at
	g.EndedAt = at.Add(25 * time.Minute)
	return g
}

func rolePlayer(name, role string, won bool) domain.PlayerRecord {
	return domain.PlayerRecord{Name: name, MainRole: role, Victorious: won}
}

func villager(name string, won bool) domain.PlayerRecord {
	return rolePlayer(name, "Villageois", won)
}

func wolf(name string, won bool) domain.PlayerRecord {
	return rolePlayer(name, "Loup", won)
}

func traitor(name string, won bool) domain.PlayerRecord {
	p := rolePlayer(name, "Villageois", won)
	p.Traitor = true
	return p
}
