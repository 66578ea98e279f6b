package stats

import (
	"testing"

	"lycans-tracker/internal/domain"
)

func TestWinningCamp(t *testing.T) {
	tests := []struct {
		name   string
		game   domain.GameRecord
		want   Camp
		wantOK bool
	}{
		{
			name:   "wolf victor means wolf alliance",
			game:   testGame("g1", villager("a", false), wolf("b", true)),
			want:   CampLoups,
			wantOK: true,
		},
		{
			name:   "traitor victor means wolf alliance",
			game:   testGame("g2", villager("a", false), traitor("b", true)),
			want:   CampLoups,
			wantOK: true,
		},
		{
			name:   "all-village victors mean village win",
			game:   testGame("g3", villager("a", true), villager("b", true), wolf("c", false)),
			want:   CampVillageois,
			wantOK: true,
		},
		{
			name:   "solo victor outside both families names the solo camp",
			game:   testGame("g4", villager("a", true), rolePlayer("b", "Agent", true)),
			want:   CampAgent,
			wantOK: true,
		},
		{
			name:   "zero victors leaves the game undecided",
			game:   testGame("g5", villager("a", false), wolf("b", false)),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WinningCamp(&tt.game)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("WinningCamp = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCampWon(t *testing.T) {
	tests := []struct {
		name       string
		playerCamp Camp
		winning    Camp
		victorious bool
		want       bool
	}{
		{"traitor shares wolf win", CampTraitre, CampLoups, false, true},
		{"wolf shares wolf win", CampLoup, CampLoups, false, true},
		{"louveteau shares wolf win", CampLouveteau, CampLoups, false, true},
		{"villager loses wolf win", CampVillageois, CampLoups, false, false},
		{"villager wins village win", CampVillageois, CampVillageois, false, true},
		{"personally victorious agent wins", CampAgent, CampAgent, true, true},
		{"non-victorious agent loses despite camp win", CampAgent, CampAgent, false, false},
		{"agent loses village win even if flagged", CampAgent, CampVillageois, true, false},
		{"solo camp matches directly", CampVaudou, CampVaudou, false, true},
		{"undecided game has no winners", CampLoup, "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CampWon(tt.playerCamp, tt.winning, tt.victorious); got != tt.want {
				t.Fatalf("CampWon(%s, %s, %v) = %v, want %v",
					tt.playerCamp, tt.winning, tt.victorious, got, tt.want)
			}
		})
	}
}

func TestTwoAgentsOnePersonalWin(t *testing.T) {
	agentA := rolePlayer("agentA", "Agent", true)
	agentB := rolePlayer("agentB", "Agent", false)
	game := testGame("g", villager("v", false), agentA, agentB)

	winning, ok := WinningCamp(&game)
	if !ok || winning != CampAgent {
		t.Fatalf("WinningCamp = %s, %v; want Agent win", winning, ok)
	}

	// Camp stats record one Agent camp win for the game.
	camps := CampWinStatsOf([]domain.GameRecord{game})
	if camps.GamesWithWinner != 1 {
		t.Fatalf("GamesWithWinner = %d", camps.GamesWithWinner)
	}
	if len(camps.Camps) != 1 || camps.Camps[0].Camp != CampAgent || camps.Camps[0].Wins != 1 {
		t.Fatalf("camp stats = %+v", camps.Camps)
	}

	// Player stats count exactly one win among the two agents.
	players := PlayerStatsOf([]domain.GameRecord{game})
	wins := 0
	for _, p := range players.Players {
		if p.ID == "agenta" || p.ID == "agentb" {
			wins += p.Wins
		}
	}
	if wins != 1 {
		t.Fatalf("agent wins = %d, want 1", wins)
	}
}
