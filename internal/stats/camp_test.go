package stats

import (
	"testing"
	"time"

	"lycans-tracker/internal/domain"
)

func TestResolveCampInitialPrecedence(t *testing.T) {
	game := domain.GameRecord{
		Wolves: []string{"  Rosa "},
		Lovers: []string{"Théo"},
		Solos:  map[string]string{"Nina": "Agent"},
	}

	tests := []struct {
		name   string
		player domain.PlayerRecord
		want   Camp
	}{
		{
			name:   "traitor flag beats role field",
			player: domain.PlayerRecord{Name: "Alice", MainRole: "Loup", Traitor: true},
			want:   CampTraitre,
		},
		{
			name:   "villager power beats role field",
			player: domain.PlayerRecord{Name: "Bob", MainRole: "Agent", Power: "Chasseur"},
			want:   CampVillageois,
		},
		{
			name:   "role field resolves directly",
			player: domain.PlayerRecord{Name: "Chloé", MainRole: "Scientifique"},
			want:   CampScientifique,
		},
		{
			name:   "role matching ignores case and whitespace",
			player: domain.PlayerRecord{Name: "Dan", MainRole: "  LOUVETEAU "},
			want:   CampLouveteau,
		},
		{
			name:   "wolf roster fallback, case-insensitive",
			player: domain.PlayerRecord{Name: "rosa"},
			want:   CampLoup,
		},
		{
			name:   "lover roster fallback",
			player: domain.PlayerRecord{Name: "Théo"},
			want:   CampAmoureux,
		},
		{
			name:   "solo roster fallback",
			player: domain.PlayerRecord{Name: "Nina"},
			want:   CampAgent,
		},
		{
			name:   "no signal defaults to Villageois",
			player: domain.PlayerRecord{Name: "Eve"},
			want:   CampVillageois,
		},
		{
			name:   "unknown role defaults to Villageois",
			player: domain.PlayerRecord{Name: "Fred", MainRole: "Boulanger"},
			want:   CampVillageois,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCamp(&game, &tt.player, Initial); got != tt.want {
				t.Fatalf("ResolveCamp = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveCampFinal(t *testing.T) {
	base := time.Date(2025, 1, 10, 21, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		player  domain.PlayerRecord
		want    Camp
	}{
		{
			name:   "no change keeps initial",
			player: domain.PlayerRecord{Name: "Alice", MainRole: "Villageois"},
			want:   CampVillageois,
		},
		{
			name: "single change applies",
			player: domain.PlayerRecord{
				Name:     "Bob",
				MainRole: "Villageois",
				RoleChanges: []domain.RoleChangeEvent{
					{Role: "Loup", Timestamp: base},
				},
			},
			want: CampLoup,
		},
		{
			name: "chronologically last change wins even out of order",
			player: domain.PlayerRecord{
				Name:     "Chloé",
				MainRole: "Villageois",
				RoleChanges: []domain.RoleChangeEvent{
					{Role: "Amoureux", Timestamp: base.Add(10 * time.Minute)},
					{Role: "Loup", Timestamp: base},
				},
			},
			want: CampAmoureux,
		},
		{
			name: "change to unknown role lands on Villageois",
			player: domain.PlayerRecord{
				Name:     "Dan",
				MainRole: "Loup",
				RoleChanges: []domain.RoleChangeEvent{
					{Role: "???", Timestamp: base},
				},
			},
			want: CampVillageois,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCamp(nil, &tt.player, Final); got != tt.want {
				t.Fatalf("ResolveCamp = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWolfFamily(t *testing.T) {
	for _, camp := range []Camp{CampLoup, CampTraitre, CampLouveteau} {
		if !IsWolfFamily(camp) {
			t.Fatalf("IsWolfFamily(%s) = false", camp)
		}
	}
	for _, camp := range []Camp{CampVillageois, CampAgent, CampAmoureux, CampLoups} {
		if IsWolfFamily(camp) {
			t.Fatalf("IsWolfFamily(%s) = true", camp)
		}
	}
}
