package service

import (
	"testing"

	"lycans-tracker/internal/api"
	"lycans-tracker/internal/domain"
)

func TestApplyRoster(t *testing.T) {
	games := []domain.GameRecord{
		{
			ID: "g1",
			Players: []domain.PlayerRecord{
				{Name: "Alice"},
				{Name: " BOB "},
				{Name: "Mystery"},
				{Name: "Carol", StableID: "already-set"},
			},
		},
	}
	roster := []api.RosterEntry{
		{StableID: "p-1", Name: "alice"},
		{StableID: "p-2", Name: "Bob"},
		{StableID: "p-3", Name: "Carol"},
	}

	applyRoster(games, roster)

	p := games[0].Players
	if p[0].StableID != "p-1" {
		t.Errorf("alice id = %q", p[0].StableID)
	}
	if p[1].StableID != "p-2" {
		t.Errorf("bob id = %q (matching must ignore case and whitespace)", p[1].StableID)
	}
	if p[2].StableID != "" {
		t.Errorf("unknown player got id %q", p[2].StableID)
	}
	if p[3].StableID != "already-set" {
		t.Errorf("existing id overwritten: %q", p[3].StableID)
	}
}

func TestApplyRosterEmpty(t *testing.T) {
	games := []domain.GameRecord{{ID: "g1", Players: []domain.PlayerRecord{{Name: "Alice"}}}}
	applyRoster(games, nil)
	if games[0].Players[0].StableID != "" {
		t.Fatalf("id appeared from an empty roster")
	}
}
