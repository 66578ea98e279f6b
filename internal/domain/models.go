package domain

import (
	"time"
)

// GameRecord is one completed match as exported by the game-log sheet.
// Older exports omit most of the optional arrays; every consumer must
// tolerate their absence.
type GameRecord struct {
	ID          string            `json:"id"`
	StartedAt   time.Time         `json:"startedAt"`
	EndedAt     time.Time         `json:"endedAt"`
	MapName     string            `json:"mapName,omitempty"`
	Modded      bool              `json:"modded,omitempty"`
	ModVersion  string            `json:"modVersion,omitempty"`
	HarvestGoal int               `json:"harvestGoal,omitempty"`
	HarvestDone int               `json:"harvestDone,omitempty"`
	EndTiming   string            `json:"endTiming,omitempty"` // phase+ordinal code, e.g. "J3"
	Wolves      []string          `json:"wolves,omitempty"`    // legacy roster fallback
	Lovers      []string          `json:"lovers,omitempty"`
	Solos       map[string]string `json:"solos,omitempty"` // player name -> solo role
	Players     []PlayerRecord    `json:"players"`
}

type PlayerRecord struct {
	StableID      string            `json:"stableId,omitempty"` // preferred identity key
	Name          string            `json:"name"`               // display name, may change across games
	MainRole      string            `json:"mainRole,omitempty"`
	SecondaryRole string            `json:"secondaryRole,omitempty"`
	Power         string            `json:"power,omitempty"` // villager sub-ability
	Traitor       bool              `json:"traitor,omitempty"`
	Color         string            `json:"color,omitempty"`
	Victorious    bool              `json:"victorious"`
	RoleChanges   []RoleChangeEvent `json:"roleChanges,omitempty"`
	Death         *DeathInfo        `json:"death,omitempty"`
	Actions       []ActionEvent     `json:"actions,omitempty"`
	Votes         []VoteEvent       `json:"votes,omitempty"`
}

// RoleChangeEvent records a mid-game role switch. Timing is absent in
// older exports; the timeline layer buckets those by elapsed time.
type RoleChangeEvent struct {
	Role      string    `json:"role"`
	Timing    string    `json:"timing,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ActionEvent struct {
	Type      string    `json:"type"`
	Timing    string    `json:"timing,omitempty"`
	Target    string    `json:"target,omitempty"`
	Position  *Position `json:"position,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type VoteEvent struct {
	Target    string    `json:"target,omitempty"`
	Timing    string    `json:"timing,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type DeathInfo struct {
	Timestamp time.Time `json:"timestamp"`
	Timing    string    `json:"timing,omitempty"`
	Type      string    `json:"type,omitempty"` // "Loup", "Vote", "Chasseur", ...
	Killer    string    `json:"killer,omitempty"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}
