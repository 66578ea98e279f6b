package stats

import (
	"reflect"
	"testing"
	"time"

	"lycans-tracker/internal/domain"
)

// The canonical five-player game: three villagers against a wolf and a
// traitor, wolf family victorious.
func wolfWinGame(id string) domain.GameRecord {
	return testGame(id,
		villager("v1", false),
		villager("v2", false),
		villager("v3", false),
		wolf("w1", true),
		traitor("t1", true),
	)
}

func TestEndToEndWolfWin(t *testing.T) {
	game := wolfWinGame("g1")
	games := []domain.GameRecord{game}

	winning, ok := WinningCamp(&game)
	if !ok || winning != CampLoups {
		t.Fatalf("WinningCamp = %s, %v; want Loups", winning, ok)
	}

	sig := SignatureOf(&game)
	want := Signature{PureWolves: 1, Traitors: 1, Villageois: 3}
	if sig != want {
		t.Fatalf("signature = %+v, want %+v", sig, want)
	}

	players := PlayerStatsOf(games)
	for _, p := range players.Players {
		switch p.ID {
		case "w1", "t1":
			if p.Wins != 1 {
				t.Errorf("%s wins = %d, want 1", p.ID, p.Wins)
			}
		default:
			if p.Wins != 0 {
				t.Errorf("%s wins = %d, want 0", p.ID, p.Wins)
			}
		}
		if p.Games != 1 {
			t.Errorf("%s games = %d, want 1", p.ID, p.Games)
		}
	}
}

func TestSignatureSumsToPlayerCount(t *testing.T) {
	games := []domain.GameRecord{
		wolfWinGame("g1"),
		testGame("g2",
			villager("a", true),
			rolePlayer("b", "Agent", false),
			rolePlayer("c", "Louveteau", false),
			wolf("d", false),
		),
	}

	for i := range games {
		sig := SignatureOf(&games[i])
		sum := sig.PureWolves + sig.Traitors + sig.Louveteaux + sig.Solos + sig.Villageois
		if sum != len(games[i].Players) {
			t.Fatalf("game %s: signature sum %d != player count %d",
				games[i].ID, sum, len(games[i].Players))
		}
	}
}

func TestCampWinsSumToDecidedGames(t *testing.T) {
	games := []domain.GameRecord{
		wolfWinGame("g1"),
		wolfWinGame("g2"),
		testGame("g3", villager("a", true), wolf("b", false)),
		testGame("g4", villager("a", false), wolf("b", false)), // undecided
	}

	cs := CampWinStatsOf(games)
	if cs.TotalGames != 4 || cs.GamesWithWinner != 3 {
		t.Fatalf("totals = %d/%d, want 4/3", cs.TotalGames, cs.GamesWithWinner)
	}

	sum := 0
	for _, c := range cs.Camps {
		sum += c.Wins
	}
	if sum != cs.GamesWithWinner {
		t.Fatalf("sum of camp wins %d != decided games %d", sum, cs.GamesWithWinner)
	}
}

func TestAggregationIdempotence(t *testing.T) {
	games := []domain.GameRecord{
		wolfWinGame("g1"),
		testGame("g2", villager("a", true), villager("b", true), wolf("c", false)),
	}

	if !reflect.DeepEqual(CampWinStatsOf(games), CampWinStatsOf(games)) {
		t.Error("CampWinStatsOf is not idempotent")
	}
	if !reflect.DeepEqual(PlayerStatsOf(games), PlayerStatsOf(games)) {
		t.Error("PlayerStatsOf is not idempotent")
	}
	if !reflect.DeepEqual(TeamCompositionStatsOf(games, 5), TeamCompositionStatsOf(games, 5)) {
		t.Error("TeamCompositionStatsOf is not idempotent")
	}
	if !reflect.DeepEqual(SurvivalAnalysisOf(games), SurvivalAnalysisOf(games)) {
		t.Error("SurvivalAnalysisOf is not idempotent")
	}
	if !reflect.DeepEqual(ColorStatsOf(games), ColorStatsOf(games)) {
		t.Error("ColorStatsOf is not idempotent")
	}
}

func TestEmptyInputIsNoData(t *testing.T) {
	if cs := CampWinStatsOf(nil); cs.TotalGames != 0 || len(cs.Camps) != 0 {
		t.Errorf("CampWinStatsOf(nil) = %+v", cs)
	}
	if ps := PlayerStatsOf(nil); len(ps.Players) != 0 {
		t.Errorf("PlayerStatsOf(nil) = %+v", ps)
	}
	if tc := TeamCompositionStatsOf(nil, 5); len(tc.Buckets) != 0 {
		t.Errorf("TeamCompositionStatsOf(nil) = %+v", tc)
	}
}

func TestPlayerIdentityPrefersStableID(t *testing.T) {
	early := domain.PlayerRecord{StableID: "p-42", Name: "OldName", MainRole: "Villageois", Victorious: true}
	late := domain.PlayerRecord{StableID: "p-42", Name: "NewName", MainRole: "Loup", Victorious: true}

	games := []domain.GameRecord{
		testGameAt("g1", testStart, early, villager("other", false)),
		testGameAt("g2", testStart.Add(24*time.Hour), late, villager("other", false)),
	}

	ps := PlayerStatsOf(games)
	var found *PlayerStat
	for i := range ps.Players {
		if ps.Players[i].ID == "p-42" {
			found = &ps.Players[i]
		}
	}
	if found == nil {
		t.Fatalf("stable id bucket missing: %+v", ps.Players)
	}
	if found.Games != 2 {
		t.Fatalf("games = %d, want 2 (renames must not split the player)", found.Games)
	}
	if found.Name != "NewName" {
		t.Fatalf("name = %q, want latest display name", found.Name)
	}
	if found.CampGames[CampVillageois] != 1 || found.CampGames[CampLoup] != 1 {
		t.Fatalf("camp histogram = %+v", found.CampGames)
	}
}

func TestColorStatsUsesPerGame(t *testing.T) {
	red := villager("a", true)
	red.Color = "Rouge"
	alsoRed := wolf("b", false)
	alsoRed.Color = "rouge "

	games := []domain.GameRecord{
		testGame("g1", red, alsoRed),
		testGame("g2", villager("c", true)),
	}

	cs := ColorStatsOf(games)
	if len(cs.Colors) != 1 {
		t.Fatalf("colors = %+v, want one merged rouge bucket", cs.Colors)
	}
	c := cs.Colors[0]
	if c.Appearances != 2 {
		t.Fatalf("appearances = %d", c.Appearances)
	}
	// 2 uses over 2 total games, not over the 1 game the color appeared in.
	if c.UsesPerGame != 1.0 {
		t.Fatalf("usesPerGame = %v, want 1.0", c.UsesPerGame)
	}
}

func TestPairingThresholds(t *testing.T) {
	pairGame := func(id string) domain.GameRecord {
		return testGame(id, wolf("wa", true), wolf("wb", true), villager("v", false))
	}

	// One co-occurrence: below the wolves' floor of two.
	ps := PairingStatsOf([]domain.GameRecord{pairGame("g1")}, 2, 1)
	if len(ps.WolfPairs) != 0 {
		t.Fatalf("wolf pairs = %+v, want none below threshold", ps.WolfPairs)
	}

	ps = PairingStatsOf([]domain.GameRecord{pairGame("g1"), pairGame("g2")}, 2, 1)
	if len(ps.WolfPairs) != 1 {
		t.Fatalf("wolf pairs = %+v, want one", ps.WolfPairs)
	}
	pair := ps.WolfPairs[0]
	if pair.Games != 2 || pair.Wins != 2 {
		t.Fatalf("pair = %+v", pair)
	}
	if v, ok := pair.WinRate.Value(); !ok || v != 100 {
		t.Fatalf("pair win rate = %v, %v", v, ok)
	}
}

func TestCompositionSignificanceGate(t *testing.T) {
	var games []domain.GameRecord
	for i := 0; i < 4; i++ {
		games = append(games, wolfWinGame("g"))
	}

	tc := TeamCompositionStatsOf(games, 5)
	if len(tc.Buckets) != 1 {
		t.Fatalf("buckets = %+v", tc.Buckets)
	}
	b := tc.Buckets[0]
	if b.MostCommon != nil || b.BestWolfRate != nil {
		t.Fatalf("highlights set below significance floor: %+v", b)
	}

	games = append(games, wolfWinGame("g"))
	tc = TeamCompositionStatsOf(games, 5)
	b = tc.Buckets[0]
	if b.MostCommon == nil || b.BestWolfRate == nil {
		t.Fatalf("highlights missing at significance floor: %+v", b)
	}
	if b.MostCommon.Appearances != 5 {
		t.Fatalf("most common appearances = %d", b.MostCommon.Appearances)
	}
}
