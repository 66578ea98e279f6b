package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"lycans-tracker/internal/constants"
	"lycans-tracker/internal/domain"
	"lycans-tracker/internal/repository"
	"lycans-tracker/internal/stats"

	"github.com/rs/zerolog"
)

// StatsService runs the pure stats engine over the stored game list.
// The engine itself recomputes everything from scratch on every call;
// memoization lives here, keyed by filter, with a short TTL.
type StatsService struct {
	repo   *repository.GameRepository
	logger zerolog.Logger

	memoMu sync.Mutex
	memo   map[string]memoEntry
}

type memoEntry struct {
	games     []domain.GameRecord
	fetchedAt time.Time
}

func NewStatsService(repo *repository.GameRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, logger: logger, memo: map[string]memoEntry{}}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Games loads the filtered game list, serving from the memo while it
// is fresh.
func (s *StatsService) Games(ctx context.Context, filter repository.GameFilter) ([]domain.GameRecord, error) {
	key := fmt.Sprintf("%d|%d|%v|%s",
		filter.From.Unix(), filter.To.Unix(), filter.ModOnly, normalizeName(filter.MapName))

	s.memoMu.Lock()
	entry, ok := s.memo[key]
	s.memoMu.Unlock()
	if ok && time.Since(entry.fetchedAt) < constants.StatsCacheTTL {
		return entry.games, nil
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	games, err := s.repo.List(dbCtx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load games for stats")
		return nil, fmt.Errorf("failed to load games: %w", err)
	}

	s.memoMu.Lock()
	s.memo[key] = memoEntry{games: games, fetchedAt: time.Now()}
	s.memoMu.Unlock()

	s.logger.Debug().Int("games", len(games)).Str("filter", key).Msg("games loaded for stats")
	return games, nil
}

func (s *StatsService) CampWinStats(ctx context.Context, filter repository.GameFilter) (stats.CampWinStats, error) {
	games, err := s.Games(ctx, filter)
	if err != nil {
		return stats.CampWinStats{}, err
	}
	return stats.CampWinStatsOf(games), nil
}

func (s *StatsService) PlayerStats(ctx context.Context, filter repository.GameFilter) (stats.PlayerStatsData, error) {
	games, err := s.Games(ctx, filter)
	if err != nil {
		return stats.PlayerStatsData{}, err
	}
	return stats.PlayerStatsOf(games), nil
}

func (s *StatsService) PairingStats(ctx context.Context, filter repository.GameFilter) (stats.PairingStats, error) {
	games, err := s.Games(ctx, filter)
	if err != nil {
		return stats.PairingStats{}, err
	}
	return stats.PairingStatsOf(games, constants.MinWolfPairGames, constants.MinLoverPairGames), nil
}

func (s *StatsService) TeamCompositionStats(ctx context.Context, filter repository.GameFilter) (stats.TeamCompositionStats, error) {
	games, err := s.Games(ctx, filter)
	if err != nil {
		return stats.TeamCompositionStats{}, err
	}
	return stats.TeamCompositionStatsOf(games, constants.MinCompositionAppearances), nil
}

func (s *StatsService) ColorStats(ctx context.Context, filter repository.GameFilter) (stats.ColorStats, error) {
	games, err := s.Games(ctx, filter)
	if err != nil {
		return stats.ColorStats{}, err
	}
	return stats.ColorStatsOf(games), nil
}

func (s *StatsService) SurvivalAnalysis(ctx context.Context, filter repository.GameFilter) (stats.SurvivalAnalysis, error) {
	games, err := s.Games(ctx, filter)
	if err != nil {
		return stats.SurvivalAnalysis{}, err
	}
	return stats.SurvivalAnalysisOf(games), nil
}

func (s *StatsService) MonthlyRanking(ctx context.Context, filter repository.GameFilter) (stats.MonthlyRanking, error) {
	games, err := s.Games(ctx, filter)
	if err != nil {
		return stats.MonthlyRanking{}, err
	}
	return stats.MonthlyRankingOf(games, constants.ParticipationFloor), nil
}

func (s *StatsService) MonthRankingAt(ctx context.Context, filter repository.GameFilter, month string, prefix int) (stats.MonthRanking, error) {
	games, err := s.Games(ctx, filter)
	if err != nil {
		return stats.MonthRanking{}, err
	}
	return stats.MonthRankingAt(games, month, prefix, constants.ParticipationFloor), nil
}

func (s *StatsService) TransformStats(ctx context.Context, filter repository.GameFilter) ([]stats.TransformStat, error) {
	games, err := s.Games(ctx, filter)
	if err != nil {
		return nil, err
	}
	return stats.TransformStatsOf(games), nil
}

func (s *StatsService) ActivityByDay(ctx context.Context, filter repository.GameFilter) ([]stats.DayActivity, error) {
	games, err := s.Games(ctx, filter)
	if err != nil {
		return nil, err
	}
	return stats.ActivityByDay(games), nil
}

// Consistency scores one player against the filtered population. The
// raw composite is rescaled onto the population's spread so the score
// reads relative to everyone currently in view; an unknown player
// comes back as ok=false rather than an error so the caller can
// render an empty state.
func (s *StatsService) Consistency(ctx context.Context, filter repository.GameFilter, playerID string) (float64, bool, error) {
	games, err := s.Games(ctx, filter)
	if err != nil {
		return 0, false, err
	}

	data := stats.PlayerStatsOf(games)
	known := false
	population := make([]float64, 0, len(data.Players))
	raw := 0.0
	for _, p := range data.Players {
		score := stats.AdvancedConsistency(games, p.ID, constants.MinConsistencySample)
		population = append(population, score)
		if p.ID == normalizeName(playerID) {
			known = true
			raw = score
		}
	}

	if !known {
		return 0, false, nil
	}

	return stats.BuildScaler(population)(raw), true, nil
}

func (s *StatsService) Timeline(ctx context.Context, gameID string) (*stats.GameTimeline, error) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	game, err := s.repo.Get(dbCtx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, nil
	}

	tl := stats.BuildTimeline(game)
	return &tl, nil
}
