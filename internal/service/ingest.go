package service

import (
	"context"
	"fmt"

	"lycans-tracker/internal/api"
	"lycans-tracker/internal/constants"
	"lycans-tracker/internal/domain"
	"lycans-tracker/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type IngestService struct {
	export *api.ExportClient
	repo   *repository.GameRepository
	logger zerolog.Logger
}

func NewIngestService(export *api.ExportClient, repo *repository.GameRepository, logger zerolog.Logger) *IngestService {
	return &IngestService{export: export, repo: repo, logger: logger}
}

// IngestBatch stores games handed to the API directly.
func (s *IngestService) IngestBatch(ctx context.Context, games []domain.GameRecord) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	stored, err := s.repo.UpsertBatch(ctx, games)
	if err != nil {
		s.logger.Error().Err(err).Int("received", len(games)).Msg("failed to store game batch")
		return stored, fmt.Errorf("failed to store game batch: %w", err)
	}

	s.logger.Info().Int("received", len(games)).Int("stored", stored).Msg("game batch ingested")
	return stored, nil
}

// Refresh pulls the remote game-log export and upserts everything it
// returns. The games and roster endpoints are fetched concurrently;
// the roster backfills stable ids onto records that only carry a
// display name.
func (s *IngestService) Refresh(ctx context.Context) (int, error) {
	if !s.export.Enabled() {
		s.logger.Debug().Msg("no export endpoint configured, refresh skipped")
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if latest, err := s.repo.LatestStartedAt(ctx); err == nil && !latest.IsZero() {
		s.logger.Debug().Time("latest_game", latest).Msg("refreshing export")
	}

	games, roster, err := s.fetchExport(ctx)
	if err != nil {
		return 0, err
	}

	applyRoster(games, roster)

	stored, err := s.repo.UpsertBatch(ctx, games)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store export games")
		return stored, fmt.Errorf("failed to store export games: %w", err)
	}

	s.logger.Info().Int("fetched", len(games)).Int("stored", stored).Msg("export refreshed")
	return stored, nil
}

func (s *IngestService) fetchExport(ctx context.Context) ([]domain.GameRecord, []api.RosterEntry, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(apiCtx)
	var games []domain.GameRecord
	var roster []api.RosterEntry

	g.Go(func() error {
		var err error
		games, err = s.export.GetGames(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		roster, err = s.export.GetRoster(gCtx)
		if err != nil {
			// The roster endpoint is optional on older exports.
			s.logger.Warn().Err(err).Msg("roster fetch failed, continuing without stable ids")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch export")
		return nil, nil, fmt.Errorf("failed to fetch export: %w", err)
	}

	s.logger.Debug().Int("games", len(games)).Int("roster", len(roster)).Msg("export fetched")
	return games, roster, nil
}

// applyRoster fills in missing stable ids by display name. Matching is
// case-insensitive; a name the roster does not know stays id-less and
// aggregation falls back to the normalized name.
func applyRoster(games []domain.GameRecord, roster []api.RosterEntry) {
	if len(roster) == 0 {
		return
	}

	byName := make(map[string]string, len(roster))
	for _, entry := range roster {
		byName[normalizeName(entry.Name)] = entry.StableID
	}

	for i := range games {
		for j := range games[i].Players {
			p := &games[i].Players[j]
			if p.StableID != "" {
				continue
			}
			if id, ok := byName[normalizeName(p.Name)]; ok {
				p.StableID = id
			}
		}
	}
}
