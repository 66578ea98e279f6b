package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lycans-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type GameRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewGameRepository(sqlDB *sql.DB, logger zerolog.Logger) *GameRepository {
	return &GameRepository{db: sqlDB, logger: logger}
}

// GameFilter is the coarse retrieval filter applied before the stats
// engine runs. Zero values mean "no constraint".
type GameFilter struct {
	From    time.Time
	To      time.Time
	ModOnly bool
	MapName string
}

// UpsertBatch stores a batch of game records inside one transaction.
// Records without an id get a generated one. The full record is kept
// as a JSON payload; SQL columns only carry what the list filters
// need.
func (r *GameRepository) UpsertBatch(ctx context.Context, games []domain.GameRecord) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO games (id, started_at, ended_at, map_name, modded, mod_version, player_count, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			map_name = excluded.map_name,
			modded = excluded.modded,
			mod_version = excluded.mod_version,
			player_count = excluded.player_count,
			payload = excluded.payload,
			updated_at = excluded.updated_at`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	stored := 0
	for i := range games {
		g := games[i]
		if strings.TrimSpace(g.ID) == "" {
			id, err := gonanoid.New()
			if err != nil {
				return stored, fmt.Errorf("failed to generate nanoid: %w", err)
			}
			g.ID = id
		}

		payload, err := json.Marshal(g)
		if err != nil {
			// One corrupt record must not sink the batch.
			r.logger.Warn().Err(err).Str("game_id", g.ID).Msg("skipping unmarshalable game record")
			continue
		}

		if _, err := stmt.ExecContext(ctx,
			g.ID, g.StartedAt, g.EndedAt, g.MapName, g.Modded, g.ModVersion,
			len(g.Players), string(payload), now, now,
		); err != nil {
			return stored, fmt.Errorf("failed to upsert game %s: %w", g.ID, err)
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return stored, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Debug().Int("count", stored).Msg("game batch upserted")
	return stored, nil
}

// List returns the stored games matching the filter, ordered by start
// time ascending. Rows whose payload no longer parses are skipped,
// not fatal.
func (r *GameRepository) List(ctx context.Context, filter GameFilter) ([]domain.GameRecord, error) {
	query := `SELECT id, payload FROM games WHERE 1=1`
	var args []any

	if !filter.From.IsZero() {
		query += ` AND started_at >= ?`
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		query += ` AND started_at <= ?`
		args = append(args, filter.To)
	}
	if filter.ModOnly {
		query += ` AND modded = TRUE`
	}
	if filter.MapName != "" {
		query += ` AND map_name = ? COLLATE NOCASE`
		args = append(args, filter.MapName)
	}
	query += ` ORDER BY started_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	games := []domain.GameRecord{}
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}

		var g domain.GameRecord
		if err := json.Unmarshal([]byte(payload), &g); err != nil {
			r.logger.Warn().Err(err).Str("game_id", id).Msg("skipping corrupt game payload")
			continue
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game rows: %w", err)
	}

	return games, nil
}

// Get returns one game by id, or nil when it is not stored.
func (r *GameRepository) Get(ctx context.Context, id string) (*domain.GameRecord, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM games WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", id, err)
	}

	var g domain.GameRecord
	if err := json.Unmarshal([]byte(payload), &g); err != nil {
		return nil, fmt.Errorf("failed to decode game %s: %w", id, err)
	}
	return &g, nil
}

func (r *GameRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return n, nil
}

// LatestStartedAt reports the most recent stored start time, used to
// decide whether a remote export pull is worth doing.
func (r *GameRepository) LatestStartedAt(ctx context.Context) (time.Time, error) {
	var latest sql.NullTime
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(started_at) FROM games`).Scan(&latest); err != nil {
		return time.Time{}, fmt.Errorf("failed to query latest game: %w", err)
	}
	if !latest.Valid {
		return time.Time{}, nil
	}
	return latest.Time, nil
}
