package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vovakirdan/catcher/internal/highscore"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS high_scores (
    player_id TEXT PRIMARY KEY,
    high_score INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(high_score DESC);
`

// PostgresStore keeps high scores in PostgreSQL so several hosts can share
// one leaderboard.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Get returns the record for playerID.
func (s *PostgresStore) Get(ctx context.Context, playerID string) (highscore.Record, bool, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT player_id, high_score, updated_at FROM high_scores WHERE player_id = $1`, playerID)

	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return highscore.Record{}, false, nil
	}
	if err != nil {
		return highscore.Record{}, false, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return rec, true, nil
}

// Put upserts rec.
func (s *PostgresStore) Put(ctx context.Context, rec highscore.Record) error {
	at := rec.UpdatedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO high_scores (player_id, high_score, updated_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (player_id) DO UPDATE SET
		   high_score = EXCLUDED.high_score,
		   updated_at = EXCLUDED.updated_at`,
		rec.PlayerID, rec.HighScore, at)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// Register inserts a zero record for playerID unless one exists.
func (s *PostgresStore) Register(ctx context.Context, playerID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO high_scores (player_id, high_score) VALUES ($1, 0)
		 ON CONFLICT (player_id) DO NOTHING`, playerID)
	if err != nil {
		return false, fmt.Errorf("storage: cannot register player: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Top retrieves the best N records ordered by score descending.
func (s *PostgresStore) Top(ctx context.Context, limit int) ([]highscore.Record, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	rows, err := s.pool.Query(ctx,
		`SELECT player_id, high_score, updated_at FROM high_scores
		 ORDER BY high_score DESC, player_id ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (highscore.Record, error) {
		return scanRecord(row)
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot scan rows: %w", err)
	}
	return records, nil
}

// Delete removes the record for playerID.
func (s *PostgresStore) Delete(ctx context.Context, playerID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM high_scores WHERE player_id = $1`, playerID); err != nil {
		return fmt.Errorf("storage: cannot delete player: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanRecord(row pgx.Row) (highscore.Record, error) {
	var rec highscore.Record
	if err := row.Scan(&rec.PlayerID, &rec.HighScore, &rec.UpdatedAt); err != nil {
		return highscore.Record{}, err
	}
	return rec, nil
}
