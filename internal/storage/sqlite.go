package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/catcher/internal/highscore"
)

// SQLiteStore keeps high scores in a local SQLite file.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("storage: empty database path")
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			player_id TEXT PRIMARY KEY,
			high_score INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_high_scores_top ON high_scores(high_score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the record for playerID.
func (s *SQLiteStore) Get(ctx context.Context, playerID string) (highscore.Record, bool, error) {
	var (
		rec     = highscore.Record{PlayerID: playerID}
		updated int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT high_score, updated_at FROM high_scores WHERE player_id = ?",
		playerID,
	).Scan(&rec.HighScore, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return highscore.Record{}, false, nil
	}
	if err != nil {
		return highscore.Record{}, false, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	rec.UpdatedAt = time.Unix(updated, 0).UTC()
	return rec, true, nil
}

// Put upserts rec. UpdatedAt defaults to now.
func (s *SQLiteStore) Put(ctx context.Context, rec highscore.Record) error {
	at := rec.UpdatedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO high_scores (player_id, high_score, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(player_id) DO UPDATE SET
		   high_score = excluded.high_score,
		   updated_at = excluded.updated_at`,
		rec.PlayerID, rec.HighScore, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save high score: %w", err)
	}
	return nil
}

// Register inserts a zero record for playerID unless one exists.
func (s *SQLiteStore) Register(ctx context.Context, playerID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO high_scores (player_id, high_score, updated_at)
		 VALUES (?, 0, ?)
		 ON CONFLICT(player_id) DO NOTHING`,
		playerID, time.Now().Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot register player: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// Top retrieves the best N records ordered by score descending.
func (s *SQLiteStore) Top(ctx context.Context, limit int) ([]highscore.Record, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT player_id, high_score, updated_at
		 FROM high_scores
		 ORDER BY high_score DESC, player_id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var records []highscore.Record
	for rows.Next() {
		var (
			rec     highscore.Record
			updated int64
		)
		if err := rows.Scan(&rec.PlayerID, &rec.HighScore, &updated); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.UpdatedAt = time.Unix(updated, 0).UTC()
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Delete removes the record for playerID.
func (s *SQLiteStore) Delete(ctx context.Context, playerID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM high_scores WHERE player_id = ?", playerID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete player: %w", err)
	}
	return nil
}
