// Package storage provides the high-score store backends: SQLite for local
// play, PostgreSQL for a shared server, and an in-memory store for tests and
// throwaway sessions.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/catcher/internal/config"
	"github.com/vovakirdan/catcher/internal/highscore"
)

// DefaultTopLimit is used when a non-positive limit is passed to Top.
const DefaultTopLimit = 10

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// Store is a high-score store that can also list the leaderboard.
type Store interface {
	highscore.Store
	// Top returns up to limit records ordered by high score, best first.
	Top(ctx context.Context, limit int) ([]highscore.Record, error)
	// Delete removes a player's record. Deleting a missing player is not an error.
	Delete(ctx context.Context, playerID string) error
	Close() error
}

// Open connects to the store selected by cfg.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return OpenSQLite(config.ExpandHome(cfg.DSN))
	case "postgres":
		return NewPostgresStore(ctx, cfg.DSN)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownDriver, cfg.Driver)
	}
}
