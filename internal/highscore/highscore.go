// Package highscore implements the client side of the per-player high-score
// protocol: a read followed by a conditional write against a remote
// key-value store. The store itself is an opaque collaborator.
package highscore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is the remote value stored under a player ID.
type Record struct {
	PlayerID  string
	HighScore int
	UpdatedAt time.Time
}

// Store is the remote key-value service holding one Record per player.
// Implementations must be safe for use from multiple goroutines.
type Store interface {
	// Get returns the record for playerID; found is false if none exists.
	Get(ctx context.Context, playerID string) (rec Record, found bool, err error)
	// Put upserts the record unconditionally.
	Put(ctx context.Context, rec Record) error
	// Register inserts {playerID, 0} if no record exists and reports whether it did.
	Register(ctx context.Context, playerID string) (created bool, err error)
}

// ErrInvalidPlayerID is returned for empty or whitespace-only player IDs.
var ErrInvalidPlayerID = errors.New("highscore: player ID must not be empty")

// NormalizePlayerID trims raw menu input. An empty result is an absent ID.
func NormalizePlayerID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", ErrInvalidPlayerID
	}
	return id, nil
}

// Request asks for a round's final score to be recorded.
// RoundID lets the requester recognise and discard late results.
type Request struct {
	RoundID  uuid.UUID
	PlayerID string
	Score    int
}

// Result reports what one Submit did.
type Result struct {
	Request
	Stored int   // High score read from the store (0 if not found)
	Found  bool  // Whether a record existed before the write
	Wrote  bool  // Whether a new high score was written
	Err    error // Read or write failure; the attempt is abandoned
}

// NewHighScore reports whether this result set a new personal best.
func (r Result) NewHighScore() bool {
	return r.Wrote && r.Err == nil
}
