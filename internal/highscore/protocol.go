package highscore

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds each store round trip.
const DefaultTimeout = 5 * time.Second

// Client runs the high-score protocol against a Store.
type Client struct {
	store   Store
	logger  *log.Logger
	timeout time.Duration
}

// NewClient creates a protocol client. A nil logger uses log.Default().
func NewClient(store Store, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		store:   store,
		logger:  logger.WithPrefix("highscore"),
		timeout: DefaultTimeout,
	}
}

// WithTimeout returns a copy of the client using the given per-call timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	cc := *c
	cc.timeout = d
	return &cc
}

// Submit reads the stored high score and writes req.Score only if it is
// strictly greater. Failures are logged and returned in the Result; they
// never panic and never retry.
//
// Two sessions for the same player can interleave their reads and writes and
// lose the higher score. There is no compare-and-swap on the store interface.
func (c *Client) Submit(ctx context.Context, req Request) Result {
	res := Result{Request: req}

	if _, err := NormalizePlayerID(req.PlayerID); err != nil {
		res.Err = err
		return res
	}
	if c.store == nil {
		res.Err = fmt.Errorf("highscore: no store configured")
		c.logger.Warn("score not saved", "player", req.PlayerID, "error", res.Err)
		return res
	}

	getCtx, cancel := context.WithTimeout(ctx, c.timeout)
	rec, found, err := c.store.Get(getCtx, req.PlayerID)
	cancel()
	if err != nil {
		res.Err = fmt.Errorf("highscore: read %q: %w", req.PlayerID, err)
		c.logger.Error("error getting current high score", "player", req.PlayerID, "error", err)
		return res
	}

	res.Found = found
	if found {
		res.Stored = rec.HighScore
	}

	if req.Score <= res.Stored {
		c.logger.Debug("score below stored high score", "player", req.PlayerID, "score", req.Score, "stored", res.Stored)
		return res
	}

	putCtx, cancel := context.WithTimeout(ctx, c.timeout)
	err = c.store.Put(putCtx, Record{PlayerID: req.PlayerID, HighScore: req.Score})
	cancel()
	if err != nil {
		res.Err = fmt.Errorf("highscore: write %q: %w", req.PlayerID, err)
		c.logger.Error("error saving high score", "player", req.PlayerID, "score", req.Score, "error", err)
		return res
	}

	res.Wrote = true
	c.logger.Info("new high score saved", "player", req.PlayerID, "score", req.Score, "previous", res.Stored)
	return res
}

// Launch runs Submit on its own goroutine. The returned channel receives
// exactly one Result and is never closed early, so callers may drop it.
func (c *Client) Launch(ctx context.Context, req Request) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		out <- c.Submit(ctx, req)
	}()
	return out
}

// Register creates the initial {playerID, 0} record if none exists.
// It returns the normalized ID. This is a plain insert-if-absent, not a
// read-modify-write.
func (c *Client) Register(ctx context.Context, raw string) (string, bool, error) {
	id, err := NormalizePlayerID(raw)
	if err != nil {
		return "", false, err
	}
	if c.store == nil {
		return id, false, fmt.Errorf("highscore: no store configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	created, err := c.store.Register(ctx, id)
	if err != nil {
		c.logger.Error("error saving player ID", "player", id, "error", err)
		return id, false, fmt.Errorf("highscore: register %q: %w", id, err)
	}
	c.logger.Info("player ID saved", "player", id, "created", created)
	return id, created, nil
}
