package storage

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/vovakirdan/catcher/internal/highscore"
)

// MemoryStore is a process-local store. Scores are lost on exit.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]highscore.Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]highscore.Record)}
}

// Get returns the record for playerID.
func (m *MemoryStore) Get(_ context.Context, playerID string) (highscore.Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[playerID]
	return rec, ok, nil
}

// Put stores rec, stamping UpdatedAt if it is unset.
func (m *MemoryStore) Put(_ context.Context, rec highscore.Record) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	m.mu.Lock()
	m.records[rec.PlayerID] = rec
	m.mu.Unlock()
	return nil
}

// Register inserts a zero record if playerID has none.
func (m *MemoryStore) Register(_ context.Context, playerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[playerID]; ok {
		return false, nil
	}
	m.records[playerID] = highscore.Record{PlayerID: playerID, UpdatedAt: time.Now().UTC()}
	return true, nil
}

// Top returns up to limit records, best score first, ties by player ID.
func (m *MemoryStore) Top(_ context.Context, limit int) ([]highscore.Record, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	m.mu.RLock()
	out := make([]highscore.Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b highscore.Record) int {
		if c := cmp.Compare(b.HighScore, a.HighScore); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})
	return out[:min(limit, len(out))], nil
}

// Delete removes a player's record. Missing players are not an error.
func (m *MemoryStore) Delete(_ context.Context, playerID string) error {
	m.mu.Lock()
	delete(m.records, playerID)
	m.mu.Unlock()
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
