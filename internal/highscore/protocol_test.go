package highscore

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store that counts calls and can inject failures.
type fakeStore struct {
	mu       sync.Mutex
	records  map[string]int
	gets     int
	puts     []Record
	getErr   error
	putErr   error
	register error
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]int)}
}

func (f *fakeStore) Get(_ context.Context, id string) (Record, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return Record{}, false, f.getErr
	}
	score, ok := f.records[id]
	return Record{PlayerID: id, HighScore: score}, ok, nil
}

func (f *fakeStore) Put(_ context.Context, rec Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, rec)
	if f.putErr != nil {
		return f.putErr
	}
	f.records[rec.PlayerID] = rec.HighScore
	return nil
}

func (f *fakeStore) Register(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.register != nil {
		return false, f.register
	}
	if _, ok := f.records[id]; ok {
		return false, nil
	}
	f.records[id] = 0
	return true, nil
}

func quietClient(s Store) *Client {
	return NewClient(s, log.New(io.Discard))
}

func TestSubmitWritesOnlyStrictlyHigher(t *testing.T) {
	tests := []struct {
		name      string
		stored    *int
		score     int
		wantWrite bool
	}{
		{"lower than stored", intPtr(40), 35, false},
		{"equal to stored", intPtr(40), 40, false},
		{"higher than stored", intPtr(40), 55, true},
		{"no record, positive score", nil, 10, true},
		{"no record, zero score", nil, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			if tc.stored != nil {
				store.records["ana"] = *tc.stored
			}

			res := quietClient(store).Submit(context.Background(), Request{RoundID: uuid.New(), PlayerID: "ana", Score: tc.score})

			require.NoError(t, res.Err)
			assert.Equal(t, tc.wantWrite, res.Wrote)
			assert.Equal(t, 1, store.gets)
			if tc.wantWrite {
				require.Len(t, store.puts, 1)
				assert.Equal(t, Record{PlayerID: "ana", HighScore: tc.score}, store.puts[0])
			} else {
				assert.Empty(t, store.puts)
			}
		})
	}
}

func TestSubmitReadFailureSkipsWrite(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")

	res := quietClient(store).Submit(context.Background(), Request{PlayerID: "ana", Score: 100})

	assert.ErrorIs(t, res.Err, store.getErr)
	assert.False(t, res.Wrote)
	assert.Empty(t, store.puts)
}

func TestSubmitWriteFailureIsReported(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("throttled")

	res := quietClient(store).Submit(context.Background(), Request{PlayerID: "ana", Score: 100})

	assert.ErrorIs(t, res.Err, store.putErr)
	assert.False(t, res.NewHighScore())
	assert.Len(t, store.puts, 1)
}

func TestSubmitRejectsEmptyPlayer(t *testing.T) {
	store := newFakeStore()

	res := quietClient(store).Submit(context.Background(), Request{PlayerID: "   ", Score: 100})

	assert.ErrorIs(t, res.Err, ErrInvalidPlayerID)
	assert.Zero(t, store.gets)
}

func TestSubmitWithoutStore(t *testing.T) {
	res := quietClient(nil).Submit(context.Background(), Request{PlayerID: "ana", Score: 1})
	assert.Error(t, res.Err)
}

func TestLaunchDeliversOneResult(t *testing.T) {
	store := newFakeStore()
	round := uuid.New()

	ch := quietClient(store).Launch(context.Background(), Request{RoundID: round, PlayerID: "ana", Score: 30})

	select {
	case res := <-ch:
		assert.Equal(t, round, res.RoundID)
		assert.True(t, res.NewHighScore())
	case <-time.After(time.Second):
		t.Fatal("Launch did not deliver a result")
	}
}

func TestRegister(t *testing.T) {
	store := newFakeStore()
	c := quietClient(store)

	id, created, err := c.Register(context.Background(), "  ana ")
	require.NoError(t, err)
	assert.Equal(t, "ana", id)
	assert.True(t, created)

	// Existing record is left alone.
	store.records["ana"] = 90
	_, created, err = c.Register(context.Background(), "ana")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 90, store.records["ana"])

	_, _, err = c.Register(context.Background(), "\t")
	assert.ErrorIs(t, err, ErrInvalidPlayerID)

	store.register = errors.New("boom")
	_, _, err = c.Register(context.Background(), "bob")
	assert.ErrorIs(t, err, store.register)
}

func intPtr(v int) *int { return &v }
