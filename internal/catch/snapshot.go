package catch

import (
	"math"

	"github.com/google/uuid"
)

// Snapshot is the serializable state of a session: the round plus the
// entity set. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     uint64
	Phase    int
	Score    int
	PlayerID string
	RoundID  uuid.UUID
	Paused   bool
	CatcherX float64

	// Each entity is 8 values: ID, Category, X, Y, VX, VY, Points, spare
	Entities []float64
	NextID   uint64

	// Spawn timer progress in nanoseconds, 0 when stopped
	RewardElapsed int64
	HazardElapsed int64
	TimersRunning bool
}

const entityStride = 8

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	items := g.entities.All()
	data := make([]float64, 0, len(items)*entityStride)
	for _, e := range items {
		data = append(data,
			float64(e.ID),
			float64(e.Category),
			e.Pos.X, e.Pos.Y,
			e.Vel.X, e.Vel.Y,
			float64(e.Points),
			0,
		)
	}

	return Snapshot{
		Tick:          g.tick,
		Phase:         int(g.round.Phase),
		Score:         g.score.Current(),
		PlayerID:      g.round.PlayerID,
		RoundID:       g.round.RoundID,
		Paused:        g.paused,
		CatcherX:      g.catcherX,
		Entities:      data,
		NextID:        g.entities.nextID,
		RewardElapsed: int64(g.spawner.reward.elapsed),
		HazardElapsed: int64(g.spawner.hazard.elapsed),
		TimersRunning: g.spawner.Running(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
// RoundID is excluded since it is random per round.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)          //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.CatcherX)
	h = h*31 + snap.NextID
	h = h*31 + uint64(snap.RewardElapsed) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HazardElapsed) //#nosec G115 -- hash computation
	if snap.Paused {
		h = h*31 + 1
	}
	if snap.TimersRunning {
		h = h*31 + 2
	}
	for _, r := range snap.PlayerID {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}
	for _, v := range snap.Entities {
		h = h*31 + math.Float64bits(v)
	}
	return h
}
