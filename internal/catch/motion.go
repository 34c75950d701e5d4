package catch

import (
	"math"
	"time"
)

// Advance integrates every entity's position by dt seconds.
func Advance(set *EntitySet, dt float64) {
	for i := range set.items {
		e := &set.items[i]
		e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	}
}

// Cull removes entities whose center has fallen past the bottom edge.
// Culled entities never score. Returns how many were removed.
func Cull(set *EntitySet, height float64) int {
	return len(set.RemoveIf(func(e *Entity) bool {
		return e.Pos.Y > height
	}))
}

// substeps returns how many motion and collision passes a tick of dt needs
// so that no item moves further than the catcher's smaller side per pass.
func (r *Rules) substeps(dt time.Duration) int {
	limit := min(r.CatcherSize.X, r.CatcherSize.Y)
	if dt <= 0 || limit <= 0 {
		return 1
	}
	var fall float64
	for _, spec := range r.Specs {
		fall = max(fall, spec.FallSpeed)
	}
	drift := max(math.Abs(r.DriftMin), math.Abs(r.DriftMax))
	return max(1, int(math.Ceil((fall+drift)*dt.Seconds()/limit)))
}
