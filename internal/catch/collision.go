package catch

import "github.com/vovakirdan/catcher/internal/core"

// Collision is the outcome of resolving one tick's overlaps.
type Collision struct {
	Collected []Entity // Rewards caught this tick
	Points    int      // Sum of Collected points
	Hazard    bool     // At least one hazard touched the catcher
}

// Resolve removes every entity overlapping the catcher and reports what was hit.
// Rewards and hazards in the same tick are both reported.
func Resolve(catcher core.Box, set *EntitySet) Collision {
	var c Collision
	hits := set.RemoveIf(func(e *Entity) bool {
		return e.Box().Overlaps(catcher)
	})
	for _, e := range hits {
		if e.Category == Hazard {
			c.Hazard = true
			continue
		}
		c.Collected = append(c.Collected, e)
		c.Points += e.Points
	}
	return c
}
