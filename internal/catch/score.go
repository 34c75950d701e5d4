package catch

// ScoreTracker accumulates points within a round.
type ScoreTracker struct {
	value int
}

// Add increases the score. Negative points are ignored.
func (s *ScoreTracker) Add(points int) {
	if points > 0 {
		s.value += points
	}
}

// Reset sets the score back to zero.
func (s *ScoreTracker) Reset() {
	s.value = 0
}

// Current returns the score.
func (s *ScoreTracker) Current() int {
	return s.value
}
