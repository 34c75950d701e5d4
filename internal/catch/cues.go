package catch

// CueSink receives audio cues from the game loop. Implementations must
// return quickly and must not fail; a missing sound is silently skipped.
type CueSink interface {
	Collect(c Category)
	GameOver()
	MusicStart()
	MusicStop()
}

// NopCues discards every cue.
type NopCues struct{}

func (NopCues) Collect(Category) {}
func (NopCues) GameOver()        {}
func (NopCues) MusicStart()      {}
func (NopCues) MusicStop()       {}
