// Package audio plays the game's sound cues through the system speaker using
// gopxl/beep. Sound files are optional: anything missing is replaced by a
// synthesized tone, and a machine without audio output plays nothing.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/catcher/internal/catch"
	"github.com/vovakirdan/catcher/internal/config"
)

const (
	sampleRate = beep.SampleRate(44100)

	clipMusic    = "game-music"
	clipCollect  = "collect"
	clipGameOver = "game-over"

	musicVolume    = 0.5
	collectVolume  = 0.7
	gameOverVolume = 0.5
)

var clipFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// Player implements catch.CueSink.
type Player struct {
	mu          sync.Mutex
	logger      *log.Logger
	volume      float64
	mixer       *beep.Mixer
	music       *beep.Ctrl
	clips       map[string]*beep.Buffer
	initialized bool
}

var _ catch.CueSink = (*Player)(nil)

// New creates a player and loads whatever sound files exist in cfg.AssetDir.
// The speaker is not opened until Initialize.
func New(cfg config.AudioConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	p := &Player{
		logger: logger.WithPrefix("audio"),
		volume: cfg.Volume,
		mixer:  &beep.Mixer{},
		clips:  make(map[string]*beep.Buffer),
	}
	if cfg.AssetDir != "" {
		p.loadClips(config.ExpandHome(cfg.AssetDir))
	}
	return p
}

// Initialize opens the speaker. On failure the player stays silent and the
// error is returned for logging.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio unavailable, continuing without sound", "error", err)
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.music = nil
	p.initialized = false
}

// HasClip reports whether a sound file was loaded for name.
func (p *Player) HasClip(name string) bool {
	_, ok := p.clips[name]
	return ok
}

// Collect plays the pickup sound for a reward category.
func (p *Player) Collect(c catch.Category) {
	var s beep.Streamer
	if buf, ok := p.clips[clipCollect]; ok {
		s = buf.Streamer(0, buf.Len())
	} else {
		s = CreateCollectSound(c.String(), sampleRate)
	}
	p.play(newVolume(s, collectVolume))
}

// GameOver plays the game-over sound.
func (p *Player) GameOver() {
	var s beep.Streamer
	if buf, ok := p.clips[clipGameOver]; ok {
		s = buf.Streamer(0, buf.Len())
	} else {
		s = CreateGameOverSound(sampleRate)
	}
	p.play(newVolume(s, gameOverVolume))
}

// MusicStart (re)starts the background loop.
func (p *Player) MusicStart() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	var s beep.Streamer
	if buf, ok := p.clips[clipMusic]; ok {
		s = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	} else {
		s = NewMelody(sampleRate)
	}

	ctrl := &beep.Ctrl{Streamer: newVolume(s, musicVolume*p.volume)}
	speaker.Lock()
	if p.music != nil {
		p.music.Streamer = nil
	}
	p.mixer.Add(ctrl)
	speaker.Unlock()
	p.music = ctrl
}

// MusicStop ends the background loop.
func (p *Player) MusicStop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.music == nil {
		return
	}
	// A Ctrl with no streamer reports exhaustion and the mixer drops it.
	speaker.Lock()
	p.music.Streamer = nil
	speaker.Unlock()
	p.music = nil
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.volume <= 0 {
		return
	}
	speaker.Lock()
	p.mixer.Add(newVolume(s, p.volume))
	speaker.Unlock()
}

// loadClips decodes every known clip found in dir. Missing or broken files
// are logged and skipped.
func (p *Player) loadClips(dir string) {
	for _, name := range []string{clipMusic, clipCollect, clipGameOver} {
		buf, path, err := loadClip(dir, name)
		switch {
		case errors.Is(err, os.ErrNotExist):
			p.logger.Debug("sound file not found, using synthesized fallback", "clip", name)
		case err != nil:
			p.logger.Warn("cannot load sound file", "path", path, "error", err)
		default:
			p.logger.Debug("loaded sound file", "path", path)
			p.clips[name] = buf
		}
	}
}

// loadClip tries name.mp3 then name.wav and buffers the decoded audio at the
// player's sample rate.
func loadClip(dir, name string) (*beep.Buffer, string, error) {
	decoders := []struct {
		ext    string
		decode func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)
	}{
		{".mp3", mp3.Decode},
		{".wav", func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(rc) }},
	}

	for _, d := range decoders {
		path := filepath.Join(dir, name+d.ext)
		f, err := os.Open(path) //#nosec G304 -- user-configured asset directory
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, path, err
		}

		stream, format, err := d.decode(f)
		if err != nil {
			f.Close()
			return nil, path, fmt.Errorf("audio: decode %s: %w", path, err)
		}

		buf := beep.NewBuffer(clipFormat)
		buf.Append(beep.Resample(4, format.SampleRate, sampleRate, stream))
		stream.Close()
		return buf, path, nil
	}
	return nil, "", os.ErrNotExist
}
