package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := waveAt(o.wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

func waveAt(w WaveType, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// decay applies an exponential fade so plucked tones do not click.
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	attack   int
	k        float64
	position int
}

// NewDecay shapes s with a short linear attack and an exponential tail.
func NewDecay(s beep.Streamer, attack time.Duration, halfLife time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{
		streamer: s,
		rate:     rate,
		attack:   rate.N(attack),
		k:        math.Ln2 / halfLife.Seconds(),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.position) / float64(d.rate)
		vol := math.Exp(-d.k * t)
		if d.position < d.attack {
			vol *= float64(d.position) / float64(d.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume scales s linearly. math.Log2(0) is -Inf, so 0 is handled as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// pluck is a short decaying tone.
func pluck(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewDecay(NewOscillator(freq, d, WaveTriangle, rate), 5*time.Millisecond, d/4, rate)
}

// collectPitch gives each reward category its own chime.
var collectPitch = map[string]float64{
	"common":  659.25, // E5
	"special": 783.99, // G5
	"bonus":   880.00, // A5
	"rare":    1046.5, // C6
}

// CreateCollectSound generates a rising two-note chime for a reward category.
func CreateCollectSound(category string, rate beep.SampleRate) beep.Streamer {
	freq, ok := collectPitch[category]
	if !ok {
		freq = collectPitch["common"]
	}
	return beep.Seq(
		pluck(freq, 60*time.Millisecond, rate),
		pluck(freq*1.5, 140*time.Millisecond, rate),
	)
}

// CreateGameOverSound generates a descending three-note phrase.
func CreateGameOverSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		pluck(392.00, 220*time.Millisecond, rate), // G4
		pluck(311.13, 220*time.Millisecond, rate), // Eb4
		NewDecay(NewOscillator(196.00, 700*time.Millisecond, WaveSquare, rate), 5*time.Millisecond, 250*time.Millisecond, rate),
	)
}

// melody is an endless arpeggio used when no music file is available.
type melody struct {
	rate     beep.SampleRate
	notes    []float64
	noteLen  int
	position int
	phase    float64
}

// NewMelody creates the fallback background loop.
func NewMelody(rate beep.SampleRate) beep.Streamer {
	return &melody{
		rate:    rate,
		notes:   []float64{261.63, 329.63, 392.00, 523.25, 392.00, 329.63, 293.66, 349.23}, // C major walk
		noteLen: rate.N(220 * time.Millisecond),
	}
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		idx := (m.position / m.noteLen) % len(m.notes)
		inNote := m.position % m.noteLen
		if inNote == 0 {
			m.phase = 0
		}
		env := math.Exp(-6 * float64(inNote) / float64(m.noteLen))
		val := 0.25 * env * waveAt(WaveTriangle, m.phase)

		samples[i][0] = val
		samples[i][1] = val

		m.phase += m.notes[idx] / float64(m.rate)
		m.phase -= math.Floor(m.phase)
		m.position++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }
