package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/catcher/internal/catch"
	"github.com/vovakirdan/catcher/internal/config"
)

func drain(t *testing.T, s beep.Streamer) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for range 10000 {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, buf[i][0], -buf[i][0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never ended")
	return 0, 0
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, w := range []WaveType{WaveSine, WaveSquare, WaveTriangle} {
		osc := NewOscillator(440, 100*time.Millisecond, w, rate)
		n, peak := drain(t, osc)
		assert.Equal(t, rate.N(100*time.Millisecond), n)
		assert.LessOrEqual(t, peak, 1.0)
		assert.NoError(t, osc.Err())
	}
}

func TestSynthesizedCues(t *testing.T) {
	for _, c := range []string{"common", "special", "bonus", "rare", "unknown"} {
		n, peak := drain(t, CreateCollectSound(c, sampleRate))
		assert.Equal(t, sampleRate.N(200*time.Millisecond), n, c)
		assert.Positive(t, peak, c)
		assert.LessOrEqual(t, peak, 1.0, c)
	}

	n, _ := drain(t, CreateGameOverSound(sampleRate))
	assert.Equal(t, sampleRate.N(1140*time.Millisecond), n)
}

func TestMelodyNeverEnds(t *testing.T) {
	m := NewMelody(sampleRate)
	buf := make([][2]float64, 4096)
	for range 100 {
		n, ok := m.Stream(buf)
		require.True(t, ok)
		require.Equal(t, len(buf), n)
	}
}

func TestLoadClipsFromDir(t *testing.T) {
	dir := t.TempDir()

	f, err := os.Create(filepath.Join(dir, clipCollect+".wav"))
	require.NoError(t, err)
	format := beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, NewOscillator(440, 100*time.Millisecond, WaveSine, format.SampleRate), format))
	require.NoError(t, f.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, clipGameOver+".wav"), []byte("not a wav"), 0o600))

	p := New(config.AudioConfig{Enabled: true, AssetDir: dir, Volume: 1}, nil)
	assert.True(t, p.HasClip(clipCollect))
	assert.False(t, p.HasClip(clipGameOver), "broken file falls back")
	assert.False(t, p.HasClip(clipMusic))

	buf := p.clips[clipCollect]
	assert.InDelta(t, sampleRate.N(100*time.Millisecond), buf.Len(), 16, "resampled to player rate")
}

func TestCuesWithoutSpeakerAreSilent(t *testing.T) {
	p := New(config.AudioConfig{Enabled: true}, nil)

	assert.NotPanics(t, func() {
		p.MusicStart()
		p.Collect(catch.Rare)
		p.GameOver()
		p.MusicStop()
		p.Close()
	})
	assert.Nil(t, p.music)
}
