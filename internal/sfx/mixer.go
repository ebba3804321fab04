package sfx

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/neon-runner/internal/games/neon"
)

// DefaultSampleRate is the PCM output rate.
const DefaultSampleRate = beep.SampleRate(44100)

// maxVoices bounds simultaneous cues; further cues are dropped.
const maxVoices = 16

// Mixer is an engine sink that turns events into sound. It is also a
// beep.Streamer that never ends: silence is produced between cues.
type Mixer struct {
	rate   beep.SampleRate
	volume float64

	mu      sync.Mutex
	mix     beep.Mixer
	played  uint64
	dropped uint64
}

// NewMixer creates a mixer at rate with a master volume in [0, 1].
func NewMixer(rate beep.SampleRate, volume float64) *Mixer {
	return &Mixer{rate: rate, volume: min(1, max(0, volume))}
}

// SampleRate returns the output rate.
func (m *Mixer) SampleRate() beep.SampleRate {
	return m.rate
}

// Stats is a no-op; only events make sound.
func (m *Mixer) Stats(neon.Stats) {}

// Event queues the event's cue when the event asks for sound.
func (m *Mixer) Event(ev neon.Event) {
	if !ev.Sound || m.volume <= 0 {
		return
	}
	cue := Cue(ev, m.rate)
	if cue == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mix.Len() >= maxVoices {
		m.dropped++
		return
	}
	m.mix.Add(gain(cue, m.volume))
	m.played++
}

// Active returns the number of cues still sounding.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mix.Len()
}

// Counts returns how many cues were played and dropped.
func (m *Mixer) Counts() (played, dropped uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played, m.dropped
}

// Stream fills samples with the current mix.
func (m *Mixer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		samples[i] = [2]float64{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mix.Len() > 0 {
		m.mix.Stream(samples)
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (m *Mixer) Err() error { return nil }

// EncodePCM converts samples to interleaved signed 16-bit little-endian
// stereo, softly limiting peaks. out must hold 4 bytes per sample.
func EncodePCM(in [][2]float64, out []byte) {
	for i, s := range in {
		for ch := range 2 {
			v := s[ch]
			if v > 0.8 {
				v = 0.8 + 0.2*(1-1/(1+(v-0.8)*5))
			} else if v < -0.8 {
				v = -0.8 - 0.2*(1-1/(1+(-v-0.8)*5))
			}
			v = min(1, max(-1, v))
			binary.LittleEndian.PutUint16(out[i*4+ch*2:], uint16(int16(v*32767))) //#nosec G115 -- two's complement encoding
		}
	}
}

// Pipe streams the mix as raw PCM to w in buffer-sized chunks until ctx
// is cancelled or a write fails.
func (m *Mixer) Pipe(ctx context.Context, w io.Writer, buffer time.Duration) error {
	n := m.rate.N(buffer)
	if n <= 0 {
		return fmt.Errorf("sfx: buffer %v too short", buffer)
	}
	samples := make([][2]float64, n)
	out := make([]byte, n*4)

	ticker := time.NewTicker(buffer)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Stream(samples)
			EncodePCM(samples, out)
			if _, err := w.Write(out); err != nil {
				return fmt.Errorf("sfx: write: %w", err)
			}
		}
	}
}
