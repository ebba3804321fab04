// Package sfx synthesises short sound cues for engine events as
// beep streamers and mixes them into one PCM stream.
package sfx

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length tone that can glide between two
// frequencies.
type oscillator struct {
	from, to float64
	phase    float64
	length   int
	pos      int
	wave     Wave
	rate     beep.SampleRate
	noise    *rand.Rand
}

// Tone returns a constant-pitch oscillator.
func Tone(freq float64, d time.Duration, w Wave, rate beep.SampleRate) beep.Streamer {
	return Sweep(freq, freq, d, w, rate)
}

// Sweep returns an oscillator gliding linearly from one pitch to another.
func Sweep(from, to float64, d time.Duration, w Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		from:   from,
		to:     to,
		length: rate.N(d),
		wave:   w,
		rate:   rate,
		noise:  rand.New(rand.NewSource(int64(from*1000) + 1)), //#nosec G404 -- audio noise only
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.noise.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		freq := o.from + (o.to-o.from)*float64(o.pos)/float64(max(1, o.length))
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

// Shape wraps s with an attack/release envelope over d.
func Shape(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		s:       s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.s.Stream(samples)
	releaseAt := e.total - e.release
	for i := range n {
		if e.pos >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if e.release > 0 && e.pos >= releaseAt {
			vol = math.Max(0, float64(e.total-e.pos)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// gain scales a stream linearly. Zero or less is silent.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
