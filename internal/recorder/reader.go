package recorder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/neon-runner/internal/games/neon"
)

// Recording is a decoded run.
type Recording struct {
	Header Header
	Stats  []neon.Stats
	Events []neon.Event
}

// Read decodes a recording stream.
func Read(r io.Reader) (*Recording, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("recorder: cannot create decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	rec := &Recording{}
	n := 0
	for sc.Scan() {
		n++
		var l Line
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			return nil, fmt.Errorf("recorder: line %d: %w", n, err)
		}
		switch {
		case l.Type == TypeHeader && l.Header != nil:
			if n != 1 {
				return nil, fmt.Errorf("recorder: line %d: header out of place", n)
			}
			rec.Header = *l.Header
		case n == 1:
			return nil, fmt.Errorf("recorder: missing header")
		case l.Type == TypeStats && l.Stats != nil:
			rec.Stats = append(rec.Stats, *l.Stats)
		case l.Type == TypeEvent && l.Event != nil:
			rec.Events = append(rec.Events, *l.Event)
		default:
			return nil, fmt.Errorf("recorder: line %d: unknown type %q", n, l.Type)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("recorder: cannot read: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("recorder: empty recording")
	}
	return rec, nil
}

// ReadFile decodes the recording at path.
func ReadFile(path string) (*Recording, error) {
	f, err := os.Open(path) //#nosec G304 -- path is chosen by the player
	if err != nil {
		return nil, fmt.Errorf("recorder: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Summary condenses a recording for display.
type Summary struct {
	Header    Header
	Final     neon.Stats
	Frames    int
	Events    map[neon.EventKind]int
	Ended     bool
	EndTick   uint64
	PeakCount int
}

// Summarize counts events and keeps the last snapshot.
func (r *Recording) Summarize() Summary {
	s := Summary{
		Header: r.Header,
		Frames: len(r.Stats),
		Events: make(map[neon.EventKind]int),
	}
	for _, st := range r.Stats {
		s.PeakCount = max(s.PeakCount, st.ProjectileCount)
	}
	if len(r.Stats) > 0 {
		s.Final = r.Stats[len(r.Stats)-1]
	}
	for _, ev := range r.Events {
		s.Events[ev.Kind]++
		if ev.Kind == neon.EventGameOver {
			s.Ended = true
			s.EndTick = ev.Tick
		}
	}
	return s
}
