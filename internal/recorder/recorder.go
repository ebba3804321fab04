// Package recorder writes a run's stats and events as zstd-compressed JSON
// lines and reads them back for inspection.
package recorder

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/neon-runner/internal/games/neon"
)

// Extension is the file suffix of a recording.
const Extension = ".jsonl.zst"

// Line types.
const (
	TypeHeader = "header"
	TypeStats  = "stats"
	TypeEvent  = "event"
)

// Header is the first line of every recording.
type Header struct {
	RunID      string    `json:"run_id"`
	GameID     string    `json:"game_id"`
	Seed       int64     `json:"seed"`
	Difficulty string    `json:"difficulty"`
	StartedAt  time.Time `json:"started_at"`
}

// Line is one JSONL entry. Exactly one payload is set.
type Line struct {
	Type   string      `json:"type"`
	Header *Header     `json:"header,omitempty"`
	Stats  *neon.Stats `json:"stats,omitempty"`
	Event  *neon.Event `json:"event,omitempty"`
}

// Recorder is an engine sink that appends every stats snapshot and event
// to a compressed stream. Shot events are skipped unless requested.
type Recorder struct {
	mu    sync.Mutex
	c     io.Closer
	enc   *zstd.Encoder
	w     *bufio.Writer
	shots bool
	lines int
	err   error
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithShots includes per-volley shot events.
func WithShots() Option {
	return func(r *Recorder) { r.shots = true }
}

// New starts a recording on w and writes the header.
// Closing the recorder also closes w if it is an io.Closer.
func New(w io.Writer, h Header, opts ...Option) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("recorder: cannot create encoder: %w", err)
	}
	r := &Recorder{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64*1024),
	}
	if c, ok := w.(io.Closer); ok {
		r.c = c
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.write(Line{Type: TypeHeader, Header: &h}); err != nil {
		_ = enc.Close()
		return nil, err
	}
	return r, nil
}

// Create opens path (creating parent directories) and starts a recording.
func Create(path string, h Header, opts ...Option) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("recorder: cannot create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644) //#nosec G304 -- path is chosen by the player
	if err != nil {
		return nil, fmt.Errorf("recorder: cannot open %s: %w", path, err)
	}
	r, err := New(f, h, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}

// Path returns dir/<runID>.jsonl.zst.
func Path(dir, runID string) string {
	return filepath.Join(dir, runID+Extension)
}

// Stats records a snapshot.
func (r *Recorder) Stats(s neon.Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keep(r.write(Line{Type: TypeStats, Stats: &s}))
}

// Event records an event.
func (r *Recorder) Event(ev neon.Event) {
	if ev.Kind == neon.EventShot && !r.shots {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keep(r.write(Line{Type: TypeEvent, Event: &ev}))
}

// Lines returns how many lines have been written, header included.
func (r *Recorder) Lines() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lines
}

// Err returns the first write error. Later lines are dropped after one.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close flushes the stream and closes the underlying writer.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.w == nil {
		return r.err
	}
	err := r.w.Flush()
	if cerr := r.enc.Close(); err == nil {
		err = cerr
	}
	if r.c != nil {
		if cerr := r.c.Close(); err == nil {
			err = cerr
		}
	}
	r.w = nil
	if err != nil {
		return fmt.Errorf("recorder: cannot close: %w", err)
	}
	return r.err
}

func (r *Recorder) keep(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}

func (r *Recorder) write(l Line) error {
	if r.w == nil || r.err != nil {
		return nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("recorder: cannot encode line: %w", err)
	}
	if _, err := r.w.Write(b); err != nil {
		return fmt.Errorf("recorder: cannot write: %w", err)
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("recorder: cannot write: %w", err)
	}
	r.lines++
	return nil
}
