package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/games/neon"
	"github.com/vovakirdan/neon-runner/internal/recorder"
	"github.com/vovakirdan/neon-runner/internal/registry"
	"github.com/vovakirdan/neon-runner/internal/storage"
)

// Options wires a game session to the optional collaborators around it.
type Options struct {
	// Store persists runs, scores and settings. May be nil.
	Store *storage.Store
	// Profile names the stored settings profile.
	Profile string
	// FPS is the render rate; the simulation keeps its own tick rate.
	FPS int
	// Sinks receive every run's stats and events.
	Sinks []neon.Sink
	// RecordDir, when set, records each run to <dir>/<run id>.jsonl.zst.
	RecordDir string
	// Logger reports failures of the optional collaborators.
	Logger *log.Logger
	// Settings, when set, override the stored and default settings.
	Settings *config.Settings
}

func (o Options) withDefaults() Options {
	if o.FPS <= 0 {
		o.FPS = 60
	}
	if o.Profile == "" {
		o.Profile = storage.DefaultProfile
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// runHooks attaches run history, recording and extra sinks to a game and
// tracks the boundaries of each run.
type runHooks struct {
	opts   Options
	game   *neon.Game
	runs   *storage.RunSink
	rec    recordSwitch
	active bool
}

// attach wires g if it is a neon game; other games run unwired.
func attach(g registry.Game, opts Options) *runHooks {
	h := &runHooks{opts: opts}
	ng, ok := g.(*neon.Game)
	if !ok {
		return h
	}
	h.game = ng
	if opts.Settings != nil {
		ng.UseSettings(*opts.Settings)
	}

	if opts.Store != nil {
		h.runs = storage.NewRunSink(opts.Store, ng.ID())
		h.runs.OnSave(func(r storage.RunRecord) {
			opts.Logger.Debug("Run saved", "run", r.RunID, "score", r.Score, "wave", r.Wave)
		})
		ng.AddSink(h.runs)
		ng.OnSettingsChange(func(s config.Settings) {
			if err := opts.Store.SaveSettings(opts.Profile, s); err != nil {
				opts.Logger.Warn("Cannot save settings", "error", err)
			}
		})
	}
	if opts.RecordDir != "" {
		ng.AddSink(&h.rec)
	}
	for _, s := range opts.Sinks {
		ng.AddSink(s)
	}
	return h
}

// saves reports whether run history owns score persistence.
func (h *runHooks) saves() bool {
	return h.runs != nil
}

// begin must be called right before each Reset.
func (h *runHooks) begin(seed int64) {
	h.end()
	h.active = true
	if h.game == nil {
		return
	}

	difficulty := string(h.game.Settings().Difficulty)
	runID := ""
	if h.runs != nil {
		h.runs.Begin(seed, difficulty)
		runID = h.runs.RunID()
	}
	if h.opts.RecordDir != "" {
		if runID == "" {
			runID = time.Now().UTC().Format("20060102-150405.000")
		}
		hdr := recorder.Header{
			RunID:      runID,
			GameID:     h.game.ID(),
			Seed:       seed,
			Difficulty: difficulty,
			StartedAt:  time.Now().UTC(),
		}
		r, err := recorder.Create(recorder.Path(h.opts.RecordDir, runID), hdr)
		if err != nil {
			h.opts.Logger.Warn("Cannot record run", "error", err)
			return
		}
		h.rec.set(r)
	}
}

// end closes the current run's recording. Safe to call repeatedly.
func (h *runHooks) end() {
	if !h.active {
		return
	}
	h.active = false
	if r := h.rec.set(nil); r != nil {
		if err := r.Close(); err != nil {
			h.opts.Logger.Warn("Recording incomplete", "error", err)
		}
	}
	if h.runs != nil {
		if err := h.runs.Err(); err != nil {
			h.opts.Logger.Warn("Cannot save run", "error", err)
		}
	}
}

// recordSwitch forwards to the current run's recorder, if any.
type recordSwitch struct {
	cur *recorder.Recorder
}

func (s *recordSwitch) set(r *recorder.Recorder) *recorder.Recorder {
	prev := s.cur
	s.cur = r
	return prev
}

func (s *recordSwitch) Stats(st neon.Stats) {
	if s.cur != nil {
		s.cur.Stats(st)
	}
}

func (s *recordSwitch) Event(ev neon.Event) {
	if s.cur != nil {
		s.cur.Event(ev)
	}
}
