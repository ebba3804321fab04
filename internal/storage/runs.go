package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/neon-runner/internal/games/neon"
)

// RunRecord is one finished run.
type RunRecord struct {
	ID         int64
	RunID      string
	GameID     string
	Seed       int64
	Difficulty string
	Score      int
	Distance   float64
	Wave       int
	Kills      int
	Bosses     int
	Ticks      uint64
	CreatedAt  time.Time
}

// SaveRun records a finished run and its score. A missing RunID is generated.
// Returns the run ID.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.New().String()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin run insert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.Exec(
		`INSERT INTO runs
		 (run_id, game_id, seed, difficulty, score, distance, wave, kills, bosses, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.GameID, r.Seed, r.Difficulty, r.Score, r.Distance,
		r.Wave, r.Kills, r.Bosses, int64(r.Ticks), //#nosec G115 -- tick counts stay far below MaxInt64
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO scores (game_id, score) VALUES (?, ?)",
		r.GameID, r.Score,
	); err != nil {
		return "", fmt.Errorf("storage: cannot save score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return r.RunID, nil
}

const runColumns = `id, run_id, game_id, seed, difficulty, score, distance, wave,
	kills, bosses, ticks, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var r RunRecord
	var ticks int64
	var createdAt any
	err := row.Scan(&r.ID, &r.RunID, &r.GameID, &r.Seed, &r.Difficulty, &r.Score,
		&r.Distance, &r.Wave, &r.Kills, &r.Bosses, &ticks, &createdAt)
	if err != nil {
		return r, err
	}
	r.Ticks = uint64(max(0, ticks)) //#nosec G115 -- clamped non-negative
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RunByID retrieves a run by its run ID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	row := s.db.QueryRow("SELECT "+runColumns+" FROM runs WHERE run_id = ?", runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs of a game, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	return s.queryRuns(gameID, "id DESC", limit)
}

// TopRuns returns a game's best runs, highest score first.
func (s *Store) TopRuns(gameID string, limit int) ([]RunRecord, error) {
	return s.queryRuns(gameID, "score DESC, id ASC", limit)
}

func (s *Store) queryRuns(gameID, order string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	//#nosec G202 -- order is one of two constants above
	rows, err := s.db.Query(
		"SELECT "+runColumns+" FROM runs WHERE game_id = ? ORDER BY "+order+" LIMIT ?",
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunSink is an engine sink that saves each run when it ends.
// Call Begin when a run starts so the seed and difficulty are attributed.
type RunSink struct {
	store  *Store
	gameID string

	current RunRecord
	last    neon.Stats
	active  bool
	err     error
	onSave  func(RunRecord)
}

// NewRunSink creates a sink recording runs of gameID into store.
func NewRunSink(store *Store, gameID string) *RunSink {
	return &RunSink{store: store, gameID: gameID}
}

// OnSave registers a callback invoked after a run is stored.
func (r *RunSink) OnSave(fn func(RunRecord)) {
	r.onSave = fn
}

// Begin starts tracking a new run.
func (r *RunSink) Begin(seed int64, difficulty string) {
	r.current = RunRecord{
		RunID:      uuid.New().String(),
		GameID:     r.gameID,
		Seed:       seed,
		Difficulty: difficulty,
	}
	r.last = neon.Stats{}
	r.active = true
}

// RunID returns the ID of the run being tracked.
func (r *RunSink) RunID() string {
	return r.current.RunID
}

// Err returns the last storage error, if any.
func (r *RunSink) Err() error {
	return r.err
}

// Stats keeps the latest snapshot for the final record.
func (r *RunSink) Stats(s neon.Stats) {
	r.last = s
}

// Event counts kills and bosses and stores the run on game over.
func (r *RunSink) Event(ev neon.Event) {
	if !r.active {
		return
	}
	switch ev.Kind {
	case neon.EventKill:
		r.current.Kills++
	case neon.EventBossDefeat:
		r.current.Bosses++
	case neon.EventGameOver:
		r.finish(ev)
	}
}

func (r *RunSink) finish(ev neon.Event) {
	r.active = false
	rec := r.current
	rec.Score = int(math.Max(float64(r.last.Score), ev.Value))
	rec.Distance = r.last.Distance
	rec.Wave = max(1, r.last.Wave)
	rec.Ticks = ev.Tick

	if _, err := r.store.SaveRun(rec); err != nil {
		r.err = err
		return
	}
	if r.onSave != nil {
		r.onSave(rec)
	}
}
