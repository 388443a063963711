// Package storage provides SQLite-based persistence for runner traces.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for trace persistence.
type Store struct {
	db *sql.DB
}

// Run is one recorded orchestrator session.
type Run struct {
	ID        string // UUID assigned by the recorder
	Script    string // Input script the run was driven by
	Blend     string // Framebuffer blend mode
	Width     int
	Height    int
	Frames    int // Number of stored presents, filled by Runs
	CreatedAt time.Time
}

// FrameRecord is one stored present.
type FrameRecord struct {
	RunID     string
	Seq       uint64 // 1-based present number within the run
	Tick      uint64 // Orchestrator iteration, 0 for the startup present
	Motion    string // "idle" or "jumping" after the present
	Step      int    // Jump sub-frame, -1 for idle frames
	LegPhase  int
	Legs      string
	ObstacleX int
	Indicator bool
	Pixels    []byte // Packed framebuffer, MSB first, rows padded to bytes
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			script TEXT NOT NULL,
			blend TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS frames (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			motion TEXT NOT NULL,
			step INTEGER NOT NULL,
			leg_phase INTEGER NOT NULL,
			legs TEXT NOT NULL,
			obstacle_x INTEGER NOT NULL,
			indicator INTEGER NOT NULL,
			pixels BLOB NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
		CREATE INDEX IF NOT EXISTS idx_frames_tick ON frames(run_id, tick);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginRun registers a new run. Frames can be recorded against r.ID afterwards.
func (s *Store) BeginRun(r Run) error {
	_, err := s.db.Exec(
		"INSERT INTO runs (id, script, blend, width, height) VALUES (?, ?, ?, ?, ?)",
		r.ID, r.Script, r.Blend, r.Width, r.Height,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot begin run %s: %w", r.ID, err)
	}
	return nil
}

const insertFrame = `INSERT INTO frames
	(run_id, seq, tick, motion, step, leg_phase, legs, obstacle_x, indicator, pixels)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// RecordFrame stores a single present.
func (s *Store) RecordFrame(f FrameRecord) error {
	if _, err := s.db.Exec(insertFrame, frameArgs(f)...); err != nil {
		return fmt.Errorf("storage: cannot record frame %d of run %s: %w", f.Seq, f.RunID, err)
	}
	return nil
}

// RecordFrames stores a batch of presents in one transaction.
func (s *Store) RecordFrames(frames []FrameRecord) error {
	if len(frames) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertFrame)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.Exec(frameArgs(f)...); err != nil {
			return fmt.Errorf("storage: cannot record frame %d of run %s: %w", f.Seq, f.RunID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit frames: %w", err)
	}
	return nil
}

func frameArgs(f FrameRecord) []any {
	return []any{
		f.RunID, int64(f.Seq), int64(f.Tick), f.Motion, f.Step, f.LegPhase,
		f.Legs, f.ObstacleX, f.Indicator, f.Pixels,
	}
}

// Runs retrieves the most recent runs with their frame counts.
func (s *Store) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.script, r.blend, r.width, r.height, r.created_at,
		        (SELECT COUNT(*) FROM frames f WHERE f.run_id = r.id)
		 FROM runs r
		 ORDER BY r.created_at DESC, r.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Script, &r.Blend, &r.Width, &r.Height, &createdAt, &r.Frames); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	var r Run
	var createdAt any

	err := s.db.QueryRow(
		`SELECT r.id, r.script, r.blend, r.width, r.height, r.created_at,
		        (SELECT COUNT(*) FROM frames f WHERE f.run_id = r.id)
		 FROM runs r
		 WHERE r.id = ?`,
		id,
	).Scan(&r.ID, &r.Script, &r.Blend, &r.Width, &r.Height, &createdAt, &r.Frames)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

const selectFrame = `SELECT run_id, seq, tick, motion, step, leg_phase, legs, obstacle_x, indicator, pixels
	FROM frames`

// Frames retrieves every present of a run in sequence order.
func (s *Store) Frames(runID string) ([]FrameRecord, error) {
	rows, err := s.db.Query(selectFrame+" WHERE run_id = ? ORDER BY seq", runID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	var frames []FrameRecord
	for rows.Next() {
		f, err := scanFrame(rows)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return frames, nil
}

// Frame retrieves one present. Returns nil if it does not exist.
func (s *Store) Frame(runID string, seq uint64) (*FrameRecord, error) {
	f, err := scanFrame(s.db.QueryRow(selectFrame+" WHERE run_id = ? AND seq = ?", runID, int64(seq)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// DeleteRun removes a run and its frames.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM frames WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFrame(row scanner) (FrameRecord, error) {
	var f FrameRecord
	var seq, tick int64
	if err := row.Scan(&f.RunID, &seq, &tick, &f.Motion, &f.Step, &f.LegPhase,
		&f.Legs, &f.ObstacleX, &f.Indicator, &f.Pixels); err != nil {
		if err == sql.ErrNoRows {
			return f, err
		}
		return f, fmt.Errorf("storage: cannot scan frame: %w", err)
	}
	f.Seq = uint64(seq)
	f.Tick = uint64(tick)
	return f, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
