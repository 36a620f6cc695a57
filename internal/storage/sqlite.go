// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// GameID tags every run written by this program.
const GameID = "runaway"

// Outcomes of a finished run.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// Store manages the SQLite database connection for the leaderboard.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Run is one finished session of a level.
type Run struct {
	ID        int64
	GameID    string
	LevelID   string
	Score     int
	Elapsed   float64 // seconds
	Outcome   string
	CreatedAt time.Time
}

// Won reports whether the run reached the flag.
func (r Run) Won() bool {
	return r.Outcome == OutcomeWon
}

// NewRun builds the record of a run that just finished.
func NewRun(levelID string, score int, elapsed float64, won bool) Run {
	outcome := OutcomeLost
	if won {
		outcome = OutcomeWon
	}
	return Run{
		GameID:  GameID,
		LevelID: levelID,
		Score:   score,
		Elapsed: elapsed,
		Outcome: outcome,
	}
}

// LevelStats summarizes every run of one level.
type LevelStats struct {
	Runs       int
	Wins       int
	BestScore  int
	FastestWin float64 // seconds, 0 when the level was never won
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			elapsed_secs REAL NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(game_id, level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(game_id, level_id, score DESC, elapsed_secs ASC);
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

// SaveRun records a finished run. An empty GameID defaults to GameID.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.LevelID == "" {
		return 0, errors.New("storage: run has no level")
	}
	if r.Outcome != OutcomeWon && r.Outcome != OutcomeLost {
		return 0, fmt.Errorf("storage: unknown outcome %q", r.Outcome)
	}
	if r.GameID == "" {
		r.GameID = GameID
	}

	result, err := s.db.Exec(
		"INSERT INTO runs (game_id, level_id, score, elapsed_secs, outcome) VALUES (?, ?, ?, ?, ?)",
		r.GameID, r.LevelID, r.Score, r.Elapsed, r.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs for the given level.
// Results are ordered by score descending, then by time ascending.
func (s *Store) TopRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level_id, score, elapsed_secs, outcome, created_at
		 FROM runs
		 WHERE game_id = ? AND level_id = ?
		 ORDER BY score DESC, elapsed_secs ASC, id ASC
		 LIMIT ?`,
		GameID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestRun returns the top run of the level, or nil if it has none.
func (s *Store) BestRun(levelID string) (*Run, error) {
	runs, err := s.TopRuns(levelID, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ClearRuns deletes all runs of the given level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ? AND level_id = ?", GameID, levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats aggregates every run of the given level.
func (s *Store) LevelStats(levelID string) (LevelStats, error) {
	var (
		st      LevelStats
		wins    sql.NullInt64
		best    sql.NullInt64
		fastest sql.NullFloat64
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        MAX(score),
		        MIN(CASE WHEN outcome = ? THEN elapsed_secs END)
		 FROM runs
		 WHERE game_id = ? AND level_id = ?`,
		OutcomeWon, OutcomeWon, GameID, levelID,
	).Scan(&st.Runs, &wins, &best, &fastest)
	if err != nil {
		return LevelStats{}, fmt.Errorf("storage: cannot query level stats: %w", err)
	}

	st.Wins = int(wins.Int64)
	st.BestScore = int(best.Int64)
	st.FastestWin = fastest.Float64
	return st, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var r Run
	var createdAt any
	if err := rows.Scan(&r.ID, &r.GameID, &r.LevelID, &r.Score, &r.Elapsed, &r.Outcome, &createdAt); err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}
