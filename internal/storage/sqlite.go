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

	"github.com/vovakirdan/tui-rogue/internal/rogue"
)

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// EndReason tells how a run ended.
type EndReason string

const (
	EndQuit       EndReason = "quit"
	EndCleared    EndReason = "cleared"
	EndDisconnect EndReason = "disconnect"
)

// RunRecord is one finished run.
type RunRecord struct {
	ID        int64
	Player    string
	Seed      uint64
	Style     string
	Level     int
	Gold      int
	Turns     int64
	Cleared   bool
	EndReason EndReason
	CreatedAt time.Time
}

// NewRunRecord summarizes a session snapshot.
func NewRunRecord(player, style string, sd rogue.SaveData, reason EndReason) RunRecord {
	if sd.Info.Cleared && reason == EndQuit {
		reason = EndCleared
	}
	return RunRecord{
		Player:    player,
		Seed:      sd.Config.Seed,
		Style:     style,
		Level:     int(sd.Dungeon.Level),
		Gold:      int(sd.Dungeon.Gold),
		Turns:     int64(sd.Dungeon.Turns),
		Cleared:   sd.Info.Cleared,
		EndReason: reason,
	}
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			seed INTEGER NOT NULL,
			style TEXT NOT NULL,
			level INTEGER NOT NULL,
			gold INTEGER NOT NULL,
			turns INTEGER NOT NULL DEFAULT 0,
			cleared INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(gold DESC, level DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
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

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (player, seed, style, level, gold, turns, cleared, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Player, int64(r.Seed), r.Style, r.Level, r.Gold, r.Turns, r.Cleared, string(r.EndReason),
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

const runColumns = `id, player, seed, style, level, gold, turns, cleared, end_reason, created_at`

// TopRuns retrieves the N best runs, by gold and then by depth.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 ORDER BY gold DESC, level DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// RecentRuns retrieves the most recent runs.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// RunsBySeed retrieves every run played on the given seed, best first.
func (s *Store) RunsBySeed(seed uint64) ([]RunRecord, error) {
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs
		 WHERE seed = ?
		 ORDER BY gold DESC, level DESC, id ASC`,
		int64(seed),
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r         RunRecord
			seed      int64
			reason    string
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.Player, &seed, &r.Style, &r.Level, &r.Gold, &r.Turns, &r.Cleared, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Seed = uint64(seed)
		r.EndReason = EndReason(reason)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes the whole run log.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics over the run log.
type RunStats struct {
	Runs         int
	BestGold     int
	DeepestLevel int
	Clears       int
	LastPlayed   time.Time
}

// Stats retrieves aggregated statistics, optionally for one player.
// An empty player covers everyone.
func (s *Store) Stats(player string) (*RunStats, error) {
	stats := &RunStats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(gold), 0), COALESCE(MAX(level), 0),
		        COALESCE(SUM(cleared), 0), MAX(created_at)
		 FROM runs WHERE ? = '' OR player = ?`,
		player, player,
	).Scan(&stats.Runs, &stats.BestGold, &stats.DeepestLevel, &stats.Clears, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
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
