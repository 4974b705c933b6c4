package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Run is one recorded generation.
type Run struct {
	ID        int64
	Username  string
	Strategy  string
	Format    string
	Seed      int64
	Frames    int
	Shots     int
	Hits      int
	Destroyed int
	Truncated bool
	Bytes     int
	Duration  time.Duration
	CreatedAt time.Time
}

// RunStats aggregates the runs of one user.
type RunStats struct {
	Username  string
	Runs      int
	AvgFrames float64
	MaxFrames int
	Destroyed int64
	LastRun   time.Time
}

const runColumns = `id, username, strategy, format, seed, frames, shots, hits,
	destroyed, truncated, bytes, duration_ms, created_at`

// SaveRun records a generation. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (username, strategy, format, seed, frames, shots, hits, destroyed, truncated, bytes, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.ToLower(r.Username),
		r.Strategy,
		r.Format,
		r.Seed,
		r.Frames,
		r.Shots,
		r.Hits,
		r.Destroyed,
		r.Truncated,
		r.Bytes,
		r.Duration.Milliseconds(),
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

// RecentRuns retrieves the most recent runs across all users.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
}

// RunsByUser retrieves the most recent runs for one user.
func (s *Store) RunsByUser(username string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE username = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		strings.ToLower(username), limit,
	)
}

// RunByID retrieves a single run.
func (s *Store) RunByID(id int64) (Run, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, fmt.Errorf("%w: run %d", ErrNotFound, id)
	}
	return runs[0], nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Username,
			&r.Strategy,
			&r.Format,
			&r.Seed,
			&r.Frames,
			&r.Shots,
			&r.Hits,
			&r.Destroyed,
			&r.Truncated,
			&r.Bytes,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// UserStats aggregates all runs recorded for a user.
func (s *Store) UserStats(username string) (*RunStats, error) {
	stats := &RunStats{Username: strings.ToLower(username)}

	var lastRun any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(frames), 0), COALESCE(MAX(frames), 0),
		        COALESCE(SUM(destroyed), 0), MAX(created_at)
		 FROM runs WHERE username = ?`,
		stats.Username,
	).Scan(&stats.Runs, &stats.AvgFrames, &stats.MaxFrames, &stats.Destroyed, &lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get user stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// ClearRuns deletes all runs for the given user.
func (s *Store) ClearRuns(username string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE username = ?", strings.ToLower(username))
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
