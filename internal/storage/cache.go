package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/gh-space-shooter/internal/contrib"
)

// CacheGrid stores fetched contributions, replacing any earlier entry.
func (s *Store) CacheGrid(c contrib.Contributions, fetchedAt time.Time) error {
	payload, err := msgpack.Marshal(&c)
	if err != nil {
		return fmt.Errorf("storage: cannot encode grid: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO grid_cache (username, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(username) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		strings.ToLower(c.Username), payload, fetchedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot cache grid: %w", err)
	}
	return nil
}

// CachedGrid returns a cached grid fetched no earlier than maxAge before now.
// A missing or stale entry reports false without an error.
func (s *Store) CachedGrid(username string, maxAge time.Duration, now time.Time) (contrib.Contributions, bool, error) {
	var payload []byte
	var fetchedAt int64
	err := s.db.QueryRow(
		"SELECT payload, fetched_at FROM grid_cache WHERE username = ?",
		strings.ToLower(username),
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return contrib.Contributions{}, false, nil
	}
	if err != nil {
		return contrib.Contributions{}, false, fmt.Errorf("storage: cannot query grid cache: %w", err)
	}

	if now.Sub(time.Unix(fetchedAt, 0)) > maxAge {
		return contrib.Contributions{}, false, nil
	}

	var c contrib.Contributions
	if err := msgpack.Unmarshal(payload, &c); err != nil {
		return contrib.Contributions{}, false, fmt.Errorf("storage: cannot decode grid: %w", err)
	}
	return c, true, nil
}

// PurgeGrids deletes cache entries fetched before the cutoff.
// Returns the number of entries removed.
func (s *Store) PurgeGrids(before time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM grid_cache WHERE fetched_at < ?", before.Unix())
	if err != nil {
		return 0, fmt.Errorf("storage: cannot purge grid cache: %w", err)
	}
	return res.RowsAffected()
}
