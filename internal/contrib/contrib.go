// Package contrib provides contribution grids: fetched from GitHub, read
// from grid files, or generated as samples.
package contrib

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/gh-space-shooter/internal/game"
)

var (
	// ErrFetch wraps every failure to obtain contributions from GitHub.
	ErrFetch = errors.New("contribution fetch failed")
	// ErrUserNotFound is returned when the login does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrFetch)
	// ErrNoToken is returned when no API token is configured.
	ErrNoToken = errors.New("github token not configured")
	// ErrBadFile is returned for unreadable or malformed grid files.
	ErrBadFile = errors.New("invalid grid file")
)

// APIError is a failed request to the GitHub API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("github api: %s", e.Message)
	}
	return fmt.Sprintf("github api: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrFetch
}

// Contributions is one user's calendar in week-major order.
type Contributions struct {
	Username string  `json:"username" yaml:"username" msgpack:"username"`
	Total    int     `json:"total,omitempty" yaml:"total,omitempty" msgpack:"total"`
	Weeks    [][]int `json:"weeks" yaml:"weeks" msgpack:"weeks"`
}

// Grid returns the intensities as a simulation grid.
func (c Contributions) Grid() game.Grid {
	return game.Grid{Weeks: c.Weeks}
}

// Fetcher looks up a user's contributions.
type Fetcher interface {
	Fetch(ctx context.Context, username string) (Contributions, error)
}
