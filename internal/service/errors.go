package service

import (
	"context"
	"errors"

	"github.com/vovakirdan/gh-space-shooter/internal/contrib"
	"github.com/vovakirdan/gh-space-shooter/internal/game"
	"github.com/vovakirdan/gh-space-shooter/internal/output"
	"github.com/vovakirdan/gh-space-shooter/internal/strategy"
)

// Kind groups pipeline errors by who can fix them.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid       // Bad request: grid, strategy or format
	KindNotFound      // Unknown GitHub user
	KindUpstream      // GitHub unreachable or refused the request
	KindConfig        // Server misconfiguration such as a missing token
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindConfig:
		return "config"
	case KindCanceled:
		return "canceled"
	default:
		return "internal"
	}
}

// Classify maps an error from Generate to its kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, game.ErrInvalidInput),
		errors.Is(err, strategy.ErrUnknownStrategy),
		errors.Is(err, output.ErrUnsupportedFormat),
		errors.Is(err, contrib.ErrBadFile):
		return KindInvalid
	case errors.Is(err, contrib.ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, contrib.ErrNoToken):
		return KindConfig
	case errors.Is(err, contrib.ErrFetch):
		return KindUpstream
	default:
		return KindInternal
	}
}
