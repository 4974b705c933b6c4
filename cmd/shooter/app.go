package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gh-space-shooter/internal/config"
	"github.com/vovakirdan/gh-space-shooter/internal/contrib"
	"github.com/vovakirdan/gh-space-shooter/internal/core"
	"github.com/vovakirdan/gh-space-shooter/internal/service"
	"github.com/vovakirdan/gh-space-shooter/internal/storage"
)

// app holds what every command builds from the global flags.
type app struct {
	cfg    config.Config
	logger *log.Logger
	store  *storage.Store
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "shooter",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// setup loads configuration and, unless withStore is false, opens the run
// history. A history that cannot be opened is logged and skipped.
func setup(withStore bool) *app {
	logger := newLogger(flagLogLevel)

	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	logger.Debug("configuration loaded", "source", source)

	a := &app{cfg: cfg, logger: logger}
	if !withStore {
		return a
	}

	dbPath := cfg.Storage.Path
	if flagDBPath != "" {
		dbPath = flagDBPath
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Warn("could not open run history", "path", dbPath, "err", err)
		return a
	}
	a.store = store
	return a
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// fetcher builds the GitHub client, or nil when no token is set.
func (a *app) fetcher() contrib.Fetcher {
	token := os.Getenv(a.cfg.GitHub.TokenEnv)
	if token == "" {
		a.logger.Debug("no GitHub token", "env", a.cfg.GitHub.TokenEnv)
		return nil
	}
	return contrib.NewClient(a.cfg.GitHub.APIURL, token, a.cfg.GitHub.Timeout)
}

func (a *app) generator() *service.Generator {
	var store service.Store
	if a.store != nil {
		store = a.store
	}
	return service.NewGenerator(a.cfg, a.fetcher(), store, a.logger)
}

// sourceFlags selects where the grid comes from.
type sourceFlags struct {
	user   string
	input  string
	sample int
}

// resolve returns the request fields for the selected source. A grid file
// or sample is loaded here; a username is fetched by the generator.
func (s sourceFlags) resolve() (service.Request, error) {
	seed := core.RuntimeConfig{Seed: flagSeed}.ResolveSeed()
	switch {
	case s.input != "":
		c, err := contrib.LoadFile(s.input)
		if err != nil {
			return service.Request{}, err
		}
		return service.Request{Grid: &c, Seed: seed}, nil
	case s.sample > 0:
		c := contrib.Sample(s.sample, rand.New(rand.NewSource(seed)))
		return service.Request{Grid: &c, Seed: seed}, nil
	case s.user != "":
		return service.Request{Username: s.user, Seed: seed}, nil
	default:
		return service.Request{}, fmt.Errorf("one of --user, --input or --sample is required")
	}
}

func timeoutContext(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d)
}
