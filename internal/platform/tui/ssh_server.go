package tui

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/gh-space-shooter/internal/config"
	"github.com/vovakirdan/gh-space-shooter/internal/contrib"
	"github.com/vovakirdan/gh-space-shooter/internal/core"
	"github.com/vovakirdan/gh-space-shooter/internal/service"
)

// sampleWeeks is the width of the grid played when no username is given.
const sampleWeeks = 52

// SSHServer wraps a Wish SSH server that plays runs.
type SSHServer struct {
	config config.ServerConfig
	gen    *service.Generator
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server from the generator's configuration.
func NewSSHServer(gen *service.Generator, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := gen.Config().Server

	srv := &SSHServer{
		config: cfg,
		gen:    gen,
		logger: logger,
	}

	hostKeyPath, err := config.ExpandHome(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.SSHAddr),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.MaxTimeout > 0 {
		opts = append(opts, wish.WithMaxTimeout(cfg.MaxTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// SessionTarget picks what a session plays from its command line:
// the first argument is a GitHub username, none means a sample grid.
func SessionTarget(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.TrimSpace(args[0])
}

// SampleSeed derives a stable sample grid seed from the SSH user name, so
// a visitor sees the same sky on every connection.
func SampleSeed(user string) int64 {
	h := fnv.New64a()
	h.Write([]byte(user))
	return int64(h.Sum64() >> 1)
}

// SessionFactory returns the SessionFunc used for one connection.
func (s *SSHServer) SessionFactory(ctx context.Context, user string, args []string) SessionFunc {
	target := SessionTarget(args)
	var sample *contrib.Contributions
	if target == "" {
		c := contrib.Sample(sampleWeeks, rand.New(rand.NewSource(SampleSeed(user))))
		sample = &c
	}
	return func(strategyName string) (*service.Session, error) {
		return s.gen.NewSession(ctx, service.Request{
			Username: target,
			Grid:     sample,
			Strategy: strategyName,
		})
	}
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "gh-space-shooter needs a terminal: ssh -t")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.gen.Config().Animation.FPS,
	}

	factory := s.SessionFactory(sshSession.Context(), sshSession.User(), sshSession.Command())
	model := NewModel(factory, "", cfg, bubbletea.MakeRenderer(sshSession))
	if err := model.Err(); err != nil {
		s.logger.Warn("session run unavailable",
			"user", sshSession.User(),
			"target", SessionTarget(sshSession.Command()),
			"kind", service.Classify(err),
			"err", err,
		)
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"target", SessionTarget(sshSession.Command()),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("Starting SSH server", "address", s.config.SSHAddr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Stopping SSH server")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.SSHAddr
}
