package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gh-space-shooter/internal/platform/tui"
	"github.com/vovakirdan/gh-space-shooter/internal/server"
)

var (
	flagHTTPAddr string
	flagSSHAddr  string
	flagHostKey  string
	flagNoHTTP   bool
	flagNoSSH    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and SSH viewer",
	Long: `Start the HTTP API and the SSH viewer.

HTTP routes:
  GET /                        - Generator page
  GET /api/generate?username=  - Encoded animation (strategy, format, seed optional)
  GET /api/strategies          - Strategy list
  GET /api/stream?username=    - Websocket stream of ASCII frames
  GET /health                  - Liveness check

SSH sessions play the user named on the command line, or a sample grid:
  ssh -p 23234 localhost octocat

The GitHub token is read from the environment variable named in the
config (GH_TOKEN by default).

Examples:
  shooter serve
  shooter serve --http :8080 --no-ssh
  shooter serve --ssh :2222 --host-key ./host_key`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP address (default from config)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key (generated if missing)")
	serveCmd.Flags().BoolVar(&flagNoHTTP, "no-http", false, "Do not start the HTTP server")
	serveCmd.Flags().BoolVar(&flagNoSSH, "no-ssh", false, "Do not start the SSH server")
}

func runServe(_ *cobra.Command, _ []string) {
	a := setup(true)
	defer a.close()

	if flagHTTPAddr != "" {
		a.cfg.Server.HTTPAddr = flagHTTPAddr
	}
	if flagSSHAddr != "" {
		a.cfg.Server.SSHAddr = flagSSHAddr
	}
	if flagHostKey != "" {
		a.cfg.Server.HostKeyPath = flagHostKey
	}
	if flagNoHTTP && flagNoSSH {
		fatalf("nothing to serve: both --no-http and --no-ssh are set")
	}
	if os.Getenv(a.cfg.GitHub.TokenEnv) == "" {
		a.logger.Warn("GitHub token not configured; only sample grids can be played", "env", a.cfg.GitHub.TokenEnv)
	}

	gen := a.generator()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	running := 0

	if !flagNoHTTP {
		httpSrv, err := server.New(gen, a.logger.WithPrefix("http"))
		if err != nil {
			fatalf("creating HTTP server: %v", err)
		}
		running++
		go func() {
			errCh <- httpSrv.ListenAndServe(ctx, a.cfg.Server.HTTPAddr)
		}()
	}

	if !flagNoSSH {
		sshSrv, err := tui.NewSSHServer(gen, a.logger.WithPrefix("ssh"))
		if err != nil {
			fatalf("creating SSH server: %v", err)
		}
		running++
		go func() {
			errCh <- sshSrv.ListenAndServe(ctx)
		}()
		fmt.Printf("Connect with: ssh -p %s localhost <username>\n", portOf(a.cfg.Server.SSHAddr))
	}
	fmt.Println("Press Ctrl+C to stop")

	// The first failure stops the other server.
	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}
	if firstErr != nil {
		fatalf("server error: %v", firstErr)
	}
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
