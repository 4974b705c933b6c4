package server

import (
	"context"
	"iter"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/gh-space-shooter/internal/animator"
	"github.com/vovakirdan/gh-space-shooter/internal/render"
	"github.com/vovakirdan/gh-space-shooter/internal/service"
)

// WebSocket settings
const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
	minStreamWidth = 20
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamMessage is one websocket message of /api/stream.
type StreamMessage struct {
	Type  string          `json:"type"` // "frame", "done" or "error"
	Frame int             `json:"frame,omitempty"`
	Text  string          `json:"text,omitempty"`
	Error string          `json:"error,omitempty"`
	Seed  int64           `json:"seed,omitempty"`
	Stats *animator.Stats `json:"stats,omitempty"`
}

// handleStream plays a run as ASCII art at the configured frame rate.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go readPump(conn, cancel)

	session, err := s.gen.NewSession(ctx, req)
	if err != nil {
		s.logger.Warn("stream rejected", "user", req.Username, "kind", service.Classify(err), "err", err)
		s.send(conn, StreamMessage{Type: "error", Error: err.Error()})
		return
	}

	s.logger.Info("stream started", "user", session.Contributions.Username, "strategy", session.Strategy, "seed", session.Seed)
	frames, err := s.play(ctx, conn, session)
	if err != nil {
		s.logger.Debug("stream closed", "user", req.Username, "frames", frames, "err", err)
		return
	}

	stats := session.Animator.Stats()
	s.send(conn, StreamMessage{Type: "done", Seed: session.Seed, Stats: &stats})
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
		time.Now().Add(writeWait))
}

// play writes one ASCII frame per tick until the run ends.
func (s *Server) play(ctx context.Context, conn *websocket.Conn, session *service.Session) (int, error) {
	next, stop := iter.Pull(session.Animator.Frames())
	defer stop()

	width := max(s.cfg.Server.StreamWidth, minStreamWidth)
	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.Animation.FPS))
	defer ticker.Stop()

	var scaler render.Downscaler
	sent := 0
	for {
		frame, ok := next()
		if !ok {
			return sent, session.Animator.Err()
		}
		sent++
		if err := s.send(conn, StreamMessage{Type: "frame", Frame: sent, Text: scaler.ASCII(frame, width)}); err != nil {
			return sent, err
		}

		select {
		case <-ctx.Done():
			return sent, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Server) send(conn *websocket.Conn, msg StreamMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

// readPump drains client messages so control frames are processed, and
// cancels the stream when the client goes away.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}
