package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/vovakirdan/gh-space-shooter/internal/service"
	"github.com/vovakirdan/gh-space-shooter/internal/strategy"
)

type indexData struct {
	Strategies []strategy.Info
	Default    string
	SSHPort    string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := indexData{
		Strategies: strategy.List(),
		Default:    s.cfg.Game.DefaultStrategy,
	}
	if _, port, err := net.SplitHostPort(s.cfg.Server.SSHAddr); err == nil {
		data.SSHPort = port
	}
	if err := s.index.Execute(w, data); err != nil {
		s.logger.Error("index render failed", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default":    s.cfg.Game.DefaultStrategy,
		"strategies": strategy.List(),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		s.fail(w, req, err)
		return
	}

	w.Header().Set("Content-Type", res.MediaType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s", res.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Payload)))
	w.Header().Set("X-Shooter-Seed", strconv.FormatInt(res.Seed, 10))
	w.Header().Set("X-Shooter-Frames", strconv.Itoa(res.Stats.Frames))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Payload)
}

// parseRequest reads the query parameters shared by generate and stream.
func parseRequest(r *http.Request) (service.Request, error) {
	q := r.URL.Query()
	req := service.Request{
		Username: strings.TrimSpace(q.Get("username")),
		Strategy: q.Get("strategy"),
		Format:   q.Get("format"),
	}
	if req.Username == "" {
		return req, fmt.Errorf("username is required")
	}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return req, fmt.Errorf("invalid seed %q", raw)
		}
		req.Seed = seed
	}
	return req, nil
}

// statusFor maps a pipeline error kind to an HTTP status.
func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindInvalid:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindUpstream:
		return http.StatusBadGateway
	case service.KindCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, req service.Request, err error) {
	kind := service.Classify(err)
	status := statusFor(kind)

	msg := err.Error()
	switch kind {
	case service.KindInvalid:
		if errors.Is(err, strategy.ErrUnknownStrategy) {
			msg = fmt.Sprintf("Invalid strategy. Choose from: %s", strings.Join(strategy.Names(), ", "))
		}
	case service.KindConfig:
		msg = "GitHub token not configured"
	case service.KindInternal:
		msg = fmt.Sprintf("Failed to generate animation: %v", err)
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("generate failed", "user", req.Username, "kind", kind, "err", err)
	} else {
		s.logger.Warn("generate rejected", "user", req.Username, "kind", kind, "err", err)
	}
	writeError(w, status, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
