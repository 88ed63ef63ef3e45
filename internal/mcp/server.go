package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobhub/internal/app"
	"github.com/honeycarbs/jobhub/internal/config"
	"github.com/honeycarbs/jobhub/internal/domain/job"
	"github.com/honeycarbs/jobhub/pkg/logging"
)

const (
	serverName    = "jobhub"
	serverVersion = "0.2.0"

	streamPath = "/mcp/stream"
)

// Server serves the MCP streamable transport next to health and metrics routes.
type Server struct {
	logger *logging.Logger
	res    *app.Resources

	tools   *sdkmcp.Server
	http    *http.Server
	running atomic.Bool
}

// NewServer wires res into an MCP server listening on cfg.Host:cfg.Port.
func NewServer(log *logging.Logger, cfg config.Config, res *app.Resources) *Server {
	s := &Server{
		logger: log.Named("http"),
		res:    res,
		tools:  NewMCPServer(log, res),
	}
	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// NewMCPServer builds the SDK server with every tool registered
func NewMCPServer(log *logging.Logger, res *app.Resources) *sdkmcp.Server {
	srv := sdkmcp.NewServer(&sdkmcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	NewToolRegistry(log).RegisterAll(srv, res)
	return srv
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle(streamPath, sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return s.tools
	}, nil))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", s.ready)
	if s.res.Metrics != nil {
		mux.Handle("GET /metrics", s.res.Metrics.Handler())
	}

	return mux
}

type providerState struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Jobs   int    `json:"jobs"`
}

// ready lists provider states. It answers 503 once every provider has failed.
func (s *Server) ready(w http.ResponseWriter, _ *http.Request) {
	providers := s.res.Aggregator.Providers()
	states := make([]providerState, 0, len(providers))
	failed := 0
	for _, p := range providers {
		d := p.Diagnostics()
		if d.Status == job.StatusFailed {
			failed++
		}
		states = append(states, providerState{Name: p.Name(), Status: string(d.Status), Jobs: d.Jobs})
	}

	code := http.StatusOK
	if len(providers) > 0 && failed == len(providers) {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(states); err != nil {
		s.logger.Warn("readiness response not written", "error", err)
	}
}

// Handler exposes the HTTP routes, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run blocks serving HTTP until Shutdown. Calling it twice is a no-op.
func (s *Server) Run() error {
	if s.running.Swap(true) {
		return nil
	}

	s.logger.Info("listening", "addr", s.http.Addr, "stream", streamPath)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serve %s: %w", s.http.Addr, err)
}

// Shutdown drains open connections until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Warn("shutdown incomplete", "error", err)
		return err
	}
	s.logger.Info("stopped")
	return nil
}
