// Package server exposes the blueprint slot and its compiled artefacts over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dyluth/architect/internal/compiler"
	"github.com/dyluth/architect/internal/export"
	"github.com/dyluth/architect/internal/store"
	"github.com/dyluth/architect/internal/summary"
	"github.com/dyluth/architect/pkg/blueprint"
	"go.uber.org/zap"
)

// maxBlueprintBytes caps PUT /blueprint bodies.
const maxBlueprintBytes = 1 << 20

// RevisionHeader carries the slot revision the response was built from.
const RevisionHeader = "X-Blueprint-Revision"

// Server serves the blueprint API.
type Server struct {
	store  store.Store
	logger *zap.Logger
	server *http.Server
}

// New creates a server backed by s.
func New(s store.Store, logger *zap.Logger) *Server {
	return &Server{
		store:  s,
		logger: logger,
	}
}

// Handler returns the routed, request-logging handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.healthCheckHandler)
	mux.HandleFunc("GET /blueprint", s.getBlueprintHandler)
	mux.HandleFunc("PUT /blueprint", s.putBlueprintHandler)
	mux.HandleFunc("POST /blueprint/reset", s.resetHandler)
	mux.HandleFunc("GET /outputs", s.outputsHandler)
	mux.HandleFunc("GET /outputs/{name}", s.outputHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)
	return s.logRequests(mux)
}

// Start binds addr and serves in the background. Bind errors are returned;
// later serve errors are logged.
func (s *Server) Start(addr string) (net.Addr, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", zap.Error(err))
		}
	}()

	s.logger.Info("serving blueprint API", zap.String("addr", listener.Addr().String()))
	return listener.Addr(), nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// HealthResponse is the JSON response structure for health checks.
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
	Error  string `json:"error,omitempty"`
}

// StatsResponse is the JSON response of GET /stats.
type StatsResponse struct {
	Revision int64          `json:"revision"`
	Stats    []summary.Stat `json:"stats"`
	Hooks    []string       `json:"hooks"`
}

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// healthCheckHandler handles GET /healthz requests.
// Returns 200 OK if the store is reachable, 503 Service Unavailable otherwise.
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unhealthy",
			Store:  "disconnected",
			Error:  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Store: "connected"})
}

func (s *Server) getBlueprintHandler(w http.ResponseWriter, r *http.Request) {
	bp, rev, ok := s.load(w, r)
	if !ok {
		return
	}
	s.writeBlueprint(w, http.StatusOK, bp, rev)
}

func (s *Server) putBlueprintHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBlueprintBytes))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, fmt.Sprintf("failed to read request body: %v", err))
		return
	}

	bp, err := blueprint.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.Save(r.Context(), bp); err != nil {
		s.storeError(w, "failed to save blueprint", err)
		return
	}

	rev, err := s.store.Revision(r.Context())
	if err != nil {
		s.storeError(w, "failed to read revision", err)
		return
	}
	s.writeBlueprint(w, http.StatusOK, bp, rev)
}

func (s *Server) resetHandler(w http.ResponseWriter, r *http.Request) {
	bp, err := s.store.Reset(r.Context())
	if err != nil {
		s.storeError(w, "failed to reset blueprint", err)
		return
	}

	rev, err := s.store.Revision(r.Context())
	if err != nil {
		s.storeError(w, "failed to read revision", err)
		return
	}
	s.writeBlueprint(w, http.StatusOK, bp, rev)
}

func (s *Server) outputsHandler(w http.ResponseWriter, r *http.Request) {
	bp, rev, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set(RevisionHeader, strconv.FormatInt(rev, 10))
	writeJSON(w, http.StatusOK, compiler.Compile(bp))
}

func (s *Server) outputHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	bp, rev, ok := s.load(w, r)
	if !ok {
		return
	}

	artifact, found := export.Lookup(compiler.Compile(bp), name)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown output %q", name))
		return
	}

	w.Header().Set("Content-Type", artifact.MIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Name))
	w.Header().Set(RevisionHeader, strconv.FormatInt(rev, 10))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, artifact.Content)
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	bp, rev, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, StatsResponse{
		Revision: rev,
		Stats:    summary.HeroStats(bp),
		Hooks:    summary.TailoredHooks(bp),
	})
}

// load reads the revision before the blueprint so the reported revision is
// never newer than the content.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (blueprint.Blueprint, int64, bool) {
	rev, err := s.store.Revision(r.Context())
	if err != nil {
		s.storeError(w, "failed to read revision", err)
		return blueprint.Blueprint{}, 0, false
	}

	bp, err := s.store.Load(r.Context())
	if err != nil {
		s.storeError(w, "failed to load blueprint", err)
		return blueprint.Blueprint{}, 0, false
	}
	return bp, rev, true
}

func (s *Server) writeBlueprint(w http.ResponseWriter, status int, bp blueprint.Blueprint, rev int64) {
	data, err := blueprint.Marshal(bp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(RevisionHeader, strconv.FormatInt(rev, 10))
	w.WriteHeader(status)
	w.Write(data)
}

func (s *Server) storeError(w http.ResponseWriter, msg string, err error) {
	if blueprint.IsValidationError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error(msg, zap.Error(err))
	writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %v", msg, err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// statusRecorder captures the status code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
