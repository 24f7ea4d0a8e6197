// Package gateway exposes the dispatcher over HTTP. One endpoint, one
// contract: POST /dispatch takes {"query": ...} and returns the dispatch
// outcome JSON.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"

	"github.com/harits/aksi/pkg/dispatcher"
	"github.com/harits/aksi/pkg/model"
)

// DispatchRequest is the request body for POST /dispatch.
type DispatchRequest struct {
	Query string `json:"query"`
}

// Server serves the dispatch contract.
type Server struct {
	dispatcher *dispatcher.Dispatcher
	handle     model.Advisor
	httpServer *http.Server
}

// New creates a server bound to addr.
func New(addr string, d *dispatcher.Dispatcher, handle model.Advisor) *Server {
	s := &Server{
		dispatcher: d,
		handle:     handle,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/dispatch", s.handleDispatch)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("Gateway listening")
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	requestID, err := gonanoid.New()
	if err != nil {
		requestID = "unknown"
	}
	logger := log.With().Str("request_id", requestID).Logger()

	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("Bad dispatch request body")
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	outcome := s.dispatcher.Dispatch(r.Context(), req.Query)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(outcome); err != nil {
		logger.Warn().Err(err).Msg("Failed to encode dispatch response")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":          "ok",
		"model_available": s.handle.Available(),
		"model_provider":  s.handle.Provider(),
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
