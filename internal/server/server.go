// Package server provides the HTTP gateway over the session registry.
//
// Endpoints:
//   - GET  /health - health check
//   - POST /chat   - send a message within a session
//
// Each request runs on its own goroutine, so a slow provider call never
// stalls unrelated sessions. Requests against the same session are
// serialized by the session's own lock.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/zeekyhq/zeeky/internal/zeeky"
	"github.com/zeekyhq/zeeky/internal/zeeky/session"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8000"

	// MaxRequestBodySize caps request bodies at 1MB.
	MaxRequestBodySize = 1 * 1024 * 1024
)

// Server is the HTTP gateway over a session registry.
type Server struct {
	addr     string
	router   *http.ServeMux
	registry *session.Registry
	logger   *log.Logger
}

// New creates a Server bound to the given registry. If addr is empty, the
// default address is used.
func New(addr string, registry *session.Registry) *Server {
	if addr == "" {
		addr = DefaultAddr
	}

	s := &Server{
		addr:     addr,
		router:   http.NewServeMux(),
		registry: registry,
		logger:   log.New(os.Stderr, "", 0),
	}

	s.setupRoutes()
	return s
}

// WithLogger sets a custom logger.
func (s *Server) WithLogger(logger *log.Logger) *Server {
	s.logger = logger
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("POST /chat", s.handleChat)
}

// Handler returns the full handler chain: logging, panic recovery, routes.
func (s *Server) Handler() http.Handler {
	chain := Chain(
		LoggingMiddleware(s.logger),
		RecoveryMiddleware(s.logger),
	)
	return chain(s.router)
}

// ListenAndServe starts the server and blocks until it exits.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Printf("zeeky API listening on %s", s.addr)
	return srv.ListenAndServe()
}

// HealthResponse is the GET /health response body.
type HealthResponse struct {
	Status string `json:"status"`
}

// ChatRequest is the POST /chat request body. SessionID is optional: when
// omitted a new session is created. Message is a pointer so a missing field
// can be told apart from an empty message.
type ChatRequest struct {
	SessionID string  `json:"session_id,omitempty"`
	Message   *string `json:"message"`
}

// ChatResponse is the POST /chat response body. SessionID identifies the
// session to use for subsequent calls.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleChat handles POST /chat. A missing session_id creates a new session;
// an unknown one is a client error and creates nothing.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == nil {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	var sessionID string
	var sess *session.Session
	if req.SessionID == "" {
		sessionID, sess = s.registry.Create()
	} else {
		var err error
		sess, err = s.registry.Get(req.SessionID)
		if err != nil {
			s.writeError(w, http.StatusNotFound, "invalid session_id")
			return
		}
		sessionID = req.SessionID
	}

	reply, err := sess.Chat(*req.Message)
	if err != nil {
		s.logger.Printf("chat failed | session=%s error=%v", sessionID, err)
		s.writeError(w, statusForChatError(err), err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ChatResponse{
		SessionID: sessionID,
		Reply:     reply,
	})
}

// statusForChatError maps assistant failures to client-visible statuses.
func statusForChatError(err error) int {
	var confErr *zeeky.ConfigurationError
	if errors.As(err, &confErr) {
		return http.StatusServiceUnavailable
	}
	var provErr *zeeky.ProviderError
	if errors.As(err, &provErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
