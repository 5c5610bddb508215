package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/witherkv/wither/internal/clock"
	"github.com/witherkv/wither/internal/journal"
	"github.com/witherkv/wither/internal/store"
)

// Server exposes an expiring store over HTTP: a small REST surface for
// the item operations plus a dashboard with a live operation feed. All
// expiry semantics live in the store; the server only translates requests.
type Server struct {
	httpServer *http.Server
	store      *store.Store
	clock      clock.Clock
	journal    *journal.Journal
	hub        *Hub
	metrics    *metrics
	mux        *http.ServeMux
}

// New creates a new wither server around the given store.
func New(addr string, st *store.Store, clk clock.Clock) *Server {
	s := &Server{
		store:   st,
		clock:   clk,
		journal: journal.New(nil),
		hub:     NewHub(),
		metrics: newMetrics(),
		mux:     http.NewServeMux(),
	}
	s.routes()
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/dashboard", s.handleDashboard)
	s.mux.HandleFunc("/ws", s.hub.HandleWebSocket)
	s.mux.Handle("/metrics", s.metrics.handler())
	s.mux.HandleFunc("/api/items", s.handleCollection)
	s.mux.HandleFunc("/api/items/", s.handleItem)
}

// handleRoot serves basic instance information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"service":         "wither",
		"status":          "running",
		"default_timeout": s.store.Timeout().String(),
		"time":            s.clock.Now().Format(time.RFC3339),
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleCollection handles operations on the whole store.
// DELETE /api/items clears every entry.
func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.store.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.record(journal.OpClear, "", "")
	w.WriteHeader(http.StatusNoContent)
}

// handleItem handles per-key operations.
// Path: /api/items/{key}
func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/api/items/")
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getItem(w, r, key)
	case http.MethodHead:
		s.headItem(w, r, key)
	case http.MethodPut:
		s.putItem(w, r, key)
	case http.MethodDelete:
		s.deleteItem(w, r, key)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request, key string) {
	value, err := s.store.Get(r.Context(), key)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if value == nil {
		s.record(journal.OpGet, key, "miss")
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	s.record(journal.OpGet, key, "hit")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"key":   key,
		"value": value,
	})
}

// headItem reports raw existence. An expired entry that has not been
// read (and so not evicted) yet still answers 200.
func (s *Server) headItem(w http.ResponseWriter, r *http.Request, key string) {
	ok, err := s.store.Has(r.Context(), key)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type putItemRequest struct {
	Value   any    `json:"value"`
	Timeout string `json:"timeout,omitempty"`
}

func (s *Server) putItem(w http.ResponseWriter, r *http.Request, key string) {
	var req putItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parsing request body: %v", err))
		return
	}

	var err error
	if req.Timeout != "" {
		var d time.Duration
		d, err = time.ParseDuration(req.Timeout)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("parsing timeout: %v", err))
			return
		}
		err = s.store.SetWithTimeout(r.Context(), key, req.Value, d)
	} else {
		err = s.store.Set(r.Context(), key, req.Value)
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.record(journal.OpSet, key, "")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request, key string) {
	if err := s.store.Remove(r.Context(), key); err != nil {
		writeStoreError(w, err)
		return
	}
	s.record(journal.OpRemove, key, "")
	w.WriteHeader(http.StatusNoContent)
}

// record journals the operation, bumps metrics, and feeds the live
// dashboard. Journal failures only affect the feed, never the response.
func (s *Server) record(op, key, result string) {
	e := journal.Entry{
		Time:   s.clock.Now(),
		Op:     op,
		Key:    key,
		Result: result,
	}
	if err := s.journal.Record(e); err != nil {
		log.Printf("journal error: %v", err)
	}
	s.metrics.observe(op, result)
	s.hub.Broadcast(e)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeStoreError maps store errors onto HTTP statuses: validation
// failures are the caller's fault, anything else is a backend problem.
func writeStoreError(w http.ResponseWriter, err error) {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// Start begins listening. It blocks until the server is shut down.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	log.Printf("wither server listening on %s", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// StartOnListener begins serving on the provided listener.
// Useful for tests that need to pick an ephemeral port.
func (s *Server) StartOnListener(ln net.Listener) error {
	log.Printf("wither server listening on %s", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the server's mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}
