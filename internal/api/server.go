// Package api provides the HTTP API for observing a running simulation.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/talgya/foobartory/internal/engine"
	"github.com/talgya/foobartory/internal/factory"
	"github.com/talgya/foobartory/internal/persistence"
)

// Server serves the simulation state over HTTP.
type Server struct {
	Sim      *factory.Simulation
	Eng      *engine.Engine
	DB       *persistence.DB
	RunID    string
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	// Public endpoints (GET, read-only — anyone can check in on the run).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/robots", s.handleRobots)
	mux.HandleFunc("/api/v1/events", s.handleEvents)

	// Admin endpoints (POST, require bearer token).
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// adminOnly wraps a handler so it requires the admin bearer token.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "error", err)
	}
}

// handleStatus returns the world summary: tick, sim time, pools, cash,
// fleet size, and lifetime totals.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Sim.Snapshot(false)

	writeJSON(w, struct {
		factory.Status
		SimTime string  `json:"sim_time"`
		Speed   float64 `json:"speed"`
		Running bool    `json:"running"`
	}{
		Status:  st,
		SimTime: engine.SimTime(st.Tick),
		Speed:   s.Eng.Speed,
		Running: s.Eng.Running,
	})
}

// handleRobots returns the per-robot breakdown of the fleet.
func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	st := s.Sim.Snapshot(true)
	writeJSON(w, st.Fleet)
}

// handleEvents returns the most recent events from the run's event store.
// ?limit=N caps the count (default 50, max 500).
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "event store disabled", http.StatusNotFound)
		return
	}

	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, 500)
	}

	events, err := s.DB.RecentEvents(s.RunID, limit)
	if err != nil {
		slog.Error("event query failed", "error", err)
		http.Error(w, "event query failed", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []factory.Event{}
	}
	writeJSON(w, events)
}

// handleSpeed sets the engine speed multiplier. Body: {"speed": 2.0}.
// 0 pauses the run.
func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Speed float64 `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Speed < 0 || body.Speed > 1000 {
		http.Error(w, "speed out of range", http.StatusBadRequest)
		return
	}

	s.Eng.Speed = body.Speed
	slog.Info("engine speed changed", "speed", body.Speed)
	writeJSON(w, map[string]float64{"speed": body.Speed})
}
