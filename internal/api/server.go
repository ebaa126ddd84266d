// Package api exposes creature state over HTTP. All decay logic lives
// in the pet engine; handlers load a record, let time catch up, apply
// the interaction, and store the result.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/mini-pet/internal/pet"
	"github.com/talgya/mini-pet/internal/store"
)

// Server serves pet state over HTTP.
type Server struct {
	DB    *store.DB
	Rates pet.DecayRates
	Port  int

	// Limiter, when set, caps mutating requests per client.
	Limiter *RateLimiter
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/pets", rateLimited(s.Limiter, s.handleCreate))
	mux.HandleFunc("GET /api/v1/pets", s.handleList)
	mux.HandleFunc("GET /api/v1/pets/{id}", s.handleGet)
	mux.HandleFunc("POST /api/v1/pets/{id}/{action}", rateLimited(s.Limiter, s.handleInteract))

	return mux
}

// ListenAndServe blocks serving the API.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("api listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type createRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		httpError(w, http.StatusBadRequest, "name is required")
		return
	}

	p := pet.NewWithClock(req.Name, s.Rates, time.Now)
	if err := s.DB.SavePet(p.Snapshot()); err != nil {
		slog.Error("create pet failed", "error", err)
		httpError(w, http.StatusInternalServerError, "storage failure")
		return
	}

	slog.Info("pet created", "id", p.State.ID, "name", req.Name)
	writeJSON(w, http.StatusCreated, p.Snapshot())
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	states, err := s.DB.ListPets()
	if err != nil {
		slog.Error("list pets failed", "error", err)
		httpError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	writeJSON(w, http.StatusOK, states)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := s.loadPet(w, r)
	if !ok {
		return
	}

	// Reading state advances time first: the record reflects all decay
	// up to now, not up to the last visit.
	p.Tick()
	if err := s.DB.SavePet(p.Snapshot()); err != nil {
		slog.Error("save pet failed", "id", p.State.ID, "error", err)
		httpError(w, http.StatusInternalServerError, "storage failure")
		return
	}
	writeJSON(w, http.StatusOK, p.Snapshot())
}

type interactRequest struct {
	Amount int `json:"amount"`
}

// Default magnitudes when the request body omits an amount.
var defaultAmounts = map[string]int{
	"feed":  20,
	"play":  15,
	"rest":  50,
	"clean": 40,
}

func (s *Server) handleInteract(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("action")
	def, known := defaultAmounts[name]
	if !known {
		httpError(w, http.StatusNotFound, "unknown interaction: "+name)
		return
	}

	p, ok := s.loadPet(w, r)
	if !ok {
		return
	}
	if !p.State.Alive {
		httpError(w, http.StatusConflict, "pet is no longer alive")
		return
	}

	amount := def
	if r.Body != nil {
		var req interactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Amount > 0 {
			amount = req.Amount
		}
	}

	switch name {
	case "feed":
		p.Feed(amount)
	case "play":
		p.Play(amount)
	case "rest":
		p.Rest(amount)
	case "clean":
		p.Clean(amount)
	}

	if err := s.DB.SavePet(p.Snapshot()); err != nil {
		slog.Error("save pet failed", "id", p.State.ID, "error", err)
		httpError(w, http.StatusInternalServerError, "storage failure")
		return
	}

	slog.Info("interaction applied", "id", p.State.ID, "action", name, "amount", amount)
	writeJSON(w, http.StatusOK, p.Snapshot())
}

// loadPet resolves the {id} path segment to a live engine instance.
func (s *Server) loadPet(w http.ResponseWriter, r *http.Request) (*pet.Pet, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid pet id")
		return nil, false
	}

	st, err := s.DB.LoadPet(id)
	if errors.Is(err, store.ErrNotFound) {
		httpError(w, http.StatusNotFound, "pet not found")
		return nil, false
	}
	if err != nil {
		slog.Error("load pet failed", "id", id, "error", err)
		httpError(w, http.StatusInternalServerError, "storage failure")
		return nil, false
	}

	return pet.Restore(st, s.Rates, time.Now), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg, "status": strconv.Itoa(status)})
}
