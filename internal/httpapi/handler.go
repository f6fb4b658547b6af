package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/moorebrett0/wonderpets/internal/game"
	"github.com/moorebrett0/wonderpets/internal/species"
)

type handlers struct {
	svc *game.Service
}

type adoptRequest struct {
	Species string `json:"species"`
	Name    string `json:"name"`
}

type actionRequest struct {
	Kind string `json:"kind"`
	Food string `json:"food"` // "herbivore" or "carnivore", feed only
	// Wait holds the response until the reaction line is ready.
	Wait bool `json:"wait"`
}

type actionResponse struct {
	game.ActionOutcome
	Reaction string `json:"reaction,omitempty"`
}

type musicResponse struct {
	Enabled bool `json:"enabled"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) state(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.State())
}

func (h *handlers) species(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Species())
}

func (h *handlers) achievements(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Achievements())
}

func (h *handlers) adopt(w http.ResponseWriter, r *http.Request) {
	var req adoptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}

	out, err := h.svc.Adopt(strings.ToLower(strings.TrimSpace(req.Species)), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *handlers) selectPet(w http.ResponseWriter, r *http.Request) {
	petID := chi.URLParam(r, "petID")

	found := false
	for _, p := range h.svc.State().Pets {
		if p.ID == petID {
			found = true
			break
		}
	}
	if !found {
		writeError(w, &game.NotFoundError{PetID: petID})
		return
	}

	h.svc.SelectPet(petID)
	writeJSON(w, http.StatusOK, h.svc.State())
}

func (h *handlers) action(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}

	kind, err := game.ParseKind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if err != nil {
		writeError(w, err)
		return
	}

	out, err := h.svc.PerformAction(r.Context(), kind, species.Diet(strings.ToLower(req.Food)))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := actionResponse{ActionOutcome: out}
	if req.Wait {
		select {
		case resp.Reaction = <-out.Reaction:
		case <-r.Context().Done():
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) reaction(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.LatestReaction())
}

func (h *handlers) music(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, musicResponse{Enabled: h.svc.Music()})
}

func (h *handlers) toggleMusic(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, musicResponse{Enabled: h.svc.ToggleMusic()})
}

// statusFor maps game errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		notFound *game.NotFoundError
		invalid  *game.InvalidActionError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid),
		errors.Is(err, game.ErrEmptyName),
		errors.Is(err, game.ErrUnknownSpecies):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrBusy),
		errors.Is(err, game.ErrNoActivePet):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("httpapi: request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
