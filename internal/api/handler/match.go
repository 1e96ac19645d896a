package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/competeinator/internal/api/request"
	"github.com/mcoot/competeinator/internal/api/response"
	"github.com/mcoot/competeinator/internal/ident"
	"github.com/mcoot/competeinator/internal/model"
	"github.com/mcoot/competeinator/internal/services/tournament"
)

// MatchHandler handles match-related endpoints
type MatchHandler struct {
	tournament *tournament.Controller
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(tournament *tournament.Controller) *MatchHandler {
	return &MatchHandler{
		tournament: tournament,
	}
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	match, err := h.tournament.CreateMatch(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeMatch(w, r, http.StatusCreated, match.ID)
}

// List handles GET /api/v1/matches
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.tournament.Summaries(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	result := make([]response.Match, len(summaries))
	for i, summary := range summaries {
		result[i] = response.MatchFromSummary(summary)
	}

	response.JSON(w, http.StatusOK, result)
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID[model.MatchKind](r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	h.writeMatch(w, r, http.StatusOK, id)
}

// AddComponent handles POST /api/v1/matches/{id}/components
func (h *MatchHandler) AddComponent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID[model.MatchKind](r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.AddComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == nil {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	added, err := h.tournament.AddComponent(r.Context(), id, ident.FromValue[model.PlayerKind](*req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	match, err := h.loadMatch(r, id)
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.AddComponentResponse{Added: added, Match: match})
}

// DeclareWinner handles POST /api/v1/matches/{id}/winner
func (h *MatchHandler) DeclareWinner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID[model.MatchKind](r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.DeclareWinnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PlayerID == nil {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}

	if err := h.tournament.DeclareWinner(r.Context(), id, ident.FromValue[model.PlayerKind](*req.PlayerID)); err != nil {
		WriteError(w, err)
		return
	}

	h.writeMatch(w, r, http.StatusOK, id)
}

// Standings handles GET /api/v1/standings
func (h *MatchHandler) Standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.tournament.Standings(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StandingsFromModel(standings))
}

func (h *MatchHandler) loadMatch(r *http.Request, id model.MatchID) (response.Match, error) {
	summary, err := h.tournament.Summarize(r.Context(), id)
	if err != nil {
		return response.Match{}, err
	}
	return response.MatchFromSummary(summary), nil
}

func (h *MatchHandler) writeMatch(w http.ResponseWriter, r *http.Request, status int, id model.MatchID) {
	match, err := h.loadMatch(r, id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, status, match)
}
