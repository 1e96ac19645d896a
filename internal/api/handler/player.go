package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/competeinator/internal/api/request"
	"github.com/mcoot/competeinator/internal/api/response"
	"github.com/mcoot/competeinator/internal/model"
	"github.com/mcoot/competeinator/internal/services/tournament"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	tournament *tournament.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(tournament *tournament.Controller) *PlayerHandler {
	return &PlayerHandler{
		tournament: tournament,
	}
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.tournament.CreatePlayer(r.Context(), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.tournament.OrderedPlayers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID[model.PlayerKind](r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.tournament.GetPlayer(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Delete handles DELETE /api/v1/players/{id}
// Deleting an unknown player succeeds.
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID[model.PlayerKind](r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.tournament.DeletePlayer(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
