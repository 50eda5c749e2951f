package handler

import (
	"encoding/json"
	"net/http"

	"github.com/storyloom/storyloom/internal/api/apierr"
	"github.com/storyloom/storyloom/internal/api/middleware"
	"github.com/storyloom/storyloom/internal/api/request"
	"github.com/storyloom/storyloom/internal/api/response"
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/registry"
	"github.com/storyloom/storyloom/internal/services/lobby"
)

// GameHandler handles gameplay endpoints
type GameHandler struct {
	lobby     *lobby.Manager
	registrar *registry.Registrar
}

// NewGameHandler creates a new game handler
func NewGameHandler(manager *lobby.Manager, registrar *registry.Registrar) *GameHandler {
	return &GameHandler{
		lobby:     manager,
		registrar: registrar,
	}
}

// SubmitWord handles POST /api/v1/game/word
func (h *GameHandler) SubmitWord(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.SubmitWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Word == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("word is required"))
		return
	}

	dispatch(w, r, h.registrar, http.StatusOK, func() (any, error) {
		if err := h.lobby.SubmitWord(player.ID, req.Word); err != nil {
			return nil, err
		}
		// The game may already be archived if this was its last word
		if snapshot, err := h.lobby.Snapshot(); err == nil {
			converted := response.GameSnapshotFromModel(snapshot)
			return response.JoinResponse{Code: model.CodeOK, Game: &converted}, nil
		}
		return response.JoinResponse{Code: model.CodeOK}, nil
	})
}

// GetSnapshot handles GET /api/v1/game
func (h *GameHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.lobby.Snapshot()
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameSnapshotFromModel(snapshot))
}
