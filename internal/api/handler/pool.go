package handler

import (
	"net/http"

	"github.com/storyloom/storyloom/internal/api/apierr"
	"github.com/storyloom/storyloom/internal/api/middleware"
	"github.com/storyloom/storyloom/internal/api/response"
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/registry"
	"github.com/storyloom/storyloom/internal/services/lobby"
)

// PoolHandler handles matchmaking endpoints
type PoolHandler struct {
	lobby     *lobby.Manager
	registrar *registry.Registrar
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(manager *lobby.Manager, registrar *registry.Registrar) *PoolHandler {
	return &PoolHandler{
		lobby:     manager,
		registrar: registrar,
	}
}

// Join handles POST /api/v1/pool/join. The call blocks until the player
// is promoted into a game, disconnects, or the server shuts down.
func (h *PoolHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	reqID := middleware.GetRequestID(r.Context())

	handle, err := h.registrar.Register(reqID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	outcomes, err := h.lobby.JoinPool(player)
	if err != nil {
		h.registrar.Resolve(reqID, registry.Result{Code: model.CodeForError(err)})
		apierr.WriteError(w, err)
		return
	}

	// Bridge the pool's one-shot notification into the registrar so a
	// shutdown can drain this wait
	go func() {
		outcome := <-outcomes
		result := registry.Result{Code: model.CodeOK}
		switch {
		case outcome.Cancelled:
			result.Code = apierr.CodePoolCancelled
		case outcome.Game != nil:
			result.Payload = outcome.Game.Snapshot()
		}
		h.registrar.Resolve(reqID, result)
	}()

	result, err := handle.Wait(r.Context())
	if err != nil {
		// Caller gave up; treat it as a disconnect so the pool entry
		// does not wait forever
		h.lobby.Disconnect(player.ID)
		return
	}

	if result.Code != model.CodeOK {
		response.JSON(w, apierr.StatusForCode(result.Code), response.JoinResponse{Code: result.Code})
		return
	}

	resp := response.JoinResponse{Code: model.CodeOK}
	if snapshot, ok := result.Payload.(*model.GameSnapshot); ok {
		converted := response.GameSnapshotFromModel(snapshot)
		resp.Game = &converted
	}
	response.JSON(w, http.StatusOK, resp)
}

// Disconnect handles POST /api/v1/pool/disconnect. It removes the
// player from the pool or the active game, whichever holds them, and
// is a no-op otherwise.
func (h *PoolHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	dispatch(w, r, h.registrar, http.StatusOK, func() (any, error) {
		h.lobby.Disconnect(player.ID)
		return nil, nil
	})
}
