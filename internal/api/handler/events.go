package handler

import (
	"net/http"

	"github.com/storyloom/storyloom/internal/api/middleware"
	"github.com/storyloom/storyloom/internal/api/sse"
)

// EventsHandler streams game state to clients over SSE
type EventsHandler struct {
	hub *sse.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *sse.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /api/v1/game/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	sse.ServeSSE(w, r, h.hub, player.ID)
}
