package handler

import (
	"net/http"

	"github.com/storyloom/storyloom/internal/api/response"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	shutdown func()
}

// NewAdminHandler creates a new admin handler. The shutdown callback
// initiates cooperative shutdown: draining registrar waits, cancelling
// pooled players, and stopping the HTTP server.
func NewAdminHandler(shutdown func()) *AdminHandler {
	return &AdminHandler{shutdown: shutdown}
}

// Shutdown handles POST /api/v1/admin/shutdown. The acknowledgement is
// written before shutdown begins so this request is not drained with
// the rest.
func (h *AdminHandler) Shutdown(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.OK)
	go h.shutdown()
}
