package handler

import (
	"net/http"

	"github.com/storyloom/storyloom/internal/api/apierr"
	"github.com/storyloom/storyloom/internal/api/middleware"
	"github.com/storyloom/storyloom/internal/api/response"
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/registry"
)

// dispatch runs one inbound operation through the registrar: the
// request id is registered before fn runs, fn's outcome resolves it,
// and the handler waits on the handle so a concurrent shutdown can
// drain the request with SHUTTING_DOWN instead of leaving it hanging.
func dispatch(
	w http.ResponseWriter,
	r *http.Request,
	registrar *registry.Registrar,
	status int,
	fn func() (any, error),
) {
	reqID := middleware.GetRequestID(r.Context())

	handle, err := registrar.Register(reqID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	payload, opErr := fn()
	registrar.Resolve(reqID, registry.Result{
		Code:    model.CodeForError(opErr),
		Payload: payload,
	})

	result, err := handle.Wait(r.Context())
	if err != nil {
		// Caller went away; nothing left to write
		return
	}

	if result.Code == model.CodeShuttingDown {
		apierr.WriteError(w, model.ErrShuttingDown)
		return
	}
	if opErr != nil {
		apierr.WriteError(w, opErr)
		return
	}
	if result.Payload == nil {
		response.JSON(w, status, response.OK)
		return
	}
	response.JSON(w, status, result.Payload)
}
