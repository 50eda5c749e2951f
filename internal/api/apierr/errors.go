package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    model.ResponseCode `json:"code"`
	Message string             `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes outside the domain response set
const (
	CodeInvalidRequest     model.ResponseCode = "INVALID_REQUEST"
	CodeInvalidCredentials model.ResponseCode = "INVALID_CREDENTIALS"
	CodeUsernameExists     model.ResponseCode = "USERNAME_EXISTS"
	CodePlayerNotFound     model.ResponseCode = "PLAYER_NOT_FOUND"

	// CodePoolCancelled reports a pool wait ended by a disconnect
	// rather than a promotion
	CodePoolCancelled model.ResponseCode = "POOL_CANCELLED"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map domain errors
	switch {
	case errors.Is(err, model.ErrInvalidWord):
		return &httpError{http.StatusUnprocessableEntity, APIError{model.CodeInvalidWord, "Word was rejected"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{model.CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrNoActiveGame):
		return &httpError{http.StatusNotFound, APIError{model.CodeNoActiveGame, "No game in progress"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{model.CodeGameOver, "Game is over"}}
	case errors.Is(err, model.ErrIDInUse):
		return &httpError{http.StatusConflict, APIError{model.CodeIDInUse, "Player is already waiting or playing"}}
	case errors.Is(err, model.ErrGameRunning):
		return &httpError{http.StatusConflict, APIError{model.CodeGameRunning, "A game is already running"}}
	case errors.Is(err, model.ErrDuplicateRequest):
		return &httpError{http.StatusConflict, APIError{model.CodeDuplicateRequest, "Request id is already pending"}}
	case errors.Is(err, model.ErrShuttingDown):
		return &httpError{http.StatusServiceUnavailable, APIError{model.CodeShuttingDown, "Server is shutting down"}}
	case errors.Is(err, model.ErrInvalidTitle):
		return &httpError{http.StatusUnprocessableEntity, APIError{model.CodeInvalidTitle, "Title was rejected"}}
	case errors.Is(err, model.ErrInvalidComment):
		return &httpError{http.StatusUnprocessableEntity, APIError{model.CodeInvalidComment, "Comment was rejected"}}
	case errors.Is(err, model.ErrInvalidDisplayName):
		return &httpError{http.StatusUnprocessableEntity, APIError{model.CodeInvalidDisplayName, "Display name was rejected"}}
	case errors.Is(err, model.ErrStoryNotFound):
		return &httpError{http.StatusNotFound, APIError{model.CodeStoryNotFound, "Story not found"}}
	case errors.Is(err, model.ErrTitleNotFound):
		return &httpError{http.StatusNotFound, APIError{model.CodeTitleNotFound, "Title not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{model.CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{model.CodeInternal, "Internal server error"}}
	}
}

// StatusForCode returns the HTTP status used for a response code when
// the result arrives as a code rather than an error
func StatusForCode(code model.ResponseCode) int {
	switch code {
	case model.CodeOK, CodePoolCancelled:
		return http.StatusOK
	case model.CodeShuttingDown:
		return http.StatusServiceUnavailable
	case model.CodeInternal:
		return http.StatusInternalServerError
	default:
		// All other codes come from domain errors
		return toHTTPError(errorForCode(code)).status
	}
}

func errorForCode(code model.ResponseCode) error {
	switch code {
	case model.CodeInvalidWord:
		return model.ErrInvalidWord
	case model.CodeNotYourTurn:
		return model.ErrNotYourTurn
	case model.CodeNoActiveGame:
		return model.ErrNoActiveGame
	case model.CodeGameOver:
		return model.ErrGameOver
	case model.CodeIDInUse:
		return model.ErrIDInUse
	case model.CodeGameRunning:
		return model.ErrGameRunning
	case model.CodeDuplicateRequest:
		return model.ErrDuplicateRequest
	case model.CodeInvalidTitle:
		return model.ErrInvalidTitle
	case model.CodeInvalidComment:
		return model.ErrInvalidComment
	case model.CodeInvalidDisplayName:
		return model.ErrInvalidDisplayName
	case model.CodeStoryNotFound:
		return model.ErrStoryNotFound
	case model.CodeTitleNotFound:
		return model.ErrTitleNotFound
	default:
		return nil
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{model.CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{model.CodeInternal, "Internal server error"}}
}
