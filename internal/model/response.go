package model

import "errors"

// ResponseCode is the enumerated outcome delivered for every inbound operation
type ResponseCode string

const (
	CodeOK                 ResponseCode = "OK"
	CodeInvalidWord        ResponseCode = "INVALID_WORD"
	CodeNotYourTurn        ResponseCode = "NOT_YOUR_TURN"
	CodeNoActiveGame       ResponseCode = "NO_ACTIVE_GAME"
	CodeGameOver           ResponseCode = "GAME_OVER"
	CodeIDInUse            ResponseCode = "ID_IN_USE"
	CodeGameRunning        ResponseCode = "GAME_RUNNING"
	CodeDuplicateRequest   ResponseCode = "DUPLICATE_REQUEST"
	CodeShuttingDown       ResponseCode = "SHUTTING_DOWN"
	CodeInvalidTitle       ResponseCode = "INVALID_TITLE"
	CodeInvalidComment     ResponseCode = "INVALID_COMMENT"
	CodeInvalidDisplayName ResponseCode = "INVALID_DISPLAY_NAME"
	CodeStoryNotFound      ResponseCode = "STORY_NOT_FOUND"
	CodeTitleNotFound      ResponseCode = "TITLE_NOT_FOUND"
	CodeUnauthorized       ResponseCode = "UNAUTHORIZED"
	CodeInternal           ResponseCode = "INTERNAL"
)

// CodeForError maps domain errors onto the response code set.
// Unknown errors map to CodeInternal; a nil error maps to CodeOK.
func CodeForError(err error) ResponseCode {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrInvalidWord):
		return CodeInvalidWord
	case errors.Is(err, ErrNotYourTurn):
		return CodeNotYourTurn
	case errors.Is(err, ErrNoActiveGame):
		return CodeNoActiveGame
	case errors.Is(err, ErrGameOver):
		return CodeGameOver
	case errors.Is(err, ErrIDInUse):
		return CodeIDInUse
	case errors.Is(err, ErrGameRunning):
		return CodeGameRunning
	case errors.Is(err, ErrDuplicateRequest):
		return CodeDuplicateRequest
	case errors.Is(err, ErrShuttingDown):
		return CodeShuttingDown
	case errors.Is(err, ErrInvalidTitle):
		return CodeInvalidTitle
	case errors.Is(err, ErrInvalidComment):
		return CodeInvalidComment
	case errors.Is(err, ErrInvalidDisplayName):
		return CodeInvalidDisplayName
	case errors.Is(err, ErrStoryNotFound):
		return CodeStoryNotFound
	case errors.Is(err, ErrTitleNotFound):
		return CodeTitleNotFound
	default:
		return CodeInternal
	}
}
