package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrInvalidDisplayName = errors.New("display name is not allowed")

	// Pool / lobby errors
	ErrIDInUse     = errors.New("player id is already in the pool or a game")
	ErrGameRunning = errors.New("a game is already running")

	// Game errors
	ErrNoActiveGame = errors.New("no active game")
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not this player's turn")
	ErrInvalidWord  = errors.New("word is not valid")
	ErrNotInGame    = errors.New("player is not in the game")

	// Registrar errors
	ErrDuplicateRequest = errors.New("request id is already pending")
	ErrShuttingDown     = errors.New("server is shutting down")

	// Archive errors
	ErrStoryNotFound  = errors.New("story not found")
	ErrTitleNotFound  = errors.New("title not found")
	ErrInvalidTitle   = errors.New("suggested title is not allowed")
	ErrInvalidComment = errors.New("comment is not allowed")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
