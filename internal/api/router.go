package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/storyloom/storyloom/internal/api/handler"
	"github.com/storyloom/storyloom/internal/api/middleware"
	"github.com/storyloom/storyloom/internal/api/sse"
	"github.com/storyloom/storyloom/internal/registry"
	"github.com/storyloom/storyloom/internal/services/archive"
	"github.com/storyloom/storyloom/internal/services/auth"
	"github.com/storyloom/storyloom/internal/services/lobby"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	LobbyManager   *lobby.Manager
	Registrar      *registry.Registrar
	ArchiveService *archive.Service
	Hub            *sse.Hub
	Shutdown       func()
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	poolHandler := handler.NewPoolHandler(cfg.LobbyManager, cfg.Registrar)
	gameHandler := handler.NewGameHandler(cfg.LobbyManager, cfg.Registrar)
	archiveHandler := handler.NewArchiveHandler(cfg.ArchiveService, cfg.Registrar)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)
	adminHandler := handler.NewAdminHandler(cfg.Shutdown)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	requestIDMiddleware := middleware.RequestID()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(requestIDMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Pool routes (all require auth)
	pool := api.PathPrefix("/pool").Subrouter()
	pool.Use(authMiddleware)
	pool.HandleFunc("/join", poolHandler.Join).Methods(http.MethodPost)
	pool.HandleFunc("/disconnect", poolHandler.Disconnect).Methods(http.MethodPost)

	// Game routes (all require auth)
	game := api.PathPrefix("/game").Subrouter()
	game.Use(authMiddleware)
	game.HandleFunc("", gameHandler.GetSnapshot).Methods(http.MethodGet)
	game.HandleFunc("/word", gameHandler.SubmitWord).Methods(http.MethodPost)
	game.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Story archive routes (readable and likeable without an account)
	api.HandleFunc("/stories/latest", archiveHandler.GetLatest).Methods(http.MethodGet)
	api.HandleFunc("/stories/most-liked", archiveHandler.GetMostLiked).Methods(http.MethodGet)
	api.HandleFunc("/stories/{story_id}", archiveHandler.GetStory).Methods(http.MethodGet)
	api.HandleFunc("/stories/{story_id}/like", archiveHandler.Like).Methods(http.MethodPost)
	api.HandleFunc("/stories/{story_id}/titles", archiveHandler.GetTitles).Methods(http.MethodGet)
	api.HandleFunc("/stories/{story_id}/titles", archiveHandler.SuggestTitle).Methods(http.MethodPost)
	api.HandleFunc("/stories/{story_id}/titles/upvote", archiveHandler.UpvoteTitle).Methods(http.MethodPost)
	api.HandleFunc("/stories/{story_id}/comments", archiveHandler.GetComments).Methods(http.MethodGet)
	api.HandleFunc("/stories/{story_id}/comments", archiveHandler.Comment).Methods(http.MethodPost)
	api.HandleFunc("/titles", archiveHandler.GetAllTitles).Methods(http.MethodGet)

	// Admin routes (require auth)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMiddleware)
	admin.HandleFunc("/shutdown", adminHandler.Shutdown).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
