package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/storyloom/storyloom/internal/api/sse"
	"github.com/storyloom/storyloom/internal/dependencies/clock"
	"github.com/storyloom/storyloom/internal/dependencies/random"
	"github.com/storyloom/storyloom/internal/registry"
	"github.com/storyloom/storyloom/internal/services/archive"
	"github.com/storyloom/storyloom/internal/services/auth"
	"github.com/storyloom/storyloom/internal/services/dictionary"
	"github.com/storyloom/storyloom/internal/services/game"
	"github.com/storyloom/storyloom/internal/services/lobby"
	"github.com/storyloom/storyloom/internal/services/validation"
	"github.com/storyloom/storyloom/internal/storage"
	"github.com/storyloom/storyloom/internal/storage/memory"
	redisstorage "github.com/storyloom/storyloom/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	ArchiveService    *archive.Service
	AuthService       *auth.Service
	GameFactory       *game.Factory
	LobbyManager      *lobby.Manager
	Registrar         *registry.Registrar
	Hub               *sse.Hub
	Broadcaster       *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, dictionary must be loaded manually
	DictionaryPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// GameConfig holds the turn policy (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// LobbyConfig holds the matchmaking policy (optional)
	// If zero value, defaults to lobby.DefaultConfig()
	LobbyConfig lobby.Config
	// BroadcastInterval is the SSE snapshot poll period (optional)
	// If zero, defaults to one second
	BroadcastInterval time.Duration
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, clk, rnd, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	tickers clock.TickerFactory,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	gameCfg := cfg.GameConfig
	if gameCfg.SecondsPerTurn == 0 {
		gameCfg = game.DefaultConfig()
	}
	lobbyCfg := cfg.LobbyConfig
	if lobbyCfg.MatchSize == 0 {
		lobbyCfg = lobby.DefaultConfig()
	}
	broadcastInterval := cfg.BroadcastInterval
	if broadcastInterval == 0 {
		broadcastInterval = time.Second
	}

	nameChecker := validation.NewDisplayNameChecker()
	titleChecker := validation.NewTitleChecker()
	commentChecker := validation.NewCommentChecker()

	dictService := dictionary.New(store)
	archiveService := archive.New(store, rnd, clk, titleChecker, commentChecker, nameChecker, logger)
	authService := auth.New(store, clk, rnd, nameChecker, authCfg)
	gameFactory := game.NewFactory(gameCfg, dictService, clk, logger)
	lobbyManager := lobby.NewManager(lobbyCfg, gameFactory, tickers, archiveService, logger)
	registrar := registry.New(logger)
	hub := sse.NewHub(logger)
	broadcaster := sse.NewBroadcaster(hub, lobbyManager, tickers, broadcastInterval, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		ArchiveService:    archiveService,
		AuthService:       authService,
		GameFactory:       gameFactory,
		LobbyManager:      lobbyManager,
		Registrar:         registrar,
		Hub:               hub,
		Broadcaster:       broadcaster,
	}
}
