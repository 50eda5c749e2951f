package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"

	"github.com/storyloom/storyloom/internal/api"
	"github.com/storyloom/storyloom/internal/factory"
	"github.com/storyloom/storyloom/internal/services/auth"
	"github.com/storyloom/storyloom/internal/services/game"
	"github.com/storyloom/storyloom/internal/services/lobby"
	redisstorage "github.com/storyloom/storyloom/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Parse configuration from environment
	var serverCfg api.ServerConfig
	var authCfg auth.Config
	var gameCfg game.Config
	var lobbyCfg lobby.Config
	if err := env.Parse(&serverCfg); err != nil {
		logger.Error("invalid server configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := env.Parse(&authCfg); err != nil {
		logger.Error("invalid auth configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := env.Parse(&gameCfg); err != nil {
		logger.Error("invalid game configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := env.Parse(&lobbyCfg); err != nil {
		logger.Error("invalid lobby configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg := factory.Config{
		DictionaryPath: dictionaryPath(),
		AuthConfig:     authCfg,
		GameConfig:     gameCfg,
		LobbyConfig:    lobbyCfg,
		Logger:         logger,
		StorageType:    os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		var redisCfg redisstorage.Config
		if err := env.Parse(&redisCfg); err != nil {
			logger.Error("invalid redis configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load dictionary
	if err := app.DictionaryService.LoadFromFile(context.Background(), cfg.DictionaryPath); err != nil {
		logger.Warn("could not load dictionary", slog.String("error", err.Error()))
	}

	// Start SSE fan-out
	go app.Hub.Run()
	app.Broadcaster.Start()

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create API router; the admin shutdown endpoint triggers the same
	// path as a signal
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		LobbyManager:   app.LobbyManager,
		Registrar:      app.Registrar,
		ArchiveService: app.ArchiveService,
		Hub:            app.Hub,
		Shutdown:       cancel,
	})

	// Create server
	server := api.NewServer(router, serverCfg, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		// Drain in-flight waits before closing the listener: pending
		// requests resolve with SHUTTING_DOWN, pooled players are
		// cancelled, then the HTTP server stops accepting
		app.Registrar.Shutdown()
		app.LobbyManager.Shutdown()
		app.Broadcaster.Stop()
		app.Hub.Stop()

		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// dictionaryPath returns the dictionary file location
func dictionaryPath() string {
	if path := os.Getenv("DICTIONARY_PATH"); path != "" {
		return path
	}
	return "data/words.txt"
}
