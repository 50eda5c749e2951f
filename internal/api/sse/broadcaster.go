package sse

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/storyloom/storyloom/internal/api/response"
	"github.com/storyloom/storyloom/internal/dependencies/clock"
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/services/lobby"
)

// Broadcaster pushes game state to SSE clients. It polls the lobby
// manager on a fixed interval and broadcasts a snapshot event whenever
// the observable state changes, plus a game-ended event when the active
// game goes away.
type Broadcaster struct {
	hub    *Hub
	lobby  *lobby.Manager
	ticker clock.Ticker
	logger *slog.Logger

	stopOnce sync.Once
	done     chan struct{}

	lastPayload string
	hadGame     bool
}

// NewBroadcaster creates a broadcaster polling at the given interval
func NewBroadcaster(
	hub *Hub,
	manager *lobby.Manager,
	tickers clock.TickerFactory,
	interval time.Duration,
	logger *slog.Logger,
) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		lobby:  manager,
		ticker: tickers.NewTicker(interval),
		logger: logger.With(slog.String("component", "sse-broadcaster")),
		done:   make(chan struct{}),
	}
}

// Start launches the polling loop in its own goroutine
func (b *Broadcaster) Start() {
	go b.run()
}

func (b *Broadcaster) run() {
	for {
		select {
		case <-b.done:
			return
		case <-b.ticker.C():
			b.poll()
		}
	}
}

// poll publishes one observation of the active game
func (b *Broadcaster) poll() {
	snapshot, err := b.lobby.Snapshot()
	if err != nil {
		if errors.Is(err, model.ErrNoActiveGame) && b.hadGame {
			b.hadGame = false
			b.lastPayload = ""
			b.hub.BroadcastEvent("game_ended", []byte(`{"game_over":true}`))
		}
		return
	}

	data, err := json.Marshal(response.GameSnapshotFromModel(snapshot))
	if err != nil {
		b.logger.Error("sse failed to encode snapshot", slog.Any("error", err))
		return
	}

	if string(data) == b.lastPayload {
		return
	}
	b.lastPayload = string(data)
	b.hadGame = true
	b.hub.BroadcastEvent("snapshot", data)
}

// Stop halts the polling loop. Idempotent.
func (b *Broadcaster) Stop() {
	b.stopOnce.Do(func() {
		b.ticker.Stop()
		close(b.done)
	})
}
