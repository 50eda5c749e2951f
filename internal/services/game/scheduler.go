package game

import (
	"log/slog"
	"sync"
	"time"

	"github.com/storyloom/storyloom/internal/dependencies/clock"
)

// Scheduler is the periodic driver for one game's turn countdown. It
// ticks the game once per interval until the game ends or the scheduler
// is stopped. Stop is idempotent; once the game reports over, the
// scheduler never ticks it again.
type Scheduler struct {
	game   *Game
	ticker clock.Ticker
	logger *slog.Logger

	stopOnce sync.Once
	done     chan struct{}
}

// NewScheduler creates a scheduler for the given game, ticking at the
// given interval. Call Start to begin driving the countdown.
func NewScheduler(g *Game, factory clock.TickerFactory, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		game:   g,
		ticker: factory.NewTicker(interval),
		logger: logger.With("component", "scheduler", "game_id", g.ID()),
		done:   make(chan struct{}),
	}
}

// Start launches the tick loop in its own goroutine
func (s *Scheduler) Start() {
	go s.run()
}

func (s *Scheduler) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C():
			if over := s.game.Tick(); over {
				s.Stop()
				return
			}
		}
	}
}

// Stop halts the tick loop. Safe to call multiple times and from any
// goroutine, including the tick loop itself.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.ticker.Stop()
		close(s.done)
		s.logger.Debug("scheduler stopped")
	})
}
