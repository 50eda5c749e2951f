package game

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/storyloom/storyloom/internal/dependencies/clock"
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/services/stats"
)

// Factory constructs games with a shared policy, word checker, and clock.
// Each game gets a fresh set of statistic collectors.
type Factory struct {
	cfg     Config
	checker WordChecker
	clock   clock.Clock
	logger  *slog.Logger
}

// NewFactory creates a game factory
func NewFactory(cfg Config, checker WordChecker, clk clock.Clock, logger *slog.Logger) *Factory {
	return &Factory{
		cfg:     cfg,
		checker: checker,
		clock:   clk,
		logger:  logger,
	}
}

// NewGame creates a running game with a generated id and the standard
// metric set
func (f *Factory) NewGame(roster []*model.Player, onGameEnd OnGameEnd) (*Game, error) {
	id := model.GameID(uuid.NewString())
	return New(id, roster, f.cfg, f.checker, stats.DefaultCollectors(), f.clock, f.logger, onGameEnd)
}
