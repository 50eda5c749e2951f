package lobby

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/storyloom/storyloom/internal/dependencies/clock"
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/services/game"
)

// Archiver publishes a finished game's story
type Archiver interface {
	ArchiveGame(ctx context.Context, result *model.GameResult) (model.StoryID, error)
}

// Config holds matchmaking policy settings
type Config struct {
	// MatchSize is the number of pooled players promoted into a game
	MatchSize int `env:"LOBBY_MATCH_SIZE" envDefault:"2"`

	// TickInterval is the turn scheduler's tick period
	TickInterval time.Duration `env:"LOBBY_TICK_INTERVAL" envDefault:"1s"`
}

// DefaultConfig returns the standard matchmaking policy
func DefaultConfig() Config {
	return Config{
		MatchSize:    2,
		TickInterval: time.Second,
	}
}

// Manager owns the waiting pool and the single active game slot. It
// promotes pooled players into games, routes disconnects to whichever
// side currently holds the player, and passes gameplay operations
// through to the active game.
//
// One lock covers the pool and the slot, so a player id is a member of
// at most one of them at any instant.
type Manager struct {
	cfg     Config
	factory *game.Factory
	tickers clock.TickerFactory
	archive Archiver
	logger  *slog.Logger

	mu        sync.Mutex
	pool      *pool
	active    *game.Game
	scheduler *game.Scheduler
}

// NewManager creates a lobby manager
func NewManager(
	cfg Config,
	factory *game.Factory,
	tickers clock.TickerFactory,
	archive Archiver,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		cfg:     cfg,
		factory: factory,
		tickers: tickers,
		archive: archive,
		logger:  logger.With("component", "lobby"),
		pool:    newPool(),
	}
}

// JoinPool queues a player for matchmaking. The returned channel
// receives exactly one outcome: the game the player was promoted into,
// or cancellation. Fails with ErrIDInUse if the player id is already
// queued or seated in the active game.
//
// When the join fills a match and the game slot is free, promotion
// happens immediately and the outcome is already buffered on return.
// If the slot is occupied the batch stays queued and promotion retries
// when the slot clears.
func (m *Manager) JoinPool(player *model.Player) (<-chan JoinOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool.contains(player.ID) {
		return nil, model.ErrIDInUse
	}
	if m.active != nil && !m.active.IsGameOver() && m.active.HasPlayer(player.ID) {
		return nil, model.ErrIDInUse
	}

	entry := m.pool.add(player)
	m.logger.Info("player joined pool", "player_id", player.ID, "pool_size", m.pool.size())

	if err := m.promoteLocked(); err != nil {
		// Slot still occupied; the batch waits for it to clear
		m.logger.Debug("promotion deferred", "error", err)
	}

	return entry.outcome, nil
}

// promoteLocked promotes the earliest MatchSize entries into a new game
// if enough players are waiting. Fails with ErrGameRunning when a
// non-terminal game occupies the slot. Caller holds m.mu.
func (m *Manager) promoteLocked() error {
	if m.pool.size() < m.cfg.MatchSize {
		return nil
	}
	if m.active != nil && !m.active.IsGameOver() {
		return model.ErrGameRunning
	}

	batch := m.pool.takeBatch(m.cfg.MatchSize)
	roster := make([]*model.Player, len(batch))
	for i, e := range batch {
		roster[i] = e.player
	}

	g, err := m.factory.NewGame(roster, m.handleGameEnd)
	if err != nil {
		// Contract violation; return the batch to the front of the queue
		m.pool.entries = append(batch, m.pool.entries...)
		return err
	}

	// When the slot held a finished game whose end hook has not reached
	// us yet, its scheduler is still running; stop it before the field
	// is reused
	if m.scheduler != nil {
		m.scheduler.Stop()
	}

	m.active = g
	m.scheduler = game.NewScheduler(g, m.tickers, m.cfg.TickInterval, m.logger)
	m.scheduler.Start()

	for _, e := range batch {
		e.notify(JoinOutcome{Game: g})
	}

	m.logger.Info("pool promoted to game", "game_id", g.ID(), "players", len(batch))
	return nil
}

// Disconnect removes a player from wherever they currently are: the
// pool (cancelling their wait) or the active game. A player found in
// neither is a no-op; calling twice for the same id is harmless.
func (m *Manager) Disconnect(playerID model.PlayerID) {
	m.mu.Lock()
	if entry := m.pool.remove(playerID); entry != nil {
		m.mu.Unlock()
		entry.notify(JoinOutcome{Cancelled: true})
		m.logger.Info("pool entry cancelled", "player_id", playerID)
		return
	}
	g := m.active
	m.mu.Unlock()

	if g == nil {
		return
	}
	// ErrNotInGame and ErrGameOver both mean there is nothing to do
	if err := g.RemovePlayer(playerID); err != nil {
		m.logger.Debug("disconnect no-op", "player_id", playerID, "error", err)
	}
}

// SubmitWord passes a word submission through to the active game
func (m *Manager) SubmitWord(playerID model.PlayerID, word string) error {
	g, err := m.activeGame()
	if err != nil {
		return err
	}
	return g.SubmitWord(playerID, word)
}

// CurrentTurnPlayer returns whose submission the active game would accept
func (m *Manager) CurrentTurnPlayer() (model.PlayerID, error) {
	g, err := m.activeGame()
	if err != nil {
		return "", err
	}
	return g.CurrentTurnPlayer()
}

// Snapshot returns the active game's presentation view
func (m *Manager) Snapshot() (*model.GameSnapshot, error) {
	g, err := m.activeGame()
	if err != nil {
		return nil, err
	}
	return g.Snapshot(), nil
}

// PoolSize returns the number of players waiting for a match
func (m *Manager) PoolSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pool.size()
}

// Shutdown cancels every pooled wait and stops the active game's
// scheduler. Idempotent.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	entries := m.pool.drain()
	scheduler := m.scheduler
	m.mu.Unlock()

	for _, e := range entries {
		e.notify(JoinOutcome{Cancelled: true})
	}
	if scheduler != nil {
		scheduler.Stop()
	}
	m.logger.Info("lobby shut down", "cancelled_waits", len(entries))
}

func (m *Manager) activeGame() (*game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return nil, model.ErrNoActiveGame
	}
	return m.active, nil
}

// handleGameEnd runs exactly once per game, outside the game's lock:
// it archives the story, stops the scheduler, clears the slot, and
// retries promotion for any batch that was waiting on it.
//
// The result belongs to the ended game alone, so archiving never
// depends on the slot: a waiting batch may re-occupy it between the
// game ending and this hook running, in which case the promotion
// already stopped our scheduler and only the archive is left to do.
func (m *Manager) handleGameEnd(result *model.GameResult) {
	if len(result.Authors) > 0 {
		storyID, err := m.archive.ArchiveGame(context.Background(), result)
		if err != nil {
			m.logger.Error("failed to archive story", "game_id", result.GameID, "error", err)
		} else {
			m.logger.Info("story archived", "game_id", result.GameID, "story_id", storyID)
		}
	}

	m.mu.Lock()
	if m.active == nil || m.active.ID() != result.GameID {
		m.mu.Unlock()
		return
	}
	scheduler := m.scheduler
	m.active = nil
	m.scheduler = nil
	m.mu.Unlock()

	if scheduler != nil {
		scheduler.Stop()
	}

	m.mu.Lock()
	err := m.promoteLocked()
	m.mu.Unlock()
	if err != nil {
		m.logger.Error("promotion after game end failed", "error", err)
	}
}
