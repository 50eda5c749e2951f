package game

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/storyloom/storyloom/internal/dependencies/clock"
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/services/stats"
)

// WordChecker decides whether a submitted word may be appended to the story
type WordChecker interface {
	IsValidWord(word string) bool
}

// OnGameEnd is invoked exactly once when a game transitions to over.
// It is called outside the game's lock.
type OnGameEnd func(result *model.GameResult)

// Config holds per-game policy settings
type Config struct {
	// SecondsPerTurn is the countdown each player gets per turn
	SecondsPerTurn int `env:"GAME_SECONDS_PER_TURN" envDefault:"15"`

	// MinPlayers is the roster size below which the game ends
	MinPlayers int `env:"GAME_MIN_PLAYERS" envDefault:"2"`
}

// DefaultConfig returns the standard game policy
func DefaultConfig() Config {
	return Config{
		SecondsPerTurn: 15,
		MinPlayers:     2,
	}
}

// Game is one running story game: a roster taking timed turns appending
// words to a shared story.
//
// All mutating paths, word submissions, roster changes, and scheduler
// ticks, serialize on the game's own lock. The game-over flag is
// monotonic: once set it never clears, and every mutating operation on
// an over game fails with ErrGameOver without touching state.
type Game struct {
	id     model.GameID
	cfg    Config
	clock  clock.Clock
	logger *slog.Logger

	checker   WordChecker
	onGameEnd OnGameEnd

	mu          sync.Mutex
	roster      []*model.Player // insertion order; drives turn sequencing
	turnIdx     int
	secondsLeft int
	over        bool
	story       *model.Story
	stats       *stats.Aggregator
}

// New creates a running game with the given roster. The roster must have
// at least cfg.MinPlayers members; the first member holds the opening turn.
func New(
	id model.GameID,
	roster []*model.Player,
	cfg Config,
	checker WordChecker,
	collectors []stats.Collector,
	clk clock.Clock,
	logger *slog.Logger,
	onGameEnd OnGameEnd,
) (*Game, error) {
	if len(roster) < cfg.MinPlayers {
		return nil, fmt.Errorf("roster size %d below minimum %d", len(roster), cfg.MinPlayers)
	}

	g := &Game{
		id:          id,
		cfg:         cfg,
		clock:       clk,
		logger:      logger.With("component", "game", "game_id", id),
		checker:     checker,
		onGameEnd:   onGameEnd,
		roster:      make([]*model.Player, len(roster)),
		secondsLeft: cfg.SecondsPerTurn,
		story:       &model.Story{},
		stats:       stats.NewAggregator(collectors...),
	}
	copy(g.roster, roster)
	return g, nil
}

// ID returns the game's identifier
func (g *Game) ID() model.GameID {
	return g.id
}

// SubmitWord appends a word to the story on behalf of the current-turn
// player and advances the turn. A submission by any other player, or with
// a word the checker rejects, leaves the story and turn untouched.
func (g *Game) SubmitWord(playerID model.PlayerID, word string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over {
		return model.ErrGameOver
	}
	if g.roster[g.turnIdx].ID != playerID {
		return model.ErrNotYourTurn
	}
	if !g.checker.IsValidWord(word) {
		return model.ErrInvalidWord
	}

	g.story.Append(model.Word{Text: word, AuthorID: playerID})

	elapsed := g.cfg.SecondsPerTurn - g.secondsLeft
	g.stats.Record(playerID, word, elapsed)

	g.switchTurnLocked()

	g.logger.Debug("word accepted",
		"player_id", playerID,
		"story_len", g.story.Len())
	return nil
}

// Tick is the scheduler's entry point: it decrements the countdown by one
// interval and forces a turn switch when it reaches zero. Timeouts record
// no statistics for the skipped player. Returns whether the game is over
// so the scheduler can stop itself without re-locking.
func (g *Game) Tick() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over {
		return true
	}

	g.secondsLeft--
	if g.secondsLeft <= 0 {
		skipped := g.roster[g.turnIdx].ID
		g.switchTurnLocked()
		g.logger.Debug("turn timed out", "player_id", skipped)
	}
	return false
}

// RemovePlayer removes a roster member. If they held the turn, the turn
// advances to the next member before removal so the turn pointer always
// references a seated player. Dropping below the minimum roster size ends
// the game.
func (g *Game) RemovePlayer(playerID model.PlayerID) error {
	g.mu.Lock()

	if g.over {
		g.mu.Unlock()
		return model.ErrGameOver
	}

	idx := -1
	for i, p := range g.roster {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		g.mu.Unlock()
		return model.ErrNotInGame
	}

	heldTurn := idx == g.turnIdx

	g.roster = append(g.roster[:idx], g.roster[idx+1:]...)
	if idx < g.turnIdx {
		g.turnIdx--
	}
	if g.turnIdx >= len(g.roster) {
		g.turnIdx = 0
	}
	if heldTurn {
		// The departing player's turn passes immediately with a fresh countdown
		g.secondsLeft = g.cfg.SecondsPerTurn
	}

	g.logger.Info("player removed", "player_id", playerID, "roster_size", len(g.roster))

	var result *model.GameResult
	if len(g.roster) < g.cfg.MinPlayers {
		result = g.endLocked()
	}
	g.mu.Unlock()

	if result != nil && g.onGameEnd != nil {
		g.onGameEnd(result)
	}
	return nil
}

// AddPlayer seats an additional player at the end of the turn order
func (g *Game) AddPlayer(player *model.Player) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.over {
		return model.ErrGameOver
	}
	for _, p := range g.roster {
		if p.ID == player.ID {
			return model.ErrIDInUse
		}
	}
	g.roster = append(g.roster, player)
	return nil
}

// HasPlayer reports whether the player is currently seated
func (g *Game) HasPlayer(playerID model.PlayerID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.roster {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// CurrentTurnPlayer returns the roster member whose submission would
// currently be accepted
func (g *Game) CurrentTurnPlayer() (model.PlayerID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.over {
		return "", model.ErrGameOver
	}
	return g.roster[g.turnIdx].ID, nil
}

// IsGameOver reports whether the game has reached its terminal state
func (g *Game) IsGameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.over
}

// Snapshot returns the presentation view of the game
func (g *Game) Snapshot() *model.GameSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	roster := make([]model.RosterEntry, len(g.roster))
	for i, p := range g.roster {
		roster[i] = model.RosterEntry{
			PlayerID:      p.ID,
			DisplayName:   p.DisplayName,
			IsCurrentTurn: !g.over && i == g.turnIdx,
		}
	}

	return &model.GameSnapshot{
		GameID:         g.id,
		Roster:         roster,
		SecondsPerTurn: g.cfg.SecondsPerTurn,
		SecondsLeft:    g.secondsLeft,
		StoryText:      g.story.Text(),
		GameOver:       g.over,
	}
}

// switchTurnLocked advances the turn pointer cyclically and resets the
// countdown. Caller holds g.mu.
func (g *Game) switchTurnLocked() {
	g.turnIdx = (g.turnIdx + 1) % len(g.roster)
	g.secondsLeft = g.cfg.SecondsPerTurn
}

// endLocked transitions the game to over and builds the final result.
// Caller holds g.mu and is responsible for invoking the end hook after
// releasing it.
func (g *Game) endLocked() *model.GameResult {
	g.over = true

	seen := make(map[model.PlayerID]bool)
	var authors []model.PlayerID
	for _, w := range g.story.Words() {
		if !seen[w.AuthorID] {
			seen[w.AuthorID] = true
			authors = append(authors, w.AuthorID)
		}
	}

	g.logger.Info("game over", "story_len", g.story.Len())

	return &model.GameResult{
		GameID:     g.id,
		StoryText:  g.story.Text(),
		Authors:    authors,
		Stats:      g.stats.Snapshot(),
		FinishedAt: g.clock.Now(),
	}
}
