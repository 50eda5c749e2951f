package lobby

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/storyloom/storyloom/internal/dependencies/mocks"
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/services/game"
	"github.com/storyloom/storyloom/internal/testutil"
)

type acceptAllChecker struct{}

func (acceptAllChecker) IsValidWord(string) bool { return true }

type recordingArchiver struct {
	results []*model.GameResult
}

func (a *recordingArchiver) ArchiveGame(ctx context.Context, result *model.GameResult) (model.StoryID, error) {
	a.results = append(a.results, result)
	return "story-1", nil
}

type ManagerSuite struct {
	suite.Suite
	clock    *mocks.MockClock
	ticker   *mocks.MockTicker
	archiver *recordingArchiver
	manager  *Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.ticker = mocks.NewMockTicker()
	s.archiver = &recordingArchiver{}

	factory := game.NewFactory(
		game.Config{SecondsPerTurn: 10, MinPlayers: 2},
		acceptAllChecker{},
		s.clock,
		testutil.NopLogger(),
	)

	s.manager = NewManager(
		Config{MatchSize: 2, TickInterval: time.Second},
		factory,
		mocks.NewMockTickerFactory(s.ticker),
		s.archiver,
		testutil.NopLogger(),
	)
}

func (s *ManagerSuite) player(id model.PlayerID) *model.Player {
	return &model.Player{ID: id, DisplayName: string(id)}
}

// receive asserts an outcome is already buffered on the channel
func (s *ManagerSuite) receive(ch <-chan JoinOutcome) JoinOutcome {
	select {
	case o := <-ch:
		return o
	case <-time.After(time.Second):
		s.FailNow("no outcome delivered")
		return JoinOutcome{}
	}
}

func (s *ManagerSuite) TestJoinBelowThresholdWaits() {
	ch, err := s.manager.JoinPool(s.player("1"))
	s.Require().NoError(err)

	s.Equal(1, s.manager.PoolSize())
	select {
	case <-ch:
		s.FailNow("outcome delivered before match filled")
	default:
	}
}

func (s *ManagerSuite) TestMatchPromotesEveryoneOnce() {
	ch1, err := s.manager.JoinPool(s.player("1"))
	s.Require().NoError(err)
	ch2, err := s.manager.JoinPool(s.player("2"))
	s.Require().NoError(err)

	o1 := s.receive(ch1)
	o2 := s.receive(ch2)

	s.Require().NotNil(o1.Game)
	s.Same(o1.Game, o2.Game)
	s.Equal(0, s.manager.PoolSize())

	// First joiner holds the opening turn
	current, err := s.manager.CurrentTurnPlayer()
	s.Require().NoError(err)
	s.Equal(model.PlayerID("1"), current)
}

func (s *ManagerSuite) TestJoinDuplicateIDInPool() {
	_, err := s.manager.JoinPool(s.player("1"))
	s.Require().NoError(err)

	_, err = s.manager.JoinPool(s.player("1"))
	s.ErrorIs(err, model.ErrIDInUse)
}

func (s *ManagerSuite) TestJoinDuplicateIDInGame() {
	_, err := s.manager.JoinPool(s.player("1"))
	s.Require().NoError(err)
	_, err = s.manager.JoinPool(s.player("2"))
	s.Require().NoError(err)

	_, err = s.manager.JoinPool(s.player("1"))
	s.ErrorIs(err, model.ErrIDInUse)
}

func (s *ManagerSuite) TestDisconnectFromPoolCancels() {
	ch, err := s.manager.JoinPool(s.player("1"))
	s.Require().NoError(err)

	s.manager.Disconnect("1")

	o := s.receive(ch)
	s.True(o.Cancelled)
	s.Equal(0, s.manager.PoolSize())

	// A cancelled player may rejoin
	_, err = s.manager.JoinPool(s.player("1"))
	s.NoError(err)
}

func (s *ManagerSuite) TestDisconnectIsIdempotent() {
	_, err := s.manager.JoinPool(s.player("1"))
	s.Require().NoError(err)

	s.manager.Disconnect("1")
	s.manager.Disconnect("1")
	s.manager.Disconnect("unknown")
}

func (s *ManagerSuite) TestOperationsWithNoActiveGame() {
	err := s.manager.SubmitWord("1", "cat")
	s.ErrorIs(err, model.ErrNoActiveGame)

	_, err = s.manager.Snapshot()
	s.ErrorIs(err, model.ErrNoActiveGame)

	_, err = s.manager.CurrentTurnPlayer()
	s.ErrorIs(err, model.ErrNoActiveGame)
}

func (s *ManagerSuite) TestSubmitWordPassesThrough() {
	s.startGame("1", "2")

	s.Require().NoError(s.manager.SubmitWord("1", "cat"))

	snap, err := s.manager.Snapshot()
	s.Require().NoError(err)
	s.Equal("cat", snap.StoryText)

	s.ErrorIs(s.manager.SubmitWord("1", "sat"), model.ErrNotYourTurn)
}

func (s *ManagerSuite) TestGameEndArchivesAndClearsSlot() {
	s.startGame("1", "2")
	s.Require().NoError(s.manager.SubmitWord("1", "cat"))

	s.manager.Disconnect("2")

	s.Require().Len(s.archiver.results, 1)
	s.Equal("cat", s.archiver.results[0].StoryText)
	s.True(s.ticker.Stopped)

	_, err := s.manager.Snapshot()
	s.ErrorIs(err, model.ErrNoActiveGame)
}

func (s *ManagerSuite) TestGameWithNoWordsIsNotArchived() {
	s.startGame("1", "2")

	s.manager.Disconnect("1")

	s.Empty(s.archiver.results)
}

func (s *ManagerSuite) TestWaitingBatchPromotedWhenSlotClears() {
	s.startGame("1", "2")

	// A second pair fills the pool while the slot is occupied
	ch3, err := s.manager.JoinPool(s.player("3"))
	s.Require().NoError(err)
	ch4, err := s.manager.JoinPool(s.player("4"))
	s.Require().NoError(err)
	s.Equal(2, s.manager.PoolSize())

	// Ending the first game frees the slot and promotes the waiters
	s.manager.Disconnect("1")

	o3 := s.receive(ch3)
	o4 := s.receive(ch4)
	s.Require().NotNil(o3.Game)
	s.Same(o3.Game, o4.Game)
	s.Equal(0, s.manager.PoolSize())
}

func (s *ManagerSuite) TestDelayedEndHookStillArchives() {
	ended, _ := s.installFinishedGame("cat")

	// A filled batch takes the slot before the end hook runs
	ch3, err := s.manager.JoinPool(s.player("3"))
	s.Require().NoError(err)
	_, err = s.manager.JoinPool(s.player("4"))
	s.Require().NoError(err)
	s.Require().NotNil(s.receive(ch3).Game)

	s.manager.handleGameEnd(ended)

	s.Require().Len(s.archiver.results, 1)
	s.Equal("cat", s.archiver.results[0].StoryText)

	// The replacement game keeps the slot
	current, err := s.manager.CurrentTurnPlayer()
	s.Require().NoError(err)
	s.Equal(model.PlayerID("3"), current)
}

func (s *ManagerSuite) TestPromotionOverFinishedGameStopsItsScheduler() {
	_, staleTicker := s.installFinishedGame("cat")

	ch3, err := s.manager.JoinPool(s.player("3"))
	s.Require().NoError(err)
	_, err = s.manager.JoinPool(s.player("4"))
	s.Require().NoError(err)
	s.Require().NotNil(s.receive(ch3).Game)

	s.True(staleTicker.Stopped)
}

func (s *ManagerSuite) TestShutdownCancelsAllWaits() {
	ch, err := s.manager.JoinPool(s.player("1"))
	s.Require().NoError(err)

	s.manager.Shutdown()

	o := s.receive(ch)
	s.True(o.Cancelled)
	s.Equal(0, s.manager.PoolSize())

	s.manager.Shutdown()
}

func (s *ManagerSuite) TestShutdownStopsScheduler() {
	s.startGame("1", "2")

	s.manager.Shutdown()
	s.True(s.ticker.Stopped)
}

// installFinishedGame seats a finished game in the slot with its end
// hook captured instead of delivered, reproducing the window between a
// game ending and its hook reaching the manager.
func (s *ManagerSuite) installFinishedGame(word string) (*model.GameResult, *mocks.MockTicker) {
	factory := game.NewFactory(
		game.Config{SecondsPerTurn: 10, MinPlayers: 2},
		acceptAllChecker{},
		s.clock,
		testutil.NopLogger(),
	)

	var ended *model.GameResult
	g, err := factory.NewGame(
		[]*model.Player{s.player("1"), s.player("2")},
		func(result *model.GameResult) { ended = result },
	)
	s.Require().NoError(err)

	staleTicker := mocks.NewMockTicker()
	scheduler := game.NewScheduler(g, mocks.NewMockTickerFactory(staleTicker), time.Second, testutil.NopLogger())
	scheduler.Start()

	s.manager.mu.Lock()
	s.manager.active = g
	s.manager.scheduler = scheduler
	s.manager.mu.Unlock()

	s.Require().NoError(g.SubmitWord("1", word))
	s.Require().NoError(g.RemovePlayer("2"))
	s.Require().NotNil(ended)
	return ended, staleTicker
}

func (s *ManagerSuite) startGame(a, b model.PlayerID) {
	ch1, err := s.manager.JoinPool(s.player(a))
	s.Require().NoError(err)
	_, err = s.manager.JoinPool(s.player(b))
	s.Require().NoError(err)
	s.Require().NotNil(s.receive(ch1).Game)
}
