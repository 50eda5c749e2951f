package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/storyloom/storyloom/internal/dependencies/mocks"
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/services/game"
	"github.com/storyloom/storyloom/internal/services/lobby"
	"github.com/storyloom/storyloom/internal/testutil"
)

type acceptAllChecker struct{}

func (acceptAllChecker) IsValidWord(string) bool { return true }

type nopArchiver struct{}

func (nopArchiver) ArchiveGame(_ context.Context, _ *model.GameResult) (model.StoryID, error) {
	return "", nil
}

// broadcasterFixture wires a hub, a lobby manager, and a manually
// driven broadcaster ticker
type broadcasterFixture struct {
	hub         *Hub
	manager     *lobby.Manager
	broadcaster *Broadcaster
	ticker      *mocks.MockTicker
	clock       *mocks.MockClock
	client      *Client
}

func newBroadcasterFixture(t *testing.T) *broadcasterFixture {
	t.Helper()

	logger := testutil.NopLogger()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	// The scheduler and the broadcaster get separate tickers so game
	// timers stay frozen while the test drives the poll loop
	schedTicker := mocks.NewMockTicker()
	factory := game.NewFactory(game.DefaultConfig(), acceptAllChecker{}, clk, logger)
	manager := lobby.NewManager(lobby.DefaultConfig(), factory, mocks.NewMockTickerFactory(schedTicker), nopArchiver{}, logger)

	hub := NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Stop)

	pollTicker := mocks.NewMockTicker()
	broadcaster := NewBroadcaster(hub, manager, mocks.NewMockTickerFactory(pollTicker), time.Second, logger)
	broadcaster.Start()
	t.Cleanup(broadcaster.Stop)

	client := NewClient(hub, "watcher")
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	return &broadcasterFixture{
		hub:         hub,
		manager:     manager,
		broadcaster: broadcaster,
		ticker:      pollTicker,
		clock:       clk,
		client:      client,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

func (f *broadcasterFixture) receive(t *testing.T) string {
	t.Helper()
	select {
	case msg := <-f.client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func (f *broadcasterFixture) expectSilence(t *testing.T) {
	t.Helper()
	select {
	case msg := <-f.client.send:
		t.Fatalf("unexpected message: %s", msg)
	case <-time.After(20 * time.Millisecond):
	}
}

func (f *broadcasterFixture) startGame(t *testing.T) {
	t.Helper()
	_, err := f.manager.JoinPool(&model.Player{ID: "p1", DisplayName: "Aria"})
	if err != nil {
		t.Fatalf("JoinPool(p1) failed: %v", err)
	}
	_, err = f.manager.JoinPool(&model.Player{ID: "p2", DisplayName: "Ben"})
	if err != nil {
		t.Fatalf("JoinPool(p2) failed: %v", err)
	}
}

func TestBroadcasterIgnoresIdlePool(t *testing.T) {
	f := newBroadcasterFixture(t)

	f.ticker.Tick(f.clock.Now())
	f.expectSilence(t)
}

func TestBroadcasterPublishesSnapshotOnChange(t *testing.T) {
	f := newBroadcasterFixture(t)

	f.startGame(t)
	f.ticker.Tick(f.clock.Now())

	msg := f.receive(t)
	if !strings.Contains(msg, "event: snapshot") {
		t.Errorf("message does not contain snapshot event: %s", msg)
	}
	if !strings.Contains(msg, "Aria") {
		t.Errorf("snapshot does not contain roster: %s", msg)
	}

	// Unchanged state is not rebroadcast
	f.ticker.Tick(f.clock.Now())
	f.expectSilence(t)

	// A new word changes the payload
	if err := f.manager.SubmitWord("p1", "cat"); err != nil {
		t.Fatalf("SubmitWord failed: %v", err)
	}
	f.ticker.Tick(f.clock.Now())
	msg = f.receive(t)
	if !strings.Contains(msg, "cat") {
		t.Errorf("snapshot does not contain submitted word: %s", msg)
	}
}

func TestBroadcasterPublishesGameEnded(t *testing.T) {
	f := newBroadcasterFixture(t)

	f.startGame(t)
	f.ticker.Tick(f.clock.Now())
	f.receive(t)

	// Dropping below the minimum roster ends the game
	f.manager.Disconnect("p2")
	f.ticker.Tick(f.clock.Now())

	msg := f.receive(t)
	if !strings.Contains(msg, "event: game_ended") {
		t.Errorf("message does not contain game_ended event: %s", msg)
	}

	// No further events while idle
	f.ticker.Tick(f.clock.Now())
	f.expectSilence(t)
}
