package mocks

import (
	"time"

	"github.com/storyloom/storyloom/internal/dependencies/clock"
)

// MockTicker is a manually driven Ticker for testing periodic drivers
type MockTicker struct {
	ch      chan time.Time
	Stopped bool
}

// Ensure MockTicker implements Ticker
var _ clock.Ticker = (*MockTicker)(nil)

// NewMockTicker creates a MockTicker that fires only when Tick is called
func NewMockTicker() *MockTicker {
	return &MockTicker{ch: make(chan time.Time, 16)}
}

// C returns the tick channel
func (t *MockTicker) C() <-chan time.Time {
	return t.ch
}

// Stop records that the ticker was stopped
func (t *MockTicker) Stop() {
	t.Stopped = true
}

// Tick fires one tick
func (t *MockTicker) Tick(at time.Time) {
	t.ch <- at
}

// MockTickerFactory hands out a fixed MockTicker and records the interval
type MockTickerFactory struct {
	Ticker   *MockTicker
	Interval time.Duration
}

// Ensure MockTickerFactory implements TickerFactory
var _ clock.TickerFactory = (*MockTickerFactory)(nil)

// NewMockTickerFactory creates a factory around the given ticker
func NewMockTickerFactory(t *MockTicker) *MockTickerFactory {
	return &MockTickerFactory{Ticker: t}
}

// NewTicker returns the fixed mock ticker
func (f *MockTickerFactory) NewTicker(d time.Duration) clock.Ticker {
	f.Interval = d
	return f.Ticker
}
