package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// Ticker produces a periodic tick channel that can be mocked for testing.
// Stop must be safe to call more than once.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates tickers with the given interval
type TickerFactory interface {
	NewTicker(d time.Duration) Ticker
}

// RealClock implements Clock and TickerFactory using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// NewTicker returns a Ticker backed by time.Ticker
func (c *RealClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{ticker: time.NewTicker(d)}
}

type realTicker struct {
	ticker  *time.Ticker
	stopped bool
}

func (t *realTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *realTicker) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.ticker.Stop()
}
