package factory

import (
	"time"

	"github.com/storyloom/storyloom/internal/dependencies/mocks"
	"github.com/storyloom/storyloom/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockTicker *mocks.MockTicker
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The mock ticker is manually driven, so turn timers only run when the test
// fires ticks.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockTicker := mocks.NewMockTicker()
	tickerFactory := mocks.NewMockTickerFactory(mockTicker)

	app := newWithDependencies(store, mockClock, tickerFactory, mockRandom, Config{}, nil)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		MockTicker: mockTicker,
	}
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		"a", "an", "and", "at", "bear", "big", "bird", "blue", "cat",
		"dark", "dog", "down", "fast", "fell", "fox", "green", "hill",
		"house", "in", "jumped", "lazy", "little", "moon", "night",
		"old", "on", "over", "quick", "ran", "red", "river", "sat",
		"sky", "slept", "small", "sun", "the", "then", "to", "tree",
		"under", "up", "walked", "was", "wind",
	}
	return t.DictionaryService.LoadWords(words)
}
