package stats

import "github.com/storyloom/storyloom/internal/model"

// Aggregator fans one accepted turn out to a set of collectors and
// merges their snapshots by metric name.
type Aggregator struct {
	collectors []Collector
}

// NewAggregator creates an aggregator over the given collectors
func NewAggregator(collectors ...Collector) *Aggregator {
	return &Aggregator{collectors: collectors}
}

// DefaultCollectors returns the standard metric set for a new game
func DefaultCollectors() []Collector {
	return []Collector{
		NewWordCount(),
		NewLettersUsed(),
		NewAverageTurnDuration(),
	}
}

// Record accumulates one accepted turn across all collectors
func (a *Aggregator) Record(playerID model.PlayerID, word string, turnSeconds int) {
	for _, c := range a.collectors {
		c.Record(playerID, word, turnSeconds)
	}
}

// Snapshot returns metric name -> per-player values for all collectors
func (a *Aggregator) Snapshot() map[string]map[model.PlayerID]int {
	out := make(map[string]map[model.PlayerID]int, len(a.collectors))
	for _, c := range a.collectors {
		out[c.Name()] = c.Snapshot()
	}
	return out
}
