package stats

import (
	"unicode"

	"github.com/storyloom/storyloom/internal/model"
)

// Collector accumulates one per-player metric from accepted turns.
// Record is invoked only for successful word submissions, never for
// timeouts. Collectors keep values for players who later leave the
// roster; removal stops future updates but never erases history.
//
// Collectors are not safe for concurrent use on their own; the owning
// game serializes calls under its own lock.
type Collector interface {
	// Name identifies the metric in snapshots
	Name() string

	// Record accumulates one accepted turn for a player.
	// turnSeconds is the elapsed time of the turn in seconds.
	Record(playerID model.PlayerID, word string, turnSeconds int)

	// Snapshot returns the current per-player values
	Snapshot() map[model.PlayerID]int
}

// WordCount counts accepted words per player
type WordCount struct {
	counts map[model.PlayerID]int
}

func NewWordCount() *WordCount {
	return &WordCount{counts: make(map[model.PlayerID]int)}
}

func (c *WordCount) Name() string {
	return "word_count"
}

func (c *WordCount) Record(playerID model.PlayerID, word string, turnSeconds int) {
	c.counts[playerID]++
}

func (c *WordCount) Snapshot() map[model.PlayerID]int {
	return copySnapshot(c.counts)
}

// LettersUsed counts the distinct letters a player has contributed
// across all accepted words, case-folded. Non-letter runes (digits,
// punctuation) are not counted.
type LettersUsed struct {
	seen map[model.PlayerID]map[rune]struct{}
}

func NewLettersUsed() *LettersUsed {
	return &LettersUsed{seen: make(map[model.PlayerID]map[rune]struct{})}
}

func (c *LettersUsed) Name() string {
	return "letters_used"
}

func (c *LettersUsed) Record(playerID model.PlayerID, word string, turnSeconds int) {
	letters := c.seen[playerID]
	if letters == nil {
		letters = make(map[rune]struct{})
		c.seen[playerID] = letters
	}
	for _, r := range word {
		if unicode.IsLetter(r) {
			letters[unicode.ToLower(r)] = struct{}{}
		}
	}
}

func (c *LettersUsed) Snapshot() map[model.PlayerID]int {
	out := make(map[model.PlayerID]int, len(c.seen))
	for playerID, letters := range c.seen {
		out[playerID] = len(letters)
	}
	return out
}

// AverageTurnDuration tracks the mean elapsed seconds per accepted turn,
// truncated to whole seconds in snapshots.
type AverageTurnDuration struct {
	totals map[model.PlayerID]int
	turns  map[model.PlayerID]int
}

func NewAverageTurnDuration() *AverageTurnDuration {
	return &AverageTurnDuration{
		totals: make(map[model.PlayerID]int),
		turns:  make(map[model.PlayerID]int),
	}
}

func (c *AverageTurnDuration) Name() string {
	return "average_turn_duration"
}

func (c *AverageTurnDuration) Record(playerID model.PlayerID, word string, turnSeconds int) {
	c.totals[playerID] += turnSeconds
	c.turns[playerID]++
}

func (c *AverageTurnDuration) Snapshot() map[model.PlayerID]int {
	out := make(map[model.PlayerID]int, len(c.turns))
	for playerID, turns := range c.turns {
		out[playerID] = c.totals[playerID] / turns
	}
	return out
}

func copySnapshot(in map[model.PlayerID]int) map[model.PlayerID]int {
	out := make(map[model.PlayerID]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
