package model

import "time"

// GameID uniquely identifies a game instance
type GameID string

// RosterEntry is one seated player in a game snapshot
type RosterEntry struct {
	PlayerID      PlayerID
	DisplayName   string
	IsCurrentTurn bool
}

// GameSnapshot is the presentation view of a running game: the roster with
// the current-turn flag, the countdown, and the story so far
type GameSnapshot struct {
	GameID         GameID
	Roster         []RosterEntry
	SecondsPerTurn int
	SecondsLeft    int
	StoryText      string
	GameOver       bool
}

// GameResult describes a finished game: the archived story plus the final
// per-player statistics keyed by metric name
type GameResult struct {
	GameID     GameID
	StoryID    StoryID
	StoryText  string
	Authors    []PlayerID
	Stats      map[string]map[PlayerID]int
	FinishedAt time.Time
}
