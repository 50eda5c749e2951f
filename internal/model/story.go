package model

import (
	"strings"
	"time"
)

// StoryID uniquely identifies an archived story
type StoryID string

// Word is a single accepted contribution to a story
type Word struct {
	Text     string
	AuthorID PlayerID
}

// Story is the ordered, append-only sequence of words built up during a game.
// It is owned exclusively by one game; validity of new words is decided by
// the game before Append is called.
type Story struct {
	words []Word
}

// Append adds an accepted word to the end of the story
func (s *Story) Append(w Word) {
	s.words = append(s.words, w)
}

// Words returns a copy of the accepted words in order
func (s *Story) Words() []Word {
	out := make([]Word, len(s.words))
	copy(out, s.words)
	return out
}

// Len returns the number of accepted words
func (s *Story) Len() int {
	return len(s.words)
}

// Text joins the accepted words with single spaces
func (s *Story) Text() string {
	parts := make([]string, len(s.words))
	for i, w := range s.words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// StoryRecord is a finished story as published to storage when its game ends
type StoryRecord struct {
	ID          StoryID
	Text        string
	Authors     []PlayerID
	Stats       map[string]map[PlayerID]int // metric name -> per-player value
	Likes       int
	PublishedAt time.Time
}

// Title is a suggested title for an archived story
type Title struct {
	StoryID     StoryID
	Text        string
	Upvotes     int
	SuggestedAt time.Time
}

// CommentID uniquely identifies a comment
type CommentID string

// Comment is a guest comment left on an archived story
type Comment struct {
	ID          CommentID
	StoryID     StoryID
	DisplayName string
	Text        string
	CreatedAt   time.Time
}
