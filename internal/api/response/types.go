package response

import (
	"time"

	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/services/auth"
)

// Ack is the response-code-only acknowledgement for operations with no
// payload
type Ack struct {
	Code model.ResponseCode `json:"code"`
}

// OK is the acknowledgement for a successful operation
var OK = Ack{Code: model.CodeOK}

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// RosterEntry is one seated player in a game snapshot
type RosterEntry struct {
	PlayerID      string `json:"player_id"`
	DisplayName   string `json:"display_name"`
	IsCurrentTurn bool   `json:"is_current_turn"`
}

// GameSnapshot is the presentation view of a running game
type GameSnapshot struct {
	GameID         string        `json:"game_id"`
	Roster         []RosterEntry `json:"roster"`
	SecondsPerTurn int           `json:"seconds_per_turn"`
	SecondsLeft    int           `json:"seconds_left"`
	StoryText      string        `json:"story_text"`
	GameOver       bool          `json:"game_over"`
}

// GameSnapshotFromModel converts a model.GameSnapshot
func GameSnapshotFromModel(s *model.GameSnapshot) GameSnapshot {
	roster := make([]RosterEntry, len(s.Roster))
	for i, e := range s.Roster {
		roster[i] = RosterEntry{
			PlayerID:      string(e.PlayerID),
			DisplayName:   e.DisplayName,
			IsCurrentTurn: e.IsCurrentTurn,
		}
	}
	return GameSnapshot{
		GameID:         string(s.GameID),
		Roster:         roster,
		SecondsPerTurn: s.SecondsPerTurn,
		SecondsLeft:    s.SecondsLeft,
		StoryText:      s.StoryText,
		GameOver:       s.GameOver,
	}
}

// JoinResponse is the response once a pooled player's wait resolves.
// Game is present only when Code is OK; a wait cancelled by disconnect
// carries POOL_CANCELLED and no game.
type JoinResponse struct {
	Code model.ResponseCode `json:"code"`
	Game *GameSnapshot      `json:"game,omitempty"`
}

// Story represents an archived story in API responses
type Story struct {
	ID          string                    `json:"id"`
	Text        string                    `json:"text"`
	Authors     []string                  `json:"authors"`
	Stats       map[string]map[string]int `json:"stats,omitempty"`
	Likes       int                       `json:"likes"`
	PublishedAt time.Time                 `json:"published_at"`
}

// StoryFromModel converts a model.StoryRecord
func StoryFromModel(s *model.StoryRecord) Story {
	authors := make([]string, len(s.Authors))
	for i, a := range s.Authors {
		authors[i] = string(a)
	}

	var statsResp map[string]map[string]int
	if len(s.Stats) > 0 {
		statsResp = make(map[string]map[string]int, len(s.Stats))
		for metric, values := range s.Stats {
			statsResp[metric] = make(map[string]int, len(values))
			for pid, v := range values {
				statsResp[metric][string(pid)] = v
			}
		}
	}

	return Story{
		ID:          string(s.ID),
		Text:        s.Text,
		Authors:     authors,
		Stats:       statsResp,
		Likes:       s.Likes,
		PublishedAt: s.PublishedAt,
	}
}

// StoriesFromModel converts a story listing
func StoriesFromModel(stories []*model.StoryRecord) []Story {
	out := make([]Story, len(stories))
	for i, s := range stories {
		out[i] = StoryFromModel(s)
	}
	return out
}

// Title represents a suggested title in API responses
type Title struct {
	StoryID     string    `json:"story_id"`
	Text        string    `json:"text"`
	Upvotes     int       `json:"upvotes"`
	SuggestedAt time.Time `json:"suggested_at"`
}

// TitlesFromModel converts a title listing
func TitlesFromModel(titles []*model.Title) []Title {
	out := make([]Title, len(titles))
	for i, t := range titles {
		out[i] = Title{
			StoryID:     string(t.StoryID),
			Text:        t.Text,
			Upvotes:     t.Upvotes,
			SuggestedAt: t.SuggestedAt,
		}
	}
	return out
}

// Comment represents a story comment in API responses
type Comment struct {
	ID          string    `json:"id"`
	StoryID     string    `json:"story_id"`
	DisplayName string    `json:"display_name"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentFromModel converts a model.Comment
func CommentFromModel(c *model.Comment) Comment {
	return Comment{
		ID:          string(c.ID),
		StoryID:     string(c.StoryID),
		DisplayName: c.DisplayName,
		Text:        c.Text,
		CreatedAt:   c.CreatedAt,
	}
}

// CommentsFromModel converts a comment listing
func CommentsFromModel(comments []*model.Comment) []Comment {
	out := make([]Comment, len(comments))
	for i, c := range comments {
		out[i] = CommentFromModel(c)
	}
	return out
}
