package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case JoinResult:
		o.printJoinResult(v)
	case GameSnapshot:
		o.printGameSnapshot(v)
	case Story:
		o.printStory(v)
	case []Story:
		o.printStories(v)
	case []Title:
		o.printTitles(v)
	case []Comment:
		o.printComments(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// RosterEntry response type
type RosterEntry struct {
	PlayerID      string `json:"player_id"`
	DisplayName   string `json:"display_name"`
	IsCurrentTurn bool   `json:"is_current_turn"`
}

// GameSnapshot response type
type GameSnapshot struct {
	GameID         string        `json:"game_id"`
	Roster         []RosterEntry `json:"roster"`
	SecondsPerTurn int           `json:"seconds_per_turn"`
	SecondsLeft    int           `json:"seconds_left"`
	StoryText      string        `json:"story_text"`
	GameOver       bool          `json:"game_over"`
}

// JoinResult response type
type JoinResult struct {
	Code string        `json:"code"`
	Game *GameSnapshot `json:"game"`
}

// Story response type
type Story struct {
	ID          string                    `json:"id"`
	Text        string                    `json:"text"`
	Authors     []string                  `json:"authors"`
	Stats       map[string]map[string]int `json:"stats,omitempty"`
	Likes       int                       `json:"likes"`
	PublishedAt time.Time                 `json:"published_at"`
}

// Title response type
type Title struct {
	StoryID     string    `json:"story_id"`
	Text        string    `json:"text"`
	Upvotes     int       `json:"upvotes"`
	SuggestedAt time.Time `json:"suggested_at"`
}

// Comment response type
type Comment struct {
	ID          string    `json:"id"`
	StoryID     string    `json:"story_id"`
	DisplayName string    `json:"display_name"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

// Ack response type
type Ack struct {
	Code string `json:"code"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printJoinResult(j JoinResult) {
	fmt.Printf("Result: %s\n", j.Code)
	if j.Game != nil {
		fmt.Println()
		o.printGameSnapshot(*j.Game)
	}
}

func (o *Output) printGameSnapshot(g GameSnapshot) {
	fmt.Printf("Game: %s\n", g.GameID)
	if g.GameOver {
		fmt.Println("State: over")
	} else {
		fmt.Printf("Turn timer: %d/%d seconds left\n", g.SecondsLeft, g.SecondsPerTurn)
	}

	fmt.Printf("Players (%d):\n", len(g.Roster))
	for _, entry := range g.Roster {
		turnStr := ""
		if entry.IsCurrentTurn {
			turnStr = " [turn]"
		}
		fmt.Printf("  - %s (%s)%s\n", entry.DisplayName, entry.PlayerID, turnStr)
	}

	if g.StoryText != "" {
		fmt.Printf("\nStory so far:\n  %s\n", g.StoryText)
	}
}

func (o *Output) printStory(s Story) {
	fmt.Printf("Story: %s\n", s.ID)
	fmt.Printf("Published: %s\n", s.PublishedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Likes: %d\n", s.Likes)
	fmt.Printf("Authors: %s\n", strings.Join(s.Authors, ", "))
	fmt.Printf("\n  %s\n", s.Text)

	if len(s.Stats) > 0 {
		fmt.Println("\nStats:")
		for metric, values := range s.Stats {
			fmt.Printf("  %s:\n", metric)
			for pid, v := range values {
				fmt.Printf("    %s: %d\n", pid, v)
			}
		}
	}
}

func (o *Output) printStories(stories []Story) {
	if len(stories) == 0 {
		fmt.Println("No stories yet")
		return
	}

	for i, s := range stories {
		if i > 0 {
			fmt.Println()
		}
		preview := s.Text
		if len(preview) > 80 {
			preview = preview[:80] + "..."
		}
		fmt.Printf("%s (%d likes, %d authors)\n", s.ID, s.Likes, len(s.Authors))
		fmt.Printf("  %s\n", preview)
	}
}

func (o *Output) printTitles(titles []Title) {
	if len(titles) == 0 {
		fmt.Println("No titles suggested yet")
		return
	}

	for _, t := range titles {
		fmt.Printf("%q (%d upvotes) - story %s\n", t.Text, t.Upvotes, t.StoryID)
	}
}

func (o *Output) printComments(comments []Comment) {
	if len(comments) == 0 {
		fmt.Println("No comments yet")
		return
	}

	for _, c := range comments {
		fmt.Printf("[%s] %s: %s\n", c.CreatedAt.Format("2006-01-02 15:04:05"), c.DisplayName, c.Text)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
