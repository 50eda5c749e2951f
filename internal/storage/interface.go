package storage

import (
	"context"

	"github.com/storyloom/storyloom/internal/model"
)

// Storage defines the interface for data persistence.
// Implementations must make LikeStory, SuggestTitle, and UpvoteTitle atomic
// per key; no cross-key transactional semantics are required.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Story operations
	SaveStory(ctx context.Context, story *model.StoryRecord) error
	GetStory(ctx context.Context, id model.StoryID) (*model.StoryRecord, error)
	ListLatestStories(ctx context.Context, n int) ([]*model.StoryRecord, error)
	ListMostLikedStories(ctx context.Context, n int) ([]*model.StoryRecord, error)
	LikeStory(ctx context.Context, id model.StoryID) error

	// Title operations
	SuggestTitle(ctx context.Context, title *model.Title) error
	UpvoteTitle(ctx context.Context, storyID model.StoryID, text string) error
	GetTitlesForStory(ctx context.Context, storyID model.StoryID) ([]*model.Title, error)
	GetAllTitles(ctx context.Context) ([]*model.Title, error)

	// Comment operations
	AddComment(ctx context.Context, comment *model.Comment) error
	GetComments(ctx context.Context, storyID model.StoryID) ([]*model.Comment, error)

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
