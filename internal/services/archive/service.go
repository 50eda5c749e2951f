package archive

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/storyloom/storyloom/internal/dependencies/clock"
	"github.com/storyloom/storyloom/internal/dependencies/random"
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/services/validation"
	"github.com/storyloom/storyloom/internal/storage"
)

const storyIDLength = 8

// DefaultListLimit bounds story listings when the caller gives no limit
const DefaultListLimit = 10

// Service manages finished stories: publishing, likes, suggested titles,
// and guest comments
type Service struct {
	storage storage.Storage
	random  random.Random
	clock   clock.Clock
	logger  *slog.Logger

	titleChecker   validation.TitleChecker
	commentChecker validation.CommentChecker
	nameChecker    validation.DisplayNameChecker
}

// New creates an archive service
func New(
	store storage.Storage,
	rnd random.Random,
	clk clock.Clock,
	titleChecker validation.TitleChecker,
	commentChecker validation.CommentChecker,
	nameChecker validation.DisplayNameChecker,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage:        store,
		random:         rnd,
		clock:          clk,
		logger:         logger.With("component", "archive"),
		titleChecker:   titleChecker,
		commentChecker: commentChecker,
		nameChecker:    nameChecker,
	}
}

// ArchiveGame publishes a finished game's story and returns its id
func (s *Service) ArchiveGame(ctx context.Context, result *model.GameResult) (model.StoryID, error) {
	id := model.StoryID(s.random.String(storyIDLength, random.StoryIDAlphabet))

	record := &model.StoryRecord{
		ID:          id,
		Text:        result.StoryText,
		Authors:     result.Authors,
		Stats:       result.Stats,
		PublishedAt: result.FinishedAt,
	}
	if err := s.storage.SaveStory(ctx, record); err != nil {
		return "", err
	}

	s.logger.Info("story published", "story_id", id, "authors", len(result.Authors))
	return id, nil
}

// GetStory returns one archived story
func (s *Service) GetStory(ctx context.Context, id model.StoryID) (*model.StoryRecord, error) {
	return s.storage.GetStory(ctx, id)
}

// GetLatestStories returns the most recently published stories, newest
// first. A non-positive limit falls back to DefaultListLimit.
func (s *Service) GetLatestStories(ctx context.Context, limit int) ([]*model.StoryRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.storage.ListLatestStories(ctx, limit)
}

// GetMostLikedStories returns stories ordered by like count, highest
// first. A non-positive limit falls back to DefaultListLimit.
func (s *Service) GetMostLikedStories(ctx context.Context, limit int) ([]*model.StoryRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.storage.ListMostLikedStories(ctx, limit)
}

// LikeStory increments a story's like count
func (s *Service) LikeStory(ctx context.Context, id model.StoryID) error {
	return s.storage.LikeStory(ctx, id)
}

// SuggestTitle records a title suggestion for a story. Suggesting a
// title that already exists counts as an upvote for it.
func (s *Service) SuggestTitle(ctx context.Context, storyID model.StoryID, text string) error {
	if !s.titleChecker.ValidTitle(text) {
		return model.ErrInvalidTitle
	}

	return s.storage.SuggestTitle(ctx, &model.Title{
		StoryID:     storyID,
		Text:        text,
		Upvotes:     1,
		SuggestedAt: s.clock.Now(),
	})
}

// UpvoteTitle adds one upvote to an existing suggested title
func (s *Service) UpvoteTitle(ctx context.Context, storyID model.StoryID, text string) error {
	return s.storage.UpvoteTitle(ctx, storyID, text)
}

// GetTitlesForStory returns a story's suggested titles, most upvoted first
func (s *Service) GetTitlesForStory(ctx context.Context, storyID model.StoryID) ([]*model.Title, error) {
	return s.storage.GetTitlesForStory(ctx, storyID)
}

// GetAllTitles returns every suggested title across all stories
func (s *Service) GetAllTitles(ctx context.Context) ([]*model.Title, error) {
	return s.storage.GetAllTitles(ctx)
}

// CommentAsGuest adds a comment to a story under a guest display name
func (s *Service) CommentAsGuest(ctx context.Context, storyID model.StoryID, displayName, text string) (*model.Comment, error) {
	if !s.nameChecker.ValidDisplayName(displayName) {
		return nil, model.ErrInvalidDisplayName
	}
	if !s.commentChecker.ValidComment(text) {
		return nil, model.ErrInvalidComment
	}

	comment := &model.Comment{
		ID:          model.CommentID(uuid.NewString()),
		StoryID:     storyID,
		DisplayName: displayName,
		Text:        text,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.storage.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// GetStoryComments returns a story's comments in posting order
func (s *Service) GetStoryComments(ctx context.Context, storyID model.StoryID) ([]*model.Comment, error) {
	return s.storage.GetComments(ctx, storyID)
}
