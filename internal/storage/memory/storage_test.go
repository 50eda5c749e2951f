package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/storyloom/storyloom/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{ID: "player-1", DisplayName: "Alice"})

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash",
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	byID, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("alice", byID.Username)

	byName, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), byName.PlayerID)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Story tests

func (s *StorageSuite) saveStory(id model.StoryID, publishedAt time.Time) {
	err := s.storage.SaveStory(s.ctx, &model.StoryRecord{
		ID:          id,
		Text:        "once upon a time",
		Authors:     []model.PlayerID{"player-1"},
		PublishedAt: publishedAt,
	})
	s.Require().NoError(err)
}

func (s *StorageSuite) TestSaveAndGetStory() {
	s.saveStory("story-1", time.Now())

	retrieved, err := s.storage.GetStory(s.ctx, "story-1")
	s.Require().NoError(err)
	s.Equal("once upon a time", retrieved.Text)
}

func (s *StorageSuite) TestGetStoryNotFound() {
	_, err := s.storage.GetStory(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrStoryNotFound)
}

func (s *StorageSuite) TestLikeStory() {
	s.saveStory("story-1", time.Now())

	s.Require().NoError(s.storage.LikeStory(s.ctx, "story-1"))
	s.Require().NoError(s.storage.LikeStory(s.ctx, "story-1"))

	retrieved, err := s.storage.GetStory(s.ctx, "story-1")
	s.Require().NoError(err)
	s.Equal(2, retrieved.Likes)
}

func (s *StorageSuite) TestLikeStoryNotFound() {
	err := s.storage.LikeStory(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrStoryNotFound)
}

func (s *StorageSuite) TestListLatestStories() {
	base := time.Now()
	s.saveStory("story-1", base)
	s.saveStory("story-2", base.Add(time.Minute))
	s.saveStory("story-3", base.Add(2*time.Minute))

	stories, err := s.storage.ListLatestStories(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(stories, 2)
	s.Equal(model.StoryID("story-3"), stories[0].ID)
	s.Equal(model.StoryID("story-2"), stories[1].ID)
}

func (s *StorageSuite) TestListMostLikedStories() {
	s.saveStory("story-1", time.Now())
	s.saveStory("story-2", time.Now())

	s.Require().NoError(s.storage.LikeStory(s.ctx, "story-2"))

	stories, err := s.storage.ListMostLikedStories(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(stories, 2)
	s.Equal(model.StoryID("story-2"), stories[0].ID)
}

// Title tests

func (s *StorageSuite) TestSuggestAndGetTitles() {
	s.saveStory("story-1", time.Now())

	err := s.storage.SuggestTitle(s.ctx, &model.Title{
		StoryID: "story-1", Text: "The Tale", Upvotes: 1, SuggestedAt: time.Now(),
	})
	s.Require().NoError(err)

	titles, err := s.storage.GetTitlesForStory(s.ctx, "story-1")
	s.Require().NoError(err)
	s.Require().Len(titles, 1)
	s.Equal("The Tale", titles[0].Text)
	s.Equal(1, titles[0].Upvotes)
}

func (s *StorageSuite) TestSuggestTitleStoryNotFound() {
	err := s.storage.SuggestTitle(s.ctx, &model.Title{StoryID: "nonexistent", Text: "Nope", Upvotes: 1})
	s.ErrorIs(err, model.ErrStoryNotFound)
}

func (s *StorageSuite) TestResuggestTitleCountsAsUpvote() {
	s.saveStory("story-1", time.Now())

	s.Require().NoError(s.storage.SuggestTitle(s.ctx, &model.Title{
		StoryID: "story-1", Text: "The Tale", Upvotes: 1,
	}))
	s.Require().NoError(s.storage.SuggestTitle(s.ctx, &model.Title{
		StoryID: "story-1", Text: "The Tale", Upvotes: 1,
	}))

	titles, err := s.storage.GetTitlesForStory(s.ctx, "story-1")
	s.Require().NoError(err)
	s.Require().Len(titles, 1)
	s.Equal(2, titles[0].Upvotes)
}

func (s *StorageSuite) TestUpvoteTitle() {
	s.saveStory("story-1", time.Now())
	s.Require().NoError(s.storage.SuggestTitle(s.ctx, &model.Title{
		StoryID: "story-1", Text: "The Tale", Upvotes: 1,
	}))

	s.Require().NoError(s.storage.UpvoteTitle(s.ctx, "story-1", "The Tale"))

	titles, err := s.storage.GetTitlesForStory(s.ctx, "story-1")
	s.Require().NoError(err)
	s.Equal(2, titles[0].Upvotes)
}

func (s *StorageSuite) TestUpvoteTitleNotFound() {
	s.saveStory("story-1", time.Now())
	err := s.storage.UpvoteTitle(s.ctx, "story-1", "Never Suggested")
	s.ErrorIs(err, model.ErrTitleNotFound)
}

func (s *StorageSuite) TestTitlesOrderedByUpvotes() {
	s.saveStory("story-1", time.Now())
	s.Require().NoError(s.storage.SuggestTitle(s.ctx, &model.Title{
		StoryID: "story-1", Text: "Lesser", Upvotes: 1,
	}))
	s.Require().NoError(s.storage.SuggestTitle(s.ctx, &model.Title{
		StoryID: "story-1", Text: "Greater", Upvotes: 1,
	}))
	s.Require().NoError(s.storage.UpvoteTitle(s.ctx, "story-1", "Greater"))

	titles, err := s.storage.GetTitlesForStory(s.ctx, "story-1")
	s.Require().NoError(err)
	s.Require().Len(titles, 2)
	s.Equal("Greater", titles[0].Text)
}

func (s *StorageSuite) TestGetAllTitles() {
	s.saveStory("story-1", time.Now())
	s.saveStory("story-2", time.Now())

	s.Require().NoError(s.storage.SuggestTitle(s.ctx, &model.Title{
		StoryID: "story-1", Text: "First Title", Upvotes: 1,
	}))
	s.Require().NoError(s.storage.SuggestTitle(s.ctx, &model.Title{
		StoryID: "story-2", Text: "Second Title", Upvotes: 1,
	}))

	titles, err := s.storage.GetAllTitles(s.ctx)
	s.Require().NoError(err)
	s.Len(titles, 2)
}

// Comment tests

func (s *StorageSuite) TestAddAndGetComments() {
	s.saveStory("story-1", time.Now())

	s.Require().NoError(s.storage.AddComment(s.ctx, &model.Comment{
		ID: "comment-1", StoryID: "story-1", DisplayName: "Reader", Text: "Lovely story",
	}))
	s.Require().NoError(s.storage.AddComment(s.ctx, &model.Comment{
		ID: "comment-2", StoryID: "story-1", DisplayName: "Critic", Text: "Needs more plot",
	}))

	comments, err := s.storage.GetComments(s.ctx, "story-1")
	s.Require().NoError(err)
	s.Require().Len(comments, 2)
	s.Equal("Lovely story", comments[0].Text)
	s.Equal("Needs more plot", comments[1].Text)
}

func (s *StorageSuite) TestAddCommentStoryNotFound() {
	err := s.storage.AddComment(s.ctx, &model.Comment{ID: "c", StoryID: "nonexistent", Text: "hi"})
	s.ErrorIs(err, model.ErrStoryNotFound)
}

// Dictionary tests

func (s *StorageSuite) TestSaveAndGetDictionaryWords() {
	words := []string{"cat", "dog", "bird"}
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, words))

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words, retrieved)
}

func (s *StorageSuite) TestGetDictionaryWordsNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}
