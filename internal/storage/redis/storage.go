package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, playerKey(player.ID), data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0) // No TTL
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Story operations
//
// Story bodies are stored as JSON with a zero Likes field; the live like
// count lives in a separate INCR counter so likes are atomic, with zset
// indexes maintaining the latest and most-liked orderings.

func (s *Storage) SaveStory(ctx context.Context, story *model.StoryRecord) error {
	body := *story
	likes := body.Likes
	body.Likes = 0

	data, err := json.Marshal(&body)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, storyKey(story.ID), data, 0)
	if likes > 0 {
		pipe.Set(ctx, storyLikesKey(story.ID), likes, 0)
	}
	pipe.ZAdd(ctx, storiesByTimeKey(), redis.Z{
		Score:  float64(story.PublishedAt.UnixMilli()),
		Member: string(story.ID),
	})
	pipe.ZAdd(ctx, storiesByLikesKey(), redis.Z{
		Score:  float64(likes),
		Member: string(story.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetStory(ctx context.Context, id model.StoryID) (*model.StoryRecord, error) {
	data, err := s.client.Get(ctx, storyKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrStoryNotFound
		}
		return nil, err
	}

	var story model.StoryRecord
	if err := json.Unmarshal(data, &story); err != nil {
		return nil, err
	}

	likes, err := s.client.Get(ctx, storyLikesKey(id)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	story.Likes = likes
	return &story, nil
}

func (s *Storage) ListLatestStories(ctx context.Context, n int) ([]*model.StoryRecord, error) {
	return s.listStoriesByIndex(ctx, storiesByTimeKey(), n)
}

func (s *Storage) ListMostLikedStories(ctx context.Context, n int) ([]*model.StoryRecord, error) {
	return s.listStoriesByIndex(ctx, storiesByLikesKey(), n)
}

// listStoriesByIndex fetches the top n stories of a zset index, highest first
func (s *Storage) listStoriesByIndex(ctx context.Context, indexKey string, n int) ([]*model.StoryRecord, error) {
	if n <= 0 {
		return []*model.StoryRecord{}, nil
	}

	ids, err := s.client.ZRevRange(ctx, indexKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.StoryRecord{}, nil
	}

	stories := make([]*model.StoryRecord, 0, len(ids))
	for _, id := range ids {
		story, err := s.GetStory(ctx, model.StoryID(id))
		if err != nil {
			if errors.Is(err, model.ErrStoryNotFound) {
				continue // index entry outlived its story
			}
			return nil, err
		}
		stories = append(stories, story)
	}
	return stories, nil
}

func (s *Storage) LikeStory(ctx context.Context, id model.StoryID) error {
	exists, err := s.client.Exists(ctx, storyKey(id)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrStoryNotFound
	}

	pipe := s.client.Pipeline()
	pipe.Incr(ctx, storyLikesKey(id))
	pipe.ZIncrBy(ctx, storiesByLikesKey(), 1, string(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Title operations
//
// Titles for a story live in a zset scored by upvotes; suggestion
// timestamps live in a companion hash keyed by title text.

func (s *Storage) SuggestTitle(ctx context.Context, title *model.Title) error {
	exists, err := s.client.Exists(ctx, storyKey(title.StoryID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrStoryNotFound
	}

	pipe := s.client.Pipeline()
	pipe.ZIncrBy(ctx, titlesKey(title.StoryID), float64(title.Upvotes), title.Text)
	pipe.HSetNX(ctx, titleMetaKey(title.StoryID), title.Text, title.SuggestedAt.Format(time.RFC3339))
	pipe.SAdd(ctx, titledStoriesKey(), string(title.StoryID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) UpvoteTitle(ctx context.Context, storyID model.StoryID, text string) error {
	if err := s.client.ZScore(ctx, titlesKey(storyID), text).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return model.ErrTitleNotFound
		}
		return err
	}
	return s.client.ZIncrBy(ctx, titlesKey(storyID), 1, text).Err()
}

func (s *Storage) GetTitlesForStory(ctx context.Context, storyID model.StoryID) ([]*model.Title, error) {
	exists, err := s.client.Exists(ctx, storyKey(storyID)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrStoryNotFound
	}
	return s.titlesForStory(ctx, storyID)
}

func (s *Storage) GetAllTitles(ctx context.Context) ([]*model.Title, error) {
	storyIDs, err := s.client.SMembers(ctx, titledStoriesKey()).Result()
	if err != nil {
		return nil, err
	}

	var titles []*model.Title
	for _, id := range storyIDs {
		forStory, err := s.titlesForStory(ctx, model.StoryID(id))
		if err != nil {
			return nil, err
		}
		titles = append(titles, forStory...)
	}
	return titles, nil
}

func (s *Storage) titlesForStory(ctx context.Context, storyID model.StoryID) ([]*model.Title, error) {
	entries, err := s.client.ZRevRangeWithScores(ctx, titlesKey(storyID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	meta, err := s.client.HGetAll(ctx, titleMetaKey(storyID)).Result()
	if err != nil {
		return nil, err
	}

	titles := make([]*model.Title, 0, len(entries))
	for _, entry := range entries {
		text := entry.Member.(string)
		title := &model.Title{
			StoryID: storyID,
			Text:    text,
			Upvotes: int(entry.Score),
		}
		if raw, ok := meta[text]; ok {
			if at, err := time.Parse(time.RFC3339, raw); err == nil {
				title.SuggestedAt = at
			}
		}
		titles = append(titles, title)
	}
	return titles, nil
}

// Comment operations

func (s *Storage) AddComment(ctx context.Context, comment *model.Comment) error {
	exists, err := s.client.Exists(ctx, storyKey(comment.StoryID)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrStoryNotFound
	}

	data, err := json.Marshal(comment)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, commentsKey(comment.StoryID), data).Err()
}

func (s *Storage) GetComments(ctx context.Context, storyID model.StoryID) ([]*model.Comment, error) {
	exists, err := s.client.Exists(ctx, storyKey(storyID)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrStoryNotFound
	}

	raw, err := s.client.LRange(ctx, commentsKey(storyID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	comments := make([]*model.Comment, 0, len(raw))
	for _, item := range raw {
		var comment model.Comment
		if err := json.Unmarshal([]byte(item), &comment); err != nil {
			continue // Skip invalid data
		}
		comments = append(comments, &comment)
	}
	return comments, nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	key := dictionaryKey()

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}

	return s.client.SMembers(ctx, key).Result()
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	key := dictionaryKey()

	// Delete existing dictionary and add new words atomically
	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)

	if len(words) > 0 {
		members := make([]interface{}, len(words))
		for i, w := range words {
			members[i] = w
		}
		pipe.SAdd(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}
