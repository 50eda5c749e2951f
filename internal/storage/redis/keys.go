package redis

import (
	"fmt"

	"github.com/storyloom/storyloom/internal/model"
)

// Key prefix for all storyloom data
const keyPrefix = "storyloom"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// storyKey returns the Redis key for an archived story's JSON body
func storyKey(id model.StoryID) string {
	return fmt.Sprintf("%s:story:%s", keyPrefix, id)
}

// storyLikesKey returns the Redis key for a story's like counter
func storyLikesKey(id model.StoryID) string {
	return fmt.Sprintf("%s:story_likes:%s", keyPrefix, id)
}

// storiesByTimeKey returns the zset of story ids scored by publication time
func storiesByTimeKey() string {
	return fmt.Sprintf("%s:idx:stories_by_time", keyPrefix)
}

// storiesByLikesKey returns the zset of story ids scored by like count
func storiesByLikesKey() string {
	return fmt.Sprintf("%s:idx:stories_by_likes", keyPrefix)
}

// titlesKey returns the zset of suggested titles for a story scored by upvotes
func titlesKey(storyID model.StoryID) string {
	return fmt.Sprintf("%s:titles:%s", keyPrefix, storyID)
}

// titleMetaKey returns the hash of title text -> suggestion timestamp
func titleMetaKey(storyID model.StoryID) string {
	return fmt.Sprintf("%s:title_meta:%s", keyPrefix, storyID)
}

// titledStoriesKey returns the set of story ids that have suggested titles
func titledStoriesKey() string {
	return fmt.Sprintf("%s:idx:titled_stories", keyPrefix)
}

// commentsKey returns the list of comments for a story
func commentsKey(storyID model.StoryID) string {
	return fmt.Sprintf("%s:comments:%s", keyPrefix, storyID)
}

// dictionaryKey returns the Redis key for the dictionary word set
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
