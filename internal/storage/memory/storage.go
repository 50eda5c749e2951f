package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	stories           map[model.StoryID]*model.StoryRecord
	storyOrder        []model.StoryID // publication order, oldest first
	titles            map[titleKey]*model.Title
	comments          map[model.StoryID][]*model.Comment
	dictionaryWords   []string
}

type titleKey struct {
	storyID model.StoryID
	text    string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		stories:           make(map[model.StoryID]*model.StoryRecord),
		titles:            make(map[titleKey]*model.Title),
		comments:          make(map[model.StoryID][]*model.Comment),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Story operations

func (s *Storage) SaveStory(ctx context.Context, story *model.StoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.stories[story.ID]; !exists {
		s.storyOrder = append(s.storyOrder, story.ID)
	}
	s.stories[story.ID] = story
	return nil
}

func (s *Storage) GetStory(ctx context.Context, id model.StoryID) (*model.StoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	story, ok := s.stories[id]
	if !ok {
		return nil, model.ErrStoryNotFound
	}
	return story, nil
}

func (s *Storage) ListLatestStories(ctx context.Context, n int) ([]*model.StoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.StoryRecord, 0, n)
	for i := len(s.storyOrder) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, s.stories[s.storyOrder[i]])
	}
	return result, nil
}

func (s *Storage) ListMostLikedStories(ctx context.Context, n int) ([]*model.StoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*model.StoryRecord, 0, len(s.stories))
	for _, story := range s.stories {
		all = append(all, story)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Likes != all[j].Likes {
			return all[i].Likes > all[j].Likes
		}
		return all[i].PublishedAt.After(all[j].PublishedAt)
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *Storage) LikeStory(ctx context.Context, id model.StoryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	story, ok := s.stories[id]
	if !ok {
		return model.ErrStoryNotFound
	}
	story.Likes++
	return nil
}

// Title operations

func (s *Storage) SuggestTitle(ctx context.Context, title *model.Title) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stories[title.StoryID]; !ok {
		return model.ErrStoryNotFound
	}
	key := titleKey{storyID: title.StoryID, text: title.Text}
	if existing, ok := s.titles[key]; ok {
		// Re-suggesting an existing title counts as an upvote
		existing.Upvotes++
		return nil
	}
	s.titles[key] = title
	return nil
}

func (s *Storage) UpvoteTitle(ctx context.Context, storyID model.StoryID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	title, ok := s.titles[titleKey{storyID: storyID, text: text}]
	if !ok {
		return model.ErrTitleNotFound
	}
	title.Upvotes++
	return nil
}

func (s *Storage) GetTitlesForStory(ctx context.Context, storyID model.StoryID) ([]*model.Title, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.stories[storyID]; !ok {
		return nil, model.ErrStoryNotFound
	}
	var titles []*model.Title
	for key, title := range s.titles {
		if key.storyID == storyID {
			titles = append(titles, title)
		}
	}
	sortTitles(titles)
	return titles, nil
}

func (s *Storage) GetAllTitles(ctx context.Context) ([]*model.Title, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	titles := make([]*model.Title, 0, len(s.titles))
	for _, title := range s.titles {
		titles = append(titles, title)
	}
	sortTitles(titles)
	return titles, nil
}

// sortTitles orders by upvotes descending, then text for a stable listing
func sortTitles(titles []*model.Title) {
	sort.Slice(titles, func(i, j int) bool {
		if titles[i].Upvotes != titles[j].Upvotes {
			return titles[i].Upvotes > titles[j].Upvotes
		}
		return titles[i].Text < titles[j].Text
	})
}

// Comment operations

func (s *Storage) AddComment(ctx context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stories[comment.StoryID]; !ok {
		return model.ErrStoryNotFound
	}
	s.comments[comment.StoryID] = append(s.comments[comment.StoryID], comment)
	return nil
}

func (s *Storage) GetComments(ctx context.Context, storyID model.StoryID) ([]*model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.stories[storyID]; !ok {
		return nil, model.ErrStoryNotFound
	}
	comments := make([]*model.Comment, len(s.comments[storyID]))
	copy(comments, s.comments[storyID])
	return comments, nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}
