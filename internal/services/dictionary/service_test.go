package dictionary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestIsNotLoadedByDefault() {
	s.False(s.service.IsLoaded())
	s.Equal(0, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadWords() {
	err := s.service.LoadWords([]string{"apple", "banana", "cherry"})
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	s.Equal(3, s.service.WordCount())
}

func (s *ServiceSuite) TestIsValidWordAfterLoading() {
	_ = s.service.LoadWords([]string{"apple", "banana", "cherry"})

	s.True(s.service.IsValidWord("apple"))
	s.True(s.service.IsValidWord("banana"))
	s.False(s.service.IsValidWord("grape"))
}

func (s *ServiceSuite) TestIsValidWordCaseInsensitive() {
	_ = s.service.LoadWords([]string{"Apple", "BANANA"})

	s.True(s.service.IsValidWord("apple"))
	s.True(s.service.IsValidWord("APPLE"))
	s.True(s.service.IsValidWord("banana"))
}

func (s *ServiceSuite) TestIsValidWordRejectsMultipleTokens() {
	_ = s.service.LoadWords([]string{"apple"})

	s.False(s.service.IsValidWord("apple banana"))
	s.False(s.service.IsValidWord(""))
	s.False(s.service.IsValidWord("   "))
}

func (s *ServiceSuite) TestIsValidWordTrimsWhitespace() {
	_ = s.service.LoadWords([]string{"apple"})

	s.True(s.service.IsValidWord("  apple  "))
}

func (s *ServiceSuite) TestIsValidWordBeforeLoading() {
	s.False(s.service.IsValidWord("apple"))
}

func (s *ServiceSuite) TestLoadFromStorage() {
	err := s.storage.SaveDictionaryWords(s.ctx, []string{"cat", "dog"})
	s.Require().NoError(err)

	err = s.service.LoadFromStorage(s.ctx)
	s.Require().NoError(err)

	s.True(s.service.IsValidWord("cat"))
	s.True(s.service.IsValidWord("dog"))
	s.False(s.service.IsValidWord("fish"))
}

func (s *ServiceSuite) TestLoadFromStorageNotLoaded() {
	err := s.service.LoadFromStorage(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
	s.False(s.service.IsLoaded())
}
