package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/storyloom/storyloom/internal/api/apierr"
	"github.com/storyloom/storyloom/internal/api/request"
	"github.com/storyloom/storyloom/internal/api/response"
	"github.com/storyloom/storyloom/internal/model"
	"github.com/storyloom/storyloom/internal/registry"
	"github.com/storyloom/storyloom/internal/services/archive"
)

// ArchiveHandler handles archived story endpoints
type ArchiveHandler struct {
	archive   *archive.Service
	registrar *registry.Registrar
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(service *archive.Service, registrar *registry.Registrar) *ArchiveHandler {
	return &ArchiveHandler{
		archive:   service,
		registrar: registrar,
	}
}

func storyID(r *http.Request) model.StoryID {
	return model.StoryID(mux.Vars(r)["story_id"])
}

func listLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

// GetLatest handles GET /api/v1/stories/latest
func (h *ArchiveHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	stories, err := h.archive.GetLatestStories(r.Context(), listLimit(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StoriesFromModel(stories))
}

// GetMostLiked handles GET /api/v1/stories/most-liked
func (h *ArchiveHandler) GetMostLiked(w http.ResponseWriter, r *http.Request) {
	stories, err := h.archive.GetMostLikedStories(r.Context(), listLimit(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StoriesFromModel(stories))
}

// GetStory handles GET /api/v1/stories/{story_id}
func (h *ArchiveHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	story, err := h.archive.GetStory(r.Context(), storyID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StoryFromModel(story))
}

// Like handles POST /api/v1/stories/{story_id}/like
func (h *ArchiveHandler) Like(w http.ResponseWriter, r *http.Request) {
	id := storyID(r)
	dispatch(w, r, h.registrar, http.StatusOK, func() (any, error) {
		return nil, h.archive.LikeStory(r.Context(), id)
	})
}

// SuggestTitle handles POST /api/v1/stories/{story_id}/titles
func (h *ArchiveHandler) SuggestTitle(w http.ResponseWriter, r *http.Request) {
	var req request.SuggestTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	id := storyID(r)
	dispatch(w, r, h.registrar, http.StatusCreated, func() (any, error) {
		return nil, h.archive.SuggestTitle(r.Context(), id, req.Title)
	})
}

// UpvoteTitle handles POST /api/v1/stories/{story_id}/titles/upvote
func (h *ArchiveHandler) UpvoteTitle(w http.ResponseWriter, r *http.Request) {
	var req request.UpvoteTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	id := storyID(r)
	dispatch(w, r, h.registrar, http.StatusOK, func() (any, error) {
		return nil, h.archive.UpvoteTitle(r.Context(), id, req.Title)
	})
}

// GetTitles handles GET /api/v1/stories/{story_id}/titles
func (h *ArchiveHandler) GetTitles(w http.ResponseWriter, r *http.Request) {
	titles, err := h.archive.GetTitlesForStory(r.Context(), storyID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TitlesFromModel(titles))
}

// GetAllTitles handles GET /api/v1/titles
func (h *ArchiveHandler) GetAllTitles(w http.ResponseWriter, r *http.Request) {
	titles, err := h.archive.GetAllTitles(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TitlesFromModel(titles))
}

// Comment handles POST /api/v1/stories/{story_id}/comments
func (h *ArchiveHandler) Comment(w http.ResponseWriter, r *http.Request) {
	var req request.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	id := storyID(r)
	dispatch(w, r, h.registrar, http.StatusCreated, func() (any, error) {
		comment, err := h.archive.CommentAsGuest(r.Context(), id, req.DisplayName, req.Text)
		if err != nil {
			return nil, err
		}
		return response.CommentFromModel(comment), nil
	})
}

// GetComments handles GET /api/v1/stories/{story_id}/comments
func (h *ArchiveHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.archive.GetStoryComments(r.Context(), storyID(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.CommentsFromModel(comments))
}
