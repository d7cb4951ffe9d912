package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/illodev/technical-test-go/internal/apperr"
	"github.com/illodev/technical-test-go/internal/auth"
	"github.com/illodev/technical-test-go/internal/services"
	"github.com/illodev/technical-test-go/internal/store"
	"github.com/illodev/technical-test-go/internal/validate"
)

// PostHandler provides HTTP handlers for posts.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler constructs a handler with the provided service.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRouter registers post routes on the given router. Reads are
// public; writes require authentication.
func PostRouter(r chi.Router, postService *services.PostService, tokens *auth.TokenService) {
	handler := NewPostHandler(postService)

	authenticated := RequireAuth(tokens, auth.AnyAuthenticated)

	r.Get("/", handler.ListPosts)
	r.With(authenticated).Post("/", handler.CreatePost)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", handler.GetPost)
		r.With(authenticated).Put("/", handler.UpdatePost)
		r.With(authenticated).Delete("/", handler.DeletePost)
	})
}

// CreatePostRequest carries a caller-supplied authorId that is not
// checked against the authenticated caller.
type CreatePostRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
	AuthorID  string `json:"authorId"`
}

type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
	AuthorID  *string `json:"authorId"`
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, apperr.Domain("Invalid request body"))
		return
	}

	var violations validate.Violations
	validate.String(&violations, "title", req.Title, titleRules)
	validate.String(&violations, "content", req.Content, contentRules)
	validate.String(&violations, "authorId", req.AuthorID, validate.StringRules{Required: true})
	if req.Published == nil {
		violations.Add("published", "is required")
	}
	if err := violations.Err(validationFailedMessage); err != nil {
		writeAPIError(w, err)
		return
	}

	post, err := h.postService.Create(r.Context(), services.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: *req.Published,
		AuthorID:  req.AuthorID,
	})
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.postService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w, "Post not found")
			return
		}
		writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, apperr.Domain("Invalid request body"))
		return
	}

	var violations validate.Violations
	if req.Title != nil {
		validate.String(&violations, "title", *req.Title, titleRules)
	}
	if req.Content != nil {
		validate.String(&violations, "content", *req.Content, contentRules)
	}
	if err := violations.Err(validationFailedMessage); err != nil {
		writeAPIError(w, err)
		return
	}

	post, err := h.postService.Update(r.Context(), id, services.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
		AuthorID:  req.AuthorID,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w, "Post not found")
			return
		}
		writeAPIError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.postService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w, "Post not found")
			return
		}
		writeAPIError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
