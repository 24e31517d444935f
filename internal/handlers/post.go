package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/miniblog/apiserver/internal/services"
	"github.com/miniblog/apiserver/internal/store"
	"github.com/miniblog/apiserver/types"
)

// PostHandler provides HTTP handlers for posts.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler constructs a handler with the provided service.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRouter registers post routes on the given router. All routes sit
// behind the auth gate.
func PostRouter(r chi.Router, postService *services.PostService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewPostHandler(postService)

	r.Use(authMiddleware)
	r.Get("/", handler.ListPosts)
	r.Post("/", handler.CreatePost)
	r.Delete("/{postID}", handler.DeletePost)
}

// ListPosts returns every post. The identity on the context is required by
// the gate but does not filter results; posts are global.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	if _, err := identityFromContext(r.Context()); err != nil {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}

	posts, err := h.postService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to retrieve posts")
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// CreatePost stores a new post with a server-assigned id and timestamp.
// Any client-supplied id or timestamp is ignored.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Title == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	post := types.Post{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	created, err := h.postService.Create(r.Context(), post)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// DeletePost removes the post named by the path parameter.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "postID")

	if err := h.postService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
