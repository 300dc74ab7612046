package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devconnector/backend/internal/middleware"
	"github.com/devconnector/backend/internal/models"
	"github.com/devconnector/backend/internal/services"
)

type PostHandler struct {
	postService services.PostService
	userService services.UserService
}

func NewPostHandler(postService services.PostService, userService services.UserService) *PostHandler {
	return &PostHandler{
		postService: postService,
		userService: userService,
	}
}

// Create makes a new post, capturing the author's current name and avatar.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	author, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		if err == services.ErrUserNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load user"))
		return
	}

	post, err := h.postService.Create(ctx, author, &req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create post"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(post))
}

// List returns all posts, newest first.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	posts, err := h.postService.List(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list posts"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(posts))
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	post, err := h.postService.GetByID(ctx, postID)
	if err != nil {
		if err == services.ErrPostNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

// Delete removes a post. Only the owner may delete it.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postID")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	if err := h.postService.Delete(ctx, userID, postID); err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		case services.ErrNotPostOwner:
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("User not authorized"))
		default:
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete post"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewMessageResponse("Post removed"))
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postID")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	likes, err := h.postService.Like(ctx, postID, userID)
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		case services.ErrAlreadyLiked:
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Post already liked"))
		default:
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to like post"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(likes))
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	postID := chi.URLParam(r, "postID")

	ctx, cancel := contextWithTimeout(r.Context())
	defer cancel()

	likes, err := h.postService.Unlike(ctx, postID, userID)
	if err != nil {
		switch err {
		case services.ErrPostNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		case services.ErrNotYetLiked:
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Post has not yet been liked"))
		default:
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to unlike post"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(likes))
}
