package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaughan-dsouza/blogspot/internal/models"
	"github.com/vaughan-dsouza/blogspot/internal/services"
	"github.com/vaughan-dsouza/blogspot/internal/utils"
)

type PostHandler struct {
	svc *services.PostService
}

func NewPostHandler(svc *services.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// ---------------------- LIST ----------------------

func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeError(w, r, "list posts", err, "")
		return
	}

	utils.JSON(w, http.StatusOK, posts)
}

// ---------------------- GET ONE ----------------------

func (h *PostHandler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	post, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "get post", err, "")
		return
	}

	utils.JSON(w, http.StatusOK, post)
}

// ---------------------- BY USER ----------------------

// GetMyPosts lists the caller's own posts.
func (h *PostHandler) GetMyPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	h.writeUserPosts(w, r, id.ID)
}

// GetUserPosts lists any user's posts by id; no authentication required.
func (h *PostHandler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	h.writeUserPosts(w, r, chi.URLParam(r, "userId"))
}

func (h *PostHandler) writeUserPosts(w http.ResponseWriter, r *http.Request, userID string) {
	posts, err := h.svc.ListByOwner(r.Context(), userID)
	if err != nil {
		writeError(w, r, "list user posts", err, "")
		return
	}

	utils.JSON(w, http.StatusOK, posts)
}

// ---------------------- CREATE ----------------------

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var body models.PostInput
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	post, err := h.svc.Create(r.Context(), id.ID, body)
	if err != nil {
		writeError(w, r, "create post", err, "")
		return
	}

	utils.JSON(w, http.StatusCreated, post)
}

// ---------------------- UPDATE ----------------------

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var body models.PostInput
	if err := utils.DecodeJSON(w, r, &body); err != nil {
		return
	}

	post, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), id.ID, body)
	if err != nil {
		writeError(w, r, "update post", err, "Not authorized to update this post")
		return
	}

	utils.JSON(w, http.StatusOK, post)
}

// ---------------------- DELETE ----------------------

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), id.ID); err != nil {
		writeError(w, r, "delete post", err, "Not authorized to delete this post")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}
