package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/vaughan-dsouza/blogspot/internal/models"
	"github.com/vaughan-dsouza/blogspot/internal/services"
	"github.com/vaughan-dsouza/blogspot/internal/utils"
)

type Handler struct {
	Auth  *AuthHandler
	Posts *PostHandler
}

func NewHandler(auth *services.AuthService, posts *services.PostService) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(auth),
		Posts: NewPostHandler(posts),
	}
}

// writeError maps a service error to a status code. Anything outside the
// taxonomy is logged and reported as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, op string, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		msg := "Please enter all fields"
		var fe *models.FieldError
		if errors.As(err, &fe) {
			msg = fe.Message()
		}
		utils.JSONError(w, http.StatusBadRequest, msg)
	case errors.Is(err, models.ErrConflict):
		utils.JSONError(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, models.ErrUnauthorized):
		utils.JSONError(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, models.ErrForbidden):
		utils.JSONError(w, http.StatusForbidden, forbiddenMsg)
	case errors.Is(err, models.ErrNotFound):
		utils.JSONError(w, http.StatusNotFound, "Post not found")
	default:
		log.Printf("%s %s: %s: %v", r.Method, r.URL.Path, op, err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error")
	}
}
