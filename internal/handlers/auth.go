package handlers

import (
	"errors"
	"net/http"

	"github.com/vaughan-dsouza/blogspot/internal/models"
	"github.com/vaughan-dsouza/blogspot/internal/services"
	"github.com/vaughan-dsouza/blogspot/internal/utils"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// -------------- REGISTER ---------------------

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	resp, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, "register", err, "")
		return
	}

	utils.JSON(w, http.StatusCreated, resp)
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	resp, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, "login", err, "")
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// -------------- ME (protected) ----------------

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	user, err := h.svc.Me(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeError(w, r, "me", err, "")
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
