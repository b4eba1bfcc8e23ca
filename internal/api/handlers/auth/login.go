// Package auth provides the login, logout, and registration handlers.
// Successful logins establish both credentials the middleware accepts:
// a session cookie for browsers and a Bearer token for API clients.
package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/users"
)

// Handler handles authentication endpoints
type Handler struct {
	service *users.Service
	auth    *middleware.AuthMiddleware
}

// NewHandler creates a new auth handler
func NewHandler(service *users.Service, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, auth: auth}
}

// HandleRegister handles POST /auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Handle   string `json:"handle"`
		Nickname string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	user, err := h.service.Register(r.Context(), req.Handle, req.Nickname)
	if err != nil {
		if errors.Is(err, users.ErrInvalidUser) {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
			return
		}
		log.Printf("User registration error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to register user")
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"userId":   user.ID,
		"handle":   user.Handle,
		"nickname": user.Nickname,
	})
}

// HandleLogin handles POST /auth/login
// Sets the session cookie and returns a Bearer token.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Handle string `json:"handle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Handle == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "handle is required")
		return
	}

	user, err := h.service.GetUserByHandle(r.Context(), req.Handle)
	if err != nil {
		log.Printf("Login lookup error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to log in")
		return
	}
	if user == nil {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationFailed", "Unknown handle")
		return
	}

	if err := h.auth.EstablishSession(w, r, user.ID); err != nil {
		log.Printf("Failed to establish session: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to log in")
		return
	}

	token, err := h.auth.MintToken(user.ID)
	if err != nil {
		log.Printf("Failed to mint token: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to log in")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"userId": user.ID,
		"token":  token,
	})
}

// HandleLogout handles POST /auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.ClearSession(w, r); err != nil {
		log.Printf("Failed to clear session: %v", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe handles GET /auth/me
// Returns the authenticated user's profile.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		log.Printf("Profile lookup error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Failed to load profile")
		return
	}
	if user == nil {
		// Token outlived the account.
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Account no longer exists")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"userId":           user.ID,
		"handle":           user.Handle,
		"nickname":         user.Nickname,
		"profileImagePath": user.ProfileImagePath,
	})
}
