package routes

import (
	"github.com/go-chi/chi/v5"

	authhandlers "Hearth/internal/api/handlers/auth"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/users"
)

// RegisterAuthRoutes registers registration, login, and logout
// endpoints on the router.
func RegisterAuthRoutes(r chi.Router, service *users.Service, authMiddleware *middleware.AuthMiddleware) {
	handler := authhandlers.NewHandler(service, authMiddleware)

	r.Post("/auth/register", handler.HandleRegister)
	r.Post("/auth/login", handler.HandleLogin)
	r.Post("/auth/logout", handler.HandleLogout)
	r.With(authMiddleware.RequireAuth).Get("/auth/me", handler.HandleMe)
}
