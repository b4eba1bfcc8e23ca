package routes

import (
	"github.com/go-chi/chi/v5"

	grouphandlers "Hearth/internal/api/handlers/groups"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/groups"
)

// RegisterGroupRoutes registers group and membership endpoints on the
// router.
func RegisterGroupRoutes(r chi.Router, service *groups.Service, authMiddleware *middleware.AuthMiddleware) {
	handler := grouphandlers.NewGroupHandler(service)

	r.With(authMiddleware.OptionalAuth).Get("/groups/{groupID}", handler.HandleGetGroup)
	r.With(authMiddleware.OptionalAuth).Get("/groups/{groupID}/members", handler.HandleListMembers)

	r.With(authMiddleware.RequireAuth).Post("/groups", handler.HandleCreateGroup)
	r.With(authMiddleware.RequireAuth).Post("/groups/{groupID}/members", handler.HandleJoinGroup)
}
