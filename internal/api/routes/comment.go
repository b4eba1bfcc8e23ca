package routes

import (
	"github.com/go-chi/chi/v5"

	commenthandlers "Hearth/internal/api/handlers/comments"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/comments"
)

// RegisterCommentRoutes registers comment thread and CRUD endpoints on
// the router.
func RegisterCommentRoutes(r chi.Router, service *comments.Service, authMiddleware *middleware.AuthMiddleware) {
	getHandler := commenthandlers.NewGetCommentHandler(service)
	listHandler := commenthandlers.NewListCommentsHandler(service)
	createHandler := commenthandlers.NewCreateCommentHandler(service)
	deleteHandler := commenthandlers.NewDeleteCommentHandler(service)

	r.With(authMiddleware.OptionalAuth).Get("/contents/{contentID}/comments", listHandler.HandleListThread)
	r.With(authMiddleware.OptionalAuth).Get("/groups/{groupID}/comments", listHandler.HandleListGroupComments)
	r.With(authMiddleware.OptionalAuth).Get("/comments/{commentID}", getHandler.HandleGetComment)

	r.With(authMiddleware.RequireAuth).Post("/contents/{contentID}/comments", createHandler.HandleCreateComment)
	r.With(authMiddleware.RequireAuth).Delete("/comments/{commentID}", deleteHandler.HandleDeleteComment)
}
