package routes

import (
	"github.com/go-chi/chi/v5"

	contenthandlers "Hearth/internal/api/handlers/contents"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/contents"
	"Hearth/internal/core/likes"
)

// RegisterContentRoutes registers the content feed, CRUD, and like
// endpoints on the router.
func RegisterContentRoutes(r chi.Router, contentService *contents.Service, likeService *likes.Service, authMiddleware *middleware.AuthMiddleware) {
	getHandler := contenthandlers.NewGetContentHandler(contentService)
	listHandler := contenthandlers.NewListContentsHandler(contentService)
	createHandler := contenthandlers.NewCreateContentHandler(contentService)
	updateHandler := contenthandlers.NewUpdateContentHandler(contentService)
	deleteHandler := contenthandlers.NewDeleteContentHandler(contentService)
	likeHandler := contenthandlers.NewLikeContentHandler(likeService)

	// Reads work for anonymous and authenticated users alike
	r.With(authMiddleware.OptionalAuth).Get("/groups/{groupID}/contents", listHandler.HandleListContents)
	r.With(authMiddleware.OptionalAuth).Get("/contents/{contentID}", getHandler.HandleGetContent)

	// Writes require authentication
	r.With(authMiddleware.RequireAuth).Post("/groups/{groupID}/contents", createHandler.HandleCreateContent)
	r.With(authMiddleware.RequireAuth).Patch("/contents/{contentID}", updateHandler.HandleUpdateContent)
	r.With(authMiddleware.RequireAuth).Delete("/contents/{contentID}", deleteHandler.HandleDeleteContent)
	r.With(authMiddleware.RequireAuth).Put("/contents/{contentID}/like", likeHandler.HandleLike)
	r.With(authMiddleware.RequireAuth).Delete("/contents/{contentID}/like", likeHandler.HandleUnlike)
}
