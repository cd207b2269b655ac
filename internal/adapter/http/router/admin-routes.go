package router

import (
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/adapter/http/handler"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/middleware"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/go-chi/chi/v5"
)

// SetupAdminRoutes registers the moderation routes behind JWTAuth.
func SetupAdminRoutes(mux *chi.Mux, h *handler.AdminHandler, verifier middleware.TokenVerifier, log *logger.Logger) {
	mux.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(verifier, log.Named("JWTAuth")))

		r.Get("/api/admin/listings", h.HandleListListings)
		r.Post("/api/admin/listings", h.HandleCreateListing)
		r.Put("/api/admin/listings/{id}", h.HandleEditListing)
		r.Post("/api/admin/listings/{id}/approve", h.HandleApproveListing)
		r.Post("/api/admin/listings/{id}/reject", h.HandleRejectListing)
		r.Delete("/api/admin/listings/{id}", h.HandleDeleteListing)

		r.Get("/api/admin/messages", h.HandleListMessages)
		r.Delete("/api/admin/messages/{id}", h.HandleDeleteMessage)
	})
}
