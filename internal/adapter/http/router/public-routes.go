package router

import (
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/adapter/http/handler"
	"github.com/go-chi/chi/v5"
)

// SetupPublicRoutes registers the routes reachable without a token.
func SetupPublicRoutes(mux *chi.Mux, listings *handler.ListingHandler, contact *handler.ContactHandler, auth *handler.AuthHandler) {
	mux.Get("/api/listings", listings.HandleBrowseListings)
	mux.Post("/api/listings", listings.HandleSubmitListing)
	mux.Post("/api/contact", contact.HandleSubmitContact)
	mux.Post("/api/admin/session", auth.HandleCreateSession)
}
