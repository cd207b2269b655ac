package router

import (
	"net/http"

	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/adapter/http/handler"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/middleware"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/logger"
	"github.com/ayyavumurugesan-construction/Ayyavu-Construction/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps are the handlers and collaborators the router wires together.
type Deps struct {
	Listings       *handler.ListingHandler
	Admin          *handler.AdminHandler
	Contact        *handler.ContactHandler
	Auth           *handler.AuthHandler
	Verifier       middleware.TokenVerifier
	Metrics        *metrics.MetricsManager
	AllowedOrigins []string
	Logger         *logger.Logger
}

// New builds the public and admin API.
func New(d Deps) *chi.Mux {
	mux := chi.NewRouter()

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux.Use(middleware.RequestID)
	mux.Use(middleware.RequestLogger(d.Logger.Named("http")))
	if d.Metrics != nil {
		mux.Use(middleware.Metrics(d.Metrics))
	}
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	SetupPublicRoutes(mux, d.Listings, d.Contact, d.Auth)
	SetupAdminRoutes(mux, d.Admin, d.Verifier, d.Logger)
	return mux
}
