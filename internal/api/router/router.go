// Package router wires every HTTP endpoint onto a chi mux.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/giovanipessoa/next-clisphere/internal/clients"
	"github.com/giovanipessoa/next-clisphere/internal/dashboard"
	"github.com/giovanipessoa/next-clisphere/internal/events"
	httpmiddleware "github.com/giovanipessoa/next-clisphere/internal/http/middleware"
	"github.com/giovanipessoa/next-clisphere/internal/observability/metrics"
	"github.com/giovanipessoa/next-clisphere/internal/services"
	"github.com/giovanipessoa/next-clisphere/internal/workspace"
	"github.com/giovanipessoa/next-clisphere/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger             *logging.Logger
	ClientsHandler     *clients.Handler
	EventsHandler      *events.Handler
	ServicesHandler    *services.Handler
	DashboardHandler   *dashboard.Handler
	SettingsHandler    *workspace.Handler
	Metrics            *metrics.APIMetrics
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.Metrics != nil {
		r.Use(httpmiddleware.Metrics(cfg.Metrics))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Route("/client", func(r chi.Router) {
			r.Post("/", cfg.ClientsHandler.Create)
			r.Get("/", cfg.ClientsHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.ClientsHandler.Get)
				r.Put("/", cfg.ClientsHandler.Update)
				r.Delete("/", cfg.ClientsHandler.Delete)
			})
		})

		api.Route("/event", func(r chi.Router) {
			r.Post("/", cfg.EventsHandler.Create)
			r.Get("/", cfg.EventsHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.EventsHandler.Get)
				r.Put("/", cfg.EventsHandler.Update)
				r.Delete("/", cfg.EventsHandler.Delete)
			})
		})

		api.Route("/service", func(r chi.Router) {
			r.Post("/", cfg.ServicesHandler.Create)
			r.Get("/", cfg.ServicesHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.ServicesHandler.Get)
				r.Put("/", cfg.ServicesHandler.Update)
				r.Delete("/", cfg.ServicesHandler.Delete)
			})
		})

		if cfg.DashboardHandler != nil {
			api.Get("/dashboard/stats", cfg.DashboardHandler.GetStats)
		}
		if cfg.SettingsHandler != nil {
			api.Get("/settings", cfg.SettingsHandler.Get)
			api.Put("/settings", cfg.SettingsHandler.Update)
		}
	})

	return r
}
