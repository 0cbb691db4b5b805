// Package httpapi wires the HTTP surface: router, middleware, handlers.
package httpapi

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kislikjeka/osmotax/internal/transport/httpapi/handler"
	"github.com/kislikjeka/osmotax/internal/transport/httpapi/middleware"
	"github.com/kislikjeka/osmotax/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger             *logger.Logger
	AllowedOrigins     []string
	HealthHandler      *handler.HealthHandler
	TransactionHandler *handler.TransactionHandler
	AddressBookHandler *handler.AddressBookHandler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit()) // Rate limiting: 100 req/s with burst of 20

	// Health check endpoints
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
		r.Get("/health/detailed", cfg.HealthHandler.GetHealthDetailed)
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.TransactionHandler != nil {
			r.Post("/addresses/validate", cfg.TransactionHandler.ValidateAddress)

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", cfg.TransactionHandler.GetTransactions)
				r.Get("/export", cfg.TransactionHandler.ExportTransactions)
				r.Get("/{hash}", cfg.TransactionHandler.GetTransaction)
			})
		}

		if cfg.AddressBookHandler != nil {
			r.Route("/addressbook", func(r chi.Router) {
				r.Get("/", cfg.AddressBookHandler.ListEntries)
				r.Post("/", cfg.AddressBookHandler.SaveEntry)
				r.Put("/{id}", cfg.AddressBookHandler.UpdateEntry)
				r.Post("/{id}/viewed", cfg.AddressBookHandler.MarkViewed)
				r.Delete("/{id}", cfg.AddressBookHandler.DeleteEntry)
			})
		}
	})

	return r
}
