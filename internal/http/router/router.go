package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gestorcrm/quotes-api/internal/config"
	"github.com/gestorcrm/quotes-api/internal/http/handler"
	"github.com/gestorcrm/quotes-api/internal/http/middleware"
	"github.com/gestorcrm/quotes-api/internal/storage"
)

type Router struct {
	cfg                *config.Config
	logger             *zap.Logger
	store              storage.Store
	rateLimiter        *middleware.RateLimiter
	clientHandler      *handler.ClientHandler
	productHandler     *handler.ProductHandler
	supplierHandler    *handler.SupplierHandler
	quoteHandler       *handler.QuoteHandler
	comparisonHandler  *handler.ComparisonHandler
	maintenanceHandler *handler.MaintenanceHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	store storage.Store,
	rateLimiter *middleware.RateLimiter,
	clientHandler *handler.ClientHandler,
	productHandler *handler.ProductHandler,
	supplierHandler *handler.SupplierHandler,
	quoteHandler *handler.QuoteHandler,
	comparisonHandler *handler.ComparisonHandler,
	maintenanceHandler *handler.MaintenanceHandler,
) *Router {
	return &Router{
		cfg:                cfg,
		logger:             logger,
		store:              store,
		rateLimiter:        rateLimiter,
		clientHandler:      clientHandler,
		productHandler:     productHandler,
		supplierHandler:    supplierHandler,
		quoteHandler:       quoteHandler,
		comparisonHandler:  comparisonHandler,
		maintenanceHandler: maintenanceHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Store health check (readiness probe)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := rt.store.Ping(r.Context()); err != nil {
			rt.logger.Error("Store health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "store",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "store",
		})
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Clients
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", rt.clientHandler.List)
			r.Post("/", rt.clientHandler.Create)
			r.Get("/{id}", rt.clientHandler.GetByID)
			r.Put("/{id}", rt.clientHandler.Update)
			r.Delete("/{id}", rt.clientHandler.Delete)
		})

		// Products
		r.Route("/products", func(r chi.Router) {
			r.Get("/", rt.productHandler.List)
			r.Post("/", rt.productHandler.Create)
			r.Get("/{id}", rt.productHandler.GetByID)
			r.Put("/{id}", rt.productHandler.Update)
			r.Delete("/{id}", rt.productHandler.Delete)
		})

		// Suppliers
		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", rt.supplierHandler.List)
			r.Post("/", rt.supplierHandler.Create)
			r.Get("/{id}", rt.supplierHandler.GetByID)
			r.Put("/{id}", rt.supplierHandler.Update)
			r.Delete("/{id}", rt.supplierHandler.Delete)
		})

		// Quotes
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", rt.quoteHandler.List)
			r.Post("/", rt.quoteHandler.Create)
			r.Post("/compare", rt.comparisonHandler.Compare)
			r.Get("/{id}", rt.quoteHandler.GetByID)
			r.Put("/{id}", rt.quoteHandler.Update)
			r.Delete("/{id}", rt.quoteHandler.Delete)

			// Lifecycle
			r.Post("/{id}/accept", rt.quoteHandler.Accept)

			// Items
			r.Post("/{id}/items", rt.quoteHandler.AddItem)
			r.Put("/{id}/items/{itemId}", rt.quoteHandler.UpdateItem)
			r.Delete("/{id}/items/{itemId}", rt.quoteHandler.RemoveItem)
		})

		// Maintenance
		r.Post("/maintenance/reconcile", rt.maintenanceHandler.Reconcile)
	})

	return r
}
