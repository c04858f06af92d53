package rest

import (
	"net/http"

	"alchemy-backend/application/services"
	"alchemy-backend/infrastructure/config"
	"alchemy-backend/interfaces/http/rest/handlers"
	"alchemy-backend/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	fusion  *services.FusionService
	library *services.LibraryService
	graphs  *services.GraphService
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	fusion *services.FusionService,
	library *services.LibraryService,
	graphs *services.GraphService,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		fusion:  fusion,
		library: library,
		graphs:  graphs,
		cfg:     cfg,
		logger:  logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"http://localhost:*", "https://*"},
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// Element endpoints
	elementHandler := handlers.NewElementHandler(rt.fusion, rt.library, rt.cfg, rt.logger)
	router.Route("/elements", func(r chi.Router) {
		r.Get("/", elementHandler.GetElements)
		r.Post("/", elementHandler.FuseElements)
		r.Delete("/", elementHandler.ResetElements)
	})

	// Discovery graph endpoint for visualization
	router.Get("/graph", handlers.NewGraphHandler(rt.graphs, rt.logger).GetGraph)

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
