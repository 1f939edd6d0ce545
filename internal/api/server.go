// Package api provides the HTTP API server and handlers for tablelog.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tablelog/tablelog-server/internal/config"
	"github.com/tablelog/tablelog-server/internal/places"
	"github.com/tablelog/tablelog-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store         *store.Store
	services      *Services
	router        chi.Router
	api           huma.API
	logger        *slog.Logger
	placesLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, cfg config.ServerConfig, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	if services.Places == nil {
		services.Places = places.New(places.Config{}, logger)
	}

	s := &Server{
		store:         st,
		services:      services,
		router:        router,
		logger:        logger,
		placesLimiter: NewRateLimiter(60, time.Minute, 20),
	}

	// chi requires middleware before any route, and humachi.New registers
	// the OpenAPI routes.
	s.setupMiddleware(cfg.CORSOrigins)

	humaConfig := huma.DefaultConfig("Tablelog API", "1.0.0")
	humaConfig.Info.Description = "Restaurant discovery: profiles, follows, diaries, lists and cached place data."
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerDiaryRoutes()
	s.registerListRoutes()
	s.registerRestaurantRoutes()
	s.registerArtifactRoutes()
	s.registerPlacesRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, for OpenAPI export and tests.
func (s *Server) API() huma.API {
	return s.api
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.placesLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(corsOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(corsMiddleware(corsOrigins))
	s.router.Use(identityMiddleware)
}
