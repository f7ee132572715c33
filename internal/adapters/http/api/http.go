// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/cubestand/internal/domain/types"
	"github.com/okian/cubestand/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	Profile(ctx context.Context, id string) (types.Profile, error)
	Compare(ctx context.Context, idA, idB string) (types.Comparison, error)
	Events() []types.EventInfo
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	eventsHandler     *EventsHandler
	competitorHandler *CompetitorHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		eventsHandler:     NewEventsHandler(deps),
		competitorHandler: NewCompetitorHandler(deps),
	}
}

// Register attaches all API routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/events", MetricsMiddleware(s.eventsHandler.HandleListEvents, "events"))
	r.Get("/competitors/{id}", MetricsMiddleware(s.competitorHandler.HandleGetProfile, "competitors"))
	r.Get("/compare/{a}/{b}", MetricsMiddleware(s.competitorHandler.HandleCompare, "compare"))
}

// RouterOptions configures NewRouter.
type RouterOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	Logger         logger.Logger
}

// NewRouter builds the chi router with the shared middleware stack and
// CORS policy. Callers register routes on the returned router.
func NewRouter(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if opts.Logger != nil {
		r.Use(RequestLogger(opts.Logger))
	}
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(RequestDeadline(opts.RequestTimeout))
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	return r
}
