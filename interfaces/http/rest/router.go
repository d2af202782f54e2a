package rest

import (
	"net/http"

	"socialgraph/application/commands/bus"
	"socialgraph/application/ports"
	querybus "socialgraph/application/queries/bus"
	"socialgraph/interfaces/http/rest/handlers"
	"socialgraph/interfaces/http/rest/middleware"
	"socialgraph/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	store      ports.GraphStore
	metrics    *observability.Collector
	enableCORS bool
	logger     *zap.Logger
}

// NewRouter creates a new router instance. A nil metrics collector disables /metrics.
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	store ports.GraphStore,
	metrics *observability.Collector,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		store:      store,
		metrics:    metrics,
		enableCORS: enableCORS,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger, rt.metrics))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		graphHandler := handlers.NewGraphHandler(rt.commandBus, rt.queryBus, rt.logger)
		r.Route("/graph", func(r chi.Router) {
			r.Get("/", graphHandler.GetGraphData)
			r.Get("/mutual", graphHandler.MutualConnections)
			r.Get("/communities", graphHandler.Communities)
			r.Get("/influential", graphHandler.MostInfluential)
			r.Post("/reload", graphHandler.Reload)
		})

		nodeHandler := handlers.NewNodeHandler(rt.queryBus, rt.logger)
		r.Get("/nodes/{nodeID}", nodeHandler.GetNode)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready only once a graph has been published successfully
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	snapshot, ok := rt.store.Current(req.Context())
	switch {
	case ok && snapshot.Ready():
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	case ok && snapshot.Status == ports.StatusFailed:
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"failed"}`))
	default:
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"loading"}`))
	}
}
