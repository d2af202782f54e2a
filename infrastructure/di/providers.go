package di

import (
	"socialgraph/application/commands/bus"
	commandhandlers "socialgraph/application/commands/handlers"
	"socialgraph/application/ports"
	querybus "socialgraph/application/queries/bus"
	queryhandlers "socialgraph/application/queries/handlers"
	"socialgraph/application/services"
	domainservices "socialgraph/domain/services"
	"socialgraph/infrastructure/config"
	"socialgraph/infrastructure/persistence/memory"
	"socialgraph/infrastructure/swapi"
	"socialgraph/pkg/observability"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "socialgraph"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", serviceName)), nil
}

// ProvideMetrics creates the prometheus collector, or nil when metrics are disabled
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector(serviceName)
}

// ProvideTracer creates the application tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer(serviceName)
}

// ProvidePeopleSource creates the remote people client
func ProvidePeopleSource(cfg *config.Config, logger *zap.Logger) (ports.PeopleSource, error) {
	clientCfg := swapi.DefaultClientConfig()
	clientCfg.BaseURL = cfg.SourceURL
	clientCfg.Timeout = cfg.HTTPTimeout()
	clientCfg.FailureRatio = cfg.BreakerFailRatio
	clientCfg.OpenTimeout = cfg.BreakerOpenTimeout()

	client, err := swapi.NewClient(clientCfg, logger.Named("swapi"))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ProvideGraphStore creates the in-memory graph store
func ProvideGraphStore(logger *zap.Logger) ports.GraphStore {
	return memory.NewGraphStore(logger)
}

// ProvideSynthesisOptions maps configuration onto link synthesis options
func ProvideSynthesisOptions(cfg *config.Config) domainservices.SynthesisOptions {
	return domainservices.SynthesisOptions{
		MinLinks:    cfg.MinLinks,
		MaxLinks:    cfg.MaxLinks,
		MaxAttempts: cfg.MaxAttempts,
		Seed:        cfg.LinkSeed,
	}
}

// ProvideGraphLoader creates the graph loader
func ProvideGraphLoader(
	cfg *config.Config,
	source ports.PeopleSource,
	store ports.GraphStore,
	opts domainservices.SynthesisOptions,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *services.GraphLoader {
	return services.NewGraphLoader(source, store, opts, cfg.PageCount, metrics, tracer, logger.Named("loader"))
}

// ProvideAnalyticsService creates the graph analytics service
func ProvideAnalyticsService() *domainservices.GraphAnalyticsService {
	return domainservices.NewGraphAnalyticsService()
}

// ProvideCommandBus creates and configures the command bus
func ProvideCommandBus(loader *services.GraphLoader, logger *zap.Logger) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(bus.LoggingMiddleware(logger))

	reload := commandhandlers.NewReloadGraphHandler(loader, logger)
	if err := commandhandlers.Register(commandBus, reload); err != nil {
		return nil, err
	}

	return commandBus, nil
}

// ProvideQueryBus creates and configures the query bus
func ProvideQueryBus(
	store ports.GraphStore,
	analytics *domainservices.GraphAnalyticsService,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.MetricsMiddleware(metrics),
		querybus.LoggingMiddleware(logger),
	)

	err := queryhandlers.Register(queryBus, queryhandlers.Handlers{
		Mutual:      queryhandlers.NewMutualConnectionsHandler(store, analytics, tracer, logger),
		Communities: queryhandlers.NewDetectCommunitiesHandler(store, analytics, tracer, logger),
		Influential: queryhandlers.NewMostInfluentialHandler(store, analytics, tracer, logger),
		Node:        queryhandlers.NewGetNodeHandler(store, analytics, tracer, logger),
		GraphData:   queryhandlers.NewGetGraphDataHandler(store, analytics, tracer, logger),
	})
	if err != nil {
		return nil, err
	}

	return queryBus, nil
}
