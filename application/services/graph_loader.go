package services

import (
	"context"
	"strconv"
	"time"

	"socialgraph/application/ports"
	"socialgraph/domain/core/aggregates"
	"socialgraph/domain/core/entities"
	"socialgraph/domain/core/valueobjects"
	domainservices "socialgraph/domain/services"
	pkgerrors "socialgraph/pkg/errors"
	"socialgraph/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// GraphLoader builds the session graph: it loads people pages, synthesizes links and
// publishes the result to the graph store.
type GraphLoader struct {
	source    ports.PeopleSource
	store     ports.GraphStore
	opts      domainservices.SynthesisOptions
	pageCount int
	metrics   *observability.Collector
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewGraphLoader creates a new graph loader
func NewGraphLoader(
	source ports.PeopleSource,
	store ports.GraphStore,
	opts domainservices.SynthesisOptions,
	pageCount int,
	metrics *observability.Collector,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *GraphLoader {
	return &GraphLoader{
		source:    source,
		store:     store,
		opts:      opts,
		pageCount: pageCount,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger,
	}
}

// LoadNodes requests pages 1..pageCount in order and adds one node per person.
// It stops at the first failure and returns the nodes loaded so far with the error.
func (l *GraphLoader) LoadNodes(ctx context.Context) (*aggregates.Graph, error) {
	graph := aggregates.NewGraph()

	for page := 1; page <= l.pageCount; page++ {
		people, err := l.source.FetchPage(ctx, page)
		l.metrics.RecordPageFetch(err)
		if err != nil {
			return graph, pkgerrors.Wrap(err, "load people")
		}

		added := 0
		for _, person := range people {
			id, err := valueobjects.NewNodeID(person.Name)
			if err != nil {
				l.logger.Warn("Skipping person without a name", zap.Int("page", page))
				continue
			}
			if err := graph.AddNode(entities.NewNode(id, "page "+strconv.Itoa(page))); err != nil {
				l.logger.Warn("Skipping person",
					zap.Int("page", page),
					zap.String("name", id.String()),
					zap.Error(err),
				)
				continue
			}
			added++
		}

		l.logger.Info("Loaded people page",
			zap.Int("page", page),
			zap.Int("records", len(people)),
			zap.Int("added", added),
		)
	}

	return graph, nil
}

// Build loads nodes and synthesizes links. seed overrides the configured seed when non-zero.
// A load failure publishes a failed snapshot only when no ready graph is being served;
// a working graph is never replaced by a failed reload.
func (l *GraphLoader) Build(ctx context.Context, seed int64) (*ports.GraphSnapshot, error) {
	ctx, span := l.tracer.StartSpan(ctx, "graph.build",
		attribute.Int("pages", l.pageCount),
		attribute.Int64("seed", seed),
	)
	defer span.End()

	start := time.Now()

	graph, err := l.LoadNodes(ctx)
	if err != nil {
		observability.RecordError(span, err)
		l.logger.Error("Error fetching people data",
			zap.Int("nodesLoaded", graph.NodeCount()),
			zap.Error(err),
		)

		failed := &ports.GraphSnapshot{
			Graph:    graph,
			Status:   ports.StatusFailed,
			Err:      err,
			LoadedAt: time.Now(),
		}
		if _, pubErr := l.store.PublishIfNotReady(ctx, failed); pubErr != nil {
			l.logger.Error("Failed to publish failed snapshot", zap.Error(pubErr))
		}
		return failed, err
	}

	opts := l.opts
	if seed != 0 {
		opts.Seed = seed
	}
	synthesizer, err := domainservices.NewLinkSynthesizer(opts)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	report, err := synthesizer.Synthesize(graph)
	if err != nil {
		observability.RecordError(span, err)
		return nil, pkgerrors.Wrap(err, "synthesize links")
	}
	l.metrics.RecordSynthesis(report.LinksCreated, report.Abandoned)

	if err := graph.Validate(); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	snapshot := &ports.GraphSnapshot{
		Graph:    graph,
		Report:   report,
		Status:   ports.StatusReady,
		LoadedAt: time.Now(),
	}
	if err := l.store.Publish(ctx, snapshot); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	l.metrics.SetGraphSize(graph.NodeCount(), graph.LinkCount())

	span.SetAttributes(
		attribute.Int("nodes", graph.NodeCount()),
		attribute.Int("links", graph.LinkCount()),
	)
	l.logger.Info("Graph ready",
		zap.String("graphID", graph.ID().String()),
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("links", graph.LinkCount()),
		zap.Int("abandoned", report.Abandoned),
		zap.Int64("seed", report.Seed),
		zap.Duration("duration", time.Since(start)),
	)

	return snapshot, nil
}
