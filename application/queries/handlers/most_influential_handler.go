package handlers

import (
	"context"

	"socialgraph/application/ports"
	"socialgraph/application/presenters"
	"socialgraph/application/queries"
	"socialgraph/domain/services"
	"socialgraph/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// MostInfluentialHandler handles degree centrality queries
type MostInfluentialHandler struct {
	store     ports.GraphStore
	analytics *services.GraphAnalyticsService
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewMostInfluentialHandler creates a new centrality handler
func NewMostInfluentialHandler(
	store ports.GraphStore,
	analytics *services.GraphAnalyticsService,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *MostInfluentialHandler {
	return &MostInfluentialHandler{
		store:     store,
		analytics: analytics,
		tracer:    tracer,
		logger:    logger,
	}
}

// Handle executes the centrality query. An empty graph yields a not found error.
func (h *MostInfluentialHandler) Handle(ctx context.Context, query queries.MostInfluentialQuery) (*queries.MostInfluentialResult, error) {
	ctx, span := h.tracer.StartSpan(ctx, "query.most_influential")
	defer span.End()

	snapshot, err := readySnapshot(ctx, h.store)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	influence, err := h.analytics.MostInfluential(snapshot.Graph)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("node", influence.Node.String()),
		attribute.Int("degree", influence.Degree),
	)

	title, subtitle := presenters.Influential(influence)
	return &queries.MostInfluentialResult{
		Node:     influence.Node.String(),
		Degree:   influence.Degree,
		Title:    title,
		Subtitle: subtitle,
	}, nil
}
