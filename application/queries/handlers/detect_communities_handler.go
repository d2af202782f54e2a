package handlers

import (
	"context"

	"socialgraph/application/ports"
	"socialgraph/application/presenters"
	"socialgraph/application/queries"
	"socialgraph/domain/core/valueobjects"
	"socialgraph/domain/services"
	"socialgraph/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DetectCommunitiesHandler handles community detection queries
type DetectCommunitiesHandler struct {
	store     ports.GraphStore
	analytics *services.GraphAnalyticsService
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewDetectCommunitiesHandler creates a new community detection handler
func NewDetectCommunitiesHandler(
	store ports.GraphStore,
	analytics *services.GraphAnalyticsService,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *DetectCommunitiesHandler {
	return &DetectCommunitiesHandler{
		store:     store,
		analytics: analytics,
		tracer:    tracer,
		logger:    logger,
	}
}

// Handle executes the community detection query
func (h *DetectCommunitiesHandler) Handle(ctx context.Context, query queries.DetectCommunitiesQuery) (*queries.DetectCommunitiesResult, error) {
	ctx, span := h.tracer.StartSpan(ctx, "query.detect_communities")
	defer span.End()

	snapshot, err := readySnapshot(ctx, h.store)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	communities := h.analytics.Communities(snapshot.Graph)
	span.SetAttributes(attribute.Int("communities", len(communities)))

	result := &queries.DetectCommunitiesResult{
		Communities: make([][]string, 0, len(communities)),
		Text:        presenters.Communities(communities),
	}
	for _, community := range communities {
		result.Communities = append(result.Communities, valueobjects.Strings(community))
	}

	h.logger.Debug("Communities detected",
		zap.String("graphID", snapshot.Graph.ID().String()),
		zap.Int("count", len(communities)),
	)
	return result, nil
}
