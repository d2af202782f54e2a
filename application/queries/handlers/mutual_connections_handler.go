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

// MutualConnectionsHandler handles mutual-neighbor queries
type MutualConnectionsHandler struct {
	store     ports.GraphStore
	analytics *services.GraphAnalyticsService
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewMutualConnectionsHandler creates a new mutual connections handler
func NewMutualConnectionsHandler(
	store ports.GraphStore,
	analytics *services.GraphAnalyticsService,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *MutualConnectionsHandler {
	return &MutualConnectionsHandler{
		store:     store,
		analytics: analytics,
		tracer:    tracer,
		logger:    logger,
	}
}

// Handle executes the mutual connections query
func (h *MutualConnectionsHandler) Handle(ctx context.Context, query queries.MutualConnectionsQuery) (*queries.MutualConnectionsResult, error) {
	ctx, span := h.tracer.StartSpan(ctx, "query.mutual_connections",
		attribute.String("first", query.First),
		attribute.String("second", query.Second),
	)
	defer span.End()

	snapshot, err := readySnapshot(ctx, h.store)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	mutual := h.analytics.MutualConnections(snapshot.Graph, lookupID(query.First), lookupID(query.Second))
	span.SetAttributes(attribute.Int("mutual", len(mutual)))

	return &queries.MutualConnectionsResult{
		First:  query.First,
		Second: query.Second,
		Mutual: valueobjects.Strings(mutual),
		Text:   presenters.MutualConnections(query.First, query.Second, mutual),
	}, nil
}

// lookupID maps a user-supplied name to a node ID. Blank names become the zero ID,
// which matches no node.
func lookupID(name string) valueobjects.NodeID {
	id, err := valueobjects.NewNodeID(name)
	if err != nil {
		return valueobjects.NodeID{}
	}
	return id
}
