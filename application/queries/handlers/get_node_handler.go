package handlers

import (
	"context"

	"socialgraph/application/ports"
	"socialgraph/application/presenters"
	"socialgraph/application/queries"
	"socialgraph/domain/core/valueobjects"
	"socialgraph/domain/services"
	pkgerrors "socialgraph/pkg/errors"
	"socialgraph/pkg/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// GetNodeHandler handles single node queries
type GetNodeHandler struct {
	store     ports.GraphStore
	analytics *services.GraphAnalyticsService
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewGetNodeHandler creates a new node handler
func NewGetNodeHandler(
	store ports.GraphStore,
	analytics *services.GraphAnalyticsService,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *GetNodeHandler {
	return &GetNodeHandler{
		store:     store,
		analytics: analytics,
		tracer:    tracer,
		logger:    logger,
	}
}

// Handle executes the node query
func (h *GetNodeHandler) Handle(ctx context.Context, query queries.GetNodeQuery) (*queries.GetNodeResult, error) {
	ctx, span := h.tracer.StartSpan(ctx, "query.get_node", attribute.String("node", query.NodeID))
	defer span.End()

	snapshot, err := readySnapshot(ctx, h.store)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	id, err := valueobjects.NewNodeID(query.NodeID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	node, err := snapshot.Graph.GetNode(id)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	neighbors := h.analytics.Neighbors(snapshot.Graph, id)
	return &queries.GetNodeResult{
		ID:        node.ID().String(),
		Source:    node.Source(),
		Degree:    len(neighbors),
		Neighbors: valueobjects.Strings(neighbors),
		Text:      presenters.NodeDetail(id, neighbors),
	}, nil
}
