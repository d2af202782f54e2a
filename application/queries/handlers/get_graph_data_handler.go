package handlers

import (
	"context"

	"socialgraph/application/ports"
	"socialgraph/application/queries"
	"socialgraph/domain/services"
	"socialgraph/pkg/observability"

	"go.uber.org/zap"
)

// GetGraphDataHandler handles graph data visualization queries
type GetGraphDataHandler struct {
	store     ports.GraphStore
	analytics *services.GraphAnalyticsService
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewGetGraphDataHandler creates a new graph data handler
func NewGetGraphDataHandler(
	store ports.GraphStore,
	analytics *services.GraphAnalyticsService,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *GetGraphDataHandler {
	return &GetGraphDataHandler{
		store:     store,
		analytics: analytics,
		tracer:    tracer,
		logger:    logger,
	}
}

// Handle executes the graph data query
func (h *GetGraphDataHandler) Handle(ctx context.Context, query queries.GetGraphDataQuery) (*queries.GetGraphDataResult, error) {
	ctx, span := h.tracer.StartSpan(ctx, "query.get_graph_data")
	defer span.End()

	snapshot, err := readySnapshot(ctx, h.store)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	graph := snapshot.Graph

	degrees := h.analytics.Degrees(graph)
	result := &queries.GetGraphDataResult{
		GraphID:  graph.ID().String(),
		Status:   string(snapshot.Status),
		LoadedAt: snapshot.LoadedAt,
		Nodes:    make([]queries.GraphNode, 0, graph.NodeCount()),
		Links:    make([]queries.GraphLink, 0, graph.LinkCount()),
		Stats:    h.analytics.Stats(graph),
	}
	if snapshot.Report != nil {
		result.Seed = snapshot.Report.Seed
	}

	for _, node := range graph.Nodes() {
		result.Nodes = append(result.Nodes, queries.GraphNode{
			ID:          node.ID().String(),
			Source:      node.Source(),
			Connections: degrees[node.ID()],
		})
	}
	for _, link := range graph.Links() {
		result.Links = append(result.Links, queries.GraphLink{
			Source: link.Source.String(),
			Target: link.Target.String(),
		})
	}

	h.logger.Debug("Graph data assembled",
		zap.String("graphID", result.GraphID),
		zap.Int("nodes", len(result.Nodes)),
		zap.Int("links", len(result.Links)),
	)
	return result, nil
}
