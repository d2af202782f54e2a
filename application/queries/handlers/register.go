package handlers

import (
	"context"

	"socialgraph/application/queries"
	"socialgraph/application/queries/bus"
)

// Handlers groups the typed query handlers served by the bus
type Handlers struct {
	Mutual      *MutualConnectionsHandler
	Communities *DetectCommunitiesHandler
	Influential *MostInfluentialHandler
	Node        *GetNodeHandler
	GraphData   *GetGraphDataHandler
}

// Register adapts every typed handler to the bus
func Register(b *bus.QueryBus, h Handlers) error {
	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandlerFunc
	}{
		{queries.MutualConnectionsQuery{}, func(ctx context.Context, q bus.Query) (interface{}, error) {
			return h.Mutual.Handle(ctx, q.(queries.MutualConnectionsQuery))
		}},
		{queries.DetectCommunitiesQuery{}, func(ctx context.Context, q bus.Query) (interface{}, error) {
			return h.Communities.Handle(ctx, q.(queries.DetectCommunitiesQuery))
		}},
		{queries.MostInfluentialQuery{}, func(ctx context.Context, q bus.Query) (interface{}, error) {
			return h.Influential.Handle(ctx, q.(queries.MostInfluentialQuery))
		}},
		{queries.GetNodeQuery{}, func(ctx context.Context, q bus.Query) (interface{}, error) {
			return h.Node.Handle(ctx, q.(queries.GetNodeQuery))
		}},
		{queries.GetGraphDataQuery{}, func(ctx context.Context, q bus.Query) (interface{}, error) {
			return h.GraphData.Handle(ctx, q.(queries.GetGraphDataQuery))
		}},
	}

	for _, r := range registrations {
		if err := b.Register(r.query, r.handler); err != nil {
			return err
		}
	}
	return nil
}
