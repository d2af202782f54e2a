package queries

import (
	"time"

	"socialgraph/domain/services"
)

// GetGraphDataQuery represents a query for the full session graph
type GetGraphDataQuery struct{}

// Validate validates the query
func (q GetGraphDataQuery) Validate() error {
	return nil
}

// GetGraphDataResult represents the complete graph data for visualization
type GetGraphDataResult struct {
	GraphID  string              `json:"graph_id"`
	Status   string              `json:"status"`
	Seed     int64               `json:"seed"`
	LoadedAt time.Time           `json:"loaded_at"`
	Nodes    []GraphNode         `json:"nodes"`
	Links    []GraphLink         `json:"links"`
	Stats    services.GraphStats `json:"stats"`
}

// GraphNode represents a node in the graph visualization
type GraphNode struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Connections int    `json:"connections"`
}

// GraphLink represents a link in the graph visualization
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}
