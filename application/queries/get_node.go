package queries

import "socialgraph/pkg/utils"

// GetNodeQuery represents a query for a single node and its neighbors
type GetNodeQuery struct {
	NodeID string `json:"node_id" validate:"required,max=256"`
}

// Validate validates the query
func (q GetNodeQuery) Validate() error {
	return utils.ValidateStruct(q)
}

// GetNodeResult represents the result of a node query
type GetNodeResult struct {
	ID        string   `json:"id"`
	Source    string   `json:"source"`
	Degree    int      `json:"degree"`
	Neighbors []string `json:"neighbors"`
	Text      string   `json:"text"`
}
