package queries

// DetectCommunitiesQuery asks for the connected components of the graph
type DetectCommunitiesQuery struct{}

// Validate validates the query
func (q DetectCommunitiesQuery) Validate() error {
	return nil
}

// DetectCommunitiesResult lists communities in discovery order
type DetectCommunitiesResult struct {
	Communities [][]string `json:"communities"`
	Text        string     `json:"text"`
}
