package queries

// MutualConnectionsQuery asks for the nodes linked to both First and Second.
// Any name is accepted; blank, unknown or oversized names simply have no connections.
type MutualConnectionsQuery struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// Validate validates the query. The mutual query never rejects its input.
func (q MutualConnectionsQuery) Validate() error {
	return nil
}

// MutualConnectionsResult represents the mutual-neighbor answer
type MutualConnectionsResult struct {
	First  string   `json:"first"`
	Second string   `json:"second"`
	Mutual []string `json:"mutual"`
	Text   string   `json:"text"`
}
