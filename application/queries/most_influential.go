package queries

// MostInfluentialQuery asks for the node with the highest degree
type MostInfluentialQuery struct{}

// Validate validates the query
func (q MostInfluentialQuery) Validate() error {
	return nil
}

// MostInfluentialResult carries the winning node and its rendered title/subtitle
type MostInfluentialResult struct {
	Node     string `json:"node"`
	Degree   int    `json:"degree"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}
