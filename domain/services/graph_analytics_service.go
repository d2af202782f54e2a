package services

import (
	"socialgraph/domain/core/aggregates"
	"socialgraph/domain/core/valueobjects"
	pkgerrors "socialgraph/pkg/errors"
)

// Influence is the result of the centrality query
type Influence struct {
	Node   valueobjects.NodeID `json:"node"`
	Degree int                 `json:"degree"`
}

// GraphStats contains graph statistics
type GraphStats struct {
	NodeCount      int     `json:"node_count"`
	LinkCount      int     `json:"link_count"`
	CommunityCount int     `json:"community_count"`
	Density        float64 `json:"density"`
}

// GraphAnalyticsService answers read-only queries over a graph snapshot.
// None of its methods mutate the graph.
type GraphAnalyticsService struct{}

// NewGraphAnalyticsService creates a new graph analytics service
func NewGraphAnalyticsService() *GraphAnalyticsService {
	return &GraphAnalyticsService{}
}

// Neighbors returns the nodes linked to id, in link insertion order.
// An unknown id has no neighbors.
func (s *GraphAnalyticsService) Neighbors(graph *aggregates.Graph, id valueobjects.NodeID) []valueobjects.NodeID {
	seen := make(map[valueobjects.NodeID]bool)
	neighbors := []valueobjects.NodeID{}
	for _, link := range graph.Links() {
		if !link.Touches(id) {
			continue
		}
		other := link.Other(id)
		if !seen[other] {
			seen[other] = true
			neighbors = append(neighbors, other)
		}
	}
	return neighbors
}

// MutualConnections returns the nodes linked to both a and b, ordered as they appear
// among a's neighbors. Unknown or unlinked ids yield an empty result.
func (s *GraphAnalyticsService) MutualConnections(graph *aggregates.Graph, a, b valueobjects.NodeID) []valueobjects.NodeID {
	second := make(map[valueobjects.NodeID]bool)
	for _, n := range s.Neighbors(graph, b) {
		second[n] = true
	}

	mutual := []valueobjects.NodeID{}
	for _, n := range s.Neighbors(graph, a) {
		if second[n] {
			mutual = append(mutual, n)
		}
	}
	return mutual
}

// Communities partitions the graph into connected components.
// Components are ordered by their first node in insertion order; members are listed in
// depth-first visitation order, exploring neighbors in link insertion order.
func (s *GraphAnalyticsService) Communities(graph *aggregates.Graph) [][]valueobjects.NodeID {
	adjacency := buildAdjacency(graph)
	visited := make(map[valueobjects.NodeID]bool)
	communities := [][]valueobjects.NodeID{}

	for _, root := range graph.NodeIDs() {
		if !visited[root] {
			communities = append(communities, dfs(root, adjacency, visited))
		}
	}
	return communities
}

// Degrees returns the number of links incident to every node
func (s *GraphAnalyticsService) Degrees(graph *aggregates.Graph) map[valueobjects.NodeID]int {
	degrees := make(map[valueobjects.NodeID]int, graph.NodeCount())
	for _, id := range graph.NodeIDs() {
		degrees[id] = 0
	}
	for _, link := range graph.Links() {
		degrees[link.Source]++
		degrees[link.Target]++
	}
	return degrees
}

// MostInfluential returns the node with the highest degree.
// Ties go to the node added first.
func (s *GraphAnalyticsService) MostInfluential(graph *aggregates.Graph) (Influence, error) {
	ids := graph.NodeIDs()
	if len(ids) == 0 {
		return Influence{}, pkgerrors.NewNotFoundError("most influential node")
	}

	degrees := s.Degrees(graph)
	best := Influence{Node: ids[0], Degree: degrees[ids[0]]}
	for _, id := range ids[1:] {
		if degrees[id] > best.Degree {
			best = Influence{Node: id, Degree: degrees[id]}
		}
	}
	return best, nil
}

// Stats computes summary statistics for the graph
func (s *GraphAnalyticsService) Stats(graph *aggregates.Graph) GraphStats {
	stats := GraphStats{
		NodeCount:      graph.NodeCount(),
		LinkCount:      graph.LinkCount(),
		CommunityCount: len(s.Communities(graph)),
	}
	if stats.NodeCount > 1 {
		maxPossibleLinks := stats.NodeCount * (stats.NodeCount - 1) / 2
		stats.Density = float64(stats.LinkCount) / float64(maxPossibleLinks)
	}
	return stats
}

func buildAdjacency(graph *aggregates.Graph) map[valueobjects.NodeID][]valueobjects.NodeID {
	adjacency := make(map[valueobjects.NodeID][]valueobjects.NodeID, graph.NodeCount())
	for _, link := range graph.Links() {
		adjacency[link.Source] = append(adjacency[link.Source], link.Target)
		adjacency[link.Target] = append(adjacency[link.Target], link.Source)
	}
	return adjacency
}

type dfsFrame struct {
	node valueobjects.NodeID
	next int
}

// dfs walks one component with an explicit stack. A frame resumes scanning its
// neighbor list where it left off, matching recursive pre-order.
func dfs(root valueobjects.NodeID, adjacency map[valueobjects.NodeID][]valueobjects.NodeID, visited map[valueobjects.NodeID]bool) []valueobjects.NodeID {
	visited[root] = true
	community := []valueobjects.NodeID{root}
	stack := []dfsFrame{{node: root}}

	for len(stack) > 0 {
		top := len(stack) - 1
		neighbors := adjacency[stack[top].node]

		descended := false
		for stack[top].next < len(neighbors) {
			next := neighbors[stack[top].next]
			stack[top].next++
			if !visited[next] {
				visited[next] = true
				community = append(community, next)
				stack = append(stack, dfsFrame{node: next})
				descended = true
				break
			}
		}

		if !descended {
			stack = stack[:top]
		}
	}

	return community
}
