package services

import (
	"sort"
	"testing"

	"socialgraph/domain/core/aggregates"
	"socialgraph/domain/core/entities"
	"socialgraph/domain/core/valueobjects"
	pkgerrors "socialgraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

func id(name string) valueobjects.NodeID {
	return valueobjects.MustNodeID(name)
}

func ids(names ...string) []valueobjects.NodeID {
	out := make([]valueobjects.NodeID, len(names))
	for i, name := range names {
		out[i] = id(name)
	}
	return out
}

// buildGraph creates a graph from node names and "source-target" link pairs
func buildGraph(t *testing.T, names []string, links [][2]string) *aggregates.Graph {
	t.Helper()
	graph := aggregates.NewGraph()
	for _, name := range names {
		require.NoError(t, graph.AddNode(entities.NewNode(id(name), "test")))
	}
	for _, l := range links {
		_, err := graph.Connect(id(l[0]), id(l[1]))
		require.NoError(t, err)
	}
	return graph
}

func TestMutualConnections(t *testing.T) {
	service := NewGraphAnalyticsService()
	chain := buildGraph(t, []string{"A", "B", "C"}, [][2]string{{"A", "B"}, {"B", "C"}})
	split := buildGraph(t, []string{"A", "B", "C", "D"}, [][2]string{{"A", "B"}, {"C", "D"}})
	hub := buildGraph(t,
		[]string{"A", "B", "X", "Y", "Z"},
		[][2]string{{"A", "Z"}, {"Y", "A"}, {"X", "A"}, {"B", "X"}, {"Z", "B"}, {"B", "Y"}},
	)

	tests := []struct {
		name   string
		graph  *aggregates.Graph
		first  string
		second string
		want   []valueobjects.NodeID
	}{
		{name: "chain endpoints share middle", graph: chain, first: "A", second: "C", want: ids("B")},
		{name: "separate components", graph: split, first: "A", second: "D", want: ids()},
		{name: "unknown first", graph: chain, first: "Yoda", second: "C", want: ids()},
		{name: "unknown both", graph: chain, first: "Yoda", second: "Jabba", want: ids()},
		{name: "ordered by first's links", graph: hub, first: "A", second: "B", want: ids("Z", "Y", "X")},
		{name: "reverse uses second's order", graph: hub, first: "B", second: "A", want: ids("X", "Z", "Y")},
		{name: "adjacent pair has none", graph: chain, first: "A", second: "B", want: ids()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.MutualConnections(tt.graph, id(tt.first), id(tt.second))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMutualConnections_Symmetric(t *testing.T) {
	service := NewGraphAnalyticsService()
	graph := synthesizedGraph(t, 30, 7)
	nodes := graph.NodeIDs()

	for _, a := range nodes {
		for _, b := range nodes {
			ab := valueobjects.Strings(service.MutualConnections(graph, a, b))
			ba := valueobjects.Strings(service.MutualConnections(graph, b, a))
			sort.Strings(ab)
			sort.Strings(ba)
			assert.Equal(t, ab, ba, "mutual(%s,%s)", a, b)
		}
	}
}

func TestCommunities(t *testing.T) {
	service := NewGraphAnalyticsService()

	tests := []struct {
		name  string
		nodes []string
		links [][2]string
		want  [][]valueobjects.NodeID
	}{
		{
			name:  "single chain",
			nodes: []string{"A", "B", "C"},
			links: [][2]string{{"A", "B"}, {"B", "C"}},
			want:  [][]valueobjects.NodeID{ids("A", "B", "C")},
		},
		{
			name:  "two pairs",
			nodes: []string{"A", "B", "C", "D"},
			links: [][2]string{{"A", "B"}, {"C", "D"}},
			want:  [][]valueobjects.NodeID{ids("A", "B"), ids("C", "D")},
		},
		{
			name:  "isolated nodes are singletons",
			nodes: []string{"A", "B", "C"},
			links: [][2]string{{"C", "A"}},
			want:  [][]valueobjects.NodeID{ids("A", "C"), ids("B")},
		},
		{
			name:  "depth first not breadth first",
			nodes: []string{"A", "B", "C", "D"},
			links: [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}},
			want:  [][]valueobjects.NodeID{ids("A", "B", "D", "C")},
		},
		{
			name:  "root order follows insertion order",
			nodes: []string{"D", "C", "B", "A"},
			links: [][2]string{{"A", "B"}, {"C", "D"}},
			want:  [][]valueobjects.NodeID{ids("D", "C"), ids("B", "A")},
		},
		{
			name:  "empty graph",
			nodes: nil,
			want:  [][]valueobjects.NodeID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graph := buildGraph(t, tt.nodes, tt.links)
			assert.Equal(t, tt.want, service.Communities(graph))
		})
	}
}

// recursiveCommunities mirrors the link-scanning recursive traversal the explicit
// stack must reproduce.
func recursiveCommunities(graph *aggregates.Graph) [][]valueobjects.NodeID {
	visited := map[valueobjects.NodeID]bool{}
	links := graph.Links()
	var visit func(n valueobjects.NodeID, community *[]valueobjects.NodeID)
	visit = func(n valueobjects.NodeID, community *[]valueobjects.NodeID) {
		visited[n] = true
		*community = append(*community, n)
		for _, link := range links {
			if link.Touches(n) && !visited[link.Other(n)] {
				visit(link.Other(n), community)
			}
		}
	}

	out := [][]valueobjects.NodeID{}
	for _, n := range graph.NodeIDs() {
		if !visited[n] {
			community := []valueobjects.NodeID{}
			visit(n, &community)
			out = append(out, community)
		}
	}
	return out
}

func TestCommunities_MatchesRecursiveOrder(t *testing.T) {
	service := NewGraphAnalyticsService()
	for seed := int64(1); seed <= 20; seed++ {
		graph := sparseGraph(t, 40, seed)
		assert.Equal(t, recursiveCommunities(graph), service.Communities(graph), "seed %d", seed)
	}
}

func TestCommunities_IsPartition(t *testing.T) {
	service := NewGraphAnalyticsService()

	for seed := int64(1); seed <= 10; seed++ {
		graph := sparseGraph(t, 25, seed)
		communities := service.Communities(graph)

		membership := map[valueobjects.NodeID]int{}
		for i, community := range communities {
			for _, n := range community {
				_, dup := membership[n]
				require.False(t, dup, "node %s in two communities", n)
				membership[n] = i
			}
		}
		assert.Len(t, membership, graph.NodeCount())

		// Cross-check against gonum's connected components.
		nodes := graph.NodeIDs()
		ug := simple.NewUndirectedGraph()
		for i := range nodes {
			ug.AddNode(simple.Node(i))
		}
		for _, link := range graph.Links() {
			ug.SetEdge(ug.NewEdge(simple.Node(graph.Position(link.Source)), simple.Node(graph.Position(link.Target))))
		}
		components := topo.ConnectedComponents(ug)
		require.Len(t, communities, len(components), "seed %d", seed)

		for _, component := range components {
			first := membership[nodes[component[0].ID()]]
			for _, n := range component {
				assert.Equal(t, first, membership[nodes[n.ID()]], "seed %d", seed)
			}
		}
	}
}

func TestMostInfluential(t *testing.T) {
	service := NewGraphAnalyticsService()

	t.Run("chain middle wins", func(t *testing.T) {
		graph := buildGraph(t, []string{"A", "B", "C"}, [][2]string{{"A", "B"}, {"B", "C"}})
		got, err := service.MostInfluential(graph)
		require.NoError(t, err)
		assert.Equal(t, Influence{Node: id("B"), Degree: 2}, got)
	})

	t.Run("ties go to earliest node", func(t *testing.T) {
		graph := buildGraph(t, []string{"A", "B", "C", "D"}, [][2]string{{"C", "D"}, {"A", "B"}})
		got, err := service.MostInfluential(graph)
		require.NoError(t, err)
		assert.Equal(t, Influence{Node: id("A"), Degree: 1}, got)
	})

	t.Run("no links", func(t *testing.T) {
		graph := buildGraph(t, []string{"Solo"}, nil)
		got, err := service.MostInfluential(graph)
		require.NoError(t, err)
		assert.Equal(t, Influence{Node: id("Solo"), Degree: 0}, got)
	})

	t.Run("empty graph", func(t *testing.T) {
		_, err := service.MostInfluential(aggregates.NewGraph())
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestDegrees_SumIsTwiceLinks(t *testing.T) {
	service := NewGraphAnalyticsService()
	for seed := int64(1); seed <= 10; seed++ {
		graph := synthesizedGraph(t, 30, seed)
		total := 0
		for _, d := range service.Degrees(graph) {
			total += d
		}
		assert.Equal(t, 2*graph.LinkCount(), total)
	}
}

func TestNeighbors(t *testing.T) {
	service := NewGraphAnalyticsService()
	graph := buildGraph(t, []string{"A", "B", "C", "D"}, [][2]string{{"B", "A"}, {"C", "D"}, {"A", "D"}})

	assert.Equal(t, ids("B", "D"), service.Neighbors(graph, id("A")))
	assert.Equal(t, ids("C", "A"), service.Neighbors(graph, id("D")))
	assert.Empty(t, service.Neighbors(graph, id("Z")))
}

func TestStats(t *testing.T) {
	service := NewGraphAnalyticsService()
	graph := buildGraph(t, []string{"A", "B", "C", "D"}, [][2]string{{"A", "B"}, {"C", "D"}})

	stats := service.Stats(graph)
	assert.Equal(t, 4, stats.NodeCount)
	assert.Equal(t, 2, stats.LinkCount)
	assert.Equal(t, 2, stats.CommunityCount)
	assert.InDelta(t, 2.0/6.0, stats.Density, 1e-9)

	assert.Equal(t, GraphStats{CommunityCount: 0}, service.Stats(aggregates.NewGraph()))
}
