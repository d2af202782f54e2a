package aggregates

import (
	"testing"

	"socialgraph/domain/core/entities"
	"socialgraph/domain/core/valueobjects"
	pkgerrors "socialgraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestGraph(t *testing.T, names ...string) *Graph {
	t.Helper()
	graph := NewGraph()
	for _, name := range names {
		require.NoError(t, graph.AddNode(entities.NewNode(valueobjects.MustNodeID(name), "")))
	}
	return graph
}

func id(name string) valueobjects.NodeID {
	return valueobjects.MustNodeID(name)
}

func TestNewGraph(t *testing.T) {
	graph := NewGraph()

	assert.NotEmpty(t, graph.ID())
	assert.Equal(t, 0, graph.NodeCount())
	assert.Equal(t, 0, graph.LinkCount())
	assert.False(t, graph.CreatedAt().IsZero())
	assert.NoError(t, graph.Validate())
	assert.NotEqual(t, graph.ID(), NewGraph().ID())
}

func TestGraph_AddNode(t *testing.T) {
	graph := createTestGraph(t, "A")

	tests := []struct {
		name    string
		node    *entities.Node
		errType pkgerrors.ErrorType
	}{
		{name: "add valid node", node: entities.NewNode(id("B"), "")},
		{name: "add nil node", node: nil, errType: pkgerrors.ErrorTypeValidation},
		{name: "add zero id", node: entities.NewNode(valueobjects.NodeID{}, ""), errType: pkgerrors.ErrorTypeValidation},
		{name: "add duplicate", node: entities.NewNode(id("A"), ""), errType: pkgerrors.ErrorTypeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := graph.AddNode(tt.node)
			if tt.errType != "" {
				assert.True(t, pkgerrors.IsType(err, tt.errType), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.True(t, graph.HasNode(tt.node.ID()))
		})
	}

	assert.Equal(t, []valueobjects.NodeID{id("A"), id("B")}, graph.NodeIDs())
	assert.Equal(t, 1, graph.Position(id("B")))
	assert.Equal(t, -1, graph.Position(id("Z")))
}

func TestGraph_Connect(t *testing.T) {
	graph := createTestGraph(t, "A", "B", "C")

	link, err := graph.Connect(id("A"), id("B"))
	require.NoError(t, err)
	assert.Equal(t, Link{Source: id("A"), Target: id("B")}, link)

	tests := []struct {
		name    string
		source  string
		target  string
		errType pkgerrors.ErrorType
	}{
		{name: "self link", source: "C", target: "C", errType: pkgerrors.ErrorTypeValidation},
		{name: "duplicate same direction", source: "A", target: "B", errType: pkgerrors.ErrorTypeConflict},
		{name: "duplicate reversed", source: "B", target: "A", errType: pkgerrors.ErrorTypeConflict},
		{name: "unknown source", source: "X", target: "A", errType: pkgerrors.ErrorTypeNotFound},
		{name: "unknown target", source: "A", target: "X", errType: pkgerrors.ErrorTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := graph.Connect(id(tt.source), id(tt.target))
			assert.True(t, pkgerrors.IsType(err, tt.errType), "got %v", err)
		})
	}

	assert.Equal(t, 1, graph.LinkCount())
	assert.True(t, graph.IsLinked(id("B"), id("A")))
	assert.False(t, graph.IsLinked(id("A"), id("C")))
	assert.NoError(t, graph.Validate())
}

func TestGraph_ReturnsCopies(t *testing.T) {
	graph := createTestGraph(t, "A", "B")
	_, err := graph.Connect(id("A"), id("B"))
	require.NoError(t, err)

	links := graph.Links()
	links[0] = Link{Source: id("B"), Target: id("B")}
	nodes := graph.Nodes()
	nodes[0] = nil

	assert.Equal(t, id("A"), graph.Links()[0].Source)
	assert.NotNil(t, graph.Nodes()[0])
	assert.NoError(t, graph.Validate())
}

func TestGraph_GetNode(t *testing.T) {
	graph := createTestGraph(t, "Luke Skywalker")

	node, err := graph.GetNode(id("Luke Skywalker"))
	require.NoError(t, err)
	assert.Equal(t, "Luke Skywalker", node.ID().String())

	_, err = graph.GetNode(id("Darth Vader"))
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestLink_Other(t *testing.T) {
	link := Link{Source: id("A"), Target: id("B")}

	assert.True(t, link.Touches(id("A")))
	assert.True(t, link.Touches(id("B")))
	assert.False(t, link.Touches(id("C")))
	assert.Equal(t, id("B"), link.Other(id("A")))
	assert.Equal(t, id("A"), link.Other(id("B")))
}

func TestGraph_ValidateDetectsCorruption(t *testing.T) {
	graph := createTestGraph(t, "A", "B")
	graph.links = append(graph.links, Link{Source: id("A"), Target: id("A")})
	assert.Error(t, graph.Validate())

	graph = createTestGraph(t, "A", "B")
	graph.links = append(graph.links, Link{Source: id("A"), Target: id("Q")})
	assert.Error(t, graph.Validate())
}
