package aggregates

import (
	"time"

	"socialgraph/domain/core/entities"
	"socialgraph/domain/core/valueobjects"
	pkgerrors "socialgraph/pkg/errors"

	"github.com/google/uuid"
)

// GraphID represents a unique graph identifier
type GraphID string

// NewGraphID creates a new random GraphID
func NewGraphID() GraphID {
	return GraphID(uuid.New().String())
}

// String returns the string representation
func (id GraphID) String() string {
	return string(id)
}

// Link is an undirected connection between two nodes.
// Source is the node that initiated the link; it carries no direction otherwise.
type Link struct {
	Source valueobjects.NodeID `json:"source"`
	Target valueobjects.NodeID `json:"target"`
}

// Touches reports whether the link is incident to id
func (l Link) Touches(id valueobjects.NodeID) bool {
	return l.Source.Equals(id) || l.Target.Equals(id)
}

// Other returns the endpoint opposite to id. Callers must check Touches first.
func (l Link) Other(id valueobjects.NodeID) valueobjects.NodeID {
	if l.Source.Equals(id) {
		return l.Target
	}
	return l.Source
}

// pairKey identifies an unordered node pair
type pairKey struct {
	low, high string
}

func makePairKey(a, b valueobjects.NodeID) pairKey {
	if a.String() < b.String() {
		return pairKey{low: a.String(), high: b.String()}
	}
	return pairKey{low: b.String(), high: a.String()}
}

// Graph is the aggregate root for the social graph.
// Nodes and links keep their insertion order; queries rely on it for deterministic output.
type Graph struct {
	id        GraphID
	nodes     []*entities.Node
	index     map[valueobjects.NodeID]int
	links     []Link
	pairs     map[pairKey]struct{}
	createdAt time.Time
}

// NewGraph creates an empty graph aggregate
func NewGraph() *Graph {
	return &Graph{
		id:        NewGraphID(),
		nodes:     []*entities.Node{},
		index:     make(map[valueobjects.NodeID]int),
		links:     []Link{},
		pairs:     make(map[pairKey]struct{}),
		createdAt: time.Now(),
	}
}

// ID returns the graph's unique identifier
func (g *Graph) ID() GraphID {
	return g.id
}

// CreatedAt returns when the graph was created
func (g *Graph) CreatedAt() time.Time {
	return g.createdAt
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// LinkCount returns the number of links
func (g *Graph) LinkCount() int {
	return len(g.links)
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*entities.Node {
	nodes := make([]*entities.Node, len(g.nodes))
	copy(nodes, g.nodes)
	return nodes
}

// NodeIDs returns all node identifiers in insertion order
func (g *Graph) NodeIDs() []valueobjects.NodeID {
	ids := make([]valueobjects.NodeID, len(g.nodes))
	for i, node := range g.nodes {
		ids[i] = node.ID()
	}
	return ids
}

// Links returns all links in insertion order
func (g *Graph) Links() []Link {
	links := make([]Link, len(g.links))
	copy(links, g.links)
	return links
}

// HasNode checks if a node exists in the graph
func (g *Graph) HasNode(id valueobjects.NodeID) bool {
	_, exists := g.index[id]
	return exists
}

// GetNode retrieves a node by ID
func (g *Graph) GetNode(id valueobjects.NodeID) (*entities.Node, error) {
	i, exists := g.index[id]
	if !exists {
		return nil, pkgerrors.NewUnknownNodeError("node", id.String())
	}
	return g.nodes[i], nil
}

// Position returns the insertion position of a node, or -1 if absent
func (g *Graph) Position(id valueobjects.NodeID) int {
	if i, exists := g.index[id]; exists {
		return i
	}
	return -1
}

// AddNode appends a node to the graph
func (g *Graph) AddNode(node *entities.Node) error {
	if node == nil {
		return pkgerrors.NewValidationError("node cannot be nil")
	}
	if node.ID().IsZero() {
		return pkgerrors.NewValidationError("node ID cannot be empty")
	}
	if g.HasNode(node.ID()) {
		return pkgerrors.NewConflictError("node " + node.ID().String() + " already exists in graph")
	}

	g.index[node.ID()] = len(g.nodes)
	g.nodes = append(g.nodes, node)
	return nil
}

// IsLinked reports whether a and b share a link in either direction
func (g *Graph) IsLinked(a, b valueobjects.NodeID) bool {
	_, exists := g.pairs[makePairKey(a, b)]
	return exists
}

// Connect links source to target
func (g *Graph) Connect(source, target valueobjects.NodeID) (Link, error) {
	if !g.HasNode(source) {
		return Link{}, pkgerrors.NewUnknownNodeError("source node", source.String())
	}
	if !g.HasNode(target) {
		return Link{}, pkgerrors.NewUnknownNodeError("target node", target.String())
	}
	if source.Equals(target) {
		return Link{}, pkgerrors.NewValidationError("cannot connect node to itself")
	}

	key := makePairKey(source, target)
	if _, exists := g.pairs[key]; exists {
		return Link{}, pkgerrors.NewConflictError("link already exists between " + source.String() + " and " + target.String())
	}

	link := Link{Source: source, Target: target}
	g.pairs[key] = struct{}{}
	g.links = append(g.links, link)
	return link, nil
}

// Validate ensures graph invariants
func (g *Graph) Validate() error {
	if len(g.index) != len(g.nodes) {
		return pkgerrors.NewInternalError("node index out of sync")
	}
	seen := make(map[pairKey]struct{}, len(g.links))
	for _, link := range g.links {
		if !g.HasNode(link.Source) || !g.HasNode(link.Target) {
			return pkgerrors.NewInternalError("link references non-existent node")
		}
		if link.Source.Equals(link.Target) {
			return pkgerrors.NewInternalError("self link on " + link.Source.String())
		}
		key := makePairKey(link.Source, link.Target)
		if _, dup := seen[key]; dup {
			return pkgerrors.NewInternalError("duplicate link between " + link.Source.String() + " and " + link.Target.String())
		}
		seen[key] = struct{}{}
	}
	if len(seen) != len(g.pairs) {
		return pkgerrors.NewInternalError("link index out of sync")
	}
	return nil
}
