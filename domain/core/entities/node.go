package entities

import (
	"time"

	"socialgraph/domain/core/valueobjects"
)

// Node is a graph vertex standing for one entity of the loaded dataset.
// Nodes are created by the loader and never mutated afterwards.
type Node struct {
	id        valueobjects.NodeID
	source    string
	createdAt time.Time
}

// NewNode creates a node for the given entity name.
// source records where the entity came from (e.g. the page URL) and may be empty.
func NewNode(id valueobjects.NodeID, source string) *Node {
	return &Node{
		id:        id,
		source:    source,
		createdAt: time.Now(),
	}
}

// ID returns the node's identifier
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Source returns where the node's entity was loaded from
func (n *Node) Source() string {
	return n.source
}

// CreatedAt returns when the node was created
func (n *Node) CreatedAt() time.Time {
	return n.createdAt
}
