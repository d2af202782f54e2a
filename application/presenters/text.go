// Package presenters renders query results as the human-readable text blocks shown to users.
package presenters

import (
	"fmt"
	"strings"

	"socialgraph/domain/core/valueobjects"
	"socialgraph/domain/services"
)

// NoMutualConnections is the text reported when two nodes share no neighbors
func NoMutualConnections(first, second string) string {
	return fmt.Sprintf("No mutual connections found between %s and %s.", first, second)
}

// MutualConnections renders the mutual-neighbor query result
func MutualConnections(first, second string, mutual []valueobjects.NodeID) string {
	if len(mutual) == 0 {
		return NoMutualConnections(first, second)
	}
	return fmt.Sprintf("Mutual connections of %s and %s: %s", first, second, joinIDs(mutual))
}

// Communities renders the community detection result, one line per community
func Communities(communities [][]valueobjects.NodeID) string {
	var b strings.Builder
	b.WriteString("Communities detected:")
	for i, community := range communities {
		fmt.Fprintf(&b, "\nCommunity %d: %s", i+1, joinIDs(community))
	}
	return b.String()
}

// Influential renders the centrality result as a title and a subtitle
func Influential(influence services.Influence) (title, subtitle string) {
	return influence.Node.String(), fmt.Sprintf("with %d connections", influence.Degree)
}

// NodeDetail renders one node and its direct neighbors
func NodeDetail(node valueobjects.NodeID, neighbors []valueobjects.NodeID) string {
	return fmt.Sprintf("Character: %s\nConnections: %s", node.String(), joinIDs(neighbors))
}

func joinIDs(ids []valueobjects.NodeID) string {
	return strings.Join(valueobjects.Strings(ids), ", ")
}
