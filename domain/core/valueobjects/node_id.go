package valueobjects

import (
	"encoding/json"
	"errors"
	"strings"
)

// NodeID is a value object identifying a node by the entity's name.
// Value objects are immutable and have no identity beyond their value.
type NodeID struct {
	value string
}

// NewNodeID creates a NodeID from an entity name
func NewNodeID(name string) (NodeID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return NodeID{}, errors.New("node ID cannot be empty")
	}
	return NodeID{value: name}, nil
}

// MustNodeID is NewNodeID for literals known to be valid. It panics on an empty name.
func MustNodeID(name string) NodeID {
	id, err := NewNodeID(name)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the string representation of the NodeID
func (id NodeID) String() string {
	return id.value
}

// Equals checks if two NodeIDs are equal
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// IsZero checks if the NodeID is the zero value
func (id NodeID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id NodeID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (id *NodeID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("NodeID must be a string")
	}
	parsed, err := NewNodeID(raw)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Strings converts a slice of NodeIDs to their names
func Strings(ids []NodeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.value
	}
	return out
}
