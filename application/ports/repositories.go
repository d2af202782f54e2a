package ports

import (
	"context"
	"time"

	"socialgraph/domain/core/aggregates"
	"socialgraph/domain/services"
)

// Person is one record of the remote people collection. Only the name is consumed.
type Person struct {
	Name string `json:"name"`
}

// PeopleSource fetches pages of the remote people collection
type PeopleSource interface {
	// FetchPage returns the records of one page (pages start at 1)
	FetchPage(ctx context.Context, page int) ([]Person, error)
}

// GraphStatus describes the lifecycle of the session graph
type GraphStatus string

const (
	StatusLoading GraphStatus = "loading"
	StatusReady   GraphStatus = "ready"
	StatusFailed  GraphStatus = "failed"
)

// GraphSnapshot is the graph published for a session together with how it was built.
// A failed snapshot holds the nodes loaded before the failure and no links.
type GraphSnapshot struct {
	Graph    *aggregates.Graph
	Report   *services.SynthesisReport
	Status   GraphStatus
	Err      error
	LoadedAt time.Time
}

// Ready reports whether queries may run against the snapshot
func (s *GraphSnapshot) Ready() bool {
	return s != nil && s.Status == StatusReady && s.Graph != nil
}

// GraphStore holds the current session graph
type GraphStore interface {
	// Current returns the published snapshot, or false if nothing was published yet
	Current(ctx context.Context) (*GraphSnapshot, bool)
	// Publish replaces the current snapshot
	Publish(ctx context.Context, snapshot *GraphSnapshot) error
	// PublishIfNotReady publishes the snapshot unless a ready one is being served.
	// It reports whether the snapshot was published.
	PublishIfNotReady(ctx context.Context, snapshot *GraphSnapshot) (bool, error)
}
