package memory

import (
	"context"
	"sync"

	"socialgraph/application/ports"
	pkgerrors "socialgraph/pkg/errors"

	"go.uber.org/zap"
)

// GraphStore keeps the session graph in memory.
// Snapshots are immutable once published, so readers only need the pointer swap guarded.
type GraphStore struct {
	mu       sync.RWMutex
	snapshot *ports.GraphSnapshot
	logger   *zap.Logger
}

// NewGraphStore creates an empty in-memory graph store
func NewGraphStore(logger *zap.Logger) *GraphStore {
	return &GraphStore{logger: logger}
}

// Current returns the published snapshot
func (s *GraphStore) Current(ctx context.Context) (*ports.GraphSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.snapshot != nil
}

// Publish replaces the current snapshot
func (s *GraphStore) Publish(ctx context.Context, snapshot *ports.GraphSnapshot) error {
	if snapshot == nil {
		return pkgerrors.NewValidationError("snapshot cannot be nil")
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logPublished(snapshot)
	return nil
}

// PublishIfNotReady publishes the snapshot only while no ready snapshot is current.
// The check and the swap happen under one lock.
func (s *GraphStore) PublishIfNotReady(ctx context.Context, snapshot *ports.GraphSnapshot) (bool, error) {
	if snapshot == nil {
		return false, pkgerrors.NewValidationError("snapshot cannot be nil")
	}

	s.mu.Lock()
	if s.snapshot.Ready() {
		s.mu.Unlock()
		return false, nil
	}
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logPublished(snapshot)
	return true, nil
}

func (s *GraphStore) logPublished(snapshot *ports.GraphSnapshot) {
	fields := []zap.Field{zap.String("status", string(snapshot.Status))}
	if snapshot.Graph != nil {
		fields = append(fields,
			zap.String("graphID", snapshot.Graph.ID().String()),
			zap.Int("nodes", snapshot.Graph.NodeCount()),
			zap.Int("links", snapshot.Graph.LinkCount()),
		)
	}
	s.logger.Debug("Graph snapshot published", fields...)
}

var _ ports.GraphStore = (*GraphStore)(nil)
