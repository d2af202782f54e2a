package handlers

import (
	"context"

	"socialgraph/application/ports"
	pkgerrors "socialgraph/pkg/errors"
)

// readySnapshot returns the published graph, or an unavailable error while the graph
// is still loading or its load failed.
func readySnapshot(ctx context.Context, store ports.GraphStore) (*ports.GraphSnapshot, error) {
	snapshot, ok := store.Current(ctx)
	if !ok {
		return nil, pkgerrors.NewGraphUnavailableError("", nil)
	}
	if !snapshot.Ready() {
		return nil, pkgerrors.NewGraphUnavailableError(string(snapshot.Status), snapshot.Err)
	}
	return snapshot, nil
}
