package handlers

import (
	"context"
	"strconv"

	"socialgraph/application/commands"
	"socialgraph/application/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// GraphBuilder rebuilds and publishes the session graph
type GraphBuilder interface {
	Build(ctx context.Context, seed int64) (*ports.GraphSnapshot, error)
}

// ReloadGraphHandler rebuilds the graph on demand. Concurrent reloads with the same
// seed share a single build.
type ReloadGraphHandler struct {
	builder GraphBuilder
	group   singleflight.Group
	logger  *zap.Logger
}

// NewReloadGraphHandler creates a new reload handler
func NewReloadGraphHandler(builder GraphBuilder, logger *zap.Logger) *ReloadGraphHandler {
	return &ReloadGraphHandler{
		builder: builder,
		logger:  logger,
	}
}

// Handle executes the reload command
func (h *ReloadGraphHandler) Handle(ctx context.Context, cmd commands.ReloadGraphCommand) error {
	key := strconv.FormatInt(cmd.Seed, 10)
	// the build is shared, so one caller going away must not cancel it for the rest
	buildCtx := context.WithoutCancel(ctx)
	_, err, shared := h.group.Do(key, func() (interface{}, error) {
		return h.builder.Build(buildCtx, cmd.Seed)
	})
	if shared {
		h.logger.Debug("Reload joined an in-flight build", zap.Int64("seed", cmd.Seed))
	}
	return err
}
