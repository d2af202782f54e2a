package handlers

import (
	"context"

	"socialgraph/application/commands"
	"socialgraph/application/commands/bus"
)

// Register adapts the command handlers to the bus
func Register(b *bus.CommandBus, reload *ReloadGraphHandler) error {
	return b.Register(commands.ReloadGraphCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) error {
		return reload.Handle(ctx, cmd.(commands.ReloadGraphCommand))
	}))
}
