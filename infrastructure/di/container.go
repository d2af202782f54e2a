package di

import (
	"socialgraph/application/commands/bus"
	"socialgraph/application/ports"
	querybus "socialgraph/application/queries/bus"
	"socialgraph/application/services"
	"socialgraph/infrastructure/config"
	"socialgraph/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *observability.Collector
	Tracer     *observability.Tracer
	Store      ports.GraphStore
	Loader     *services.GraphLoader
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
}
