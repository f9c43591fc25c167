package operations

import (
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/routeops/pkg/adapters/memory"
	"github.com/aretw0/routeops/pkg/ports"
	"github.com/aretw0/routeops/pkg/registry"
)

// Plugin types of the built-in operations.
const (
	PluginAdjustSpeedLimit = "AdjustSpeedLimit"
	PluginTimeMarker       = "TimeMarker"
	PluginReroutingService = "ReroutingService"
	PluginEdgeClosures     = "EdgeClosures"
	PluginTriggerEvent     = "TriggerEvent"
)

// Deps are the collaborators shared by the built-in operations.
// Nil fields are replaced with in-memory defaults by Register.
type Deps struct {
	Publisher ports.Publisher
	Closures  ports.ClosureStore
	Reroutes  *RerouteSignal
	Logger    *slog.Logger
	Now       func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Publisher == nil {
		d.Publisher = memory.NewPublisher()
	}
	if d.Closures == nil {
		d.Closures = memory.NewClosureStore()
	}
	if d.Reroutes == nil {
		d.Reroutes = &RerouteSignal{}
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// Register adds every built-in operation to reg.
func Register(reg *registry.Registry, deps Deps) {
	deps = deps.withDefaults()
	reg.Register(PluginAdjustSpeedLimit, func() ports.RouteOperation { return NewAdjustSpeedLimit(deps) })
	reg.Register(PluginTimeMarker, func() ports.RouteOperation { return NewTimeMarker(deps) })
	reg.Register(PluginReroutingService, func() ports.RouteOperation { return NewReroutingService(deps) })
	reg.Register(PluginEdgeClosures, func() ports.RouteOperation { return NewEdgeClosures(deps) })
	reg.Register(PluginTriggerEvent, func() ports.RouteOperation { return NewTriggerEvent(deps) })
}

// NewRegistry returns a registry holding the built-in operations.
func NewRegistry(deps Deps) *registry.Registry {
	reg := registry.NewRegistry()
	Register(reg, deps)
	return reg
}
