package ports

import (
	"context"

	"github.com/aretw0/routeops/pkg/domain"
)

// RouteOperation is a pluggable behavior the engine runs along a route.
type RouteOperation interface {
	// Configure is called once, before any Perform, with the instance name and
	// the operation's configuration section.
	Configure(ctx context.Context, name string, params map[string]any) error

	// ProcessType reports when the operation should run. It must not change
	// after Configure.
	ProcessType() domain.ProcessType

	// Name returns the instance name given to Configure.
	Name() string

	// Perform executes the operation for the current step.
	Perform(ctx context.Context, req domain.OperationRequest) (domain.OperationResult, error)
}

// GraphOperation is implemented by graph-bound operations that are looked up by
// a type identifier distinct from their instance name.
type GraphOperation interface {
	RouteOperation
	OperationType() string
}

// OperationFactory creates unconfigured operation plugins by plugin type.
type OperationFactory interface {
	Create(pluginType string) (RouteOperation, error)
}
