package ports

import (
	"context"

	"github.com/aretw0/routeops/pkg/domain"
)

// GraphLoader defines how the navigation graph is obtained.
// This allows the storage layer (file, memory) to be decoupled.
type GraphLoader interface {
	// LoadGraph returns a fully linked graph. Implementations return an error
	// wrapping domain.ErrGraphInvalid for inconsistent definitions.
	LoadGraph(ctx context.Context) (*domain.Graph, error)
}
