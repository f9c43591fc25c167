package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
)

// Loader implements ports.GraphLoader over an already built graph.
type Loader struct {
	graph *domain.Graph
}

var _ ports.GraphLoader = (*Loader)(nil)

// NewLoader creates a loader returning g.
func NewLoader(g *domain.Graph) *Loader {
	return &Loader{graph: g}
}

// LoadGraph returns the wrapped graph.
func (l *Loader) LoadGraph(ctx context.Context) (*domain.Graph, error) {
	if l.graph == nil {
		return nil, fmt.Errorf("%w: no graph loaded", domain.ErrGraphInvalid)
	}
	return l.graph, nil
}
