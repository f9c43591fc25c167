package operations

import (
	"context"
	"fmt"

	"github.com/aretw0/routeops/pkg/config"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
)

type edgeClosuresParams struct {
	RerouteOnClosure bool `mapstructure:"reroute_on_closure"`
}

// EdgeClosures blocks closed nodes and edges that lie on the remaining part of
// the route, starting with the edge currently being traversed.
type EdgeClosures struct {
	name   string
	params edgeClosuresParams
	store  ports.ClosureStore
}

// NewEdgeClosures creates an unconfigured EdgeClosures operation.
func NewEdgeClosures(deps Deps) *EdgeClosures {
	deps = deps.withDefaults()
	return &EdgeClosures{store: deps.Closures}
}

func (c *EdgeClosures) Configure(ctx context.Context, name string, params map[string]any) error {
	c.name = name
	c.params = edgeClosuresParams{RerouteOnClosure: true}
	if err := config.Decode(params, &c.params); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

func (c *EdgeClosures) ProcessType() domain.ProcessType { return domain.ProcessOnQuery }

func (c *EdgeClosures) Name() string { return c.name }

func (c *EdgeClosures) Perform(ctx context.Context, req domain.OperationRequest) (domain.OperationResult, error) {
	ahead := remainingElements(req.Route, req.EdgeEntered)
	if len(ahead) == 0 {
		return domain.OperationResult{}, nil
	}

	closed, err := c.store.Closed(ctx)
	if err != nil {
		return domain.OperationResult{}, fmt.Errorf("list closures: %w", err)
	}
	isClosed := make(map[string]bool, len(closed))
	for _, id := range closed {
		isClosed[id] = true
	}

	var blocked []string
	for _, id := range ahead {
		if isClosed[id] {
			blocked = append(blocked, id)
		}
	}
	return domain.OperationResult{
		Reroute:    c.params.RerouteOnClosure && len(blocked) > 0,
		BlockedIDs: blocked,
	}, nil
}

// remainingElements lists edge and node IDs from current to the goal, in route order.
func remainingElements(route *domain.Route, current *domain.Edge) []string {
	if route == nil || current == nil {
		return nil
	}
	start := -1
	for i, e := range route.Edges {
		if e == current {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var ids []string
	for _, e := range route.Edges[start:] {
		ids = append(ids, e.ID)
		if e.End != nil {
			ids = append(ids, e.End.ID)
		}
	}
	return ids
}
