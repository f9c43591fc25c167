package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/routeops/internal/presentation/graph"
	"github.com/aretw0/routeops/pkg/adapters/file"
)

// GraphOptions configures the graph command.
type GraphOptions struct {
	GraphPath string
	// Route optionally highlights a route.
	Route string
	// At highlights the node reached after that many edges of Route.
	At int
}

// Graph prints a Mermaid diagram of a graph file.
func Graph(ctx context.Context, w io.Writer, opts GraphOptions) error {
	g, err := file.NewLoader(opts.GraphPath).LoadGraph(ctx)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if opts.Route != "" {
		route := g.Route(opts.Route)
		if route == nil {
			return fmt.Errorf("route %q not found in %s", opts.Route, opts.GraphPath)
		}
		if opts.At < 0 || opts.At > len(route.Edges) {
			return fmt.Errorf("--at must be between 0 and %d", len(route.Edges))
		}
		overlay = &graph.GraphOverlay{Route: route, CurrentNode: route.Start.ID}
		if opts.At > 0 {
			overlay.CurrentNode = route.Edges[opts.At-1].End.ID
		}
	}

	printf(w, "%s", graph.GenerateMermaid(g, overlay))
	return nil
}
