package file

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
	"gopkg.in/yaml.v3"
)

// graphFile is the on-disk layout of a navigation graph.
type graphFile struct {
	Nodes  []nodeDef           `yaml:"nodes"`
	Edges  []edgeDef           `yaml:"edges"`
	Routes map[string][]string `yaml:"routes"`
}

type nodeDef struct {
	ID         string          `yaml:"id"`
	X          float64         `yaml:"x"`
	Y          float64         `yaml:"y"`
	Metadata   domain.Metadata `yaml:"metadata"`
	Operations []operationDef  `yaml:"operations"`
}

type edgeDef struct {
	ID         string          `yaml:"id"`
	Start      string          `yaml:"start"`
	End        string          `yaml:"end"`
	Cost       *float64        `yaml:"cost"`
	Metadata   domain.Metadata `yaml:"metadata"`
	Operations []operationDef  `yaml:"operations"`
}

type operationDef struct {
	Type     string          `yaml:"type"`
	Trigger  string          `yaml:"trigger"`
	Metadata domain.Metadata `yaml:"metadata"`
}

// Loader implements ports.GraphLoader reading a YAML (or JSON) graph file.
type Loader struct {
	path string
}

var _ ports.GraphLoader = (*Loader)(nil)

// NewLoader creates a loader for the graph file at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// LoadGraph reads, links and validates the graph file.
func (l *Loader) LoadGraph(ctx context.Context) (*domain.Graph, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph: %w", err)
	}
	return Parse(data)
}

// Parse builds a graph from its YAML representation.
// Edge costs default to the distance between their end nodes.
func Parse(data []byte) (*domain.Graph, error) {
	var def graphFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGraphInvalid, err)
	}

	g := domain.NewGraph()
	costs := make(map[string]float64, len(def.Edges))

	for _, n := range def.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node without id", domain.ErrGraphInvalid)
		}
		if _, dup := g.Nodes[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node %s", domain.ErrGraphInvalid, n.ID)
		}
		ops, err := convertOperations(n.Operations)
		if err != nil {
			return nil, fmt.Errorf("%w: node %s: %w", domain.ErrGraphInvalid, n.ID, err)
		}
		g.Nodes[n.ID] = &domain.Node{ID: n.ID, X: n.X, Y: n.Y, Metadata: n.Metadata, Operations: ops}
	}

	for _, e := range def.Edges {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: edge without id", domain.ErrGraphInvalid)
		}
		if _, dup := g.Edges[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate edge %s", domain.ErrGraphInvalid, e.ID)
		}
		start, end := g.Nodes[e.Start], g.Nodes[e.End]
		if start == nil || end == nil {
			return nil, fmt.Errorf("%w: edge %s references unknown node", domain.ErrGraphInvalid, e.ID)
		}
		ops, err := convertOperations(e.Operations)
		if err != nil {
			return nil, fmt.Errorf("%w: edge %s: %w", domain.ErrGraphInvalid, e.ID, err)
		}
		g.Edges[e.ID] = &domain.Edge{ID: e.ID, Start: start, End: end, Metadata: e.Metadata, Operations: ops}

		if e.Cost != nil {
			costs[e.ID] = *e.Cost
		} else {
			costs[e.ID] = math.Hypot(end.X-start.X, end.Y-start.Y)
		}
	}

	for name, edgeIDs := range def.Routes {
		route, err := buildRoute(g, costs, edgeIDs)
		if err != nil {
			return nil, fmt.Errorf("%w: route %s: %w", domain.ErrGraphInvalid, name, err)
		}
		g.Routes[name] = route
	}

	return g, nil
}

func convertOperations(defs []operationDef) ([]domain.Operation, error) {
	ops := make([]domain.Operation, 0, len(defs))
	for _, d := range defs {
		if d.Type == "" {
			return nil, fmt.Errorf("operation without type")
		}
		trigger, err := domain.ParseOperationTrigger(d.Trigger)
		if err != nil {
			return nil, fmt.Errorf("operation %s: %w", d.Type, err)
		}
		ops = append(ops, domain.Operation{Type: d.Type, Trigger: trigger, Metadata: d.Metadata})
	}
	return ops, nil
}

func buildRoute(g *domain.Graph, costs map[string]float64, edgeIDs []string) (*domain.Route, error) {
	if len(edgeIDs) == 0 {
		return nil, fmt.Errorf("no edges")
	}

	route := &domain.Route{}
	for i, id := range edgeIDs {
		edge := g.Edges[id]
		if edge == nil {
			return nil, fmt.Errorf("unknown edge %s", id)
		}
		if i > 0 && route.Edges[i-1].End != edge.Start {
			return nil, fmt.Errorf("edge %s does not start where %s ends", id, route.Edges[i-1].ID)
		}
		route.Edges = append(route.Edges, edge)
		route.Cost += costs[id]
	}
	route.Start = route.Edges[0].Start
	return route, nil
}
