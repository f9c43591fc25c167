package dsl

import (
	"fmt"
	"math"

	"github.com/aretw0/routeops/pkg/domain"
)

// Builder manages the graph construction. Elements are resolved by Build,
// so they can be declared in any order.
type Builder struct {
	nodes  []*NodeBuilder
	edges  []*EdgeBuilder
	routes []routeDef
}

type routeDef struct {
	name  string
	edges []string
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{}
}

// Node adds a node at (x, y).
// If the node already exists, it returns the existing builder.
func (b *Builder) Node(id string, x, y float64) *NodeBuilder {
	for _, nb := range b.nodes {
		if nb.node.ID == id {
			return nb
		}
	}
	nb := &NodeBuilder{node: domain.Node{ID: id, X: x, Y: y}}
	b.nodes = append(b.nodes, nb)
	return nb
}

// Edge adds a directed edge between two nodes.
// If the edge already exists, it returns the existing builder.
func (b *Builder) Edge(id, start, end string) *EdgeBuilder {
	for _, eb := range b.edges {
		if eb.id == id {
			return eb
		}
	}
	eb := &EdgeBuilder{id: id, start: start, end: end}
	b.edges = append(b.edges, eb)
	return eb
}

// Route names a sequence of edges.
func (b *Builder) Route(name string, edgeIDs ...string) *Builder {
	b.routes = append(b.routes, routeDef{name: name, edges: edgeIDs})
	return b
}

// Build resolves references and returns the graph.
// Route costs are the sum of the euclidean lengths of their edges.
func (b *Builder) Build() (*domain.Graph, error) {
	g := domain.NewGraph()
	for _, nb := range b.nodes {
		n := nb.node
		g.Nodes[n.ID] = &n
	}

	for _, eb := range b.edges {
		start, end := g.Nodes[eb.start], g.Nodes[eb.end]
		if start == nil || end == nil {
			return nil, fmt.Errorf("%w: edge %s references unknown node", domain.ErrGraphInvalid, eb.id)
		}
		g.Edges[eb.id] = &domain.Edge{
			ID:         eb.id,
			Start:      start,
			End:        end,
			Operations: eb.operations,
			Metadata:   eb.metadata,
		}
	}

	for _, rd := range b.routes {
		if _, dup := g.Routes[rd.name]; dup {
			return nil, fmt.Errorf("%w: duplicate route %s", domain.ErrGraphInvalid, rd.name)
		}
		if len(rd.edges) == 0 {
			return nil, fmt.Errorf("%w: route %s has no edges", domain.ErrGraphInvalid, rd.name)
		}
		route := &domain.Route{}
		for i, id := range rd.edges {
			e := g.Edges[id]
			if e == nil {
				return nil, fmt.Errorf("%w: route %s references unknown edge %s", domain.ErrGraphInvalid, rd.name, id)
			}
			if i > 0 && route.Edges[i-1].End != e.Start {
				return nil, fmt.Errorf("%w: route %s is not contiguous at %s", domain.ErrGraphInvalid, rd.name, id)
			}
			route.Edges = append(route.Edges, e)
			route.Cost += math.Hypot(e.End.X-e.Start.X, e.End.Y-e.Start.Y)
		}
		route.Start = route.Edges[0].Start
		g.Routes[rd.name] = route
	}

	return g, nil
}
