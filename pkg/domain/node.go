package domain

import "fmt"

// Metadata holds free-form key-value pairs attached to graph elements and
// operation descriptors. It is passed through to operations unchanged.
type Metadata map[string]any

// Float returns the numeric value stored under key, or def when the key is
// missing or not a number.
func (m Metadata) Float(key string, def float64) float64 {
	v, ok := m[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return def
	}
}

// String returns the value stored under key formatted as a string, or def.
func (m Metadata) String(key, def string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns the boolean stored under key, or def.
func (m Metadata) Bool(key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

// Node is a point in the navigation graph.
type Node struct {
	ID string  `json:"id" yaml:"id"`
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`

	// Operations are processed in list order when the node is reached.
	Operations []Operation `json:"operations,omitempty" yaml:"operations,omitempty"`
	Metadata   Metadata    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Edge is a directed connection between two nodes.
// The graph owns nodes and edges; everything else references them by pointer.
type Edge struct {
	ID    string `json:"id" yaml:"id"`
	Start *Node  `json:"-" yaml:"-"`
	End   *Node  `json:"-" yaml:"-"`

	Operations []Operation `json:"operations,omitempty" yaml:"operations,omitempty"`
	Metadata   Metadata    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Route is an ordered sequence of edges starting at Start.
type Route struct {
	Start *Node
	Edges []*Edge
	Cost  float64
}

// Goal returns the final node of the route, or Start for an empty route.
func (r *Route) Goal() *Node {
	if r == nil {
		return nil
	}
	if len(r.Edges) == 0 {
		return r.Start
	}
	return r.Edges[len(r.Edges)-1].End
}

// Graph is a navigation graph with named routes through it.
type Graph struct {
	Nodes  map[string]*Node
	Edges  map[string]*Edge
	Routes map[string]*Route
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:  make(map[string]*Node),
		Edges:  make(map[string]*Edge),
		Routes: make(map[string]*Route),
	}
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node { return g.Nodes[id] }

// Edge returns the edge with the given ID, or nil.
func (g *Graph) Edge(id string) *Edge { return g.Edges[id] }

// Route returns the named route, or nil.
func (g *Graph) Route(name string) *Route { return g.Routes[name] }

// Pose is the agent's position at the time of a dispatch call.
type Pose struct {
	FrameID string  `json:"frame_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Yaw     float64 `json:"yaw"`
}
