package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/routeops/pkg/domain"
)

// GraphOverlay contains route data to highlight on the graph.
type GraphOverlay struct {
	Route       *domain.Route
	CurrentNode string
}

// GenerateMermaid produces a Mermaid flowchart of a navigation graph.
// Nodes carrying operation descriptors are drawn as subroutines and list them;
// edges are labelled with their on_enter (▶) and on_exit (◀) descriptors.
// Output is sorted by ID so that it is stable.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, id := range sortedKeys(g.Nodes) {
		node := g.Nodes[id]
		safeID := sanitizeMermaidID(node.ID)

		if len(node.Operations) == 0 {
			fmt.Fprintf(&sb, "    %s[\"%s\"]\n", safeID, node.ID)
			continue
		}
		fmt.Fprintf(&sb, "    %s[[\"%s <br/> %s\"]]\n", safeID, node.ID, operationTypes(node.Operations))
	}

	onRoute := map[string]bool{}
	if overlay != nil && overlay.Route != nil {
		for _, e := range overlay.Route.Edges {
			onRoute[e.ID] = true
		}
	}

	for _, id := range sortedKeys(g.Edges) {
		edge := g.Edges[id]
		if edge.Start == nil || edge.End == nil {
			continue
		}

		label := edge.ID
		var enter, exit []domain.Operation
		for _, op := range edge.Operations {
			switch op.Trigger {
			case domain.TriggerOnEnter:
				enter = append(enter, op)
			case domain.TriggerOnExit:
				exit = append(exit, op)
			}
		}
		if len(enter) > 0 {
			label += " ▶ " + operationTypes(enter)
		}
		if len(exit) > 0 {
			label += " ◀ " + operationTypes(exit)
		}

		arrow := "-->"
		if onRoute[edge.ID] {
			arrow = "==>"
		}
		fmt.Fprintf(&sb, "    %s %s|\"%s\"| %s\n",
			sanitizeMermaidID(edge.Start.ID), arrow, strings.ReplaceAll(label, "\"", "'"), sanitizeMermaidID(edge.End.ID))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		if overlay.Route != nil {
			visited := make(map[string]bool)
			for _, n := range routeNodes(overlay.Route) {
				safeID := sanitizeMermaidID(n.ID)
				if !visited[safeID] && n.ID != overlay.CurrentNode {
					visited[safeID] = true
					fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
				}
			}
		}
		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

func routeNodes(r *domain.Route) []*domain.Node {
	nodes := []*domain.Node{}
	if r.Start != nil {
		nodes = append(nodes, r.Start)
	}
	for _, e := range r.Edges {
		if e.End != nil {
			nodes = append(nodes, e.End)
		}
	}
	return nodes
}

func operationTypes(ops []domain.Operation) string {
	types := make([]string, 0, len(ops))
	for _, op := range ops {
		types = append(types, op.Type)
	}
	return strings.Join(types, ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
