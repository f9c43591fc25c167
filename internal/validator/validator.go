package validator

import (
	"fmt"
	"sort"

	"github.com/aretw0/routeops/pkg/domain"
)

// CheckGraph reports graph problems that do not prevent loading but make
// parts of it inert: descriptors whose trigger never fires where they are
// attached, and nodes no route can reach.
func CheckGraph(g *domain.Graph) []string {
	var findings []string

	for _, id := range sortedKeys(g.Nodes) {
		for _, op := range g.Nodes[id].Operations {
			if op.Trigger != domain.TriggerNode {
				findings = append(findings, fmt.Sprintf("node %s: %s descriptor with trigger %s never fires on a node", id, op.Type, op.Trigger))
			}
		}
	}
	for _, id := range sortedKeys(g.Edges) {
		for _, op := range g.Edges[id].Operations {
			if op.Trigger == domain.TriggerNode {
				findings = append(findings, fmt.Sprintf("edge %s: %s descriptor with trigger %s never fires on an edge", id, op.Type, op.Trigger))
			}
		}
	}

	if len(g.Routes) == 0 {
		return findings
	}

	// Crawl outgoing edges from every route start.
	outgoing := make(map[string][]*domain.Edge)
	for _, e := range g.Edges {
		if e.Start != nil {
			outgoing[e.Start.ID] = append(outgoing[e.Start.ID], e)
		}
	}
	visited := make(map[string]bool)
	var queue []string
	for _, r := range g.Routes {
		if r.Start != nil {
			queue = append(queue, r.Start.ID)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] {
			continue
		}
		visited[current] = true
		for _, e := range outgoing[current] {
			if e.End != nil && !visited[e.End.ID] {
				queue = append(queue, e.End.ID)
			}
		}
	}

	for _, id := range sortedKeys(g.Nodes) {
		if !visited[id] {
			findings = append(findings, fmt.Sprintf("node %s is unreachable from any route start", id))
		}
	}
	return findings
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
