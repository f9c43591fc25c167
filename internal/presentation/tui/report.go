package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/routeops/internal/follower"
)

// ReportMarkdown formats a simulated traversal as a markdown document.
func ReportMarkdown(routeName string, report follower.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Route `%s`\n\n", routeName)
	b.WriteString("| # | kind | node | edge | triggered | reroute | blocked |\n")
	b.WriteString("|---|------|------|------|-----------|---------|---------|\n")

	for i, s := range report.Steps {
		kind := "query"
		if s.StatusChange {
			kind = "status"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %t | %s |\n",
			i,
			kind,
			cell(s.NodeID),
			cell(s.EdgeID),
			cell(strings.Join(s.Result.OperationsTriggered, ", ")),
			s.Result.Reroute,
			cell(strings.Join(s.Result.BlockedIDs, ", ")),
		)
	}

	b.WriteString("\n")
	switch {
	case report.Rerouted:
		fmt.Fprintf(&b, "**Reroute requested**, blocked: %s\n", cell(strings.Join(report.BlockedIDs, ", ")))
	case report.Completed:
		b.WriteString("**Goal reached**\n")
	default:
		b.WriteString("**Traversal stopped**\n")
	}
	return b.String()
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
