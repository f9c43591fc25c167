package tui

import (
	"testing"

	"github.com/aretw0/routeops/internal/follower"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportMarkdown(t *testing.T) {
	report := follower.Report{
		Steps: []follower.Step{
			{Index: 0, StatusChange: true, NodeID: "a", EdgeID: "ab", Result: domain.OperationsResult{
				OperationsTriggered: []string{"Speed", "Closures"},
			}},
			{Index: 0, NodeID: "a", EdgeID: "ab", Result: domain.OperationsResult{
				Reroute:             true,
				BlockedIDs:          []string{"bc"},
				OperationsTriggered: []string{"Closures"},
			}},
		},
		Rerouted:   true,
		BlockedIDs: []string{"bc"},
	}

	md := ReportMarkdown("main", report)
	assert.Contains(t, md, "# Route `main`")
	assert.Contains(t, md, "| 0 | status | a | ab | Speed, Closures | false | - |")
	assert.Contains(t, md, "| 1 | query | a | ab | Closures | true | bc |")
	assert.Contains(t, md, "**Reroute requested**, blocked: bc")
}

func TestReportMarkdown_Completed(t *testing.T) {
	md := ReportMarkdown("r", follower.Report{Completed: true})
	assert.Contains(t, md, "**Goal reached**")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(80)
	require.NoError(t, err)

	out, err := render(ReportMarkdown("main", follower.Report{Completed: true}))
	require.NoError(t, err)
	assert.Contains(t, out, "Goal reached")
}
