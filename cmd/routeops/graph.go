package main

import (
	"github.com/aretw0/routeops/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the graph visualization",
	Long:  `Outputs a Mermaid diagram (graph LR) of a graph file, optionally highlighting a route.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		graphPath, _ := cmd.Flags().GetString("graph")
		route, _ := cmd.Flags().GetString("route")
		at, _ := cmd.Flags().GetInt("at")

		return cli.Graph(cmd.Context(), cmd.OutOrStdout(), cli.GraphOptions{
			GraphPath: graphPath,
			Route:     route,
			At:        at,
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("graph", "g", "graph.yaml", "Graph file")
	graphCmd.Flags().StringP("route", "r", "", "Route to highlight")
	graphCmd.Flags().Int("at", 0, "Highlight the node reached after this many edges of the route")
}
