package main

import (
	"os"

	"github.com/aretw0/routeops/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <route>",
	Short: "Follow a route of a graph file and print the dispatched operations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		graphPath, _ := cmd.Flags().GetString("graph")
		queries, _ := cmd.Flags().GetInt("queries-per-edge")
		rerouteFrom, _ := cmd.Flags().GetString("reroute-from")
		closed, _ := cmd.Flags().GetStringSlice("close")
		jsonMode, _ := cmd.Flags().GetBool("json")
		plain, _ := cmd.Flags().GetBool("plain")

		// Styled output only makes sense on a terminal.
		width := 0
		fd := int(os.Stdout.Fd())
		if term.IsTerminal(fd) {
			if w, _, err := term.GetSize(fd); err == nil {
				width = w
			}
		} else {
			plain = true
		}

		return cli.Simulate(cmd.Context(), cmd.OutOrStdout(), cli.SimulateOptions{
			ConfigPath:     configPath,
			GraphPath:      graphPath,
			Route:          args[0],
			QueriesPerEdge: queries,
			RerouteFrom:    rerouteFrom,
			Close:          closed,
			JSON:           jsonMode,
			Plain:          plain,
			Width:          width,
			Logger:         logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().StringP("graph", "g", "graph.yaml", "Graph file")
	simulateCmd.Flags().IntP("queries-per-edge", "q", 0, "Tracking updates without status change per edge")
	simulateCmd.Flags().String("reroute-from", "", "Edge the agent was on when the route was planned")
	simulateCmd.Flags().StringSlice("close", nil, "Node or edge IDs closed before starting")
	simulateCmd.Flags().Bool("json", false, "Print the report as JSON")
	simulateCmd.Flags().Bool("plain", false, "Print the report as plain markdown")
}
