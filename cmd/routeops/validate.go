package main

import (
	"github.com/aretw0/routeops/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the operations configuration",
	Long: `Creates every configured operation and prints how it is dispatched.
With --graph, also reports graph descriptors that no operation answers to.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		graphPath, _ := cmd.Flags().GetString("graph")

		return cli.Validate(cmd.Context(), cmd.OutOrStdout(), cli.ValidateOptions{
			ConfigPath: configPath,
			GraphPath:  graphPath,
			Logger:     logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("graph", "g", "", "Graph file to check against the configuration")
}
