package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/routeops/internal/cli"
	"github.com/aretw0/routeops/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:   "routeops",
	Short: "routeops dispatches route operations along navigation routes",
	Long: `routeops creates the route operations listed in a configuration file and
dispatches them while an agent follows a route through a navigation graph.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")

		var err error
		logger, err = cli.NewLogger(os.Stderr, level, format)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.Failure(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Operations configuration file (defaults apply when empty)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
}
