package main

import (
	"github.com/aretw0/routeops"
	"github.com/aretw0/routeops/internal/cli"
	"github.com/aretw0/routeops/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the operational HTTP API",
	Long: `Serves closures, reroute requests, step dispatch and Prometheus metrics
over HTTP until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		graphPath, _ := cmd.Flags().GetString("graph")
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		redisPassword, _ := cmd.Flags().GetString("redis-password")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		redisPrefix, _ := cmd.Flags().GetString("redis-prefix")
		quiet, _ := cmd.Flags().GetBool("quiet")

		if !quiet {
			tui.PrintBanner(cmd.ErrOrStderr(), routeops.Version)
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		err := cli.Serve(ctx, cli.ServeOptions{
			ConfigPath:    configPath,
			GraphPath:     graphPath,
			Addr:          addr,
			RedisAddr:     redisAddr,
			RedisPassword: redisPassword,
			RedisDB:       redisDB,
			RedisPrefix:   redisPrefix,
			Logger:        logger,
		})
		if sig := ctx.Signal(); sig != nil {
			logger.Info("Shutdown requested", "signal", sig.String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("graph", "g", "", "Graph file whose routes can be stepped through the API")
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis-addr", "", "Redis address for shared closures and published messages")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database")
	serveCmd.Flags().String("redis-prefix", "", "Redis key prefix (default routeops:)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
