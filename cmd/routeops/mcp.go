package main

import (
	"github.com/aretw0/routeops/internal/cli"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes closures, reroute requests and step dispatch as MCP tools, and the
loaded graph as a Mermaid resource, so that agents can operate a deployment.

Supported transports:
- stdio (default): JSON-RPC over standard input/output. Logs go to stderr.
- sse: Server-Sent Events over HTTP, on /sse and /message.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		graphPath, _ := cmd.Flags().GetString("graph")
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		redisPassword, _ := cmd.Flags().GetString("redis-password")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		redisPrefix, _ := cmd.Flags().GetString("redis-prefix")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		err := cli.MCP(ctx, cli.MCPOptions{
			ConfigPath:    configPath,
			GraphPath:     graphPath,
			Transport:     transport,
			Addr:          addr,
			In:            cmd.InOrStdin(),
			Out:           cmd.OutOrStdout(),
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
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("graph", "g", "", "Graph file whose routes can be stepped through the tools")
	mcpCmd.Flags().String("transport", cli.TransportStdio, "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().StringP("addr", "a", ":8081", "Address to listen on (only for sse)")
	mcpCmd.Flags().String("redis-addr", "", "Redis address for shared closures and published messages")
	mcpCmd.Flags().String("redis-password", "", "Redis password")
	mcpCmd.Flags().Int("redis-db", 0, "Redis database")
	mcpCmd.Flags().String("redis-prefix", "", "Redis key prefix (default routeops:)")
}
