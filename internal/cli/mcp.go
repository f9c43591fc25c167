package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	mcpadapter "github.com/aretw0/routeops/pkg/adapters/mcp"
)

// Transports supported by the mcp command.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPOptions configures the mcp command.
type MCPOptions struct {
	ConfigPath string
	GraphPath  string
	Transport  string

	// Addr and Listener select where the SSE transport listens; Listener wins when set.
	Addr     string
	Listener net.Listener

	// In and Out carry the stdio transport; they default to os.Stdin and os.Stdout.
	In  io.Reader
	Out io.Writer

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	Logger *slog.Logger
}

// MCP exposes the operational API as Model Context Protocol tools until ctx
// is cancelled or, for stdio, the input is closed.
func MCP(ctx context.Context, opts MCPOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transport := opts.Transport
	if transport == "" {
		transport = TransportStdio
	}
	if transport != TransportStdio && transport != TransportSSE {
		return fmt.Errorf("unknown transport %q (supported: %s, %s)", transport, TransportStdio, TransportSSE)
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	graph, err := loadGraph(ctx, opts.GraphPath)
	if err != nil {
		return err
	}

	deps, closeRedis, err := openRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix, logger)
	if err != nil {
		return err
	}
	defer closeRedis()

	eng, err := buildEngine(ctx, cfg, deps, logger, createDebugHooks(logger))
	if err != nil {
		return err
	}
	shared := eng.Deps()

	srv := mcpadapter.NewServer(mcpadapter.Deps{
		Closures:  shared.Closures,
		Reroutes:  shared.Reroutes,
		Processor: eng,
		Graph:     graph,
		Logger:    logger,
	})

	if transport == TransportStdio {
		in, out := opts.In, opts.Out
		if in == nil {
			in = os.Stdin
		}
		if out == nil {
			out = os.Stdout
		}
		logger.Info("Starting MCP server", "transport", transport)
		return srv.ServeStdio(ctx, in, out)
	}

	addr := opts.Addr
	if opts.Listener != nil {
		addr = opts.Listener.Addr().String()
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	if host == "" {
		host = "localhost"
	}
	baseURL := "http://" + net.JoinHostPort(host, port)

	httpSrv := &http.Server{
		Addr:              opts.Addr,
		Handler:           srv.SSEHandler(baseURL),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("Starting MCP server", "transport", transport, "url", baseURL+"/sse")
	return runHTTP(ctx, httpSrv, opts.Listener, logger)
}
