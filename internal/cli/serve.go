package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/routeops/pkg/adapters/file"
	httpadapter "github.com/aretw0/routeops/pkg/adapters/http"
	redisadapter "github.com/aretw0/routeops/pkg/adapters/redis"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/observability"
	"github.com/aretw0/routeops/pkg/operations"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions configures the serve command.
type ServeOptions struct {
	ConfigPath string
	GraphPath  string
	Addr       string
	// Listener overrides Addr when set.
	Listener net.Listener

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	Logger *slog.Logger
}

// Serve runs the operational HTTP API until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
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

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}

	eng, err := buildEngine(ctx, cfg, deps, logger, observability.Chain(metrics.Hooks(), createDebugHooks(logger)))
	if err != nil {
		return err
	}
	shared := eng.Deps()

	srv := &http.Server{
		Addr: opts.Addr,
		Handler: httpadapter.NewHandler(&httpadapter.Server{
			Closures:  shared.Closures,
			Reroutes:  shared.Reroutes,
			Processor: eng,
			Graph:     graph,
			Gatherer:  reg,
			Logger:    logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return runHTTP(ctx, srv, opts.Listener, logger)
}

// loadGraph reads the graph file, or returns nil when path is empty.
func loadGraph(ctx context.Context, path string) (*domain.Graph, error) {
	if path == "" {
		return nil, nil
	}
	return file.NewLoader(path).LoadGraph(ctx)
}

// openRedis connects the redis-backed closure store and publisher. An empty
// addr keeps both in memory.
func openRedis(ctx context.Context, addr, password string, db int, prefix string, logger *slog.Logger) (operations.Deps, func(), error) {
	deps := operations.Deps{}
	if addr == "" {
		return deps, func() {}, nil
	}

	client := redisadapter.NewClient(addr, password, db)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return deps, nil, err
	}
	var redisOpts []redisadapter.Option
	if prefix != "" {
		redisOpts = append(redisOpts, redisadapter.WithPrefix(prefix))
	}
	deps.Closures = redisadapter.NewClosureStore(client, redisOpts...)
	deps.Publisher = redisadapter.NewPublisher(client, redisOpts...)
	logger.Info("Using redis", "addr", addr)
	return deps, func() { client.Close() }, nil
}

// runHTTP serves srv on ln (or srv.Addr when ln is nil) and shuts it down
// gracefully once ctx is cancelled.
func runHTTP(ctx context.Context, srv *http.Server, ln net.Listener, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if ln != nil {
			logger.Info("Starting server", "addr", ln.Addr().String())
			err = srv.Serve(ln)
		} else {
			logger.Info("Starting server", "addr", srv.Addr)
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		logger.Info("Server stopped")
		return nil
	})
	return g.Wait()
}
