package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/aretw0/routeops/internal/presentation/tui"
	"github.com/aretw0/routeops/internal/validator"
	"github.com/aretw0/routeops/pkg/adapters/file"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/operations"
)

// ValidateOptions configures the validate command.
type ValidateOptions struct {
	ConfigPath string
	// GraphPath optionally names a graph whose descriptors are checked
	// against the configured graph operations.
	GraphPath string
	Logger    *slog.Logger
}

// Validate creates every configured operation and reports how it was
// classified. With a graph, descriptor types no operation answers to are
// reported as feedback operations, or as errors when feedback is disabled.
func Validate(ctx context.Context, w io.Writer, opts ValidateOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	eng, err := buildEngine(ctx, cfg, operations.Deps{}, opts.Logger, domain.LifecycleHooks{})
	if err != nil {
		return err
	}

	cls := eng.Classification()
	printf(w, "%s\n", tui.Success(fmt.Sprintf("%d operations created", len(cfg.Operations))))
	printf(w, "  on_query:         %s\n", list(cls.Query))
	printf(w, "  on_status_change: %s\n", list(cls.Change))
	graphTypes := make([]string, 0, len(cls.Graph))
	for opType, name := range cls.Graph {
		graphTypes = append(graphTypes, opType+"="+name)
	}
	sort.Strings(graphTypes)
	printf(w, "  on_graph:         %s\n", list(graphTypes))

	if opts.GraphPath == "" {
		return nil
	}

	g, err := file.NewLoader(opts.GraphPath).LoadGraph(ctx)
	if err != nil {
		return err
	}
	printf(w, "%s\n", tui.Success(fmt.Sprintf("graph loaded: %d nodes, %d edges, %d routes", len(g.Nodes), len(g.Edges), len(g.Routes))))

	for _, finding := range validator.CheckGraph(g) {
		printf(w, "%s\n", tui.Warning(finding))
	}

	var errs []error
	for _, opType := range descriptorTypes(g) {
		if _, ok := cls.Graph[opType]; ok {
			continue
		}
		if cfg.FeedbackEnabled() {
			printf(w, "%s\n", tui.Warning(fmt.Sprintf("%s is handled through action feedback", opType)))
			continue
		}
		printf(w, "%s\n", tui.Failure(fmt.Sprintf("%s is not loaded in route operations", opType)))
		errs = append(errs, fmt.Errorf("%w: %s", domain.ErrOperationNotFound, opType))
	}
	return errors.Join(errs...)
}

// descriptorTypes returns the distinct operation types referenced by g, sorted.
func descriptorTypes(g *domain.Graph) []string {
	seen := map[string]bool{}
	for _, n := range g.Nodes {
		for _, op := range n.Operations {
			seen[op.Type] = true
		}
	}
	for _, e := range g.Edges {
		for _, op := range e.Operations {
			seen[op.Type] = true
		}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
