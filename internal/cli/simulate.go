package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/routeops/internal/follower"
	"github.com/aretw0/routeops/internal/presentation/tui"
	"github.com/aretw0/routeops/pkg/adapters/file"
	"github.com/aretw0/routeops/pkg/adapters/memory"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/operations"
)

// SimulateOptions configures the simulate command.
type SimulateOptions struct {
	ConfigPath     string
	GraphPath      string
	Route          string
	QueriesPerEdge int
	// RerouteFrom is the edge the agent was on when the route was replanned.
	RerouteFrom string
	// Close lists node or edge IDs closed before the traversal starts.
	Close []string
	JSON  bool
	// Plain prints the markdown report without terminal styling.
	Plain  bool
	Width  int
	Logger *slog.Logger
}

// SimulationOutput is the JSON document printed by simulate --json.
type SimulationOutput struct {
	Route     string           `json:"route"`
	Report    follower.Report  `json:"report"`
	Published []PublishedEvent `json:"published"`
}

// PublishedEvent is a message published by an operation during the simulation.
type PublishedEvent struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

// Simulate follows a route of a graph file, dispatching operations at every
// step, and prints what was triggered.
func Simulate(ctx context.Context, w io.Writer, opts SimulateOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	g, err := file.NewLoader(opts.GraphPath).LoadGraph(ctx)
	if err != nil {
		return err
	}
	route := g.Route(opts.Route)
	if route == nil {
		return fmt.Errorf("route %q not found in %s", opts.Route, opts.GraphPath)
	}

	var rerouting domain.ReroutingState
	if opts.RerouteFrom != "" {
		rerouting.CurrentEdge = g.Edge(opts.RerouteFrom)
		if rerouting.CurrentEdge == nil {
			return fmt.Errorf("edge %q not found in %s", opts.RerouteFrom, opts.GraphPath)
		}
	}

	publisher := memory.NewPublisher()
	closures := memory.NewClosureStore()
	for _, id := range opts.Close {
		if err := closures.Close(ctx, id); err != nil {
			return err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	eng, err := buildEngine(ctx, cfg, operations.Deps{Publisher: publisher, Closures: closures}, logger, createDebugHooks(logger))
	if err != nil {
		return err
	}

	report, err := follower.Follow(ctx, eng, route, follower.Options{
		QueriesPerEdge: opts.QueriesPerEdge,
		Rerouting:      rerouting,
		FrameID:        "map",
	})
	if err != nil {
		return err
	}
	logger.Info("Simulation finished", "route", opts.Route, "steps", len(report.Steps), "completed", report.Completed, "rerouted", report.Rerouted)

	if opts.JSON {
		out := SimulationOutput{Route: opts.Route, Report: report, Published: []PublishedEvent{}}
		for _, m := range publisher.Messages() {
			out.Published = append(out.Published, PublishedEvent{Topic: m.Topic, Payload: m.Payload})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	md := tui.ReportMarkdown(opts.Route, report)
	if opts.Plain {
		printf(w, "%s", md)
		return nil
	}
	render, err := tui.NewRenderer(opts.Width)
	if err != nil {
		return err
	}
	rendered, err := render(md)
	if err != nil {
		return err
	}
	printf(w, "%s", rendered)
	return nil
}
