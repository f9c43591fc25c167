package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/routeops"
	"github.com/aretw0/routeops/internal/follower"
	"github.com/aretw0/routeops/internal/presentation/graph"
	httpadapter "github.com/aretw0/routeops/pkg/adapters/http"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphResourceURI is the resource serving the loaded graph as a Mermaid diagram.
const GraphResourceURI = "routeops://graph"

// Deps are the collaborators exposed as tools. Nil collaborators disable the
// corresponding tools, as in the HTTP adapter.
type Deps struct {
	Closures  ports.ClosureStore
	Reroutes  httpadapter.Rerouter
	Processor follower.Processor
	Graph     *domain.Graph
	Logger    *slog.Logger
}

// StepResponse is the structured output of the process_step tool.
type StepResponse struct {
	Route  string                  `json:"route"`
	Index  int                     `json:"index"`
	Result domain.OperationsResult `json:"result"`
}

// ClosuresResponse is the structured output of the closure tools.
type ClosuresResponse struct {
	Closed []string `json:"closed"`
}

// Server exposes the operational API as Model Context Protocol tools.
type Server struct {
	deps      Deps
	mcpServer *server.MCPServer

	// Process calls are serialized: operations assume a single route follower.
	mu sync.Mutex
}

// NewServer creates the MCP server and registers the tools enabled by deps.
func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		deps:      deps,
		mcpServer: server.NewMCPServer("routeops-mcp", routeops.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves JSON-RPC over in/out until ctx is cancelled or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

// SSEHandler returns the SSE transport mounted on /sse and /message.
// baseURL is the externally reachable address advertised to clients.
func (s *Server) SSEHandler(baseURL string) http.Handler {
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))
	mux := http.NewServeMux()
	mux.Handle("/sse", sse.SSEHandler())
	mux.Handle("/message", sse.MessageHandler())
	return mux
}

func (s *Server) registerTools() {
	if s.deps.Reroutes != nil {
		s.mcpServer.AddTool(mcp.NewTool("request_reroute",
			mcp.WithDescription("Ask the route follower to compute a new route at its next query."),
		), s.handleReroute)
	}

	if s.deps.Closures != nil {
		s.mcpServer.AddTool(mcp.NewTool("list_closures",
			mcp.WithDescription("List the IDs of closed nodes and edges."),
			mcp.WithOutputSchema[ClosuresResponse](),
		), s.handleListClosures)

		s.mcpServer.AddTool(mcp.NewTool("close_element",
			mcp.WithDescription("Close a node or edge so that routes crossing it are blocked."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Node or edge ID")),
			mcp.WithOutputSchema[ClosuresResponse](),
		), s.handleClosure(s.deps.Closures.Close, "Element closed"))

		s.mcpServer.AddTool(mcp.NewTool("open_element",
			mcp.WithDescription("Reopen a previously closed node or edge."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Node or edge ID")),
			mcp.WithOutputSchema[ClosuresResponse](),
		), s.handleClosure(s.deps.Closures.Open, "Element opened"))
	}

	if s.deps.Processor != nil && s.deps.Graph != nil {
		s.mcpServer.AddTool(mcp.NewTool("process_step",
			mcp.WithDescription("Dispatch route operations for one tracking update on a named route."),
			mcp.WithString("route", mcp.Required(), mcp.Description("Route name")),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("Index of the current route edge; the edge count means the goal was reached")),
			mcp.WithBoolean("status_change", mcp.Description("Whether a node was just reached")),
			mcp.WithString("rerouting_edge", mcp.Description("Edge the agent was on when the route was replaced")),
			mcp.WithNumber("x", mcp.Description("Agent x position")),
			mcp.WithNumber("y", mcp.Description("Agent y position")),
			mcp.WithNumber("yaw", mcp.Description("Agent heading in radians")),
			mcp.WithOutputSchema[StepResponse](),
		), s.handleProcessStep)
	}
}

func (s *Server) registerResources() {
	if s.deps.Graph == nil {
		return
	}
	s.mcpServer.AddResource(mcp.NewResource(GraphResourceURI, "Navigation graph",
		mcp.WithResourceDescription("Nodes, edges and operations of the loaded graph as a Mermaid diagram"),
		mcp.WithMIMEType("text/vnd.mermaid"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphResourceURI,
				MIMEType: "text/vnd.mermaid",
				Text:     graph.GenerateMermaid(s.deps.Graph, nil),
			},
		}, nil
	})
}

func structured(v any) *mcp.CallToolResult {
	data, _ := json.Marshal(v)
	return mcp.NewToolResultStructured(v, string(data))
}

func (s *Server) handleReroute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.deps.Reroutes.RequestReroute()
	s.deps.Logger.Info("Reroute requested", "transport", "mcp")
	return mcp.NewToolResultText("reroute requested"), nil
}

func (s *Server) handleListClosures(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	closed, err := s.deps.Closures.Closed(ctx)
	if err != nil {
		s.deps.Logger.Error("List closures failed", "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("list closures failed: %v", err)), nil
	}
	return structured(ClosuresResponse{Closed: closed}), nil
}

func (s *Server) handleClosure(apply func(context.Context, string) error, msg string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil || id == "" {
			return mcp.NewToolResultError("id is required"), nil
		}
		if err := apply(ctx, id); err != nil {
			s.deps.Logger.Error("Closure update failed", "id", id, "err", err)
			return mcp.NewToolResultError(fmt.Sprintf("closure update failed: %v", err)), nil
		}
		s.deps.Logger.Info(msg, "id", id)

		closed, err := s.deps.Closures.Closed(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list closures failed: %v", err)), nil
		}
		return structured(ClosuresResponse{Closed: closed}), nil
	}
}

func (s *Server) handleProcessStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("route")
	if err != nil {
		return mcp.NewToolResultError("route is required"), nil
	}
	route := s.deps.Graph.Route(name)
	if route == nil {
		return mcp.NewToolResultError(fmt.Sprintf("route %q not found", name)), nil
	}

	index := request.GetInt("index", -1)
	state, err := follower.StateAt(route, index)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var rerouting domain.ReroutingState
	if id := request.GetString("rerouting_edge", ""); id != "" {
		rerouting.CurrentEdge = s.deps.Graph.Edge(id)
		if rerouting.CurrentEdge == nil {
			return mcp.NewToolResultError(fmt.Sprintf("unknown rerouting edge %q", id)), nil
		}
	}

	pose := domain.Pose{
		X:   request.GetFloat("x", 0),
		Y:   request.GetFloat("y", 0),
		Yaw: request.GetFloat("yaw", 0),
	}

	s.mu.Lock()
	res, err := s.deps.Processor.Process(ctx, request.GetBool("status_change", false), state, route, pose, rerouting)
	s.mu.Unlock()
	if err != nil {
		s.deps.Logger.Error("Step failed", "route", name, "index", index, "err", err)
		if errors.Is(err, domain.ErrOperationNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("operation not loaded: %v", err)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("step failed: %v", err)), nil
	}
	return structured(StepResponse{Route: name, Index: index, Result: res}), nil
}
