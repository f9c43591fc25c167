package operations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/routeops/pkg/config"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
)

// RouteEvent is the message TriggerEvent publishes.
type RouteEvent struct {
	Event       string      `json:"event"`
	Operation   string      `json:"operation"`
	NodeID      string      `json:"node_id,omitempty"`
	EdgeEntered string      `json:"edge_entered,omitempty"`
	EdgeExited  string      `json:"edge_exited,omitempty"`
	Pose        domain.Pose `json:"pose"`
}

type triggerEventParams struct {
	OperationType string `mapstructure:"operation_type"`
	DefaultTopic  string `mapstructure:"default_topic"`
}

// TriggerEvent publishes the event named by the graph descriptor that
// triggered it. Descriptors may override the topic with a "topic" key.
type TriggerEvent struct {
	name      string
	params    triggerEventParams
	publisher ports.Publisher
	logger    *slog.Logger
}

// NewTriggerEvent creates an unconfigured TriggerEvent operation.
func NewTriggerEvent(deps Deps) *TriggerEvent {
	deps = deps.withDefaults()
	return &TriggerEvent{publisher: deps.Publisher, logger: deps.Logger}
}

func (t *TriggerEvent) Configure(ctx context.Context, name string, params map[string]any) error {
	t.name = name
	t.params = triggerEventParams{
		OperationType: PluginTriggerEvent,
		DefaultTopic:  "route_events",
	}
	if err := config.Decode(params, &t.params); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	if t.params.OperationType == "" {
		return fmt.Errorf("operation_type must not be empty")
	}
	return nil
}

func (t *TriggerEvent) ProcessType() domain.ProcessType { return domain.ProcessOnGraph }

func (t *TriggerEvent) Name() string { return t.name }

// OperationType is the descriptor type this operation answers to.
func (t *TriggerEvent) OperationType() string { return t.params.OperationType }

func (t *TriggerEvent) Perform(ctx context.Context, req domain.OperationRequest) (domain.OperationResult, error) {
	msg := RouteEvent{
		Event:     req.Metadata.String(domain.KeyEvent, t.name),
		Operation: t.name,
		Pose:      req.Pose,
	}
	if req.Node != nil {
		msg.NodeID = req.Node.ID
	}
	if req.EdgeEntered != nil {
		msg.EdgeEntered = req.EdgeEntered.ID
	}
	if req.EdgeExited != nil {
		msg.EdgeExited = req.EdgeExited.ID
	}

	topic := req.Metadata.String(domain.KeyTopic, t.params.DefaultTopic)
	if err := t.publisher.Publish(ctx, topic, msg); err != nil {
		return domain.OperationResult{}, fmt.Errorf("publish event %s: %w", msg.Event, err)
	}
	t.logger.Info("Route event triggered", "operation", t.name, "event", msg.Event, "topic", topic)
	return domain.OperationResult{}, nil
}
