package operations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/routeops/pkg/config"
	"github.com/aretw0/routeops/pkg/domain"
	"github.com/aretw0/routeops/pkg/ports"
)

// SpeedLimit is the message AdjustSpeedLimit publishes.
// A limit of 100 percent, or 0 in absolute mode, means "no limit".
type SpeedLimit struct {
	EdgeID     string  `json:"edge_id"`
	Percentage bool    `json:"percentage"`
	SpeedLimit float64 `json:"speed_limit"`
}

type speedLimitParams struct {
	SpeedTag   string `mapstructure:"speed_tag"`
	Topic      string `mapstructure:"speed_limit_topic"`
	Percentage bool   `mapstructure:"percentage"`
}

// AdjustSpeedLimit publishes the speed limit stored in the metadata of every
// edge the agent enters.
type AdjustSpeedLimit struct {
	name      string
	params    speedLimitParams
	publisher ports.Publisher
	logger    *slog.Logger
}

// NewAdjustSpeedLimit creates an unconfigured AdjustSpeedLimit operation.
func NewAdjustSpeedLimit(deps Deps) *AdjustSpeedLimit {
	deps = deps.withDefaults()
	return &AdjustSpeedLimit{publisher: deps.Publisher, logger: deps.Logger}
}

func (a *AdjustSpeedLimit) Configure(ctx context.Context, name string, params map[string]any) error {
	a.name = name
	a.params = speedLimitParams{
		SpeedTag:   domain.KeySpeedLimit,
		Topic:      "speed_limit",
		Percentage: true,
	}
	if err := config.Decode(params, &a.params); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

func (a *AdjustSpeedLimit) ProcessType() domain.ProcessType { return domain.ProcessOnStatusChange }

func (a *AdjustSpeedLimit) Name() string { return a.name }

func (a *AdjustSpeedLimit) Perform(ctx context.Context, req domain.OperationRequest) (domain.OperationResult, error) {
	if req.EdgeEntered == nil {
		return domain.OperationResult{}, nil
	}

	noLimit := 0.0
	if a.params.Percentage {
		noLimit = 100.0
	}
	msg := SpeedLimit{
		EdgeID:     req.EdgeEntered.ID,
		Percentage: a.params.Percentage,
		SpeedLimit: req.EdgeEntered.Metadata.Float(a.params.SpeedTag, noLimit),
	}

	if err := a.publisher.Publish(ctx, a.params.Topic, msg); err != nil {
		return domain.OperationResult{}, fmt.Errorf("publish speed limit: %w", err)
	}
	a.logger.Debug("Speed limit adjusted", "operation", a.name, "edge", msg.EdgeID, "limit", msg.SpeedLimit)
	return domain.OperationResult{}, nil
}
