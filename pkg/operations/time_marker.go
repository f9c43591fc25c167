package operations

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/routeops/pkg/config"
	"github.com/aretw0/routeops/pkg/domain"
)

type timeMarkerParams struct {
	TimeTag string `mapstructure:"time_tag"`
}

// TimeMarker records how long the agent took to traverse each edge, measured
// from entering it to exiting it, as seconds in the exited edge's metadata
// under the configured time tag. Edges entered part-way (after a reroute)
// are not recorded.
type TimeMarker struct {
	name   string
	params timeMarkerParams
	now    func() time.Time

	mu        sync.Mutex
	edgeID    string
	startedAt time.Time
}

// NewTimeMarker creates an unconfigured TimeMarker operation.
func NewTimeMarker(deps Deps) *TimeMarker {
	deps = deps.withDefaults()
	return &TimeMarker{now: deps.Now}
}

func (m *TimeMarker) Configure(ctx context.Context, name string, params map[string]any) error {
	m.name = name
	m.params = timeMarkerParams{TimeTag: domain.KeyTimeTaken}
	if err := config.Decode(params, &m.params); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	if m.params.TimeTag == "" {
		m.params.TimeTag = domain.KeyTimeTaken
	}
	return nil
}

func (m *TimeMarker) ProcessType() domain.ProcessType { return domain.ProcessOnStatusChange }

func (m *TimeMarker) Name() string { return m.name }

func (m *TimeMarker) Perform(ctx context.Context, req domain.OperationRequest) (domain.OperationResult, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if exited := req.EdgeExited; exited != nil && m.edgeID != "" && exited.ID == m.edgeID {
		if exited.Metadata == nil {
			exited.Metadata = domain.Metadata{}
		}
		exited.Metadata[m.params.TimeTag] = now.Sub(m.startedAt).Seconds()
	}

	if req.EdgeEntered != nil {
		m.edgeID = req.EdgeEntered.ID
		m.startedAt = now
	} else {
		m.edgeID = ""
	}
	return domain.OperationResult{}, nil
}
