package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventOperationStart    EventType = "operation_start"
	EventOperationEnd      EventType = "operation_end"
	EventFeedbackOperation EventType = "feedback_operation"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	StepID    string    `json:"step_id"` // Correlates all events of one dispatch call.
}

// OperationEvent describes one operation invocation within a dispatch call.
type OperationEvent struct {
	EventBase
	Name       string        `json:"name"`
	Process    ProcessType   `json:"process"`
	Reroute    bool          `json:"reroute,omitempty"`
	BlockedIDs []string      `json:"blocked_ids,omitempty"`
	Duration   time.Duration `json:"duration,omitempty"`
	Err        error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnOperationStart    func(context.Context, *OperationEvent)
	OnOperationEnd      func(context.Context, *OperationEvent)
	OnFeedbackOperation func(context.Context, *OperationEvent)
}
