package domain

// Metadata keys read by the built-in operations.
const (
	// KeySpeedLimit is the default edge metadata key holding a speed limit.
	KeySpeedLimit = "speed_limit"
	// KeyTimeTaken is the default key under which traversal durations are recorded.
	KeyTimeTaken = "abs_time_taken"
	// KeyEvent names the event a TriggerEvent descriptor publishes.
	KeyEvent = "event"
	// KeyTopic overrides the topic a TriggerEvent descriptor publishes on.
	KeyTopic = "topic"
)
