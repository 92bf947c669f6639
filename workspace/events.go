package workspace

import "github.com/tailored-agentic-units/layers/observability"

// Workspace event types.
const (
	EventOpen  observability.EventType = "workspace.open"
	EventError observability.EventType = "workspace.error"
)
