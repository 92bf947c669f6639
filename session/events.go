package session

import "github.com/tailored-agentic-units/layers/observability"

const (
	EventApply observability.EventType = "session.apply"
	EventUndo  observability.EventType = "session.undo"
	EventRedo  observability.EventType = "session.redo"
	EventReset observability.EventType = "session.reset"
)
