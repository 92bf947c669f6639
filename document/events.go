package document

import "github.com/tailored-agentic-units/layers/observability"

const (
	EventLoad   observability.EventType = "document.load"
	EventSave   observability.EventType = "document.save"
	EventDelete observability.EventType = "document.delete"
)
