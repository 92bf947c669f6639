package editor

import "github.com/tailored-agentic-units/layers/observability"

const (
	EventTransitionApplied  observability.EventType = "editor.transition.applied"
	EventTransitionRejected observability.EventType = "editor.transition.rejected"
	EventLayerSkipped       observability.EventType = "editor.layer.skipped"
	EventRootSynthesized    observability.EventType = "editor.root.synthesized"
)
