package editor

import "github.com/tailored-agentic-units/layers/layer"

// RequestKind is the tag of a Request variant. The string values double as
// the "type" field of encoded request scripts.
type RequestKind string

const (
	KindAddLayers        RequestKind = "add_layers"
	KindClearSelection   RequestKind = "clear_selection"
	KindToggleExpansion  RequestKind = "toggle_expansion"
	KindToggleVisibility RequestKind = "toggle_visibility"
	KindReplaceLayer     RequestKind = "replace_layer"
	KindDeleteSelected   RequestKind = "delete_selected"
	KindSelectLayers     RequestKind = "select_layers"
	KindSetActiveRoot    RequestKind = "set_active_root"
)

// Request is one edit handed to the reducer. The set of variants is closed:
// only the types declared in this package implement it, and they are passed
// by value.
type Request interface {
	Kind() RequestKind
	request()
}

// AddLayers inserts Nodes. Roots become new top-level roots; every other
// node is appended to the children of the active root.
type AddLayers struct {
	Nodes []*layer.Node `json:"nodes"`
}

// ClearSelection empties the selection.
type ClearSelection struct{}

// ToggleExpansion collapses LayerID when it is expanded and expands it when
// it is collapsed. With Recursive set, every descendant follows LayerID.
type ToggleExpansion struct {
	LayerID   string `json:"layer_id"`
	Recursive bool   `json:"recursive,omitempty"`
}

// ToggleVisibility hides or shows LayerID alone.
type ToggleVisibility struct {
	LayerID string `json:"layer_id"`
}

// ReplaceLayer swaps the node sharing Node's ID for Node.
type ReplaceLayer struct {
	Node *layer.Node `json:"node"`
}

// DeleteSelected removes every selected node together with its subtree.
type DeleteSelected struct{}

// SelectLayers sets the selection to the IDs that name existing nodes, or
// adds them to the current selection when Extend is set.
type SelectLayers struct {
	IDs    []string `json:"ids"`
	Extend bool     `json:"extend,omitempty"`
}

// SetActiveRoot makes the root RootID the target of AddLayers.
type SetActiveRoot struct {
	RootID string `json:"root_id"`
}

func (AddLayers) Kind() RequestKind        { return KindAddLayers }
func (ClearSelection) Kind() RequestKind   { return KindClearSelection }
func (ToggleExpansion) Kind() RequestKind  { return KindToggleExpansion }
func (ToggleVisibility) Kind() RequestKind { return KindToggleVisibility }
func (ReplaceLayer) Kind() RequestKind     { return KindReplaceLayer }
func (DeleteSelected) Kind() RequestKind   { return KindDeleteSelected }
func (SelectLayers) Kind() RequestKind     { return KindSelectLayers }
func (SetActiveRoot) Kind() RequestKind    { return KindSetActiveRoot }

func (AddLayers) request()        {}
func (ClearSelection) request()   {}
func (ToggleExpansion) request()  {}
func (ToggleVisibility) request() {}
func (ReplaceLayer) request()     {}
func (DeleteSelected) request()   {}
func (SelectLayers) request()     {}
func (SetActiveRoot) request()    {}
