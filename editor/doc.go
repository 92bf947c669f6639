// Package editor holds the state of a layered vector document and the
// transition function that edits it.
//
// # Snapshots
//
// A Snapshot combines the layer forest, the active root and three ID sets
// (selected, collapsed, hidden). Snapshots are immutable: every edit returns
// a new Snapshot built from fragments of the old one, which stays valid.
// This is what lets undo history and change detection work by comparing
// pointers:
//
//	s0 := editor.NewSnapshot()
//	s1, _ := editor.Transition(s0, editor.AddLayers{Nodes: []*layer.Node{leaf}})
//	s2, _ := editor.Transition(s1, editor.AddLayers{})
//	// s2 == s1: an empty add changes nothing.
//
// # Invariants
//
// Every Snapshot returned by this package satisfies:
//   - the forest has at least one root;
//   - the active root ID names one of the roots;
//   - node IDs are unique across the whole forest.
//
// Deleting the last root synthesizes a fresh empty root. Deleting the active
// root moves the active pointer to the first remaining root.
//
// # Requests
//
// Edits are expressed as Request values: AddLayers, ClearSelection,
// ToggleExpansion, ToggleVisibility, ReplaceLayer, DeleteSelected,
// SelectLayers and SetActiveRoot. Most requests are total. ReplaceLayer and
// SetActiveRoot fail with a *TransitionError when they reference a node that
// does not exist; such errors match ErrInvariantViolation and signal a bug in
// the caller rather than a user mistake. A nil request or an unusable
// snapshot (nil, or a zero Snapshot{} with no roots) is also rejected with a
// *TransitionError, matching ErrUnknownRequest or ErrInvalidSnapshot but not
// ErrInvariantViolation.
//
// # Cleanup
//
// When nodes leave the forest their IDs are purged from the collapse and
// visibility sets. CleanupSubtree (the default) purges the whole removed
// subtree. CleanupDirect purges only the deleted ID itself, leaving the IDs
// of a deleted group's descendants behind.
//
// # Concurrency
//
// The reducer performs no I/O and takes no locks. Callers that share a
// current Snapshot between goroutines must serialize their edits; see the
// session package.
package editor
