// Package layer models the forest of vector layers edited by the editor and
// provides pure query and edit primitives over it.
//
// # Nodes
//
// A Node is one of three variants, distinguished by its Kind tag:
//
//   - KindRoot: a named top-level container. Roots only appear directly in a
//     forest, never below another node.
//   - KindGroup: a container nested anywhere below a root.
//   - KindLeaf: drawable content. Leaves never have children.
//
// Every node carries an identifier that is unique across the entire forest.
// Nodes are immutable: fields are private and every edit returns a new node.
//
// # Copy-on-write edits
//
// ReplaceNode and RemoveNode rebuild only the path from the root to the
// edited node. Siblings and untouched subtrees are shared by pointer with
// the input tree, so an edit costs time proportional to the depth of the
// edited node plus the width of the copied child lists:
//
//	root := layer.NewRoot("r", "Layer",
//	    layer.NewGroup("g", "Group", layer.NewLeaf("a", "A")),
//	    layer.NewLeaf("b", "B"),
//	)
//	updated, err := layer.ReplaceNode(root, layer.NewLeaf("a", "Renamed"))
//	// updated.Child(1) == root.Child(1): the "b" leaf is shared.
//
// # Failure modes
//
// Queries (FindNode, FindContainingRoot) report absence through a boolean.
// Edits fail with errors wrapping ErrNodeNotFound when the ID they target is
// absent; such a failure means the caller passed a stale or foreign ID.
package layer
