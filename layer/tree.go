package layer

import "fmt"

// Walk visits n and its descendants depth-first in pre-order. Returning false
// from fn stops the walk; Walk reports whether it ran to completion.
func Walk(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// find returns the node with id inside the subtree rooted at n.
func find(n *Node, id string) (*Node, bool) {
	var found *Node
	Walk(n, func(cur *Node) bool {
		if cur.id == id {
			found = cur
			return false
		}
		return true
	})
	return found, found != nil
}

// Contains reports whether id names n or one of its descendants.
func Contains(n *Node, id string) bool {
	_, ok := find(n, id)
	return ok
}

// FindNode searches every root of forest, in order, for the node with id.
// Absence is reported through the boolean, not an error.
func FindNode(forest []*Node, id string) (*Node, bool) {
	for _, root := range forest {
		if n, ok := find(root, id); ok {
			return n, true
		}
	}
	return nil, false
}

// FindContainingRoot returns the first root of forest whose subtree,
// including the root itself, holds id.
func FindContainingRoot(forest []*Node, id string) (*Node, bool) {
	for _, root := range forest {
		if Contains(root, id) {
			return root, true
		}
	}
	return nil, false
}

// IndexOf returns the position in forest of the root with id, or -1.
func IndexOf(forest []*Node, id string) int {
	for i, root := range forest {
		if root.id == id {
			return i
		}
	}
	return -1
}

// ReplaceNode returns a copy of root in which the node sharing replacement's
// ID is swapped for replacement. Only the path from root to that node is
// copied; every other subtree is shared with the original.
//
// Roots can only be replaced by roots and nested nodes only by non-roots.
func ReplaceNode(root, replacement *Node) (*Node, error) {
	if replacement == nil {
		return nil, fmt.Errorf("%w: nil replacement", ErrInvalidForest)
	}

	target, ok := find(root, replacement.id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, replacement.id)
	}
	if target.IsRoot() != replacement.IsRoot() {
		return nil, fmt.Errorf("%w: cannot replace %s %s with a %s",
			ErrKindMismatch, target.kind, target.id, replacement.kind)
	}

	if target == root {
		return replacement, nil
	}

	updated, _ := replaceIn(root, replacement)
	return updated, nil
}

func replaceIn(n, replacement *Node) (*Node, bool) {
	for i, c := range n.children {
		if c.id == replacement.id {
			return n.withChild(i, replacement), true
		}
		if updated, ok := replaceIn(c, replacement); ok {
			return n.withChild(i, updated), true
		}
	}
	return n, false
}

// RemoveNode returns a copy of root without the node named id. When id is
// root's own ID the result is ErrRemoveRoot: the caller must drop the root
// from its forest instead.
func RemoveNode(root *Node, id string) (*Node, error) {
	if root.id == id {
		return nil, fmt.Errorf("%w: %s", ErrRemoveRoot, id)
	}

	updated, ok := removeIn(root, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	return updated, nil
}

func removeIn(n *Node, id string) (*Node, bool) {
	for i, c := range n.children {
		if c.id == id {
			return n.withoutChild(i), true
		}
		if updated, ok := removeIn(c, id); ok {
			return n.withChild(i, updated), true
		}
	}
	return n, false
}

// CollectSubtreeIDs returns the ID of n followed by the IDs of all its
// descendants in depth-first pre-order.
func CollectSubtreeIDs(n *Node) []string {
	var ids []string
	Walk(n, func(cur *Node) bool {
		ids = append(ids, cur.id)
		return true
	})
	return ids
}

// CollectForestIDs returns the IDs of every node of every root in forest.
func CollectForestIDs(forest []*Node) []string {
	var ids []string
	for _, root := range forest {
		ids = append(ids, CollectSubtreeIDs(root)...)
	}
	return ids
}

// CheckSubtree validates n for insertion into a forest whose IDs are the
// keys of taken. topLevel reports whether n becomes a root of the forest.
// On success the IDs of n's subtree are added to taken; on failure taken is
// left untouched.
func CheckSubtree(n *Node, topLevel bool, taken map[string]bool) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidForest)
	}
	if topLevel != n.IsRoot() {
		return fmt.Errorf("%w: %s %s (top level: %t)", ErrKindMismatch, n.kind, n.id, topLevel)
	}

	local := make(map[string]bool)
	var err error
	Walk(n, func(cur *Node) bool {
		switch {
		case cur.id == "":
			err = fmt.Errorf("%w: empty id under %s", ErrInvalidForest, n.id)
		case taken[cur.id] || local[cur.id]:
			err = fmt.Errorf("%w: %s", ErrDuplicateID, cur.id)
		case cur != n && cur.IsRoot():
			err = fmt.Errorf("%w: root %s nested below %s", ErrKindMismatch, cur.id, n.id)
		case !cur.IsContainer() && len(cur.children) > 0:
			err = fmt.Errorf("%w: leaf %s has children", ErrKindMismatch, cur.id)
		case cur.kind < KindLeaf || cur.kind > KindRoot:
			err = fmt.Errorf("%w: node %s has kind %d", ErrKindMismatch, cur.id, int(cur.kind))
		default:
			local[cur.id] = true
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	for id := range local {
		taken[id] = true
	}
	return nil
}

// ValidateForest checks the structural invariants of a forest: at least one
// root, only roots at the top level, no nested roots, non-empty IDs that are
// unique across the whole forest, and childless leaves.
func ValidateForest(forest []*Node) error {
	if len(forest) == 0 {
		return fmt.Errorf("%w: no roots", ErrInvalidForest)
	}

	taken := make(map[string]bool)
	for _, root := range forest {
		if err := CheckSubtree(root, true, taken); err != nil {
			return err
		}
	}
	return nil
}
