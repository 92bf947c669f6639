package editor

import (
	"fmt"
	"slices"

	"github.com/tailored-agentic-units/layers/idset"
	"github.com/tailored-agentic-units/layers/layer"
)

// Snapshot is one immutable state of the editor: the layer forest, the
// active root and the per-node selection, collapse and visibility flags.
//
// Snapshots are only created by NewSnapshot, Restore and the reducer, and
// are never modified afterwards. A superseded snapshot stays valid, so
// holders of older snapshots (undo history, renderers) may keep reading
// them while newer ones are produced.
type Snapshot struct {
	roots     []*layer.Node
	activeID  string
	selected  idset.Set
	collapsed idset.Set
	hidden    idset.Set
}

// NewSnapshot returns the initial state: a single empty default root that is
// active, with nothing selected, collapsed or hidden.
func NewSnapshot() *Snapshot {
	root := layer.NewDefaultRoot()
	return &Snapshot{
		roots:    []*layer.Node{root},
		activeID: root.ID(),
	}
}

// Restore rebuilds a Snapshot from its parts, typically after decoding a
// persisted document. An empty activeID selects the first root. Flag set
// members that do not name a node of roots are dropped.
func Restore(roots []*layer.Node, activeID string, selected, collapsed, hidden idset.Set) (*Snapshot, error) {
	if err := layer.ValidateForest(roots); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	if activeID == "" {
		activeID = roots[0].ID()
	}
	if layer.IndexOf(roots, activeID) < 0 {
		return nil, fmt.Errorf("%w: active root %s not in forest", ErrInvalidSnapshot, activeID)
	}

	exists := forestIndex(roots)
	keep := func(id string) bool { return exists[id] }

	return &Snapshot{
		roots:     slices.Clone(roots),
		activeID:  activeID,
		selected:  selected.Filter(keep),
		collapsed: collapsed.Filter(keep),
		hidden:    hidden.Filter(keep),
	}, nil
}

// Roots returns the top-level roots in stacking order.
func (s *Snapshot) Roots() []*layer.Node {
	return slices.Clone(s.roots)
}

func (s *Snapshot) RootCount() int { return len(s.roots) }

func (s *Snapshot) ActiveRootID() string { return s.activeID }

// ActiveRoot returns the root that receives non-root nodes added to the
// forest.
func (s *Snapshot) ActiveRoot() *layer.Node {
	return s.roots[layer.IndexOf(s.roots, s.activeID)]
}

func (s *Snapshot) Selected() idset.Set  { return s.selected }
func (s *Snapshot) Collapsed() idset.Set { return s.collapsed }
func (s *Snapshot) Hidden() idset.Set    { return s.hidden }

// Find looks id up anywhere in the forest.
func (s *Snapshot) Find(id string) (*layer.Node, bool) {
	return layer.FindNode(s.roots, id)
}

// IDs returns every node ID of the forest, root by root in pre-order.
func (s *Snapshot) IDs() []string {
	return layer.CollectForestIDs(s.roots)
}

// Validate checks the hard invariants: a valid non-empty forest with unique
// IDs and an active root that belongs to it.
func (s *Snapshot) Validate() error {
	if err := layer.ValidateForest(s.roots); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}
	if layer.IndexOf(s.roots, s.activeID) < 0 {
		return fmt.Errorf("%w: active root %s not in forest", ErrInvalidSnapshot, s.activeID)
	}
	return nil
}

// Dangling returns, sorted, the IDs held by the selection, collapse or
// visibility sets that no longer name a node of the forest.
func (s *Snapshot) Dangling() []string {
	exists := forestIndex(s.roots)
	var out idset.Set
	for _, set := range []idset.Set{s.selected, s.collapsed, s.hidden} {
		for _, id := range set.Sorted() {
			if !exists[id] {
				out = out.With(id)
			}
		}
	}
	return out.Sorted()
}

// with returns a shallow copy of s modified by edit.
func (s *Snapshot) with(edit func(*Snapshot)) *Snapshot {
	c := *s
	edit(&c)
	return &c
}

func forestIndex(roots []*layer.Node) map[string]bool {
	ids := layer.CollectForestIDs(roots)
	index := make(map[string]bool, len(ids))
	for _, id := range ids {
		index[id] = true
	}
	return index
}
