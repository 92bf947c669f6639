package editor

import (
	"context"
	"fmt"
	"slices"

	"github.com/tailored-agentic-units/layers/idset"
	"github.com/tailored-agentic-units/layers/layer"
	"github.com/tailored-agentic-units/layers/observability"
)

// Option configures a Reducer.
type Option func(*Reducer)

// WithObserver routes reducer events to o.
func WithObserver(o observability.Observer) Option {
	return func(r *Reducer) { r.observer = o }
}

// WithCleanup selects the purge policy applied when nodes are removed.
func WithCleanup(c Cleanup) Option {
	return func(r *Reducer) { r.cleanup = c }
}

// WithRootFactory overrides how the replacement root is built when a
// deletion empties the forest.
func WithRootFactory(fn func() *layer.Node) Option {
	return func(r *Reducer) { r.newRoot = fn }
}

// Reducer computes the next Snapshot for a request. It holds no state
// between calls and is safe for concurrent use.
type Reducer struct {
	cleanup  Cleanup
	observer observability.Observer
	newRoot  func() *layer.Node
}

// NewReducer creates a Reducer with subtree cleanup, no observer and the
// default root factory, then applies opts.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		cleanup:  CleanupSubtree,
		observer: observability.NoOpObserver{},
		newRoot:  layer.NewDefaultRoot,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.observer == nil {
		r.observer = observability.NoOpObserver{}
	}
	return r
}

var defaultReducer = NewReducer()

// Transition applies req to s with the default reducer.
func Transition(s *Snapshot, req Request) (*Snapshot, error) {
	return defaultReducer.Apply(s, req)
}

// Apply returns the snapshot that results from applying req to s. When
// nothing changes, s itself is returned. On error the result is nil and s
// remains the last valid state; every error is a *TransitionError.
//
// s must come from NewSnapshot, Restore or an earlier Apply. A zero
// Snapshot has no roots and is rejected with ErrInvalidSnapshot.
func (r *Reducer) Apply(s *Snapshot, req Request) (*Snapshot, error) {
	if req == nil {
		return nil, r.reject(KindRequestNil, fmt.Errorf("%w: nil request", ErrUnknownRequest))
	}
	if s == nil {
		return nil, r.reject(req.Kind(), fmt.Errorf("%w: nil snapshot", ErrInvalidSnapshot))
	}
	if layer.IndexOf(s.roots, s.activeID) < 0 {
		return nil, r.reject(req.Kind(), fmt.Errorf("%w: active root %q not in forest", ErrInvalidSnapshot, s.activeID))
	}

	var (
		next *Snapshot
		err  error
	)

	switch req := req.(type) {
	case AddLayers:
		next = r.addLayers(s, req)
	case ClearSelection:
		next = clearSelection(s)
	case ToggleExpansion:
		next = toggleExpansion(s, req)
	case ToggleVisibility:
		next = s.with(func(c *Snapshot) { c.hidden = s.hidden.Toggle(req.LayerID) })
	case ReplaceLayer:
		next, err = r.replaceLayer(s, req)
	case DeleteSelected:
		next = r.deleteSelected(s)
	case SelectLayers:
		next = selectLayers(s, req)
	case SetActiveRoot:
		next, err = setActiveRoot(s, req)
	default:
		err = fmt.Errorf("%w: %T", ErrUnknownRequest, req)
	}

	if err != nil {
		return nil, r.reject(req.Kind(), err)
	}

	observability.Emit(context.Background(), r.observer, observability.Event{
		Type:   EventTransitionApplied,
		Level:  observability.LevelVerbose,
		Source: "editor.Reducer",
		Data: map[string]any{
			"request":  string(req.Kind()),
			"changed":  next != s,
			"roots":    len(next.roots),
			"selected": next.selected.Len(),
		},
	})

	return next, nil
}

// KindRequestNil labels errors raised for a nil Request.
const KindRequestNil RequestKind = "nil"

func (r *Reducer) reject(kind RequestKind, err error) error {
	observability.Emit(context.Background(), r.observer, observability.Event{
		Type:   EventTransitionRejected,
		Level:  observability.LevelError,
		Source: "editor.Reducer",
		Data: map[string]any{
			"request": string(kind),
			"error":   err.Error(),
		},
	})
	return &TransitionError{Request: kind, Err: err}
}

func (r *Reducer) addLayers(s *Snapshot, req AddLayers) *Snapshot {
	if len(req.Nodes) == 0 {
		return s
	}

	taken := forestIndex(s.roots)
	var newRoots, children []*layer.Node

	for i, n := range req.Nodes {
		topLevel := n != nil && n.IsRoot()
		if err := layer.CheckSubtree(n, topLevel, taken); err != nil {
			observability.Emit(context.Background(), r.observer, observability.Event{
				Type:   EventLayerSkipped,
				Level:  observability.LevelWarning,
				Source: "editor.Reducer",
				Data:   map[string]any{"index": i, "error": err.Error()},
			})
			continue
		}
		if topLevel {
			newRoots = append(newRoots, n)
		} else {
			children = append(children, n)
		}
	}

	if len(newRoots) == 0 && len(children) == 0 {
		return s
	}

	roots := slices.Clone(s.roots)
	if len(children) > 0 {
		i := layer.IndexOf(roots, s.activeID)
		roots[i] = roots[i].AppendChildren(children...)
	}
	roots = append(roots, newRoots...)

	return s.with(func(c *Snapshot) { c.roots = roots })
}

func clearSelection(s *Snapshot) *Snapshot {
	if s.selected.Empty() {
		return s
	}
	return s.with(func(c *Snapshot) { c.selected = idset.Set{} })
}

func toggleExpansion(s *Snapshot, req ToggleExpansion) *Snapshot {
	ids := []string{req.LayerID}
	if req.Recursive {
		if n, ok := layer.FindNode(s.roots, req.LayerID); ok {
			ids = layer.CollectSubtreeIDs(n)
		}
	}

	collapsed := s.collapsed.With(ids...)
	if s.collapsed.Has(req.LayerID) {
		collapsed = s.collapsed.Without(ids...)
	}
	return s.with(func(c *Snapshot) { c.collapsed = collapsed })
}

func (r *Reducer) replaceLayer(s *Snapshot, req ReplaceLayer) (*Snapshot, error) {
	n := req.Node
	if n == nil {
		return nil, fmt.Errorf("%w: nil replacement", layer.ErrInvalidForest)
	}

	root, ok := layer.FindContainingRoot(s.roots, n.ID())
	if !ok {
		return nil, fmt.Errorf("%w: %s", layer.ErrNodeNotFound, n.ID())
	}
	target, _ := layer.FindNode([]*layer.Node{root}, n.ID())
	if target.IsRoot() != n.IsRoot() {
		return nil, fmt.Errorf("%w: cannot replace %s %s with a %s",
			layer.ErrKindMismatch, target.Kind(), target.ID(), n.Kind())
	}

	oldIDs := layer.CollectSubtreeIDs(target)
	taken := forestIndex(s.roots)
	for _, id := range oldIDs {
		delete(taken, id)
	}
	if err := layer.CheckSubtree(n, n.IsRoot(), taken); err != nil {
		return nil, err
	}

	updated, err := layer.ReplaceNode(root, n)
	if err != nil {
		return nil, err
	}

	roots := slices.Clone(s.roots)
	roots[layer.IndexOf(roots, root.ID())] = updated

	next := s.with(func(c *Snapshot) { c.roots = roots })
	if r.cleanup == CleanupSubtree {
		kept := make(map[string]bool)
		for _, id := range layer.CollectSubtreeIDs(n) {
			kept[id] = true
		}
		var gone []string
		for _, id := range oldIDs {
			if !kept[id] {
				gone = append(gone, id)
			}
		}
		next = next.with(func(c *Snapshot) {
			c.selected = c.selected.Without(gone...)
			purge(c, gone)
		})
	}
	return next, nil
}

func (r *Reducer) deleteSelected(s *Snapshot) *Snapshot {
	if s.selected.Empty() {
		return s
	}

	next := s.with(func(c *Snapshot) { c.roots = slices.Clone(s.roots) })

	for _, id := range s.selected.Sorted() {
		root, ok := layer.FindContainingRoot(next.roots, id)
		if !ok {
			// Already gone with a deleted ancestor, or never existed.
			continue
		}
		i := layer.IndexOf(next.roots, root.ID())

		removed := []string{id}
		if r.cleanup == CleanupSubtree {
			target, _ := layer.FindNode([]*layer.Node{root}, id)
			removed = layer.CollectSubtreeIDs(target)
		}

		if root.ID() == id {
			next.roots = slices.Delete(next.roots, i, i+1)
		} else {
			updated, err := layer.RemoveNode(root, id)
			if err != nil {
				continue
			}
			next.roots[i] = updated
		}
		purge(next, removed)
	}

	if len(next.roots) == 0 {
		fresh := r.newRoot()
		next.roots = []*layer.Node{fresh}
		next.activeID = fresh.ID()

		observability.Emit(context.Background(), r.observer, observability.Event{
			Type:   EventRootSynthesized,
			Level:  observability.LevelInfo,
			Source: "editor.Reducer",
			Data:   map[string]any{"root": fresh.ID()},
		})
	} else if layer.IndexOf(next.roots, next.activeID) < 0 {
		next.activeID = next.roots[0].ID()
	}

	next.selected = idset.Set{}
	return next
}

// purge drops ids from the collapse and visibility sets of c.
func purge(c *Snapshot, ids []string) {
	if len(ids) == 0 {
		return
	}
	c.collapsed = c.collapsed.Without(ids...)
	c.hidden = c.hidden.Without(ids...)
}

func selectLayers(s *Snapshot, req SelectLayers) *Snapshot {
	exists := forestIndex(s.roots)
	valid := make([]string, 0, len(req.IDs))
	for _, id := range req.IDs {
		if exists[id] {
			valid = append(valid, id)
		}
	}

	selected := idset.Of(valid...)
	if req.Extend {
		selected = s.selected.With(valid...)
	}
	if selected.Equal(s.selected) {
		return s
	}
	return s.with(func(c *Snapshot) { c.selected = selected })
}

func setActiveRoot(s *Snapshot, req SetActiveRoot) (*Snapshot, error) {
	if layer.IndexOf(s.roots, req.RootID) < 0 {
		return nil, fmt.Errorf("%w: root %s", layer.ErrNodeNotFound, req.RootID)
	}
	if req.RootID == s.activeID {
		return s, nil
	}
	return s.with(func(c *Snapshot) { c.activeID = req.RootID }), nil
}
