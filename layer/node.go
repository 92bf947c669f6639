package layer

import (
	"fmt"
	"slices"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Kind discriminates the node variants of the layer tree.
type Kind int

const (
	KindLeaf  Kind = iota // drawable content, never has children
	KindGroup             // nested container
	KindRoot              // top-level container, only valid directly in a forest
)

// DefaultRootName is the name given to roots synthesized by NewDefaultRoot.
const DefaultRootName = "Layer"

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindGroup:
		return "group"
	case KindRoot:
		return "root"
	default:
		return "unknown"
	}
}

// ParseKind converts the string form produced by Kind.String back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "leaf":
		return KindLeaf, nil
	case "group":
		return KindGroup, nil
	case "root":
		return KindRoot, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrKindMismatch, s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < KindLeaf || k > KindRoot {
		return nil, fmt.Errorf("%w: kind %d", ErrKindMismatch, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Node is one element of a layer forest. A Node is immutable once built:
// edits produce new nodes that share untouched children with the original.
type Node struct {
	id       string
	kind     Kind
	name     string
	children []*Node
}

// NewRoot creates a top-level container.
func NewRoot(id, name string, children ...*Node) *Node {
	return newContainer(KindRoot, id, name, children)
}

// NewGroup creates a nested container.
func NewGroup(id, name string, children ...*Node) *Node {
	return newContainer(KindGroup, id, name, children)
}

// NewLeaf creates a content node without children.
func NewLeaf(id, name string) *Node {
	return &Node{id: id, kind: KindLeaf, name: name}
}

// NewDefaultRoot creates an empty root with a fresh UUIDv7 identifier.
func NewDefaultRoot() *Node {
	return &Node{
		id:   uuid.Must(uuid.NewV7()).String(),
		kind: KindRoot,
		name: DefaultRootName,
	}
}

func newContainer(kind Kind, id, name string, children []*Node) *Node {
	return &Node{
		id:       id,
		kind:     kind,
		name:     name,
		children: compact(children),
	}
}

// compact copies children, dropping nil entries.
func compact(children []*Node) []*Node {
	if len(children) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(children))
	for _, c := range children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (n *Node) ID() string   { return n.id }
func (n *Node) Kind() Kind   { return n.kind }
func (n *Node) Name() string { return n.name }

// IsRoot reports whether n is a top-level container.
func (n *Node) IsRoot() bool { return n.kind == KindRoot }

// IsContainer reports whether n can hold children.
func (n *Node) IsContainer() bool { return n.kind == KindRoot || n.kind == KindGroup }

// Children returns a copy of the ordered child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Len returns the number of direct children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the i-th direct child.
func (n *Node) Child(i int) *Node { return n.children[i] }

// WithName returns a copy of n with a different name. Children are shared.
func (n *Node) WithName(name string) *Node {
	c := *n
	c.name = name
	return &c
}

// WithChildren returns a shallow copy of n holding exactly children. Leaves
// have no children, so a leaf is returned unchanged.
func (n *Node) WithChildren(children ...*Node) *Node {
	if !n.IsContainer() {
		return n
	}
	c := *n
	c.children = compact(children)
	return &c
}

// AppendChildren returns a shallow copy of n with children added after the
// existing ones.
func (n *Node) AppendChildren(children ...*Node) *Node {
	if !n.IsContainer() || len(children) == 0 {
		return n
	}
	c := *n
	c.children = append(slices.Clone(n.children), compact(children)...)
	return &c
}

func (n *Node) withChild(i int, child *Node) *Node {
	c := *n
	c.children = slices.Clone(n.children)
	c.children[i] = child
	return &c
}

func (n *Node) withoutChild(i int) *Node {
	c := *n
	c.children = slices.Delete(slices.Clone(n.children), i, i+1)
	return &c
}

type wireNode struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"kind"`
	Name     string  `json:"name,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireNode{
		ID:       n.id,
		Kind:     n.kind,
		Name:     n.name,
		Children: n.children,
	})
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Kind == KindLeaf && len(w.Children) > 0 {
		return fmt.Errorf("%w: leaf %s has children", ErrKindMismatch, w.ID)
	}
	for _, c := range w.Children {
		if c == nil {
			return fmt.Errorf("%w: null child under %s", ErrInvalidForest, w.ID)
		}
	}
	*n = Node{id: w.ID, kind: w.Kind, name: w.Name, children: w.Children}
	return nil
}
