package layer_test

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/tailored-agentic-units/layers/layer"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind layer.Kind
		want string
	}{
		{layer.KindLeaf, "leaf"},
		{layer.KindGroup, "group"},
		{layer.KindRoot, "root"},
		{layer.Kind(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestParseKind_Unknown(t *testing.T) {
	if _, err := layer.ParseKind("layer"); !errors.Is(err, layer.ErrKindMismatch) {
		t.Errorf("ParseKind(layer) error = %v, want ErrKindMismatch", err)
	}
}

func TestNode_IsContainer(t *testing.T) {
	if !layer.NewRoot("r", "R").IsContainer() {
		t.Error("root should be a container")
	}
	if !layer.NewGroup("g", "G").IsContainer() {
		t.Error("group should be a container")
	}
	if layer.NewLeaf("l", "L").IsContainer() {
		t.Error("leaf should not be a container")
	}
}

func TestNode_ChildrenDefensiveCopy(t *testing.T) {
	kids := []*layer.Node{layer.NewLeaf("a", "A"), layer.NewLeaf("b", "B")}
	g := layer.NewGroup("g", "G", kids...)

	kids[0] = layer.NewLeaf("x", "X")
	if g.Child(0).ID() != "a" {
		t.Error("constructor should copy the children slice")
	}

	got := g.Children()
	got[1] = nil
	if g.Child(1) == nil {
		t.Error("Children() should return a copy")
	}
}

func TestNode_NilChildrenDropped(t *testing.T) {
	g := layer.NewGroup("g", "G", nil, layer.NewLeaf("a", "A"), nil)
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestNode_AppendChildren(t *testing.T) {
	r := layer.NewRoot("r", "R", layer.NewLeaf("a", "A"))
	r2 := r.AppendChildren(layer.NewLeaf("b", "B"), layer.NewLeaf("c", "C"))

	if r.Len() != 1 {
		t.Errorf("original root mutated: %d children", r.Len())
	}
	if r2.Len() != 3 {
		t.Fatalf("appended root has %d children, want 3", r2.Len())
	}
	if r2.Child(0) != r.Child(0) {
		t.Error("existing child should be shared")
	}
	if r2.ID() != r.ID() || r2.Name() != r.Name() {
		t.Error("AppendChildren should keep identity fields")
	}

	leaf := layer.NewLeaf("l", "L")
	if leaf.AppendChildren(layer.NewLeaf("x", "X")) != leaf {
		t.Error("leaf AppendChildren should return the receiver")
	}
}

func TestNewDefaultRoot_UniqueIDs(t *testing.T) {
	a := layer.NewDefaultRoot()
	b := layer.NewDefaultRoot()

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("default roots should have distinct non-empty ids, got %q and %q", a.ID(), b.ID())
	}
	if !a.IsRoot() || a.Len() != 0 {
		t.Error("default root should be an empty root")
	}
}

func TestNode_JSON(t *testing.T) {
	root := layer.NewRoot("r", "Layer",
		layer.NewGroup("g", "Group", layer.NewLeaf("a", "A")),
	)

	data, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded layer.Node
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.Kind() != layer.KindRoot {
		t.Errorf("kind = %v, want root", decoded.Kind())
	}
	g := decoded.Child(0)
	if g.Kind() != layer.KindGroup || g.Child(0).Kind() != layer.KindLeaf {
		t.Error("nested kinds not preserved")
	}
	if g.Child(0).Name() != "A" {
		t.Errorf("leaf name = %q, want %q", g.Child(0).Name(), "A")
	}
}

func TestNode_UnmarshalRejectsLeafWithChildren(t *testing.T) {
	data := []byte(`{"id":"l","kind":"leaf","children":[{"id":"x","kind":"leaf"}]}`)

	var n layer.Node
	if err := json.Unmarshal(data, &n); !errors.Is(err, layer.ErrKindMismatch) {
		t.Errorf("Unmarshal() error = %v, want ErrKindMismatch", err)
	}
}
