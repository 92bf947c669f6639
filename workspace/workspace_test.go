package workspace_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tailored-agentic-units/layers/document"
	"github.com/tailored-agentic-units/layers/editor"
	"github.com/tailored-agentic-units/layers/layer"
	"github.com/tailored-agentic-units/layers/observability"
	"github.com/tailored-agentic-units/layers/workspace"
)

// --- Test helpers ---

func newWorkspace(t *testing.T, cfg workspace.Config, opts ...workspace.Option) *workspace.Workspace {
	t.Helper()
	w, err := workspace.New(&cfg, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func quietConfig() workspace.Config {
	cfg := workspace.DefaultConfig()
	cfg.Observer = "noop"
	return cfg
}

func addLeaves(ids ...string) editor.Request {
	nodes := make([]*layer.Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, layer.NewLeaf(id, strings.ToUpper(id)))
	}
	return editor.AddLayers{Nodes: nodes}
}

func activeChildren(s *editor.Snapshot) []string {
	var ids []string
	for _, c := range s.ActiveRoot().Children() {
		ids = append(ids, c.ID())
	}
	return ids
}

// --- Tests ---

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*workspace.Config)
	}{
		{name: "unknown observer", modify: func(c *workspace.Config) { c.Observer = "carrier-pigeon" }},
		{name: "unknown cleanup", modify: func(c *workspace.Config) { c.Editor.Cleanup = "eventually" }},
		{name: "unknown backend", modify: func(c *workspace.Config) { c.Document.Backend = "tape" }},
		{name: "negative history", modify: func(c *workspace.Config) { c.Session.HistoryLimit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := quietConfig()
			tt.modify(&cfg)
			if _, err := workspace.New(&cfg); err == nil {
				t.Error("New should fail")
			}
		})
	}
}

func TestWorkspace_NoDocument(t *testing.T) {
	w := newWorkspace(t, quietConfig())

	if _, err := w.Apply(context.Background(), editor.ClearSelection{}); !errors.Is(err, workspace.ErrNoDocument) {
		t.Errorf("Apply error = %v, want ErrNoDocument", err)
	}
	if err := w.Save(context.Background()); !errors.Is(err, workspace.ErrNoDocument) {
		t.Errorf("Save error = %v, want ErrNoDocument", err)
	}
	if w.Snapshot() != nil {
		t.Error("Snapshot should be nil without an open document")
	}
	if w.Undo() || w.Redo() {
		t.Error("Undo/Redo should report false without an open document")
	}
}

func TestWorkspace_OpenNewDocument(t *testing.T) {
	rec := observability.NewRecorder()
	w := newWorkspace(t, quietConfig(), workspace.WithObserver(rec))

	snap, err := w.Open(context.Background(), "poster")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if snap.RootCount() != 1 || snap.ActiveRoot().Len() != 0 {
		t.Error("a new document should start from the initial snapshot")
	}
	if w.Name() != "poster" || w.Snapshot() != snap {
		t.Error("opened document should become current")
	}

	events := rec.OfType(workspace.EventOpen)
	if len(events) != 1 || events[0].Data["created"] != true {
		t.Errorf("open events = %+v, want one with created=true", events)
	}
}

func TestWorkspace_OpenInvalidName(t *testing.T) {
	w := newWorkspace(t, quietConfig())

	if _, err := w.Open(context.Background(), "../escape"); !errors.Is(err, document.ErrInvalidName) {
		t.Errorf("Open error = %v, want ErrInvalidName", err)
	}
}

func TestWorkspace_EditSaveReopen(t *testing.T) {
	ctx := context.Background()
	cfg := quietConfig()
	cfg.Document = document.Config{Backend: "file", Path: filepath.Join(t.TempDir(), "docs")}

	w := newWorkspace(t, cfg)
	if _, err := w.Open(ctx, "poster"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := w.Apply(ctx,
		addLeaves("a", "b", "c"),
		editor.ToggleVisibility{LayerID: "b"},
		editor.SelectLayers{IDs: []string{"c"}},
		editor.DeleteSelected{},
	); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := w.Save(ctx); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	other := newWorkspace(t, cfg)
	snap, err := other.Open(ctx, "poster")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, activeChildren(snap)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if !snap.Hidden().Has("b") {
		t.Error("hidden flag was not persisted")
	}

	docs, err := other.Documents(ctx)
	if err != nil {
		t.Fatalf("Documents failed: %v", err)
	}
	if diff := cmp.Diff([]string{"poster"}, docs); diff != "" {
		t.Errorf("Documents mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkspace_UndoRedo(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace(t, quietConfig())
	w.Open(ctx, "doc")

	w.Apply(ctx, addLeaves("a"))
	w.Apply(ctx, addLeaves("b"))

	if !w.Undo() {
		t.Fatal("Undo should succeed")
	}
	if diff := cmp.Diff([]string{"a"}, activeChildren(w.Snapshot())); diff != "" {
		t.Errorf("after undo (-want +got):\n%s", diff)
	}

	if !w.Redo() {
		t.Fatal("Redo should succeed")
	}
	if diff := cmp.Diff([]string{"a", "b"}, activeChildren(w.Snapshot())); diff != "" {
		t.Errorf("after redo (-want +got):\n%s", diff)
	}
}

func TestWorkspace_ApplyErrorKeepsState(t *testing.T) {
	ctx := context.Background()
	rec := observability.NewRecorder()
	w := newWorkspace(t, quietConfig(), workspace.WithObserver(rec))
	w.Open(ctx, "doc")
	before := w.Snapshot()

	_, err := w.Apply(ctx, addLeaves("a"), editor.SetActiveRoot{RootID: "nope"})
	if !errors.Is(err, editor.ErrInvariantViolation) {
		t.Errorf("Apply error = %v, want ErrInvariantViolation", err)
	}
	if w.Snapshot() != before {
		t.Error("failed Apply should keep the prior snapshot")
	}
	if len(rec.OfType(workspace.EventError)) != 1 {
		t.Error("failed Apply should emit an error event")
	}
	if len(rec.OfType(editor.EventTransitionRejected)) != 1 {
		t.Error("reducer events should reach the workspace observer")
	}
}

func TestWorkspace_WithStore(t *testing.T) {
	ctx := context.Background()
	store := document.NewMemoryStore()

	seed, _ := editor.Transition(editor.NewSnapshot(), addLeaves("x"))
	store.Save(ctx, "seeded", seed)

	w := newWorkspace(t, quietConfig(), workspace.WithStore(store))
	snap, err := w.Open(ctx, "seeded")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if snap != seed {
		t.Error("Open should return the stored snapshot")
	}
}

func TestWorkspace_WithReducer(t *testing.T) {
	ctx := context.Background()
	w := newWorkspace(t, quietConfig(),
		workspace.WithReducer(editor.NewReducer(editor.WithCleanup(editor.CleanupDirect))))
	w.Open(ctx, "doc")

	_, err := w.Apply(ctx,
		editor.AddLayers{Nodes: []*layer.Node{layer.NewGroup("g", "G", layer.NewLeaf("a", "A"))}},
		editor.ToggleVisibility{LayerID: "a"},
		editor.SelectLayers{IDs: []string{"g"}},
		editor.DeleteSelected{},
	)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, w.Snapshot().Dangling()); diff != "" {
		t.Errorf("dangling mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkspace_SlogObserver(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	w := newWorkspace(t, quietConfig(), workspace.WithObserver(observability.NewSlogObserver(logger)))
	w.Open(ctx, "doc")
	w.Apply(ctx, addLeaves("a"))
	w.Save(ctx)

	out := buf.String()
	for _, want := range []string{"workspace.open", "editor.transition.applied", "session.apply", "document.save"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
