// Package workspace composes the editor, session and document subsystems
// into a single entry point for hosts that edit persisted documents.
//
// The workspace initializes from configuration via New, creating all
// subsystems internally. Functional options allow test overrides of any
// subsystem.
//
//	w, err := workspace.New(&cfg)
//	_, err = w.Open(ctx, "poster")
//	_, err = w.Apply(ctx, editor.AddLayers{Nodes: nodes})
//	err = w.Save(ctx)
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tailored-agentic-units/layers/document"
	"github.com/tailored-agentic-units/layers/editor"
	"github.com/tailored-agentic-units/layers/observability"
	"github.com/tailored-agentic-units/layers/session"
)

// Option configures a Workspace. Overrides replace the subsystems New would
// otherwise create from configuration.
type Option func(*Workspace)

// WithStore overrides the config-created document store.
func WithStore(s document.Store) Option {
	return func(w *Workspace) { w.store = s }
}

// WithObserver overrides the config-selected observer.
func WithObserver(o observability.Observer) Option {
	return func(w *Workspace) { w.observer = o }
}

// WithLogger routes workspace events to logger through a SlogObserver.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) { w.observer = observability.NewSlogObserver(logger) }
}

// WithReducer overrides the config-created reducer.
func WithReducer(r *editor.Reducer) Option {
	return func(w *Workspace) { w.reducer = r }
}

// Workspace edits one open document at a time and persists it to a store.
// It is safe for concurrent use.
type Workspace struct {
	reducer  *editor.Reducer
	store    document.Store
	observer observability.Observer
	history  int

	mu      sync.RWMutex
	name    string
	session session.Session
}

// New creates a Workspace from configuration.
func New(cfg *Config, opts ...Option) (*Workspace, error) {
	w := &Workspace{history: cfg.Session.HistoryLimit}
	for _, opt := range opts {
		opt(w)
	}

	if w.history < 0 {
		return nil, fmt.Errorf("invalid session config: %w", session.ErrInvalidHistoryLimit)
	}

	if w.observer == nil {
		obs, err := observability.GetObserver(cfg.Observer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve observer: %w", err)
		}
		w.observer = obs
	}

	if w.reducer == nil {
		r, err := editor.New(&cfg.Editor, editor.WithObserver(w.observer))
		if err != nil {
			return nil, fmt.Errorf("failed to create reducer: %w", err)
		}
		w.reducer = r
	}

	backend := cfg.Document.Backend
	if w.store == nil {
		store, err := document.NewStore(&cfg.Document)
		if err != nil {
			return nil, fmt.Errorf("failed to create document store: %w", err)
		}
		w.store = store
	} else {
		backend = "custom"
	}
	w.store = document.Observed(w.store, backend, w.observer)

	return w, nil
}

// Open loads the document name from the store, or starts a new empty
// document when the store has none, and makes it the current document.
// Unsaved edits to a previously open document are discarded.
func (w *Workspace) Open(ctx context.Context, name string) (*editor.Snapshot, error) {
	if err := document.ValidateName(name); err != nil {
		return nil, err
	}

	snap, err := w.store.Load(ctx, name)
	created := false
	switch {
	case errors.Is(err, document.ErrNotFound):
		snap = editor.NewSnapshot()
		created = true
	case err != nil:
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}

	sesh := session.NewMemorySession(
		session.WithSnapshot(snap),
		session.WithReducer(w.reducer),
		session.WithObserver(w.observer),
		session.WithHistoryLimit(w.history),
	)

	w.mu.Lock()
	w.name = name
	w.session = sesh
	w.mu.Unlock()

	observability.Emit(ctx, w.observer, observability.Event{
		Type:   EventOpen,
		Level:  observability.LevelInfo,
		Source: "workspace",
		Data: map[string]any{
			"document": name,
			"session":  sesh.ID(),
			"created":  created,
		},
	})
	return snap, nil
}

func (w *Workspace) current() (string, session.Session, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.session == nil {
		return "", nil, ErrNoDocument
	}
	return w.name, w.session, nil
}

// Apply runs reqs against the open document. See session.Session.Apply.
func (w *Workspace) Apply(ctx context.Context, reqs ...editor.Request) (*editor.Snapshot, error) {
	name, sesh, err := w.current()
	if err != nil {
		return nil, err
	}

	snap, err := sesh.Apply(ctx, reqs...)
	if err != nil {
		observability.Emit(ctx, w.observer, observability.Event{
			Type:   EventError,
			Level:  observability.LevelError,
			Source: "workspace",
			Data:   map[string]any{"document": name, "error": err.Error()},
		})
		return nil, err
	}
	return snap, nil
}

// Undo steps the open document back. It reports false when there is no open
// document or nothing to undo.
func (w *Workspace) Undo() bool {
	_, sesh, err := w.current()
	return err == nil && sesh.Undo()
}

// Redo re-applies the last undone edit of the open document.
func (w *Workspace) Redo() bool {
	_, sesh, err := w.current()
	return err == nil && sesh.Redo()
}

// Save writes the current snapshot of the open document to the store.
func (w *Workspace) Save(ctx context.Context) error {
	name, sesh, err := w.current()
	if err != nil {
		return err
	}

	return w.store.Save(ctx, name, sesh.Current())
}

// Snapshot returns the current snapshot of the open document, or nil when
// no document is open.
func (w *Workspace) Snapshot() *editor.Snapshot {
	_, sesh, err := w.current()
	if err != nil {
		return nil
	}
	return sesh.Current()
}

// Name returns the name of the open document.
func (w *Workspace) Name() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.name
}

// Documents lists the names held by the store.
func (w *Workspace) Documents(ctx context.Context) ([]string, error) {
	return w.store.List(ctx)
}

// Close releases the store.
func (w *Workspace) Close() error {
	return w.store.Close()
}
