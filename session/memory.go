package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/tailored-agentic-units/layers/editor"
	"github.com/tailored-agentic-units/layers/observability"
)

// Option configures a memory session.
type Option func(*memorySession)

// WithReducer sets the reducer used by Apply.
func WithReducer(r *editor.Reducer) Option {
	return func(s *memorySession) { s.reducer = r }
}

// WithObserver routes session events to o.
func WithObserver(o observability.Observer) Option {
	return func(s *memorySession) { s.observer = o }
}

// WithSnapshot starts the session from snap instead of an empty document.
func WithSnapshot(snap *editor.Snapshot) Option {
	return func(s *memorySession) { s.current = snap }
}

// WithHistoryLimit bounds the undo history. Zero keeps every step.
func WithHistoryLimit(n int) Option {
	return func(s *memorySession) { s.limit = max(n, 0) }
}

type memorySession struct {
	id       string
	reducer  *editor.Reducer
	observer observability.Observer
	limit    int

	mu      sync.RWMutex
	current *editor.Snapshot
	undo    []*editor.Snapshot
	redo    []*editor.Snapshot
}

// NewMemorySession creates a Session that keeps its history in memory.
// The session is assigned a unique UUIDv7 identifier.
func NewMemorySession(opts ...Option) Session {
	s := &memorySession{
		id:    uuid.Must(uuid.NewV7()).String(),
		limit: DefaultConfig().HistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reducer == nil {
		s.reducer = editor.NewReducer()
	}
	if s.observer == nil {
		s.observer = observability.NoOpObserver{}
	}
	if s.current == nil {
		s.current = editor.NewSnapshot()
	}
	return s
}

func (s *memorySession) ID() string {
	return s.id
}

func (s *memorySession) Current() *editor.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *memorySession) Apply(ctx context.Context, reqs ...editor.Request) (*editor.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		if next, err = s.reducer.Apply(next, req); err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
	}

	changed := next != s.current
	if changed {
		s.undo = append(s.undo, s.current)
		if s.limit > 0 && len(s.undo) > s.limit {
			s.undo = s.undo[len(s.undo)-s.limit:]
		}
		s.redo = nil
		s.current = next
	}

	s.emit(ctx, EventApply, map[string]any{
		"requests": len(reqs),
		"changed":  changed,
		"history":  len(s.undo),
	})
	return next, nil
}

func (s *memorySession) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return false
	}
	s.redo = append(s.redo, s.current)
	s.current = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	s.emit(context.Background(), EventUndo, map[string]any{"remaining": len(s.undo)})
	return true
}

func (s *memorySession) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.redo) == 0 {
		return false
	}
	s.undo = append(s.undo, s.current)
	s.current = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]

	s.emit(context.Background(), EventRedo, map[string]any{"remaining": len(s.redo)})
	return true
}

func (s *memorySession) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.undo) > 0
}

func (s *memorySession) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.redo) > 0
}

func (s *memorySession) Reset(snap *editor.Snapshot) {
	if snap == nil {
		snap = editor.NewSnapshot()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snap
	s.undo = nil
	s.redo = nil

	s.emit(context.Background(), EventReset, map[string]any{"active_root": snap.ActiveRootID()})
}

// emit must be called with mu held.
func (s *memorySession) emit(ctx context.Context, t observability.EventType, data map[string]any) {
	data["session"] = s.id
	observability.Emit(ctx, s.observer, observability.Event{
		Type:   t,
		Level:  observability.LevelInfo,
		Source: "session",
		Data:   data,
	})
}
