package document

import (
	"context"

	"github.com/tailored-agentic-units/layers/editor"
	"github.com/tailored-agentic-units/layers/observability"
)

type observedStore struct {
	Store
	backend  string
	observer observability.Observer
}

// Observed wraps store so that every Load, Save and Delete emits an event to
// observer. Failed operations are reported at error level.
func Observed(store Store, backend string, observer observability.Observer) Store {
	return &observedStore{Store: store, backend: backend, observer: observer}
}

func (o *observedStore) Load(ctx context.Context, name string) (*editor.Snapshot, error) {
	s, err := o.Store.Load(ctx, name)
	o.emit(ctx, EventLoad, name, err)
	return s, err
}

func (o *observedStore) Save(ctx context.Context, name string, s *editor.Snapshot) error {
	err := o.Store.Save(ctx, name, s)
	o.emit(ctx, EventSave, name, err)
	return err
}

func (o *observedStore) Delete(ctx context.Context, name string) error {
	err := o.Store.Delete(ctx, name)
	o.emit(ctx, EventDelete, name, err)
	return err
}

func (o *observedStore) emit(ctx context.Context, t observability.EventType, name string, err error) {
	level := observability.LevelInfo
	data := map[string]any{"backend": o.backend, "document": name}
	if err != nil {
		level = observability.LevelError
		data["error"] = err.Error()
	}
	observability.Emit(ctx, o.observer, observability.Event{
		Type:   t,
		Level:  level,
		Source: "document.Store",
		Data:   data,
	})
}
