package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tailored-agentic-units/layers/observability"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  string
	}{
		{name: "trace range", level: 1, want: "TRACE"},
		{name: "verbose maps to DEBUG", level: observability.LevelVerbose, want: "DEBUG"},
		{name: "info maps to INFO", level: observability.LevelInfo, want: "INFO"},
		{name: "warning maps to WARN", level: observability.LevelWarning, want: "WARN"},
		{name: "error maps to ERROR", level: observability.LevelError, want: "ERROR"},
		{name: "fatal range", level: 21, want: "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level observability.Level
		want  slog.Level
	}{
		{level: observability.LevelVerbose, want: slog.LevelDebug},
		{level: observability.LevelInfo, want: slog.LevelInfo},
		{level: observability.LevelWarning, want: slog.LevelWarn},
		{level: observability.LevelError, want: slog.LevelError},
	}

	for _, tt := range tests {
		if got := tt.level.SlogLevel(); got != tt.want {
			t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestEmit_StampsTimestamp(t *testing.T) {
	rec := observability.NewRecorder()
	observability.Emit(context.Background(), rec, observability.Event{Type: "test.event"})

	events := rec.Events()
	if len(events) != 1 {
		t.Fatalf("recorded %d events, want 1", len(events))
	}
	if events[0].Timestamp.IsZero() {
		t.Error("Emit should stamp a zero timestamp")
	}

	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	observability.Emit(context.Background(), rec, observability.Event{Type: "test.event", Timestamp: fixed})
	if got := rec.Events()[1].Timestamp; !got.Equal(fixed) {
		t.Errorf("Emit overwrote timestamp: got %v, want %v", got, fixed)
	}
}

func TestEmit_NilObserver(t *testing.T) {
	observability.Emit(context.Background(), nil, observability.Event{Type: "test.event"})
}

func TestMultiObserver_FansOutAndSkipsNil(t *testing.T) {
	rec1 := observability.NewRecorder()
	rec2 := observability.NewRecorder()

	multi := observability.NewMultiObserver(nil, rec1, nil, rec2)
	multi.OnEvent(context.Background(), observability.Event{Type: "test.event", Level: observability.LevelInfo})

	if len(rec1.Events()) != 1 || len(rec2.Events()) != 1 {
		t.Errorf("recorders got %d and %d events, want 1 each", len(rec1.Events()), len(rec2.Events()))
	}
}

func TestSlogObserver_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     observability.Level
		minLevel  slog.Level
		expectLog bool
	}{
		{name: "verbose at debug handler", level: observability.LevelVerbose, minLevel: slog.LevelDebug, expectLog: true},
		{name: "verbose at info handler", level: observability.LevelVerbose, minLevel: slog.LevelInfo, expectLog: false},
		{name: "warning at warn handler", level: observability.LevelWarning, minLevel: slog.LevelWarn, expectLog: true},
		{name: "info at error handler", level: observability.LevelInfo, minLevel: slog.LevelError, expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.minLevel}))

			observability.NewSlogObserver(logger).OnEvent(context.Background(), observability.Event{
				Type:   "test.event",
				Level:  tt.level,
				Source: "test",
			})

			if hasOutput := buf.Len() > 0; hasOutput != tt.expectLog {
				t.Errorf("log output = %v, want %v (buf: %q)", hasOutput, tt.expectLog, buf.String())
			}
		})
	}
}

func TestSlogObserver_Attributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	observability.NewSlogObserver(logger).OnEvent(context.Background(), observability.Event{
		Type:   "editor.transition",
		Level:  observability.LevelInfo,
		Source: "editor.Reducer",
		Data:   map[string]any{"request": "add_layers", "roots": 2},
	})

	output := buf.String()
	for _, want := range []string{"editor.transition", "source=editor.Reducer", "request=add_layers", "roots=2"} {
		if !strings.Contains(output, want) {
			t.Errorf("log output missing %q: %s", want, output)
		}
	}
	if strings.Index(output, "request=") > strings.Index(output, "roots=") {
		t.Errorf("data attributes should be sorted by key: %s", output)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"noop", "slog", "warnings"} {
		if obs, err := observability.GetObserver(name); err != nil || obs == nil {
			t.Errorf("GetObserver(%q) = %v, %v; want registered observer", name, obs, err)
		}
	}

	if _, err := observability.GetObserver("nonexistent"); err == nil {
		t.Error("GetObserver(nonexistent) should fail")
	}

	rec := observability.NewRecorder()
	observability.RegisterObserver("test-recorder", rec)

	obs, err := observability.GetObserver("test-recorder")
	if err != nil {
		t.Fatalf("GetObserver failed: %v", err)
	}
	obs.OnEvent(context.Background(), observability.Event{Type: "test.event"})

	if len(rec.Events()) != 1 {
		t.Errorf("registered recorder got %d events, want 1", len(rec.Events()))
	}
}

func TestLevelFilter(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  bool
	}{
		{name: "verbose dropped", level: observability.LevelVerbose, want: false},
		{name: "info dropped", level: observability.LevelInfo, want: false},
		{name: "warning forwarded", level: observability.LevelWarning, want: true},
		{name: "error forwarded", level: observability.LevelError, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := observability.NewRecorder()
			f := observability.NewLevelFilter(observability.LevelWarning, rec)
			f.OnEvent(context.Background(), observability.Event{Type: "test.event", Level: tt.level})

			if got := len(rec.Events()) == 1; got != tt.want {
				t.Errorf("forwarded = %v, want %v", got, tt.want)
			}
		})
	}

	observability.NewLevelFilter(observability.LevelVerbose, nil).
		OnEvent(context.Background(), observability.Event{Level: observability.LevelError})
}

func TestRegistry_WarningsObserver(t *testing.T) {
	obs, err := observability.GetObserver("warnings")
	if err != nil {
		t.Fatalf("GetObserver(warnings) error = %v", err)
	}
	if _, ok := obs.(*observability.LevelFilter); !ok {
		t.Errorf("GetObserver(warnings) = %T, want *observability.LevelFilter", obs)
	}
}

func TestRecorder_OfTypeAndReset(t *testing.T) {
	rec := observability.NewRecorder()
	ctx := context.Background()

	rec.OnEvent(ctx, observability.Event{Type: "a"})
	rec.OnEvent(ctx, observability.Event{Type: "b"})
	rec.OnEvent(ctx, observability.Event{Type: "a"})

	if got := len(rec.OfType("a")); got != 2 {
		t.Errorf("OfType(a) = %d events, want 2", got)
	}

	rec.Reset()
	if got := len(rec.Events()); got != 0 {
		t.Errorf("after Reset got %d events, want 0", got)
	}
}

func TestRecorder_Concurrent(t *testing.T) {
	rec := observability.NewRecorder()
	const n = 100

	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			rec.OnEvent(context.Background(), observability.Event{Type: "test.event"})
		}()
	}
	wg.Wait()

	if got := len(rec.Events()); got != n {
		t.Errorf("recorded %d events, want %d", got, n)
	}
}
