// Package observability carries structured events out of the editor core and
// its host packages. Level values follow the OpenTelemetry SeverityNumber
// ranges so events can be forwarded to OTel collectors without translation.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level is the severity of an event.
type Level int

const (
	LevelVerbose Level = 5  // OTel DEBUG (5-8)
	LevelInfo    Level = 9  // OTel INFO (9-12)
	LevelWarning Level = 13 // OTel WARN (13-16)
	LevelError   Level = 17 // OTel ERROR (17-20)
)

// String returns the OTel severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// SlogLevel maps the level onto the slog level used when logging the event.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType names an event. Packages declare their own constants with a
// dotted prefix, e.g. "editor.transition" or "document.save".
type EventType string

// Event is a single observable occurrence. Data holds telemetry about the
// occurrence (IDs, counts, request kinds), never document content.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives events. Implementations must not panic and must not
// block the caller for long: the editor emits events inline.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// Emit stamps event with the current time when it has none and hands it to
// observer. A nil observer discards the event.
func Emit(ctx context.Context, observer Observer, event Event) {
	if observer == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	observer.OnEvent(ctx, event)
}
