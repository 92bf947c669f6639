package observability

import (
	"fmt"
	"log/slog"
	"sync"
)

var (
	observers = map[string]Observer{
		"noop": NoOpObserver{},
		"slog": NewSlogObserver(slog.Default()),
		// Skipped layers, rejected transitions and failed store operations.
		"warnings": NewLevelFilter(LevelWarning, NewSlogObserver(slog.Default())),
	}
	mutex sync.RWMutex
)

// GetObserver returns the observer registered under name. "noop", "slog"
// (the default logger) and "warnings" (the default logger, warning level and
// above) are always available.
func GetObserver(name string) (Observer, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	obs, exists := observers[name]
	if !exists {
		return nil, fmt.Errorf("unknown observer: %s", name)
	}
	return obs, nil
}

// RegisterObserver adds or replaces a named observer.
func RegisterObserver(name string, observer Observer) {
	mutex.Lock()
	defer mutex.Unlock()

	observers[name] = observer
}
