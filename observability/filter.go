package observability

import "context"

// LevelFilter forwards events at or above a minimum level and drops the
// rest. The editor emits a verbose event per transition, so hosts that only
// care about skipped layers and rejected requests wrap their sink in one.
type LevelFilter struct {
	min  Level
	next Observer
}

// NewLevelFilter wraps next; a nil next discards everything.
func NewLevelFilter(minLevel Level, next Observer) *LevelFilter {
	return &LevelFilter{min: minLevel, next: next}
}

func (f *LevelFilter) OnEvent(ctx context.Context, event Event) {
	if f.next == nil || event.Level < f.min {
		return
	}
	f.next.OnEvent(ctx, event)
}
