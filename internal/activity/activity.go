// Package activity keeps the dashboard's recent-activity feed.
package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Kind tags what an event is about.
type Kind string

const (
	KindLegal      Kind = "legal"
	KindProcedure  Kind = "procedure"
	KindDirectory  Kind = "directory"
	KindTrend      Kind = "trend"
	KindGeneration Kind = "generation"
	KindUser       Kind = "user"
)

// Event is one line of the feed.
type Event struct {
	Message   string
	Kind      Kind
	Timestamp time.Time
}

// Sink persists events. Optional.
type Sink interface {
	AppendActivity(ctx context.Context, ev Event) error
}

// Feed holds the most recent events, newest first.
type Feed struct {
	mu     sync.Mutex
	events []Event
	max    int
	sink   Sink
	logger *slog.Logger
	now    func() time.Time
}

// NewFeed creates a feed keeping at most max events (default 10).
func NewFeed(max int, sink Sink, logger *slog.Logger) *Feed {
	if max <= 0 {
		max = 10
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Feed{max: max, sink: sink, logger: logger, now: time.Now}
}

// Record adds ev to the front of the feed and persists it best-effort.
// A zero timestamp is set to now.
func (f *Feed) Record(ctx context.Context, ev Event) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = f.now()
	}
	f.mu.Lock()
	f.events = append([]Event{ev}, f.events...)
	if len(f.events) > f.max {
		f.events = f.events[:f.max]
	}
	f.mu.Unlock()

	if f.sink != nil {
		if err := f.sink.AppendActivity(ctx, ev); err != nil {
			f.logger.Warn("activity.persist_failed", "err", err)
		}
	}
}

// Load replaces the feed content, e.g. with events read from the store (newest first).
func (f *Feed) Load(events []Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(events) > f.max {
		events = events[:f.max]
	}
	f.events = append([]Event(nil), events...)
}

// Recent returns a copy of the feed, newest first.
func (f *Feed) Recent() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Event(nil), f.events...)
}

// Ago renders the age of t relative to now the way the dashboard shows it.
func Ago(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "À l'instant"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "heure")
	default:
		return plural(int(d/(24*time.Hour)), "jour")
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		unit += "s"
	}
	return fmt.Sprintf("Il y a %d %s", n, unit)
}
