package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memSink struct {
	got []Event
	err error
}

func (m *memSink) AppendActivity(_ context.Context, ev Event) error {
	m.got = append(m.got, ev)
	return m.err
}

func TestFeed_RecordNewestFirstAndTrims(t *testing.T) {
	sink := &memSink{}
	f := NewFeed(2, sink, nil)
	f.Record(context.Background(), Event{Message: "a"})
	f.Record(context.Background(), Event{Message: "b"})
	f.Record(context.Background(), Event{Message: "c"})

	got := f.Recent()
	if len(got) != 2 || got[0].Message != "c" || got[1].Message != "b" {
		t.Errorf("Recent: got %+v", got)
	}
	if len(sink.got) != 3 {
		t.Errorf("sink: expected 3 events, got %d", len(sink.got))
	}
	if got[0].Timestamp.IsZero() {
		t.Error("expected timestamp to be set when zero")
	}
}

func TestFeed_SinkErrorDoesNotDropEvent(t *testing.T) {
	f := NewFeed(5, &memSink{err: errors.New("locked")}, nil)
	f.Record(context.Background(), Event{Message: "x"})
	if len(f.Recent()) != 1 {
		t.Error("event should stay in memory when persistence fails")
	}
}

func TestFeed_LoadCopies(t *testing.T) {
	f := NewFeed(3, nil, nil)
	src := []Event{{Message: "1"}, {Message: "2"}, {Message: "3"}, {Message: "4"}}
	f.Load(src)
	src[0].Message = "changed"
	got := f.Recent()
	if len(got) != 3 || got[0].Message != "1" {
		t.Errorf("Load: got %+v", got)
	}
}

func TestAgo(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "À l'instant"},
		{now.Add(-1 * time.Minute), "Il y a 1 minute"},
		{now.Add(-2 * time.Hour), "Il y a 2 heures"},
		{now.Add(-49 * time.Hour), "Il y a 2 jours"},
	}
	for _, c := range cases {
		if got := Ago(now, c.t); got != c.want {
			t.Errorf("Ago(%v) = %q, want %q", now.Sub(c.t), got, c.want)
		}
	}
}
