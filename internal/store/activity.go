package store

import (
	"context"

	"dalil/internal/activity"
)

// AppendActivity implements activity.Sink.
func (s *Store) AppendActivity(ctx context.Context, ev activity.Event) error {
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO activity(message, kind, created_at) VALUES (?, ?, ?)`,
		ev.Message, string(ev.Kind), ts.UTC())
	if err != nil {
		return storageErr("store.append_activity", err)
	}
	return nil
}

// RecentActivity returns up to limit events, newest first.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]activity.Event, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `SELECT message, kind, created_at FROM activity ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, storageErr("store.recent_activity", err)
	}
	defer rows.Close()
	var out []activity.Event
	for rows.Next() {
		var ev activity.Event
		var kind string
		if err := rows.Scan(&ev.Message, &kind, &ev.Timestamp); err != nil {
			return nil, storageErr("store.recent_activity", err)
		}
		ev.Kind = activity.Kind(kind)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("store.recent_activity", err)
	}
	return out, nil
}
