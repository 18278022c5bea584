package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"dalil/internal/domain"
)

// SaveTrend upserts t, assigning an ID when empty.
func (s *Store) SaveTrend(ctx context.Context, t domain.Trend) (domain.Trend, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = s.now()
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO trends(id, title, category, description, priority, searches, growth, keywords, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 category=excluded.category,
	 description=excluded.description,
	 priority=excluded.priority,
	 searches=excluded.searches,
	 growth=excluded.growth,
	 keywords=excluded.keywords,
	 updated_at=excluded.updated_at;
	`, t.ID, t.Title, t.Category, t.Description, string(t.Priority), t.Searches, t.Growth,
		strings.Join(t.Keywords, ", "), t.UpdatedAt)
	if err != nil {
		return domain.Trend{}, storageErr("store.save_trend", err)
	}
	return t, nil
}

// ListTrends returns stored trends, most searched first.
func (s *Store) ListTrends(ctx context.Context) ([]domain.Trend, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, title, category, description, priority, searches, growth, keywords, updated_at
	FROM trends ORDER BY searches DESC, title`)
	if err != nil {
		return nil, storageErr("store.list_trends", err)
	}
	defer rows.Close()
	var out []domain.Trend
	for rows.Next() {
		var t domain.Trend
		var prio, kw string
		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &t.Description, &prio, &t.Searches, &t.Growth, &kw, &t.UpdatedAt); err != nil {
			return nil, storageErr("store.list_trends", err)
		}
		t.Priority = domain.Priority(prio)
		t.Keywords = domain.SplitKeywords(kw)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("store.list_trends", err)
	}
	return out, nil
}
