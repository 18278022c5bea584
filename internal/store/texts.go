package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"dalil/internal/domain"
)

const textColumns = `id, kind, title, type, domain, reference, date, content, source, keywords, description, status, created_at`

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SaveText validates d and inserts it as a new text of the given kind.
func (s *Store) SaveText(ctx context.Context, kind domain.TextKind, d domain.FormDraft) (domain.LegalText, error) {
	t, err := s.insertText(ctx, s.db, kind, d)
	if err != nil {
		return domain.LegalText{}, err
	}
	return t, nil
}

// SaveTexts inserts every draft in one transaction. Either all are saved
// or, on the first invalid draft or storage error, none are.
func (s *Store) SaveTexts(ctx context.Context, kind domain.TextKind, drafts []domain.FormDraft) ([]domain.LegalText, error) {
	out := make([]domain.LegalText, 0, len(drafts))
	err := s.WithTx(ctx, func(tx *sql.Tx) error {
		for i, d := range drafts {
			t, err := s.insertText(ctx, tx, kind, d)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			out = append(out, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) insertText(ctx context.Context, ex execer, kind domain.TextKind, d domain.FormDraft) (domain.LegalText, error) {
	if err := d.Validate(); err != nil {
		return domain.LegalText{}, err
	}
	if d.Get(domain.FieldStatus) == "" {
		d = d.Set(domain.FieldStatus, domain.StatusDraft)
	}
	t := domain.LegalText{
		ID:        uuid.NewString(),
		Kind:      kind,
		Draft:     d,
		CreatedAt: s.now(),
	}
	_, err := ex.ExecContext(ctx, `INSERT INTO legal_texts(`+textColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Kind),
		d.Get(domain.FieldTitle), d.Get(domain.FieldType), d.Get(domain.FieldDomain),
		d.Get(domain.FieldReference), d.Get(domain.FieldDate), d.Get(domain.FieldContent),
		d.Get(domain.FieldSource), d.Get(domain.FieldKeywords), d.Get(domain.FieldDescription),
		d.Get(domain.FieldStatus), t.CreatedAt,
	)
	if err != nil {
		return domain.LegalText{}, storageErr("store.save_text", err)
	}
	return t, nil
}

// GetText loads a text by ID. A short unambiguous ID prefix is accepted.
func (s *Store) GetText(ctx context.Context, id string) (domain.LegalText, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.LegalText{}, notFound("store.get_text", id)
	}
	// substr instead of LIKE: '%' and '_' in the input are not wildcards.
	rows, err := s.db.QueryContext(ctx, `SELECT `+textColumns+` FROM legal_texts WHERE substr(id, 1, ?) = ? LIMIT 2`,
		utf8.RuneCountInString(id), id)
	if err != nil {
		return domain.LegalText{}, storageErr("store.get_text", err)
	}
	texts, err := scanTexts(rows)
	if err != nil {
		return domain.LegalText{}, storageErr("store.get_text", err)
	}
	for _, t := range texts {
		if t.ID == id {
			return t, nil
		}
	}
	if len(texts) != 1 {
		return domain.LegalText{}, notFound("store.get_text", id)
	}
	return texts[0], nil
}

// ListTexts returns saved texts newest first. An empty kind lists everything.
func (s *Store) ListTexts(ctx context.Context, kind domain.TextKind) ([]domain.LegalText, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if kind == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT `+textColumns+` FROM legal_texts ORDER BY created_at DESC, rowid DESC`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT `+textColumns+` FROM legal_texts WHERE kind = ? ORDER BY created_at DESC, rowid DESC`, string(kind))
	}
	if err != nil {
		return nil, storageErr("store.list_texts", err)
	}
	texts, err := scanTexts(rows)
	if err != nil {
		return nil, storageErr("store.list_texts", err)
	}
	return texts, nil
}

// CountTexts counts saved texts of a kind (all kinds when empty).
func (s *Store) CountTexts(ctx context.Context, kind domain.TextKind) (int, error) {
	var n int
	var err error
	if kind == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM legal_texts`).Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM legal_texts WHERE kind = ?`, string(kind)).Scan(&n)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, storageErr("store.count_texts", err)
	}
	return n, nil
}

func scanTexts(rows *sql.Rows) ([]domain.LegalText, error) {
	defer rows.Close()
	var out []domain.LegalText
	for rows.Next() {
		var (
			t    domain.LegalText
			kind string
			v    [10]string
		)
		if err := rows.Scan(&t.ID, &kind, &v[0], &v[1], &v[2], &v[3], &v[4], &v[5], &v[6], &v[7], &v[8], &v[9], &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Kind = domain.TextKind(kind)
		t.Draft = domain.FormDraft{}.Apply(
			domain.FieldUpdate{Field: domain.FieldTitle, Value: v[0]},
			domain.FieldUpdate{Field: domain.FieldType, Value: v[1]},
			domain.FieldUpdate{Field: domain.FieldDomain, Value: v[2]},
			domain.FieldUpdate{Field: domain.FieldReference, Value: v[3]},
			domain.FieldUpdate{Field: domain.FieldDate, Value: v[4]},
			domain.FieldUpdate{Field: domain.FieldContent, Value: v[5]},
			domain.FieldUpdate{Field: domain.FieldSource, Value: v[6]},
			domain.FieldUpdate{Field: domain.FieldKeywords, Value: v[7]},
			domain.FieldUpdate{Field: domain.FieldDescription, Value: v[8]},
			domain.FieldUpdate{Field: domain.FieldStatus, Value: v[9]},
		)
		out = append(out, t)
	}
	return out, rows.Err()
}
