package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"dalil/internal/domain"
)

// AddDirectoryEntry stores a user-added directory entry. Name is required.
func (s *Store) AddDirectoryEntry(ctx context.Context, e domain.DirectoryEntry) (domain.DirectoryEntry, error) {
	if strings.TrimSpace(e.Name) == "" {
		return domain.DirectoryEntry{}, &domain.Error{
			Op:    "store.add_directory_entry",
			Kind:  domain.KindValidation,
			Field: "name",
			Msg:   "Veuillez saisir un nom.",
			Err:   domain.ErrRequired,
		}
	}
	if e.Category == "" {
		e.Category = domain.CategoryInstitutions
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO directory_entries(id, category, name, type, address, phone, email, website, description, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 category=excluded.category,
	 name=excluded.name,
	 type=excluded.type,
	 address=excluded.address,
	 phone=excluded.phone,
	 email=excluded.email,
	 website=excluded.website,
	 description=excluded.description;
	`, e.ID, string(e.Category), e.Name, e.Type, e.Address, e.Phone, e.Email, e.Website, e.Description, s.now())
	if err != nil {
		return domain.DirectoryEntry{}, storageErr("store.add_directory_entry", err)
	}
	return e, nil
}

// ListDirectoryEntries returns user-added entries of a category in insertion
// order. An empty category lists everything.
func (s *Store) ListDirectoryEntries(ctx context.Context, cat domain.DirectoryCategory) ([]domain.DirectoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, category, name, type, address, phone, email, website, description
	FROM directory_entries
	WHERE ? = '' OR category = ?
	ORDER BY created_at, rowid`, string(cat), string(cat))
	if err != nil {
		return nil, storageErr("store.list_directory_entries", err)
	}
	defer rows.Close()
	var out []domain.DirectoryEntry
	for rows.Next() {
		var e domain.DirectoryEntry
		var c string
		if err := rows.Scan(&e.ID, &c, &e.Name, &e.Type, &e.Address, &e.Phone, &e.Email, &e.Website, &e.Description); err != nil {
			return nil, storageErr("store.list_directory_entries", err)
		}
		e.Category = domain.DirectoryCategory(c)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("store.list_directory_entries", err)
	}
	return out, nil
}
