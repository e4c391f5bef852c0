package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vidyasagar/kasten/internal/note"
)

// linkPreviewMax bounds the body text carried along with each link ref.
// Panels truncate further to fit their width.
const linkPreviewMax = 80

// Store runs all note, link, and tag operations against SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a store using the given database.
func NewStore(db *DB) *Store {
	return &Store{db: db.Conn()}
}

// Exists reports whether a note id is present.
func (s *Store) Exists(id string) (bool, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM notes WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking note %s: %w", id, err)
	}
	return count > 0, nil
}

// Load returns a note with its link neighborhood and tag names. Returns
// ErrNotFound for an unknown id.
func (s *Store) Load(id string) (*note.Note, error) {
	n := &note.Note{ID: id}
	var createdAt, modifiedAt string
	err := s.db.QueryRow(
		`SELECT body, created_at, modified_at FROM notes WHERE id = ?`, id,
	).Scan(&n.Body, &createdAt, &modifiedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading note %s: %w", id, err)
	}
	n.CreatedAt = parseTime(createdAt)
	n.ModifiedAt = parseTime(modifiedAt)

	n.Outbound, err = s.linkRefs(
		`SELECT n.id, n.body FROM links l
		 JOIN notes n ON l.to_id = n.id
		 WHERE l.from_id = ?
		 ORDER BY n.id`, id)
	if err != nil {
		return nil, fmt.Errorf("loading outbound links of %s: %w", id, err)
	}
	n.Inbound, err = s.linkRefs(
		`SELECT n.id, n.body FROM links l
		 JOIN notes n ON l.from_id = n.id
		 WHERE l.to_id = ?
		 ORDER BY n.id`, id)
	if err != nil {
		return nil, fmt.Errorf("loading inbound links of %s: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT t.name FROM note_tags nt
		 JOIN tags t ON nt.tag_id = t.id
		 WHERE nt.note_id = ?
		 ORDER BY t.name`, id)
	if err != nil {
		return nil, fmt.Errorf("loading tags of %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("loading tags of %s: %w", id, err)
		}
		n.Tags = append(n.Tags, name)
	}
	return n, rows.Err()
}

// Create inserts a new note, optionally linking it to existing notes.
// Unknown link targets are skipped; callers that care check them with
// Exists first. Returns ErrExists if the id is taken.
func (s *Store) Create(id, body string, linkTo []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("creating note %s: %w", id, err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM notes WHERE id = ?`, id).Scan(&count); err != nil {
		return fmt.Errorf("creating note %s: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("note %s: %w", id, ErrExists)
	}
	if _, err := tx.Exec(`INSERT INTO notes (id, body) VALUES (?, ?)`, id, body); err != nil {
		return fmt.Errorf("creating note %s: %w", id, err)
	}

	for _, target := range linkTo {
		if target == id {
			continue
		}
		if err := tx.QueryRow(`SELECT COUNT(*) FROM notes WHERE id = ?`, target).Scan(&count); err != nil {
			return fmt.Errorf("creating note %s: %w", id, err)
		}
		if count == 0 {
			continue
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO links (from_id, to_id) VALUES (?, ?)`, id, target,
		); err != nil {
			return fmt.Errorf("linking %s to %s: %w", id, target, err)
		}
	}
	return tx.Commit()
}

// Delete removes a note. Links and tag associations cascade.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("note %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) linkRefs(query string, args ...any) ([]note.LinkRef, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []note.LinkRef
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, err
		}
		refs = append(refs, note.LinkRef{ID: id, Preview: note.Preview(body, linkPreviewMax)})
	}
	return refs, rows.Err()
}

func parseTime(s string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04:05", s)
	return t
}
