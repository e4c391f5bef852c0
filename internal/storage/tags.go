package storage

import (
	"fmt"
	"strings"

	"github.com/vidyasagar/kasten/internal/note"
)

// Tags returns every tag with its note count, most used first.
func (s *Store) Tags() ([]note.TagCount, error) {
	rows, err := s.db.Query(
		`SELECT t.id, t.name, COUNT(nt.note_id)
		 FROM tags t
		 LEFT JOIN note_tags nt ON t.id = nt.tag_id
		 GROUP BY t.id, t.name
		 ORDER BY COUNT(nt.note_id) DESC, t.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []note.TagCount
	for rows.Next() {
		var t note.TagCount
		if err := rows.Scan(&t.ID, &t.Name, &t.Count); err != nil {
			return nil, fmt.Errorf("listing tags: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// AllTags returns every tag without counts, ordered by name. Used by the
// tag picker.
func (s *Store) AllTags() ([]note.Tag, error) {
	return s.scanTags(`SELECT id, name FROM tags ORDER BY name`)
}

// SearchTags finds tags whose name contains the query, case-insensitive.
func (s *Store) SearchTags(query string) ([]note.Tag, error) {
	return s.scanTags(
		`SELECT id, name FROM tags
		 WHERE LOWER(name) LIKE LOWER(?)
		 ORDER BY name`,
		"%"+query+"%",
	)
}

// CreateTag creates a tag from a display name and returns its slug id.
// Returns ErrExists if the slug is taken.
func (s *Store) CreateTag(name string) (string, error) {
	slug := note.Slugify(name)
	if slug == "" {
		return "", fmt.Errorf("tag name %q produces an empty slug", name)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tags WHERE id = ?`, slug).Scan(&count); err != nil {
		return "", fmt.Errorf("creating tag %s: %w", slug, err)
	}
	if count > 0 {
		return "", fmt.Errorf("tag %s: %w", slug, ErrExists)
	}
	if _, err := s.db.Exec(
		`INSERT INTO tags (id, name) VALUES (?, ?)`, slug, strings.TrimSpace(name),
	); err != nil {
		return "", fmt.Errorf("creating tag %s: %w", slug, err)
	}
	return slug, nil
}

// NoteTags returns the tags on a note, ordered by name.
func (s *Store) NoteTags(noteID string) ([]note.Tag, error) {
	return s.scanTags(
		`SELECT t.id, t.name FROM note_tags nt
		 JOIN tags t ON nt.tag_id = t.id
		 WHERE nt.note_id = ?
		 ORDER BY t.name`,
		noteID,
	)
}

// TagNote associates a tag with a note. Returns ErrExists when already
// tagged.
func (s *Store) TagNote(noteID, tagID string) error {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`,
		noteID, tagID,
	)
	if err != nil {
		return fmt.Errorf("tagging %s with %s: %w", noteID, tagID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tag %s on %s: %w", tagID, noteID, ErrExists)
	}
	return nil
}

// UntagNote removes a tag from a note. Returns ErrNotFound when the note
// did not carry the tag.
func (s *Store) UntagNote(noteID, tagID string) error {
	res, err := s.db.Exec(
		`DELETE FROM note_tags WHERE note_id = ? AND tag_id = ?`,
		noteID, tagID,
	)
	if err != nil {
		return fmt.Errorf("untagging %s from %s: %w", tagID, noteID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("tag %s on %s: %w", tagID, noteID, ErrNotFound)
	}
	return nil
}

func (s *Store) scanTags(query string, args ...any) ([]note.Tag, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []note.Tag
	for rows.Next() {
		var t note.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("listing tags: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
