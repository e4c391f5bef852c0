package storage

import (
	"fmt"
	"strings"

	"github.com/vidyasagar/kasten/internal/note"
)

// pathPreviewMax bounds the hop preview text in two-hop path rows.
const pathPreviewMax = 50

// AppendAnnotatedLink records a documented connection between two notes:
// it appends "→{to}: {reason}" to the source body and inserts the link
// row, as one transaction. This is the only way a note body changes after
// creation.
//
// Validation failures come back as sentinels: ErrSelfLink, ErrEmptyReason,
// ErrNotFound (source or target), ErrLinkExists.
func (s *Store) AppendAnnotatedLink(from, to, reason string) error {
	if from == to {
		return ErrSelfLink
	}
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyReason
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("linking %s to %s: %w", from, to, err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM notes WHERE id = ?`, from).Scan(&count); err != nil {
		return fmt.Errorf("linking %s to %s: %w", from, to, err)
	}
	if count == 0 {
		return fmt.Errorf("source note %s: %w", from, ErrNotFound)
	}
	if err := tx.QueryRow(`SELECT COUNT(*) FROM notes WHERE id = ?`, to).Scan(&count); err != nil {
		return fmt.Errorf("linking %s to %s: %w", from, to, err)
	}
	if count == 0 {
		return fmt.Errorf("target note %s: %w", to, ErrNotFound)
	}
	if err := tx.QueryRow(
		`SELECT COUNT(*) FROM links WHERE from_id = ? AND to_id = ?`, from, to,
	).Scan(&count); err != nil {
		return fmt.Errorf("linking %s to %s: %w", from, to, err)
	}
	if count > 0 {
		return fmt.Errorf("link %s to %s: %w", from, to, ErrLinkExists)
	}

	annotation := fmt.Sprintf("\n\n→%s: %s", to, strings.TrimSpace(reason))
	if _, err := tx.Exec(
		`UPDATE notes SET body = body || ?, modified_at = datetime('now') WHERE id = ?`,
		annotation, from,
	); err != nil {
		return fmt.Errorf("annotating %s: %w", from, err)
	}
	if _, err := tx.Exec(
		`INSERT INTO links (from_id, to_id) VALUES (?, ?)`, from, to,
	); err != nil {
		return fmt.Errorf("linking %s to %s: %w", from, to, err)
	}
	return tx.Commit()
}

// LinkExists reports whether a directed link is present.
func (s *Store) LinkExists(from, to string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM links WHERE from_id = ? AND to_id = ?`, from, to,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking link %s to %s: %w", from, to, err)
	}
	return count > 0, nil
}

// DeleteLink removes a directed link. The annotation line in the source
// body stays; bodies are append-only.
func (s *Store) DeleteLink(from, to string) error {
	res, err := s.db.Exec(
		`DELETE FROM links WHERE from_id = ? AND to_id = ?`, from, to,
	)
	if err != nil {
		return fmt.Errorf("deleting link %s to %s: %w", from, to, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("link %s to %s: %w", from, to, ErrNotFound)
	}
	return nil
}

// TwoHopPaths finds notes reachable from origin through exactly one
// intermediate outbound link, skipping paths that loop back to the
// origin.
func (s *Store) TwoHopPaths(origin string, limit int) ([]note.PathHop, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT l1.to_id, l2.to_id, n2.body
		 FROM links l1
		 JOIN links l2 ON l1.to_id = l2.from_id
		 JOIN notes n2 ON l2.to_id = n2.id
		 WHERE l1.from_id = ? AND l2.to_id != ?
		 LIMIT ?`,
		origin, origin, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("finding paths from %s: %w", origin, err)
	}
	defer rows.Close()

	var paths []note.PathHop
	for rows.Next() {
		var p note.PathHop
		var body string
		if err := rows.Scan(&p.Hop1, &p.Hop2, &body); err != nil {
			return nil, fmt.Errorf("finding paths from %s: %w", origin, err)
		}
		p.Hop2Preview = note.Preview(body, pathPreviewMax)
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
