package storage

import (
	"fmt"
	"math"

	"github.com/vidyasagar/kasten/internal/note"
)

// NoteOrder selects the sort for AllNotes.
type NoteOrder int

const (
	OrderID NoteOrder = iota
	OrderCreated
	OrderConnections
)

// summarySelect is the shared projection for browse rows: id, body,
// created_at, and the note's total degree counted inline.
const summarySelect = `
	SELECT n.id, n.body, n.created_at,
	       (SELECT COUNT(*) FROM links WHERE from_id = n.id) +
	       (SELECT COUNT(*) FROM links WHERE to_id = n.id) AS connections
	FROM notes n`

// Recent returns the newest notes first.
func (s *Store) Recent(limit int) ([]note.Summary, error) {
	return s.summaries(summarySelect+` ORDER BY n.created_at DESC LIMIT ?`, limit)
}

// Hubs returns the most connected notes first, id as tiebreaker.
func (s *Store) Hubs(limit int) ([]note.Summary, error) {
	return s.summaries(summarySelect+` ORDER BY connections DESC, n.id LIMIT ?`, limit)
}

// Orphans returns notes with no links in either direction, newest first.
func (s *Store) Orphans() ([]note.Summary, error) {
	return s.summaries(summarySelect + `
		WHERE n.id NOT IN (SELECT from_id FROM links UNION SELECT to_id FROM links)
		ORDER BY n.created_at DESC`)
}

// Search finds notes whose id or body contains the query, ordered by id.
func (s *Store) Search(query string, limit int) ([]note.Summary, error) {
	like := "%" + query + "%"
	return s.summaries(summarySelect+`
		WHERE n.id LIKE ? OR n.body LIKE ?
		ORDER BY n.id LIMIT ?`, like, like, limit)
}

// ByTag returns the notes carrying a tag, ordered by id.
func (s *Store) ByTag(tagID string) ([]note.Summary, error) {
	return s.summaries(summarySelect+`
		JOIN note_tags nt ON nt.note_id = n.id
		WHERE nt.tag_id = ?
		ORDER BY n.id`, tagID)
}

// AllNotes returns every note in the given order.
func (s *Store) AllNotes(order NoteOrder) ([]note.Summary, error) {
	clause := ` ORDER BY n.id`
	switch order {
	case OrderCreated:
		clause = ` ORDER BY n.created_at DESC`
	case OrderConnections:
		clause = ` ORDER BY connections DESC, n.id`
	}
	return s.summaries(summarySelect + clause)
}

// Stats counts notes, links, orphans, and tags, and derives the average
// links per note. Each link touches two notes, so the average counts both
// directions, rounded to one decimal.
func (s *Store) Stats() (*note.Stats, error) {
	st := &note.Stats{}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM notes`).Scan(&st.Notes); err != nil {
		return nil, fmt.Errorf("counting notes: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM links`).Scan(&st.Links); err != nil {
		return nil, fmt.Errorf("counting links: %w", err)
	}
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM notes WHERE id NOT IN
		 (SELECT from_id FROM links UNION SELECT to_id FROM links)`,
	).Scan(&st.Orphans); err != nil {
		return nil, fmt.Errorf("counting orphans: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tags`).Scan(&st.Tags); err != nil {
		return nil, fmt.Errorf("counting tags: %w", err)
	}
	if st.Notes > 0 {
		st.AvgLinksPer = math.Round(float64(st.Links*2)/float64(st.Notes)*10) / 10
	}
	return st, nil
}

func (s *Store) summaries(query string, args ...any) ([]note.Summary, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var sums []note.Summary
	for rows.Next() {
		var sum note.Summary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.Body, &createdAt, &sum.Connections); err != nil {
			return nil, fmt.Errorf("listing notes: %w", err)
		}
		sum.CreatedAt = parseTime(createdAt)
		sums = append(sums, sum)
	}
	return sums, rows.Err()
}
