// Package note holds the core domain types for a zettelkasten note and the
// pure string rules shared across views: the effective-character budget and
// tag slug normalization.
package note

import (
	"regexp"
	"strings"
	"time"
)

// Effective-character thresholds. A note body is measured after stripping
// bracketed segments, so citations and source markers are free.
const (
	WarnEffectiveChars = 700
	MaxEffectiveChars  = 825
)

// CharStatus classifies a note body against the character budget.
type CharStatus int

const (
	StatusOK CharStatus = iota
	StatusWarn
	StatusOver
)

// String returns the short label used in panels and forms.
func (s CharStatus) String() string {
	switch s {
	case StatusWarn:
		return "warn"
	case StatusOver:
		return "over"
	default:
		return "ok"
	}
}

// LinkRef points at a linked note, carrying enough of its body for a
// one-line preview.
type LinkRef struct {
	ID      string
	Preview string
}

// Note is a single card loaded from the store, with its link neighborhood.
type Note struct {
	ID         string
	Body       string
	CreatedAt  time.Time
	ModifiedAt time.Time
	Outbound   []LinkRef // outbound link targets, ordered by id
	Inbound    []LinkRef // inbound link sources, ordered by id
	Tags       []string  // tag names, ordered by name
}

// Connections returns the total degree of the note.
func (n *Note) Connections() int {
	return len(n.Outbound) + len(n.Inbound)
}

// Summary is a note row for browse tables and search results. Body is the
// full note text; views truncate it to fit.
type Summary struct {
	ID          string
	Body        string
	Connections int
	CreatedAt   time.Time
}

// Tag is a tag's slug id and display name.
type Tag struct {
	ID   string
	Name string
}

// PathHop is one two-hop path discovered from an origin note.
type PathHop struct {
	Hop1        string
	Hop2        string
	Hop2Preview string
}

// TagCount is a tag with its usage count, for the tag index.
type TagCount struct {
	ID    string // slug
	Name  string
	Count int
}

// Stats summarizes the whole kasten.
type Stats struct {
	Notes       int
	Links       int
	Orphans     int
	Tags        int
	AvgLinksPer float64 // links*2/notes, both directions counted
}

var (
	bracketRe    = regexp.MustCompile(`\[.*?\]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	slugRe       = regexp.MustCompile(`[^a-z0-9-]`)
)

// EffectiveChars counts the characters of body that count against the
// budget: bracketed segments are stripped first, then surrounding
// whitespace.
func EffectiveChars(body string) int {
	stripped := bracketRe.ReplaceAllString(body, "")
	return len([]rune(strings.TrimSpace(stripped)))
}

// Status classifies an effective-character count.
func Status(count int) CharStatus {
	switch {
	case count > MaxEffectiveChars:
		return StatusOver
	case count > WarnEffectiveChars:
		return StatusWarn
	default:
		return StatusOK
	}
}

// BodyStatus is Status(EffectiveChars(body)).
func BodyStatus(body string) CharStatus {
	return Status(EffectiveChars(body))
}

// Slugify normalizes a tag name into its id: lowercased, whitespace runs
// collapsed to single hyphens, everything outside [a-z0-9-] dropped.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = whitespaceRe.ReplaceAllString(slug, "-")
	return slugRe.ReplaceAllString(slug, "")
}

// ValidID reports whether id is usable as a note id: non-empty with no
// whitespace.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	return !strings.ContainsAny(id, " \t\n\r")
}

// Preview flattens a body into a single line of at most max runes for
// tables and link lists, appending "..." when truncated.
func Preview(body string, max int) string {
	flat := whitespaceRe.ReplaceAllString(strings.TrimSpace(body), " ")
	runes := []rune(flat)
	if len(runes) <= max {
		return flat
	}
	return string(runes[:max]) + "..."
}
