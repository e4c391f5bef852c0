package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/kasten/internal/note"
	"github.com/vidyasagar/kasten/internal/theme"
)

// browseChromeLines is the title, column header, and hint rows around
// the listing.
const browseChromeLines = 4

// BrowseTable is a scrolling listing of note summaries (recent, hubs,
// orphans, search results, notes under a tag). The cursor moves through
// the rows; the visible slice follows it.
type BrowseTable struct {
	label  string
	all    []note.Summary
	rows   []note.Summary
	filter string

	cursor int
	offset int

	width  int
	height int
}

// NewBrowseTable creates an empty browse table.
func NewBrowseTable() BrowseTable {
	return BrowseTable{label: "notes"}
}

// SetSize updates the table dimensions.
func (bt *BrowseTable) SetSize(width, height int) {
	bt.width = width
	bt.height = height
	bt.ensureVisible()
}

// SetRows replaces the listing and resets cursor and filter.
func (bt *BrowseTable) SetRows(label string, rows []note.Summary) {
	bt.label = label
	bt.all = rows
	bt.rows = rows
	bt.filter = ""
	bt.cursor = 0
	bt.offset = 0
}

// Filter narrows the listing to ids containing q (case-insensitive).
// An empty q restores the full listing.
func (bt *BrowseTable) Filter(q string) {
	bt.filter = q
	if q == "" {
		bt.rows = bt.all
	} else {
		needle := strings.ToLower(q)
		filtered := make([]note.Summary, 0, len(bt.all))
		for _, row := range bt.all {
			if strings.Contains(strings.ToLower(row.ID), needle) {
				filtered = append(filtered, row)
			}
		}
		bt.rows = filtered
	}
	bt.cursor = 0
	bt.offset = 0
}

// Len returns the number of visible rows after filtering.
func (bt *BrowseTable) Len() int {
	return len(bt.rows)
}

// Label returns the listing label.
func (bt *BrowseTable) Label() string {
	return bt.label
}

// SelectedID returns the id under the cursor, false when the listing is
// empty.
func (bt *BrowseTable) SelectedID() (string, bool) {
	if bt.cursor < 0 || bt.cursor >= len(bt.rows) {
		return "", false
	}
	return bt.rows[bt.cursor].ID, true
}

// CursorUp moves the cursor up one row.
func (bt *BrowseTable) CursorUp() {
	if bt.cursor > 0 {
		bt.cursor--
		bt.ensureVisible()
	}
}

// CursorDown moves the cursor down one row.
func (bt *BrowseTable) CursorDown() {
	if bt.cursor < len(bt.rows)-1 {
		bt.cursor++
		bt.ensureVisible()
	}
}

// HalfPageUp moves the cursor up half a screen.
func (bt *BrowseTable) HalfPageUp() {
	bt.cursor -= bt.visibleRows() / 2
	if bt.cursor < 0 {
		bt.cursor = 0
	}
	bt.ensureVisible()
}

// HalfPageDown moves the cursor down half a screen.
func (bt *BrowseTable) HalfPageDown() {
	bt.cursor += bt.visibleRows() / 2
	if bt.cursor > len(bt.rows)-1 {
		bt.cursor = len(bt.rows) - 1
	}
	if bt.cursor < 0 {
		bt.cursor = 0
	}
	bt.ensureVisible()
}

// GotoTop moves the cursor to the first row.
func (bt *BrowseTable) GotoTop() {
	bt.cursor = 0
	bt.ensureVisible()
}

// GotoBottom moves the cursor to the last row.
func (bt *BrowseTable) GotoBottom() {
	if len(bt.rows) > 0 {
		bt.cursor = len(bt.rows) - 1
	}
	bt.ensureVisible()
}

func (bt *BrowseTable) visibleRows() int {
	rows := bt.height - browseChromeLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (bt *BrowseTable) ensureVisible() {
	rows := bt.visibleRows()
	if bt.cursor < bt.offset {
		bt.offset = bt.cursor
	}
	if bt.cursor >= bt.offset+rows {
		bt.offset = bt.cursor - rows + 1
	}
	if bt.offset < 0 {
		bt.offset = 0
	}
}

// View renders the listing.
func (bt *BrowseTable) View() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Bold(true)

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	rowStyle := lipgloss.NewStyle().Foreground(t.Text)
	cursorStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.Surface).
		Bold(true)

	var sb strings.Builder

	title := fmt.Sprintf("📚 %s", bt.label)
	sb.WriteString(titleStyle.Render(title))
	count := fmt.Sprintf(" %d notes", len(bt.rows))
	if bt.filter != "" {
		count += fmt.Sprintf("  filter: %q", bt.filter)
	}
	sb.WriteString(dimStyle.Render(count))
	sb.WriteString("\n")

	if len(bt.rows) == 0 {
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render("  nothing here — press n to create a note"))
		sb.WriteString("\n")
		return sb.String()
	}

	idWidth := 24
	previewWidth := bt.width - idWidth - 22
	if previewWidth < 10 {
		previewWidth = 10
	}

	sb.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %-*s %5s  %s", idWidth, "id", previewWidth, "preview", "links", "created")))
	sb.WriteString("\n")

	rows := bt.visibleRows()
	end := bt.offset + rows
	if end > len(bt.rows) {
		end = len(bt.rows)
	}

	for i := bt.offset; i < end; i++ {
		row := bt.rows[i]

		id := row.ID
		if len(id) > idWidth {
			id = id[:idWidth-1] + "…"
		}

		preview := note.Preview(row.Body, previewWidth)

		created := ""
		if !row.CreatedAt.IsZero() {
			created = row.CreatedAt.Format("2006-01-02")
		}

		line := fmt.Sprintf("  %-*s %-*s %5d  %s", idWidth, id, previewWidth, preview, row.Connections, created)
		if i == bt.cursor {
			sb.WriteString(cursorStyle.Render("▸" + line[1:]))
		} else {
			sb.WriteString(rowStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	if remaining := len(bt.rows) - end; remaining > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  ↓ %d more", remaining)))
		sb.WriteString("\n")
	}

	sb.WriteString(dimStyle.Render("  j/k:move  Enter:open  r:recent  u:hubs  o:orphans  i:tags  /:search"))

	return sb.String()
}

// TagTable is a scrolling listing of tags with note counts.
type TagTable struct {
	rows   []note.TagCount
	cursor int
	offset int

	width  int
	height int
}

// NewTagTable creates an empty tag table.
func NewTagTable() TagTable {
	return TagTable{}
}

// SetSize updates the table dimensions.
func (tt *TagTable) SetSize(width, height int) {
	tt.width = width
	tt.height = height
	tt.ensureVisible()
}

// SetRows replaces the listing and resets the cursor.
func (tt *TagTable) SetRows(rows []note.TagCount) {
	tt.rows = rows
	tt.cursor = 0
	tt.offset = 0
}

// Len returns the number of tags listed.
func (tt *TagTable) Len() int {
	return len(tt.rows)
}

// Selected returns the tag under the cursor, false when empty.
func (tt *TagTable) Selected() (note.TagCount, bool) {
	if tt.cursor < 0 || tt.cursor >= len(tt.rows) {
		return note.TagCount{}, false
	}
	return tt.rows[tt.cursor], true
}

// CursorUp moves the cursor up one row.
func (tt *TagTable) CursorUp() {
	if tt.cursor > 0 {
		tt.cursor--
		tt.ensureVisible()
	}
}

// CursorDown moves the cursor down one row.
func (tt *TagTable) CursorDown() {
	if tt.cursor < len(tt.rows)-1 {
		tt.cursor++
		tt.ensureVisible()
	}
}

func (tt *TagTable) visibleRows() int {
	rows := tt.height - browseChromeLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (tt *TagTable) ensureVisible() {
	rows := tt.visibleRows()
	if tt.cursor < tt.offset {
		tt.offset = tt.cursor
	}
	if tt.cursor >= tt.offset+rows {
		tt.offset = tt.cursor - rows + 1
	}
	if tt.offset < 0 {
		tt.offset = 0
	}
}

// View renders the tag listing.
func (tt *TagTable) View() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Padding(0, 1)

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	rowStyle := lipgloss.NewStyle().Foreground(t.Text)
	countStyle := lipgloss.NewStyle().Foreground(t.Accent)
	cursorStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.Surface).
		Bold(true)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("🏷 tags"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf(" %d", len(tt.rows))))
	sb.WriteString("\n\n")

	if len(tt.rows) == 0 {
		sb.WriteString(dimStyle.Render("  no tags yet"))
		sb.WriteString("\n")
		return sb.String()
	}

	rows := tt.visibleRows()
	end := tt.offset + rows
	if end > len(tt.rows) {
		end = len(tt.rows)
	}

	for i := tt.offset; i < end; i++ {
		row := tt.rows[i]
		line := fmt.Sprintf("  #%-28s %s", row.Name, countStyle.Render(fmt.Sprintf("%d notes", row.Count)))
		if i == tt.cursor {
			sb.WriteString(cursorStyle.Render("▸ #" + fmt.Sprintf("%-28s", row.Name)))
			sb.WriteString(" " + countStyle.Render(fmt.Sprintf("%d notes", row.Count)))
		} else {
			sb.WriteString(rowStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	if remaining := len(tt.rows) - end; remaining > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  ↓ %d more", remaining)))
		sb.WriteString("\n")
	}

	sb.WriteString(dimStyle.Render("  j/k:move  Enter:notes under tag  Esc:back"))

	return sb.String()
}
