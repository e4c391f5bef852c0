package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/kasten/internal/theme"
	"github.com/vidyasagar/kasten/internal/trail"
)

// trailOverheadLines is the chrome around the entry list: title, count,
// two overflow indicators, and the hint line, plus a breathing row.
const trailOverheadLines = 6

// TrailPanel displays the session trail as a windowed list with a
// selection cursor. It renders from a snapshot taken by Refresh; the app
// calls Refresh after every trail mutation, nothing here watches the
// trail on its own.
type TrailPanel struct {
	trail   *trail.Trail
	visible []trail.VisibleEntry
	total   int
	before  int
	after   int

	cursor   int
	focused  bool
	width    int
	height   int
	fallback int // window size when the panel height is unusable
}

// NewTrailPanel creates a trail panel over the given trail. fallback is
// the window size used before the first resize; values below 1 become 8.
func NewTrailPanel(t *trail.Trail, fallback int) TrailPanel {
	if fallback < 1 {
		fallback = 8
	}
	tp := TrailPanel{trail: t, fallback: fallback}
	tp.Refresh()
	return tp
}

// Refresh snapshots the trail state for display and clamps the cursor to
// the new visible slice.
func (tp *TrailPanel) Refresh() {
	tp.visible = tp.trail.VisibleEntries()
	tp.total = tp.trail.Len()
	tp.before, tp.after = tp.trail.OverflowCounts()
	if tp.cursor >= len(tp.visible) {
		tp.cursor = len(tp.visible) - 1
	}
	if tp.cursor < 0 {
		tp.cursor = 0
	}
}

// SetSize updates the panel dimensions and derives the trail window size
// from the height, never dropping below the fallback.
func (tp *TrailPanel) SetSize(w, h int) {
	tp.width = w
	tp.height = h
	size := h - trailOverheadLines
	if size < tp.fallback {
		size = tp.fallback
	}
	tp.trail.SetWindowSize(size)
	tp.Refresh()
}

// Focus enters trail navigation: the cursor snaps to the current entry,
// or to the top of the window when the current entry is scrolled out.
func (tp *TrailPanel) Focus() {
	tp.focused = true
	tp.cursor = 0
	for i, e := range tp.visible {
		if e.Current {
			tp.cursor = i
			break
		}
	}
}

// Blur leaves trail navigation. The cursor position is kept, only its
// highlight goes away.
func (tp *TrailPanel) Blur() {
	tp.focused = false
}

// IsFocused reports whether the panel has the keyboard.
func (tp *TrailPanel) IsFocused() bool {
	return tp.focused
}

// CursorUp moves the cursor up one visible entry.
func (tp *TrailPanel) CursorUp() {
	if tp.cursor > 0 {
		tp.cursor--
	}
}

// CursorDown moves the cursor down one visible entry.
func (tp *TrailPanel) CursorDown() {
	if tp.cursor < len(tp.visible)-1 {
		tp.cursor++
	}
}

// Selected returns the visible entry under the cursor.
func (tp *TrailPanel) Selected() (trail.VisibleEntry, bool) {
	if len(tp.visible) == 0 || tp.cursor < 0 || tp.cursor >= len(tp.visible) {
		return trail.VisibleEntry{}, false
	}
	return tp.visible[tp.cursor], true
}

// View renders the trail panel.
func (tp *TrailPanel) View() string {
	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(tp.width).
		Height(tp.height)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(tp.width).
		Padding(0, 1)

	countStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	overflowStyle := lipgloss.NewStyle().
		Foreground(t.TrailDim).
		Padding(0, 1)

	currentStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.TrailActive).
		Width(tp.width).
		Padding(0, 1)

	entryStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Width(tp.width).
		Padding(0, 1)

	cursorStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.TrailActive).
		Bold(true).
		Width(tp.width).
		Padding(0, 1)

	hintStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Italic(true).
		Padding(0, 1)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("🧭 Trail"))
	sb.WriteString("\n")
	if tp.total > 0 {
		sb.WriteString(countStyle.Render(fmt.Sprintf("(%d total)", tp.total)))
	}
	sb.WriteString("\n")

	if tp.before > 0 {
		sb.WriteString(overflowStyle.Render(fmt.Sprintf("↑ %d more", tp.before)))
		sb.WriteString("\n")
	}

	if len(tp.visible) == 0 {
		sb.WriteString(countStyle.Render("(empty)"))
		sb.WriteString("\n")
	}

	maxIDLen := tp.width - 9 // position column, marker, padding
	if maxIDLen < 8 {
		maxIDLen = 8
	}

	for i, e := range tp.visible {
		id := e.ID
		if len(id) > maxIDLen {
			id = id[:maxIDLen-3] + "..."
		}

		marker := ""
		if e.Current {
			marker = " ←"
		}
		line := fmt.Sprintf("%3d %s%s", e.Position, id, marker)

		switch {
		case tp.focused && i == tp.cursor:
			sb.WriteString(cursorStyle.Render(line))
		case e.Current:
			sb.WriteString(currentStyle.Render(line))
		default:
			sb.WriteString(entryStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	if tp.after > 0 {
		sb.WriteString(overflowStyle.Render(fmt.Sprintf("↓ %d more", tp.after)))
		sb.WriteString("\n")
	}

	var hint string
	switch {
	case tp.focused:
		hint = "j/k:move  Enter:jump  Esc:back"
	case tp.before > 0 || tp.after > 0:
		hint = "[ older  ] newer"
	}
	if hint != "" {
		sb.WriteString(hintStyle.Render(hint))
	}

	return panelStyle.Render(sb.String())
}
