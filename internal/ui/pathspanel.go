package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/kasten/internal/note"
	"github.com/vidyasagar/kasten/internal/theme"
)

// PathsPanel lists two-hop paths out of the current note. Picking one
// walks the trail through both hops.
type PathsPanel struct {
	origin string
	paths  []note.PathHop
	cursor int
	width  int
}

// NewPathsPanel creates a paths panel.
func NewPathsPanel() PathsPanel {
	return PathsPanel{}
}

// SetWidth updates the panel width.
func (pp *PathsPanel) SetWidth(width int) {
	pp.width = width
}

// Open fills the panel with paths from the given origin.
func (pp *PathsPanel) Open(origin string, paths []note.PathHop) {
	pp.origin = origin
	pp.paths = paths
	pp.cursor = 0
}

// Len returns the number of paths listed.
func (pp *PathsPanel) Len() int {
	return len(pp.paths)
}

// CursorUp moves the cursor up.
func (pp *PathsPanel) CursorUp() {
	if pp.cursor > 0 {
		pp.cursor--
	}
}

// CursorDown moves the cursor down.
func (pp *PathsPanel) CursorDown() {
	if pp.cursor < len(pp.paths)-1 {
		pp.cursor++
	}
}

// Selected returns the path under the cursor, false when empty.
func (pp *PathsPanel) Selected() (note.PathHop, bool) {
	if pp.cursor < 0 || pp.cursor >= len(pp.paths) {
		return note.PathHop{}, false
	}
	return pp.paths[pp.cursor], true
}

// ByNumber resolves a number key 1-9 to a path.
func (pp *PathsPanel) ByNumber(n int) (note.PathHop, bool) {
	idx := n - 1
	if idx < 0 || idx >= len(pp.paths) {
		return note.PathHop{}, false
	}
	return pp.paths[idx], true
}

// Origin returns the note the paths start from.
func (pp *PathsPanel) Origin() string {
	return pp.origin
}

// View renders the path list in a bordered box.
func (pp *PathsPanel) View() string {
	t := theme.Current

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Width(pp.width - 2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	numStyle := lipgloss.NewStyle().Foreground(t.LinkIndex).Bold(true)
	hopStyle := lipgloss.NewStyle().Foreground(t.Link)
	arrowStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	previewStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	cursorStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.Surface).
		Bold(true)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("🧭 Paths from " + pp.origin))
	sb.WriteString("\n\n")

	if len(pp.paths) == 0 {
		sb.WriteString(dimStyle.Render("no two-hop paths — this note needs more links"))
		sb.WriteString("\n\n")
		sb.WriteString(dimStyle.Render("Esc:close"))
		return boxStyle.Render(sb.String())
	}

	for i, path := range pp.paths {
		route := fmt.Sprintf("%s → %s → %s", pp.origin, path.Hop1, path.Hop2)
		if i == pp.cursor {
			sb.WriteString(cursorStyle.Render(fmt.Sprintf("▸ [%d] %s", i+1, route)))
		} else {
			sb.WriteString(fmt.Sprintf("  %s %s%s%s%s%s",
				numStyle.Render(fmt.Sprintf("[%d]", i+1)),
				hopStyle.Render(pp.origin),
				arrowStyle.Render(" → "),
				hopStyle.Render(path.Hop1),
				arrowStyle.Render(" → "),
				hopStyle.Render(path.Hop2)))
		}
		sb.WriteString("\n")
		if path.Hop2Preview != "" {
			sb.WriteString(previewStyle.Render("        " + path.Hop2Preview))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("j/k:move  Enter:walk path  1-9:walk by number  Esc:close"))

	return boxStyle.Render(sb.String())
}
