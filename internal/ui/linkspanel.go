package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/kasten/internal/note"
	"github.com/vidyasagar/kasten/internal/theme"
)

const (
	// linksPerDirection is how many links in each direction get a
	// number shortcut.
	linksPerDirection = 3
	linkPreviewWidth  = 35
)

// LinksPanel shows the current note's neighborhood: outbound links on
// the left, inbound on the right. The first three of each direction are
// addressable by the number keys 1-3 and 4-6.
type LinksPanel struct {
	outbound []note.LinkRef
	inbound  []note.LinkRef
	hasNote  bool

	width  int
	height int
}

// NewLinksPanel creates an empty links panel.
func NewLinksPanel() LinksPanel {
	return LinksPanel{}
}

// SetSize updates the panel dimensions.
func (lp *LinksPanel) SetSize(width, height int) {
	lp.width = width
	lp.height = height
}

// SetLinks replaces the displayed neighborhood.
func (lp *LinksPanel) SetLinks(outbound, inbound []note.LinkRef) {
	lp.outbound = outbound
	lp.inbound = inbound
	lp.hasNote = true
}

// Clear empties the panel.
func (lp *LinksPanel) Clear() {
	lp.outbound = nil
	lp.inbound = nil
	lp.hasNote = false
}

// LinkByNumber resolves a number key to a link target: 1-3 pick
// outbound links, 4-6 pick inbound. Returns false when the slot is
// empty.
func (lp *LinksPanel) LinkByNumber(n int) (string, bool) {
	switch {
	case n >= 1 && n <= linksPerDirection:
		idx := n - 1
		if idx < len(lp.outbound) {
			return lp.outbound[idx].ID, true
		}
	case n > linksPerDirection && n <= 2*linksPerDirection:
		idx := n - linksPerDirection - 1
		if idx < len(lp.inbound) {
			return lp.inbound[idx].ID, true
		}
	}
	return "", false
}

// View renders outbound and inbound links side by side.
func (lp *LinksPanel) View() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary)

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	if !lp.hasNote {
		return dimStyle.Render(" (no card selected)")
	}

	colWidth := lp.width / 2
	if colWidth < 20 {
		colWidth = 20
	}

	left := lp.renderColumn(titleStyle.Render("OUTBOUND →"), lp.outbound, 1, colWidth, "(no outbound links)")
	right := lp.renderColumn(titleStyle.Render("← INBOUND"), lp.inbound, linksPerDirection+1, colWidth, "(no inbound links)")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (lp *LinksPanel) renderColumn(title string, links []note.LinkRef, firstNumber, width int, emptyMsg string) string {
	t := theme.Current

	numberStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.LinkIndex)

	idStyle := lipgloss.NewStyle().Foreground(t.Link)
	previewStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var lines []string
	lines = append(lines, " "+title)

	if len(links) == 0 {
		lines = append(lines, dimStyle.Render("  "+emptyMsg))
	}

	for i, ref := range links {
		if i >= linksPerDirection {
			break
		}
		num := numberStyle.Render(fmt.Sprintf("[%d]", firstNumber+i))
		lines = append(lines, fmt.Sprintf(" %s %s", num, idStyle.Render(fmt.Sprintf("%-12s", ref.ID))))

		preview := strings.ReplaceAll(ref.Preview, "\n", " ")
		if len([]rune(preview)) > linkPreviewWidth {
			preview = string([]rune(preview)[:linkPreviewWidth]) + "…"
		}
		if preview != "" {
			lines = append(lines, previewStyle.Render("     "+preview))
		}
	}

	if extra := len(links) - linksPerDirection; extra > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  +%d more", extra)))
	}

	col := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(width).Render(col)
}
