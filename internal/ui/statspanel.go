package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/kasten/internal/note"
	"github.com/vidyasagar/kasten/internal/theme"
)

// StatsPanel shows box-level statistics.
type StatsPanel struct {
	stats note.Stats
	width int
}

// NewStatsPanel creates a stats panel.
func NewStatsPanel() StatsPanel {
	return StatsPanel{}
}

// SetWidth updates the panel width.
func (sp *StatsPanel) SetWidth(width int) {
	sp.width = width
}

// SetStats replaces the displayed statistics.
func (sp *StatsPanel) SetStats(st note.Stats) {
	sp.stats = st
}

// View renders the statistics in a bordered box.
func (sp *StatsPanel) View() string {
	t := theme.Current

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Width(sp.width - 2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	row := func(label string, value string) string {
		return labelStyle.Render(fmt.Sprintf("  %-10s", label)) + valueStyle.Render(value)
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("📊 Box stats"))
	sb.WriteString("\n\n")
	sb.WriteString(row("notes", fmt.Sprintf("%d", sp.stats.Notes)))
	sb.WriteString("\n")
	sb.WriteString(row("links", fmt.Sprintf("%d", sp.stats.Links)))
	sb.WriteString("\n")
	sb.WriteString(row("orphans", fmt.Sprintf("%d", sp.stats.Orphans)))
	sb.WriteString("\n")
	sb.WriteString(row("tags", fmt.Sprintf("%d", sp.stats.Tags)))
	sb.WriteString("\n")
	sb.WriteString(row("avg", fmt.Sprintf("%.1f links/note", sp.stats.AvgLinksPer)))
	sb.WriteString("\n\n")

	if sp.stats.Orphans > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  %d notes have no connections — press o to browse them", sp.stats.Orphans)))
		sb.WriteString("\n\n")
	}

	sb.WriteString(dimStyle.Render("  Esc:close"))

	return boxStyle.Render(sb.String())
}
