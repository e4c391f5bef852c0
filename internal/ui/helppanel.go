package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/kasten/internal/theme"
)

// HelpBinding represents a single keyboard shortcut.
type HelpBinding struct {
	Key  string // the key to press (e.g. "n", "1-6", "⌫")
	Desc string // short description
}

// HelpGroup is a named group of shortcuts.
type HelpGroup struct {
	Name     string
	Icon     string
	Bindings []HelpBinding
}

// HelpPanel renders the keybinding reference shown after pressing ?.
type HelpPanel struct {
	visible bool
	width   int
	height  int
	groups  []HelpGroup
}

// NewHelpPanel creates a help panel with the default shortcut groups.
func NewHelpPanel() HelpPanel {
	return HelpPanel{
		groups: defaultHelpGroups(),
	}
}

// defaultHelpGroups returns the built-in shortcut groups.
func defaultHelpGroups() []HelpGroup {
	return []HelpGroup{
		{
			Name: "Navigate",
			Icon: "🧭",
			Bindings: []HelpBinding{
				{Key: "1-6", Desc: "Follow link"},
				{Key: "⌫", Desc: "Back"},
				{Key: "\\", Desc: "Forward"},
				{Key: "[", Desc: "Trail older"},
				{Key: "]", Desc: "Trail newer"},
				{Key: "Tab", Desc: "Focus trail"},
			},
		},
		{
			Name: "Trail",
			Icon: "🧵",
			Bindings: []HelpBinding{
				{Key: "j/k", Desc: "Move cursor"},
				{Key: "Enter", Desc: "Jump to entry"},
				{Key: "1-9", Desc: "Jump by number"},
				{Key: "Esc", Desc: "Back to card"},
			},
		},
		{
			Name: "Browse",
			Icon: "📚",
			Bindings: []HelpBinding{
				{Key: "r", Desc: "Recent"},
				{Key: "u", Desc: "Hubs"},
				{Key: "o", Desc: "Orphans"},
				{Key: "i", Desc: "Tag index"},
				{Key: "/", Desc: "Search"},
			},
		},
		{
			Name: "Write",
			Icon: "✍",
			Bindings: []HelpBinding{
				{Key: "n", Desc: "New note"},
				{Key: "l", Desc: "Link note"},
				{Key: "t", Desc: "Tag note"},
				{Key: "p", Desc: "Two-hop paths"},
			},
		},
		{
			Name: "Tools",
			Icon: "🔧",
			Bindings: []HelpBinding{
				{Key: "s", Desc: "Stats"},
				{Key: "T", Desc: "Cycle theme"},
				{Key: ":", Desc: "Command"},
				{Key: "?", Desc: "Help"},
				{Key: "q", Desc: "Quit"},
			},
		},
	}
}

// Show makes the panel visible.
func (hp *HelpPanel) Show() {
	hp.visible = true
}

// Hide closes the panel.
func (hp *HelpPanel) Hide() {
	hp.visible = false
}

// IsVisible reports whether the panel is shown.
func (hp *HelpPanel) IsVisible() bool {
	return hp.visible
}

// SetSize sets the available area for rendering.
func (hp *HelpPanel) SetSize(w, h int) {
	hp.width = w
	hp.height = h
}

// View renders the keybinding reference as a centered popup overlay.
func (hp *HelpPanel) View() string {
	if !hp.visible {
		return ""
	}

	t := theme.Current

	// ── Styles ──────────────────────────────────────────────────

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	groupNameStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Underline(true)

	keyBadgeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Background).
		Background(t.Secondary).
		Padding(0, 1)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Italic(true)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	// ── Layout constants ────────────────────────────────────────

	const colWidth = 20 // width of each group column

	// Find max rows across all groups for uniform column heights.
	maxRows := 0
	for _, g := range hp.groups {
		if len(g.Bindings) > maxRows {
			maxRows = len(g.Bindings)
		}
	}

	// ── Render each group column ────────────────────────────────

	colStyle := lipgloss.NewStyle().Width(colWidth)

	var columns []string
	for i, group := range hp.groups {
		var lines []string

		// Group header line.
		header := groupNameStyle.Render(group.Icon + " " + group.Name)
		lines = append(lines, header)
		lines = append(lines, "") // blank line after header

		// Binding rows.
		for _, b := range group.Bindings {
			badge := keyBadgeStyle.Render(fmt.Sprintf("%-1s", b.Key))
			desc := descStyle.Render(" " + b.Desc)
			lines = append(lines, badge+desc)
		}

		// Pad to uniform height.
		for j := len(group.Bindings); j < maxRows; j++ {
			lines = append(lines, "")
		}

		col := colStyle.Render(strings.Join(lines, "\n"))
		columns = append(columns, col)

		// Vertical separator between groups.
		if i < len(hp.groups)-1 {
			sepHeight := lipgloss.Height(col)
			var sepLines []string
			for s := 0; s < sepHeight; s++ {
				sepLines = append(sepLines, separatorStyle.Render(" │ "))
			}
			columns = append(columns, strings.Join(sepLines, "\n"))
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	// ── Assemble final content ──────────────────────────────────

	bodyWidth := lipgloss.Width(body)

	headerLine := titleStyle.Render("⌨ Keybindings")

	// Horizontal rule under header, matching body width.
	rule := separatorStyle.Render(strings.Repeat("─", bodyWidth))

	footerText := dimStyle.Render("commands — :q  :theme <name>  :clip <url>  :delete <id>  :unlink <id>  :stats  :clear  •  Esc to dismiss")
	// Center the footer.
	footerPad := ""
	fw := lipgloss.Width(footerText)
	if fw < bodyWidth {
		footerPad = strings.Repeat(" ", (bodyWidth-fw)/2)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		headerLine,
		rule,
		"",
		body,
		"",
		rule,
		footerPad+footerText,
	)

	// ── Outer box ───────────────────────────────────────────────

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)

	return boxStyle.Render(content)
}
