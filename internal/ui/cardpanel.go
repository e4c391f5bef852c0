package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/kasten/internal/note"
	"github.com/vidyasagar/kasten/internal/theme"
)

// cardChromeLines is the header, separator, and tag footer around the
// scrolling body.
const cardChromeLines = 3

// CardPanel shows a single note: id and metadata up top, the rendered
// body in a scrolling viewport, tags along the bottom.
type CardPanel struct {
	viewport viewport.Model
	ready    bool
	hasNote  bool

	id          string
	created     string
	chars       int
	status      note.CharStatus
	connections int
	tags        []string

	width  int
	height int
}

// NewCardPanel creates a card panel (dimensions set on first WindowSizeMsg).
func NewCardPanel() CardPanel {
	return CardPanel{}
}

// SetSize updates the panel dimensions.
func (cp *CardPanel) SetSize(width, height int) {
	cp.width = width
	cp.height = height

	bodyHeight := height - cardChromeLines
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	if !cp.ready {
		cp.viewport = viewport.New(width, bodyHeight)
		cp.viewport.MouseWheelEnabled = true
		cp.viewport.MouseWheelDelta = 3
		cp.ready = true
	} else {
		cp.viewport.Width = width
		cp.viewport.Height = bodyHeight
	}
}

// SetNote fills the panel from a loaded note and its rendered body.
func (cp *CardPanel) SetNote(n *note.Note, rendered string) {
	cp.id = n.ID
	cp.created = "unknown"
	if !n.CreatedAt.IsZero() {
		cp.created = n.CreatedAt.Format("2006-01-02")
	}
	cp.chars = note.EffectiveChars(n.Body)
	cp.status = note.Status(cp.chars)
	cp.connections = n.Connections()
	cp.tags = n.Tags
	cp.hasNote = true

	if cp.ready {
		cp.viewport.SetContent(rendered)
		cp.viewport.GotoTop()
	}
}

// Clear empties the panel back to the welcome screen.
func (cp *CardPanel) Clear() {
	cp.hasNote = false
	cp.id = ""
	cp.tags = nil
	if cp.ready {
		cp.viewport.SetContent("")
	}
}

// HasNote reports whether a note is loaded.
func (cp *CardPanel) HasNote() bool {
	return cp.hasNote
}

// ID returns the displayed note id, empty when showing the welcome
// screen.
func (cp *CardPanel) ID() string {
	if !cp.hasNote {
		return ""
	}
	return cp.id
}

// Update forwards messages to the viewport (mouse wheel scrolling).
func (cp *CardPanel) Update(msg tea.Msg) (*CardPanel, tea.Cmd) {
	if !cp.ready {
		return cp, nil
	}
	var cmd tea.Cmd
	cp.viewport, cmd = cp.viewport.Update(msg)
	return cp, cmd
}

// ScrollPercent returns the scroll percentage of the body.
func (cp *CardPanel) ScrollPercent() float64 {
	if !cp.ready {
		return 0
	}
	return cp.viewport.ScrollPercent()
}

// ScrollInfo returns a string like "42%" or "TOP" or "BOT".
func (cp *CardPanel) ScrollInfo() string {
	pct := cp.ScrollPercent()
	switch {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}

// LineDown scrolls down n lines.
func (cp *CardPanel) LineDown(n int) {
	if cp.ready {
		cp.viewport.LineDown(n)
	}
}

// LineUp scrolls up n lines.
func (cp *CardPanel) LineUp(n int) {
	if cp.ready {
		cp.viewport.LineUp(n)
	}
}

// HalfPageDown scrolls down half a page.
func (cp *CardPanel) HalfPageDown() {
	if cp.ready {
		cp.viewport.HalfViewDown()
	}
}

// HalfPageUp scrolls up half a page.
func (cp *CardPanel) HalfPageUp() {
	if cp.ready {
		cp.viewport.HalfViewUp()
	}
}

// GotoTop scrolls to the top.
func (cp *CardPanel) GotoTop() {
	if cp.ready {
		cp.viewport.GotoTop()
	}
}

// GotoBottom scrolls to the bottom.
func (cp *CardPanel) GotoBottom() {
	if cp.ready {
		cp.viewport.GotoBottom()
	}
}

// Ready reports whether the viewport has been initialized.
func (cp *CardPanel) Ready() bool {
	return cp.ready
}

// View renders the card panel.
func (cp *CardPanel) View() string {
	if !cp.ready {
		return "\n  Initializing..."
	}
	if !cp.hasNote {
		return cp.renderWelcome()
	}

	t := theme.Current

	idStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Heading).
		Padding(0, 1)

	metaStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	charStyle := metaStyle
	switch cp.status {
	case note.StatusWarn:
		charStyle = lipgloss.NewStyle().Foreground(t.Warning)
	case note.StatusOver:
		charStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	}

	separatorStyle := lipgloss.NewStyle().Foreground(t.Border)

	header := idStyle.Render(cp.id) +
		metaStyle.Render(cp.created+"  |  ") +
		charStyle.Render(fmt.Sprintf("%d chars", cp.chars)) +
		metaStyle.Render(fmt.Sprintf("  |  %d links", cp.connections))

	sepWidth := cp.width
	if sepWidth < 1 {
		sepWidth = 1
	}
	separator := separatorStyle.Render(strings.Repeat("─", sepWidth))

	footer := ""
	if len(cp.tags) > 0 {
		tagStyle := lipgloss.NewStyle().Foreground(t.Primary).Padding(0, 1)
		parts := make([]string, len(cp.tags))
		for i, tag := range cp.tags {
			parts[i] = "#" + tag
		}
		footer = tagStyle.Render(strings.Join(parts, "  "))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		separator,
		cp.viewport.View(),
		footer,
	)
}

func (cp *CardPanel) renderWelcome() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	accentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Secondary)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	logo := `
  🗃 _             _
   | | ____ _ ___| |_ ___ _ __
   | |/ / _` + "`" + ` / __| __/ _ \ '_ \
   |   < (_| \__ \ ||  __/ | | |
   |_|\_\__,_|___/\__\___|_| |_|
`

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(logo))
	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render("  A terminal browser for your zettelkasten"))
	sb.WriteString("\n\n")
	sb.WriteString(accentStyle.Render("  ⌨ Quick Start"))
	sb.WriteString("\n\n")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"  Enter", "Open selected note"},
		{"  1-6", "Follow numbered link"},
		{"  Backspace / \\", "Back / forward on the trail"},
		{"  Tab", "Focus the trail panel"},
		{"  [ / ]", "Page trail older / newer"},
		{"  n", "New note"},
		{"  l", "Link current note"},
		{"  p", "Two-hop paths"},
		{"  /", "Search notes"},
		{"  t", "Tags"},
		{"  :", "Command mode"},
		{"  ?", "Show all keybindings"},
		{"  q", "Quit"},
	}

	for _, s := range shortcuts {
		sb.WriteString(keyStyle.Render(fmt.Sprintf("  %-16s", s.key)))
		sb.WriteString(descStyle.Render(s.desc))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render("  Press Esc for the browse table"))
	sb.WriteString("\n")

	return sb.String()
}
