package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/kasten/internal/theme"
)

// StatusBar shows the current note and trail position at the bottom of
// the screen.
type StatusBar struct {
	noteID      string
	loading     bool
	scrollInfo  string
	mode        string
	connections int
	trailPos    int
	trailLen    int
	width       int
	message     string // temporary status message
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: "BROWSE",
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetNote updates the displayed note id and connection count.
func (s *StatusBar) SetNote(id string, connections int) {
	s.noteID = id
	s.connections = connections
}

// SetLoading sets the loading indicator state.
func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

// SetScrollInfo sets the scroll position string (e.g. "42%", "TOP", "BOT").
func (s *StatusBar) SetScrollInfo(info string) {
	s.scrollInfo = info
}

// SetMode sets the current mode indicator (CARD, BROWSE, TRAIL, etc).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// SetTrail sets the trail position slot (1-based position / total).
func (s *StatusBar) SetTrail(pos, total int) {
	s.trailPos = pos
	s.trailLen = total
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1)

	switch s.mode {
	case "CARD":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Primary)
	case "BROWSE":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Secondary)
	case "TRAIL":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.TrailActive)
	case "COMMAND":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Accent)
	case "SEARCH":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Warning)
	case "CREATE", "LINK":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Success)
	case "TAGS", "PATHS", "STATS":
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Info)
	default:
		modeStyle = modeStyle.
			Foreground(t.Background).
			Background(t.Secondary)
	}

	// Add mode icon.
	var modeIcon string
	switch s.mode {
	case "CARD":
		modeIcon = "🗂 "
	case "BROWSE":
		modeIcon = "📚 "
	case "TRAIL":
		modeIcon = "🧵 "
	case "COMMAND":
		modeIcon = "⌘ "
	case "SEARCH":
		modeIcon = "🔍 "
	case "CREATE":
		modeIcon = "✍ "
	case "LINK":
		modeIcon = "🔗 "
	case "TAGS":
		modeIcon = "🏷 "
	case "PATHS":
		modeIcon = "🧭 "
	case "STATS":
		modeIcon = "📊 "
	case "HELP":
		modeIcon = "⌨ "
	}
	mode := modeStyle.Render(modeIcon + s.mode)

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	// Left side: loading > message > note id
	var left string
	if s.loading {
		loadStyle := lipgloss.NewStyle().
			Foreground(t.Warning).
			Background(t.Surface).
			Bold(true).
			Padding(0, 1)
		left = loadStyle.Render("⏳ Loading...")
	} else if s.message != "" {
		msgStyle := lipgloss.NewStyle().
			Foreground(t.Info).
			Background(t.Surface).
			Padding(0, 1)
		left = msgStyle.Render(s.message)
	} else if s.noteID != "" {
		idStyle := lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1)
		left = idStyle.Render(s.noteID)
	}

	// Right side: trail position + connections + scroll position
	var right string
	rightStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		Padding(0, 1)

	if s.trailLen > 0 {
		trailStyle := lipgloss.NewStyle().
			Foreground(t.TrailActive).
			Background(t.Surface).
			Padding(0, 1)
		right += trailStyle.Render(fmt.Sprintf("🧵 %d/%d", s.trailPos, s.trailLen))
	}

	if s.connections > 0 {
		right += rightStyle.Render(fmt.Sprintf("🔗 %d links", s.connections))
	}

	scrollStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		Background(t.Surface).
		Padding(0, 1)
	right += scrollStyle.Render("📜 " + s.scrollInfo)

	// Calculate spacing.
	modeWidth := lipgloss.Width(mode)
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	spacerWidth := s.width - modeWidth - leftWidth - rightWidth
	if spacerWidth < 0 {
		spacerWidth = 0
	}

	spacerStyle := lipgloss.NewStyle().
		Background(t.Surface)
	spacer := spacerStyle.Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return barStyle.Render(mode + left + spacer + right)
}
