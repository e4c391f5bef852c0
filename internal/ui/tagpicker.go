package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/kasten/internal/note"
	"github.com/vidyasagar/kasten/internal/theme"
)

const maxTagSuggestions = 8

// TagPicker is the tagging modal for a note: type to filter existing
// tags, Enter to apply the highlighted one (or create the typed name),
// number keys to remove a tag already on the note.
type TagPicker struct {
	input       textinput.Model
	noteID      string
	current     []note.Tag
	suggestions []note.Tag
	cursor      int
	err         string
	width       int
}

// NewTagPicker creates a tag picker.
func NewTagPicker() TagPicker {
	ti := textinput.New()
	ti.Placeholder = "type to filter, Enter to add"
	ti.CharLimit = 60
	ti.Prompt = "# "

	return TagPicker{input: ti}
}

// SetWidth updates the picker width.
func (tp *TagPicker) SetWidth(width int) {
	tp.width = width
	inner := width - 8
	if inner < 20 {
		inner = 20
	}
	tp.input.Width = inner
}

// Open resets the picker for the given note and its current tags.
func (tp *TagPicker) Open(noteID string, current []note.Tag) tea.Cmd {
	tp.noteID = noteID
	tp.current = current
	tp.suggestions = nil
	tp.cursor = 0
	tp.err = ""
	tp.input.Reset()
	return tp.input.Focus()
}

// SetCurrent updates the note's applied tags after a change.
func (tp *TagPicker) SetCurrent(current []note.Tag) {
	tp.current = current
}

// SetSuggestions replaces the suggestion list for the current query.
func (tp *TagPicker) SetSuggestions(tags []note.Tag) {
	if len(tags) > maxTagSuggestions {
		tags = tags[:maxTagSuggestions]
	}
	tp.suggestions = tags
	if tp.cursor >= len(tags) {
		tp.cursor = 0
	}
}

// Query returns the trimmed input text.
func (tp *TagPicker) Query() string {
	return strings.TrimSpace(tp.input.Value())
}

// CursorUp moves the suggestion cursor up.
func (tp *TagPicker) CursorUp() {
	if tp.cursor > 0 {
		tp.cursor--
	}
}

// CursorDown moves the suggestion cursor down.
func (tp *TagPicker) CursorDown() {
	if tp.cursor < len(tp.suggestions)-1 {
		tp.cursor++
	}
}

// Selected returns the highlighted suggestion. False means no
// suggestion matches and the typed query names a tag to create.
func (tp *TagPicker) Selected() (note.Tag, bool) {
	if tp.cursor < 0 || tp.cursor >= len(tp.suggestions) {
		return note.Tag{}, false
	}
	return tp.suggestions[tp.cursor], true
}

// CurrentByNumber resolves a number key 1-9 to an applied tag for
// removal.
func (tp *TagPicker) CurrentByNumber(n int) (note.Tag, bool) {
	idx := n - 1
	if idx < 0 || idx >= len(tp.current) {
		return note.Tag{}, false
	}
	return tp.current[idx], true
}

// SetError shows an error inline.
func (tp *TagPicker) SetError(msg string) {
	tp.err = msg
}

// Update forwards messages to the text input.
func (tp *TagPicker) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	tp.input, cmd = tp.input.Update(msg)
	return cmd
}

// View renders the picker in a bordered box.
func (tp *TagPicker) View() string {
	t := theme.Current

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Width(tp.width - 2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	tagStyle := lipgloss.NewStyle().Foreground(t.Primary)
	numStyle := lipgloss.NewStyle().Foreground(t.LinkIndex)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	errStyle := lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	cursorStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.Surface).
		Bold(true)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("🏷 Tags for " + tp.noteID))
	sb.WriteString("\n\n")

	if len(tp.current) == 0 {
		sb.WriteString(dimStyle.Render("no tags yet"))
	} else {
		parts := make([]string, len(tp.current))
		for i, tag := range tp.current {
			parts[i] = numStyle.Render(fmt.Sprintf("[%d]", i+1)) + tagStyle.Render("#"+tag.Name)
		}
		sb.WriteString(strings.Join(parts, "  "))
	}
	sb.WriteString("\n\n")

	sb.WriteString(tp.input.View())
	sb.WriteString("\n")

	for i, tag := range tp.suggestions {
		line := "  #" + tag.Name
		if i == tp.cursor {
			sb.WriteString(cursorStyle.Render("▸ #" + tag.Name))
		} else {
			sb.WriteString(tagStyle.Render(line))
		}
		sb.WriteString("\n")
	}
	if q := tp.Query(); q != "" && len(tp.suggestions) == 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  Enter creates #%s", note.Slugify(q))))
		sb.WriteString("\n")
	}

	if tp.err != "" {
		sb.WriteString(errStyle.Render("✗ " + tp.err))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render("↑/↓:pick  Enter:add  1-9:remove  Esc:close"))

	return boxStyle.Render(sb.String())
}
