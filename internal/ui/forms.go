package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidyasagar/kasten/internal/note"
	"github.com/vidyasagar/kasten/internal/theme"
)

// CreateForm is the new-note form: id, body, and optional outbound
// links. The effective character count updates live as the body is
// typed.
type CreateForm struct {
	id    textinput.Model
	body  textarea.Model
	links textinput.Model
	focus int
	err   string
	width int
}

// NewCreateForm creates a new-note form.
func NewCreateForm() CreateForm {
	id := textinput.New()
	id.Placeholder = "note-id (lowercase, digits, hyphens)"
	id.CharLimit = 100
	id.Prompt = "id    > "

	body := textarea.New()
	body.Placeholder = "One idea. Link text like [this] is free."
	body.CharLimit = 4000
	body.ShowLineNumbers = false

	links := textinput.New()
	links.Placeholder = "link-to, another-id (optional)"
	links.CharLimit = 512
	links.Prompt = "links > "

	return CreateForm{
		id:    id,
		body:  body,
		links: links,
	}
}

// SetSize updates the form dimensions.
func (f *CreateForm) SetSize(width, height int) {
	f.width = width
	inner := width - 10
	if inner < 20 {
		inner = 20
	}
	f.id.Width = inner
	f.links.Width = inner
	f.body.SetWidth(inner + 8)

	bodyHeight := height - 12
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	if bodyHeight > 12 {
		bodyHeight = 12
	}
	f.body.SetHeight(bodyHeight)
}

// Reset clears the form and focuses the id field.
func (f *CreateForm) Reset() tea.Cmd {
	f.id.Reset()
	f.body.Reset()
	f.links.Reset()
	f.err = ""
	f.focus = 0
	f.body.Blur()
	f.links.Blur()
	return f.id.Focus()
}

// Prefill loads a draft (from the web clipper) into the form.
func (f *CreateForm) Prefill(id, body string) tea.Cmd {
	cmd := f.Reset()
	f.id.SetValue(id)
	f.id.CursorEnd()
	f.body.SetValue(body)
	return cmd
}

// FocusNext cycles focus id → body → links → id.
func (f *CreateForm) FocusNext() tea.Cmd {
	return f.setFocus((f.focus + 1) % 3)
}

// FocusPrev cycles focus backwards.
func (f *CreateForm) FocusPrev() tea.Cmd {
	return f.setFocus((f.focus + 2) % 3)
}

func (f *CreateForm) setFocus(idx int) tea.Cmd {
	f.focus = idx
	f.id.Blur()
	f.body.Blur()
	f.links.Blur()
	switch idx {
	case 0:
		return f.id.Focus()
	case 1:
		return f.body.Focus()
	default:
		return f.links.Focus()
	}
}

// Update forwards messages to the focused field.
func (f *CreateForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.id, cmd = f.id.Update(msg)
	case 1:
		f.body, cmd = f.body.Update(msg)
	default:
		f.links, cmd = f.links.Update(msg)
	}
	return cmd
}

// Values returns the trimmed form fields. Link targets split on spaces
// or commas; empty entries are dropped.
func (f *CreateForm) Values() (id, body string, links []string) {
	id = strings.TrimSpace(f.id.Value())
	body = strings.TrimSpace(f.body.Value())
	links = strings.FieldsFunc(f.links.Value(), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return id, body, links
}

// SetError shows a validation error inline.
func (f *CreateForm) SetError(msg string) {
	f.err = msg
}

// View renders the form in a bordered box.
func (f *CreateForm) View() string {
	t := theme.Current

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Width(f.width - 2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	errStyle := lipgloss.NewStyle().Foreground(t.Error).Bold(true)

	chars := note.EffectiveChars(f.body.Value())
	counterStyle := lipgloss.NewStyle().Foreground(t.Success)
	counter := fmt.Sprintf("%d/%d effective chars", chars, note.MaxEffectiveChars)
	switch note.Status(chars) {
	case note.StatusWarn:
		counterStyle = lipgloss.NewStyle().Foreground(t.Warning)
		counter += "   getting long"
	case note.StatusOver:
		counterStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
		counter += "   too long — split this idea"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("＋ New note"))
	sb.WriteString("\n\n")
	sb.WriteString(f.id.View())
	sb.WriteString("\n\n")
	sb.WriteString(f.body.View())
	sb.WriteString("\n")
	sb.WriteString(counterStyle.Render(counter))
	sb.WriteString("\n\n")
	sb.WriteString(f.links.View())
	sb.WriteString("\n")
	if f.err != "" {
		sb.WriteString(errStyle.Render("✗ " + f.err))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render("Tab:next field  Ctrl+S:save  Esc:cancel"))

	return boxStyle.Render(sb.String())
}

// LinkForm is the annotated-link form: a target note and a reason. The
// annotation that will be appended to the source note is previewed as
// the fields are typed.
type LinkForm struct {
	target textinput.Model
	reason textinput.Model
	focus  int
	from   string
	err    string
	width  int
}

// NewLinkForm creates a link form.
func NewLinkForm() LinkForm {
	target := textinput.New()
	target.Placeholder = "target note id"
	target.CharLimit = 100
	target.Prompt = "to     > "

	reason := textinput.New()
	reason.Placeholder = "why does this connect?"
	reason.CharLimit = 256
	reason.Prompt = "reason > "

	return LinkForm{
		target: target,
		reason: reason,
	}
}

// SetWidth updates the form width.
func (f *LinkForm) SetWidth(width int) {
	f.width = width
	inner := width - 12
	if inner < 20 {
		inner = 20
	}
	f.target.Width = inner
	f.reason.Width = inner
}

// Open resets the form for a new link from the given note.
func (f *LinkForm) Open(from string) tea.Cmd {
	f.from = from
	f.target.Reset()
	f.reason.Reset()
	f.err = ""
	f.focus = 0
	f.reason.Blur()
	return f.target.Focus()
}

// FocusNext toggles focus between target and reason.
func (f *LinkForm) FocusNext() tea.Cmd {
	f.focus = (f.focus + 1) % 2
	if f.focus == 0 {
		f.reason.Blur()
		return f.target.Focus()
	}
	f.target.Blur()
	return f.reason.Focus()
}

// Update forwards messages to the focused field.
func (f *LinkForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.target, cmd = f.target.Update(msg)
	} else {
		f.reason, cmd = f.reason.Update(msg)
	}
	return cmd
}

// Values returns the trimmed target id and reason.
func (f *LinkForm) Values() (target, reason string) {
	return strings.TrimSpace(f.target.Value()), strings.TrimSpace(f.reason.Value())
}

// SetError shows a validation error inline.
func (f *LinkForm) SetError(msg string) {
	f.err = msg
}

// View renders the form with a live preview of the annotation.
func (f *LinkForm) View() string {
	t := theme.Current

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(0, 1).
		Width(f.width - 2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	previewStyle := lipgloss.NewStyle().Foreground(t.Quote).Italic(true)
	errStyle := lipgloss.NewStyle().Foreground(t.Error).Bold(true)

	target, reason := f.Values()
	preview := "→?: ?"
	if target != "" || reason != "" {
		preview = fmt.Sprintf("→%s: %s", target, reason)
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("🔗 Link from " + f.from))
	sb.WriteString("\n\n")
	sb.WriteString(f.target.View())
	sb.WriteString("\n")
	sb.WriteString(f.reason.View())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("will append: "))
	sb.WriteString(previewStyle.Render(preview))
	sb.WriteString("\n")
	if f.err != "" {
		sb.WriteString(errStyle.Render("✗ " + f.err))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render("Tab:switch field  Enter:save  Esc:cancel"))

	return boxStyle.Render(sb.String())
}
