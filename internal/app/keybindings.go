package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for kasten.
type KeyMap struct {
	// Card scrolling
	ScrollDown   key.Binding
	ScrollUp     key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding

	// Trail
	Back       key.Binding
	Forward    key.Binding
	TrailFocus key.Binding
	TrailOlder key.Binding
	TrailNewer key.Binding

	// Writing
	NewNote  key.Binding
	LinkNote key.Binding
	TagNote  key.Binding
	Paths    key.Binding

	// Browsing
	Browse   key.Binding
	Recent   key.Binding
	Hubs     key.Binding
	Orphans  key.Binding
	TagIndex key.Binding

	// Modes
	CommandMode key.Binding
	SearchMode  key.Binding

	// Actions
	Quit       key.Binding
	Help       key.Binding
	Stats      key.Binding
	CycleTheme key.Binding
}

// DefaultKeyMap returns the default vim-style keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ScrollDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "scroll down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("Ctrl+u", "half page up"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "go back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("\\"),
			key.WithHelp("\\", "go forward"),
		),
		TrailFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "focus trail"),
		),
		TrailOlder: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "trail older"),
		),
		TrailNewer: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "trail newer"),
		),
		NewNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		LinkNote: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "link note"),
		),
		TagNote: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tag note"),
		),
		Paths: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "two-hop paths"),
		),
		Browse: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/Esc", "browse"),
		),
		Recent: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recent notes"),
		),
		Hubs: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "hub notes"),
		),
		Orphans: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "orphan notes"),
		),
		TagIndex: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "tag index"),
		),
		CommandMode: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command mode"),
		),
		SearchMode: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Stats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stats"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "cycle theme"),
		),
	}
}
