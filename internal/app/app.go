package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vidyasagar/kasten/internal/capture"
	"github.com/vidyasagar/kasten/internal/note"
	"github.com/vidyasagar/kasten/internal/render"
	"github.com/vidyasagar/kasten/internal/storage"
	"github.com/vidyasagar/kasten/internal/theme"
	"github.com/vidyasagar/kasten/internal/trail"
	"github.com/vidyasagar/kasten/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeBrowse  Mode = iota
	ModeCard         // a note is displayed, card panel focused
	ModeTrail        // trail panel focused
	ModeCommand      // : command bar active
	ModeSearch       // / search bar active
	ModeCreate       // new-note form
	ModeLink         // annotated-link form
	ModeTags         // tag picker
	ModePaths        // two-hop paths panel
	ModeStats        // stats panel
	ModeHelp         // keybinding reference
	ModeConfirm      // pending delete confirmation
)

const (
	trailSidebarWidth = 34
	linksPanelHeight  = 9
	listingLimit      = 100
)

// Model is the top-level bubbletea model for kasten.
type Model struct {
	// UI components
	cardPanel   ui.CardPanel
	linksPanel  ui.LinksPanel
	trailPanel  ui.TrailPanel
	browseTable ui.BrowseTable
	tagTable    ui.TagTable
	statusBar   ui.StatusBar
	commandBar  ui.CommandBar
	createForm  ui.CreateForm
	linkForm    ui.LinkForm
	tagPicker   ui.TagPicker
	pathsPanel  ui.PathsPanel
	statsPanel  ui.StatsPanel
	helpPanel   ui.HelpPanel
	layoutPane  ui.SplitPane // card area | trail sidebar
	cardSplit   ui.SplitPane // card panel / links panel

	// Shared state
	store     *storage.Store
	config    *storage.Config
	trail     *trail.Trail
	fetcher   *capture.Fetcher
	cardCache *lru.Cache[string, string] // rendered card bodies, keyed id|modified|width
	keys      KeyMap

	current         *note.Note
	mode            Mode
	returnMode      Mode   // mode to restore when a modal closes
	pendingDelete   string // note id awaiting y/n confirmation
	browseShowsTags bool
	lastGKey        bool // for "gg" detection
	width           int
	height          int
	cardW           int // render width for card bodies
	ready           bool
	initialID       string
}

// noteLoadedMsg is sent when a note finishes loading. record marks
// loads that should append a trail entry (opening a note), as opposed
// to loads that follow a trail move (back/forward/jump).
type noteLoadedMsg struct {
	id       string
	note     *note.Note
	rendered string
	record   bool
	err      error
}

// browseLoadedMsg is sent when a note listing finishes loading.
type browseLoadedMsg struct {
	label string
	rows  []note.Summary
	err   error
}

// tagsLoadedMsg is sent when the tag index finishes loading.
type tagsLoadedMsg struct {
	rows []note.TagCount
	err  error
}

// clipDoneMsg is sent when a web page has been fetched and distilled
// into a note draft.
type clipDoneMsg struct {
	draft *capture.Draft
	err   error
}

// New creates a new kasten Model.
func New(store *storage.Store, cfg *storage.Config, initialID string) Model {
	// Rendered card cache: re-renders are needed per width, so keep a
	// generous number of entries around for instant trail hops.
	cardCache, _ := lru.New[string, string](128)

	tr := trail.New(cfg.TrailWindow)

	m := Model{
		cardPanel:   ui.NewCardPanel(),
		linksPanel:  ui.NewLinksPanel(),
		trailPanel:  ui.NewTrailPanel(tr, cfg.TrailWindow),
		browseTable: ui.NewBrowseTable(),
		tagTable:    ui.NewTagTable(),
		statusBar:   ui.NewStatusBar(),
		commandBar:  ui.NewCommandBar(),
		createForm:  ui.NewCreateForm(),
		linkForm:    ui.NewLinkForm(),
		tagPicker:   ui.NewTagPicker(),
		pathsPanel:  ui.NewPathsPanel(),
		statsPanel:  ui.NewStatsPanel(),
		helpPanel:   ui.NewHelpPanel(),
		layoutPane:  ui.NewSplitPane(),
		cardSplit:   ui.NewSplitPane(),

		store:     store,
		config:    cfg,
		trail:     tr,
		fetcher:   capture.NewFetcher(time.Duration(cfg.CaptureTimeoutSecs) * time.Second),
		cardCache: cardCache,
		keys:      DefaultKeyMap(),
		mode:      ModeBrowse,
		initialID: initialID,
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.initialID != "" {
		return m.openNote(m.initialID)
	}
	return m.loadRecent()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		// Re-render the current card at the new width.
		if m.current != nil {
			return m, m.loadNote(m.current.ID, false)
		}
		return m, nil

	case noteLoadedMsg:
		return m.handleNoteLoaded(msg)

	case browseLoadedMsg:
		return m.handleBrowseLoaded(msg)

	case tagsLoadedMsg:
		return m.handleTagsLoaded(msg)

	case clipDoneMsg:
		return m.handleClipDone(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Forward to the card viewport (mouse wheel, etc).
	cmds = append(cmds, m.updateComponents(msg)...)

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading kasten..."
	}

	// Layout:
	// [card area (card/links or browse table) | trail sidebar]
	// [status bar]
	// [command bar] (if active)

	var first string
	if m.showingBrowse() {
		if m.browseShowsTags {
			first = m.tagTable.View()
		} else {
			first = m.browseTable.View()
		}
	} else {
		first = m.cardSplit.RenderSplit(m.cardPanel.View(), m.linksPanel.View())
	}

	content := m.layoutPane.RenderSplit(first, m.trailPanel.View())

	sections := []string{content, m.statusBar.View()}
	if m.commandBar.IsActive() {
		sections = append(sections, m.commandBar.View())
	}

	result := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Modal overlays.
	var overlay string
	switch {
	case m.helpPanel.IsVisible():
		overlay = m.helpPanel.View()
	case m.mode == ModeCreate:
		overlay = m.createForm.View()
	case m.mode == ModeLink:
		overlay = m.linkForm.View()
	case m.mode == ModeTags:
		overlay = m.tagPicker.View()
	case m.mode == ModePaths:
		overlay = m.pathsPanel.View()
	case m.mode == ModeStats:
		overlay = m.statsPanel.View()
	}
	if overlay != "" {
		result = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(theme.Current.Background),
		)
	}

	return result
}

// showingBrowse reports whether the browse screen is the backdrop,
// either directly or behind a modal opened from it.
func (m Model) showingBrowse() bool {
	switch m.mode {
	case ModeBrowse:
		return true
	case ModeCommand, ModeSearch, ModeCreate, ModeStats, ModeHelp, ModeConfirm:
		return m.returnMode == ModeBrowse
	}
	return m.current == nil && !m.cardPanel.HasNote()
}

// layout recalculates dimensions for all components.
func (m *Model) layout() {
	m.statusBar.SetWidth(m.width)
	m.commandBar.SetWidth(m.width)

	statusBarHeight := 1
	commandBarHeight := 0
	if m.commandBar.IsActive() {
		commandBarHeight = 1
	}
	contentHeight := m.height - statusBarHeight - commandBarHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Trail sidebar folds away on narrow terminals.
	m.layoutPane.SetSize(m.width, contentHeight)
	if m.width >= 80 {
		m.layoutPane.SplitFixed(ui.SplitVertical, trailSidebarWidth)
	} else {
		m.layoutPane.Unsplit()
	}

	cardW, cardH := m.layoutPane.FirstPaneDimensions()
	if m.layoutPane.IsSplit() {
		trailW, trailH := m.layoutPane.SecondPaneDimensions()
		m.trailPanel.SetSize(trailW, trailH)
	}

	// Card area: note body on top, links below.
	m.cardSplit.SetSize(cardW, cardH)
	m.cardSplit.SplitFixed(ui.SplitHorizontal, linksPanelHeight)
	cpW, cpH := m.cardSplit.FirstPaneDimensions()
	m.cardPanel.SetSize(cpW, cpH)
	m.linksPanel.SetSize(cpW, linksPanelHeight)
	m.cardW = cpW

	m.browseTable.SetSize(cardW, cardH)
	m.tagTable.SetSize(cardW, cardH)

	// Modals.
	modalW := m.width - 8
	if modalW > 80 {
		modalW = 80
	}
	if modalW < 30 {
		modalW = 30
	}
	m.createForm.SetSize(modalW, m.height-6)
	m.linkForm.SetWidth(modalW)
	m.tagPicker.SetWidth(modalW)
	m.pathsPanel.SetWidth(modalW + 10)
	m.statsPanel.SetWidth(46)
	m.helpPanel.SetSize(m.width, m.height)
}

// handleKeyMsg processes key events based on current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Always allow Ctrl+C to quit.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Status messages live until the next keypress. The delete prompt
	// stays until it is answered.
	if m.mode != ModeConfirm {
		m.statusBar.SetMessage("")
	}

	switch m.mode {
	case ModeCard:
		return m.handleCardMode(msg)
	case ModeTrail:
		return m.handleTrailMode(msg)
	case ModeCommand, ModeSearch:
		return m.handleCommandMode(msg)
	case ModeCreate:
		return m.handleCreateMode(msg)
	case ModeLink:
		return m.handleLinkMode(msg)
	case ModeTags:
		return m.handleTagsMode(msg)
	case ModePaths:
		return m.handlePathsMode(msg)
	case ModeStats:
		return m.handleStatsMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	default:
		return m.handleBrowseMode(msg)
	}
}

// handleCardMode processes keys while reading a note.
func (m Model) handleCardMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	// gg detection: first "g" sets flag, second "g" goes to top.
	case s == "g":
		if m.lastGKey {
			m.lastGKey = false
			m.cardPanel.GotoTop()
			m.syncStatusBar()
			return m, nil
		}
		m.lastGKey = true
		return m, nil

	// Follow a numbered link.
	case s == "1" || s == "2" || s == "3" || s == "4" || s == "5" || s == "6":
		m.lastGKey = false
		n := int(s[0] - '0')
		if target, ok := m.linksPanel.LinkByNumber(n); ok {
			return m, m.openNote(target)
		}
		m.statusBar.SetMessage(fmt.Sprintf("No link [%d]", n))
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.lastGKey = false
		m.cardPanel.LineDown(1)
		m.syncStatusBar()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.lastGKey = false
		m.cardPanel.LineUp(1)
		m.syncStatusBar()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.lastGKey = false
		m.cardPanel.HalfPageDown()
		m.syncStatusBar()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.lastGKey = false
		m.cardPanel.HalfPageUp()
		m.syncStatusBar()
		return m, nil

	case key.Matches(msg, m.keys.GotoBottom):
		m.lastGKey = false
		m.cardPanel.GotoBottom()
		m.syncStatusBar()
		return m, nil

	// Back along the trail.
	case key.Matches(msg, m.keys.Back):
		m.lastGKey = false
		if id, ok := m.trail.Back(); ok {
			m.trailPanel.Refresh()
			return m, m.loadNote(id, false)
		}
		return m, nil

	// Forward along the trail.
	case key.Matches(msg, m.keys.Forward):
		m.lastGKey = false
		if id, ok := m.trail.Forward(); ok {
			m.trailPanel.Refresh()
			return m, m.loadNote(id, false)
		}
		return m, nil

	// Page the trail window without moving position.
	case key.Matches(msg, m.keys.TrailOlder):
		m.lastGKey = false
		if m.trail.PageOlder() {
			m.trailPanel.Refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.TrailNewer):
		m.lastGKey = false
		if m.trail.PageNewer() {
			m.trailPanel.Refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.TrailFocus):
		m.lastGKey = false
		if m.layoutPane.IsSplit() {
			m.trailPanel.Focus()
			m.mode = ModeTrail
			m.statusBar.SetMode("TRAIL")
		}
		return m, nil

	case key.Matches(msg, m.keys.NewNote):
		m.lastGKey = false
		return m.openCreateForm("", "")

	case key.Matches(msg, m.keys.LinkNote):
		m.lastGKey = false
		if m.current == nil {
			m.statusBar.SetMessage("No note to link from")
			return m, nil
		}
		m.returnMode = ModeCard
		m.mode = ModeLink
		m.statusBar.SetMode("LINK")
		return m, m.linkForm.Open(m.current.ID)

	case key.Matches(msg, m.keys.TagNote):
		m.lastGKey = false
		return m.openTagPicker()

	case key.Matches(msg, m.keys.Paths):
		m.lastGKey = false
		return m.openPaths()

	case key.Matches(msg, m.keys.Stats):
		m.lastGKey = false
		return m.openStats()

	case key.Matches(msg, m.keys.CommandMode):
		m.lastGKey = false
		return m.openCommandBar(ui.CommandEx)

	case key.Matches(msg, m.keys.SearchMode):
		m.lastGKey = false
		return m.openCommandBar(ui.CommandSearch)

	case key.Matches(msg, m.keys.Help):
		m.lastGKey = false
		m.returnMode = ModeCard
		m.helpPanel.Show()
		m.mode = ModeHelp
		m.statusBar.SetMode("HELP")
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.lastGKey = false
		return m.cycleTheme()

	case key.Matches(msg, m.keys.Browse):
		m.lastGKey = false
		m.mode = ModeBrowse
		m.statusBar.SetMode("BROWSE")
		if m.browseTable.Len() == 0 {
			m.statusBar.SetLoading(true)
			return m, m.loadRecent()
		}
		return m, nil
	}

	// Reset g key if another key was pressed.
	m.lastGKey = false

	// Forward to the card viewport for mouse scroll, etc.
	cp, cmd := m.cardPanel.Update(msg)
	m.cardPanel = *cp
	m.syncStatusBar()
	return m, cmd
}

// handleTrailMode processes keys while the trail panel is focused.
func (m Model) handleTrailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()

	switch s {
	case "j", "down":
		m.trailPanel.CursorDown()
		return m, nil

	case "k", "up":
		m.trailPanel.CursorUp()
		return m, nil

	case "enter":
		if sel, ok := m.trailPanel.Selected(); ok {
			if id, moved := m.trail.JumpTo(sel.Position - 1); moved {
				m.trailPanel.Refresh()
				m.trailPanel.Focus()
				return m, m.loadNote(id, false)
			}
		}
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n := int(s[0] - '0')
		if id, ok := m.trail.JumpToWindowIndex(n); ok {
			m.trailPanel.Refresh()
			m.trailPanel.Focus()
			return m, m.loadNote(id, false)
		}
		m.statusBar.SetMessage(fmt.Sprintf("No trail entry [%d]", n))
		return m, nil

	case "[":
		if m.trail.PageOlder() {
			m.trailPanel.Refresh()
		}
		return m, nil

	case "]":
		if m.trail.PageNewer() {
			m.trailPanel.Refresh()
		}
		return m, nil

	case "tab", "esc":
		m.trailPanel.Blur()
		if m.current != nil {
			m.mode = ModeCard
			m.statusBar.SetMode("CARD")
		} else {
			m.mode = ModeBrowse
			m.statusBar.SetMode("BROWSE")
		}
		return m, nil

	case "q":
		return m, tea.Quit
	}

	return m, nil
}

// handleBrowseMode processes keys in the note listing.
func (m Model) handleBrowseMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()

	// The tag index shares the browse screen.
	if m.browseShowsTags {
		switch s {
		case "j", "down":
			m.tagTable.CursorDown()
			return m, nil
		case "k", "up":
			m.tagTable.CursorUp()
			return m, nil
		case "enter":
			if tag, ok := m.tagTable.Selected(); ok {
				m.statusBar.SetLoading(true)
				return m, m.loadByTag(tag)
			}
			return m, nil
		case "esc", "i":
			m.browseShowsTags = false
			return m, nil
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case s == "g":
		if m.lastGKey {
			m.lastGKey = false
			m.browseTable.GotoTop()
			return m, nil
		}
		m.lastGKey = true
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.lastGKey = false
		m.browseTable.CursorDown()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.lastGKey = false
		m.browseTable.CursorUp()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.lastGKey = false
		m.browseTable.HalfPageDown()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.lastGKey = false
		m.browseTable.HalfPageUp()
		return m, nil

	case key.Matches(msg, m.keys.GotoBottom):
		m.lastGKey = false
		m.browseTable.GotoBottom()
		return m, nil

	case s == "enter":
		m.lastGKey = false
		if id, ok := m.browseTable.SelectedID(); ok {
			return m, m.openNote(id)
		}
		return m, nil

	case key.Matches(msg, m.keys.Recent):
		m.lastGKey = false
		m.statusBar.SetLoading(true)
		return m, m.loadRecent()

	case key.Matches(msg, m.keys.Hubs):
		m.lastGKey = false
		m.statusBar.SetLoading(true)
		return m, m.loadHubs()

	case key.Matches(msg, m.keys.Orphans):
		m.lastGKey = false
		m.statusBar.SetLoading(true)
		return m, m.loadOrphans()

	case key.Matches(msg, m.keys.TagIndex):
		m.lastGKey = false
		m.statusBar.SetLoading(true)
		return m, m.loadTags()

	case key.Matches(msg, m.keys.NewNote):
		m.lastGKey = false
		return m.openCreateForm("", "")

	case key.Matches(msg, m.keys.Stats):
		m.lastGKey = false
		return m.openStats()

	case key.Matches(msg, m.keys.CommandMode):
		m.lastGKey = false
		return m.openCommandBar(ui.CommandEx)

	case key.Matches(msg, m.keys.SearchMode):
		m.lastGKey = false
		return m.openCommandBar(ui.CommandSearch)

	case key.Matches(msg, m.keys.Help):
		m.lastGKey = false
		m.returnMode = ModeBrowse
		m.helpPanel.Show()
		m.mode = ModeHelp
		m.statusBar.SetMode("HELP")
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.lastGKey = false
		return m.cycleTheme()

	case key.Matches(msg, m.keys.TrailFocus):
		m.lastGKey = false
		if m.trail.Len() > 0 && m.layoutPane.IsSplit() {
			m.trailPanel.Focus()
			m.mode = ModeTrail
			m.statusBar.SetMode("TRAIL")
		}
		return m, nil

	case s == "esc":
		m.lastGKey = false
		if m.current != nil {
			m.mode = ModeCard
			m.statusBar.SetMode("CARD")
		}
		return m, nil
	}

	m.lastGKey = false
	return m, nil
}

// handleCommandMode processes keys while the command/search bar is open.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.commandBar.Close()
		m.browseTable.Filter("")
		m.restoreMode()
		m.layout()
		return m, nil

	case tea.KeyEnter:
		result := m.commandBar.Submit()
		m.browseTable.Filter("")
		m.restoreMode()
		m.layout()
		switch result.Type {
		case ui.CommandEx:
			return m.executeCommand(result.Value)
		case ui.CommandSearch:
			return m.executeSearch(result.Value)
		}
		return m, nil
	}

	cb, cmd := m.commandBar.Update(msg)
	m.commandBar = *cb

	// While a / query is typed over the browse screen, narrow the
	// listing as a preview. Enter still runs the full-box search.
	if m.mode == ModeSearch && m.returnMode == ModeBrowse {
		m.browseTable.Filter(m.commandBar.Value())
	}

	return m, cmd
}

// handleCreateMode processes keys in the new-note form.
func (m Model) handleCreateMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.restoreMode()
		return m, nil

	case "tab":
		return m, m.createForm.FocusNext()

	case "shift+tab":
		return m, m.createForm.FocusPrev()

	case "ctrl+s":
		return m.submitCreate()
	}

	return m, m.createForm.Update(msg)
}

// submitCreate validates the form and creates the note.
func (m Model) submitCreate() (tea.Model, tea.Cmd) {
	id, body, links := m.createForm.Values()

	switch {
	case id == "":
		m.createForm.SetError("id required")
		return m, nil
	case !note.ValidID(id):
		m.createForm.SetError("id cannot contain whitespace")
		return m, nil
	case body == "":
		m.createForm.SetError("body required")
		return m, nil
	case note.BodyStatus(body) == note.StatusOver:
		m.createForm.SetError(fmt.Sprintf("over %d effective chars — split the idea", note.MaxEffectiveChars))
		return m, nil
	}

	// Unknown link targets are dropped by Create; name them so the typo
	// is visible.
	var skipped []string
	for _, target := range links {
		if ok, err := m.store.Exists(target); err == nil && !ok {
			skipped = append(skipped, target)
		}
	}

	if err := m.store.Create(id, body, links); err != nil {
		if errors.Is(err, storage.ErrExists) {
			m.createForm.SetError("a note with this id already exists")
		} else {
			m.createForm.SetError(err.Error())
		}
		return m, nil
	}

	m.mode = ModeCard
	m.statusBar.SetMode("CARD")
	message := "Created " + id
	if len(skipped) > 0 {
		message += " (no such notes: " + strings.Join(skipped, ", ") + ")"
	}
	m.statusBar.SetMessage(message)
	return m, m.openNote(id)
}

// handleLinkMode processes keys in the annotated-link form.
func (m Model) handleLinkMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.restoreMode()
		return m, nil

	case "tab", "shift+tab":
		return m, m.linkForm.FocusNext()

	case "enter":
		return m.submitLink()
	}

	return m, m.linkForm.Update(msg)
}

// submitLink appends the annotated link to the current note.
func (m Model) submitLink() (tea.Model, tea.Cmd) {
	if m.current == nil {
		m.restoreMode()
		return m, nil
	}
	from := m.current.ID
	target, reason := m.linkForm.Values()

	if target == "" {
		m.linkForm.SetError("target id required")
		return m, nil
	}
	if reason == "" {
		m.linkForm.SetError("reason required — why does this connect?")
		return m, nil
	}

	err := m.store.AppendAnnotatedLink(from, target, reason)
	switch {
	case err == nil:
		m.mode = ModeCard
		m.statusBar.SetMode("CARD")
		m.statusBar.SetMessage(fmt.Sprintf("Linked → %s", target))
		return m, m.loadNote(from, false)
	case errors.Is(err, storage.ErrSelfLink):
		m.linkForm.SetError("a note cannot link to itself")
	case errors.Is(err, storage.ErrLinkExists):
		m.linkForm.SetError("these notes are already linked")
	case errors.Is(err, storage.ErrNotFound):
		m.linkForm.SetError("no such note: " + target)
	case errors.Is(err, storage.ErrEmptyReason):
		m.linkForm.SetError("reason required — why does this connect?")
	default:
		m.linkForm.SetError(err.Error())
	}
	return m, nil
}

// handleTagsMode processes keys in the tag picker.
func (m Model) handleTagsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()

	switch s {
	case "esc":
		m.mode = ModeCard
		m.statusBar.SetMode("CARD")
		// Reload so the card footer picks up tag changes.
		if m.current != nil {
			return m, m.loadNote(m.current.ID, false)
		}
		return m, nil

	case "up":
		m.tagPicker.CursorUp()
		return m, nil

	case "down":
		m.tagPicker.CursorDown()
		return m, nil

	case "enter":
		return m.submitTag()
	}

	// Digits remove applied tags, but only while the filter is empty so
	// tag names with digits stay typable.
	if m.tagPicker.Query() == "" && len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if tag, ok := m.tagPicker.CurrentByNumber(int(s[0] - '0')); ok {
			if err := m.store.UntagNote(m.current.ID, tag.ID); err == nil {
				m.refreshPickerTags()
				m.statusBar.SetMessage("Untagged #" + tag.Name)
			}
		}
		return m, nil
	}

	cmd := m.tagPicker.Update(msg)
	m.refreshTagSuggestions()
	return m, cmd
}

// submitTag applies the highlighted suggestion, or creates the typed
// tag when nothing matches.
func (m Model) submitTag() (tea.Model, tea.Cmd) {
	if m.current == nil {
		return m, nil
	}

	var tagID, tagName string
	if sel, ok := m.tagPicker.Selected(); ok {
		tagID, tagName = sel.ID, sel.Name
	} else {
		q := m.tagPicker.Query()
		if q == "" {
			return m, nil
		}
		id, err := m.store.CreateTag(q)
		if err != nil && !errors.Is(err, storage.ErrExists) {
			m.tagPicker.SetError(err.Error())
			return m, nil
		}
		if errors.Is(err, storage.ErrExists) {
			id = note.Slugify(q)
		}
		tagID, tagName = id, q
	}

	if err := m.store.TagNote(m.current.ID, tagID); err != nil {
		if errors.Is(err, storage.ErrExists) {
			m.tagPicker.SetError("already tagged #" + tagName)
		} else {
			m.tagPicker.SetError(err.Error())
		}
		return m, nil
	}

	m.refreshPickerTags()
	m.refreshTagSuggestions()
	m.statusBar.SetMessage("Tagged #" + tagName)
	return m, nil
}

// refreshPickerTags reloads the applied-tag row in the picker.
func (m *Model) refreshPickerTags() {
	if m.current == nil {
		return
	}
	if tags, err := m.store.NoteTags(m.current.ID); err == nil {
		m.tagPicker.SetCurrent(tags)
	}
}

// refreshTagSuggestions refilters the suggestion list from the picker
// query.
func (m *Model) refreshTagSuggestions() {
	q := m.tagPicker.Query()
	var (
		tags []note.Tag
		err  error
	)
	if q == "" {
		tags, err = m.store.AllTags()
	} else {
		tags, err = m.store.SearchTags(q)
	}
	if err == nil {
		m.tagPicker.SetSuggestions(tags)
	}
}

// handlePathsMode processes keys in the two-hop paths panel.
func (m Model) handlePathsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()

	switch s {
	case "esc", "q", "p":
		m.mode = ModeCard
		m.statusBar.SetMode("CARD")
		return m, nil

	case "j", "down":
		m.pathsPanel.CursorDown()
		return m, nil

	case "k", "up":
		m.pathsPanel.CursorUp()
		return m, nil

	case "enter":
		if path, ok := m.pathsPanel.Selected(); ok {
			return m.walkPath(path)
		}
		return m, nil
	}

	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		if path, ok := m.pathsPanel.ByNumber(int(s[0] - '0')); ok {
			return m.walkPath(path)
		}
	}

	return m, nil
}

// walkPath records both hops on the trail and opens the destination.
func (m Model) walkPath(path note.PathHop) (tea.Model, tea.Cmd) {
	m.trail.Checkout(m.pathsPanel.Origin())
	m.trail.Checkout(path.Hop1)
	m.trail.Checkout(path.Hop2)
	m.trailPanel.Refresh()

	m.mode = ModeCard
	m.statusBar.SetMode("CARD")
	m.statusBar.SetLoading(true)
	return m, m.loadNote(path.Hop2, false)
}

// handleStatsMode processes keys in the stats panel.
func (m Model) handleStatsMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "s", "enter":
		m.restoreMode()
	case "o":
		// Jump straight to the orphan listing.
		m.mode = ModeBrowse
		m.statusBar.SetMode("BROWSE")
		m.statusBar.SetLoading(true)
		return m, m.loadOrphans()
	}
	return m, nil
}

// handleHelpMode dismisses the keybinding reference on any key.
func (m Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.helpPanel.Hide()
	m.restoreMode()
	return m, nil
}

// handleConfirmMode processes the y/n answer for a pending delete.
func (m Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.pendingDelete
		m.pendingDelete = ""
		if err := m.store.Delete(id); err != nil {
			m.statusBar.SetMessage(fmt.Sprintf("Delete failed: %v", err))
			m.restoreMode()
			return m, nil
		}
		m.statusBar.SetMessage("Deleted " + id)
		if m.current != nil && m.current.ID == id {
			// The card is gone; its trail entries stay.
			m.current = nil
			m.cardPanel.Clear()
			m.linksPanel.Clear()
			m.statusBar.SetNote("", 0)
			m.mode = ModeBrowse
			m.statusBar.SetMode("BROWSE")
			return m, m.loadRecent()
		}
		m.restoreMode()
		if m.mode == ModeBrowse {
			return m, m.loadRecent()
		}
		return m, nil

	case "n", "N", "esc":
		m.pendingDelete = ""
		m.statusBar.SetMessage("Delete cancelled")
		m.restoreMode()
		return m, nil
	}
	return m, nil
}

// restoreMode returns to the mode a modal was opened from.
func (m *Model) restoreMode() {
	m.mode = m.returnMode
	switch m.mode {
	case ModeCard:
		m.statusBar.SetMode("CARD")
	case ModeTrail:
		m.statusBar.SetMode("TRAIL")
	default:
		m.mode = ModeBrowse
		m.statusBar.SetMode("BROWSE")
	}
}

// openCommandBar opens the : or / bar, remembering where to return.
func (m Model) openCommandBar(ct ui.CommandType) (tea.Model, tea.Cmd) {
	m.returnMode = m.mode
	if ct == ui.CommandSearch {
		m.mode = ModeSearch
		m.statusBar.SetMode("SEARCH")
	} else {
		m.mode = ModeCommand
		m.statusBar.SetMode("COMMAND")
	}
	cmd := m.commandBar.Open(ct)
	m.layout()
	return m, cmd
}

// openCreateForm opens the new-note form, optionally prefilled.
func (m Model) openCreateForm(id, body string) (tea.Model, tea.Cmd) {
	m.returnMode = m.mode
	m.mode = ModeCreate
	m.statusBar.SetMode("CREATE")
	if id != "" || body != "" {
		return m, m.createForm.Prefill(id, body)
	}
	return m, m.createForm.Reset()
}

// openTagPicker opens the tagging modal for the current note.
func (m Model) openTagPicker() (tea.Model, tea.Cmd) {
	if m.current == nil {
		m.statusBar.SetMessage("No note to tag")
		return m, nil
	}
	tags, err := m.store.NoteTags(m.current.ID)
	if err != nil {
		m.statusBar.SetMessage(fmt.Sprintf("Error: %v", err))
		return m, nil
	}
	m.returnMode = ModeCard
	m.mode = ModeTags
	m.statusBar.SetMode("TAGS")
	cmd := m.tagPicker.Open(m.current.ID, tags)
	m.refreshTagSuggestions()
	return m, cmd
}

// openPaths opens the two-hop path panel for the current note.
func (m Model) openPaths() (tea.Model, tea.Cmd) {
	if m.current == nil {
		m.statusBar.SetMessage("No note to walk from")
		return m, nil
	}
	paths, err := m.store.TwoHopPaths(m.current.ID, 9)
	if err != nil {
		m.statusBar.SetMessage(fmt.Sprintf("Error: %v", err))
		return m, nil
	}
	m.pathsPanel.Open(m.current.ID, paths)
	m.returnMode = ModeCard
	m.mode = ModePaths
	m.statusBar.SetMode("PATHS")
	return m, nil
}

// openStats opens the box statistics panel.
func (m Model) openStats() (tea.Model, tea.Cmd) {
	st, err := m.store.Stats()
	if err != nil {
		m.statusBar.SetMessage(fmt.Sprintf("Error: %v", err))
		return m, nil
	}
	m.statsPanel.SetStats(*st)
	m.returnMode = m.mode
	m.mode = ModeStats
	m.statusBar.SetMode("STATS")
	return m, nil
}

// cycleTheme switches to the next available theme and persists it.
func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	themes := theme.List()
	current := theme.Current.Name
	for i, t := range themes {
		if t == current {
			next := themes[(i+1)%len(themes)]
			theme.Set(next)
			m.config.Theme = next
			_ = m.config.Save()
			m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", next))
			return m, nil
		}
	}
	// Fallback: set first theme.
	if len(themes) > 0 {
		theme.Set(themes[0])
		m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", themes[0]))
	}
	return m, nil
}

// executeCommand handles :commands.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "q", "quit":
		return m, tea.Quit

	case "o", "open":
		if len(parts) > 1 {
			return m, m.openNote(parts[1])
		}
		m.statusBar.SetMessage("Usage: :open <id>")

	case "theme":
		if len(parts) > 1 {
			if theme.Set(parts[1]) {
				m.config.Theme = parts[1]
				_ = m.config.Save()
				m.statusBar.SetMessage(fmt.Sprintf("Theme: %s", parts[1]))
			} else {
				m.statusBar.SetMessage(fmt.Sprintf("Unknown theme: %s (available: %s)", parts[1], strings.Join(theme.List(), ", ")))
			}
		} else {
			m.statusBar.SetMessage(fmt.Sprintf("Current: %s | Available: %s", theme.Current.Name, strings.Join(theme.List(), ", ")))
		}

	case "clip":
		if len(parts) > 1 {
			return m.executeClip(parts[1])
		}
		m.statusBar.SetMessage("Usage: :clip <url>")

	case "delete", "rm":
		if len(parts) > 1 {
			return m.confirmDelete(parts[1])
		}
		m.statusBar.SetMessage("Usage: :delete <id>")

	case "unlink":
		if len(parts) < 2 {
			m.statusBar.SetMessage("Usage: :unlink <id>")
			break
		}
		if m.current == nil {
			m.statusBar.SetMessage("No note to unlink from")
			break
		}
		target := parts[1]
		if err := m.store.DeleteLink(m.current.ID, target); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				m.statusBar.SetMessage(fmt.Sprintf("No link %s → %s", m.current.ID, target))
			} else {
				m.statusBar.SetMessage(fmt.Sprintf("Error: %v", err))
			}
			break
		}
		// The annotation line stays in the body; only the link row goes.
		m.statusBar.SetMessage(fmt.Sprintf("Unlinked %s → %s", m.current.ID, target))
		return m, m.loadNote(m.current.ID, false)

	case "stats":
		return m.openStats()

	case "recent":
		m.mode = ModeBrowse
		m.statusBar.SetMode("BROWSE")
		m.statusBar.SetLoading(true)
		return m, m.loadRecent()

	case "hubs":
		m.mode = ModeBrowse
		m.statusBar.SetMode("BROWSE")
		m.statusBar.SetLoading(true)
		return m, m.loadHubs()

	case "orphans":
		m.mode = ModeBrowse
		m.statusBar.SetMode("BROWSE")
		m.statusBar.SetLoading(true)
		return m, m.loadOrphans()

	case "clear":
		m.trail.Clear()
		m.trailPanel.Refresh()
		m.syncStatusBar()
		m.statusBar.SetMessage("Trail cleared")

	case "help":
		m.returnMode = m.mode
		m.helpPanel.Show()
		m.mode = ModeHelp
		m.statusBar.SetMode("HELP")

	default:
		m.statusBar.SetMessage(fmt.Sprintf("Unknown command: %s", parts[0]))
	}

	return m, nil
}

// executeSearch runs a / query against ids and bodies.
func (m Model) executeSearch(query string) (tea.Model, tea.Cmd) {
	if query == "" {
		return m, nil
	}
	m.mode = ModeBrowse
	m.statusBar.SetMode("BROWSE")
	m.statusBar.SetLoading(true)
	store := m.store
	return m, func() tea.Msg {
		rows, err := store.Search(query, listingLimit)
		return browseLoadedMsg{label: fmt.Sprintf("search %q", query), rows: rows, err: err}
	}
}

// executeClip fetches a web page and distills it into a note draft.
func (m Model) executeClip(rawURL string) (tea.Model, tea.Cmd) {
	url := capture.NormalizeURL(rawURL)
	m.statusBar.SetLoading(true)
	m.statusBar.SetMessage("Clipping " + url + "...")

	fetcher := m.fetcher
	return m, func() tea.Msg {
		result, err := fetcher.Fetch(url)
		if err != nil {
			return clipDoneMsg{err: err}
		}
		draft, err := capture.Clip(result)
		if err != nil {
			return clipDoneMsg{err: err}
		}
		return clipDoneMsg{draft: draft}
	}
}

// confirmDelete stages a delete behind a y/n prompt.
func (m Model) confirmDelete(id string) (tea.Model, tea.Cmd) {
	exists, err := m.store.Exists(id)
	if err != nil {
		m.statusBar.SetMessage(fmt.Sprintf("Error: %v", err))
		return m, nil
	}
	if !exists {
		m.statusBar.SetMessage("No such note: " + id)
		return m, nil
	}
	m.pendingDelete = id
	m.returnMode = m.mode
	m.mode = ModeConfirm
	m.statusBar.SetMode("CONFIRM")
	m.statusBar.SetMessage(fmt.Sprintf("Delete %s? (y/n)", id))
	return m, nil
}

// openNote loads a note and records the visit on the trail.
func (m *Model) openNote(id string) tea.Cmd {
	m.statusBar.SetLoading(true)
	return m.loadNote(id, true)
}

// loadNote fetches and renders a note asynchronously. record controls
// whether a trail entry is appended once the load succeeds.
func (m Model) loadNote(id string, record bool) tea.Cmd {
	store := m.store
	cache := m.cardCache
	width := m.cardW
	if width <= 0 {
		width = 80
	}

	return func() tea.Msg {
		n, err := store.Load(id)
		if err != nil {
			return noteLoadedMsg{id: id, record: record, err: err}
		}

		key := fmt.Sprintf("%s|%d|%d", n.ID, n.ModifiedAt.Unix(), width)
		rendered, ok := cache.Get(key)
		if !ok {
			rendered = render.Markdown(n.Body, width)
			cache.Add(key, rendered)
		}

		return noteLoadedMsg{id: id, note: n, rendered: rendered, record: record}
	}
}

// handleNoteLoaded processes a completed note load.
func (m Model) handleNoteLoaded(msg noteLoadedMsg) (tea.Model, tea.Cmd) {
	m.statusBar.SetLoading(false)

	if msg.err != nil {
		if errors.Is(msg.err, storage.ErrNotFound) {
			m.statusBar.SetMessage("No such note: " + msg.id)
		} else {
			m.statusBar.SetMessage(fmt.Sprintf("Error: %v", msg.err))
		}
		// A failed initial load leaves nothing on screen; fall back to
		// the browse listing.
		if m.current == nil && m.browseTable.Len() == 0 {
			return m, m.loadRecent()
		}
		return m, nil
	}

	// Visits append to the trail only after a successful load.
	if msg.record {
		m.trail.Checkout(msg.note.ID)
		m.trailPanel.Refresh()
	}

	m.current = msg.note
	m.cardPanel.SetNote(msg.note, msg.rendered)
	m.linksPanel.SetLinks(msg.note.Outbound, msg.note.Inbound)
	m.statusBar.SetNote(msg.note.ID, msg.note.Connections())
	m.syncStatusBar()

	if m.mode == ModeBrowse {
		m.mode = ModeCard
		m.statusBar.SetMode("CARD")
	}

	return m, nil
}

// loadRecent lists the newest notes.
func (m Model) loadRecent() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		rows, err := store.Recent(listingLimit)
		return browseLoadedMsg{label: "recent", rows: rows, err: err}
	}
}

// loadHubs lists the most connected notes.
func (m Model) loadHubs() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		rows, err := store.Hubs(listingLimit)
		return browseLoadedMsg{label: "hubs", rows: rows, err: err}
	}
}

// loadOrphans lists notes with no links at all.
func (m Model) loadOrphans() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		rows, err := store.Orphans()
		return browseLoadedMsg{label: "orphans", rows: rows, err: err}
	}
}

// loadByTag lists the notes under a tag.
func (m Model) loadByTag(tag note.TagCount) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		rows, err := store.ByTag(tag.ID)
		return browseLoadedMsg{label: "#" + tag.Name, rows: rows, err: err}
	}
}

// loadTags loads the tag index.
func (m Model) loadTags() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		rows, err := store.Tags()
		return tagsLoadedMsg{rows: rows, err: err}
	}
}

// handleBrowseLoaded processes a completed listing load.
func (m Model) handleBrowseLoaded(msg browseLoadedMsg) (tea.Model, tea.Cmd) {
	m.statusBar.SetLoading(false)

	if msg.err != nil {
		m.statusBar.SetMessage(fmt.Sprintf("Error: %v", msg.err))
		return m, nil
	}

	m.browseTable.SetRows(msg.label, msg.rows)
	m.browseShowsTags = false
	if m.mode == ModeCard {
		m.mode = ModeBrowse
		m.statusBar.SetMode("BROWSE")
	}
	return m, nil
}

// handleTagsLoaded processes a completed tag index load.
func (m Model) handleTagsLoaded(msg tagsLoadedMsg) (tea.Model, tea.Cmd) {
	m.statusBar.SetLoading(false)

	if msg.err != nil {
		m.statusBar.SetMessage(fmt.Sprintf("Error: %v", msg.err))
		return m, nil
	}

	m.tagTable.SetRows(msg.rows)
	m.browseShowsTags = true
	if m.mode == ModeCard {
		m.mode = ModeBrowse
		m.statusBar.SetMode("BROWSE")
	}
	return m, nil
}

// handleClipDone processes a completed web clip.
func (m Model) handleClipDone(msg clipDoneMsg) (tea.Model, tea.Cmd) {
	m.statusBar.SetLoading(false)

	if msg.err != nil {
		m.statusBar.SetMessage(fmt.Sprintf("Clip failed: %v", msg.err))
		return m, nil
	}

	m.statusBar.SetMessage("Clipped: " + msg.draft.Title)
	return m.openCreateForm(msg.draft.SuggestedID, msg.draft.Body)
}

// updateComponents forwards messages to sub-components.
func (m *Model) updateComponents(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd

	cp, cmd := m.cardPanel.Update(msg)
	m.cardPanel = *cp
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return cmds
}

// syncStatusBar updates the status bar with current state.
func (m *Model) syncStatusBar() {
	m.statusBar.SetScrollInfo(m.cardPanel.ScrollInfo())
	m.statusBar.SetTrail(m.trail.Position()+1, m.trail.Len())
}
