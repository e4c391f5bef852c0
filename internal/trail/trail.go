// Package trail implements the session trail: an append-only log of
// visited note ids with a movable position pointer and a bounded display
// window over the log.
package trail

import "time"

// DefaultWindowSize is used when a Trail is constructed without a usable
// window size.
const DefaultWindowSize = 20

// Entry is a single recorded visit. The timestamp is informational;
// ordering is insertion order.
type Entry struct {
	ID        string
	VisitedAt time.Time
}

// VisibleEntry is an entry inside the current window, tagged for display.
type VisibleEntry struct {
	Position int // 1-based absolute position in the trail
	ID       string
	Current  bool
}

// Trail manages the visited-note log and the window over it.
//
// Unlike a browser history, Checkout never discards forward entries: after
// backtracking, a new visit appends to the tail and the old forward run
// stays in the log, reachable by paging but not by Forward.
type Trail struct {
	entries     []Entry
	position    int // current position in the log, -1 when empty
	windowStart int
	windowSize  int

	// truncateForward switches Checkout to conventional history semantics
	// (drop entries beyond position before appending). Off by default.
	truncateForward bool
}

// New creates an empty trail with the given window size. Sizes below 1
// fall back to DefaultWindowSize.
func New(windowSize int) *Trail {
	if windowSize < 1 {
		windowSize = DefaultWindowSize
	}
	return &Trail{
		entries:     nil,
		position:    -1,
		windowStart: 0,
		windowSize:  windowSize,
	}
}

// Checkout records a visit to id. Visiting the entry already at the
// current position is a no-op; anything else appends to the tail, moves
// position there, and scrolls the window to keep it visible. The caller
// is responsible for confirming the id exists before checking out.
func (t *Trail) Checkout(id string) {
	if t.position >= 0 && t.entries[t.position].ID == id {
		return
	}
	if t.truncateForward && t.position < len(t.entries)-1 {
		t.entries = t.entries[:t.position+1]
	}
	t.entries = append(t.entries, Entry{ID: id, VisitedAt: time.Now()})
	t.position = len(t.entries) - 1
	t.ensureVisible()
}

// Back moves one step back in the trail. Returns the id now at position
// and true if possible.
func (t *Trail) Back() (string, bool) {
	if t.position <= 0 {
		return "", false
	}
	t.position--
	t.ensureVisible()
	return t.entries[t.position].ID, true
}

// Forward moves one step forward in the trail. Returns the id now at
// position and true if possible.
func (t *Trail) Forward() (string, bool) {
	if t.position >= len(t.entries)-1 {
		return "", false
	}
	t.position++
	t.ensureVisible()
	return t.entries[t.position].ID, true
}

// JumpToWindowIndex moves position to the i-th visible entry (1-based).
// Indexes outside the visible slice return false without mutating
// anything.
func (t *Trail) JumpToWindowIndex(i int) (string, bool) {
	if i < 1 || i > len(t.VisibleEntries()) {
		return "", false
	}
	t.position = t.windowStart + i - 1
	t.ensureVisible()
	return t.entries[t.position].ID, true
}

// JumpTo moves position to an absolute 0-based index in the log. Used by
// the window cursor, which resolves its selection to an absolute
// position first.
func (t *Trail) JumpTo(pos int) (string, bool) {
	if pos < 0 || pos >= len(t.entries) {
		return "", false
	}
	t.position = pos
	t.ensureVisible()
	return t.entries[t.position].ID, true
}

// VisibleEntries returns the window's slice of the trail, each entry
// tagged with its 1-based absolute position and the current marker.
func (t *Trail) VisibleEntries() []VisibleEntry {
	end := t.windowStart + t.windowSize
	if end > len(t.entries) {
		end = len(t.entries)
	}
	if t.windowStart >= end {
		return nil
	}
	visible := make([]VisibleEntry, 0, end-t.windowStart)
	for i := t.windowStart; i < end; i++ {
		visible = append(visible, VisibleEntry{
			Position: i + 1,
			ID:       t.entries[i].ID,
			Current:  i == t.position,
		})
	}
	return visible
}

// OverflowCounts returns how many entries are hidden before and after the
// window, for "N more" indicators.
func (t *Trail) OverflowCounts() (before, after int) {
	before = t.windowStart
	after = len(t.entries) - (t.windowStart + t.windowSize)
	if after < 0 {
		after = 0
	}
	return before, after
}

// PageOlder scrolls the window one full page toward the start of the
// trail. Returns whether the window moved. Position is untouched.
func (t *Trail) PageOlder() bool {
	prev := t.windowStart
	t.windowStart = clamp(t.windowStart-t.windowSize, 0, t.maxWindowStart())
	return t.windowStart != prev
}

// PageNewer scrolls the window one full page toward the end of the
// trail. Returns whether the window moved. Position is untouched.
func (t *Trail) PageNewer() bool {
	prev := t.windowStart
	t.windowStart = clamp(t.windowStart+t.windowSize, 0, t.maxWindowStart())
	return t.windowStart != prev
}

// Current returns the id at position, or empty string if the trail is
// empty.
func (t *Trail) Current() string {
	if t.position < 0 || t.position >= len(t.entries) {
		return ""
	}
	return t.entries[t.position].ID
}

// Position returns the current 0-based position, -1 when empty.
func (t *Trail) Position() int {
	return t.position
}

// CanGoBack reports whether there is a previous entry.
func (t *Trail) CanGoBack() bool {
	return t.position > 0
}

// CanGoForward reports whether there is a next entry.
func (t *Trail) CanGoForward() bool {
	return t.position < len(t.entries)-1
}

// Len returns the total number of entries.
func (t *Trail) Len() int {
	return len(t.entries)
}

// WindowStart returns the absolute index of the first visible entry.
func (t *Trail) WindowStart() int {
	return t.windowStart
}

// WindowSize returns the current window size.
func (t *Trail) WindowSize() int {
	return t.windowSize
}

// SetWindowSize changes how many entries are visible at once. Sizes below
// 1 are ignored. The window is not re-adjusted until the next position
// change or paging call.
func (t *Trail) SetWindowSize(n int) {
	if n < 1 {
		return
	}
	t.windowSize = n
}

// Clear resets the trail to its empty state.
func (t *Trail) Clear() {
	t.entries = nil
	t.position = -1
	t.windowStart = 0
}

// ensureVisible scrolls the window so position is inside it. Called after
// every position change, never after paging alone.
func (t *Trail) ensureVisible() {
	if t.position < 0 {
		return
	}
	if t.position < t.windowStart {
		t.windowStart = t.position
	} else if t.position >= t.windowStart+t.windowSize {
		t.windowStart = t.position - t.windowSize + 1
	}
}

// maxWindowStart is the largest window start that still fills the window
// when enough entries exist.
func (t *Trail) maxWindowStart() int {
	m := len(t.entries) - t.windowSize
	if m < 0 {
		return 0
	}
	return m
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
