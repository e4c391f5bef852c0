package trail

import "testing"

func newTrail(size int, ids ...string) *Trail {
	tr := New(size)
	for _, id := range ids {
		tr.Checkout(id)
	}
	return tr
}

func TestCheckoutAppendsAndMovesPosition(t *testing.T) {
	tr := newTrail(10, "a", "b", "c")
	if tr.Len() != 3 {
		t.Errorf("Len = %d, want 3", tr.Len())
	}
	if tr.Position() != 2 {
		t.Errorf("Position = %d, want 2", tr.Position())
	}
	if tr.Current() != "c" {
		t.Errorf("Current = %q, want c", tr.Current())
	}
}

func TestCheckoutConsecutiveDuplicateIsNoOp(t *testing.T) {
	tr := newTrail(10, "a", "b")
	tr.Checkout("b")
	if tr.Len() != 2 {
		t.Errorf("Len = %d, want 2", tr.Len())
	}
	if tr.Position() != 1 {
		t.Errorf("Position = %d, want 1", tr.Position())
	}
}

func TestCheckoutNonConsecutiveRepeatAppends(t *testing.T) {
	tr := newTrail(10, "a", "b", "a")
	if tr.Len() != 3 {
		t.Errorf("Len = %d, want 3: a-b-a is three visits", tr.Len())
	}
}

func TestCheckoutAfterBacktrackKeepsForwardEntries(t *testing.T) {
	tr := newTrail(10, "a", "b", "c")
	tr.Back()
	tr.Back()
	if tr.Position() != 0 {
		t.Fatalf("Position = %d, want 0", tr.Position())
	}
	tr.Checkout("d")
	if tr.Len() != 4 {
		t.Errorf("Len = %d, want 4: forward entries must survive", tr.Len())
	}
	if tr.Position() != 3 {
		t.Errorf("Position = %d, want 3", tr.Position())
	}
	want := []string{"a", "b", "c", "d"}
	for i, e := range tr.VisibleEntries() {
		if e.ID != want[i] {
			t.Errorf("entry %d = %q, want %q", i, e.ID, want[i])
		}
	}
}

func TestTruncateForwardPolicy(t *testing.T) {
	// The conventional browser behavior stays one flag away.
	tr := newTrail(10, "a", "b", "c")
	tr.truncateForward = true
	tr.Back()
	tr.Back()
	tr.Checkout("d")
	if tr.Len() != 2 {
		t.Errorf("Len = %d, want 2: b and c should be dropped", tr.Len())
	}
	if tr.Current() != "d" {
		t.Errorf("Current = %q, want d", tr.Current())
	}
	if _, ok := tr.Forward(); ok {
		t.Error("Forward after truncating checkout should fail")
	}
}

func TestBackThenForwardIsIdentity(t *testing.T) {
	tr := newTrail(10, "a", "b", "c")
	id, ok := tr.Back()
	if !ok || id != "b" {
		t.Fatalf("Back = %q, %v, want b, true", id, ok)
	}
	id, ok = tr.Forward()
	if !ok || id != "c" {
		t.Fatalf("Forward = %q, %v, want c, true", id, ok)
	}
	if tr.Position() != 2 || tr.Len() != 3 {
		t.Errorf("Position = %d Len = %d, want 2 and 3", tr.Position(), tr.Len())
	}
}

func TestBoundaryNoOps(t *testing.T) {
	tr := newTrail(10, "a", "b")
	tr.Back()
	if _, ok := tr.Back(); ok {
		t.Error("Back at position 0 should return false")
	}
	if tr.Position() != 0 {
		t.Errorf("Position = %d, want 0", tr.Position())
	}
	tr.Forward()
	if _, ok := tr.Forward(); ok {
		t.Error("Forward at tail should return false")
	}
	if tr.Position() != 1 {
		t.Errorf("Position = %d, want 1", tr.Position())
	}
}

func TestEmptyTrail(t *testing.T) {
	tr := New(5)
	if _, ok := tr.Back(); ok {
		t.Error("Back on empty trail should return false")
	}
	if _, ok := tr.Forward(); ok {
		t.Error("Forward on empty trail should return false")
	}
	if got := tr.VisibleEntries(); len(got) != 0 {
		t.Errorf("VisibleEntries = %v, want empty", got)
	}
	if tr.Current() != "" {
		t.Errorf("Current = %q, want empty", tr.Current())
	}
	if tr.Position() != -1 {
		t.Errorf("Position = %d, want -1", tr.Position())
	}
}

func TestPositionStaysInBounds(t *testing.T) {
	tr := New(3)
	ops := "ccbbbfffcbcfbbccff"
	n := 0
	for _, op := range ops {
		switch op {
		case 'c':
			n++
			tr.Checkout(string(rune('a' + n)))
		case 'b':
			tr.Back()
		case 'f':
			tr.Forward()
		}
		if tr.Position() < -1 || tr.Position() >= tr.Len() {
			t.Fatalf("after %q: Position = %d, Len = %d", op, tr.Position(), tr.Len())
		}
		if tr.Len() > 0 && tr.Position() < 0 {
			t.Fatalf("after %q: Position = %d with %d entries", op, tr.Position(), tr.Len())
		}
	}
}

func TestWindowAutoAdjustFollowsTail(t *testing.T) {
	tr := New(3)
	for i := 0; i < 10; i++ {
		tr.Checkout(string(rune('a' + i)))
	}
	if tr.Position() != 9 {
		t.Fatalf("Position = %d, want 9", tr.Position())
	}
	if tr.WindowStart() != 7 {
		t.Errorf("WindowStart = %d, want 7", tr.WindowStart())
	}
}

func TestWindowAutoAdjustScrollsUpOnBack(t *testing.T) {
	tr := New(3)
	for i := 0; i < 10; i++ {
		tr.Checkout(string(rune('a' + i)))
	}
	for i := 0; i < 9; i++ {
		tr.Back()
	}
	if tr.Position() != 0 {
		t.Fatalf("Position = %d, want 0", tr.Position())
	}
	if tr.WindowStart() != 0 {
		t.Errorf("WindowStart = %d, want 0", tr.WindowStart())
	}
}

func TestWindowFollowsEveryCheckout(t *testing.T) {
	tr := New(2)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		tr.Checkout(id)
		visible := tr.VisibleEntries()
		found := false
		for _, e := range visible {
			if e.ID == id && e.Current {
				found = true
			}
		}
		if !found {
			t.Errorf("after Checkout(%q): latest entry not visible and current", id)
		}
	}
	before, after := tr.OverflowCounts()
	if before != 3 || after != 0 {
		t.Errorf("OverflowCounts = (%d, %d), want (3, 0)", before, after)
	}
}

func TestPagingClampsAndReportsMovement(t *testing.T) {
	tr := New(3)
	for i := 0; i < 10; i++ {
		tr.Checkout(string(rune('a' + i)))
	}
	// Window sits at 7 after the last checkout.
	if !tr.PageOlder() {
		t.Error("PageOlder from 7 should move")
	}
	if tr.WindowStart() != 4 {
		t.Errorf("WindowStart = %d, want 4", tr.WindowStart())
	}
	tr.PageOlder()
	if !tr.PageOlder() {
		t.Error("PageOlder from 1 should clamp to 0 and still report movement")
	}
	if tr.WindowStart() != 0 {
		t.Errorf("WindowStart = %d, want 0", tr.WindowStart())
	}
	if tr.PageOlder() {
		t.Error("PageOlder at 0 should return false")
	}
	for tr.PageNewer() {
	}
	if tr.WindowStart() != 7 {
		t.Errorf("WindowStart = %d, want 7 (max)", tr.WindowStart())
	}
	if tr.PageNewer() {
		t.Error("PageNewer at max should return false")
	}
}

func TestPagingDoesNotTouchPosition(t *testing.T) {
	tr := New(3)
	for i := 0; i < 10; i++ {
		tr.Checkout(string(rune('a' + i)))
	}
	pos := tr.Position()
	tr.PageOlder()
	tr.PageOlder()
	if tr.Position() != pos {
		t.Errorf("Position = %d after paging, want %d", tr.Position(), pos)
	}
}

func TestPositionChangeSnapsWindowBackAfterPaging(t *testing.T) {
	tr := New(3)
	for i := 0; i < 10; i++ {
		tr.Checkout(string(rune('a' + i)))
	}
	tr.PageOlder()
	tr.PageOlder()
	if tr.WindowStart() != 1 {
		t.Fatalf("WindowStart = %d, want 1", tr.WindowStart())
	}
	tr.Back() // position 8, outside the paged window
	if ws := tr.WindowStart(); tr.Position() < ws || tr.Position() >= ws+3 {
		t.Errorf("position %d not inside window [%d, %d)", tr.Position(), ws, ws+3)
	}
}

func TestJumpToWindowIndex(t *testing.T) {
	tr := New(3)
	for i := 0; i < 10; i++ {
		tr.Checkout(string(rune('a' + i)))
	}
	// Window is [7, 10): h, i, j.
	id, ok := tr.JumpToWindowIndex(1)
	if !ok || id != "h" {
		t.Errorf("JumpToWindowIndex(1) = %q, %v, want h, true", id, ok)
	}
	if tr.Position() != 7 {
		t.Errorf("Position = %d, want 7", tr.Position())
	}
}

func TestJumpToWindowIndexOutOfRange(t *testing.T) {
	tr := newTrail(3, "a", "b")
	pos := tr.Position()
	for _, i := range []int{0, -1, 3, 99} {
		if _, ok := tr.JumpToWindowIndex(i); ok {
			t.Errorf("JumpToWindowIndex(%d) = true, want false", i)
		}
		if tr.Position() != pos {
			t.Errorf("Position mutated to %d by invalid index %d", tr.Position(), i)
		}
	}
}

func TestJumpToAbsolute(t *testing.T) {
	tr := newTrail(10, "a", "b", "c")
	id, ok := tr.JumpTo(0)
	if !ok || id != "a" {
		t.Errorf("JumpTo(0) = %q, %v, want a, true", id, ok)
	}
	if tr.Position() != 0 {
		t.Errorf("Position = %d, want 0", tr.Position())
	}
	if _, ok := tr.JumpTo(3); ok {
		t.Error("JumpTo(3) past tail should return false")
	}
	if _, ok := tr.JumpTo(-1); ok {
		t.Error("JumpTo(-1) should return false")
	}
}

func TestJumpDoesNotDeduplicate(t *testing.T) {
	// A jump is not a checkout: no append, no dedup rule.
	tr := newTrail(10, "a", "b", "c")
	tr.JumpTo(2)
	if tr.Len() != 3 {
		t.Errorf("Len = %d, want 3", tr.Len())
	}
}

func TestVisibleEntriesTagging(t *testing.T) {
	tr := New(3)
	for i := 0; i < 5; i++ {
		tr.Checkout(string(rune('a' + i)))
	}
	visible := tr.VisibleEntries()
	if len(visible) != 3 {
		t.Fatalf("len(visible) = %d, want 3", len(visible))
	}
	if visible[0].Position != 3 || visible[0].ID != "c" {
		t.Errorf("visible[0] = %+v, want position 3 id c", visible[0])
	}
	if !visible[2].Current {
		t.Error("last visible entry should be current")
	}
	if visible[0].Current || visible[1].Current {
		t.Error("only one entry may be current")
	}
}

func TestOverflowCountsPartialWindow(t *testing.T) {
	tr := newTrail(10, "a", "b")
	before, after := tr.OverflowCounts()
	if before != 0 || after != 0 {
		t.Errorf("OverflowCounts = (%d, %d), want (0, 0)", before, after)
	}
}

func TestCanGoBackForward(t *testing.T) {
	tr := newTrail(10, "a", "b")
	if !tr.CanGoBack() {
		t.Error("CanGoBack should be true at tail of two entries")
	}
	if tr.CanGoForward() {
		t.Error("CanGoForward should be false at tail")
	}
	tr.Back()
	if tr.CanGoBack() {
		t.Error("CanGoBack should be false at position 0")
	}
	if !tr.CanGoForward() {
		t.Error("CanGoForward should be true at position 0 of two")
	}
}

func TestClear(t *testing.T) {
	tr := newTrail(3, "a", "b", "c", "d")
	tr.Clear()
	if tr.Len() != 0 || tr.Position() != -1 || tr.WindowStart() != 0 {
		t.Errorf("after Clear: Len=%d Position=%d WindowStart=%d", tr.Len(), tr.Position(), tr.WindowStart())
	}
}

func TestSetWindowSize(t *testing.T) {
	tr := New(5)
	tr.SetWindowSize(2)
	if tr.WindowSize() != 2 {
		t.Errorf("WindowSize = %d, want 2", tr.WindowSize())
	}
	tr.SetWindowSize(0)
	if tr.WindowSize() != 2 {
		t.Errorf("WindowSize = %d after invalid set, want 2", tr.WindowSize())
	}
}

func TestNewClampsWindowSize(t *testing.T) {
	tr := New(0)
	if tr.WindowSize() != DefaultWindowSize {
		t.Errorf("WindowSize = %d, want %d", tr.WindowSize(), DefaultWindowSize)
	}
}
