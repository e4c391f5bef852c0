package ui

import (
	"strings"
	"testing"

	"github.com/vidyasagar/kasten/internal/note"
)

func summaries(ids ...string) []note.Summary {
	rows := make([]note.Summary, len(ids))
	for i, id := range ids {
		rows[i] = note.Summary{ID: id, Body: "body of " + id, Connections: i}
	}
	return rows
}

func TestBrowseTableSelection(t *testing.T) {
	bt := NewBrowseTable()
	bt.SetSize(80, 12)

	if _, ok := bt.SelectedID(); ok {
		t.Error("empty table reported a selection")
	}

	bt.SetRows("recent", summaries("alpha", "beta", "gamma"))
	if id, ok := bt.SelectedID(); !ok || id != "alpha" {
		t.Errorf("initial selection = %q, want alpha", id)
	}

	bt.CursorDown()
	bt.CursorDown()
	if id, _ := bt.SelectedID(); id != "gamma" {
		t.Errorf("after downs selection = %q, want gamma", id)
	}

	// Clamp at both ends.
	bt.CursorDown()
	if id, _ := bt.SelectedID(); id != "gamma" {
		t.Errorf("cursor ran past the end: %q", id)
	}
	bt.GotoTop()
	bt.CursorUp()
	if id, _ := bt.SelectedID(); id != "alpha" {
		t.Errorf("cursor ran past the top: %q", id)
	}
}

func TestBrowseTableFilterNarrows(t *testing.T) {
	bt := NewBrowseTable()
	bt.SetSize(80, 12)
	bt.SetRows("recent", summaries("capture-habits", "spaced-repetition", "habit-loops"))

	bt.Filter("habit")
	if bt.Len() != 2 {
		t.Fatalf("filtered len = %d, want 2", bt.Len())
	}
	if id, _ := bt.SelectedID(); id != "capture-habits" {
		t.Errorf("cursor after filter = %q, want capture-habits", id)
	}

	// Case-insensitive.
	bt.Filter("HABIT")
	if bt.Len() != 2 {
		t.Errorf("case-insensitive filter len = %d, want 2", bt.Len())
	}

	bt.Filter("")
	if bt.Len() != 3 {
		t.Errorf("cleared filter len = %d, want 3", bt.Len())
	}

	// New rows drop any leftover filter.
	bt.Filter("habit")
	bt.SetRows("hubs", summaries("solo"))
	if bt.Len() != 1 {
		t.Errorf("len after SetRows = %d, want 1", bt.Len())
	}
}

func TestBrowseTableScrollFollowsCursor(t *testing.T) {
	bt := NewBrowseTable()
	bt.SetSize(80, 8) // four visible rows after chrome
	bt.SetRows("recent", summaries("n0", "n1", "n2", "n3", "n4", "n5", "n6", "n7"))

	bt.GotoBottom()
	if id, _ := bt.SelectedID(); id != "n7" {
		t.Fatalf("GotoBottom selection = %q, want n7", id)
	}
	view := bt.View()
	if !strings.Contains(view, "n7") {
		t.Error("bottom row not visible after GotoBottom")
	}

	bt.HalfPageUp()
	bt.HalfPageUp()
	bt.HalfPageUp()
	bt.HalfPageUp()
	if id, _ := bt.SelectedID(); id != "n0" {
		t.Errorf("selection after paging up = %q, want n0", id)
	}
}

func TestBrowseTableView(t *testing.T) {
	bt := NewBrowseTable()
	bt.SetSize(80, 12)

	view := bt.View()
	if !strings.Contains(view, "nothing here") {
		t.Errorf("empty state missing:\n%s", view)
	}

	bt.SetRows("orphans", summaries("lonely-note"))
	view = bt.View()
	if !strings.Contains(view, "orphans") {
		t.Errorf("label missing:\n%s", view)
	}
	if !strings.Contains(view, "lonely-note") {
		t.Errorf("row missing:\n%s", view)
	}
	if !strings.Contains(view, "1 notes") {
		t.Errorf("count missing:\n%s", view)
	}
}

func TestTagTableSelection(t *testing.T) {
	tt := NewTagTable()
	tt.SetSize(60, 12)

	if _, ok := tt.Selected(); ok {
		t.Error("empty tag table reported a selection")
	}

	tt.SetRows([]note.TagCount{
		{ID: "reading", Name: "reading", Count: 5},
		{ID: "habits", Name: "habits", Count: 2},
	})
	if tag, ok := tt.Selected(); !ok || tag.ID != "reading" {
		t.Errorf("initial tag = %q, want reading", tag.ID)
	}

	tt.CursorDown()
	tt.CursorDown() // clamps
	if tag, _ := tt.Selected(); tag.ID != "habits" {
		t.Errorf("tag after downs = %q, want habits", tag.ID)
	}

	view := tt.View()
	if !strings.Contains(view, "#reading") {
		t.Errorf("tag row missing:\n%s", view)
	}
	if !strings.Contains(view, "5 notes") {
		t.Errorf("tag count missing:\n%s", view)
	}
}
