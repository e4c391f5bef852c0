package ui

import (
	"strings"
	"testing"

	"github.com/vidyasagar/kasten/internal/note"
)

func refs(ids ...string) []note.LinkRef {
	out := make([]note.LinkRef, len(ids))
	for i, id := range ids {
		out[i] = note.LinkRef{ID: id, Preview: "about " + id}
	}
	return out
}

func TestLinkByNumberSlots(t *testing.T) {
	lp := NewLinksPanel()
	lp.SetLinks(refs("a", "b", "c"), refs("x", "y"))

	cases := []struct {
		n    int
		want string
		ok   bool
	}{
		{1, "a", true},
		{2, "b", true},
		{3, "c", true},
		{4, "x", true},
		{5, "y", true},
		{6, "", false}, // inbound slot 3 is empty
		{0, "", false},
		{7, "", false},
	}
	for _, tc := range cases {
		got, ok := lp.LinkByNumber(tc.n)
		if got != tc.want || ok != tc.ok {
			t.Errorf("LinkByNumber(%d) = %q, %v; want %q, %v", tc.n, got, ok, tc.want, tc.ok)
		}
	}
}

func TestLinkByNumberInboundOffsetIsFixed(t *testing.T) {
	// Inbound numbering starts at 4 even when outbound has fewer than
	// three links, so keys stay stable as links come and go.
	lp := NewLinksPanel()
	lp.SetLinks(refs("only"), refs("in"))

	if _, ok := lp.LinkByNumber(2); ok {
		t.Error("empty outbound slot 2 resolved")
	}
	if got, ok := lp.LinkByNumber(4); !ok || got != "in" {
		t.Errorf("LinkByNumber(4) = %q, %v; want in", got, ok)
	}
}

func TestLinkByNumberAfterClear(t *testing.T) {
	lp := NewLinksPanel()
	lp.SetLinks(refs("a"), nil)
	lp.Clear()

	if _, ok := lp.LinkByNumber(1); ok {
		t.Error("cleared panel still resolved a link")
	}
}

func TestLinksPanelView(t *testing.T) {
	lp := NewLinksPanel()
	lp.SetSize(90, 9)

	view := lp.View()
	if !strings.Contains(view, "(no card selected)") {
		t.Errorf("placeholder missing:\n%s", view)
	}

	lp.SetLinks(refs("alpha", "beta", "gamma", "delta"), nil)
	view = lp.View()
	for _, want := range []string{"OUTBOUND", "INBOUND", "[1]", "alpha", "about alpha", "+1 more", "(no inbound links)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "delta") {
		t.Error("fourth link should be folded into the +1 more line")
	}
}

func TestLinksPanelFlattensPreviews(t *testing.T) {
	lp := NewLinksPanel()
	lp.SetSize(90, 9)
	lp.SetLinks([]note.LinkRef{{ID: "multi", Preview: "first\nsecond"}}, nil)

	view := lp.View()
	if !strings.Contains(view, "first second") {
		t.Errorf("preview newlines not flattened:\n%s", view)
	}
}
