package note

import "testing"

func TestEffectiveCharsStripsBrackets(t *testing.T) {
	cases := []struct {
		body string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"hello [world]", 5},
		{"[source: https://example.com]", 0},
		{"a [x] b [y] c", 7}, // "a  b  c", inner spaces survive
		{"  padded  ", 6},
		{"no brackets at all", 18},
	}
	for _, c := range cases {
		if got := EffectiveChars(c.body); got != c.want {
			t.Errorf("EffectiveChars(%q) = %d, want %d", c.body, got, c.want)
		}
	}
}

func TestEffectiveCharsNonGreedy(t *testing.T) {
	// Each bracket pair strips independently, the text between survives.
	got := EffectiveChars("[a] keep [b]")
	if got != 4 {
		t.Errorf("EffectiveChars = %d, want 4", got)
	}
}

func TestEffectiveCharsCountsRunes(t *testing.T) {
	if got := EffectiveChars("héllo"); got != 5 {
		t.Errorf("EffectiveChars = %d, want 5", got)
	}
}

func TestStatusThresholds(t *testing.T) {
	cases := []struct {
		count int
		want  CharStatus
	}{
		{0, StatusOK},
		{700, StatusOK},
		{701, StatusWarn},
		{825, StatusWarn},
		{826, StatusOver},
	}
	for _, c := range cases {
		if got := Status(c.count); got != c.want {
			t.Errorf("Status(%d) = %v, want %v", c.count, got, c.want)
		}
	}
}

func TestBodyStatusIgnoresBracketed(t *testing.T) {
	body := ""
	for i := 0; i < 900; i++ {
		body += "x"
	}
	if got := BodyStatus(body); got != StatusOver {
		t.Errorf("BodyStatus = %v, want over", got)
	}
	// Wrapping the overflow in brackets makes it free.
	if got := BodyStatus("short [" + body + "]"); got != StatusOK {
		t.Errorf("BodyStatus with brackets = %v, want ok", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Systems Thinking", "systems-thinking"},
		{"  padded  ", "padded"},
		{"Already-Good", "already-good"},
		{"Tabs\tand\nnewlines", "tabs-and-newlines"},
		{"Strip!@#$%^", "strip"},
		{"MiXeD CaSe 123", "mixed-case-123"},
	}
	for _, c := range cases {
		if got := Slugify(c.name); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestValidID(t *testing.T) {
	valid := []string{"20240101", "note-a", "a.b.c"}
	for _, id := range valid {
		if !ValidID(id) {
			t.Errorf("ValidID(%q) = false, want true", id)
		}
	}
	invalid := []string{"", "has space", "tab\there", "new\nline"}
	for _, id := range invalid {
		if ValidID(id) {
			t.Errorf("ValidID(%q) = true, want false", id)
		}
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("line one\nline two", 40); got != "line one line two" {
		t.Errorf("Preview = %q", got)
	}
	if got := Preview("abcdefghij", 5); got != "abcde..." {
		t.Errorf("Preview = %q", got)
	}
	if got := Preview("short", 40); got != "short" {
		t.Errorf("Preview = %q", got)
	}
}

func TestConnections(t *testing.T) {
	n := &Note{
		Outbound: []LinkRef{{ID: "a"}, {ID: "b"}},
		Inbound:  []LinkRef{{ID: "c"}},
	}
	if got := n.Connections(); got != 3 {
		t.Errorf("Connections = %d, want 3", got)
	}
}
