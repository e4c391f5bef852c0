package storage

import (
	"errors"
	"testing"
)

func TestAppendAnnotatedLink(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")
	mustCreate(t, s, "b", "beta")

	if err := s.AppendAnnotatedLink("a", "b", "b explains a"); err != nil {
		t.Fatalf("AppendAnnotatedLink: %v", err)
	}

	n, err := s.Load("a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := "alpha\n\n→b: b explains a"; n.Body != want {
		t.Errorf("body = %q, want %q", n.Body, want)
	}
	ok, err := s.LinkExists("a", "b")
	if err != nil {
		t.Fatalf("LinkExists: %v", err)
	}
	if !ok {
		t.Error("link row missing after annotate")
	}
}

func TestAppendAnnotatedLinkTrimsReason(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")
	mustCreate(t, s, "b", "beta")

	if err := s.AppendAnnotatedLink("a", "b", "  padded  "); err != nil {
		t.Fatalf("AppendAnnotatedLink: %v", err)
	}
	n, _ := s.Load("a")
	if want := "alpha\n\n→b: padded"; n.Body != want {
		t.Errorf("body = %q, want %q", n.Body, want)
	}
}

func TestAppendAnnotatedLinkValidation(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")
	mustCreate(t, s, "b", "beta")

	cases := []struct {
		name     string
		from, to string
		reason   string
		want     error
	}{
		{"self link", "a", "a", "loop", ErrSelfLink},
		{"empty reason", "a", "b", "   ", ErrEmptyReason},
		{"missing source", "ghost", "b", "why", ErrNotFound},
		{"missing target", "a", "ghost", "why", ErrNotFound},
	}
	for _, c := range cases {
		if err := s.AppendAnnotatedLink(c.from, c.to, c.reason); !errors.Is(err, c.want) {
			t.Errorf("%s: err = %v, want %v", c.name, err, c.want)
		}
	}

	// Nothing above should have touched the body.
	n, _ := s.Load("a")
	if n.Body != "alpha" {
		t.Errorf("body mutated by failed link: %q", n.Body)
	}
}

func TestAppendAnnotatedLinkDuplicate(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")
	mustCreate(t, s, "b", "beta")

	if err := s.AppendAnnotatedLink("a", "b", "first"); err != nil {
		t.Fatalf("AppendAnnotatedLink: %v", err)
	}
	if err := s.AppendAnnotatedLink("a", "b", "second"); !errors.Is(err, ErrLinkExists) {
		t.Errorf("duplicate err = %v, want ErrLinkExists", err)
	}
	// The failed attempt must not annotate again.
	n, _ := s.Load("a")
	if want := "alpha\n\n→b: first"; n.Body != want {
		t.Errorf("body = %q, want %q", n.Body, want)
	}
}

func TestDeleteLink(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")
	mustCreate(t, s, "b", "beta")
	if err := s.AppendAnnotatedLink("a", "b", "why"); err != nil {
		t.Fatalf("AppendAnnotatedLink: %v", err)
	}

	if err := s.DeleteLink("a", "b"); err != nil {
		t.Fatalf("DeleteLink: %v", err)
	}
	ok, _ := s.LinkExists("a", "b")
	if ok {
		t.Error("link survived delete")
	}
	// The annotation stays; bodies are append-only.
	n, _ := s.Load("a")
	if want := "alpha\n\n→b: why"; n.Body != want {
		t.Errorf("body = %q, want %q", n.Body, want)
	}

	if err := s.DeleteLink("a", "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestTwoHopPaths(t *testing.T) {
	s := testStore(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		mustCreate(t, s, id, id+" body")
	}
	links := [][2]string{{"a", "b"}, {"b", "c"}, {"b", "d"}, {"b", "a"}}
	for _, l := range links {
		if err := s.AppendAnnotatedLink(l[0], l[1], "edge"); err != nil {
			t.Fatalf("link %v: %v", l, err)
		}
	}

	paths, err := s.TwoHopPaths("a", 9)
	if err != nil {
		t.Fatalf("TwoHopPaths: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %d, want 2 (loop back to origin excluded)", len(paths))
	}
	seen := map[string]bool{}
	for _, p := range paths {
		if p.Hop1 != "b" {
			t.Errorf("hop1 = %s, want b", p.Hop1)
		}
		if p.Hop2Preview == "" {
			t.Error("hop2 preview empty")
		}
		seen[p.Hop2] = true
	}
	if !seen["c"] || !seen["d"] {
		t.Errorf("hop2 set = %v, want c and d", seen)
	}
}

func TestTwoHopPathsLimit(t *testing.T) {
	s := testStore(t)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		mustCreate(t, s, id, id+" body")
	}
	for _, to := range []string{"c", "d", "e"} {
		if err := s.AppendAnnotatedLink("b", to, "edge"); err != nil {
			t.Fatalf("link: %v", err)
		}
	}
	if err := s.AppendAnnotatedLink("a", "b", "edge"); err != nil {
		t.Fatalf("link: %v", err)
	}

	paths, err := s.TwoHopPaths("a", 2)
	if err != nil {
		t.Fatalf("TwoHopPaths: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("paths = %d, want limit 2", len(paths))
	}
}

func TestTwoHopPathsEmpty(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "lonely", "no links")
	paths, err := s.TwoHopPaths("lonely", 9)
	if err != nil {
		t.Fatalf("TwoHopPaths: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("paths = %d, want 0", len(paths))
	}
}
