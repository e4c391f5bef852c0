package storage

import (
	"testing"
)

// setCreatedAt backdates a note so ordering tests don't depend on insert
// timing within the same second.
func setCreatedAt(t *testing.T, s *Store, id, stamp string) {
	t.Helper()
	if _, err := s.db.Exec(`UPDATE notes SET created_at = ? WHERE id = ?`, stamp, id); err != nil {
		t.Fatalf("backdating %s: %v", id, err)
	}
}

func TestRecent(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "old", "first")
	mustCreate(t, s, "mid", "second")
	mustCreate(t, s, "new", "third")
	setCreatedAt(t, s, "old", "2024-01-01 10:00:00")
	setCreatedAt(t, s, "mid", "2024-01-02 10:00:00")
	setCreatedAt(t, s, "new", "2024-01-03 10:00:00")

	sums, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("len = %d, want 2", len(sums))
	}
	if sums[0].ID != "new" || sums[1].ID != "mid" {
		t.Errorf("order = %s, %s, want new, mid", sums[0].ID, sums[1].ID)
	}
	if sums[0].CreatedAt.Year() != 2024 {
		t.Errorf("created_at not parsed: %v", sums[0].CreatedAt)
	}
}

func TestHubs(t *testing.T) {
	s := testStore(t)
	for _, id := range []string{"hub", "a", "b", "c", "x"} {
		mustCreate(t, s, id, id+" body")
	}
	for _, to := range []string{"a", "b", "c"} {
		if err := s.AppendAnnotatedLink("hub", to, "spoke"); err != nil {
			t.Fatalf("link: %v", err)
		}
	}

	sums, err := s.Hubs(2)
	if err != nil {
		t.Fatalf("Hubs: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("len = %d, want 2", len(sums))
	}
	if sums[0].ID != "hub" || sums[0].Connections != 3 {
		t.Errorf("first = %s/%d, want hub/3", sums[0].ID, sums[0].Connections)
	}
	// a, b, c tie at one connection; id breaks the tie.
	if sums[1].ID != "a" || sums[1].Connections != 1 {
		t.Errorf("second = %s/%d, want a/1", sums[1].ID, sums[1].Connections)
	}
}

func TestOrphans(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "linked-a", "alpha")
	mustCreate(t, s, "linked-b", "beta", "linked-a")
	mustCreate(t, s, "alone-old", "old orphan")
	mustCreate(t, s, "alone-new", "new orphan")
	setCreatedAt(t, s, "alone-old", "2024-01-01 10:00:00")
	setCreatedAt(t, s, "alone-new", "2024-06-01 10:00:00")

	sums, err := s.Orphans()
	if err != nil {
		t.Fatalf("Orphans: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("len = %d, want 2", len(sums))
	}
	if sums[0].ID != "alone-new" || sums[1].ID != "alone-old" {
		t.Errorf("order = %s, %s, want alone-new, alone-old", sums[0].ID, sums[1].ID)
	}
}

func TestSearchNotes(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "golang-basics", "syntax and tooling")
	mustCreate(t, s, "python-tips", "mentions golang for comparison")
	mustCreate(t, s, "rust-notes", "borrow checker")

	sums, err := s.Search("golang", 20)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("len = %d, want 2 (id match + body match)", len(sums))
	}
	if sums[0].ID != "golang-basics" || sums[1].ID != "python-tips" {
		t.Errorf("order = %s, %s", sums[0].ID, sums[1].ID)
	}

	sums, err = s.Search("golang", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(sums) != 1 {
		t.Errorf("limit ignored: len = %d", len(sums))
	}
}

func TestByTag(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "b-note", "beta")
	mustCreate(t, s, "a-note", "alpha")
	mustCreate(t, s, "other", "untagged")
	tagID, err := s.CreateTag("testing")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	for _, id := range []string{"b-note", "a-note"} {
		if err := s.TagNote(id, tagID); err != nil {
			t.Fatalf("TagNote: %v", err)
		}
	}

	sums, err := s.ByTag(tagID)
	if err != nil {
		t.Fatalf("ByTag: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("len = %d, want 2", len(sums))
	}
	if sums[0].ID != "a-note" || sums[1].ID != "b-note" {
		t.Errorf("order = %s, %s, want a-note, b-note", sums[0].ID, sums[1].ID)
	}
}

func TestAllNotes(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "b", "beta")
	mustCreate(t, s, "a", "alpha")
	mustCreate(t, s, "hub", "hub", "a", "b")

	sums, err := s.AllNotes(OrderID)
	if err != nil {
		t.Fatalf("AllNotes: %v", err)
	}
	if len(sums) != 3 || sums[0].ID != "a" || sums[2].ID != "hub" {
		t.Errorf("OrderID result: %+v", sums)
	}

	sums, err = s.AllNotes(OrderConnections)
	if err != nil {
		t.Fatalf("AllNotes: %v", err)
	}
	if sums[0].ID != "hub" || sums[0].Connections != 2 {
		t.Errorf("OrderConnections first = %s/%d, want hub/2", sums[0].ID, sums[0].Connections)
	}
}

func TestStats(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")
	mustCreate(t, s, "b", "beta", "a")
	mustCreate(t, s, "c", "gamma", "b")
	mustCreate(t, s, "d", "orphan")
	if _, err := s.CreateTag("one"); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Notes != 4 || st.Links != 2 || st.Orphans != 1 || st.Tags != 1 {
		t.Errorf("Stats = %+v", st)
	}
	// 2 links touch 4 note-ends over 4 notes.
	if st.AvgLinksPer != 1.0 {
		t.Errorf("AvgLinksPer = %v, want 1.0", st.AvgLinksPer)
	}
}

func TestStatsRounding(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")
	mustCreate(t, s, "b", "beta", "a")
	mustCreate(t, s, "c", "gamma", "a")

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	// 2 links * 2 / 3 notes = 1.333... rounds to 1.3.
	if st.AvgLinksPer != 1.3 {
		t.Errorf("AvgLinksPer = %v, want 1.3", st.AvgLinksPer)
	}
}

func TestStatsEmpty(t *testing.T) {
	s := testStore(t)
	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Notes != 0 || st.AvgLinksPer != 0 {
		t.Errorf("empty Stats = %+v", st)
	}
}
