package storage

import (
	"errors"
	"os"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	f, err := os.CreateTemp("", "kasten-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := OpenDB(f.Name())
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func mustCreate(t *testing.T, s *Store, id, body string, linkTo ...string) {
	t.Helper()
	if err := s.Create(id, body, linkTo); err != nil {
		t.Fatalf("Create(%s): %v", id, err)
	}
}

func TestSchemaCreation(t *testing.T) {
	s := testStore(t)
	for _, table := range []string{"notes", "links", "tags", "note_tags"} {
		var count int
		if err := s.db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}
}

func TestExists(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")

	ok, err := s.Exists("a")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Error("Exists(a) = false, want true")
	}
	ok, err = s.Exists("missing")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("Exists(missing) = true, want false")
	}
}

func TestCreateAndLoad(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha body")

	n, err := s.Load("a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n.ID != "a" || n.Body != "alpha body" {
		t.Errorf("loaded %q/%q", n.ID, n.Body)
	}
	if n.CreatedAt.IsZero() || n.ModifiedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestLoadNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Load("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(nope) err = %v, want ErrNotFound", err)
	}
}

func TestCreateDuplicate(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")
	err := s.Create("a", "again", nil)
	if !errors.Is(err, ErrExists) {
		t.Errorf("duplicate Create err = %v, want ErrExists", err)
	}
}

func TestCreateWithLinks(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")
	mustCreate(t, s, "b", "beta")
	// Missing targets and self-references are skipped, not errors.
	mustCreate(t, s, "c", "gamma", "a", "b", "missing", "c")

	n, err := s.Load("c")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(n.Outbound) != 2 {
		t.Fatalf("outbound = %d, want 2", len(n.Outbound))
	}
	if n.Outbound[0].ID != "a" || n.Outbound[1].ID != "b" {
		t.Errorf("outbound order = %s, %s", n.Outbound[0].ID, n.Outbound[1].ID)
	}
}

func TestLoadNeighborhood(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "center", "the hub")
	mustCreate(t, s, "out-b", "target b")
	mustCreate(t, s, "out-a", "target a")
	mustCreate(t, s, "in-z", "source z", "center")
	mustCreate(t, s, "in-y", "source y", "center")
	if err := s.AppendAnnotatedLink("center", "out-b", "see b"); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := s.AppendAnnotatedLink("center", "out-a", "see a"); err != nil {
		t.Fatalf("link: %v", err)
	}

	n, err := s.Load("center")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(n.Outbound) != 2 || n.Outbound[0].ID != "out-a" || n.Outbound[1].ID != "out-b" {
		t.Errorf("outbound not ordered by id: %+v", n.Outbound)
	}
	if len(n.Inbound) != 2 || n.Inbound[0].ID != "in-y" || n.Inbound[1].ID != "in-z" {
		t.Errorf("inbound not ordered by id: %+v", n.Inbound)
	}
	if n.Connections() != 4 {
		t.Errorf("Connections = %d, want 4", n.Connections())
	}
	if n.Outbound[0].Preview == "" {
		t.Error("link preview empty")
	}
}

func TestLoadTags(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")
	for _, name := range []string{"zebra", "apple"} {
		id, err := s.CreateTag(name)
		if err != nil {
			t.Fatalf("CreateTag: %v", err)
		}
		if err := s.TagNote("a", id); err != nil {
			t.Fatalf("TagNote: %v", err)
		}
	}

	n, err := s.Load("a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(n.Tags) != 2 || n.Tags[0] != "apple" || n.Tags[1] != "zebra" {
		t.Errorf("tags not ordered by name: %v", n.Tags)
	}
}

func TestDeleteCascades(t *testing.T) {
	s := testStore(t)
	mustCreate(t, s, "a", "alpha")
	mustCreate(t, s, "b", "beta", "a")
	tagID, err := s.CreateTag("keep")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if err := s.TagNote("b", tagID); err != nil {
		t.Fatalf("TagNote: %v", err)
	}

	if err := s.Delete("b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete err = %v, want ErrNotFound", err)
	}
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM links WHERE from_id = 'b'`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("links survived delete: %d", count)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM note_tags WHERE note_id = 'b'`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("tag rows survived delete: %d", count)
	}
	// The tag itself stays.
	tags, err := s.AllTags()
	if err != nil {
		t.Fatalf("AllTags: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("tag deleted with note")
	}
}

func TestDeleteNotFound(t *testing.T) {
	s := testStore(t)
	if err := s.Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(nope) err = %v, want ErrNotFound", err)
	}
}
