package store

import (
	"testing"

	"github.com/Domi31tls/valentine/internal/models"
)

func seedMedia(t *testing.T, s *Stores, ids ...string) {
	t.Helper()
	for _, id := range ids {
		m := &models.Media{
			ID:       id,
			Filename: id + ".jpg",
			URL:      "/uploads/" + id + ".jpg",
			MimeType: "image/jpeg",
			Size:     1,
		}
		if err := s.Media.Create(m); err != nil {
			t.Fatalf("Create(%s) error = %v", id, err)
		}
	}
}

func TestMediaFindByIDs_PreservesOrder(t *testing.T) {
	s := newTestStores(t)
	seedMedia(t, s, "m1", "m2", "m3")

	rows, err := s.Media.FindByIDs([]string{"m3", "m1", "m2"})
	if err != nil {
		t.Fatalf("FindByIDs() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, want := range []string{"m3", "m1", "m2"} {
		if rows[i].ID != want {
			t.Errorf("rows[%d].ID = %q, want %q", i, rows[i].ID, want)
		}
	}
}

func TestMediaFindByIDs_DropsMissing(t *testing.T) {
	s := newTestStores(t)
	seedMedia(t, s, "m1", "m3")

	rows, err := s.Media.FindByIDs([]string{"m1", "m2", "m3"})
	if err != nil {
		t.Fatalf("FindByIDs() error = %v", err)
	}
	if len(rows) != 2 || rows[0].ID != "m1" || rows[1].ID != "m3" {
		t.Errorf("rows = %v, want [m1 m3] with m2 dropped", rows)
	}
}

func TestMediaFindByIDs_Empty(t *testing.T) {
	s := newTestStores(t)

	rows, err := s.Media.FindByIDs(nil)
	if err != nil {
		t.Fatalf("FindByIDs(nil) error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestMediaUpdate_DescriptiveOnly(t *testing.T) {
	s := newTestStores(t)
	seedMedia(t, s, "m1")

	caption := "sur la plage"
	if err := s.Media.Update("m1", MediaUpdate{Caption: &caption}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := s.Media.FindByID("m1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Caption != "sur la plage" {
		t.Errorf("Caption = %q", got.Caption)
	}
	if got.MimeType != "image/jpeg" || got.Size != 1 {
		t.Error("identity fields must survive a descriptive update")
	}
}
