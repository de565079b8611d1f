package store

import (
	"testing"

	"github.com/Domi31tls/valentine/internal/models"
)

func TestAboutGet_SeededSingleton(t *testing.T) {
	s := newTestStores(t)

	content, err := s.About.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if content.Page.ID != 1 {
		t.Errorf("Page.ID = %d, want the singleton row", content.Page.ID)
	}
	if len(content.Clients) != 0 || len(content.Contacts) != 0 {
		t.Error("fresh install must have no clients or contacts")
	}
}

func TestAboutReplace_ReordersChildren(t *testing.T) {
	s := newTestStores(t)

	page := models.AboutPage{ID: 1, Exergue: "photographe", Content: "bio"}
	clients := []models.Client{
		{Name: "Studio A", OrderIndex: 99},
		{Name: "Studio B", OrderIndex: 1},
	}
	contacts := []models.Contact{
		{Type: models.ContactEmail, Value: "v@example.com"},
		{Type: models.ContactInstagram, Value: "@valentine", IsVisible: true},
	}
	if err := s.About.Replace(page, clients, contacts); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	content, err := s.About.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if content.Page.Exergue != "photographe" {
		t.Errorf("Exergue = %q", content.Page.Exergue)
	}
	// order indexes are reassigned from list position
	if content.Clients[0].Name != "Studio A" || content.Clients[0].OrderIndex != 0 {
		t.Errorf("Clients[0] = %+v, want Studio A at index 0", content.Clients[0])
	}
	if content.Clients[1].OrderIndex != 1 {
		t.Errorf("Clients[1].OrderIndex = %d, want 1", content.Clients[1].OrderIndex)
	}
}

func TestAboutReplace_DropsPreviousChildren(t *testing.T) {
	s := newTestStores(t)

	page := models.AboutPage{ID: 1}
	first := []models.Client{{Name: "old"}}
	if err := s.About.Replace(page, first, nil); err != nil {
		t.Fatalf("first Replace() error = %v", err)
	}
	second := []models.Client{{Name: "new"}}
	if err := s.About.Replace(page, second, nil); err != nil {
		t.Fatalf("second Replace() error = %v", err)
	}

	content, err := s.About.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(content.Clients) != 1 || content.Clients[0].Name != "new" {
		t.Errorf("Clients = %v, want only the replacement", content.Clients)
	}
}

func TestSettings_GetAndUpdate(t *testing.T) {
	s := newTestStores(t)

	settings, err := s.Settings.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if settings.RobotsMode != models.RobotsProtectAdmin {
		t.Errorf("RobotsMode = %q, want protect_admin default", settings.RobotsMode)
	}

	settings.SiteName = "Valentine Photographie"
	settings.RobotsMode = models.RobotsBlockAll
	if err := s.Settings.Update(settings); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := s.Settings.Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.SiteName != "Valentine Photographie" || got.RobotsMode != models.RobotsBlockAll {
		t.Errorf("settings not persisted: %+v", got)
	}
}
