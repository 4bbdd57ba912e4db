package storage

import (
	"testing"

	"github.com/shelfsort/bookident/internal/models"
)

func TestSessionStore(t *testing.T) {
	store := New()

	if _, exists := store.Get("missing"); exists {
		t.Error("Expected missing session to not exist")
	}

	session := &models.IdentifySession{ID: "s1", ImageFilename: "cover.jpg"}
	store.Set("s1", session)

	got, exists := store.Get("s1")
	if !exists {
		t.Fatal("Expected session s1 to exist")
	}
	if got.ImageFilename != "cover.jpg" {
		t.Errorf("Expected cover.jpg, got %s", got.ImageFilename)
	}

	store.Set("s2", &models.IdentifySession{ID: "s2"})
	if len(store.GetAll()) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(store.GetAll()))
	}

	store.Delete("s1")
	if _, exists := store.Get("s1"); exists {
		t.Error("Expected s1 to be deleted")
	}
}
