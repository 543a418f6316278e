package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/wird/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "wird.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func TestStoreItems(t *testing.T) {
	store := setupTestStore(t)

	if _, ok, err := store.GetItem("wird.settings"); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	if err := store.SetItem("wird.settings", `{"enabled":true}`); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := store.SetItem("wird.settings", `{"enabled":false}`); err != nil {
		t.Fatalf("SetItem overwrite failed: %v", err)
	}

	value, ok, err := store.GetItem("wird.settings")
	if err != nil || !ok {
		t.Fatalf("GetItem failed: ok=%v err=%v", ok, err)
	}
	if value != `{"enabled":false}` {
		t.Errorf("unexpected value %q", value)
	}

	if err := store.RemoveItem("wird.settings"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if _, ok, _ := store.GetItem("wird.settings"); ok {
		t.Error("expected item to be removed")
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wird.db")

	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.SetItem("wird.lastRegeneratedDay", "2026-10-15"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer second.Close()

	value, ok, err := second.GetItem("wird.lastRegeneratedDay")
	if err != nil || !ok || value != "2026-10-15" {
		t.Errorf("expected persisted marker, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if _, _, err := store.GetItem("x"); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized from GetItem, got %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got := ExpandPath("~/.config/wird/wird.db")
	if !strings.HasPrefix(got, home) || strings.Contains(got, "~") {
		t.Errorf("expected path under %s, got %s", home, got)
	}
	if got := ExpandPath("/tmp/wird.db"); got != "/tmp/wird.db" {
		t.Errorf("absolute path changed: %s", got)
	}
}
