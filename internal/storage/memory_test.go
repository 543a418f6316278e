package storage

import "testing"

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if _, ok, err := s.GetItem("missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := s.SetItem("k", "v1"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := s.SetItem("k", "v2"); err != nil {
		t.Fatalf("SetItem overwrite failed: %v", err)
	}

	v, ok, err := s.GetItem("k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("expected v2, got %q ok=%v err=%v", v, ok, err)
	}

	if err := s.RemoveItem("k"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if err := s.RemoveItem("k"); err != nil {
		t.Fatalf("RemoveItem on missing key should succeed: %v", err)
	}
	if _, ok, _ := s.GetItem("k"); ok {
		t.Error("expected key to be removed")
	}

	if s.GetConfigPath() != ":memory:" {
		t.Errorf("unexpected config path %q", s.GetConfigPath())
	}
}
