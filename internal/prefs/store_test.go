package prefs

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "prefs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)

	if _, ok, err := s.Get("theme"); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v, want absent", ok, err)
	}
	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get("theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("Get = (%q, %v, %v), want dark", v, ok, err)
	}
	if err := s.Set("theme", "light"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if v, _, _ := s.Get("theme"); v != "light" {
		t.Fatalf("Get after overwrite = %q, want light", v)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prefs.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	v, ok, err := s.Get("theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("Get after reopen = (%q, %v, %v), want dark", v, ok, err)
	}
}

func TestMemory(t *testing.T) {
	t.Parallel()
	var m Memory
	if _, ok, _ := m.Get("theme"); ok {
		t.Fatal("zero-value Memory should start empty")
	}
	if err := m.Set("theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, _ := m.Get("theme")
	if !ok || v != "dark" {
		t.Fatalf("Get = (%q, %v), want dark", v, ok)
	}
}
