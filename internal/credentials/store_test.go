package credentials

import (
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set("access_key", "AKIA"); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok := s.Get("access_key")
	if !ok || got != "AKIA" {
		t.Fatalf("unexpected value %q ok=%v", got, ok)
	}

	// A fresh store reads the flushed file.
	s2, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, ok = s2.Get("access_key")
	if !ok || got != "AKIA" {
		t.Fatalf("expected persisted value, got %q ok=%v", got, ok)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if _, ok := s.Get("access_key"); ok {
		t.Fatalf("expected no value")
	}
}

func TestFileStoreEmptyValue(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "creds.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set("secret_key", ""); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := s.Get("secret_key"); ok {
		t.Fatalf("empty value must read as absent")
	}
}
