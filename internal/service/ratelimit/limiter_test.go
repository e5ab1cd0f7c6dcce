package ratelimit

import "testing"

func TestAllowDrainsBucket(t *testing.T) {
	l := New()

	if !l.Allow("k", 2, 0) {
		t.Fatalf("expected first allow")
	}
	if !l.Allow("k", 2, 0) {
		t.Fatalf("expected second allow")
	}
	if l.Allow("k", 2, 0) {
		t.Fatalf("expected third to be limited")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("a", 1, 0) {
		t.Fatalf("expected allow for a")
	}
	if l.Allow("a", 1, 0) {
		t.Fatalf("expected a limited")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatalf("expected allow for b")
	}
}
