package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemStore_RolesAreIsolated(t *testing.T) {
	s := NewMemStore()

	if err := s.Set("seeker", Tokens{AccessToken: "a1", RefreshToken: "r1"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set("provider", Tokens{AccessToken: "a2", RefreshToken: "r2"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := s.Clear("seeker"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := s.Get("seeker"); ok {
		t.Fatalf("seeker tokens should be gone")
	}
	got, ok := s.Get("provider")
	if !ok || got.AccessToken != "a2" {
		t.Fatalf("provider tokens must survive seeker clear, got %+v ok=%v", got, ok)
	}
}

func TestMemStore_ClearMissingRoleIsNoOp(t *testing.T) {
	s := NewMemStore()
	if err := s.Clear("admin"); err != nil {
		t.Fatalf("clearing an absent role must not fail: %v", err)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path)

	if err := s.Set("seeker", Tokens{AccessToken: "tok", RefreshToken: "ref"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A fresh store reading the same file sees the persisted tokens.
	reopened := NewFileStore(path)
	got, ok := reopened.Get("seeker")
	if !ok || got.AccessToken != "tok" || got.RefreshToken != "ref" {
		t.Fatalf("unexpected tokens after reopen: %+v ok=%v", got, ok)
	}

	if err := reopened.Clear("seeker"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := reopened.Get("seeker"); ok {
		t.Fatalf("tokens should be cleared")
	}
}

func TestFileStore_CorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewFileStore(path)
	if _, ok := s.Get("seeker"); ok {
		t.Fatalf("corrupt file must read as empty")
	}
	if err := s.Set("seeker", Tokens{AccessToken: "tok"}); err != nil {
		t.Fatalf("set after corrupt read: %v", err)
	}
	got, ok := s.Get("seeker")
	if !ok || got.AccessToken != "tok" {
		t.Fatalf("unexpected tokens: %+v ok=%v", got, ok)
	}
}

func TestFileStore_ClearAllRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewFileStore(path)

	if err := s.Set("admin", Tokens{AccessToken: "tok"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.ClearAll(); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file should be removed, stat err=%v", err)
	}
	// ClearAll on an already-empty store is fine.
	if err := s.ClearAll(); err != nil {
		t.Fatalf("second clear all: %v", err)
	}
}
