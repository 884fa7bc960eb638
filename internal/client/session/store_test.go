package session

import "testing"

func TestBadgerStore(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenBadgerStore(dir)
	if err != nil {
		t.Fatalf("OpenBadgerStore() error = %v", err)
	}

	if tok, err := s.Load(); err != nil || tok != "" {
		t.Fatalf("empty Load() = %q, %v", tok, err)
	}
	if err := s.Save("abc"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = OpenBadgerStore(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	if tok, _ := s.Load(); tok != "abc" {
		t.Fatalf("Load() after reopen = %q, want abc", tok)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if tok, _ := s.Load(); tok != "" {
		t.Errorf("Load() after Clear = %q", tok)
	}
}
