package counter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileStoreSeedsOnFirstRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "invoice_number.txt")
	s := NewFileStore(path, 41)

	n, err := s.ReadCurrent()
	if err != nil {
		t.Fatalf("ReadCurrent: %v", err)
	}
	if n != 41 {
		t.Fatalf("ReadCurrent = %d, want 41", n)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("counter file not created: %v", err)
	}
	if strings.TrimSpace(string(b)) != "41" {
		t.Errorf("file holds %q", b)
	}
}

func TestFileStoreIssueSequence(t *testing.T) {
	const seed, k = 5, 20
	path := filepath.Join(t.TempDir(), "invoice_number.txt")
	s := NewFileStore(path, seed)

	for i := 1; i <= k; i++ {
		n, err := s.IssueNext()
		if err != nil {
			t.Fatalf("IssueNext #%d: %v", i, err)
		}
		if n != seed+i {
			t.Fatalf("IssueNext #%d = %d, want %d", i, n, seed+i)
		}
	}

	// a fresh store over the same file sees the durable value
	n, err := NewFileStore(path, 0).ReadCurrent()
	if err != nil {
		t.Fatal(err)
	}
	if n != seed+k {
		t.Errorf("ReadCurrent = %d, want %d", n, seed+k)
	}
}

func TestFileStoreToleratesWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice_number.txt")
	if err := os.WriteFile(path, []byte(" 7\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	n, err := NewFileStore(path, 0).IssueNext()
	if err != nil || n != 8 {
		t.Fatalf("IssueNext = %d, %v", n, err)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	for _, content := range []string{"abc", "", "-3", "12x", "1" + strings.Repeat(" ", 70) + "x"} {
		path := filepath.Join(t.TempDir(), "invoice_number.txt")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		s := NewFileStore(path, 0)

		if _, err := s.ReadCurrent(); !errors.Is(err, ErrCorruptCounter) {
			t.Errorf("ReadCurrent(%q) err = %v, want ErrCorruptCounter", content, err)
		}
		_, err := s.IssueNext()
		var cerr *CorruptCounterError
		if !errors.As(err, &cerr) {
			t.Errorf("IssueNext(%q) err = %v", content, err)
			continue
		}
		if !strings.Contains(cerr.Error(), "restore it") {
			t.Errorf("no remediation in %q", cerr.Error())
		}

		b, _ := os.ReadFile(path)
		if string(b) != content {
			t.Errorf("corrupt counter was rewritten to %q", b)
		}
	}
}

func TestFileStoreRollback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice_number.txt")
	s := NewFileStore(path, 0)

	n, err := s.IssueNext()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Rollback(n); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if cur, _ := s.ReadCurrent(); cur != 0 {
		t.Errorf("after rollback = %d, want 0", cur)
	}

	a, _ := s.IssueNext()
	if _, err := s.IssueNext(); err != nil {
		t.Fatal(err)
	}
	if err := s.Rollback(a); !errors.Is(err, ErrRollbackConflict) {
		t.Errorf("stale rollback err = %v", err)
	}
	if cur, _ := s.ReadCurrent(); cur != 2 {
		t.Errorf("stale rollback changed counter to %d", cur)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "invoice_number.txt"), 0)
	for i := 0; i < 3; i++ {
		if _, err := s.IssueNext(); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir holds %d entries, want only the counter", len(entries))
	}
}

func TestMemStore(t *testing.T) {
	m := NewMemStore(41)
	n, _ := m.IssueNext()
	if n != 42 {
		t.Fatalf("IssueNext = %d", n)
	}
	boom := errors.New("disk full")
	m.FailNext = boom
	if _, err := m.IssueNext(); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
	if err := m.Rollback(42); err != nil {
		t.Fatal(err)
	}
	if cur, _ := m.ReadCurrent(); cur != 41 {
		t.Errorf("current = %d", cur)
	}
}
