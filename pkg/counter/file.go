package counter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// maxCounterSize bounds the counter file; anything longer is not a number
// this program wrote.
const maxCounterSize = 64

// FileStore keeps the counter as a single plain-text integer.
type FileStore struct {
	Path string
	Seed int
}

// NewFileStore returns a store backed by path, seeded with seed on first use.
func NewFileStore(path string, seed int) *FileStore {
	return &FileStore{Path: path, Seed: seed}
}

func (s *FileStore) ReadCurrent() (int, error) {
	n, err := s.read()
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.write(s.Seed); err != nil {
			return 0, err
		}
		return s.Seed, nil
	}
	return n, err
}

func (s *FileStore) IssueNext() (int, error) {
	cur, err := s.ReadCurrent()
	if err != nil {
		return 0, err
	}
	next := cur + 1
	if err := s.write(next); err != nil {
		return 0, err
	}
	return next, nil
}

func (s *FileStore) Rollback(n int) error {
	cur, err := s.read()
	if err != nil {
		return err
	}
	if cur != n {
		return fmt.Errorf("%w: stored %d, issued %d", ErrRollbackConflict, cur, n)
	}
	return s.write(n - 1)
}

func (s *FileStore) read() (int, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, maxCounterSize+1))
	if err != nil {
		return 0, fmt.Errorf("read invoice counter %s: %w", s.Path, err)
	}
	if len(b) > maxCounterSize {
		return 0, &CorruptCounterError{Path: s.Path, Content: string(b[:16]) + "...", Err: errors.New("file too large")}
	}
	text := strings.TrimSpace(string(b))
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, &CorruptCounterError{Path: s.Path, Content: text, Err: err}
	}
	if n < 0 {
		return 0, &CorruptCounterError{Path: s.Path, Content: text}
	}
	return n, nil
}

// write replaces the counter file via a synced temp file and a rename, so a
// crash mid-write leaves either the old or the new value.
func (s *FileStore) write(n int) (err error) {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create counter dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+"-*")
	if err != nil {
		return fmt.Errorf("write invoice counter: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.WriteString(strconv.Itoa(n) + "\n"); err != nil {
		return fmt.Errorf("write invoice counter: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync invoice counter: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close invoice counter: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("replace invoice counter: %w", err)
	}
	return nil
}
