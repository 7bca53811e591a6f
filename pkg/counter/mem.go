package counter

import "fmt"

// MemStore is an in-process Store, used where no durable file is wanted.
// FailNext makes the next IssueNext fail with that error.
type MemStore struct {
	Current  int
	FailNext error
}

// NewMemStore returns a store whose last-issued number is seed.
func NewMemStore(seed int) *MemStore {
	return &MemStore{Current: seed}
}

func (m *MemStore) ReadCurrent() (int, error) {
	return m.Current, nil
}

func (m *MemStore) IssueNext() (int, error) {
	if err := m.FailNext; err != nil {
		m.FailNext = nil
		return 0, err
	}
	m.Current++
	return m.Current, nil
}

func (m *MemStore) Rollback(n int) error {
	if m.Current != n {
		return fmt.Errorf("%w: stored %d, issued %d", ErrRollbackConflict, m.Current, n)
	}
	m.Current--
	return nil
}
