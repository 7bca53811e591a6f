// pkg/counter/counter.go

package counter

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptCounter matches every *CorruptCounterError.
	ErrCorruptCounter = errors.New("corrupt invoice counter")
	// ErrRollbackConflict is returned when the stored value moved on since the
	// number being rolled back was issued. The number stays burned.
	ErrRollbackConflict = errors.New("counter changed since issue, number not rolled back")
)

// Store is the durable holder of the last-issued invoice number.
type Store interface {
	// ReadCurrent returns the last-issued number, creating the storage with
	// the seed value on first use.
	ReadCurrent() (int, error)
	// IssueNext persists and returns ReadCurrent()+1.
	IssueNext() (int, error)
	// Rollback un-issues n if it is still the last-issued number.
	Rollback(n int) error
}

// CorruptCounterError reports counter storage that does not hold a
// non-negative integer. It is never repaired automatically since reseeding
// could reissue a number that is already on a sent invoice.
type CorruptCounterError struct {
	Path    string
	Content string
	Err     error
}

func (e *CorruptCounterError) Error() string {
	msg := fmt.Sprintf("invoice counter %s holds %q, expected a non-negative integer", e.Path, e.Content)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + "; restore it to the last issued invoice number before generating again"
}

func (e *CorruptCounterError) Unwrap() error { return e.Err }

func (e *CorruptCounterError) Is(target error) bool { return target == ErrCorruptCounter }
