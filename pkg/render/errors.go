package render

import (
	"errors"
	"fmt"
)

// ErrIO matches every *IOError.
var ErrIO = errors.New("invoice file write failed")

// IOError reports a failed write of an invoice file. When it is returned no
// file exists at Path that was produced by the failed call.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
