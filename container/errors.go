package container

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is returned when a group, dataset or attribute does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrGroupNotFound indicates that no group exists at Path.
type ErrGroupNotFound struct {
	Path string
}

func (e *ErrGroupNotFound) Error() string {
	return fmt.Sprintf("group not found: %s", e.Path)
}

func (e *ErrGroupNotFound) Unwrap() error { return ErrNotFound }

// ErrDatasetNotFound indicates that no dataset exists at Path.
type ErrDatasetNotFound struct {
	Path string
}

func (e *ErrDatasetNotFound) Error() string {
	return fmt.Sprintf("dataset not found: %s", e.Path)
}

func (e *ErrDatasetNotFound) Unwrap() error { return ErrNotFound }

// ErrAttributeMissing indicates a required attribute is absent on a node.
type ErrAttributeMissing struct {
	Path string
	Key  string
}

func (e *ErrAttributeMissing) Error() string {
	return fmt.Sprintf("attribute %q missing on %s", e.Key, e.Path)
}

func (e *ErrAttributeMissing) Unwrap() error { return ErrNotFound }

// ErrAttributeTypeMismatch indicates an attribute exists but is not text.
type ErrAttributeTypeMismatch struct {
	Path string
	Key  string
	// Type describes the stored value, e.g. "float64".
	Type string
}

func (e *ErrAttributeTypeMismatch) Error() string {
	return fmt.Sprintf("attribute %q on %s is %s, not a string", e.Key, e.Path, e.Type)
}

// ErrReadFailure wraps an I/O level failure reported by the container.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrReadFailure struct {
	Path  string
	cause error
}

// NewReadFailure wraps cause as a read failure at path.
// A nil cause yields a nil error.
func NewReadFailure(path string, cause error) error {
	if cause == nil {
		return nil
	}
	var rf *ErrReadFailure
	if errors.As(cause, &rf) {
		return cause
	}
	return &ErrReadFailure{Path: path, cause: cause}
}

func (e *ErrReadFailure) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.cause)
}

func (e *ErrReadFailure) Unwrap() error { return e.cause }

// ErrOutOfBounds indicates a slice request beyond the dataset length.
type ErrOutOfBounds struct {
	Path       string
	Start, End int
	Len        int
}

func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("range [%d, %d) out of bounds for %s (len %d)", e.Start, e.End, e.Path, e.Len)
}

// CheckRange validates [start, end) against a dataset of length n.
func CheckRange(path string, start, end, n int) error {
	if start < 0 || end < start || end > n {
		return &ErrOutOfBounds{Path: path, Start: start, End: end, Len: n}
	}
	return nil
}
