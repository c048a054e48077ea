package adview

import (
	"errors"
	"fmt"

	"github.com/hupe1980/adview/blobstore"
	"github.com/hupe1980/adview/container"
)

var (
	// ErrNotFound is returned when a source, group, dataset or attribute
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrClosed is returned when a File is used after Close.
	ErrClosed = errors.New("file closed")
)

// ErrUnsupportedScheme indicates a source URI with an unknown scheme.
type ErrUnsupportedScheme struct {
	Scheme string
}

func (e *ErrUnsupportedScheme) Error() string {
	return fmt.Sprintf("unsupported source scheme %q", e.Scheme)
}

// ErrInvalidSource indicates a malformed source URI.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidSource struct {
	Source string
	Reason string
	cause  error
}

func (e *ErrInvalidSource) Error() string {
	return fmt.Sprintf("invalid source %q: %s", e.Source, e.Reason)
}

func (e *ErrInvalidSource) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}

	// Not found unification.
	if errors.Is(err, blobstore.ErrNotFound) || errors.Is(err, container.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}
