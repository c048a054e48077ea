package export

import (
	"errors"
	"syscall"
)

// IgnoreBrokenPipe returns nil for EPIPE, which happens when output is
// piped into a reader that exits early (head, less).
func IgnoreBrokenPipe(err error) error {
	if errors.Is(err, syscall.EPIPE) {
		return nil
	}
	return err
}
