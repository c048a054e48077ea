package adview

// Close releases the container and removes the staged copy of a remote
// source, if any. Close is idempotent.
func (f *File) Close() error {
	if f == nil || f.closed {
		return nil
	}
	f.closed = true

	var firstErr error
	if f.c != nil {
		if err := f.c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if f.staged != nil {
		if err := f.staged.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		f.staged = nil
	}
	return firstErr
}
