package table

import (
	"fmt"
)

// ErrUnsupportedEncoding is returned when a field with an unrecognized
// encoding-type is read.
type ErrUnsupportedEncoding struct {
	Tag   string
	Field string
}

func (e *ErrUnsupportedEncoding) Error() string {
	return fmt.Sprintf("unsupported encoding-type %q for field %q", e.Tag, e.Field)
}

// ErrOutOfRangeCategory indicates a categorical code with no category.
type ErrOutOfRangeCategory struct {
	Field      string
	Code       int64
	Categories int
}

func (e *ErrOutOfRangeCategory) Error() string {
	return fmt.Sprintf("field %q: code %d out of range for %d categories", e.Field, e.Code, e.Categories)
}

// ErrInvalidRange indicates a row range outside [0, rowCount].
type ErrInvalidRange struct {
	Start, End int
	RowCount   int
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("invalid row range [%d, %d) for %d rows", e.Start, e.End, e.RowCount)
}

// ErrRowCountMismatch is returned by strict catalogs when a field's length
// differs from the first field's.
type ErrRowCountMismatch struct {
	Field    string
	Expected int
	Actual   int
}

func (e *ErrRowCountMismatch) Error() string {
	return fmt.Sprintf("field %q has %d rows, expected %d", e.Field, e.Actual, e.Expected)
}

// ErrField attaches the field name to a container error raised while
// cataloging or reading that field.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrField struct {
	Field string
	cause error
}

func (e *ErrField) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.cause)
}

func (e *ErrField) Unwrap() error { return e.cause }

func fieldError(name string, err error) error {
	if err == nil {
		return nil
	}
	return &ErrField{Field: name, cause: err}
}
