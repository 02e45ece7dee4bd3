package hexfile

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported matches every UnsupportedError.
	ErrUnsupported = errors.New("unsupported input")

	// ErrChecksum matches every ChecksumError.
	ErrChecksum = errors.New("record checksum mismatch")
)

// UnsupportedError indicates input that uses a record structure, record type
// or addressing scheme the parser does not implement, or holds no data.
type UnsupportedError struct {
	// Line is the 1-based input line, or 0 when the error is not tied to a line
	Line int

	// Reason describes what was not understood
	Reason string
}

func (e *UnsupportedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: unsupported input: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("unsupported input: %s", e.Reason)
}

// Is reports whether target is ErrUnsupported.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// ChecksumError indicates that a record's embedded checksum does not match
// the checksum computed over its bytes.
type ChecksumError struct {
	Line     int
	Expected byte
	Actual   byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("line %d: record checksum mismatch: expected 0x%02X, got 0x%02X",
		e.Line, e.Expected, e.Actual)
}

// Is reports whether target is ErrChecksum.
func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksum
}
