package pattern

import (
	"errors"
	"fmt"
)

// ErrMalformedPattern is the sentinel wrapped by every MalformedPatternError.
var ErrMalformedPattern = errors.New("malformed pattern")

// MalformedPatternError reports a fragment that cannot be tokenized.
type MalformedPatternError struct {
	Fragment string // Source of the offending fragment
	Offset   int    // Byte offset of the problem within Fragment
	Reason   string
}

func (e *MalformedPatternError) Error() string {
	return fmt.Sprintf("malformed pattern %q at offset %d: %s", e.Fragment, e.Offset, e.Reason)
}

// Unwrap returns ErrMalformedPattern for errors.Is.
func (e *MalformedPatternError) Unwrap() error {
	return ErrMalformedPattern
}

func malformed(src string, offset int, format string, args ...interface{}) error {
	return &MalformedPatternError{
		Fragment: src,
		Offset:   offset,
		Reason:   fmt.Sprintf(format, args...),
	}
}
