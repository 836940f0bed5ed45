package combiner

import (
	"errors"
	"fmt"

	"github.com/KromDaniel/regcombine/internal/pattern"
)

// Sentinel errors; every error returned by Combine wraps one of them.
var (
	// ErrMalformedPattern indicates a literal or repeat quantifier that cannot be tokenized.
	ErrMalformedPattern = pattern.ErrMalformedPattern
	// ErrCyclicFragment indicates a fragment that contains itself.
	ErrCyclicFragment = errors.New("cyclic fragment")
	// ErrDuplicateGroupName indicates two groups bound to the same name.
	ErrDuplicateGroupName = errors.New("duplicate group name")
	// ErrUndefinedGroupName indicates a placeholder for a name that is not declared before it.
	ErrUndefinedGroupName = errors.New("undefined group name")
)

// MalformedPatternError reports a fragment that cannot be tokenized.
type MalformedPatternError = pattern.MalformedPatternError

// CyclicFragmentError reports a fragment tree that is not a tree.
type CyclicFragmentError struct {
	Depth int    // Depth at which the fragment was reached again
	Kind  string // Kind of the repeated fragment
}

func (e *CyclicFragmentError) Error() string {
	return fmt.Sprintf("cyclic fragment: %s reached again at depth %d", e.Kind, e.Depth)
}

// Unwrap returns ErrCyclicFragment for errors.Is.
func (e *CyclicFragmentError) Unwrap() error {
	return ErrCyclicFragment
}

// DuplicateGroupNameError reports a name bound to more than one group.
type DuplicateGroupNameError struct {
	Name   string
	First  int // Absolute number of the group that bound the name first
	Second int // Absolute number of the group that tried to bind it again
}

func (e *DuplicateGroupNameError) Error() string {
	return fmt.Sprintf("duplicate group name %q: bound to group %d and group %d", e.Name, e.First, e.Second)
}

// Unwrap returns ErrDuplicateGroupName for errors.Is.
func (e *DuplicateGroupNameError) Unwrap() error {
	return ErrDuplicateGroupName
}

// UndefinedGroupNameError reports a placeholder whose name is not declared before it.
type UndefinedGroupNameError struct {
	Name       string
	Fragment   string // Literal containing the placeholder, empty for template references
	Offset     int    // Byte offset of the placeholder within Fragment
	Suggestion string // Closest declared name, if any is similar enough
}

func (e *UndefinedGroupNameError) Error() string {
	msg := fmt.Sprintf("undefined group name %q", e.Name)
	if e.Fragment != "" {
		msg += fmt.Sprintf(" in %q at offset %d", e.Fragment, e.Offset)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Unwrap returns ErrUndefinedGroupName for errors.Is.
func (e *UndefinedGroupNameError) Unwrap() error {
	return ErrUndefinedGroupName
}
