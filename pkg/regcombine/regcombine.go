// Package regcombine composes regular-expression fragments into one pattern.
//
// Fragments form a tree of literals, sequences and groups. Combining the tree keeps
// every fragment's meaning: alternations are grouped only where precedence requires
// it, capturing groups are renumbered left to right across the whole pattern, and
// backreferences follow the groups they point at.
//
// Literals may declare a named group with "($name:...)" and refer to it from any
// later fragment with "($name)"; the placeholder becomes a numeric backreference.
//
// Example:
//
//	res, err := regcombine.Combine(regcombine.Sequence{
//	    regcombine.Literal(`($quote:["'])`),
//	    &regcombine.Group{Items: []regcombine.Fragment{regcombine.Literal(`\w+`)}, Name: "word"},
//	    regcombine.Literal("($quote)"),
//	})
//	// res.Combined == `(["'])(\w+)\1`
package regcombine

import (
	"io"

	"github.com/KromDaniel/regcombine/internal/combiner"
)

// Fragment is one node of a combination tree: a Literal, a Sequence or a *Group.
type Fragment = combiner.Fragment

// Literal is the source of an already valid regular expression.
type Literal = combiner.Literal

// Sequence concatenates its fragments left to right.
type Sequence = combiner.Sequence

// Group joins its items by concatenation or alternation and optionally names,
// captures and repeats the result.
type Group = combiner.Group

// Result is the combined pattern together with its group numbering.
type Result = combiner.Result

// Error types returned by Combine.
type (
	MalformedPatternError   = combiner.MalformedPatternError
	CyclicFragmentError     = combiner.CyclicFragmentError
	DuplicateGroupNameError = combiner.DuplicateGroupNameError
	UndefinedGroupNameError = combiner.UndefinedGroupNameError
)

// Sentinel errors for errors.Is.
var (
	ErrMalformedPattern          = combiner.ErrMalformedPattern
	ErrCyclicFragment            = combiner.ErrCyclicFragment
	ErrDuplicateGroupName        = combiner.ErrDuplicateGroupName
	ErrUndefinedGroupName        = combiner.ErrUndefinedGroupName
	ErrBackreferencesUnsupported = combiner.ErrBackreferencesUnsupported
)

// Options configures a combination.
type Options struct {
	// Verbose logs wrapping and numbering decisions
	Verbose bool

	// LogOutput receives verbose logs (default: stderr)
	LogOutput io.Writer
}

// Combine merges the fragment tree into a single pattern.
func Combine(fragment Fragment) (*Result, error) {
	return CombineWithOptions(fragment, Options{})
}

// CombineWithOptions merges the fragment tree into a single pattern using opts.
// Every call owns its numbering state, so concurrent calls need no coordination.
func CombineWithOptions(fragment Fragment, opts Options) (*Result, error) {
	return combiner.Combine(fragment, combiner.Config{
		Verbose:   opts.Verbose,
		LogOutput: opts.LogOutput,
	})
}

// MustCombine is like Combine but panics if the tree cannot be combined.
// It simplifies safe initialization of global variables.
func MustCombine(fragment Fragment) *Result {
	res, err := Combine(fragment)
	if err != nil {
		panic(`regcombine: Combine: ` + err.Error())
	}
	return res
}
