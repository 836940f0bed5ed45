package combiner

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ErrBackreferencesUnsupported is returned by Result.Compile for patterns that
// Go's RE2-based regexp package cannot express.
var ErrBackreferencesUnsupported = errors.New("pattern uses backreferences, which regexp does not support")

// Result is the outcome of one combination.
type Result struct {
	// Combined is the merged pattern source.
	Combined string
	// GroupCount is the number of capturing groups in Combined.
	GroupCount int
	// Names maps every declared group name to its absolute group number.
	Names map[string]int
	// HasBackreferences reports whether Combined contains backreferences, numeric or by host
	// group name (\k<name>).
	HasBackreferences bool
}

// Compile compiles the combined pattern with the standard regexp package.
func (r *Result) Compile() (*regexp.Regexp, error) {
	if r.HasBackreferences {
		return nil, ErrBackreferencesUnsupported
	}
	re, err := regexp.Compile(r.Combined)
	if err != nil {
		return nil, fmt.Errorf("compile combined pattern: %w", err)
	}
	return re, nil
}

// GroupNames returns the declared names ordered by group number.
func (r *Result) GroupNames() []string {
	names := make([]string, 0, len(r.Names))
	for name := range r.Names {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return r.Names[names[i]] < r.Names[names[j]]
	})
	return names
}
