package regcombine

import (
	"github.com/KromDaniel/regcombine/internal/pattern"
)

// Analysis describes one literal fragment in isolation.
type Analysis = pattern.Analysis

// Analyze scans a single literal and reports its capturing group count, whether
// it has a root alternation, and its backreferences and named groups.
//
// Example:
//
//	a, err := regcombine.Analyze(`a($name:b)|(c)\2`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(a.GroupCount, a.HasRootAlternation) // 2 true
func Analyze(source string) (*Analysis, error) {
	return pattern.Analyze(source)
}
