package combiner

import (
	"sort"
	"strconv"

	"github.com/hbollon/go-edlib"
)

// suggestionThreshold is the minimum Jaro-Winkler similarity for a "did you mean" hint.
const suggestionThreshold = 0.8

// numbering is the per-call group numbering state: the running group counter and
// the name table. It is created by Combine and dropped when it returns.
type numbering struct {
	count int
	names map[string]int
	refs  int
	log   *Logger
}

func newNumbering(log *Logger) *numbering {
	return &numbering{
		names: make(map[string]int),
		log:   log,
	}
}

// next assigns the next absolute group number.
func (n *numbering) next() int {
	n.count++
	return n.count
}

// bind records name for an already assigned group number.
func (n *numbering) bind(name string, number int) error {
	if first, ok := n.names[name]; ok {
		return &DuplicateGroupNameError{Name: name, First: first, Second: number}
	}
	n.names[name] = number
	n.log.Log("group %d bound to %q", number, name)
	return nil
}

// lookup resolves a placeholder name declared earlier in emission order.
func (n *numbering) lookup(name, fragment string, offset int) (int, error) {
	number, ok := n.names[name]
	if !ok {
		return 0, &UndefinedGroupNameError{
			Name:       name,
			Fragment:   fragment,
			Offset:     offset,
			Suggestion: suggestName(name, n.names),
		}
	}
	return number, nil
}

// reference renders a backreference to an absolute group. When the next emitted
// character is a digit the reference is grouped so the digit cannot extend it.
func (n *numbering) reference(number int, digitFollows bool) string {
	n.refs++
	ref := `\` + strconv.Itoa(number)
	if digitFollows {
		return "(?:" + ref + ")"
	}
	return ref
}

// suggestName returns the declared name most similar to name, or "" if none is close.
func suggestName(name string, declared map[string]int) string {
	candidates := make([]string, 0, len(declared))
	for candidate := range declared {
		candidates = append(candidates, candidate)
	}
	sort.Strings(candidates)

	best, bestScore := "", float32(0)
	for _, candidate := range candidates {
		score, err := edlib.StringsSimilarity(name, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}

	if bestScore < suggestionThreshold {
		return ""
	}
	return best
}
