// Package combiner merges a tree of regex fragments into one pattern, renumbering
// capturing groups and rewriting backreferences along the way.
package combiner

// Fragment is one node of a combination tree. It is implemented only by
// Literal, Sequence and *Group.
type Fragment interface {
	isFragment()
}

// Literal is the source of an already valid regular expression.
//
// Besides standard syntax a literal may declare a named group with "($name:...)"
// and reference it from anywhere later in the tree with "($name)".
type Literal string

// Sequence concatenates its fragments left to right.
type Sequence []Fragment

// Group joins Items and optionally captures, names and repeats the result.
type Group struct {
	// Items are joined by concatenation, or by "|" when Alternate is set.
	Items []Fragment
	// Alternate joins Items as alternatives.
	Alternate bool
	// Name wraps the joined items in a capturing group bound to Name.
	Name string
	// Capture wraps the joined items in an anonymous capturing group.
	// It is implied when Name is set.
	Capture bool
	// Repeat is a quantifier (+, *, ?, {m,n}, ...) applied to the joined items.
	Repeat string
}

func (Literal) isFragment()  {}
func (Sequence) isFragment() {}
func (*Group) isFragment()   {}
