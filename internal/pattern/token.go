// Package pattern tokenizes and analyzes individual regex fragments.
package pattern

import (
	"fmt"
	"strings"
)

// Kind classifies one syntactic unit of a pattern.
type Kind int

const (
	// KindLiteral is a single literal rune, including metacharacters like '.', '^' and '$'.
	KindLiteral Kind = iota
	// KindEscape is an escape sequence that is not a backreference (\d, \., \x41, \p{L}, \0, ...).
	KindEscape
	// KindCharClass is a bracketed character class. Its contents are opaque.
	KindCharClass
	// KindGroupOpen opens a capturing group: "(", "(?<name>", "(?P<name>" or "(?'name'".
	KindGroupOpen
	// KindNonCapturingOpen opens a group that does not capture: "(?:", lookarounds, "(?>", "(?i:".
	KindNonCapturingOpen
	// KindInlineFlags is a standalone flag group such as "(?i)".
	KindInlineFlags
	// KindGroupClose closes any group.
	KindGroupClose
	// KindAlternation is a "|" bar.
	KindAlternation
	// KindQuantifier is a repetition suffix: *, +, ?, {m}, {m,}, {m,n} with optional lazy/possessive marker.
	KindQuantifier
	// KindBackreference is a numeric backreference \N.
	KindBackreference
	// KindNamedDefinition opens a capturing group bound to a name: "($name:".
	KindNamedDefinition
	// KindNamedReference is a placeholder referencing a named group: "($name)".
	KindNamedReference
)

var kindNames = [...]string{
	KindLiteral:          "Literal",
	KindEscape:           "Escape",
	KindCharClass:        "CharClass",
	KindGroupOpen:        "GroupOpen",
	KindNonCapturingOpen: "NonCapturingOpen",
	KindInlineFlags:      "InlineFlags",
	KindGroupClose:       "GroupClose",
	KindAlternation:      "Alternation",
	KindQuantifier:       "Quantifier",
	KindBackreference:    "Backreference",
	KindNamedDefinition:  "NamedDefinition",
	KindNamedReference:   "NamedReference",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is one classified span of a pattern source.
type Token struct {
	Kind   Kind
	Text   string // Exact source text of the span
	Offset int    // Byte offset of the span in the source
	Depth  int    // Group nesting depth at which the token appears (openers report the outer depth)

	// Ref is the local 1-based group index targeted by a KindBackreference.
	Ref int
	// Name is the bound name for KindNamedDefinition and KindNamedReference.
	Name string
	// Lookaround is set on KindNonCapturingOpen for (?=, (?!, (?<= and (?<!.
	Lookaround bool
}

// Opens reports whether the token opens a group.
func (t Token) Opens() bool {
	return t.Kind == KindGroupOpen || t.Kind == KindNonCapturingOpen || t.Kind == KindNamedDefinition
}

// Captures reports whether the token opens a capturing group.
func (t Token) Captures() bool {
	return t.Kind == KindGroupOpen || t.Kind == KindNamedDefinition
}

// IsReference reports whether the token is a numeric or named backreference.
func (t Token) IsReference() bool {
	return t.Kind == KindBackreference || t.Kind == KindNamedReference
}

// IsHostReference reports whether the token is a backreference by host group name, \k<name>.
// Such references are kept verbatim.
func (t Token) IsHostReference() bool {
	return t.Kind == KindEscape && strings.HasPrefix(t.Text, `\k<`)
}
