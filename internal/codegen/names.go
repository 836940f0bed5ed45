// Package codegen renders combined patterns as Go source.
package codegen

// Suffixes of the identifiers declared for each pattern.
const (
	PatternSuffix    = "Pattern"
	GroupPrefix      = "Group"
	GroupCountSuffix = "GroupCount"
	RegexpSuffix     = "Regexp"
)

// PatternConst returns the name of the constant holding the combined source of pattern.
func PatternConst(pattern string) string {
	return UpperFirst(pattern) + PatternSuffix
}

// GroupConst returns the name of the constant holding the number of a named group.
func GroupConst(pattern, group string) string {
	return UpperFirst(pattern) + GroupPrefix + UpperFirst(group)
}

// GroupCountConst returns the name of the constant holding the group count of pattern.
func GroupCountConst(pattern string) string {
	return UpperFirst(pattern) + GroupCountSuffix
}

// RegexpVar returns the name of the compiled regexp variable of pattern.
func RegexpVar(pattern string) string {
	return UpperFirst(pattern) + RegexpSuffix
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c &^= 0x20
	}
	return string(c) + s[1:]
}
