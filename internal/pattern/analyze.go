package pattern

// Reference is one backreference occurrence inside a fragment.
type Reference struct {
	Token int    // Index into Analysis.Tokens
	Local int    // Local 1-based group index for numeric references, 0 for named ones
	Name  string // Referenced name for named placeholders
}

// Named reports whether the reference is a ($name) placeholder.
func (r Reference) Named() bool {
	return r.Name != ""
}

// Definition is one ($name:...) group declared inside a fragment.
type Definition struct {
	Token int // Index into Analysis.Tokens
	Local int // Local 1-based group index of the definition
	Name  string
}

// Analysis summarizes the structure of one literal fragment.
type Analysis struct {
	Source string
	Tokens []Token

	// GroupCount is the number of capturing groups, named definitions included.
	GroupCount int
	// HasRootAlternation reports a "|" at depth zero.
	HasRootAlternation bool
	// InlineFlags reports a flag group such as "(?i)" at depth zero. Its flags stay
	// in effect up to the end of the enclosing group, past the end of the fragment.
	InlineFlags bool
	// References lists backreferences and named placeholders in source order.
	References []Reference
	// Definitions lists ($name:...) groups in source order.
	Definitions []Definition
	// Enclosed reports that the whole fragment is one group: its first token opens a
	// group whose matching close is the last token.
	Enclosed bool
	// Atomic reports that a quantifier can be appended without extra grouping.
	Atomic bool
}

// Analyze scans src and derives its fragment-level properties.
func Analyze(src string) (*Analysis, error) {
	tokens, err := Scan(src)
	if err != nil {
		return nil, err
	}
	return AnalyzeTokens(src, tokens), nil
}

// AnalyzeTokens derives fragment-level properties from an already scanned token sequence.
func AnalyzeTokens(src string, tokens []Token) *Analysis {
	a := &Analysis{
		Source: src,
		Tokens: tokens,
	}

	for i, tok := range tokens {
		switch tok.Kind {
		case KindGroupOpen:
			a.GroupCount++
		case KindNamedDefinition:
			a.GroupCount++
			a.Definitions = append(a.Definitions, Definition{Token: i, Local: a.GroupCount, Name: tok.Name})
		case KindAlternation:
			if tok.Depth == 0 {
				a.HasRootAlternation = true
			}
		case KindInlineFlags:
			if tok.Depth == 0 {
				a.InlineFlags = true
			}
		case KindBackreference:
			a.References = append(a.References, Reference{Token: i, Local: tok.Ref})
		case KindNamedReference:
			a.References = append(a.References, Reference{Token: i, Name: tok.Name})
		}
	}

	a.Enclosed = enclosed(tokens)
	a.Atomic = atomic(tokens)
	return a
}

// enclosed reports whether tokens form exactly one group.
func enclosed(tokens []Token) bool {
	if len(tokens) < 2 || !tokens[0].Opens() {
		return false
	}
	// The group closes at the first closer back at the opener's depth
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Kind == KindGroupClose && tokens[i].Depth == tokens[0].Depth {
			return i == len(tokens)-1
		}
	}
	return false
}

// atomic is the enumerated predicate for content that accepts a quantifier as is:
//   - one literal rune other than the anchors ^ and $
//   - one escape other than the zero-width assertions
//   - one character class
//   - one numeric or named backreference
//   - one capturing, non-capturing or atomic group (not a lookaround)
func atomic(tokens []Token) bool {
	if len(tokens) == 1 {
		tok := tokens[0]
		switch tok.Kind {
		case KindLiteral:
			return tok.Text != "^" && tok.Text != "$"
		case KindEscape:
			return !isAssertionEscape(tok.Text)
		case KindCharClass, KindBackreference, KindNamedReference:
			return true
		}
		return false
	}
	return enclosed(tokens) && !tokens[0].Lookaround
}

func isAssertionEscape(text string) bool {
	switch text {
	case `\b`, `\B`, `\A`, `\z`, `\Z`, `\G`:
		return true
	}
	return false
}

// IsQuantifier reports whether s is exactly one quantifier token.
func IsQuantifier(s string) bool {
	tokens, err := Scan(s)
	if err != nil {
		return false
	}
	return len(tokens) == 1 && tokens[0].Kind == KindQuantifier
}
