package pattern

import "testing"

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		groups      int
		rootAlt     bool
		enclosed    bool
		references  int
		definitions []string
	}{
		{"plain", "abc", 0, false, false, 0, nil},
		{"root alternation", "abc|def", 0, true, false, 0, nil},
		{"nested alternation", "(abc|def)", 1, false, true, 0, nil},
		{"two groups", "(a)(b)", 2, false, false, 0, nil},
		{"non capturing", "(?:a|b)", 0, false, true, 0, nil},
		{"named definition", "a($name:b)c(def)", 2, false, false, 0, []string{"name"}},
		{"named reference", "([abc])($name)", 1, false, false, 1, nil},
		{"numeric reference", `([abc])\1`, 1, false, false, 1, nil},
		{"lookahead counts nothing", "(?=a)(b)", 1, false, false, 0, nil},
		{"host named counts", "(?<x>a)", 1, false, true, 0, nil},
		{"escaped paren", `\(a|b\)`, 0, true, false, 0, nil},
		{"empty", "", 0, false, false, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Analyze(tt.pattern)
			if err != nil {
				t.Fatalf("Analyze(%q) error: %v", tt.pattern, err)
			}

			if a.GroupCount != tt.groups {
				t.Errorf("GroupCount = %d, want %d", a.GroupCount, tt.groups)
			}
			if a.HasRootAlternation != tt.rootAlt {
				t.Errorf("HasRootAlternation = %v, want %v", a.HasRootAlternation, tt.rootAlt)
			}
			if a.Enclosed != tt.enclosed {
				t.Errorf("Enclosed = %v, want %v", a.Enclosed, tt.enclosed)
			}
			if len(a.References) != tt.references {
				t.Errorf("len(References) = %d, want %d", len(a.References), tt.references)
			}
			if len(a.Definitions) != len(tt.definitions) {
				t.Fatalf("len(Definitions) = %d, want %d", len(a.Definitions), len(tt.definitions))
			}
			for i, name := range tt.definitions {
				if a.Definitions[i].Name != name {
					t.Errorf("Definitions[%d].Name = %q, want %q", i, a.Definitions[i].Name, name)
				}
			}
		})
	}
}

func TestAnalyzeReferenceTargets(t *testing.T) {
	a, err := Analyze(`(a)($x:b)\2($x)\1`)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if len(a.Definitions) != 1 || a.Definitions[0].Local != 2 {
		t.Fatalf("Definitions = %+v, want one definition at local group 2", a.Definitions)
	}

	want := []Reference{
		{Local: 2},
		{Name: "x"},
		{Local: 1},
	}
	if len(a.References) != len(want) {
		t.Fatalf("References = %+v", a.References)
	}
	for i, ref := range a.References {
		if ref.Local != want[i].Local || ref.Name != want[i].Name {
			t.Errorf("References[%d] = %+v, want local %d name %q", i, ref, want[i].Local, want[i].Name)
		}
		if ref.Named() != (want[i].Name != "") {
			t.Errorf("References[%d].Named() = %v", i, ref.Named())
		}
		if !a.Tokens[ref.Token].IsReference() {
			t.Errorf("References[%d] points at %s token", i, a.Tokens[ref.Token].Kind)
		}
	}
}

// The atom predicate decides whether a quantifier needs an extra (?:...) wrapper.
func TestAtomicPredicate(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"a", true},
		{".", true},
		{"é", true},
		{`\d`, true},
		{`\.`, true},
		{`\x41`, true},
		{`\p{L}`, true},
		{"[abc]", true},
		{`(a)\1`, false},
		{"(abc)", true},
		{"(?:abc)", true},
		{"(?>abc)", true},
		{"(?<n>abc)", true},
		{"($n:abc)", true},
		{"($n)", true},
		{"(?=abc)", false},
		{"(?<!abc)", false},
		{"^", false},
		{"$", false},
		{`\b`, false},
		{`\B`, false},
		{"ab", false},
		{"a+", false},
		{"(a)(b)", false},
		{"(a)b", false},
		{"a|b", false},
		{"(?i)", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			a, err := Analyze(tt.pattern)
			if err != nil {
				t.Fatalf("Analyze(%q) error: %v", tt.pattern, err)
			}
			if a.Atomic != tt.want {
				t.Errorf("Atomic(%q) = %v, want %v", tt.pattern, a.Atomic, tt.want)
			}
		})
	}
}

func TestIsQuantifier(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"+", true},
		{"*", true},
		{"?", true},
		{"+?", true},
		{"*+", true},
		{"{3}", true},
		{"{2,}", true},
		{"{2,5}?", true},
		{"", false},
		{"++a", false},
		{"{x}", false},
		{"a", false},
		{"{,3}", false},
	}

	for _, tt := range tests {
		if got := IsQuantifier(tt.s); got != tt.want {
			t.Errorf("IsQuantifier(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestIsName(t *testing.T) {
	for _, s := range []string{"name", "_x", "a1", "CamelCase"} {
		if !IsName(s) {
			t.Errorf("IsName(%q) = false", s)
		}
	}
	for _, s := range []string{"", "1a", "a-b", "a b", "é"} {
		if IsName(s) {
			t.Errorf("IsName(%q) = true", s)
		}
	}
}

func TestAnalyzeInlineFlags(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"(?i)a", true},
		{"a(?s-m)", true},
		{"(?i:a)b", false},
		{"((?i)a)", false},
		{"a|b", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			a, err := Analyze(tt.pattern)
			if err != nil {
				t.Fatalf("Analyze(%q) error: %v", tt.pattern, err)
			}
			if a.InlineFlags != tt.want {
				t.Errorf("InlineFlags = %v, want %v", a.InlineFlags, tt.want)
			}
		})
	}
}

func TestIsNameContinue(t *testing.T) {
	for _, c := range []byte("aZ_09") {
		if !IsNameContinue(c) {
			t.Errorf("IsNameContinue(%q) = false", c)
		}
	}
	for _, c := range []byte("-. $}") {
		if IsNameContinue(c) {
			t.Errorf("IsNameContinue(%q) = true", c)
		}
	}
}

func TestIsHostReference(t *testing.T) {
	tokens, err := Scan(`(?<q>a)\k<q>\k`)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	var refs int
	for _, tok := range tokens {
		if tok.IsHostReference() {
			refs++
		}
	}
	if refs != 1 {
		t.Errorf("host references = %d, want 1", refs)
	}
}
