package regcombine

import (
	"errors"
	"strings"
	"testing"
)

type combineCase struct {
	fragment Fragment
	want     string
}

func or(items ...Fragment) *Group {
	return &Group{Items: items, Alternate: true}
}

var combineCategories = map[string]map[string][]combineCase{
	"(?:...) wrapping": {
		"should not wrap root |": {
			{or(Literal("abc"), Literal("def")), "abc|def"},
		},
		"should wrap combined regex that has | if its upper has no |": {
			{Sequence{Literal("biu"), or(Literal("abc"), Literal("def")), Literal("pia")}, "biu(?:abc|def)pia"},
		},
		"should not wrap combined regex that has | if its upper has |": {
			{or(Literal("biu"), or(Literal("abc"), Literal("def")), Literal("pia")), "biu|abc|def|pia"},
		},
		"should not wrap combined regex that has | if it's already been wrapped": {
			{Sequence{Literal("biu"), &Group{Items: []Fragment{Literal("abc"), Literal("def")}, Alternate: true, Capture: true}, Literal("pia")}, "biu(abc|def)pia"},
			{Sequence{Literal("biu"), or(Literal("(abc|def)")), Literal("pia")}, "biu(abc|def)pia"},
		},
		"should wrap or not wrap combined regex that has | based on conditions": {
			{Sequence{Literal("biu"), or(Literal("abc"), Literal("def"), or(Literal("ghi"), Literal("jkl"))), Literal("pia")}, "biu(?:abc|def|ghi|jkl)pia"},
		},
		"should wrap single regex that has root | and its upper has no |": {
			{Sequence{Literal("biu"), Literal("abc|def"), Literal("pia")}, "biu(?:abc|def)pia"},
		},
		"should wrap regex that has repeat pattern": {
			{&Group{Items: []Fragment{Literal("biu"), Literal("pia")}, Repeat: "+"}, "(?:biupia)+"},
		},
	},
	"group capturing": {
		"should capture group that has name option": {
			{&Group{Name: "abc", Items: []Fragment{Literal("abc"), Literal("def"), or(Literal("ghi"), Literal("jkl"))}}, "(abcdef(?:ghi|jkl))"},
			{Sequence{&Group{Name: "abc", Items: []Fragment{Literal("def")}}}, "(def)"},
		},
		"should capture group that has capture option true": {
			{&Group{Capture: true, Items: []Fragment{Literal("abc"), Literal("def"), or(Literal("ghi"), Literal("jkl"))}}, "(abcdef(?:ghi|jkl))"},
			{Sequence{&Group{Capture: true, Items: []Fragment{Literal("def")}}}, "(def)"},
		},
	},
	"group matching": {
		"should increase back reference number if it has other groups captured before": {
			{Sequence{Literal("a($name:b)c(def)"), Literal(`([abc])\1`)}, `a(b)c(def)([abc])\3`},
		},
		"should handle back reference by named group properly": {
			{Sequence{Literal("a($name:b)c(def)"), Literal("([abc])($name)")}, `a(b)c(def)([abc])\1`},
			{
				Sequence{Literal("a($name:b)c(def)"), or(Literal("xxx"), Literal("yyy"), Sequence{Literal("zzz"), Literal("vvv($name)")})},
				`a(b)c(def)(?:xxx|yyy|zzzvvv\1)`,
			},
		},
		"should handle back reference number that's greater than 9": {
			{Sequence{Literal("()()"), Literal(`()()()()()()()()()()(...)\11`)}, `()()()()()()()()()()()()(...)\13`},
			{
				Sequence{Literal("()()()()()()()()()()($name:...)"), or(Literal("abc"), Literal("($name)"))},
				`()()()()()()()()()()(...)(?:abc|\11)`,
			},
			{
				Sequence{Literal("()()()()()()()()()()($name:...)"), or(Literal("abc"), Literal("($name)123"))},
				`()()()()()()()()()()(...)(?:abc|(?:\11)123)`,
			},
		},
	},
}

func TestCombine(t *testing.T) {
	for category, cases := range combineCategories {
		t.Run(category, func(t *testing.T) {
			for name, list := range cases {
				t.Run(name, func(t *testing.T) {
					for i, tc := range list {
						res, err := Combine(tc.fragment)
						if err != nil {
							t.Fatalf("case %d: Combine() error: %v", i, err)
						}
						if res.Combined != tc.want {
							t.Errorf("case %d: Combine() = %q, want %q", i, res.Combined, tc.want)
						}
					}
				})
			}
		})
	}
}

func TestCombineWithOptionsVerbose(t *testing.T) {
	var sb strings.Builder

	res, err := CombineWithOptions(Sequence{Literal("x"), Literal("a|b")}, Options{Verbose: true, LogOutput: &sb})
	if err != nil {
		t.Fatalf("CombineWithOptions() error: %v", err)
	}
	if res.Combined != "x(?:a|b)" {
		t.Errorf("Combined = %q", res.Combined)
	}
	if !strings.Contains(sb.String(), "[regcombine]") {
		t.Errorf("verbose output missing prefix: %q", sb.String())
	}
}

func TestCombineErrorsAreExported(t *testing.T) {
	_, err := Combine(Sequence{Literal("($a:x)"), Literal("($a:y)")})

	var dup *DuplicateGroupNameError
	if !errors.As(err, &dup) || !errors.Is(err, ErrDuplicateGroupName) {
		t.Fatalf("error = %v, want DuplicateGroupNameError", err)
	}

	_, err = Combine(Literal("(x"))
	var mpe *MalformedPatternError
	if !errors.As(err, &mpe) || !errors.Is(err, ErrMalformedPattern) {
		t.Fatalf("error = %v, want MalformedPatternError", err)
	}
}

func TestMustCombine(t *testing.T) {
	if got := MustCombine(or(Literal("a"), Literal("b"))).Combined; got != "a|b" {
		t.Errorf("MustCombine() = %q", got)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustCombine() did not panic")
		}
		if msg, ok := r.(string); !ok || !strings.HasPrefix(msg, "regcombine: Combine: ") {
			t.Errorf("panic = %v", r)
		}
	}()
	MustCombine(Literal("($missing)"))
}

func TestAnalyze(t *testing.T) {
	a, err := Analyze(`a($name:b)|(c)\2`)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if a.GroupCount != 2 || !a.HasRootAlternation {
		t.Errorf("Analyze() = %d groups, root alternation %v", a.GroupCount, a.HasRootAlternation)
	}
	if len(a.References) != 1 || a.References[0].Local != 2 {
		t.Errorf("References = %+v", a.References)
	}
	if len(a.Definitions) != 1 || a.Definitions[0].Name != "name" {
		t.Errorf("Definitions = %+v", a.Definitions)
	}
}
