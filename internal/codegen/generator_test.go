package codegen

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KromDaniel/regcombine/internal/combiner"
)

func combine(t *testing.T, f combiner.Fragment) *combiner.Result {
	t.Helper()
	res, err := combiner.Combine(f, combiner.Config{})
	if err != nil {
		t.Fatalf("Combine() error: %v", err)
	}
	return res
}

func TestGenerate(t *testing.T) {
	date := combine(t, combiner.Sequence{
		&combiner.Group{Name: "year", Items: []combiner.Fragment{combiner.Literal(`\d{4}`)}},
		combiner.Literal("-"),
		&combiner.Group{Name: "month", Items: []combiner.Fragment{combiner.Literal(`\d{2}`)}},
	})
	quoted := combine(t, combiner.Literal(`($q:["'])\w+($q)`))

	src, err := Generate(Config{
		Package:  "dates",
		Source:   "dates.kdl",
		Patterns: []Pattern{{Name: "Date", Result: date}, {Name: "quoted", Result: quoted}},
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	code := string(src)

	if !strings.HasPrefix(code, "// "+HeaderComment) {
		t.Errorf("generated code should start with the header comment, got:\n%s", code)
	}

	if _, err := parser.ParseFile(token.NewFileSet(), "dates.go", src, parser.ParseComments); err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, code)
	}

	wantContains := []string{
		"package dates",
		`"regexp"`,
		"DatePattern = ",
		"DateGroupYear",
		"DateGroupMonth",
		"DateGroupCount",
		"DateRegexp",
		"regexp.MustCompile(DatePattern)",
		"QuotedPattern = ",
		"QuotedGroupQ",
		"QuotedPattern uses backreferences",
	}
	for _, want := range wantContains {
		if !strings.Contains(code, want) {
			t.Errorf("generated code should contain %q, got:\n%s", want, code)
		}
	}

	if strings.Contains(code, "QuotedRegexp") {
		t.Errorf("patterns with backreferences must not declare a regexp:\n%s", code)
	}
}

func TestGenerateIdentifierCollision(t *testing.T) {
	res := combine(t, combiner.Literal("($a:x)($A:y)"))

	_, err := Generate(Config{Package: "p", Patterns: []Pattern{{Name: "P", Result: res}}})
	if err == nil || !strings.Contains(err.Error(), "PGroupA") {
		t.Errorf("Generate() error = %v, want collision on PGroupA", err)
	}

	_, err = Generate(Config{Package: "p", Patterns: []Pattern{{Name: "x", Result: res}, {Name: "X", Result: res}}})
	if err == nil || !strings.Contains(err.Error(), "already declared") {
		t.Errorf("Generate() error = %v, want duplicate pattern identifiers", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.go")
	res := combine(t, combiner.Literal("a|b"))

	if err := Save(Config{Package: "p", Patterns: []Pattern{{Name: "AB", Result: res}}}, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), "ABRegexp") {
		t.Errorf("saved file missing ABRegexp:\n%s", data)
	}
}

func TestGenerateSkipsRegexpForUnsupportedSyntax(t *testing.T) {
	tests := []struct {
		name    string
		pattern combiner.Fragment
		comment string
	}{
		{"lookahead", combiner.Literal("a(?=b)"), "LookPattern uses syntax that package regexp does not support"},
		{"atomic group", combiner.Literal("(?>ab)c"), "LookPattern uses syntax that package regexp does not support"},
		{"host named reference", combiner.Literal(`(?<q>["'])\w+\k<q>`), "LookPattern uses backreferences"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Generate(Config{Package: "p", Patterns: []Pattern{{Name: "Look", Result: combine(t, tt.pattern)}}})
			if err != nil {
				t.Fatalf("Generate() error: %v", err)
			}
			code := string(src)
			if strings.Contains(code, "MustCompile") || strings.Contains(code, "LookRegexp") {
				t.Errorf("generated code must not compile an unsupported pattern:\n%s", code)
			}
			if !strings.Contains(code, tt.comment) {
				t.Errorf("generated code should contain %q, got:\n%s", tt.comment, code)
			}
		})
	}
}
