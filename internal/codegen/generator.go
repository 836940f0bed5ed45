package codegen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/regcombine/internal/combiner"
)

// HeaderComment is the first line of every generated file.
const HeaderComment = "Code generated by regcombine. DO NOT EDIT."

// Pattern is one combined pattern to declare.
type Pattern struct {
	Name   string
	Result *combiner.Result
}

// Config holds the configuration for one generated file.
type Config struct {
	Package  string
	Source   string // Definition file the patterns came from, mentioned in the file comment
	Patterns []Pattern
}

// Generate renders the declarations of every pattern in cfg as formatted Go source.
func Generate(cfg Config) ([]byte, error) {
	f := jen.NewFile(cfg.Package)
	f.HeaderComment(HeaderComment)
	if cfg.Source != "" {
		f.PackageComment(fmt.Sprintf("Patterns combined from %s.", cfg.Source))
	}

	declared := make(map[string]string)
	for _, p := range cfg.Patterns {
		if err := declare(declared, p.Name, PatternConst(p.Name), GroupCountConst(p.Name), RegexpVar(p.Name)); err != nil {
			return nil, err
		}
		names := p.Result.GroupNames()
		for _, group := range names {
			if err := declare(declared, p.Name, GroupConst(p.Name, group)); err != nil {
				return nil, err
			}
		}

		generatePattern(f, p, names)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render generated code: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w", err)
	}
	return src, nil
}

// Save generates cfg and writes it to path.
func Save(cfg Config, path string) error {
	src, err := Generate(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func declare(declared map[string]string, pattern string, idents ...string) error {
	for _, id := range idents {
		if owner, ok := declared[id]; ok {
			return fmt.Errorf("pattern %q: identifier %s already declared by pattern %q", pattern, id, owner)
		}
		declared[id] = pattern
	}
	return nil
}

func generatePattern(f *jen.File, p Pattern, names []string) {
	patternConst := PatternConst(p.Name)

	f.Commentf("%s is the combined source of the %s pattern.", patternConst, p.Name)
	f.Const().Id(patternConst).Op("=").Lit(p.Result.Combined)
	f.Line()

	defs := make([]jen.Code, 0, len(names)+1)
	for _, group := range names {
		defs = append(defs, jen.Id(GroupConst(p.Name, group)).Op("=").Lit(p.Result.Names[group]))
	}
	defs = append(defs, jen.Id(GroupCountConst(p.Name)).Op("=").Lit(p.Result.GroupCount))
	f.Comment("Capturing group numbers.")
	f.Const().Defs(defs...)
	f.Line()

	// Only patterns regexp accepts get a compiled var
	if _, err := p.Result.Compile(); err != nil {
		if errors.Is(err, combiner.ErrBackreferencesUnsupported) {
			f.Commentf("%s uses backreferences and cannot be compiled with package regexp.", patternConst)
		} else {
			f.Commentf("%s uses syntax that package regexp does not support and cannot be compiled with it.", patternConst)
		}
		f.Line()
		return
	}
	f.Var().Id(RegexpVar(p.Name)).Op("=").Qual("regexp", "MustCompile").Call(jen.Id(patternConst))
	f.Line()
}
