package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v2"

	"github.com/KromDaniel/regcombine/internal/definition"
	"github.com/KromDaniel/regcombine/pkg/regcombine"
)

func combineCommand(c *cli.Context) error {
	files, err := expandGlobs(c.Args().Slice())
	if err != nil {
		return err
	}

	for _, path := range files {
		f, err := definition.Load(path)
		if err != nil {
			return err
		}
		results, err := combineFile(c, f)
		if err != nil {
			return err
		}
		for i, p := range f.Patterns {
			fmt.Fprintf(c.App.Writer, "%s\t%s\n", p.Name, results[i].Combined)
		}
	}
	return nil
}

// combineFile combines every pattern of f, in order.
func combineFile(c *cli.Context, f *definition.File) ([]*regcombine.Result, error) {
	opts := regcombine.Options{Verbose: c.Bool("verbose"), LogOutput: c.App.ErrWriter}

	results := make([]*regcombine.Result, 0, len(f.Patterns))
	for _, p := range f.Patterns {
		res, err := regcombine.CombineWithOptions(p.Fragment, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: pattern %s: %w", f.Path, p.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// expandGlobs returns the sorted, deduplicated files matched by patterns.
// A pattern matching nothing is an error.
func expandGlobs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no definition files given")
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		for _, m := range matches {
			m = filepath.Clean(m)
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
