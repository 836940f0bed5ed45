package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/KromDaniel/regcombine/internal/codegen"
	"github.com/KromDaniel/regcombine/internal/definition"
)

type generateStatus int

const (
	statusWritten generateStatus = iota
	statusUnchanged
)

func (s generateStatus) String() string {
	if s == statusUnchanged {
		return "unchanged"
	}
	return "wrote"
}

type generated struct {
	output string
	status generateStatus
}

func generateCommand(c *cli.Context) error {
	files, err := expandGlobs(c.Args().Slice())
	if err != nil {
		return err
	}
	return generateFiles(c, files)
}

// generateFiles generates every file concurrently and reports the outcome in input order.
func generateFiles(c *cli.Context, files []string) error {
	outputs := make(map[string]string, len(files))
	for _, path := range files {
		out := outputPath(c.String("out"), path)
		if prev, ok := outputs[out]; ok {
			return fmt.Errorf("%s and %s both generate %s", prev, path, out)
		}
		outputs[out] = path
	}

	g, ctx := errgroup.WithContext(c.Context)
	g.SetLimit(max(c.Int("jobs"), 1))

	var mu sync.Mutex
	done := make(map[string]generated, len(files))
	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := generateFile(c, path)
			if err != nil {
				return err
			}
			mu.Lock()
			done[path] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, path := range files {
		res := done[path]
		fmt.Fprintf(c.App.Writer, "%s %s\n", res.status, res.output)
	}
	return nil
}

func generateFile(c *cli.Context, path string) (generated, error) {
	f, err := definition.Load(path)
	if err != nil {
		return generated{}, err
	}
	results, err := combineFile(c, f)
	if err != nil {
		return generated{}, err
	}

	cfg := codegen.Config{Package: f.Package, Source: filepath.Base(path)}
	for i, p := range f.Patterns {
		cfg.Patterns = append(cfg.Patterns, codegen.Pattern{Name: p.Name, Result: results[i]})
	}
	src, err := codegen.Generate(cfg)
	if err != nil {
		return generated{}, fmt.Errorf("%s: %w", path, err)
	}

	out := outputPath(c.String("out"), path)
	written, err := writeIfChanged(out, src)
	if err != nil {
		return generated{}, err
	}
	if !written {
		return generated{output: out, status: statusUnchanged}, nil
	}
	return generated{output: out, status: statusWritten}, nil
}

// outputPath maps a definition file to the Go file generated from it.
func outputPath(outDir, path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".go"
	if outDir == "" {
		return filepath.Join(filepath.Dir(path), name)
	}
	return filepath.Join(outDir, name)
}

// writeIfChanged writes src to path unless the file already holds the same content.
func writeIfChanged(path string, src []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if xxhash.Sum64(existing) == xxhash.Sum64(src) {
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
