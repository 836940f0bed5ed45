// Package definition loads named fragment trees from JSON, TOML and KDL files.
package definition

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KromDaniel/regcombine/internal/combiner"
	"github.com/KromDaniel/regcombine/internal/pattern"
)

// DefaultPackage is the package of generated code when a file declares none.
const DefaultPackage = "patterns"

// ErrUnknownFormat is returned for files whose extension names no supported format.
var ErrUnknownFormat = errors.New("unknown definition format")

// Format is a definition file syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatKDL  Format = "kdl"
)

// Pattern is one named fragment tree.
type Pattern struct {
	Name     string
	Fragment combiner.Fragment
}

// File is a parsed definition file.
type File struct {
	Path     string
	Package  string
	Patterns []Pattern
}

// FormatOf returns the format selected by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".kdl":
		return FormatKDL, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Load reads and validates the definition file at path.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}

	f, err := Parse(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse decodes and validates definitions written in format.
func Parse(format Format, data []byte) (*File, error) {
	var (
		f   *File
		err error
	)
	switch format {
	case FormatJSON:
		f, err = parseJSON(data)
	case FormatTOML:
		f, err = parseTOML(data)
	case FormatKDL:
		f, err = parseKDL(data)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}

	if f.Package == "" {
		f.Package = DefaultPackage
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks that the package and every pattern name can be used as Go identifiers
// and that pattern names are unique.
func (f *File) Validate() error {
	if !pattern.IsName(f.Package) {
		return fmt.Errorf("package %q is not a valid identifier", f.Package)
	}
	if len(f.Patterns) == 0 {
		return errors.New("no patterns defined")
	}

	seen := make(map[string]bool, len(f.Patterns))
	for i, p := range f.Patterns {
		if p.Name == "" {
			return fmt.Errorf("pattern %d: name cannot be empty", i)
		}
		if !pattern.IsName(p.Name) || p.Name[0] == '_' {
			return fmt.Errorf("pattern %d: name %q must start with a letter and contain only letters, digits and underscores", i, p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("pattern %d: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
		if p.Fragment == nil {
			return fmt.Errorf("pattern %q: fragment cannot be empty", p.Name)
		}
	}
	return nil
}
