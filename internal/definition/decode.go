package definition

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/KromDaniel/regcombine/internal/combiner"
)

// rawFile is the shape shared by the JSON and TOML formats. Fragments are
// decoded generically and converted afterwards.
type rawFile struct {
	Package  string       `json:"package" toml:"package"`
	Patterns []rawPattern `json:"patterns" toml:"patterns"`
}

type rawPattern struct {
	Name     string      `json:"name" toml:"name"`
	Fragment interface{} `json:"fragment" toml:"fragment"`
}

func parseJSON(data []byte) (*File, error) {
	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON definitions: %w", err)
	}
	return raw.build()
}

func parseTOML(data []byte) (*File, error) {
	var raw rawFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML definitions: %w", err)
	}
	return raw.build()
}

func (raw *rawFile) build() (*File, error) {
	f := &File{Package: raw.Package, Patterns: make([]Pattern, 0, len(raw.Patterns))}
	for i, rp := range raw.Patterns {
		frag, err := fragment(rp.Fragment)
		if err != nil {
			return nil, fmt.Errorf("pattern %d (%s): %w", i, rp.Name, err)
		}
		f.Patterns = append(f.Patterns, Pattern{Name: rp.Name, Fragment: frag})
	}
	return f, nil
}

// fragment converts a generically decoded value: a string is a literal, an
// array a sequence and an object a group.
func fragment(v interface{}) (combiner.Fragment, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case string:
		return combiner.Literal(n), nil
	case []interface{}:
		seq := make(combiner.Sequence, 0, len(n))
		for i, item := range n {
			frag, err := fragment(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			seq = append(seq, frag)
		}
		return seq, nil
	case map[string]interface{}:
		return group(n)
	default:
		return nil, fmt.Errorf("unsupported fragment value of type %T", v)
	}
}

func group(fields map[string]interface{}) (*combiner.Group, error) {
	g := &combiner.Group{}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := fields[key]
		var ok bool
		switch key {
		case "items":
			items, err := groupItems(value)
			if err != nil {
				return nil, err
			}
			g.Items, ok = items, true
		case "alternate":
			g.Alternate, ok = value.(bool)
		case "capture":
			g.Capture, ok = value.(bool)
		case "name":
			g.Name, ok = value.(string)
		case "repeat":
			g.Repeat, ok = value.(string)
		default:
			return nil, fmt.Errorf("unknown group field %q", key)
		}
		if !ok {
			return nil, fmt.Errorf("group field %q has unexpected type %T", key, value)
		}
	}
	return g, nil
}

// groupItems accepts a single fragment or a list of them.
func groupItems(v interface{}) ([]combiner.Fragment, error) {
	list, ok := v.([]interface{})
	if !ok {
		frag, err := fragment(v)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		return []combiner.Fragment{frag}, nil
	}

	items := make([]combiner.Fragment, 0, len(list))
	for i, item := range list {
		frag, err := fragment(item)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, frag)
	}
	return items, nil
}
