package definition

import (
	"bytes"
	"fmt"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/KromDaniel/regcombine/internal/combiner"
)

// parseKDL reads the node form:
//
//	package "dates"
//	pattern "Date" {
//	    group name="year" { literal r"\d{4}" }
//	    literal "-"
//	    sequence { literal r"\d{2}" }
//	}
func parseKDL(data []byte) (*File, error) {
	doc, err := kdl.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL definitions: %w", err)
	}

	f := &File{}
	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "package":
			s, ok := firstStringArg(n)
			if !ok {
				return nil, fmt.Errorf("package: expected a string argument")
			}
			f.Package = s
		case "pattern":
			name, ok := firstStringArg(n)
			if !ok {
				return nil, fmt.Errorf("pattern: expected a name argument")
			}
			frag, err := childFragment(n.Children)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", name, err)
			}
			f.Patterns = append(f.Patterns, Pattern{Name: name, Fragment: frag})
		default:
			return nil, fmt.Errorf("unknown top-level node %q", nodeName(n))
		}
	}
	return f, nil
}

// childFragment turns a node list into one fragment: a sequence unless there
// is exactly one child.
func childFragment(children []*document.Node) (combiner.Fragment, error) {
	frags, err := nodeFragments(children)
	if err != nil {
		return nil, err
	}
	switch len(frags) {
	case 0:
		return nil, nil
	case 1:
		return frags[0], nil
	default:
		return combiner.Sequence(frags), nil
	}
}

func nodeFragments(nodes []*document.Node) ([]combiner.Fragment, error) {
	frags := make([]combiner.Fragment, 0, len(nodes))
	for _, n := range nodes {
		frag, err := nodeFragment(n)
		if err != nil {
			return nil, err
		}
		frags = append(frags, frag)
	}
	return frags, nil
}

func nodeFragment(n *document.Node) (combiner.Fragment, error) {
	switch nodeName(n) {
	case "literal":
		s, ok := firstStringArg(n)
		if !ok || len(n.Arguments) != 1 {
			return nil, fmt.Errorf("literal: expected exactly one string argument")
		}
		return combiner.Literal(s), nil
	case "sequence":
		frags, err := nodeFragments(n.Children)
		if err != nil {
			return nil, fmt.Errorf("sequence: %w", err)
		}
		return combiner.Sequence(frags), nil
	case "group":
		g := &combiner.Group{}
		g.Alternate, _ = propBool(n, "alternate")
		g.Capture, _ = propBool(n, "capture")
		g.Name, _ = propString(n, "name")
		g.Repeat, _ = propString(n, "repeat")
		for key := range n.Properties {
			switch key {
			case "alternate", "capture", "name", "repeat":
			default:
				return nil, fmt.Errorf("group: unknown property %q", key)
			}
		}
		items, err := nodeFragments(n.Children)
		if err != nil {
			return nil, fmt.Errorf("group: %w", err)
		}
		g.Items = items
		return g, nil
	default:
		return nil, fmt.Errorf("unknown fragment node %q", nodeName(n))
	}
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	s, ok := n.Arguments[0].Value.(string)
	return s, ok
}

func propString(n *document.Node, key string) (string, bool) {
	if n.Properties == nil {
		return "", false
	}
	if v, ok := n.Properties[key]; ok {
		if s, ok2 := v.Value.(string); ok2 {
			return s, true
		}
	}
	return "", false
}

func propBool(n *document.Node, key string) (bool, bool) {
	if n.Properties == nil {
		return false, false
	}
	if v, ok := n.Properties[key]; ok {
		if b, ok2 := v.Value.(bool); ok2 {
			return b, true
		}
	}
	return false, false
}
