package combiner

import (
	"fmt"
	"io"
	"strings"

	"github.com/KromDaniel/regcombine/internal/pattern"
)

// Config holds the configuration for one combination.
type Config struct {
	Verbose   bool      // Log wrapping and numbering decisions
	LogOutput io.Writer // Destination of verbose logs, stderr when nil
}

// result is the combination of one fragment. It only lives until its parent joins it.
type result struct {
	text string
	// rootAlt reports a "|" at depth zero of text.
	rootAlt bool
	// enclosed reports that text is exactly one group.
	enclosed bool
	// atomic reports that a quantifier may follow text without grouping.
	atomic bool
	// flags reports an inline flag group at depth zero, such as "(?i)", whose flags
	// would reach whatever is joined after text.
	flags bool
	// tailRef is the offset of a backreference or \0 ending text, -1 if there is none.
	// A digit concatenated after it would change its meaning.
	tailRef int
	groups  int
}

var empty = result{tailRef: -1}

type combiner struct {
	num    *numbering
	log    *Logger
	active map[interface{}]bool // composite fragments on the current path
	depth  int
}

// sequenceKey identifies a Sequence by its backing array.
type sequenceKey struct {
	first *Fragment
	n     int
}

// Combine merges root into a single pattern.
func Combine(root Fragment, cfg Config) (*Result, error) {
	log := NewLogger(cfg.Verbose)
	if cfg.LogOutput != nil {
		log.SetOutput(cfg.LogOutput)
	}

	c := &combiner{
		num:    newNumbering(log),
		log:    log,
		active: make(map[interface{}]bool),
	}

	log.Section("Combine")
	r, err := c.combine(root)
	if err != nil {
		return nil, err
	}
	log.Log("combined: %s (%d groups)", r.text, c.num.count)

	return &Result{
		Combined:          r.text,
		GroupCount:        c.num.count,
		Names:             c.num.names,
		HasBackreferences: c.num.refs > 0,
	}, nil
}

func (c *combiner) combine(f Fragment) (result, error) {
	switch n := f.(type) {
	case nil:
		return empty, nil
	case Literal:
		return c.literal(string(n))
	case Sequence:
		if len(n) == 0 {
			return empty, nil
		}
		leave, err := c.enter(sequenceKey{first: &n[0], n: len(n)}, "sequence")
		if err != nil {
			return empty, err
		}
		defer leave()
		return c.sequence(n)
	case *Group:
		if n == nil {
			return empty, nil
		}
		leave, err := c.enter(n, "group")
		if err != nil {
			return empty, err
		}
		defer leave()
		return c.group(n)
	default:
		return empty, fmt.Errorf("unsupported fragment type %T", f)
	}
}

// enter marks a composite fragment as being combined. Reaching it again before
// leave is called means the tree loops back on itself.
func (c *combiner) enter(key interface{}, kind string) (func(), error) {
	if c.active[key] {
		return nil, &CyclicFragmentError{Depth: c.depth, Kind: kind}
	}
	c.active[key] = true
	c.depth++
	unnest := c.log.Nest()
	return func() {
		unnest()
		c.depth--
		delete(c.active, key)
	}, nil
}

// literal emits a literal fragment, assigning absolute numbers to its groups and
// rewriting its references against them.
func (c *combiner) literal(src string) (result, error) {
	a, err := pattern.Analyze(src)
	if err != nil {
		return empty, err
	}

	base := c.num.count
	var sb strings.Builder
	tailRef := -1

	for i, tok := range a.Tokens {
		digitFollows := i+1 < len(a.Tokens) && startsWithDigit(a.Tokens[i+1].Text)

		switch tok.Kind {
		case pattern.KindGroupOpen:
			c.num.next()
			sb.WriteString(tok.Text)
		case pattern.KindNamedDefinition:
			if err := c.num.bind(tok.Name, c.num.next()); err != nil {
				return empty, err
			}
			sb.WriteByte('(')
		case pattern.KindBackreference:
			target := base + tok.Ref
			if target != tok.Ref {
				c.log.Log("rewrite \\%d -> \\%d in %q", tok.Ref, target, src)
			}
			if i == len(a.Tokens)-1 {
				tailRef = sb.Len()
			}
			sb.WriteString(c.num.reference(target, digitFollows))
		case pattern.KindNamedReference:
			target, err := c.num.lookup(tok.Name, src, tok.Offset)
			if err != nil {
				return empty, err
			}
			c.log.Log("resolve ($%s) -> \\%d", tok.Name, target)
			if i == len(a.Tokens)-1 {
				tailRef = sb.Len()
			}
			sb.WriteString(c.num.reference(target, digitFollows))
		case pattern.KindEscape:
			if tok.Text == `\0` && i == len(a.Tokens)-1 {
				tailRef = sb.Len()
			}
			if tok.IsHostReference() {
				c.num.refs++
			}
			sb.WriteString(tok.Text)
		default:
			sb.WriteString(tok.Text)
		}
	}

	return result{
		text:     sb.String(),
		rootAlt:  a.HasRootAlternation,
		enclosed: a.Enclosed,
		atomic:   a.Atomic,
		flags:    a.InlineFlags,
		tailRef:  tailRef,
		groups:   a.GroupCount,
	}, nil
}

func (c *combiner) sequence(items []Fragment) (result, error) {
	parts := make([]result, 0, len(items))
	for _, item := range items {
		r, err := c.combine(item)
		if err != nil {
			return empty, err
		}
		parts = append(parts, r)
	}
	return c.concat(parts), nil
}

// concat joins parts by concatenation. A part with a root alternation is wrapped
// in (?:...) unless it is the only non-empty part or is already one group.
func (c *combiner) concat(parts []result) result {
	nonEmpty := make([]result, 0, len(parts))
	groups := 0
	for _, p := range parts {
		groups += p.groups
		if p.text != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	switch len(nonEmpty) {
	case 0:
		return result{tailRef: -1, groups: groups}
	case 1:
		r := nonEmpty[0]
		r.groups = groups
		return r
	}

	texts := make([]string, len(nonEmpty))
	tails := make([]int, len(nonEmpty))
	for i, p := range nonEmpty {
		texts[i], tails[i] = p.text, p.tailRef
		if p.rootAlt && !p.enclosed {
			c.log.Log("wrap %q in (?:...) before concatenation", p.text)
			texts[i], tails[i] = "(?:"+p.text+")", -1
		} else if p.flags && i < len(nonEmpty)-1 {
			c.log.Log("wrap %q in (?:...) to end its inline flags", p.text)
			texts[i], tails[i] = "(?:"+p.text+")", -1
		}
		if i > 0 && tails[i-1] >= 0 && startsWithDigit(texts[i]) {
			prev, at := texts[i-1], tails[i-1]
			c.log.Log("group trailing %q before digit %q", prev[at:], texts[i][:1])
			texts[i-1], tails[i-1] = prev[:at]+"(?:"+prev[at:]+")", -1
		}
	}

	text := strings.Join(texts, "")
	last := len(texts) - 1
	tailRef := -1
	if tails[last] >= 0 {
		tailRef = len(text) - len(texts[last]) + tails[last]
	}
	// A wrapped last part carries no flags out of the join
	flags := nonEmpty[last].flags && texts[last] == nonEmpty[last].text

	return result{text: text, flags: flags, tailRef: tailRef, groups: groups}
}

// alternate joins parts with "|". Parts that are alternations themselves are
// spliced in as they are: "|" is associative, so no grouping is required.
// Inline flags reach the following alternatives, so a part setting them is
// wrapped unless it is the last one.
func (c *combiner) alternate(parts []result) result {
	switch len(parts) {
	case 0:
		return empty
	case 1:
		return parts[0]
	}

	texts := make([]string, len(parts))
	groups := 0
	for i, p := range parts {
		texts[i] = p.text
		groups += p.groups
		switch {
		case p.flags && i < len(parts)-1:
			c.log.Log("wrap %q in (?:...) to end its inline flags", p.text)
			texts[i] = "(?:" + p.text + ")"
		case p.rootAlt:
			c.log.Log("flatten %q into enclosing alternation", p.text)
		}
	}

	return result{
		text:    strings.Join(texts, "|"),
		rootAlt: true,
		flags:   parts[len(parts)-1].flags,
		tailRef: -1,
		groups:  groups,
	}
}

func (c *combiner) group(g *Group) (result, error) {
	if g.Repeat != "" && !pattern.IsQuantifier(g.Repeat) {
		return empty, &MalformedPatternError{Fragment: g.Repeat, Reason: "repeat is not a single quantifier"}
	}

	// The group's own "(" precedes everything inside it, so it takes its number first.
	captured := g.Name != "" || g.Capture
	if captured {
		number := c.num.next()
		if g.Name != "" {
			if err := c.num.bind(g.Name, number); err != nil {
				return empty, err
			}
		} else {
			c.log.Log("group %d captures anonymously", number)
		}
	}

	parts := make([]result, 0, len(g.Items))
	for _, item := range g.Items {
		r, err := c.combine(item)
		if err != nil {
			return empty, err
		}
		parts = append(parts, r)
	}

	var r result
	if g.Alternate {
		r = c.alternate(parts)
	} else {
		r = c.concat(parts)
	}

	if captured {
		r = result{
			text:     "(" + r.text + ")",
			enclosed: true,
			atomic:   true,
			tailRef:  -1,
			groups:   r.groups + 1,
		}
	}

	if g.Repeat != "" {
		text := r.text
		if !r.atomic {
			text = "(?:" + text + ")"
		}
		r = result{text: text + g.Repeat, tailRef: -1, groups: r.groups}
	}

	return r, nil
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
