package combiner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KromDaniel/regcombine/internal/pattern"
)

type segmentKind int

const (
	segmentLiteral segmentKind = iota
	segmentIndex               // $N or ${N}; 0 is the whole match
	segmentName                // $name or ${name}
)

// segment is one piece of a replacement template.
type segment struct {
	kind    segmentKind
	literal string
	index   int
	name    string
	offset  int
}

// ExpandTemplate rewrites a replacement template written against group names
// into the numeric "${N}" form understood by regexp.Expand and ReplaceAllString.
//
// Template syntax:
//   - $name or ${name}: group declared with ($name:...) or Group.Name
//   - $N or ${N}: group by absolute number, $0 is the whole match
//   - $$: literal dollar sign
//   - a "$" not starting a reference is kept as is
func (r *Result) ExpandTemplate(tmpl string) (string, error) {
	segments, err := parseTemplate(tmpl)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, seg := range segments {
		switch seg.kind {
		case segmentLiteral:
			sb.WriteString(strings.ReplaceAll(seg.literal, "$", "$$"))
		case segmentIndex:
			if seg.index > r.GroupCount {
				return "", fmt.Errorf("template reference $%d at position %d out of range (%d groups)", seg.index, seg.offset, r.GroupCount)
			}
			fmt.Fprintf(&sb, "${%d}", seg.index)
		case segmentName:
			number, ok := r.Names[seg.name]
			if !ok {
				return "", &UndefinedGroupNameError{Name: seg.name, Suggestion: suggestName(seg.name, r.Names)}
			}
			fmt.Fprintf(&sb, "${%d}", number)
		}
	}
	return sb.String(), nil
}

func parseTemplate(tmpl string) ([]segment, error) {
	var segments []segment
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{kind: segmentLiteral, literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(tmpl); {
		if tmpl[i] != '$' || i+1 >= len(tmpl) {
			lit.WriteByte(tmpl[i])
			i++
			continue
		}

		next := tmpl[i+1]
		switch {
		case next == '$':
			lit.WriteByte('$')
			i += 2
		case next == '{':
			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("at position %d: unclosed ${", i)
			}
			seg, err := braced(tmpl[i+2:i+end], i)
			if err != nil {
				return nil, err
			}
			flush()
			segments = append(segments, seg)
			i += end + 1
		case next >= '0' && next <= '9':
			end := i + 1
			for end < len(tmpl) && tmpl[end] >= '0' && tmpl[end] <= '9' {
				end++
			}
			index, err := strconv.Atoi(tmpl[i+1 : end])
			if err != nil {
				return nil, fmt.Errorf("at position %d: %w", i, err)
			}
			flush()
			segments = append(segments, segment{kind: segmentIndex, index: index, offset: i})
			i = end
		case pattern.IsName(tmpl[i+1 : i+2]):
			end := i + 2
			for end < len(tmpl) && pattern.IsNameContinue(tmpl[end]) {
				end++
			}
			flush()
			segments = append(segments, segment{kind: segmentName, name: tmpl[i+1 : end], offset: i})
			i = end
		default:
			lit.WriteByte('$')
			i++
		}
	}

	flush()
	return segments, nil
}

// braced parses the content of a ${...} reference found at offset.
func braced(content string, offset int) (segment, error) {
	if content == "" {
		return segment{}, fmt.Errorf("at position %d: empty ${}", offset)
	}
	if content[0] >= '0' && content[0] <= '9' {
		index, err := strconv.Atoi(content)
		if err != nil {
			return segment{}, fmt.Errorf("at position %d: invalid group reference ${%s}", offset, content)
		}
		return segment{kind: segmentIndex, index: index, offset: offset}, nil
	}
	if !pattern.IsName(content) {
		return segment{}, fmt.Errorf("at position %d: invalid group reference ${%s}", offset, content)
	}
	return segment{kind: segmentName, name: content, offset: offset}, nil
}
