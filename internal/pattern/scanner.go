package pattern

import (
	"strings"
	"unicode/utf8"
)

// Scan tokenizes one pattern source into an ordered, gap-free sequence of tokens.
//
// Scanning happens in two steps. The first step classifies every span and counts
// capturing groups; numeric escapes are kept as raw digit runs. The second step
// splits each digit run into the longest backreference that targets an existing
// group of this fragment, followed by literal digits.
func Scan(src string) ([]Token, error) {
	s := &scanner{src: src}
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.resolveBackreferences()
}

type scanner struct {
	src    string
	pos    int
	depth  int
	groups int
	opened []int // offsets of currently open groups
	tokens []Token
}

func (s *scanner) emit(kind Kind, end int) *Token {
	s.tokens = append(s.tokens, Token{
		Kind:   kind,
		Text:   s.src[s.pos:end],
		Offset: s.pos,
		Depth:  s.depth,
	})
	s.pos = end
	return &s.tokens[len(s.tokens)-1]
}

func (s *scanner) open(kind Kind, end int) *Token {
	s.opened = append(s.opened, s.pos)
	tok := s.emit(kind, end)
	s.depth++
	if kind == KindGroupOpen || kind == KindNamedDefinition {
		s.groups++
	}
	return tok
}

func (s *scanner) run() error {
	for s.pos < len(s.src) {
		var err error
		switch c := s.src[s.pos]; c {
		case '\\':
			err = s.scanEscape()
		case '[':
			err = s.scanClass()
		case '(':
			err = s.scanOpen()
		case ')':
			if s.depth == 0 {
				return malformed(s.src, s.pos, "unmatched ')'")
			}
			s.depth--
			s.opened = s.opened[:len(s.opened)-1]
			s.emit(KindGroupClose, s.pos+1)
		case '|':
			s.emit(KindAlternation, s.pos+1)
		case '*', '+', '?':
			s.emit(KindQuantifier, s.quantifierEnd(s.pos+1))
		case '{':
			if end, ok := boundedQuantifierEnd(s.src, s.pos); ok {
				s.emit(KindQuantifier, s.quantifierEnd(end))
			} else {
				s.emit(KindLiteral, s.pos+1)
			}
		default:
			_, size := utf8.DecodeRuneInString(s.src[s.pos:])
			s.emit(KindLiteral, s.pos+size)
		}
		if err != nil {
			return err
		}
	}

	if s.depth != 0 {
		return malformed(s.src, s.opened[len(s.opened)-1], "missing ')'")
	}
	return nil
}

// quantifierEnd extends a quantifier ending at i by an optional lazy or possessive marker.
func (s *scanner) quantifierEnd(i int) int {
	if i < len(s.src) && (s.src[i] == '?' || s.src[i] == '+') {
		return i + 1
	}
	return i
}

// boundedQuantifierEnd matches {m}, {m,} or {m,n} at src[i] and returns the offset after '}'.
func boundedQuantifierEnd(src string, i int) (int, bool) {
	j := i + 1
	digits := 0
	for j < len(src) && isDigit(src[j]) {
		j++
		digits++
	}
	if digits == 0 || j >= len(src) {
		return 0, false
	}
	if src[j] == ',' {
		j++
		for j < len(src) && isDigit(src[j]) {
			j++
		}
	}
	if j < len(src) && src[j] == '}' {
		return j + 1, true
	}
	return 0, false
}

func (s *scanner) scanEscape() error {
	i := s.pos + 1
	if i >= len(s.src) {
		return malformed(s.src, s.pos, "trailing backslash")
	}

	c := s.src[i]
	end := i + 1
	switch {
	case c >= '1' && c <= '9':
		// Raw digit run; split in resolveBackreferences once the group count is known
		for end < len(s.src) && isDigit(s.src[end]) {
			end++
		}
		s.emit(KindBackreference, end)
		return nil
	case c == 'x':
		end = hexRunEnd(s.src, end, 2)
	case c == 'u':
		if end < len(s.src) && s.src[end] == '{' {
			return s.emitBraced(end, '}')
		}
		end = hexRunEnd(s.src, end, 4)
	case c == 'p' || c == 'P':
		if end < len(s.src) && s.src[end] == '{' {
			return s.emitBraced(end, '}')
		}
		if end < len(s.src) {
			end++
		}
	case c == 'k':
		if end < len(s.src) && s.src[end] == '<' {
			return s.emitBraced(end, '>')
		}
	case c == 'c':
		if end < len(s.src) && isLetter(s.src[end]) {
			end++
		}
	default:
		_, size := utf8.DecodeRuneInString(s.src[i:])
		end = i + size
	}

	s.emit(KindEscape, end)
	return nil
}

// emitBraced emits an escape whose argument is delimited from src[open] to the closing rune.
func (s *scanner) emitBraced(open int, closing byte) error {
	k := strings.IndexByte(s.src[open:], closing)
	if k < 0 {
		return malformed(s.src, s.pos, "unterminated escape")
	}
	s.emit(KindEscape, open+k+1)
	return nil
}

func (s *scanner) scanClass() error {
	i := s.pos + 1
	if i < len(s.src) && s.src[i] == '^' {
		i++
	}
	// A leading ']' is a member, not the terminator
	if i < len(s.src) && s.src[i] == ']' {
		i++
	}

	for i < len(s.src) {
		switch s.src[i] {
		case '\\':
			if i+1 >= len(s.src) {
				return malformed(s.src, i, "trailing backslash")
			}
			_, size := utf8.DecodeRuneInString(s.src[i+1:])
			i += 1 + size
		case '[':
			// POSIX member like [:alpha:]
			if i+1 < len(s.src) && s.src[i+1] == ':' {
				if k := strings.Index(s.src[i+2:], ":]"); k >= 0 {
					i += 2 + k + 2
					continue
				}
			}
			i++
		case ']':
			s.emit(KindCharClass, i+1)
			return nil
		default:
			i++
		}
	}

	return malformed(s.src, s.pos, "missing ']'")
}

func (s *scanner) scanOpen() error {
	i := s.pos + 1

	if i < len(s.src) && s.src[i] == '$' {
		name, end := scanName(s.src, i+1)
		if name != "" && end < len(s.src) {
			switch s.src[end] {
			case ':':
				s.open(KindNamedDefinition, end+1).Name = name
				return nil
			case ')':
				s.emit(KindNamedReference, end+1).Name = name
				return nil
			}
		}
	}

	if i < len(s.src) && s.src[i] == '?' {
		return s.scanExtension()
	}

	s.open(KindGroupOpen, i)
	return nil
}

// scanExtension handles the "(?" group forms.
func (s *scanner) scanExtension() error {
	j := s.pos + 2
	if j >= len(s.src) {
		return malformed(s.src, s.pos, "unterminated group")
	}

	switch s.src[j] {
	case ':', '>':
		s.open(KindNonCapturingOpen, j+1)
		return nil
	case '=', '!':
		s.open(KindNonCapturingOpen, j+1).Lookaround = true
		return nil
	case '<':
		if j+1 < len(s.src) && (s.src[j+1] == '=' || s.src[j+1] == '!') {
			s.open(KindNonCapturingOpen, j+2).Lookaround = true
			return nil
		}
		return s.openHostNamed(j+1, '>')
	case 'P':
		if j+1 < len(s.src) && s.src[j+1] == '<' {
			return s.openHostNamed(j+2, '>')
		}
		return malformed(s.src, s.pos, "unsupported group syntax")
	case '\'':
		return s.openHostNamed(j+1, '\'')
	}

	// Inline flags: (?i) or (?i-s:...)
	k := j
	for k < len(s.src) && (isLetter(s.src[k]) || s.src[k] == '-') {
		k++
	}
	if k > j && k < len(s.src) {
		switch s.src[k] {
		case ')':
			s.emit(KindInlineFlags, k+1)
			return nil
		case ':':
			s.open(KindNonCapturingOpen, k+1)
			return nil
		}
	}

	return malformed(s.src, s.pos, "unsupported group syntax")
}

// openHostNamed opens a natively named capturing group such as (?<name>...).
func (s *scanner) openHostNamed(start int, closing byte) error {
	name, end := scanName(s.src, start)
	if name == "" || end >= len(s.src) || s.src[end] != closing {
		return malformed(s.src, s.pos, "invalid group name")
	}
	s.open(KindGroupOpen, end+1)
	return nil
}

// resolveBackreferences splits raw digit runs into backreferences and literal digits.
func (s *scanner) resolveBackreferences() ([]Token, error) {
	out := make([]Token, 0, len(s.tokens))
	for _, tok := range s.tokens {
		if tok.Kind != KindBackreference {
			out = append(out, tok)
			continue
		}

		digits := tok.Text[1:]
		n, value := 0, 0
		for n < len(digits) {
			next := value*10 + int(digits[n]-'0')
			if next > s.groups {
				break
			}
			value = next
			n++
		}
		if n == 0 {
			return nil, malformed(s.src, tok.Offset, "backreference \\%c to undefined group", digits[0])
		}

		tok.Text = tok.Text[:n+1]
		tok.Ref = value
		out = append(out, tok)

		for i := n; i < len(digits); i++ {
			out = append(out, Token{
				Kind:   KindLiteral,
				Text:   digits[i : i+1],
				Offset: tok.Offset + 1 + i,
				Depth:  tok.Depth,
			})
		}
	}
	return out, nil
}

// scanName reads a [A-Za-z_][A-Za-z0-9_]* identifier starting at src[i].
func scanName(src string, i int) (string, int) {
	if i >= len(src) || !isNameStart(src[i]) {
		return "", i
	}
	end := i + 1
	for end < len(src) && IsNameContinue(src[end]) {
		end++
	}
	return src[i:end], end
}

// hexRunEnd consumes up to limit hex digits starting at i.
func hexRunEnd(src string, i, limit int) int {
	for n := 0; n < limit && i < len(src) && isHex(src[i]); n++ {
		i++
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameStart(c byte) bool {
	return c == '_' || isLetter(c)
}

// IsNameContinue reports whether c may follow the first byte of a group name.
func IsNameContinue(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

// IsName reports whether s is a valid group name.
func IsName(s string) bool {
	name, end := scanName(s, 0)
	return name != "" && end == len(s)
}
