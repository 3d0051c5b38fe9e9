package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/danieljhkim/transheet/internal/tree"
)

// neonKeywords are the literals NEON decodes as booleans or null. They are
// matched case-insensitively.
var neonKeywords = map[string]bool{
	"true": true, "false": true,
	"yes": true, "no": true,
	"on": true, "off": true,
	"null": true,
}

// NEON is the block-style NEON codec.
//
// Decoding covers the block syntax translation files use: indented
// key/value mappings, "- " list items, quoted and ''' multi-line strings,
// comments, and the empty collections [] and {}. Inline collections and
// entities are rejected. Like the YAML codec, scalars keep their literal text:
// "yes" stays "yes", null becomes "".
type NEON struct {
	indent int
}

// NewNEON creates a NEON codec. indent <= 0 selects DefaultIndent.
func NewNEON(indent int) *NEON {
	if indent <= 0 {
		indent = DefaultIndent
	}
	return &NEON{indent: indent}
}

// Encode writes t as block-style NEON. Strings NEON would read as another
// type, or that contain syntax characters, are double-quoted; multi-line
// strings use the ''' block form.
func (c *NEON) Encode(t *tree.Tree) ([]byte, error) {
	var b bytes.Buffer
	if err := c.writeMapping(&b, t, ""); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (c *NEON) writeMapping(b *bytes.Buffer, t *tree.Tree, indent string) error {
	inner := indent + strings.Repeat(" ", c.indent)
	for _, key := range t.Keys() {
		n, _ := t.Get(key)
		k, err := neonString(key)
		if err != nil {
			return err
		}
		b.WriteString(indent + k + ":")

		switch {
		case n.IsBranch() && n.Tree().IsEmpty():
			b.WriteString(" []\n")
		case n.IsBranch():
			b.WriteString("\n")
			if err := c.writeMapping(b, n.Tree(), inner); err != nil {
				return err
			}
		case neonBlockString(n.Value()):
			b.WriteString(" '''\n")
			for _, line := range strings.Split(n.Value(), "\n") {
				if line != "" {
					b.WriteString(inner + line)
				}
				b.WriteString("\n")
			}
			b.WriteString(indent + "'''\n")
		default:
			v, err := neonString(n.Value())
			if err != nil {
				return err
			}
			b.WriteString(" " + v + "\n")
		}
	}
	return nil
}

// neonBlockString reports whether s can be written as a ''' block and read
// back unchanged.
func neonBlockString(s string) bool {
	if !strings.Contains(s, "\n") || strings.ContainsAny(s, "\r") || strings.Contains(s, "'''") {
		return false
	}
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			return false
		}
	}
	return true
}

// neonString renders s on one line, bare when NEON reads it back as the
// same string and double-quoted otherwise.
func neonString(s string) (string, error) {
	if neonLiteral(s) {
		return s, nil
	}
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("failed to quote %q: %w", s, err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func neonLiteral(s string) bool {
	if s == "" || neonKeywords[strings.ToLower(s)] {
		return false
	}
	first := []rune(s)[0]
	// Digits and signs start numbers and dates; the rest are syntax.
	if unicode.IsDigit(first) || unicode.IsSpace(first) || strings.ContainsRune("#\"',:=[]{}()!`-+.@%&*|>?<;/\\~$^", first) {
		return false
	}
	if strings.HasSuffix(s, " ") || strings.HasSuffix(s, ":") {
		return false
	}
	for i, r := range s {
		if unicode.IsControl(r) || strings.ContainsRune(",=[]{}()#\"", r) {
			return false
		}
		if r == ':' && (s[i+1] == ' ' || s[i+1] == '\t') {
			return false
		}
	}
	return true
}

// Decode parses a block-style NEON document into a tree.
func (c *NEON) Decode(data []byte) (*tree.Tree, error) {
	text := strings.TrimPrefix(string(data), "\ufeff")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	p := &neonParser{lines: lines}
	if !p.skipBlank() {
		return nil, ErrEmptyDocument
	}
	indent, _ := splitIndent(p.lines[p.pos])
	line := p.pos + 1

	t, list, err := p.block(indent, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if p.skipBlank() {
		return nil, fmt.Errorf("failed to parse document: bad indentation at line %d", p.pos+1)
	}
	if list {
		return nil, fmt.Errorf("%w (line %d)", ErrNotMapping, line)
	}
	return t, nil
}

type neonParser struct {
	lines []string
	pos   int
}

func splitIndent(line string) (indent, rest string) {
	rest = strings.TrimLeft(line, " \t")
	return line[:len(line)-len(rest)], rest
}

// skipBlank moves past empty and comment lines and reports whether a line
// with content remains.
func (p *neonParser) skipBlank() bool {
	for ; p.pos < len(p.lines); p.pos++ {
		_, rest := splitIndent(p.lines[p.pos])
		if rest != "" && !strings.HasPrefix(rest, "#") {
			return true
		}
	}
	return false
}

// block reads consecutive entries at exactly indent. list reports whether
// they were "- " items, which are keyed by position.
func (p *neonParser) block(indent string, depth int) (t *tree.Tree, list bool, err error) {
	if depth > maxDepth {
		return nil, false, fmt.Errorf("nested deeper than %d levels at line %d", maxDepth, p.pos+1)
	}

	t = tree.New()
	for first := true; p.skipBlank(); first = false {
		ind, text := splitIndent(p.lines[p.pos])
		lineNo := p.pos + 1
		if len(ind) < len(indent) {
			break
		}
		if ind != indent {
			return nil, false, fmt.Errorf("bad indentation at line %d", lineNo)
		}

		item := text == "-" || strings.HasPrefix(text, "- ") || strings.HasPrefix(text, "-\t")
		if first {
			list = item
		} else if item != list {
			return nil, false, fmt.Errorf("list items mixed with keys at line %d", lineNo)
		}

		var key, rest string
		if item {
			key = strconv.Itoa(t.Len())
			rest = strings.TrimLeft(text[1:], " \t")
		} else if key, rest, err = splitKey(text, lineNo); err != nil {
			return nil, false, err
		}
		if _, dup := t.Get(key); dup {
			return nil, false, fmt.Errorf("duplicate key %q at line %d", key, lineNo)
		}

		p.pos++
		node, err := p.value(rest, ind, lineNo, depth)
		if err != nil {
			return nil, false, err
		}
		t.Set(key, node)
	}
	return t, list, nil
}

func (p *neonParser) value(rest, indent string, lineNo, depth int) (tree.Node, error) {
	switch {
	case rest == "" || strings.HasPrefix(rest, "#"):
		if p.skipBlank() {
			ind, _ := splitIndent(p.lines[p.pos])
			if len(ind) > len(indent) && strings.HasPrefix(ind, indent) {
				sub, _, err := p.block(ind, depth+1)
				if err != nil {
					return tree.Node{}, err
				}
				return tree.Branch(sub), nil
			}
		}
		return tree.Leaf(""), nil

	case rest == "'''" || rest == `"""`:
		return p.multiline(rest, lineNo)

	case rest[0] == '\'' || rest[0] == '"':
		s, tail, err := unquoteNEON(rest, lineNo)
		if err != nil {
			return tree.Node{}, err
		}
		if tail = strings.TrimSpace(tail); tail != "" && !strings.HasPrefix(tail, "#") {
			return tree.Node{}, fmt.Errorf("unexpected %q after string at line %d", tail, lineNo)
		}
		return tree.Leaf(s), nil
	}

	lit := stripComment(rest)
	switch {
	case lit == "[]" || lit == "{}":
		return tree.Branch(tree.New()), nil
	case lit[0] == '[' || lit[0] == '{' || lit[0] == '(':
		return tree.Node{}, fmt.Errorf("inline collections are not supported (line %d)", lineNo)
	case strings.Contains(lit, ": ") || strings.HasSuffix(lit, ":"):
		return tree.Node{}, fmt.Errorf("unexpected ':' at line %d", lineNo)
	case strings.EqualFold(lit, "null"):
		return tree.Leaf(""), nil
	}
	return tree.Leaf(lit), nil
}

// multiline reads a ''' or """ block. The indentation of its first non-blank
// line is removed from every line.
func (p *neonParser) multiline(delim string, lineNo int) (tree.Node, error) {
	var body []string
	for ; p.pos < len(p.lines); p.pos++ {
		if strings.TrimSpace(p.lines[p.pos]) != delim {
			body = append(body, p.lines[p.pos])
			continue
		}
		p.pos++

		prefix := ""
		for _, line := range body {
			if strings.TrimSpace(line) != "" {
				prefix, _ = splitIndent(line)
				break
			}
		}
		for i, line := range body {
			body[i] = strings.TrimPrefix(line, prefix)
		}
		s := strings.Join(body, "\n")
		if delim == `"""` {
			v, err := unescapeNEON(s)
			if err != nil {
				return tree.Node{}, fmt.Errorf("%v in string starting at line %d", err, lineNo)
			}
			return tree.Leaf(v), nil
		}
		return tree.Leaf(s), nil
	}
	return tree.Node{}, fmt.Errorf("unterminated %s string starting at line %d", delim, lineNo)
}

func splitKey(text string, lineNo int) (key, rest string, err error) {
	if text[0] == '\'' || text[0] == '"' {
		key, tail, err := unquoteNEON(text, lineNo)
		if err != nil {
			return "", "", err
		}
		if !strings.HasPrefix(tail, ":") || (len(tail) > 1 && tail[1] != ' ' && tail[1] != '\t') {
			return "", "", fmt.Errorf("expected ':' after key at line %d", lineNo)
		}
		return key, strings.TrimLeft(tail[1:], " \t"), nil
	}

	for i := 0; i < len(text); i++ {
		if text[i] == ':' && (i+1 == len(text) || text[i+1] == ' ' || text[i+1] == '\t') {
			key = strings.TrimRight(text[:i], " \t")
			if key == "" {
				break
			}
			return key, strings.TrimLeft(text[i+1:], " \t"), nil
		}
	}
	return "", "", fmt.Errorf("expected 'key: value' at line %d", lineNo)
}

// stripComment cuts a bare value at a '#' that follows whitespace.
func stripComment(s string) string {
	for i := 1; i < len(s); i++ {
		if s[i] == '#' && (s[i-1] == ' ' || s[i-1] == '\t') {
			s = s[:i]
			break
		}
	}
	return strings.TrimRight(s, " \t")
}

// unquoteNEON reads the quoted string at the start of s and returns it with
// the text after the closing quote.
func unquoteNEON(s string, lineNo int) (value, tail string, err error) {
	if s[0] == '\'' {
		var b strings.Builder
		for i := 1; i < len(s); i++ {
			if s[i] != '\'' {
				b.WriteByte(s[i])
				continue
			}
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i++
				continue
			}
			return b.String(), s[i+1:], nil
		}
		return "", "", fmt.Errorf("unterminated string at line %d", lineNo)
	}

	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			v, err := unescapeNEON(s[1:i])
			if err != nil {
				return "", "", fmt.Errorf("%v at line %d", err, lineNo)
			}
			return v, s[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated string at line %d", lineNo)
}

func unescapeNEON(s string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("dangling escape")
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case 'b':
			b.WriteByte('\b')
		case '"', '\\', '/':
			b.WriteByte(s[i])
		case '_':
			b.WriteRune(' ')
		case 'x':
			if i+3 > len(s) {
				return "", fmt.Errorf("invalid \\x escape")
			}
			n, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("invalid \\x escape")
			}
			b.WriteByte(byte(n))
			i += 2
		case 'u':
			r, width, err := decodeUnicodeEscape(s[i+1:])
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += width
		default:
			return "", fmt.Errorf("invalid escape \\%c", s[i])
		}
	}
	return b.String(), nil
}

// decodeUnicodeEscape reads the part of a \u escape after the 'u': either
// {hex} or four hex digits, joining a UTF-16 surrogate pair when one
// follows. width is the number of bytes consumed.
func decodeUnicodeEscape(s string) (r rune, width int, err error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0, fmt.Errorf("invalid \\u escape")
		}
		n, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid \\u escape")
		}
		return rune(n), end + 1, nil
	}

	hex4 := func(s string) (rune, bool) {
		if len(s) < 4 {
			return 0, false
		}
		n, err := strconv.ParseUint(s[:4], 16, 16)
		return rune(n), err == nil
	}
	r, ok := hex4(s)
	if !ok {
		return 0, 0, fmt.Errorf("invalid \\u escape")
	}
	if utf16.IsSurrogate(r) && strings.HasPrefix(s[4:], `\u`) {
		if low, ok := hex4(s[6:]); ok {
			if pair := utf16.DecodeRune(r, low); pair != unicode.ReplacementChar {
				return pair, 10, nil
			}
		}
	}
	return r, 4, nil
}
