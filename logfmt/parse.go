package logfmt

import "strings"

// Keys the parser reserves for input it could not read as a pair.
const (
	JunkKey    = "junk"
	AbortedKey = "aborted"
)

// Entry is one parsed key/value token. Duplicate keys are preserved in
// encounter order.
type Entry struct {
	Key   string
	Value string
}

// Parse tokenizes one logfmt line. It never fails: after skipping
// whitespace, each position is read as a bare pair, a quoted pair, or
// failing both, a maximal non-whitespace run keyed "junk". Quoted
// values come back unescaped.
func Parse(line string) []Entry {
	var out []Entry
	pos := 0
	for {
		pos = skipSpace(line, pos)
		if pos >= len(line) {
			return out
		}
		if e, next, ok := scanBarePair(line, pos); ok {
			out = append(out, e)
			pos = next
			continue
		}
		if e, next, ok := scanQuotedPair(line, pos); ok {
			out = append(out, e)
			pos = next
			continue
		}
		if run, next, ok := scanJunk(line, pos); ok {
			out = append(out, Entry{Key: JunkKey, Value: run})
			pos = next
			continue
		}
		// Unreachable: the junk rule accepts any non-space run. Bail out
		// rather than spin if that ever stops holding.
		out = append(out,
			Entry{Key: JunkKey, Value: line[pos:]},
			Entry{Key: AbortedKey, Value: "true"},
		)
		return out
	}
}

// ParseMap folds Parse's entries into a map, later duplicates
// overwriting earlier ones. Lossy convenience view.
func ParseMap(line string) map[string]string {
	entries := Parse(line)
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return m
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func skipSpace(line string, pos int) int {
	for pos < len(line) && isSpace(line[pos]) {
		pos++
	}
	return pos
}

// scanIdent returns the end of the bare-token run starting at pos.
func scanIdent(line string, pos int) int {
	for pos < len(line) && identByte(line[pos]) {
		pos++
	}
	return pos
}

// boundary reports whether i sits at end of input or before whitespace.
func boundary(line string, i int) bool {
	return i >= len(line) || isSpace(line[i])
}

func scanBarePair(line string, pos int) (Entry, int, bool) {
	keyEnd := scanIdent(line, pos)
	if keyEnd == pos || keyEnd >= len(line) || line[keyEnd] != '=' {
		return Entry{}, 0, false
	}
	valEnd := scanIdent(line, keyEnd+1)
	if valEnd == keyEnd+1 || !boundary(line, valEnd) {
		return Entry{}, 0, false
	}
	return Entry{Key: line[pos:keyEnd], Value: line[keyEnd+1 : valEnd]}, valEnd, true
}

// scanQuotedPair reads ident="..." where the body is the minimal run to
// an unescaped closing quote. A pair not followed by whitespace or end
// of input does not match.
func scanQuotedPair(line string, pos int) (Entry, int, bool) {
	keyEnd := scanIdent(line, pos)
	if keyEnd == pos || keyEnd+1 >= len(line) || line[keyEnd] != '=' || line[keyEnd+1] != '"' {
		return Entry{}, 0, false
	}
	i := keyEnd + 2
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			if !boundary(line, i+1) {
				return Entry{}, 0, false
			}
			e := Entry{Key: line[pos:keyEnd], Value: unescape(line[keyEnd+2 : i])}
			return e, i + 1, true
		default:
			i++
		}
	}
	return Entry{}, 0, false
}

func scanJunk(line string, pos int) (string, int, bool) {
	end := pos
	for end < len(line) && !isSpace(line[end]) {
		end++
	}
	if end == pos {
		return "", 0, false
	}
	return line[pos:end], end, true
}

// unescape reverses quoteValue's escapes. Backslash sequences outside
// the escape table pass through verbatim.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			i++
			continue
		}
		switch s[i+1] {
		case '\\':
			sb.WriteByte('\\')
			i += 2
		case '"':
			sb.WriteByte('"')
			i += 2
		case 't':
			sb.WriteByte('\t')
			i += 2
		case 'n':
			sb.WriteByte('\n')
			i += 2
		case 'r':
			sb.WriteByte('\r')
			i += 2
		case 'x':
			v, width, ok := scanHexEscape(s, i)
			if !ok {
				sb.WriteByte(c)
				i++
				continue
			}
			if v <= 0xff {
				sb.WriteByte(byte(v))
			} else {
				sb.WriteRune(rune(v))
			}
			i += width
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// scanHexEscape reads \x{HEX...} at s[i], returning the value and the
// full width of the escape. The encoder emits one two-digit group per
// byte; groups from two digits up to the Unicode range are accepted.
func scanHexEscape(s string, i int) (v uint32, width int, ok bool) {
	j := i + 2
	if j >= len(s) || s[j] != '{' {
		return 0, 0, false
	}
	j++
	start := j
	for j < len(s) && s[j] != '}' {
		d, isHex := hexVal(s[j])
		if !isHex {
			return 0, 0, false
		}
		v = v<<4 | uint32(d)
		if v > 0x10ffff {
			return 0, 0, false
		}
		j++
	}
	if j >= len(s) || j-start < 2 {
		return 0, 0, false
	}
	return v, j + 1 - i, true
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
