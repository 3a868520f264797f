package logfmt

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// identByte reports whether b belongs to the bare-token alphabet:
// printable ASCII from '!' through '~' excluding '\', '"', and '='.
func identByte(b byte) bool {
	if b < 0x21 || b > 0x7e {
		return false
	}
	switch b {
	case '"', '=', '\\':
		return false
	}
	return true
}

// isIdent reports whether s is a non-empty run of bare-token bytes.
func isIdent(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !identByte(s[i]) {
			return false
		}
	}
	return true
}

// sanitizeKey forces a key into the bare-token alphabet. Empty keys
// become "~"; every out-of-alphabet character becomes one '?', so a
// multi-byte rune collapses to a single marker.
func sanitizeKey(key string) string {
	if len(key) == 0 {
		return "~"
	}
	if isIdent(key) {
		return key
	}
	var sb strings.Builder
	sb.Grow(len(key))
	for _, r := range key {
		if r < utf8.RuneSelf && identByte(byte(r)) {
			sb.WriteByte(byte(r))
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// quoteValue renders a scalar's text for output: bare when it already
// fits the alphabet, quoted with escapes otherwise.
func quoteValue(s string) string {
	if isIdent(s) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if unicode.IsControl(r) || r == '\u2028' || r == '\u2029' {
				writeHexEscape(&sb, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// writeHexEscape emits one \x{HH} group per UTF-8 byte of r.
func writeHexEscape(sb *strings.Builder, r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	for _, b := range buf[:n] {
		sb.WriteString(`\x{`)
		sb.WriteByte(hexDigits[b>>4])
		sb.WriteByte(hexDigits[b&0x0f])
		sb.WriteByte('}')
	}
}
