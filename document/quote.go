package document

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidString is returned by UnescapeString when its input is not a
// well-formed quoted-string body (escapes already stripped of their
// delimiting quotes by the tokenizer).
var ErrInvalidString = errors.New("invalid quoted string body")

var noEscapeTable = [256]bool{}
var hexTable = [256]rune{}

func init() {
	for i := 0; i <= 0x7e; i++ {
		noEscapeTable[i] = i >= 0x20 && i != '\\' && i != '"'
	}
	for r := '0'; r <= '9'; r++ {
		hexTable[r] = r - '0'
	}
	for r := 'a'; r <= 'f'; r++ {
		hexTable[r] = r - 'a' + 10
	}
	for r := 'A'; r <= 'F'; r++ {
		hexTable[r] = r - 'A' + 10
	}
}

// AppendQuotedString appends s to b in KDL quoted-string notation, escaping
// control characters, backslash, and the quote character; everything else
// (including non-ASCII runes) is emitted literally, per KDL 2.0.0's minimal
// escaping rule.
//
// Control characters, backslash, and the quote character are escaped per
// KDL 2.0.0's escape set (no "/" escape, adds "\s").
func AppendQuotedString(b []byte, s string) []byte {
	b = append(b, '"')

	lenS := uint(len(s))
	for i := uint(0); i < lenS; i++ {
		if !noEscapeTable[s[i]] {
			start := uint(0)
			for i < lenS {
				c := s[i]
				if noEscapeTable[c] {
					i++
					continue
				}
				if c >= utf8.RuneSelf {
					_, size := utf8.DecodeRuneInString(s[i:])
					i += uint(size)
					continue
				}

				if start < i {
					b = append(b, s[start:i]...)
				}

				switch c {
				case '"', '\\':
					b = append(b, '\\', c)
				case '\n':
					b = append(b, '\\', 'n')
				case '\r':
					b = append(b, '\\', 'r')
				case '\t':
					b = append(b, '\\', 't')
				case '\b':
					b = append(b, '\\', 'b')
				case '\f':
					b = append(b, '\\', 'f')
				default:
					b = append(b, '\\', 'u', '{')
					b = strconv.AppendUint(b, uint64(c), 16)
					b = append(b, '}')
				}
				i++
				start = i
			}
			if start < lenS {
				b = append(b, s[start:]...)
			}
			b = append(b, '"')
			return b
		}
	}
	b = append(b, s...)
	b = append(b, '"')
	return b
}

// QuoteString returns s in KDL quoted-string notation.
func QuoteString(s string) string {
	return string(AppendQuotedString(make([]byte, 0, len(s)+2), s))
}

// UnescapeString decodes the body of a quoted string (quotes already
// stripped by the tokenizer), processing KDL 2.0.0 escape sequences:
// \n \r \t \\ \" \b \f \s \u{HEX} and a backslash immediately followed by a
// newline, which collapses the newline and any leading whitespace on the
// following line (a line continuation).
func UnescapeString(body []byte) ([]byte, error) {
	b := make([]byte, 0, len(body))
	i := 0
	for i < len(body) {
		c := body[i]
		if c != '\\' {
			b = append(b, c)
			i++
			continue
		}
		i++
		if i >= len(body) {
			return nil, ErrInvalidString
		}
		c = body[i]
		switch c {
		case 'n':
			b = append(b, '\n')
			i++
		case 'r':
			b = append(b, '\r')
			i++
		case 't':
			b = append(b, '\t')
			i++
		case 'b':
			b = append(b, '\b')
			i++
		case 'f':
			b = append(b, '\f')
			i++
		case 's':
			b = append(b, ' ')
			i++
		case '"':
			b = append(b, '"')
			i++
		case '\\':
			b = append(b, '\\')
			i++
		case 'u':
			i++
			if i >= len(body) || body[i] != '{' {
				return nil, ErrInvalidString
			}
			i++
			start := i
			for i < len(body) && body[i] != '}' {
				i++
			}
			if i >= len(body) || i-start == 0 || i-start > 6 {
				return nil, ErrInvalidString
			}
			r := rune(0)
			factor := rune(1)
			for j := i - 1; j >= start; j-- {
				r += hexTable[body[j]] * factor
				factor *= 16
			}
			if r > 0x10FFFF {
				return nil, ErrInvalidString
			}
			b = utf8.AppendRune(b, r)
			i++
		case '\r', '\n':
			// line continuation: skip the newline and any leading whitespace
			// on the following line.
			if c == '\r' && i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
			i++
			for i < len(body) && (body[i] == ' ' || body[i] == '\t') {
				i++
			}
		default:
			return nil, ErrInvalidString
		}
	}
	return b, nil
}

// AppendMultilineString appends s to b in KDL 2.0.0 triple-quoted multi-line
// notation. It is only valid to call this when s contains no '"'; the
// caller (the serializer) is responsible for routing quote-bearing strings
// to AppendRawString instead. Content is emitted flush left, with no
// indentation prefix on the closing line, so every content line round-trips
// unchanged through dedentMultiline on reparse.
func AppendMultilineString(b []byte, s string) []byte {
	b = append(b, '"', '"', '"', '\n')
	b = append(b, s...)
	b = append(b, '\n', '"', '"', '"')
	return b
}

// AppendRawString appends s to b in KDL 2.0.0 raw-string notation
// (#"..."#), choosing the minimal number of '#' delimiters such that the
// closing sequence does not appear inside s. KDL 2.0.0 raw strings always
// carry at least one '#' (there is no hash-less raw-string form), so the
// search starts at 1.
func AppendRawString(b []byte, s string) []byte {
	hashes := 1
	for {
		closer := `"` + strings.Repeat("#", hashes)
		if !strings.Contains(s, closer) {
			break
		}
		hashes++
	}

	for i := 0; i < hashes; i++ {
		b = append(b, '#')
	}
	b = append(b, '"')
	b = append(b, s...)
	b = append(b, '"')
	for i := 0; i < hashes; i++ {
		b = append(b, '#')
	}
	return b
}
