package document

import (
	"bytes"
	"errors"
)

// ErrInvalidMultilineString is returned when a triple-quoted string's
// closing-line indentation does not prefix every content line.
var ErrInvalidMultilineString = errors.New("multi-line string: inconsistent closing indentation")

// ExtractQuotedBody strips the delimiters from a quoted-string token's raw
// source text (as produced by the tokenizer, quotes included) and, for the
// triple-quoted multi-line form, removes the common indentation established
// by the closing delimiter's line. The returned bytes still carry backslash
// escapes, which UnescapeString resolves separately; the two steps are kept
// apart so dedenting operates on literal source bytes, not on a string that
// has already had escapes collapsed.
func ExtractQuotedBody(tok []byte) ([]byte, error) {
	if len(tok) >= 6 && tok[0] == '"' && tok[1] == '"' && tok[2] == '"' {
		return dedentMultiline(tok[3 : len(tok)-3])
	}
	return tok[1 : len(tok)-1], nil
}

// ExtractRawBody strips the '#'*N '"' ... '"' '#'*N delimiters from a
// raw-string token's source text, dedenting the triple-quoted multi-line
// form the same way ExtractQuotedBody does. Raw-string content is returned
// verbatim; it is never passed through UnescapeString.
func ExtractRawBody(tok []byte) ([]byte, error) {
	hashes := 0
	for hashes < len(tok) && tok[hashes] == '#' {
		hashes++
	}
	inner := tok[hashes : len(tok)-hashes]
	if len(inner) >= 6 && inner[0] == '"' && inner[1] == '"' && inner[2] == '"' {
		return dedentMultiline(inner[3 : len(inner)-3])
	}
	return inner[1 : len(inner)-1], nil
}

// dedentMultiline implements the shared KDL 2.0.0 multi-line string
// algorithm: the body must open with a newline (discarded), its final line
// is whitespace-only and establishes the indentation prefix every other line
// must carry (and which is then stripped), and that final line is itself
// discarded since it is delimiter, not content.
func dedentMultiline(body []byte) ([]byte, error) {
	body = trimLeadingNewline(body)

	lines := bytes.Split(body, []byte{'\n'})
	prefix := bytes.TrimRight(lines[len(lines)-1], "\r")
	lines = lines[:len(lines)-1]

	out := make([][]byte, 0, len(lines))
	for _, line := range lines {
		trimmed := bytes.TrimRight(line, "\r")
		cr := len(line) - len(trimmed)

		if len(trimmed) == 0 {
			out = append(out, line)
			continue
		}
		if !bytes.HasPrefix(trimmed, prefix) {
			return nil, ErrInvalidMultilineString
		}
		stripped := trimmed[len(prefix):]
		if cr > 0 {
			stripped = append(append([]byte{}, stripped...), line[len(line)-cr:]...)
		}
		out = append(out, stripped)
	}

	return bytes.Join(out, []byte{'\n'}), nil
}

func trimLeadingNewline(body []byte) []byte {
	if len(body) > 0 && body[0] == '\r' {
		body = body[1:]
	}
	if len(body) > 0 && body[0] == '\n' {
		body = body[1:]
	}
	return body
}
