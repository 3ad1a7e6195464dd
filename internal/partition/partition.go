// Package partition locates safe split points in KDL source text — byte
// offsets that fall between two top-level nodes, outside any string,
// comment, or children block — so a large document can be divided into
// independently parseable chunks and parsed on separate goroutines.
//
// This is a cut-down variant of the tokenizer's byte-by-byte
// classification, tracking only what is needed to know whether the cursor
// sits at depth zero and outside a string or comment.
package partition

import "github.com/kdlsoa/kdl/internal/classify"

// FindPartitions scans data and returns a sorted slice of byte offsets, each
// a safe point to split the document, spaced at roughly targetSize bytes
// apart. The returned offsets never fall inside a string, comment, or
// children block, and every one lands immediately after a top-level node's
// terminator (a newline or semicolon at brace depth zero).
//
// If data contains no safe split point at all (e.g. it is one single node
// with no top-level siblings), FindPartitions returns an empty slice; the
// caller should treat this as "parse as one chunk" rather than an error.
func FindPartitions(data []byte, targetSize int) []int {
	if targetSize <= 0 || len(data) <= targetSize {
		return nil
	}

	var offsets []int
	lastSplit := 0

	depth := 0
	inLineComment := false
	inBlockComment := 0
	var inString byte // 0, or the quote/raw-string marker currently open
	rawHashes := 0

	i := 0
	for i < len(data) {
		c := data[i]

		switch {
		case inLineComment && c != '\n':
			i++
			continue
		case inLineComment:
			// The newline ending a line comment also terminates the node
			// the comment trails; it is handled as a terminator below.
			inLineComment = false
		case inBlockComment > 0:
			if c == '/' && i+1 < len(data) && data[i+1] == '*' {
				inBlockComment++
				i += 2
				continue
			}
			if c == '*' && i+1 < len(data) && data[i+1] == '/' {
				inBlockComment--
				i += 2
				continue
			}
			i++
			continue
		case inString == '"':
			if c == '\\' {
				i += 2
				continue
			}
			if c == '"' {
				inString = 0
			}
			i++
			continue
		case inString == '#':
			if c == '"' {
				if closesRawString(data, i, rawHashes) {
					inString = 0
					i += 1 + rawHashes
					continue
				}
			}
			i++
			continue
		}

		switch {
		case c == '/' && i+1 < len(data) && data[i+1] == '/':
			inLineComment = true
			i += 2
		case c == '/' && i+1 < len(data) && data[i+1] == '*':
			inBlockComment = 1
			i += 2
		case c == '"':
			inString = '"'
			i++
		case c == '#' && isRawStringStart(data, i):
			inString = '#'
			rawHashes = countHashes(data, i)
			i += rawHashes + 1
		case c == '{':
			depth++
			i++
		case c == '}':
			if depth > 0 {
				depth--
			}
			i++
		case classify.IsNewline(rune(c)) || c == ';':
			i++
			if depth == 0 && i-lastSplit >= targetSize {
				offsets = append(offsets, i)
				lastSplit = i
			}
		default:
			i++
		}
	}

	return offsets
}

func isRawStringStart(data []byte, i int) bool {
	j := i
	for j < len(data) && data[j] == '#' {
		j++
	}
	return j < len(data) && data[j] == '"'
}

func countHashes(data []byte, i int) int {
	n := 0
	for i+n < len(data) && data[i+n] == '#' {
		n++
	}
	return n
}

func closesRawString(data []byte, i, hashes int) bool {
	if data[i] != '"' {
		return false
	}
	for k := 1; k <= hashes; k++ {
		if i+k >= len(data) || data[i+k] != '#' {
			return false
		}
	}
	return true
}
