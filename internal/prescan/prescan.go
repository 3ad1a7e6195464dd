// Package prescan implements a single-pass structural pre-scan of KDL
// source text, in the spirit of simdjson's structural-character index: a
// list of the byte offsets of every "structural" byte (braces, quotes,
// parens, the statement separators), plus the byte ranges that fall inside
// a string body and are therefore not structurally significant even if they
// contain a byte that would otherwise look structural.
//
// Nothing else in this module depends on a prescan.Index being present —
// the tokenizer performs its own scalar classification independently. This
// package exists for callers (a future vectorized accelerator, or
// diagnostics that want the document's node boundaries without a full
// parse) that can use a cheaper shape of the same information. When Scan
// cannot confidently classify the input (a malformed string or comment, or
// in practice never with the current scalar implementation) it reports
// ok=false and the caller falls back to a full tokenizer pass.
package prescan

import "github.com/kdlsoa/kdl/internal/classify"

// StringRange is a half-open byte range [Start, End) that falls inside a
// quoted or raw string body, including its delimiters.
type StringRange struct {
	Start int
	End   int
}

// Index is the result of a structural pre-scan.
type Index struct {
	// Structural holds the byte offset of every structural byte found
	// outside a string or comment, in ascending order.
	Structural []int
	// Strings holds the byte range of every string literal found, in
	// ascending order.
	Strings []StringRange
}

// Scan performs a single forward pass over data, returning its structural
// index. ok is false only if data contains an unterminated string or
// comment, which a prescan cannot resolve on its own; the caller should
// fall back to running the tokenizer, which will raise the precise lexical
// error.
func Scan(data []byte) (idx Index, ok bool) {
	i := 0
	n := len(data)

	for i < n {
		c := data[i]

		switch {
		case c == '/' && i+1 < n && data[i+1] == '/':
			i += 2
			for i < n && !classify.IsNewline(rune(data[i])) {
				i++
			}
			continue

		case c == '/' && i+1 < n && data[i+1] == '*':
			start := i
			i += 2
			depth := 1
			for i < n && depth > 0 {
				if data[i] == '/' && i+1 < n && data[i+1] == '*' {
					depth++
					i += 2
					continue
				}
				if data[i] == '*' && i+1 < n && data[i+1] == '/' {
					depth--
					i += 2
					continue
				}
				i++
			}
			if depth > 0 {
				return idx, false
			}
			_ = start
			continue

		case c == '"':
			start := i
			i++
			closed := false
			for i < n {
				if data[i] == '\\' {
					i += 2
					continue
				}
				if data[i] == '"' {
					i++
					closed = true
					break
				}
				i++
			}
			if !closed {
				return idx, false
			}
			idx.Strings = append(idx.Strings, StringRange{Start: start, End: i})
			idx.Structural = append(idx.Structural, start)
			continue

		case c == '#' && isRawStart(data, i):
			start := i
			hashes := 0
			for i < n && data[i] == '#' {
				hashes++
				i++
			}
			i++ // opening quote
			closed := false
			for i < n {
				if data[i] == '"' && closesRaw(data, i, hashes) {
					i += 1 + hashes
					closed = true
					break
				}
				i++
			}
			if !closed {
				return idx, false
			}
			idx.Strings = append(idx.Strings, StringRange{Start: start, End: i})
			idx.Structural = append(idx.Structural, start)
			continue

		case classify.IsStructural(c):
			idx.Structural = append(idx.Structural, i)
			i++

		default:
			i++
		}
	}

	return idx, true
}

func isRawStart(data []byte, i int) bool {
	j := i
	for j < len(data) && data[j] == '#' {
		j++
	}
	return j < len(data) && data[j] == '"'
}

func closesRaw(data []byte, i, hashes int) bool {
	for k := 1; k <= hashes; k++ {
		if i+k >= len(data) || data[i+k] != '#' {
			return false
		}
	}
	return true
}
