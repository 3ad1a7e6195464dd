// Package serialize renders a document.Document back into canonical KDL
// 2.0.0 source text. It is the mirror image of internal/parser: parser goes
// source bytes -> events -> Document, serialize goes Document -> source
// bytes directly, with no event indirection since rendering never needs to
// be pluggable the way consumption does.
package serialize

import (
	"strconv"
	"strings"

	"github.com/kdlsoa/kdl/document"
)

// Options controls how a Document is rendered.
type Options struct {
	// Indent is the byte string used for each indentation level.
	Indent []byte
}

// DefaultOptions is used by Document when Options is the zero value.
var DefaultOptions = Options{Indent: []byte("    ")}

// Document renders the whole of doc as canonical KDL source text.
func Document(doc *document.Document, opts Options) []byte {
	if opts.Indent == nil {
		opts = DefaultOptions
	}
	var b []byte
	for _, h := range doc.Roots() {
		b = appendNode(b, doc, doc.Node(h), 0, opts)
	}
	return b
}

func appendNode(b []byte, doc *document.Document, n document.NodeView, depth int, opts Options) []byte {
	for i := 0; i < depth; i++ {
		b = append(b, opts.Indent...)
	}

	b = appendTypeAnnotation(b, n.TypeAnnotation())
	b = appendIdentifier(b, n.Name())

	for i := 0; i < n.ArgumentCount(); i++ {
		b = append(b, ' ')
		b = appendValue(b, doc, n.Argument(i))
	}

	for i := 0; i < n.PropertyCount(); i++ {
		name, val := n.PropertyAt(i)
		b = append(b, ' ')
		b = appendIdentifier(b, name)
		b = append(b, '=')
		b = appendValue(b, doc, val)
	}

	if n.ChildCount() > 0 {
		b = append(b, ' ', '{', '\n')
		for i := 0; i < n.ChildCount(); i++ {
			b = appendNode(b, doc, n.Child(i), depth+1, opts)
		}
		for i := 0; i < depth; i++ {
			b = append(b, opts.Indent...)
		}
		b = append(b, '}')
	}

	b = append(b, '\n')
	return b
}

func appendTypeAnnotation(b []byte, t string) []byte {
	if t == "" {
		return b
	}
	b = append(b, '(')
	b = appendIdentifier(b, t)
	b = append(b, ')')
	return b
}

// appendIdentifier writes s bare if it qualifies as a bare identifier,
// quoted otherwise.
func appendIdentifier(b []byte, s string) []byte {
	if document.IsBareIdentifier(s) {
		return append(b, s...)
	}
	return document.AppendQuotedString(b, s)
}

// appendValue writes v in its canonical notation.
func appendValue(b []byte, doc *document.Document, v document.ValueView) []byte {
	b = appendTypeAnnotation(b, v.TypeAnnotation())

	switch v.Kind() {
	case document.KindString:
		return appendString(b, v.String())
	case document.KindInteger:
		return appendInteger(b, v.Int(), v.Base())
	case document.KindFloat:
		return appendFloat(b, v.Float())
	case document.KindFloatRaw:
		return append(b, v.RawLiteral()...)
	case document.KindBool:
		if v.Bool() {
			return append(b, "#true"...)
		}
		return append(b, "#false"...)
	case document.KindNull:
		return append(b, "#null"...)
	case document.KindInf:
		return append(b, "#inf"...)
	case document.KindNegInf:
		return append(b, "#-inf"...)
	case document.KindNaN:
		return append(b, "#nan"...)
	default:
		return b
	}
}

// appendString selects the canonical KDL 2.0.0 string form: raw-string when
// the content holds a '"' but no newline, multi-line when it holds a
// newline but no '"', and the default quoted form otherwise (including the
// case where both appear — there is no collision-free non-quoted form the
// tokenizer accepts for that combination, see DESIGN.md).
func appendString(b []byte, s string) []byte {
	hasQuote := strings.ContainsRune(s, '"')
	hasNewline := strings.ContainsRune(s, '\n')
	switch {
	case hasQuote && !hasNewline:
		return document.AppendRawString(b, s)
	case hasNewline && !hasQuote:
		return document.AppendMultilineString(b, s)
	default:
		return document.AppendQuotedString(b, s)
	}
}

// appendFloat renders f using the shortest round-tripping decimal form,
// guaranteeing a '.' or exponent is present so the literal cannot be
// misread as an integer on a subsequent parse.
func appendFloat(b []byte, f float64) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, f, 'g', -1, 64)
	for _, c := range b[start:] {
		if c == '.' || c == 'e' || c == 'E' || c == 'n' /* inf/nan text, unreachable here */ {
			return b
		}
	}
	return append(b, '.', '0')
}

func appendInteger(b []byte, n int64, base document.NumberBase) []byte {
	switch base {
	case document.Base16:
		if n < 0 {
			b = append(b, '-')
			n = -n
		}
		b = append(b, "0x"...)
		return strconv.AppendUint(b, uint64(n), 16)
	case document.Base8:
		if n < 0 {
			b = append(b, '-')
			n = -n
		}
		b = append(b, "0o"...)
		return strconv.AppendUint(b, uint64(n), 8)
	case document.Base2:
		if n < 0 {
			b = append(b, '-')
			n = -n
		}
		b = append(b, "0b"...)
		return strconv.AppendUint(b, uint64(n), 2)
	default:
		return strconv.AppendInt(b, n, 10)
	}
}
