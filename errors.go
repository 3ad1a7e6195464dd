package kdl

import (
	"errors"
	"fmt"

	"github.com/kdlsoa/kdl/document"
	"github.com/kdlsoa/kdl/internal/parser"
	"github.com/kdlsoa/kdl/internal/tokenizer"
)

// ErrorCategory classifies an Error into one of the four top-level buckets
// a KDL implementation's errors fall into.
type ErrorCategory int

const (
	// CategoryLexical covers malformed tokens: unterminated strings,
	// invalid escapes, malformed numbers.
	CategoryLexical ErrorCategory = iota
	// CategoryGrammatical covers well-lexed but ill-formed token sequences.
	CategoryGrammatical
	// CategorySemantic covers errors only detectable once values are
	// interpreted: type mismatches and the like during decode.
	CategorySemantic
	// CategoryResource covers failures unrelated to the input's content:
	// allocation failures, I/O errors from an underlying reader.
	CategoryResource
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryLexical:
		return "Lexical"
	case CategoryGrammatical:
		return "Grammatical"
	case CategorySemantic:
		return "Semantic"
	case CategoryResource:
		return "Resource"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by every parsing entry point in this
// package. It carries a byte offset and line/column into the source that
// produced it, plus the KindName naming the specific error within its
// Category (e.g. "UnterminatedString" within CategoryLexical). Errors found
// while decoding a string body (an invalid escape or multi-line
// indentation) and resource errors carry no position: Offset, Line and
// Column are zero.
type Error struct {
	Category ErrorCategory
	KindName string
	Offset   int
	Line     int
	Column   int
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s/%s at offset %d (line %d, column %d): %s", e.Category, e.KindName, e.Offset, e.Line, e.Column, e.Message)
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if lexErr, ok := err.(*tokenizer.Error); ok {
		return &Error{
			Category: CategoryLexical,
			KindName: lexErr.Kind.String(),
			Offset:   lexErr.Offset,
			Line:     lexErr.Line,
			Column:   lexErr.Column,
			Message:  lexErr.Message,
		}
	}
	if gramErr, ok := err.(*parser.Error); ok {
		return &Error{
			Category: CategoryGrammatical,
			KindName: gramErr.Kind.String(),
			Offset:   gramErr.Offset,
			Line:     gramErr.Line,
			Column:   gramErr.Column,
			Message:  gramErr.Message,
		}
	}
	if errors.Is(err, document.ErrInvalidString) {
		return &Error{Category: CategoryLexical, KindName: tokenizer.InvalidEscape.String(), Message: err.Error()}
	}
	if errors.Is(err, document.ErrInvalidMultilineString) {
		return &Error{Category: CategoryLexical, KindName: "InvalidMultilineString", Message: err.Error()}
	}
	return &Error{Category: CategoryResource, KindName: "IoError", Message: err.Error()}
}
