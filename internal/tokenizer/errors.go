package tokenizer

import "fmt"

// Kind identifies the lexical error category a Scanner failure falls into.
type Kind int

const (
	UnterminatedString Kind = iota
	UnterminatedRawString
	InvalidEscape
	InvalidNumber
	InvalidIdentifier
	UnexpectedCharacter
	UnterminatedComment
)

func (k Kind) String() string {
	switch k {
	case UnterminatedString:
		return "UnterminatedString"
	case UnterminatedRawString:
		return "UnterminatedRawString"
	case InvalidEscape:
		return "InvalidEscape"
	case InvalidNumber:
		return "InvalidNumber"
	case InvalidIdentifier:
		return "InvalidIdentifier"
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case UnterminatedComment:
		return "UnterminatedComment"
	default:
		return "UnknownLexError"
	}
}

// Error is a lexical error produced by the Scanner, carrying the byte offset
// at which the error was detected plus a best-effort line/column.
type Error struct {
	Kind    Kind
	Offset  int
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s at offset %d (line %d, column %d): %s", e.Kind, e.Offset, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s at offset %d (line %d, column %d)", e.Kind, e.Offset, e.Line, e.Column)
}

func newError(kind Kind, offset, line, column int, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Offset:  offset,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}
