// Package tokenizer implements Stage 1 of the parser: a lazy, low-allocation
// lexer for KDL 2.0.0 source text. It is deliberately unaware of grammar; it
// only recognizes lexical tokens and hands them, one at a time, to whatever
// consumes Scan/Token/Err.
package tokenizer

import "fmt"

// ID identifies the lexical category of a Token.
type ID int

const (
	Unknown ID = iota
	EOF
	Newline
	Whitespace
	LineComment
	BlockComment
	SlashDash // "/-", annotates the following node/arg/prop/children for suppression
	Ident     // bare identifier
	Keyword   // #true #false #null #inf #-inf #nan
	QuotedString
	RawString
	Decimal
	Hexadecimal
	Octal
	Binary
	BraceOpen
	BraceClose
	ParenOpen
	ParenClose
	Equals
	Semicolon

	// classes are virtual IDs that group tokens without enumerating every
	// concrete ID; the recursive-descent parser does not consult them.
	ClassWhitespace
	ClassValue
	ClassIdentifier
	ClassNonStringValue
	ClassNumber
	ClassString
	ClassTerminator
	ClassEndOfLine
	ClassComment
)

var classesOf = map[ID][]ID{
	Newline:      {ClassTerminator, ClassWhitespace, ClassEndOfLine},
	Whitespace:   {ClassWhitespace},
	LineComment:  {ClassComment},
	BlockComment: {ClassComment},
	Decimal:      {ClassNumber, ClassValue, ClassNonStringValue},
	Hexadecimal:  {ClassNumber, ClassValue, ClassNonStringValue},
	Octal:        {ClassNumber, ClassValue, ClassNonStringValue},
	Binary:       {ClassNumber, ClassValue, ClassNonStringValue},
	Keyword:      {ClassValue, ClassNonStringValue},
	Ident:        {ClassValue, ClassIdentifier},
	RawString:    {ClassValue, ClassString, ClassIdentifier},
	QuotedString: {ClassValue, ClassString, ClassIdentifier},
	Semicolon:    {ClassTerminator},
	EOF:          {ClassTerminator, ClassEndOfLine},
}

// Classes returns the set of virtual classes t belongs to.
func (t ID) Classes() []ID {
	return classesOf[t.BaseID()]
}

func (t ID) String() string {
	switch t.BaseID() {
	case Unknown:
		return "Unknown"
	case EOF:
		return "EOF"
	case Newline:
		return "Newline"
	case Whitespace:
		return "Whitespace"
	case LineComment:
		return "LineComment"
	case BlockComment:
		return "BlockComment"
	case SlashDash:
		return "SlashDash"
	case Ident:
		return "Ident"
	case Keyword:
		return "Keyword"
	case QuotedString:
		return "QuotedString"
	case RawString:
		return "RawString"
	case Decimal:
		return "Decimal"
	case Hexadecimal:
		return "Hexadecimal"
	case Octal:
		return "Octal"
	case Binary:
		return "Binary"
	case BraceOpen:
		return "BraceOpen"
	case BraceClose:
		return "BraceClose"
	case ParenOpen:
		return "ParenOpen"
	case ParenClose:
		return "ParenClose"
	case Equals:
		return "Equals"
	case Semicolon:
		return "Semicolon"
	default:
		return "(invalid)"
	}
}

// Token is a single lexical token produced by a Scanner.
type Token struct {
	ID ID
	// Data is the literal text of the token, exactly as it appeared in the
	// source (including quotes, hashes, sign, etc). It may alias the input
	// buffer; callers must not mutate it.
	Data []byte
	// Offset is the byte offset of the first byte of the token in the source.
	Offset int
	Line   int
	Column int
}

func (t Token) String() string {
	if len(t.Data) > 0 {
		return fmt.Sprintf("%s(%s)", t.ID, string(t.Data))
	}
	return t.ID.String()
}

// Valid reports whether t holds a real token (as opposed to the zero Token).
func (t Token) Valid() bool {
	return t.ID != Unknown
}

// Clear resets t to its invalid zero state.
func (t *Token) Clear() {
	t.ID = Unknown
	t.Data = nil
	t.Offset, t.Line, t.Column = 0, 0, 0
}
