// Package event defines the push-based event contract that the parser emits
// against. A Sink only ever sees StartNode, Argument, Property and EndNode
// calls in a well-formed nesting order; consumers (document.DOMBuilder, a
// streaming adapter, or a no-op validator) implement Sink directly instead of
// the parser committing to one fixed in-memory representation.
package event

// Kind identifies the category of an emitted Event.
type Kind int

const (
	StartNode Kind = iota
	Argument
	Property
	EndNode
)

func (k Kind) String() string {
	switch k {
	case StartNode:
		return "StartNode"
	case Argument:
		return "Argument"
	case Property:
		return "Property"
	case EndNode:
		return "EndNode"
	default:
		return "Unknown"
	}
}

// Span is the byte range of source text an event's originating construct
// covered, for diagnostics that need to point back at the input.
type Span struct {
	Start int
	End   int
}

// Value carries a single literal KDL value (an argument or a property's
// right-hand side) as classified at parse time, deferring interpretation
// (interning, numeric parsing) to the Sink.
type Value struct {
	// Raw is the token's literal source text: for strings, the body with its
	// delimiters stripped (and multi-line strings dedented) but escapes still
	// present; untouched for numbers and keywords.
	Raw []byte
	// Kind distinguishes how Raw should be interpreted.
	Kind ValueKind
}

// ValueKind identifies how a Value.Raw should be interpreted by the Sink.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueRawString
	ValueDecimalInt
	ValueDecimalFloat
	ValueHexInt
	ValueOctalInt
	ValueBinaryInt
	ValueKeywordTrue
	ValueKeywordFalse
	ValueKeywordNull
	ValueKeywordInf
	ValueKeywordNegInf
	ValueKeywordNan
)

// Sink receives the ordered stream of events a single parse produces. All
// methods must return promptly; a Sink that wants to stop the parse early
// returns a non-nil error, which the parser propagates to its caller
// unmodified.
type Sink interface {
	// StartNode begins a node named name, with an optional type annotation
	// (empty if none was given).
	StartNode(name string, typeAnnotation string, span Span) error
	// Argument appends a positional argument to the node currently open,
	// with an optional type annotation.
	Argument(value Value, typeAnnotation string, span Span) error
	// Property sets name to value (last write wins) on the node currently
	// open, with an optional type annotation on the value.
	Property(name string, value Value, typeAnnotation string, span Span) error
	// EndNode closes the node most recently started. hadChildren reports
	// whether the node had an (even empty) children block in the source.
	EndNode(hadChildren bool, span Span) error
}

// NullSink discards every event. It is useful for validating that an input
// is well-formed KDL without paying the cost of building a Document, and as
// the base type to embed when only a few Sink methods need overriding.
type NullSink struct{}

func (NullSink) StartNode(name string, typeAnnotation string, span Span) error { return nil }
func (NullSink) Argument(value Value, typeAnnotation string, span Span) error  { return nil }
func (NullSink) Property(name string, value Value, typeAnnotation string, span Span) error {
	return nil
}
func (NullSink) EndNode(hadChildren bool, span Span) error { return nil }

var _ Sink = NullSink{}
