package kdl

import "github.com/kdlsoa/kdl/internal/serialize"

// ParseOptions controls how Parse and ParseReader build a Document.
type ParseOptions struct {
	// CopyStrings requests that every string materialized into the Document
	// be copied into its string pool rather than aliasing the input buffer.
	// The DOM builder copies every string into the pool whether or not this
	// is set, so it does not change the result: no string in a parsed
	// Document aliases the input slice.
	CopyStrings bool
}

// DefaultParseOptions is used by Parse and ParseReader when no options are given.
var DefaultParseOptions = ParseOptions{}

// SerializeOptions controls how Encode renders a Document back to text.
type SerializeOptions = serialize.Options

// DefaultSerializeOptions is used by Encode when no options are given.
var DefaultSerializeOptions = serialize.DefaultOptions
