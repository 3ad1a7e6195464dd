// Package parser implements Stage 2: a recursive-descent driver over the
// tokenizer's token stream that emits an ordered event.Sink call sequence.
// It never builds a document itself; document.DOMBuilder (or any other
// event.Sink) owns that decision.
package parser

import (
	"github.com/kdlsoa/kdl/document"
	"github.com/kdlsoa/kdl/event"
	"github.com/kdlsoa/kdl/internal/tokenizer"
)

// Parser drives a tokenizer.Scanner against an event.Sink.
type Parser struct {
	sc      *tokenizer.Scanner
	sink    event.Sink
	cur     tokenizer.Token
	pending []tokenizer.Token
}

// New returns a Parser that reads tokens from sc and emits events to sink.
func New(sc *tokenizer.Scanner, sink event.Sink) *Parser {
	return &Parser{sc: sc, sink: sink}
}

// Parse consumes the entire token stream, emitting one StartNode/EndNode
// pair (with nested Argument/Property/children events) per top-level node.
func (p *Parser) Parse() error {
	if err := p.advance(); err != nil {
		return err
	}
	return p.parseNodeList(false, false)
}

func isIdentLike(id tokenizer.ID) bool {
	switch id {
	case tokenizer.Ident, tokenizer.QuotedString, tokenizer.RawString:
		return true
	}
	return false
}

// rawNext reads the next grammatically-significant token from the
// scanner (or the pushback buffer), silently discarding whitespace and
// comment tokens, which carry no grammar meaning of their own.
func (p *Parser) rawNext() (tokenizer.Token, error) {
	if len(p.pending) > 0 {
		t := p.pending[0]
		p.pending = p.pending[1:]
		return t, nil
	}
	for {
		if !p.sc.Scan() {
			if err := p.sc.Err(); err != nil {
				return tokenizer.Token{}, err
			}
			return tokenizer.Token{ID: tokenizer.EOF}, nil
		}
		t := p.sc.Token()
		switch t.ID {
		case tokenizer.Whitespace, tokenizer.LineComment, tokenizer.BlockComment:
			continue
		}
		return t, nil
	}
}

func (p *Parser) advance() error {
	t, err := p.rawNext()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

// peek returns the token following p.cur without consuming it.
func (p *Parser) peek() (tokenizer.Token, error) {
	if len(p.pending) == 0 {
		t, err := p.rawNext()
		if err != nil {
			return tokenizer.Token{}, err
		}
		p.pending = append(p.pending, t)
	}
	return p.pending[0], nil
}

func (p *Parser) unexpected(msg string) error {
	return newError(UnexpectedToken, p.cur.Offset, p.cur.Line, p.cur.Column, "%s (got %s)", msg, p.cur.String())
}

// parseNodeList consumes zero or more nodes, separated by newlines and
// semicolons. When inChildren is true it stops at (without consuming) a
// BraceClose; at top level a BraceClose is a grammar error. suppressed is
// true when this node list is itself nested inside a slashdashed
// construct (e.g. the children block of a `/-parent { ... }`), in which
// case every node in the list is parsed but suppressed too, regardless of
// its own leading slashdash — suppression cascades down the tree it
// annotates.
func (p *Parser) parseNodeList(inChildren, suppressed bool) error {
	for {
		for p.cur.ID == tokenizer.Newline || p.cur.ID == tokenizer.Semicolon {
			if err := p.advance(); err != nil {
				return err
			}
		}

		switch p.cur.ID {
		case tokenizer.EOF:
			if inChildren {
				return newError(UnterminatedBlock, p.cur.Offset, p.cur.Line, p.cur.Column, "unterminated children block")
			}
			return nil
		case tokenizer.BraceClose:
			if inChildren {
				return nil
			}
			return newError(TrailingInput, p.cur.Offset, p.cur.Line, p.cur.Column, "unexpected %s", p.cur.ID)
		}

		suppress := suppressed
		if p.cur.ID == tokenizer.SlashDash {
			suppress = true
			if err := p.advance(); err != nil {
				return err
			}
			for p.cur.ID == tokenizer.Newline {
				if err := p.advance(); err != nil {
					return err
				}
			}
		}

		if err := p.parseNode(suppress); err != nil {
			return err
		}
	}
}

// parseNode consumes a single node: an optional type annotation, its name,
// then a sequence of arguments/properties/a children block, terminated by a
// semicolon, newline, EOF, or a following BraceClose.
func (p *Parser) parseNode(suppress bool) error {
	start := p.cur.Offset

	typeAnnot, err := p.maybeTypeAnnotation()
	if err != nil {
		return err
	}

	if !isIdentLike(p.cur.ID) {
		return p.unexpected("expected node name")
	}
	name, err := p.identifierTextFromCurrent()
	if err != nil {
		return err
	}
	if err := p.advance(); err != nil {
		return err
	}

	if !suppress {
		if err := p.sink.StartNode(name, typeAnnot, event.Span{Start: start, End: p.cur.Offset}); err != nil {
			return err
		}
	}

	hadChildren := false
loop:
	for {
		switch p.cur.ID {
		case tokenizer.Semicolon, tokenizer.Newline, tokenizer.EOF, tokenizer.BraceClose:
			break loop
		}
		if err := p.parseEntity(suppress, &hadChildren); err != nil {
			return err
		}
	}

	end := p.cur.Offset
	if p.cur.ID == tokenizer.Semicolon {
		if err := p.advance(); err != nil {
			return err
		}
	}

	if !suppress {
		return p.sink.EndNode(hadChildren, event.Span{Start: start, End: end})
	}
	return nil
}

// parseEntity consumes one argument, property, children block, or
// slashdash-suppressed instance of one of those, advancing past it.
func (p *Parser) parseEntity(parentSuppressed bool, hadChildren *bool) error {
	suppress := parentSuppressed
	if p.cur.ID == tokenizer.SlashDash {
		suppress = true
		if err := p.advance(); err != nil {
			return err
		}
	}

	if p.cur.ID == tokenizer.BraceOpen {
		if err := p.advance(); err != nil {
			return err
		}
		if !suppress {
			*hadChildren = true
		}
		if err := p.parseNodeList(true, suppress); err != nil {
			return err
		}
		if p.cur.ID != tokenizer.BraceClose {
			return newError(UnterminatedBlock, p.cur.Offset, p.cur.Line, p.cur.Column, "expected closing brace")
		}
		return p.advance()
	}

	if isIdentLike(p.cur.ID) {
		nxt, err := p.peek()
		if err != nil {
			return err
		}
		if nxt.ID == tokenizer.Equals {
			start := p.cur.Offset
			key, err := p.identifierTextFromCurrent()
			if err != nil {
				return err
			}
			if err := p.advance(); err != nil { // consume key -> cur == Equals
				return err
			}
			if err := p.advance(); err != nil { // consume '=' -> cur == value start
				return err
			}
			valTypeAnnot, err := p.maybeTypeAnnotation()
			if err != nil {
				return err
			}
			value, err := p.valueFromCurrent()
			if err != nil {
				return err
			}
			end := p.cur.Offset + len(p.cur.Data)
			if !suppress {
				if err := p.sink.Property(key, value, valTypeAnnot, event.Span{Start: start, End: end}); err != nil {
					return err
				}
			}
			return p.advance()
		}
	}

	start := p.cur.Offset
	typeAnnot, err := p.maybeTypeAnnotation()
	if err != nil {
		return err
	}
	value, err := p.valueFromCurrent()
	if err != nil {
		return err
	}
	end := p.cur.Offset + len(p.cur.Data)
	if !suppress {
		if err := p.sink.Argument(value, typeAnnot, event.Span{Start: start, End: end}); err != nil {
			return err
		}
	}
	return p.advance()
}

// maybeTypeAnnotation consumes a leading "(identifier)" type annotation, if
// present, and returns its text (or "" if there was none).
func (p *Parser) maybeTypeAnnotation() (string, error) {
	if p.cur.ID != tokenizer.ParenOpen {
		return "", nil
	}
	if err := p.advance(); err != nil {
		return "", err
	}
	if !isIdentLike(p.cur.ID) {
		return "", newError(InvalidTypeAnnotation, p.cur.Offset, p.cur.Line, p.cur.Column, "expected type name")
	}
	name, err := p.identifierTextFromCurrent()
	if err != nil {
		return "", err
	}
	if err := p.advance(); err != nil {
		return "", err
	}
	if p.cur.ID != tokenizer.ParenClose {
		return "", newError(InvalidTypeAnnotation, p.cur.Offset, p.cur.Line, p.cur.Column, "expected closing paren")
	}
	if err := p.advance(); err != nil {
		return "", err
	}
	return name, nil
}

// identifierTextFromCurrent decodes p.cur (an Ident, QuotedString, or
// RawString token) into plain text, suitable for a node name or property key.
func (p *Parser) identifierTextFromCurrent() (string, error) {
	switch p.cur.ID {
	case tokenizer.Ident:
		return string(p.cur.Data), nil
	case tokenizer.QuotedString:
		body, err := document.ExtractQuotedBody(p.cur.Data)
		if err != nil {
			return "", err
		}
		unescaped, err := document.UnescapeString(body)
		if err != nil {
			return "", err
		}
		return string(unescaped), nil
	case tokenizer.RawString:
		body, err := document.ExtractRawBody(p.cur.Data)
		if err != nil {
			return "", err
		}
		return string(body), nil
	default:
		return "", p.unexpected("expected identifier")
	}
}

// valueFromCurrent decodes p.cur into an event.Value, for use as an argument
// or a property's right-hand side.
func (p *Parser) valueFromCurrent() (event.Value, error) {
	switch p.cur.ID {
	case tokenizer.QuotedString:
		body, err := document.ExtractQuotedBody(p.cur.Data)
		if err != nil {
			return event.Value{}, err
		}
		return event.Value{Raw: body, Kind: event.ValueString}, nil
	case tokenizer.RawString:
		body, err := document.ExtractRawBody(p.cur.Data)
		if err != nil {
			return event.Value{}, err
		}
		return event.Value{Raw: body, Kind: event.ValueRawString}, nil
	case tokenizer.Hexadecimal:
		return event.Value{Raw: p.cur.Data, Kind: event.ValueHexInt}, nil
	case tokenizer.Octal:
		return event.Value{Raw: p.cur.Data, Kind: event.ValueOctalInt}, nil
	case tokenizer.Binary:
		return event.Value{Raw: p.cur.Data, Kind: event.ValueBinaryInt}, nil
	case tokenizer.Keyword:
		kind, ok := keywordKind(p.cur.Data)
		if !ok {
			return event.Value{}, p.unexpected("unknown keyword literal")
		}
		return event.Value{Raw: p.cur.Data, Kind: kind}, nil
	}

	if p.cur.ID.BaseID() == tokenizer.Decimal {
		if p.cur.ID.IsFloatLiteral() {
			return event.Value{Raw: p.cur.Data, Kind: event.ValueDecimalFloat}, nil
		}
		return event.Value{Raw: p.cur.Data, Kind: event.ValueDecimalInt}, nil
	}

	return event.Value{}, p.unexpected("expected a value")
}

func keywordKind(lit []byte) (event.ValueKind, bool) {
	switch string(lit) {
	case "#true":
		return event.ValueKeywordTrue, true
	case "#false":
		return event.ValueKeywordFalse, true
	case "#null":
		return event.ValueKeywordNull, true
	case "#inf":
		return event.ValueKeywordInf, true
	case "#-inf":
		return event.ValueKeywordNegInf, true
	case "#nan":
		return event.ValueKeywordNan, true
	default:
		return 0, false
	}
}
