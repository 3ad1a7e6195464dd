package document

import (
	"fmt"

	"github.com/kdlsoa/kdl/event"
)

// DOMBuilder implements event.Sink by materializing the event stream into a
// Document. It is the default consumer the parser is driven against; other
// Sink implementations (a streaming adapter, a validating NullSink) can
// process the identical event stream without ever constructing a Document.
type DOMBuilder struct {
	doc   *Document
	stack []NodeHandle
	// hadChildren holds one entry per entry on stack. Entries are pushed as
	// false and popped with their node; EndNode's hadChildren argument is
	// not recorded here.
	hadChildren []bool
	// children buffers, per entry on stack, the handles of that node's
	// direct children; they are written to the node store as one contiguous
	// block when the node ends.
	children [][]NodeHandle
}

// NewDOMBuilder returns a DOMBuilder that builds into a fresh Document.
// source, if non-nil, is installed as the pool's source buffer so
// source-backed StringRefs can be resolved. The builder itself copies every
// string it stores into the pool, so none of the refs it creates alias
// source, whether source is nil or not.
func NewDOMBuilder(source []byte) *DOMBuilder {
	doc := New()
	doc.strings.SetSource(source)
	return &DOMBuilder{doc: doc}
}

// Document returns the Document built so far. It is only safe to call after
// the driving parse has completed (or failed) without a further call to any
// Sink method.
func (b *DOMBuilder) Document() *Document {
	return b.doc
}

func (b *DOMBuilder) currentParent() NodeHandle {
	if len(b.stack) == 0 {
		return NoNode
	}
	return b.stack[len(b.stack)-1]
}

// StartNode implements event.Sink.
func (b *DOMBuilder) StartNode(name string, typeAnnotation string, span Span) error {
	parent := b.currentParent()
	nameRef := b.doc.strings.Intern(name)
	typeRef := b.internAnnotation(typeAnnotation)

	h := b.doc.nodes.push(nameRef, typeRef, parent, span)

	if parent == NoNode {
		b.doc.roots = append(b.doc.roots, h)
	} else {
		top := len(b.children) - 1
		b.children[top] = append(b.children[top], h)
	}

	b.stack = append(b.stack, h)
	b.hadChildren = append(b.hadChildren, false)
	b.children = append(b.children, nil)
	return nil
}

// Argument implements event.Sink.
func (b *DOMBuilder) Argument(value event.Value, typeAnnotation string, span Span) error {
	if len(b.stack) == 0 {
		return fmt.Errorf("document: Argument event with no open node")
	}
	vh, err := b.materialize(value, typeAnnotation)
	if err != nil {
		return err
	}
	b.doc.nodes.addArgument(b.currentParent(), vh)
	return nil
}

// Property implements event.Sink.
func (b *DOMBuilder) Property(name string, value event.Value, typeAnnotation string, span Span) error {
	if len(b.stack) == 0 {
		return fmt.Errorf("document: Property event with no open node")
	}
	vh, err := b.materialize(value, typeAnnotation)
	if err != nil {
		return err
	}
	nameRef := b.doc.strings.Intern(name)
	b.doc.nodes.setProperty(b.currentParent(), nameRef, b.doc.strings.Resolve, vh)
	return nil
}

// EndNode implements event.Sink.
func (b *DOMBuilder) EndNode(hadChildren bool, span Span) error {
	if len(b.stack) == 0 {
		return fmt.Errorf("document: EndNode event with no open node")
	}
	n := len(b.stack) - 1
	h := b.stack[n]
	b.doc.nodes.span[h] = span
	b.doc.nodes.childStart[h] = int32(len(b.doc.nodes.childIndex))
	for _, child := range b.children[n] {
		b.doc.nodes.addChild(h, child)
	}
	b.stack = b.stack[:n]
	b.hadChildren = b.hadChildren[:n]
	b.children = b.children[:n]
	return nil
}

func (b *DOMBuilder) internAnnotation(s string) StringRef {
	if s == "" {
		return emptyStringRef
	}
	return b.doc.strings.Intern(s)
}

func (b *DOMBuilder) materialize(value event.Value, typeAnnotation string) (ValueHandle, error) {
	typeRef := b.internAnnotation(typeAnnotation)

	switch value.Kind {
	case event.ValueString:
		unescaped, err := UnescapeString(value.Raw)
		if err != nil {
			return 0, err
		}
		h := b.doc.values.push(KindString, typeRef)
		b.doc.values.str[h] = b.doc.strings.Intern(string(unescaped))
		return h, nil

	case event.ValueRawString:
		h := b.doc.values.push(KindString, typeRef)
		b.doc.values.str[h] = b.doc.strings.Intern(string(value.Raw))
		return h, nil

	case event.ValueDecimalInt:
		return b.materializeInt(value.Raw, Base10, typeRef)
	case event.ValueHexInt:
		return b.materializeInt(value.Raw, Base16, typeRef)
	case event.ValueOctalInt:
		return b.materializeInt(value.Raw, Base8, typeRef)
	case event.ValueBinaryInt:
		return b.materializeInt(value.Raw, Base2, typeRef)

	case event.ValueDecimalFloat:
		f, roundTrips, err := parseFloat(value.Raw)
		if err != nil {
			return 0, err
		}
		if roundTrips {
			h := b.doc.values.push(KindFloat, typeRef)
			b.doc.values.floatVal[h] = f
			b.doc.values.rawLit[h] = b.doc.strings.Intern(string(value.Raw))
			return h, nil
		}
		h := b.doc.values.push(KindFloatRaw, typeRef)
		b.doc.values.rawLit[h] = b.doc.strings.Intern(string(value.Raw))
		return h, nil

	case event.ValueKeywordTrue:
		h := b.doc.values.push(KindBool, typeRef)
		b.doc.values.intVal[h] = 1
		return h, nil
	case event.ValueKeywordFalse:
		h := b.doc.values.push(KindBool, typeRef)
		b.doc.values.intVal[h] = 0
		return h, nil
	case event.ValueKeywordNull:
		return b.doc.values.push(KindNull, typeRef), nil
	case event.ValueKeywordInf:
		return b.doc.values.push(KindInf, typeRef), nil
	case event.ValueKeywordNegInf:
		return b.doc.values.push(KindNegInf, typeRef), nil
	case event.ValueKeywordNan:
		return b.doc.values.push(KindNaN, typeRef), nil

	default:
		return 0, fmt.Errorf("document: unknown value kind %d", value.Kind)
	}
}

func (b *DOMBuilder) materializeInt(lit []byte, base NumberBase, typeRef StringRef) (ValueHandle, error) {
	n, overflowed, err := parseInteger(lit, base)
	if err != nil {
		return 0, err
	}
	if overflowed {
		h := b.doc.values.push(KindFloatRaw, typeRef)
		b.doc.values.rawLit[h] = b.doc.strings.Intern(string(lit))
		return h, nil
	}
	h := b.doc.values.push(KindInteger, typeRef)
	b.doc.values.intVal[h] = n
	b.doc.values.intBase[h] = base
	b.doc.values.rawLit[h] = b.doc.strings.Intern(string(lit))
	return h, nil
}

var _ event.Sink = (*DOMBuilder)(nil)
