// Package stream provides a pull-based iterator over a KDL document's
// top-level nodes, for callers that want to process a large document
// node-by-node instead of waiting for the whole parse to finish.
//
// Built on a producer-goroutine-plus-buffered-channel pattern: a single
// goroutine drives the parser while Next pulls completed top-level nodes
// off a channel as they finish.
package stream

import (
	"github.com/kdlsoa/kdl/document"
	"github.com/kdlsoa/kdl/event"
	"github.com/kdlsoa/kdl/internal/parser"
	"github.com/kdlsoa/kdl/internal/tokenizer"
)

// Item is one top-level node produced by an Iterator, addressable into the
// shared Document the Iterator is building.
type Item struct {
	Doc  *document.Document
	Node document.NodeHandle
}

// Iterator pulls top-level nodes, one at a time, from a parse running on a
// background goroutine.
type Iterator struct {
	items  chan Item
	done   chan error
	err    error
	closed bool
}

// New starts parsing data on a background goroutine and returns an Iterator
// over its top-level nodes. Consume it with Next until it returns false,
// then check Err.
func New(data []byte) *Iterator {
	it := &Iterator{
		items: make(chan Item, 8),
		done:  make(chan error, 1),
	}

	builder := document.NewDOMBuilder(data)
	sink := &streamingSink{inner: builder, items: it.items}

	go func() {
		defer close(it.items)
		sc := tokenizer.NewSlice(data)
		defer sc.Close()
		p := parser.New(sc, sink)
		it.done <- p.Parse()
	}()

	return it
}

// Next blocks until the next top-level node is available, reporting false
// once the parse has finished (successfully or not); call Err to
// distinguish the two.
func (it *Iterator) Next() (Item, bool) {
	item, ok := <-it.items
	if !ok {
		if it.err == nil {
			it.err = <-it.done
		}
		return Item{}, false
	}
	return item, true
}

// Err returns the error the underlying parse finished with, if any. It is
// only meaningful after Next has returned false.
func (it *Iterator) Err() error {
	return it.err
}

// streamingSink wraps a document.DOMBuilder, additionally publishing an
// Item to items every time a top-level node finishes.
type streamingSink struct {
	inner    *document.DOMBuilder
	items    chan Item
	depth    int
	rootNode document.NodeHandle
}

func (s *streamingSink) StartNode(name string, typeAnnotation string, span event.Span) error {
	if s.depth == 0 {
		s.rootNode = document.NodeHandle(s.inner.Document().NodeCount())
	}
	s.depth++
	return s.inner.StartNode(name, typeAnnotation, span)
}

func (s *streamingSink) Argument(value event.Value, typeAnnotation string, span event.Span) error {
	return s.inner.Argument(value, typeAnnotation, span)
}

func (s *streamingSink) Property(name string, value event.Value, typeAnnotation string, span event.Span) error {
	return s.inner.Property(name, value, typeAnnotation, span)
}

func (s *streamingSink) EndNode(hadChildren bool, span event.Span) error {
	if err := s.inner.EndNode(hadChildren, span); err != nil {
		return err
	}
	s.depth--
	if s.depth == 0 {
		s.items <- Item{Doc: s.inner.Document(), Node: s.rootNode}
	}
	return nil
}

var _ event.Sink = (*streamingSink)(nil)
