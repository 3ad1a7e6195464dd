// Package document implements the structure-of-arrays DOM that a parsed KDL
// document is materialized into. Rather than a graph of pointer-linked Node
// objects, every node's fields live in parallel slices indexed by a small
// integer handle; traversal and mutation go through that handle instead of a
// pointer, which is what lets a Document be sliced, rebased, and merged
// cheaply in the partition/merge path.
package document

import "github.com/kdlsoa/kdl/event"

// NodeHandle is an opaque, stable reference to a node within a single
// Document. It remains valid for the lifetime of the Document; it is only
// comparable against handles from the same Document.
type NodeHandle int32

// NoNode is the zero value of an absent NodeHandle (e.g. a node's parent at
// the document root).
const NoNode NodeHandle = -1

// ValueHandle is an opaque reference to an entry in a Document's value
// store, shared by arguments and property values alike.
type ValueHandle int32

// Span is the byte range of source text a node or value was parsed from.
type Span = event.Span

// Document is a single parsed KDL document: a string pool, a node store, and
// a value store, plus the ordered list of handles to the document's
// top-level nodes.
type Document struct {
	strings StringPool
	nodes   nodeStore
	values  valueStore

	// roots holds the handles of the document's top-level nodes, in source order.
	roots []NodeHandle
}

// New returns an empty Document ready to be built into, typically via a DOMBuilder.
func New() *Document {
	return &Document{
		strings: newStringPool(),
	}
}

// Roots returns the handles of the document's top-level nodes, in source order.
func (d *Document) Roots() []NodeHandle {
	return d.roots
}

// NodeCount returns the total number of nodes in the document, at every depth.
func (d *Document) NodeCount() int {
	return len(d.nodes.name)
}

// String resolves a StringRef to its text. The returned string may alias the
// document's source buffer or its interned pool; callers must not assume
// either.
func (d *Document) String(ref StringRef) string {
	return d.strings.Resolve(ref)
}
