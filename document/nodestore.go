package document

// nodeStore holds every node in a Document as a structure of arrays, indexed
// by NodeHandle. Arguments, properties, and children are stored in flat,
// append-only side arrays with each node owning a contiguous [start, start+
// count) range into them. Arguments and properties are appended as their
// events arrive, before any child of the node is opened; child handles are
// buffered by the builder and written as one block when the node ends, so
// a descendant's entries never land inside an ancestor's child range.
type nodeStore struct {
	name           []StringRef
	typeAnnotation []StringRef
	parent         []NodeHandle
	span           []Span

	argStart []int32
	argCount []int32

	propStart []int32
	propCount []int32

	childStart []int32
	childCount []int32

	argIndex  []ValueHandle
	propNames []StringRef
	propVals  []ValueHandle

	childIndex []NodeHandle
}

func (s *nodeStore) push(name, typeAnnotation StringRef, parent NodeHandle, span Span) NodeHandle {
	h := NodeHandle(len(s.name))
	s.name = append(s.name, name)
	s.typeAnnotation = append(s.typeAnnotation, typeAnnotation)
	s.parent = append(s.parent, parent)
	s.span = append(s.span, span)
	s.argStart = append(s.argStart, int32(len(s.argIndex)))
	s.argCount = append(s.argCount, 0)
	s.propStart = append(s.propStart, int32(len(s.propNames)))
	s.propCount = append(s.propCount, 0)
	s.childStart = append(s.childStart, int32(len(s.childIndex)))
	s.childCount = append(s.childCount, 0)
	return h
}

func (s *nodeStore) addArgument(h NodeHandle, v ValueHandle) {
	s.argIndex = append(s.argIndex, v)
	s.argCount[h]++
}

// setProperty sets name=v on h, overwriting any existing property with the
// same name already recorded on h (last write wins, position preserved).
func (s *nodeStore) setProperty(h NodeHandle, name StringRef, resolve func(StringRef) string, v ValueHandle) {
	start, count := s.propStart[h], s.propCount[h]
	target := resolve(name)
	for i := start; i < start+count; i++ {
		if resolve(s.propNames[i]) == target {
			s.propVals[i] = v
			return
		}
	}
	s.propNames = append(s.propNames, name)
	s.propVals = append(s.propVals, v)
	s.propCount[h]++
}

func (s *nodeStore) addChild(h, child NodeHandle) {
	s.childIndex = append(s.childIndex, child)
	s.childCount[h]++
}

// NodeView is a read-only, copyable accessor for a single node in a Document.
type NodeView struct {
	doc *Document
	h   NodeHandle
}

// Node returns a view over the node h refers to in d.
func (d *Document) Node(h NodeHandle) NodeView {
	return NodeView{doc: d, h: h}
}

// Handle returns n's underlying NodeHandle.
func (n NodeView) Handle() NodeHandle { return n.h }

// Name returns the node's name.
func (n NodeView) Name() string {
	return n.doc.String(n.doc.nodes.name[n.h])
}

// TypeAnnotation returns the node's type annotation, or "" if none.
func (n NodeView) TypeAnnotation() string {
	return n.doc.String(n.doc.nodes.typeAnnotation[n.h])
}

// Parent returns the node's parent, or NoNode at the document root.
func (n NodeView) Parent() NodeHandle {
	return n.doc.nodes.parent[n.h]
}

// Span returns the byte range of source text the node was parsed from.
func (n NodeView) Span() Span {
	return n.doc.nodes.span[n.h]
}

// ArgumentCount returns the number of positional arguments the node has.
func (n NodeView) ArgumentCount() int {
	return int(n.doc.nodes.argCount[n.h])
}

// Argument returns a view over the node's i'th positional argument.
func (n NodeView) Argument(i int) ValueView {
	idx := n.doc.nodes.argStart[n.h] + int32(i)
	return n.doc.Value(n.doc.nodes.argIndex[idx])
}

// PropertyCount returns the number of properties the node has.
func (n NodeView) PropertyCount() int {
	return int(n.doc.nodes.propCount[n.h])
}

// PropertyAt returns the name and value of the node's i'th property, in
// first-declared order.
func (n NodeView) PropertyAt(i int) (string, ValueView) {
	idx := n.doc.nodes.propStart[n.h] + int32(i)
	name := n.doc.String(n.doc.nodes.propNames[idx])
	return name, n.doc.Value(n.doc.nodes.propVals[idx])
}

// Property looks up a property by name, returning its value and whether it
// was found.
func (n NodeView) Property(name string) (ValueView, bool) {
	for i := 0; i < n.PropertyCount(); i++ {
		k, v := n.PropertyAt(i)
		if k == name {
			return v, true
		}
	}
	return ValueView{}, false
}

// ChildCount returns the number of direct children the node has.
func (n NodeView) ChildCount() int {
	return int(n.doc.nodes.childCount[n.h])
}

// Child returns the node's i'th direct child.
func (n NodeView) Child(i int) NodeView {
	idx := n.doc.nodes.childStart[n.h] + int32(i)
	return n.doc.Node(n.doc.nodes.childIndex[idx])
}

// Children returns the handles of the node's direct children, in source order.
func (n NodeView) Children() []NodeHandle {
	start, count := n.doc.nodes.childStart[n.h], n.doc.nodes.childCount[n.h]
	return n.doc.nodes.childIndex[start : start+count]
}
