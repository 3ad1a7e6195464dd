package document

// GlobalHandle addresses a node within a VirtualDocument: a document index
// into its backing slice, plus a NodeHandle within that document.
type GlobalHandle struct {
	DocIndex int
	Node     NodeHandle
}

// VirtualDocument is a read-only façade over an ordered list of Documents,
// presenting them as a single logical document without physically merging
// their storage. It exists for callers that parsed a large input as
// independent partitions and want to address the whole as one document
// without paying Merge's string-reinterning cost up front.
type VirtualDocument struct {
	docs []*Document
}

// NewVirtualDocument returns a VirtualDocument presenting docs, in order, as
// a single logical document.
func NewVirtualDocument(docs []*Document) *VirtualDocument {
	return &VirtualDocument{docs: docs}
}

// Roots returns the handles of every top-level node across all underlying
// documents, in order.
func (v *VirtualDocument) Roots() []GlobalHandle {
	var roots []GlobalHandle
	for di, d := range v.docs {
		for _, h := range d.Roots() {
			roots = append(roots, GlobalHandle{DocIndex: di, Node: h})
		}
	}
	return roots
}

// Node returns a view over the node h refers to.
func (v *VirtualDocument) Node(h GlobalHandle) NodeView {
	return v.docs[h.DocIndex].Node(h.Node)
}

// Merge physically combines every document backing v into one Document, in
// the same way Merge(docs) does.
func (v *VirtualDocument) Merge() *Document {
	return Merge(v.docs)
}

// DocumentCount returns the number of documents backing v.
func (v *VirtualDocument) DocumentCount() int {
	return len(v.docs)
}
