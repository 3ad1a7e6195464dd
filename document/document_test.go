package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdlsoa/kdl/event"
)

func TestNewDocumentIsEmpty(t *testing.T) {
	d := New()
	assert.Empty(t, d.Roots())
	assert.Equal(t, 0, d.NodeCount())
}

func TestDocumentNodeCountAndSpan(t *testing.T) {
	b := NewDOMBuilder(nil)
	require.NoError(t, b.StartNode("a", "", Span{Start: 0, End: 1}))
	require.NoError(t, b.EndNode(false, Span{Start: 0, End: 1}))
	require.NoError(t, b.StartNode("b", "", Span{Start: 2, End: 3}))
	require.NoError(t, b.EndNode(false, Span{Start: 2, End: 3}))

	d := b.Document()
	assert.Equal(t, 2, d.NodeCount())

	n := d.Node(d.Roots()[1])
	assert.Equal(t, Span{Start: 2, End: 3}, n.Span())
	assert.Equal(t, NoNode, n.Parent())
}

func TestNodeViewHandleRoundTrips(t *testing.T) {
	b := NewDOMBuilder(nil)
	require.NoError(t, b.StartNode("a", "", Span{}))
	require.NoError(t, b.EndNode(false, Span{}))

	d := b.Document()
	h := d.Roots()[0]
	n := d.Node(h)
	assert.Equal(t, h, n.Handle())
}

func TestValueViewHandleRoundTrips(t *testing.T) {
	b := NewDOMBuilder(nil)
	require.NoError(t, b.StartNode("a", "", Span{}))
	require.NoError(t, b.Argument(event.Value{Raw: []byte("1"), Kind: event.ValueDecimalInt}, "", Span{}))
	require.NoError(t, b.EndNode(false, Span{}))

	d := b.Document()
	n := d.Node(d.Roots()[0])
	v := n.Argument(0)
	assert.Equal(t, v.Handle(), d.Value(v.Handle()).Handle())
}
