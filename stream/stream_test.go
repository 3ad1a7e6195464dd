package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorYieldsOneItemPerTopLevelNode(t *testing.T) {
	it := New([]byte("a\nb\nc\n"))

	var names []string
	for {
		item, ok := it.Next()
		if !ok {
			break
		}
		names = append(names, item.Doc.Node(item.Node).Name())
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestIteratorItemsShareUnderlyingDocument(t *testing.T) {
	it := New([]byte("a\nb\n"))

	first, ok := it.Next()
	require.True(t, ok)
	second, ok := it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.False(t, ok)
	require.NoError(t, it.Err())

	assert.Same(t, first.Doc, second.Doc)
}

func TestIteratorPropagatesParseError(t *testing.T) {
	it := New([]byte("node =")) // '=' with no preceding key is a grammar error

	for {
		_, ok := it.Next()
		if !ok {
			break
		}
	}
	assert.Error(t, it.Err())
}

func TestIteratorYieldsChildrenWithinTopLevelNode(t *testing.T) {
	it := New([]byte("parent {\n    child\n}\n"))

	item, ok := it.Next()
	require.True(t, ok)
	n := item.Doc.Node(item.Node)
	assert.Equal(t, "parent", n.Name())
	require.Equal(t, 1, n.ChildCount())
	assert.Equal(t, "child", n.Child(0).Name())

	_, ok = it.Next()
	require.False(t, ok)
	require.NoError(t, it.Err())
}

func TestIteratorEmptyInputYieldsNoItems(t *testing.T) {
	it := New([]byte(""))
	_, ok := it.Next()
	assert.False(t, ok)
	assert.NoError(t, it.Err())
}
