package kdl_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdlsoa/kdl"
	"github.com/kdlsoa/kdl/document"
	"github.com/kdlsoa/kdl/event"
)

func TestParseBasicNode(t *testing.T) {
	doc, err := kdl.Parse([]byte("node\n"))
	require.NoError(t, err)
	require.Len(t, doc.Roots(), 1)

	n := doc.Node(doc.Roots()[0])
	assert.Equal(t, "node", n.Name())
	assert.Equal(t, 0, n.ArgumentCount())
	assert.Equal(t, 0, n.PropertyCount())
	assert.Equal(t, 0, n.ChildCount())
}

func TestParseArguments(t *testing.T) {
	doc, err := kdl.Parse([]byte(`node "a" "b"`))
	require.NoError(t, err)

	n := doc.Node(doc.Roots()[0])
	require.Equal(t, 2, n.ArgumentCount())
	assert.Equal(t, "a", n.Argument(0).String())
	assert.Equal(t, "b", n.Argument(1).String())
}

func TestParsePropertyLastWriteWins(t *testing.T) {
	doc, err := kdl.Parse([]byte("node k=1 k=2"))
	require.NoError(t, err)

	n := doc.Node(doc.Roots()[0])
	require.Equal(t, 0, n.ArgumentCount())
	require.Equal(t, 1, n.PropertyCount())

	v, ok := n.Property("k")
	require.True(t, ok)
	assert.Equal(t, document.KindInteger, v.Kind())
	assert.EqualValues(t, 2, v.Int())
}

func TestParseTypeAnnotation(t *testing.T) {
	doc, err := kdl.Parse([]byte("(u8)byte 255"))
	require.NoError(t, err)

	n := doc.Node(doc.Roots()[0])
	assert.Equal(t, "byte", n.Name())
	assert.Equal(t, "u8", n.TypeAnnotation())

	arg := n.Argument(0)
	assert.EqualValues(t, 255, arg.Int())
	assert.Equal(t, "", arg.TypeAnnotation())
}

func TestParseChildren(t *testing.T) {
	doc, err := kdl.Parse([]byte("parent {\n    child1\n    child2 arg=1\n}\n"))
	require.NoError(t, err)

	parent := doc.Node(doc.Roots()[0])
	require.Equal(t, 2, parent.ChildCount())

	child1 := parent.Child(0)
	assert.Equal(t, "child1", child1.Name())

	child2 := parent.Child(1)
	assert.Equal(t, "child2", child2.Name())
	v, ok := child2.Property("arg")
	require.True(t, ok)
	assert.EqualValues(t, 1, v.Int())
}

func TestParseMultilineString(t *testing.T) {
	doc, err := kdl.Parse([]byte("n \"\"\"\n    hello\n    \"\"\"\n"))
	require.NoError(t, err)

	n := doc.Node(doc.Roots()[0])
	require.Equal(t, 1, n.ArgumentCount())
	assert.Equal(t, "hello", n.Argument(0).String())
}

func TestParseSlashdashSuppression(t *testing.T) {
	doc, err := kdl.Parse([]byte("/-node \"x\"\nkept\n"))
	require.NoError(t, err)

	require.Len(t, doc.Roots(), 1)
	assert.Equal(t, "kept", doc.Node(doc.Roots()[0]).Name())
}

func TestParseSlashdashArgument(t *testing.T) {
	doc, err := kdl.Parse([]byte(`node "a" /-"b" "c"`))
	require.NoError(t, err)

	n := doc.Node(doc.Roots()[0])
	require.Equal(t, 2, n.ArgumentCount())
	assert.Equal(t, "a", n.Argument(0).String())
	assert.Equal(t, "c", n.Argument(1).String())
}

func TestParseKeywordLiterals(t *testing.T) {
	doc, err := kdl.Parse([]byte(`node #true #false #null #inf #-inf #nan`))
	require.NoError(t, err)

	n := doc.Node(doc.Roots()[0])
	require.Equal(t, 6, n.ArgumentCount())
	assert.Equal(t, document.KindBool, n.Argument(0).Kind())
	assert.True(t, n.Argument(0).Bool())
	assert.Equal(t, document.KindBool, n.Argument(1).Kind())
	assert.False(t, n.Argument(1).Bool())
	assert.Equal(t, document.KindNull, n.Argument(2).Kind())
	assert.Equal(t, document.KindInf, n.Argument(3).Kind())
	assert.Equal(t, document.KindNegInf, n.Argument(4).Kind())
	assert.Equal(t, document.KindNaN, n.Argument(5).Kind())
}

func TestParseIntegerOverflowFallsBackToFloatRawInsteadOfErroring(t *testing.T) {
	doc, err := kdl.Parse([]byte("node 99999999999999999999999999"))
	require.NoError(t, err)

	n := doc.Node(doc.Roots()[0])
	require.Equal(t, 1, n.ArgumentCount())
	arg := n.Argument(0)
	assert.Equal(t, document.KindFloatRaw, arg.Kind())
	assert.Equal(t, "99999999999999999999999999", arg.RawLiteral())
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := kdl.Parse([]byte(`node "unterminated`))
	require.Error(t, err)

	var kdlErr *kdl.Error
	require.ErrorAs(t, err, &kdlErr)
	assert.Equal(t, kdl.CategoryLexical, kdlErr.Category)
	assert.Equal(t, 18, kdlErr.Offset)
}

func TestParseTrailingInputError(t *testing.T) {
	_, err := kdl.Parse([]byte("node\n}"))
	require.Error(t, err)

	var kdlErr *kdl.Error
	require.ErrorAs(t, err, &kdlErr)
	assert.Equal(t, kdl.CategoryGrammatical, kdlErr.Category)
}

func TestEncodeRoundTrip(t *testing.T) {
	src := []byte("parent {\n    child1\n    child2 arg=1\n}\n")
	doc, err := kdl.Parse(src)
	require.NoError(t, err)

	out := kdl.Encode(doc)
	doc2, err := kdl.Parse(out)
	require.NoError(t, err)

	assert.Equal(t, string(kdl.Encode(doc)), string(kdl.Encode(doc2)))
}

func TestEncodeIdempotentCanonicalForm(t *testing.T) {
	src := []byte(`node "a" 1 k="v" { child }`)
	doc1, err := kdl.Parse(src)
	require.NoError(t, err)
	out1 := kdl.Encode(doc1)

	doc2, err := kdl.Parse(out1)
	require.NoError(t, err)
	out2 := kdl.Encode(doc2)

	assert.Equal(t, string(out1), string(out2))
}

type countingSink struct {
	nodes int
}

func (s *countingSink) StartNode(name, typeAnnotation string, span event.Span) error {
	s.nodes++
	return nil
}
func (s *countingSink) Argument(value event.Value, typeAnnotation string, span event.Span) error {
	return nil
}
func (s *countingSink) Property(name string, value event.Value, typeAnnotation string, span event.Span) error {
	return nil
}
func (s *countingSink) EndNode(hadChildren bool, span event.Span) error {
	return nil
}

func TestParseWithSinkEmitsOneStartPerNode(t *testing.T) {
	sink := &countingSink{}
	err := kdl.ParseWithSink([]byte("a\nb {\n    c\n}\n"), sink)
	require.NoError(t, err)
	assert.Equal(t, 3, sink.nodes)
}

func TestParseWithSinkPropagatesError(t *testing.T) {
	err := kdl.ParseWithSink([]byte(`"unterminated`), &countingSink{})
	assert.Error(t, err)
}

func TestParseReader(t *testing.T) {
	r := bytes.NewReader([]byte("node \"a\"\n"))
	doc, err := kdl.ParseReader(r)
	require.NoError(t, err)

	n := doc.Node(doc.Roots()[0])
	assert.Equal(t, "node", n.Name())
	assert.Equal(t, "a", n.Argument(0).String())
}

func TestFindPartitionsAndMerge(t *testing.T) {
	var src bytes.Buffer
	for i := 0; i < 40; i++ {
		src.WriteString("node\n")
	}

	full, err := kdl.Parse(src.Bytes())
	require.NoError(t, err)

	offsets := kdl.FindPartitions(src.Bytes(), 40)
	require.NotEmpty(t, offsets)

	var docs []*document.Document
	start := 0
	for _, off := range offsets {
		d, err := kdl.Parse(src.Bytes()[start:off])
		require.NoError(t, err)
		docs = append(docs, d)
		start = off
	}
	d, err := kdl.Parse(src.Bytes()[start:])
	require.NoError(t, err)
	docs = append(docs, d)

	merged := kdl.MergeDocuments(docs)
	require.Equal(t, len(full.Roots()), len(merged.Roots()))
	for i := range full.Roots() {
		assert.Equal(t, full.Node(full.Roots()[i]).Name(), merged.Node(merged.Roots()[i]).Name())
	}
}

func TestVirtualDocument(t *testing.T) {
	d1, err := kdl.Parse([]byte("a\n"))
	require.NoError(t, err)
	d2, err := kdl.Parse([]byte("b\n"))
	require.NoError(t, err)

	vd := kdl.NewVirtualDocument([]*document.Document{d1, d2})
	roots := vd.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "a", vd.Node(roots[0]).Name())
	assert.Equal(t, "b", vd.Node(roots[1]).Name())

	merged := vd.Merge()
	require.Len(t, merged.Roots(), 2)
}

func TestParseConcurrent(t *testing.T) {
	var src bytes.Buffer
	for i := 0; i < 200; i++ {
		src.WriteString("node\n")
	}

	doc, err := kdl.ParseConcurrent(context.Background(), src.Bytes(), 64)
	require.NoError(t, err)
	assert.Len(t, doc.Roots(), 200)
}

func TestParseConcurrentSmallInputFallsBackToDirectParse(t *testing.T) {
	doc, err := kdl.ParseConcurrent(context.Background(), []byte("node\n"), 1<<20)
	require.NoError(t, err)
	assert.Len(t, doc.Roots(), 1)
}

type serverConfig struct {
	Host string
	Port int
}

func TestUnmarshalBindsNodesToStructFields(t *testing.T) {
	var cfg serverConfig
	err := kdl.Unmarshal([]byte("host \"localhost\"\nport 8080\n"), &cfg)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
}

func TestUnmarshalPropagatesParseError(t *testing.T) {
	var cfg serverConfig
	err := kdl.Unmarshal([]byte(`host "unterminated`), &cfg)
	assert.Error(t, err)
}

func TestMarshalRendersCanonicalKDL(t *testing.T) {
	cfg := serverConfig{Host: "localhost", Port: 8080}
	out, err := kdl.Marshal(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "host \"localhost\"\nport 8080\n", string(out))
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	cfg := serverConfig{Host: "example.com", Port: 443}
	out, err := kdl.Marshal(&cfg)
	require.NoError(t, err)

	var back serverConfig
	require.NoError(t, kdl.Unmarshal(out, &back))
	assert.Equal(t, cfg, back)
}

func TestParseConcurrentPropagatesError(t *testing.T) {
	var src bytes.Buffer
	for i := 0; i < 200; i++ {
		src.WriteString("node\n")
	}
	src.WriteString("bad \"unterminated\n")

	_, err := kdl.ParseConcurrent(context.Background(), src.Bytes(), 64)
	assert.Error(t, err)
}
