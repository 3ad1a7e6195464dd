package kdl

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/kdlsoa/kdl/document"
	"github.com/kdlsoa/kdl/event"
	"github.com/kdlsoa/kdl/internal/parser"
	"github.com/kdlsoa/kdl/internal/partition"
	"github.com/kdlsoa/kdl/internal/serialize"
	"github.com/kdlsoa/kdl/internal/tokenizer"
)

// Parse parses data as a complete KDL 2.0.0 document, returning its DOM.
func Parse(data []byte, opts ...ParseOptions) (*document.Document, error) {
	o := resolveParseOptions(opts)

	sc := tokenizer.NewSlice(data)
	defer sc.Close()

	builder := document.NewDOMBuilder(sourceFor(data, o))
	p := parser.New(sc, builder)
	if err := p.Parse(); err != nil {
		return nil, wrapError(err)
	}
	return builder.Document(), nil
}

// ParseReader parses everything read from r as a complete KDL 2.0.0
// document. Since a streamed reader has no stable backing buffer to alias,
// every string is always copied into the Document's pool.
func ParseReader(r io.Reader, opts ...ParseOptions) (*document.Document, error) {
	sc := tokenizer.New(r)
	defer sc.Close()

	builder := document.NewDOMBuilder(nil)
	p := parser.New(sc, builder)
	if err := p.Parse(); err != nil {
		return nil, wrapError(err)
	}
	return builder.Document(), nil
}

// ParseWithSink drives the parser over data, emitting events to sink
// instead of building a Document. Use this to validate a document, or to
// feed a custom consumer, without paying for DOM construction.
func ParseWithSink(data []byte, sink event.Sink) error {
	sc := tokenizer.NewSlice(data)
	defer sc.Close()
	p := parser.New(sc, sink)
	return wrapError(p.Parse())
}

// Encode renders doc back into canonical KDL 2.0.0 source text.
func Encode(doc *document.Document, opts ...SerializeOptions) []byte {
	o := serialize.DefaultOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return serialize.Document(doc, o)
}

func resolveParseOptions(opts []ParseOptions) ParseOptions {
	if len(opts) > 0 {
		return opts[0]
	}
	return DefaultParseOptions
}

func sourceFor(data []byte, o ParseOptions) []byte {
	if o.CopyStrings {
		return nil
	}
	return data
}

// FindPartitions locates byte offsets in data that are safe to split a
// parallel parse on, each falling between two top-level nodes. targetSize
// is the approximate size, in bytes, of each resulting chunk.
func FindPartitions(data []byte, targetSize int) []int {
	return partition.FindPartitions(data, targetSize)
}

// MergeDocuments physically combines docs, in order, into a single Document.
func MergeDocuments(docs []*document.Document) *document.Document {
	return document.Merge(docs)
}

// NewVirtualDocument presents docs, in order, as a single logical document
// without physically merging their storage.
func NewVirtualDocument(docs []*document.Document) *document.VirtualDocument {
	return document.NewVirtualDocument(docs)
}

// ParseConcurrent splits data into partitions of roughly targetChunkSize
// bytes at safe top-level node boundaries, parses each partition on its own
// goroutine, and merges the results back into a single Document. If data is
// too small to partition, it parses data directly on the calling goroutine.
//
// A parse failure in any partition is returned to the caller once every
// partition's goroutine has finished; the other partitions' parses are not
// interrupted, and ctx is not consulted by them.
func ParseConcurrent(ctx context.Context, data []byte, targetChunkSize int, opts ...ParseOptions) (*document.Document, error) {
	offsets := partition.FindPartitions(data, targetChunkSize)
	if len(offsets) == 0 {
		return Parse(data, opts...)
	}

	bounds := make([][2]int, 0, len(offsets)+1)
	start := 0
	for _, off := range offsets {
		bounds = append(bounds, [2]int{start, off})
		start = off
	}
	bounds = append(bounds, [2]int{start, len(data)})

	docs := make([]*document.Document, len(bounds))
	g, _ := errgroup.WithContext(ctx)
	for i, b := range bounds {
		i, b := i, b
		g.Go(func() error {
			doc, err := Parse(data[b[0]:b[1]], opts...)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return document.Merge(docs), nil
}
