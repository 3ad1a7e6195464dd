// Package kdl implements a parser and serializer for KDL 2.0.0, the
// document-oriented configuration language (https://kdl.dev).
//
// Parse and ParseReader build a document.Document from source text; Encode
// writes one back out. ParseWithSink drives the event-based parser against
// any event.Sink, for callers who want to validate or stream a document
// without materializing it. ParseConcurrent partitions a large document and
// parses the partitions in parallel before merging them back into one
// Document.
package kdl
