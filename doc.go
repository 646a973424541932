// Package jcodec is a high-performance streaming JSON codec core.  It
// provides a pull-style decoder built on a retractable byte reader, a
// push-style encoder, and the generic record/sum decoding machinery used to
// wire user-defined product and union types to the codec.  Only UTF-8
// encoding is supported and decode errors carry a jq-style path trace
// pointing at the exact field, index, or variant that failed.
//
// # Streaming big files
//
// The Chunker type assembles whole top-level JSON documents out of an
// arbitrarily segmented byte stream (e.g. line-delimited JSON read through a
// fixed-size file buffer) by tracking brace/bracket nesting depth and
// in-string state, invoking a callback once per complete document.
//
// # Testing
//
// jcodec is tested with table-driven tests in the standard testing package,
// plus testify assertions for the generic record/sum/collection machinery.
// Field-name dispatch (StringMatrix), number parsing (UnsafeNumbers), and
// error trace rendering each have focused unit tests; the chunker is tested
// by feeding the same input at every possible chunk boundary.
package jcodec
