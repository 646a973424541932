package jcodec

import (
	"fmt"
	"strconv"
	"strings"
)

// FrameKind identifies the shape of one ErrorTrace breadcrumb.
type FrameKind uint8

const (
	// FieldFrame records a record field name, rendered as ".name".
	FieldFrame FrameKind = iota
	// IndexFrame records a sequence position, rendered as "[i]".
	IndexFrame
	// VariantFrame records a sum type's selected tag, rendered as "{tag}".
	VariantFrame
	// MessageFrame records the terminal failure message, rendered as "(msg)".
	MessageFrame
)

// Frame is one breadcrumb in an ErrorTrace.
type Frame struct {
	Kind    FrameKind
	Name    string
	Index   int
	Variant string
	Message string
}

func (f Frame) appendTo(b *strings.Builder) {
	switch f.Kind {
	case FieldFrame:
		b.WriteByte('.')
		b.WriteString(f.Name)
	case IndexFrame:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(f.Index))
		b.WriteByte(']')
	case VariantFrame:
		b.WriteByte('{')
		b.WriteString(f.Variant)
		b.WriteByte('}')
	case MessageFrame:
		b.WriteByte('(')
		b.WriteString(f.Message)
		b.WriteByte(')')
	}
}

// ErrorTrace is a stack of path breadcrumbs describing where a decode
// failed, built root-first: the frame closest to the document root is at
// index 0, the terminal Message frame is appended last. Composite decoders
// (records, sequences, sums) extend a trace with Field/Index/Variant before
// recursing into a child decoder, so by the time a leaf raises an error the
// full ancestor path is already threaded through -- rendering is then a
// single linear pass with no reversal needed.
//
// An ErrorTrace is built by value via the With* methods, each of which
// caps the parent at its own length (a full slice expression) before
// appending, so the new frame always goes into a freshly allocated copy and
// sibling traces built from one parent never alias each other. Every With*
// call therefore allocates, on the non-error decode path as well.
type ErrorTrace []Frame

// WithField returns a new trace with a FieldFrame appended.
func (t ErrorTrace) WithField(name string) ErrorTrace {
	return append(t[:len(t):len(t)], Frame{Kind: FieldFrame, Name: name})
}

// WithIndex returns a new trace with an IndexFrame appended.
func (t ErrorTrace) WithIndex(i int) ErrorTrace {
	return append(t[:len(t):len(t)], Frame{Kind: IndexFrame, Index: i})
}

// WithVariant returns a new trace with a VariantFrame appended.
func (t ErrorTrace) WithVariant(tag string) ErrorTrace {
	return append(t[:len(t):len(t)], Frame{Kind: VariantFrame, Variant: tag})
}

// Fail builds the terminal error for this trace: a *DecodeError carrying
// the trace plus a final MessageFrame with msg.
func (t ErrorTrace) Fail(msg string) *DecodeError {
	full := append(t[:len(t):len(t)], Frame{Kind: MessageFrame, Message: msg})
	return &DecodeError{Trace: full}
}

// Failf is Fail with fmt.Sprintf-style formatting.
func (t ErrorTrace) Failf(format string, args ...any) *DecodeError {
	return t.Fail(fmt.Sprintf(format, args...))
}

// String renders the trace as "<path>(message)" e.g.
// ".rows[0].elements[0].distance.value(missing)".
func (t ErrorTrace) String() string {
	var b strings.Builder
	for _, f := range t {
		f.appendTo(&b)
	}
	return b.String()
}
