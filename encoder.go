package jcodec

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
)

// Encoder is the push-style serialization capability for a Go type. Unlike
// Decoder, encoding a valid Go value is total: there is no error return.
// Grounded on spec.md section 4.9; the indent option spec.md threads
// through each call is instead carried on the Writer itself (set once at
// construction), which is the idiomatic Go shape (encoding/json.Encoder
// does the same with SetIndent) and avoids re-passing it at every call site.
type Encoder[A any] interface {
	Encode(w *Writer, v A)
}

// EncoderFunc adapts a plain function to the Encoder interface.
type EncoderFunc[A any] func(w *Writer, v A)

func (f EncoderFunc[A]) Encode(w *Writer, v A) { f(w, v) }

// byteStringWriter is the subset of *bytes.Buffer / *strings.Builder that
// appendJSONString needs.
type byteStringWriter interface {
	WriteByte(byte) error
	WriteString(string) (int, error)
	WriteRune(rune) (int, error)
}

// appendJSONString writes s as a quoted, escaped JSON string literal. Used
// by both Writer.AppendString and Lexer.SkipValue's normalized echo.
func appendJSONString(b byteStringWriter, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(stringWriterAsFmt{b}, "\\u%04x", r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}

// stringWriterAsFmt adapts byteStringWriter to io.Writer for fmt.Fprintf.
type stringWriterAsFmt struct{ b byteStringWriter }

func (w stringWriterAsFmt) Write(p []byte) (int, error) {
	n := 0
	for _, c := range p {
		if err := w.b.WriteByte(c); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Writer is a growable UTF-8 output buffer with amortized O(1) append,
// matching spec.md section 4.9. When constructed with indentation enabled,
// PushIndent/PopIndent/Newline emit "\n" plus two spaces per level between
// fields and elements; compact writers emit nothing extra.
type Writer struct {
	buf    bytes.Buffer
	level  int
	indent bool
}

// NewWriter returns a compact (no whitespace) Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// NewIndentedWriter returns a Writer that emits a newline and two spaces
// per nesting level between fields and elements.
func NewIndentedWriter() *Writer {
	return &Writer{indent: true}
}

// AppendChar appends a single raw structural byte, e.g. '{', ':', ','.
func (w *Writer) AppendChar(c byte) {
	w.buf.WriteByte(c)
}

// AppendRaw appends s verbatim, unescaped -- used for already-formatted
// literals like number text or "true"/"false"/"null".
func (w *Writer) AppendRaw(s string) {
	w.buf.WriteString(s)
}

// AppendString appends s as a JSON-string-escaped quoted literal.
func (w *Writer) AppendString(s string) {
	appendJSONString(&w.buf, s)
}

// Newline emits "\n" followed by two spaces per current indent level, if
// indentation is enabled; it is a no-op on a compact Writer.
func (w *Writer) Newline() {
	if !w.indent {
		return
	}
	w.buf.WriteByte('\n')
	for i := 0; i < w.level; i++ {
		w.buf.WriteString("  ")
	}
}

// PushIndent increases the current indent level by one.
func (w *Writer) PushIndent() {
	w.level++
}

// PopIndent decreases the current indent level by one.
func (w *Writer) PopIndent() {
	w.level--
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// String returns the accumulated output as a string.
func (w *Writer) String() string {
	return w.buf.String()
}

// Primitive encoders. Each is total: encoding a Go value of these types
// never fails.

var BoolEncoder = EncoderFunc[bool](func(w *Writer, v bool) {
	if v {
		w.AppendRaw("true")
	} else {
		w.AppendRaw("false")
	}
})

var StringEncoder = EncoderFunc[string](func(w *Writer, v string) {
	w.AppendString(v)
})

var Int64Encoder = EncoderFunc[int64](func(w *Writer, v int64) {
	w.AppendRaw(strconv.FormatInt(v, 10))
})

var Int32Encoder = EncoderFunc[int32](func(w *Writer, v int32) {
	w.AppendRaw(strconv.FormatInt(int64(v), 10))
})

var Int16Encoder = EncoderFunc[int16](func(w *Writer, v int16) {
	w.AppendRaw(strconv.FormatInt(int64(v), 10))
})

var Int8Encoder = EncoderFunc[int8](func(w *Writer, v int8) {
	w.AppendRaw(strconv.FormatInt(int64(v), 10))
})

var Float64Encoder = EncoderFunc[float64](func(w *Writer, v float64) {
	w.AppendRaw(strconv.FormatFloat(v, 'g', -1, 64))
})

var Float32Encoder = EncoderFunc[float32](func(w *Writer, v float32) {
	w.AppendRaw(strconv.FormatFloat(float64(v), 'g', -1, 32))
})

var BigIntEncoder = EncoderFunc[*big.Int](func(w *Writer, v *big.Int) {
	w.AppendRaw(v.String())
})

var BigFloatEncoder = EncoderFunc[*big.Float](func(w *Writer, v *big.Float) {
	w.AppendRaw(v.Text('g', -1))
})

// Encode runs enc against v using a fresh Writer (indented if indent is
// true) and returns the resulting JSON text. This is the "encode(a) ->
// text" entry point from spec.md section 6.
func Encode[A any](v A, enc Encoder[A], indent bool) string {
	var w *Writer
	if indent {
		w = NewIndentedWriter()
	} else {
		w = NewWriter()
	}
	enc.Encode(w, v)
	return w.String()
}
