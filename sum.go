package jcodec

import "strings"

// VariantSpec is one arm of a sum type's shape description: a tag name and
// a Decode function producing the common result type A, typically by
// constructing A from a concrete variant value (A is usually an interface
// or a tagged-union struct; boxing the concrete value into A is the
// caller's Decode closure, the same way FieldSpec.Set is the caller's
// typed writer in record.go).
type VariantSpec[A any] struct {
	Name   string
	Decode func(trace ErrorTrace, in RetractReader) (A, error)
}

// WrapperSumDecoder decodes the "wrapper object" sum encoding from spec.md
// section 4.7: a single-key object `{"TagName": <variant body>}`.
//
// Grounded on the teacher's convertObject field loop (json.go), narrowed to
// the exactly-one-key case: FirstObject must report a key, Field resolves
// it through the variant StringMatrix, and the trailing '}' check rejects
// any additional key.
type WrapperSumDecoder[A any] struct {
	variants []VariantSpec[A]
	matrix   *StringMatrix
}

// NewWrapperSumDecoder builds a WrapperSumDecoder, precomputing its
// StringMatrix once over the variant tag names.
func NewWrapperSumDecoder[A any](variants []VariantSpec[A]) *WrapperSumDecoder[A] {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return &WrapperSumDecoder[A]{variants: variants, matrix: NewStringMatrix(names)}
}

func (d *WrapperSumDecoder[A]) Decode(trace ErrorTrace, in RetractReader) (A, error) {
	var zero A
	if err := defaultLexer.Char(trace, in, '{'); err != nil {
		return zero, err
	}

	more, err := defaultLexer.FirstObject(trace, in)
	if err != nil {
		return zero, err
	}
	if !more {
		return zero, trace.Fail("expected non-empty object")
	}

	ord, err := defaultLexer.Field(trace, in, d.matrix)
	if err != nil {
		return zero, err
	}
	if ord < 0 {
		return zero, trace.Fail("invalid disambiguator")
	}

	v, err := d.variants[ord].Decode(trace.WithVariant(d.variants[ord].Name), in)
	if err != nil {
		return zero, err
	}

	if err := defaultLexer.Char(trace, in, '}'); err != nil {
		return zero, err
	}
	return v, nil
}

func (d *WrapperSumDecoder[A]) Missing(trace ErrorTrace) (A, error) {
	var zero A
	return zero, trace.Fail("missing")
}

// DiscriminatorSumDecoder decodes the "discriminator field" sum encoding
// from spec.md section 4.7: an ordinary object carrying a tag field (the
// discriminator) alongside the variant's own fields, e.g.
// `{"kind": "Circle", "radius": 1.5}`.
//
// Since the discriminator can appear anywhere among the object's keys, every
// non-discriminator field (before or after it) is captured as raw normalized
// JSON text via Lexer.SkipValue and replayed into the selected variant's
// decoder afterward, as a freshly synthesized `{...}` document -- the
// buffer-and-replay strategy spec.md 4.7 describes, grounded on the same
// SkipValue normalization path the teacher's convertValue dispatch table
// inspired (lexer.go).
type DiscriminatorSumDecoder[A any] struct {
	discriminator string
	variants      []VariantSpec[A]
	matrix        *StringMatrix
}

// NewDiscriminatorSumDecoder builds a DiscriminatorSumDecoder over the
// given discriminator field name and variant tag values.
func NewDiscriminatorSumDecoder[A any](discriminator string, variants []VariantSpec[A]) *DiscriminatorSumDecoder[A] {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return &DiscriminatorSumDecoder[A]{
		discriminator: discriminator,
		variants:      variants,
		matrix:        NewStringMatrix(names),
	}
}

type capturedField struct {
	key   string
	value string
}

func (d *DiscriminatorSumDecoder[A]) Decode(trace ErrorTrace, in RetractReader) (A, error) {
	var zero A
	if err := defaultLexer.Char(trace, in, '{'); err != nil {
		return zero, err
	}

	more, err := defaultLexer.FirstObject(trace, in)
	if err != nil {
		return zero, err
	}

	var captured []capturedField
	selected := -1

	for more {
		key, err := defaultLexer.String(trace, in)
		if err != nil {
			return zero, err
		}
		if err := defaultLexer.Char(trace, in, ':'); err != nil {
			return zero, err
		}

		if key == d.discriminator {
			if selected >= 0 {
				return zero, trace.Failf("duplicate disambiguator '%s'", d.discriminator)
			}
			ord, err := defaultLexer.Ordinal(trace, in, d.matrix)
			if err != nil {
				return zero, err
			}
			if ord < 0 {
				return zero, trace.Failf("invalid disambiguator in '%s'", d.discriminator)
			}
			selected = ord
		} else {
			var valBuf strings.Builder
			if err := defaultLexer.SkipValue(trace, in, &valBuf); err != nil {
				return zero, err
			}
			captured = append(captured, capturedField{key: key, value: valBuf.String()})
		}

		more, err = defaultLexer.NextObject(trace, in)
		if err != nil {
			return zero, err
		}
	}

	if selected < 0 {
		return zero, trace.Failf("missing disambiguator '%s'", d.discriminator)
	}

	var buf strings.Builder
	buf.WriteByte('{')
	for i, f := range captured {
		if i > 0 {
			buf.WriteByte(',')
		}
		appendJSONString(&buf, f.key)
		buf.WriteByte(':')
		buf.WriteString(f.value)
	}
	buf.WriteByte('}')

	variant := d.variants[selected]
	r := NewTextReader(buf.String())
	v, err := variant.Decode(trace.WithVariant(variant.Name), r)
	if err != nil {
		return zero, err
	}
	return v, nil
}

func (d *DiscriminatorSumDecoder[A]) Missing(trace ErrorTrace) (A, error) {
	var zero A
	return zero, trace.Fail("missing")
}

// VariantEncSpec is one arm of a sum type's encode-side shape description.
// WriteValue encodes the variant as a complete JSON value, for
// WrapperSumEncoder. WriteFields encodes just the variant's own
// "name":value pairs, without surrounding braces, for
// DiscriminatorSumEncoder to interleave with the tag field.
type VariantEncSpec[A any] struct {
	Name        string
	WriteValue  func(w *Writer, v A)
	WriteFields func(w *Writer, v A)
}

// WrapperSumEncoder is the encode side of WrapperSumDecoder: it writes
// `{"TagName": <value>}`.
type WrapperSumEncoder[A any] struct {
	Select   func(v A) int
	Variants []VariantEncSpec[A]
}

func (e WrapperSumEncoder[A]) Encode(w *Writer, v A) {
	variant := e.Variants[e.Select(v)]
	w.AppendChar('{')
	w.PushIndent()
	w.Newline()
	w.AppendString(variant.Name)
	w.AppendChar(':')
	variant.WriteValue(w, v)
	w.PopIndent()
	w.Newline()
	w.AppendChar('}')
}

// DiscriminatorSumEncoder is the encode side of DiscriminatorSumDecoder: it
// writes an ordinary object carrying the tag field alongside the selected
// variant's own fields.
type DiscriminatorSumEncoder[A any] struct {
	Discriminator string
	Select        func(v A) int
	Variants      []VariantEncSpec[A]
}

func (e DiscriminatorSumEncoder[A]) Encode(w *Writer, v A) {
	variant := e.Variants[e.Select(v)]
	w.AppendChar('{')
	w.PushIndent()
	w.Newline()
	w.AppendString(e.Discriminator)
	w.AppendChar(':')
	w.AppendString(variant.Name)
	w.AppendChar(',')
	variant.WriteFields(w, v)
	w.PopIndent()
	w.Newline()
	w.AppendChar('}')
}
