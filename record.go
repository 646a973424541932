package jcodec

// FieldSpec is one field of a record's shape description: a JSON name, a
// Set function that decodes and writes directly into the in-progress
// record, and an optional Missing hook. This is design note 4.6's "raw byte
// buffer plus per-field typed writers" option: R itself is the buffer, and
// Set is the typed writer, generated by whatever external derivation
// frontend builds a RecordSpec (out of scope here per spec.md section 1 --
// this package only consumes shape descriptions, it does not derive them
// from struct tags or reflection).
type FieldSpec[R any] struct {
	// Name is the Go-facing field name; it is also the JSON wire name when
	// Rename is empty.
	Name string
	// Rename overrides the JSON wire name (the field(rename) annotation
	// from spec.md section 6); if empty, Name is used as the wire name.
	Rename string
	// Set decodes this field's value and writes it into rec.
	Set func(rec *R, trace ErrorTrace, in RetractReader) error
	// Missing is invoked if the field's key never appeared in the object.
	// If nil, a missing key raises "missing".
	Missing func(rec *R, trace ErrorTrace) error
}

// RecordSpec is the shape description for a product type: its fields, in
// wire order, and whether unrecognized keys are an error.
type RecordSpec[R any] struct {
	Fields []FieldSpec[R]
	// NoExtra corresponds to the no_extra_fields annotation: when true, an
	// unrecognized key raises "invalid extra field" instead of being
	// skipped.
	NoExtra bool
}

// Field builds a FieldSpec for a plain (non-renamed) field backed by dec,
// writing into the struct field get points at.
func Field[R any, T any](name string, dec Decoder[T], get func(*R) *T) FieldSpec[R] {
	return FieldSpec[R]{
		Name: name,
		Set: func(rec *R, trace ErrorTrace, in RetractReader) error {
			v, err := dec.Decode(trace, in)
			if err != nil {
				return err
			}
			*get(rec) = v
			return nil
		},
		Missing: func(rec *R, trace ErrorTrace) error {
			v, err := dec.Missing(trace)
			if err != nil {
				return err
			}
			*get(rec) = v
			return nil
		},
	}
}

// RenamedField is Field with an explicit JSON wire name distinct from the
// Go-facing Name.
func RenamedField[R any, T any](name, jsonName string, dec Decoder[T], get func(*R) *T) FieldSpec[R] {
	f := Field[R, T](name, dec, get)
	f.Rename = jsonName
	return f
}

// RecordDecoder is the generic recursive-descent decoder for product types
// from spec.md section 4.6, driven entirely by a RecordSpec supplied by the
// caller (the out-of-scope derivation frontend, or a hand-written one).
//
// Grounded on the teacher's convertObject (json.go): the require-'{'/
// first-key-or-empty/loop-on-comma/require-'}' control flow is the same
// shape, generalized from writing a BSON document into out to filling
// typed Go struct fields via FieldSpec.Set, and with duplicate-key and
// no_extra_fields enforcement added per this spec's invariants 4 and 5.
type RecordDecoder[R any] struct {
	spec      RecordSpec[R]
	matrix    *StringMatrix
	jsonNames []string
}

// NewRecordDecoder builds a RecordDecoder, precomputing its StringMatrix
// once over the resolved (post-rename) wire names. Panics if any two
// fields resolve to the same wire name, or there are more than 63 fields.
func NewRecordDecoder[R any](spec RecordSpec[R]) *RecordDecoder[R] {
	names := make([]string, len(spec.Fields))
	seen := make(map[string]bool, len(spec.Fields))
	for i, f := range spec.Fields {
		n := f.Rename
		if n == "" {
			n = f.Name
		}
		if seen[n] {
			panic("jcodec: duplicate record field name " + n)
		}
		seen[n] = true
		names[i] = n
	}
	return &RecordDecoder[R]{spec: spec, matrix: NewStringMatrix(names), jsonNames: names}
}

func (r *RecordDecoder[R]) Decode(trace ErrorTrace, in RetractReader) (R, error) {
	var rec R
	if err := defaultLexer.Char(trace, in, '{'); err != nil {
		return rec, err
	}

	var seenMask uint64
	more, err := defaultLexer.FirstObject(trace, in)
	if err != nil {
		return rec, err
	}

	for more {
		ord, err := defaultLexer.Field(trace, in, r.matrix)
		if err != nil {
			return rec, err
		}
		if ord < 0 {
			if r.spec.NoExtra {
				return rec, trace.Fail("invalid extra field")
			}
			if err := defaultLexer.SkipValue(trace, in, nil); err != nil {
				return rec, err
			}
		} else {
			bit := uint64(1) << uint(ord)
			if seenMask&bit != 0 {
				return rec, trace.WithField(r.jsonNames[ord]).Fail("duplicate")
			}
			seenMask |= bit
			if err := r.spec.Fields[ord].Set(&rec, trace.WithField(r.jsonNames[ord]), in); err != nil {
				return rec, err
			}
		}

		more, err = defaultLexer.NextObject(trace, in)
		if err != nil {
			return rec, err
		}
	}

	for i, f := range r.spec.Fields {
		bit := uint64(1) << uint(i)
		if seenMask&bit != 0 {
			continue
		}
		fieldTrace := trace.WithField(r.jsonNames[i])
		if f.Missing != nil {
			if err := f.Missing(&rec, fieldTrace); err != nil {
				return rec, err
			}
			continue
		}
		return rec, fieldTrace.Fail("missing")
	}

	return rec, nil
}

func (r *RecordDecoder[R]) Missing(trace ErrorTrace) (R, error) {
	var zero R
	return zero, trace.Fail("missing")
}

// FieldEncSpec is one field of a record's encode-side shape description.
type FieldEncSpec[R any] struct {
	Name  string
	Write func(rec R, w *Writer)
}

// EncField builds a FieldEncSpec backed by enc, reading the field via get.
func EncField[R any, T any](name string, enc Encoder[T], get func(R) T) FieldEncSpec[R] {
	return FieldEncSpec[R]{
		Name: name,
		Write: func(rec R, w *Writer) {
			enc.Encode(w, get(rec))
		},
	}
}

// RecordEncoderSpec is the encode-side shape description for a product type.
type RecordEncoderSpec[R any] struct {
	Fields []FieldEncSpec[R]
}

// RecordEncoder is the generic push-style encoder for product types.
type RecordEncoder[R any] struct {
	Spec RecordEncoderSpec[R]
}

func (e RecordEncoder[R]) Encode(w *Writer, v R) {
	w.AppendChar('{')
	w.PushIndent()
	WriteRecordFields(w, e.Spec.Fields, v)
	w.PopIndent()
	if len(e.Spec.Fields) > 0 {
		w.Newline()
	}
	w.AppendChar('}')
}

// WriteRecordFields writes fields as comma-separated "name":value pairs at
// the writer's current indent level, without surrounding braces. Exposed
// so a sum type's discriminator-field encoding (sum.go) can interleave a
// tag field with a variant's own fields inside one object.
func WriteRecordFields[R any](w *Writer, fields []FieldEncSpec[R], v R) {
	for i, f := range fields {
		if i > 0 {
			w.AppendChar(',')
		}
		w.Newline()
		w.AppendString(f.Name)
		w.AppendChar(':')
		f.Write(v, w)
	}
}
