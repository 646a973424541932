package jcodec

import "math/big"

// Decoder is the pull-style capability to consume a value of type A from a
// RetractReader. Missing is the fallback invoked by the record decoder
// (spec.md section 4.6 step 5) when a field's key never appeared in the
// object; the default behavior is to raise "missing", but Decoder[*A] (see
// OptionDecoder) overrides it to produce nil instead.
type Decoder[A any] interface {
	Decode(trace ErrorTrace, in RetractReader) (A, error)
	Missing(trace ErrorTrace) (A, error)
}

// FieldDecoder decodes a value of type A from an already-materialized JSON
// object key string, used by map adapters (spec.md section 4.8) where the
// key has already been read as a plain string by the Lexer.
type FieldDecoder[A any] interface {
	DecodeField(trace ErrorTrace, key string) (A, error)
}

// RequiredDecoder adapts a decode function into a Decoder whose Missing
// hook raises "missing". The primitive decoders below and AnyValueDecoder
// are built from it; the collection, record and sum decoders implement
// Missing themselves.
type RequiredDecoder[A any] struct {
	DecodeFn func(trace ErrorTrace, in RetractReader) (A, error)
}

func (d RequiredDecoder[A]) Decode(trace ErrorTrace, in RetractReader) (A, error) {
	return d.DecodeFn(trace, in)
}

func (d RequiredDecoder[A]) Missing(trace ErrorTrace) (A, error) {
	var zero A
	return zero, trace.Fail("missing")
}

var defaultLexer = Lexer{}

// Primitive decoders, each built directly on the corresponding Lexer
// numeric/string/boolean reader.

var BoolDecoder Decoder[bool] = RequiredDecoder[bool]{DecodeFn: defaultLexer.Boolean}

var StringDecoder Decoder[string] = RequiredDecoder[string]{DecodeFn: defaultLexer.String}

var ByteDecoder Decoder[int8] = RequiredDecoder[int8]{DecodeFn: defaultLexer.Byte}

var ShortDecoder Decoder[int16] = RequiredDecoder[int16]{DecodeFn: defaultLexer.Short}

var IntDecoder Decoder[int32] = RequiredDecoder[int32]{DecodeFn: defaultLexer.Int}

var LongDecoder Decoder[int64] = RequiredDecoder[int64]{DecodeFn: defaultLexer.Long}

var FloatDecoder Decoder[float32] = RequiredDecoder[float32]{DecodeFn: defaultLexer.Float}

var DoubleDecoder Decoder[float64] = RequiredDecoder[float64]{DecodeFn: defaultLexer.Double}

var BigIntegerDecoder Decoder[*big.Int] = RequiredDecoder[*big.Int]{DecodeFn: defaultLexer.BigInteger}

var BigDecimalDecoder Decoder[*big.Float] = RequiredDecoder[*big.Float]{DecodeFn: defaultLexer.BigDecimal}

// StringFieldDecoder is the identity FieldDecoder[string], used for
// map[string]V.
var StringFieldDecoder FieldDecoder[string] = stringFieldDecoder{}

type stringFieldDecoder struct{}

func (stringFieldDecoder) DecodeField(trace ErrorTrace, key string) (string, error) {
	return key, nil
}

// IntFieldDecoder parses a JSON object key as a base-10 32-bit integer, used
// for map[int32]V.
var IntFieldDecoder FieldDecoder[int32] = intFieldDecoder{}

type intFieldDecoder struct{}

func (intFieldDecoder) DecodeField(trace ErrorTrace, key string) (int32, error) {
	r := NewTextReader(key + " ")
	n, err := defaultLexer.Int(trace, r)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Decode parses text into a value of type A using dec. This is the
// "decode(text) -> result<A, error_string>" entry point from spec.md
// section 6; the error is returned as a Go error rather than a result
// string, following Go idiom.
func Decode[A any](text string, dec Decoder[A]) (A, error) {
	r := NewTextReader(text)
	trace := ErrorTrace(nil)
	v, err := dec.Decode(trace, r)
	if err != nil {
		var zero A
		return zero, err
	}
	return v, nil
}

// DecodeBytes is Decode over a []byte input.
func DecodeBytes[A any](b []byte, dec Decoder[A]) (A, error) {
	return Decode(string(b), dec)
}
