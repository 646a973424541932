package jcodec

import "math/big"

// AnyObject is an ordered JSON object: decoding preserves key order (a Go
// map does not) so that a value decoded by AnyValueDecoder and re-encoded by
// AnyValueEncoder reproduces its source field order, which matters for a
// formatter tool even though it never matters for the typed record/map
// adapters elsewhere in this package.
type AnyObject struct {
	Keys []string
	Vals []any
}

// AnyValueDecoder decodes an arbitrary, untyped JSON value -- an AnyObject,
// a []any, a string, a bool, nil, or a *big.Float for any number -- the
// generalization of every typed Decoder[A] in this package into one that
// carries no compile-time shape at all. It exists for cmd/jcodecfmt, which
// must accept and reformat JSON whose shape it does not know ahead of time.
var AnyValueDecoder Decoder[any] = RequiredDecoder[any]{DecodeFn: decodeAnyValue}

func decodeAnyValue(trace ErrorTrace, in RetractReader) (any, error) {
	ch, err := in.NextNonWhitespace()
	if err != nil {
		return nil, err
	}
	in.Retract()

	switch ch {
	case '{':
		return decodeAnyObject(trace, in)
	case '[':
		return decodeAnyArray(trace, in)
	case '"':
		return defaultLexer.String(trace, in)
	case 't', 'f':
		return defaultLexer.Boolean(trace, in)
	case 'n':
		if _, err := in.NextNonWhitespace(); err != nil {
			return nil, err
		}
		if err := defaultLexer.ReadChars(trace, in, "ull", "expected null"); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return defaultLexer.BigDecimal(trace, in)
	}
}

func decodeAnyObject(trace ErrorTrace, in RetractReader) (any, error) {
	if err := defaultLexer.Char(trace, in, '{'); err != nil {
		return nil, err
	}
	more, err := defaultLexer.FirstObject(trace, in)
	if err != nil {
		return nil, err
	}
	obj := &AnyObject{}
	for more {
		key, err := defaultLexer.String(trace, in)
		if err != nil {
			return nil, err
		}
		if err := defaultLexer.Char(trace, in, ':'); err != nil {
			return nil, err
		}
		val, err := decodeAnyValue(trace.WithField(key), in)
		if err != nil {
			return nil, err
		}
		obj.Keys = append(obj.Keys, key)
		obj.Vals = append(obj.Vals, val)
		more, err = defaultLexer.NextObject(trace, in)
		if err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func decodeAnyArray(trace ErrorTrace, in RetractReader) (any, error) {
	if err := defaultLexer.Char(trace, in, '['); err != nil {
		return nil, err
	}
	more, err := defaultLexer.FirstArray(trace, in)
	if err != nil {
		return nil, err
	}
	var out []any
	for i := 0; more; i++ {
		v, err := decodeAnyValue(trace.WithIndex(i), in)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		more, err = defaultLexer.NextArray(trace, in)
		if err != nil {
			return nil, err
		}
	}
	if out == nil {
		out = []any{}
	}
	return out, nil
}

// AnyValueEncoder re-serializes a value produced by AnyValueDecoder,
// preserving AnyObject key order and the indent/compact mode carried on w.
var AnyValueEncoder Encoder[any] = EncoderFunc[any](encodeAnyValue)

func encodeAnyValue(w *Writer, v any) {
	switch t := v.(type) {
	case nil:
		w.AppendRaw("null")
	case bool:
		BoolEncoder.Encode(w, t)
	case string:
		StringEncoder.Encode(w, t)
	case *big.Float:
		BigFloatEncoder.Encode(w, t)
	case *AnyObject:
		w.AppendChar('{')
		w.PushIndent()
		for i, k := range t.Keys {
			if i > 0 {
				w.AppendChar(',')
			}
			w.Newline()
			w.AppendString(k)
			w.AppendChar(':')
			encodeAnyValue(w, t.Vals[i])
		}
		w.PopIndent()
		if len(t.Keys) > 0 {
			w.Newline()
		}
		w.AppendChar('}')
	case []any:
		w.AppendChar('[')
		w.PushIndent()
		for i, elem := range t {
			if i > 0 {
				w.AppendChar(',')
			}
			w.Newline()
			encodeAnyValue(w, elem)
		}
		w.PopIndent()
		if len(t) > 0 {
			w.Newline()
		}
		w.AppendChar(']')
	}
}
