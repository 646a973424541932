package jcodec

import (
	"errors"
	"math/big"
	"strings"
)

// Lexer implements the token-level JSON grammar primitives every decoder is
// built from. Its delimiter/structural operations are grounded on the
// teacher's readAfterWS/readCharAfterWS/readNameSeparator/
// readObjectTerminator family (jibby.go); convertValue's dispatch-by-
// leading-character (json.go) is generalized into SkipValue, used by
// discriminator-field sum decoding to replay an unrecognized key's value.
//
// All operations take an ErrorTrace and a reader; on a grammar mismatch
// they return a *DecodeError built from that trace. A bare ErrUnexpectedEnd
// (no trace) propagates unwrapped, per spec.md section 7's two error kinds.
type Lexer struct {
	Numbers UnsafeNumbers
}

// FirstObject expects '"' or '}' after whitespace. On '"' it retracts and
// returns true (there is at least one key to read); on '}' it returns false
// (the object is empty, and '}' has already been consumed).
func (l Lexer) FirstObject(trace ErrorTrace, in RetractReader) (bool, error) {
	ch, err := in.NextNonWhitespace()
	if err != nil {
		return false, err
	}
	switch ch {
	case '"':
		in.Retract()
		return true, nil
	case '}':
		return false, nil
	default:
		return false, trace.Failf("expected string or '}' got '%c'", ch)
	}
}

// NextObject expects ',' or '}' after whitespace.
func (l Lexer) NextObject(trace ErrorTrace, in RetractReader) (bool, error) {
	ch, err := in.NextNonWhitespace()
	if err != nil {
		return false, err
	}
	switch ch {
	case ',':
		return true, nil
	case '}':
		return false, nil
	default:
		return false, trace.Failf("expected ',' or '}' got '%c'", ch)
	}
}

// FirstArray expects ']' or the start of a value after whitespace.
func (l Lexer) FirstArray(trace ErrorTrace, in RetractReader) (bool, error) {
	ch, err := in.NextNonWhitespace()
	if err != nil {
		return false, err
	}
	if ch == ']' {
		return false, nil
	}
	in.Retract()
	return true, nil
}

// NextArray expects ',' or ']' after whitespace.
func (l Lexer) NextArray(trace ErrorTrace, in RetractReader) (bool, error) {
	ch, err := in.NextNonWhitespace()
	if err != nil {
		return false, err
	}
	switch ch {
	case ',':
		return true, nil
	case ']':
		return false, nil
	default:
		return false, trace.Failf("expected ',' or ']' got '%c'", ch)
	}
}

// matchString requires an opening '"', streams the key through m via
// StringMatrix.Update/Exact, and returns the matched ordinal or -1.
func (l Lexer) matchString(trace ErrorTrace, in RetractReader, m *StringMatrix) (int, error) {
	ch, err := in.NextNonWhitespace()
	if err != nil {
		return 0, err
	}
	if ch != '"' {
		return 0, trace.Failf("expected '\"' got '%c'", ch)
	}

	es := NewEscapedString(in)
	mask := m.Initial()
	length := 0
	for {
		r, end, err := es.Read()
		if err != nil {
			if errors.Is(err, ErrUnexpectedEnd) {
				return 0, err
			}
			return 0, trace.Fail(err.Error())
		}
		if end {
			break
		}
		mask = m.Update(mask, length, r)
		length++
	}
	mask = m.Exact(mask, length)
	return m.First(mask), nil
}

// Field reads a string key, consumes ':', and returns the matched ordinal
// (or -1 for an unrecognized key).
func (l Lexer) Field(trace ErrorTrace, in RetractReader, m *StringMatrix) (int, error) {
	ord, err := l.matchString(trace, in, m)
	if err != nil {
		return 0, err
	}
	if err := l.Char(trace, in, ':'); err != nil {
		return 0, err
	}
	return ord, nil
}

// Ordinal reads a string key via the streaming matcher and returns the
// matched ordinal (or -1). It does not consume a trailing ':'.
func (l Lexer) Ordinal(trace ErrorTrace, in RetractReader, m *StringMatrix) (int, error) {
	return l.matchString(trace, in, m)
}

// String reads a full JSON string and returns its unescaped contents.
func (l Lexer) String(trace ErrorTrace, in RetractReader) (string, error) {
	ch, err := in.NextNonWhitespace()
	if err != nil {
		return "", err
	}
	if ch != '"' {
		return "", trace.Failf("expected '\"' got '%c'", ch)
	}

	es := NewEscapedString(in)
	var b strings.Builder
	for {
		r, end, err := es.Read()
		if err != nil {
			if errors.Is(err, ErrUnexpectedEnd) {
				return "", err
			}
			return "", trace.Fail(err.Error())
		}
		if end {
			break
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// Boolean matches "true" or "false".
func (l Lexer) Boolean(trace ErrorTrace, in RetractReader) (bool, error) {
	ch, err := in.NextNonWhitespace()
	if err != nil {
		return false, err
	}
	switch ch {
	case 't':
		if err := l.ReadChars(trace, in, "rue", "expected true"); err != nil {
			return false, err
		}
		return true, nil
	case 'f':
		if err := l.ReadChars(trace, in, "alse", "expected false"); err != nil {
			return false, err
		}
		return false, nil
	default:
		return false, trace.Failf("unexpected '%c'", ch)
	}
}

// Char skips whitespace and requires the next rune to be c.
func (l Lexer) Char(trace ErrorTrace, in RetractReader, c rune) error {
	got, err := in.NextNonWhitespace()
	if err != nil {
		return err
	}
	if got != c {
		return trace.Failf("expected '%c' got '%c'", c, got)
	}
	return nil
}

// CharOnly requires the next rune to be c, without skipping whitespace.
func (l Lexer) CharOnly(trace ErrorTrace, in RetractReader, c rune) error {
	got, err := in.ReadChar()
	if err != nil {
		return err
	}
	if got != c {
		return trace.Failf("expected '%c' got '%c'", c, got)
	}
	return nil
}

// ReadChars verbatim-matches expected, rune by rune, e.g. "ull" after a
// leading 'n' has already been consumed by the caller.
func (l Lexer) ReadChars(trace ErrorTrace, in RetractReader, expected string, msg string) error {
	for _, want := range expected {
		got, err := in.ReadChar()
		if err != nil {
			return err
		}
		if got != want {
			return trace.Fail(msg)
		}
	}
	return nil
}

// numericPrelude skips whitespace and requires the next rune to start a
// number ('-' or a digit) or a '"' (the JSON-compatibility string-form
// convenience spec.md section 4.5 describes). If a digit/'-' was seen it is
// retracted for the numeric scanner to consume.
func (l Lexer) numericPrelude(trace ErrorTrace, in RetractReader) (quoted bool, err error) {
	ch, err := in.NextNonWhitespace()
	if err != nil {
		return false, err
	}
	if ch == '"' {
		return true, nil
	}
	if ch != '-' && (ch < '0' || ch > '9') {
		return false, trace.Failf("expected a number, got %c", ch)
	}
	in.Retract()
	return false, nil
}

func (l Lexer) closeNumberQuote(trace ErrorTrace, in RetractReader) error {
	c, err := in.ReadChar()
	if err != nil {
		return err
	}
	if c != '"' {
		return trace.Failf("expected '\"' got '%c'", c)
	}
	return nil
}

// Byte reads an 8-bit signed integer.
func (l Lexer) Byte(trace ErrorTrace, in RetractReader) (int8, error) {
	n, err := l.fixedInt(trace, in, 8, "Byte")
	return int8(n), err
}

// Short reads a 16-bit signed integer.
func (l Lexer) Short(trace ErrorTrace, in RetractReader) (int16, error) {
	n, err := l.fixedInt(trace, in, 16, "Short")
	return int16(n), err
}

// Int reads a 32-bit signed integer.
func (l Lexer) Int(trace ErrorTrace, in RetractReader) (int32, error) {
	n, err := l.fixedInt(trace, in, 32, "Int")
	return int32(n), err
}

// Long reads a 64-bit signed integer.
func (l Lexer) Long(trace ErrorTrace, in RetractReader) (int64, error) {
	return l.fixedInt(trace, in, 64, "Long")
}

func (l Lexer) fixedInt(trace ErrorTrace, in RetractReader, bits int, typeName string) (int64, error) {
	quoted, err := l.numericPrelude(trace, in)
	if err != nil {
		return 0, err
	}
	n, eof, err := l.Numbers.Int64(in, bits)
	if err != nil {
		return 0, trace.Fail(expectedTypeMessage(typeName))
	}
	if !eof {
		in.Retract()
	}
	if quoted {
		if err := l.closeNumberQuote(trace, in); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// Float reads a 32-bit float.
func (l Lexer) Float(trace ErrorTrace, in RetractReader) (float32, error) {
	n, err := l.fixedFloat(trace, in, 32, "Float")
	return float32(n), err
}

// Double reads a 64-bit float.
func (l Lexer) Double(trace ErrorTrace, in RetractReader) (float64, error) {
	return l.fixedFloat(trace, in, 64, "Double")
}

func (l Lexer) fixedFloat(trace ErrorTrace, in RetractReader, bits int, typeName string) (float64, error) {
	quoted, err := l.numericPrelude(trace, in)
	if err != nil {
		return 0, err
	}
	n, eof, err := l.Numbers.Float64(in, bits)
	if err != nil {
		return 0, trace.Fail(expectedTypeMessage(typeName))
	}
	if !eof {
		in.Retract()
	}
	if quoted {
		if err := l.closeNumberQuote(trace, in); err != nil {
			return 0, err
		}
	}
	return n, nil
}

// BigInteger reads an arbitrary-precision integer, capped at NumberMaxBits().
func (l Lexer) BigInteger(trace ErrorTrace, in RetractReader) (*big.Int, error) {
	quoted, err := l.numericPrelude(trace, in)
	if err != nil {
		return nil, err
	}
	n, eof, err := l.Numbers.BigInt(in)
	if err != nil {
		return nil, trace.Fail(expectedTypeMessage("BigInteger"))
	}
	if !eof {
		in.Retract()
	}
	if quoted {
		if err := l.closeNumberQuote(trace, in); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// BigDecimal reads an arbitrary-precision decimal, capped at NumberMaxBits().
func (l Lexer) BigDecimal(trace ErrorTrace, in RetractReader) (*big.Float, error) {
	quoted, err := l.numericPrelude(trace, in)
	if err != nil {
		return nil, err
	}
	n, eof, err := l.Numbers.BigDecimal(in)
	if err != nil {
		return nil, trace.Fail(expectedTypeMessage("BigDecimal"))
	}
	if !eof {
		in.Retract()
	}
	if quoted {
		if err := l.closeNumberQuote(trace, in); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func expectedTypeMessage(typeName string) string {
	if typeName == "Int" {
		return "expected an Int"
	}
	return "expected a " + typeName
}

// SkipValue recursively consumes one JSON value. If out is non-nil, a
// normalized form is echoed to it: whitespace between tokens is dropped,
// string bytes pass through as a re-quoted/escaped literal, and object and
// array commas are reinserted. This is used by discriminator-field sum
// decoding to capture a field's raw value for later replay (spec.md 4.7).
func (l Lexer) SkipValue(trace ErrorTrace, in RetractReader, out *strings.Builder) error {
	ch, err := in.NextNonWhitespace()
	if err != nil {
		return err
	}
	switch ch {
	case '{':
		if out != nil {
			out.WriteByte('{')
		}
		return l.skipObject(trace, in, out)
	case '[':
		if out != nil {
			out.WriteByte('[')
		}
		return l.skipArray(trace, in, out)
	case '"':
		in.Retract()
		s, err := l.String(trace, in)
		if err != nil {
			return err
		}
		if out != nil {
			appendJSONString(out, s)
		}
		return nil
	case 't':
		if err := l.ReadChars(trace, in, "rue", "expected true"); err != nil {
			return err
		}
		if out != nil {
			out.WriteString("true")
		}
		return nil
	case 'f':
		if err := l.ReadChars(trace, in, "alse", "expected false"); err != nil {
			return err
		}
		if out != nil {
			out.WriteString("false")
		}
		return nil
	case 'n':
		if err := l.ReadChars(trace, in, "ull", "expected null"); err != nil {
			return err
		}
		if out != nil {
			out.WriteString("null")
		}
		return nil
	default:
		in.Retract()
		text, _, _, eof, err := scanNumberText(in, maxDecimalDigits(NumberMaxBits()))
		if err != nil {
			return trace.Fail("expected a number")
		}
		if !eof {
			in.Retract()
		}
		if out != nil {
			out.Write(text)
		}
		return nil
	}
}

func (l Lexer) skipObject(trace ErrorTrace, in RetractReader, out *strings.Builder) error {
	more, err := l.FirstObject(trace, in)
	if err != nil {
		return err
	}
	if !more {
		if out != nil {
			out.WriteByte('}')
		}
		return nil
	}
	for {
		key, err := l.String(trace, in)
		if err != nil {
			return err
		}
		if out != nil {
			appendJSONString(out, key)
			out.WriteByte(':')
		}
		if err := l.Char(trace, in, ':'); err != nil {
			return err
		}
		if err := l.SkipValue(trace, in, out); err != nil {
			return err
		}
		more, err := l.NextObject(trace, in)
		if err != nil {
			return err
		}
		if !more {
			if out != nil {
				out.WriteByte('}')
			}
			return nil
		}
		if out != nil {
			out.WriteByte(',')
		}
	}
}

func (l Lexer) skipArray(trace ErrorTrace, in RetractReader, out *strings.Builder) error {
	more, err := l.FirstArray(trace, in)
	if err != nil {
		return err
	}
	if !more {
		if out != nil {
			out.WriteByte(']')
		}
		return nil
	}
	for {
		if err := l.SkipValue(trace, in, out); err != nil {
			return err
		}
		more, err := l.NextArray(trace, in)
		if err != nil {
			return err
		}
		if !more {
			if out != nil {
				out.WriteByte(']')
			}
			return nil
		}
		if out != nil {
			out.WriteByte(',')
		}
	}
}
