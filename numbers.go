package jcodec

import (
	"errors"
	"math"
	"math/big"
	"strconv"
)

// errUnsafeNumber is the sentinel UnsafeNumbers raises on overflow or on a
// digit count exceeding the configured bit budget. The Lexer turns it into
// "expected a <Type>" with the full trace attached.
var errUnsafeNumber = errors.New("unsafe number")

// maxDecimalDigits returns the decimal digit cap for the given bit budget,
// per spec.md's testable property 6: ceil(bits*log10(2))+1, one digit more
// than the widest value of that many bits can need.
func maxDecimalDigits(bits int) int {
	return int(math.Ceil(float64(bits)*math.Log10(2))) + 1
}

// maxFixedWidthDigits bounds the total digit count scanNumberText will
// accumulate for a fixed-width numeric type (Int64/Float64), which has no
// caller-configured bit budget of its own. It is generous relative to any
// legitimate int64/float64 literal (at most a few dozen significant digits)
// while still bailing out long before the "billion-digit" adversarial input
// spec.md section 1 names as a threat this codec must resist.
const maxFixedWidthDigits = 512

// scanNumberText scans one JSON number token (grammar
// [-]digit+(.digit+)?([eE][+-]?digit+)?) from r using raw-byte reads, the
// way the teacher's convertNumber (json.go) peeks ahead for a terminator
// before delegating to strconv, generalized from a single fixed-width peek
// buffer to reading byte-by-byte off the RetractReader.
//
// maxDigits bounds the running digit count checked inside the scan itself,
// not after scanNumberText returns: per spec.md section 4.3 and this
// package's own digit-cap design, a number with more digit characters than
// maxDigits is rejected as soon as the cap is crossed, without buffering the
// rest of the adversarial token.
//
// It always consumes one character past the end of the number to detect
// the boundary. If that lookahead character exists, terminatedByEOF is
// false and the caller must call r.Retract() exactly once; if the number
// runs to the absolute end of input there is nothing left to retract and
// terminatedByEOF is true.
func scanNumberText(r RetractReader, maxDigits int) (raw []byte, isFloat bool, digits int, terminatedByEOF bool, err error) {
	buf := make([]byte, 0, 24)

	c, err := r.ReadRawByte()
	if err != nil {
		return nil, false, 0, false, errUnsafeNumber
	}
	if c == '-' {
		buf = append(buf, c)
		c, err = r.ReadRawByte()
		if err != nil {
			return nil, false, 0, false, errUnsafeNumber
		}
	}
	if c < '0' || c > '9' {
		return nil, false, 0, false, errUnsafeNumber
	}
	for c >= '0' && c <= '9' {
		buf = append(buf, c)
		digits++
		if digits > maxDigits {
			return nil, false, 0, false, errUnsafeNumber
		}
		c, err = r.ReadRawByte()
		if err != nil {
			return buf, isFloat, digits, true, nil
		}
	}

	if c == '.' {
		isFloat = true
		buf = append(buf, c)
		c, err = r.ReadRawByte()
		if err != nil {
			return nil, false, 0, false, errUnsafeNumber
		}
		if c < '0' || c > '9' {
			return nil, false, 0, false, errUnsafeNumber
		}
		for c >= '0' && c <= '9' {
			buf = append(buf, c)
			digits++
			if digits > maxDigits {
				return nil, false, 0, false, errUnsafeNumber
			}
			c, err = r.ReadRawByte()
			if err != nil {
				return buf, isFloat, digits, true, nil
			}
		}
	}

	if c == 'e' || c == 'E' {
		isFloat = true
		buf = append(buf, c)
		c, err = r.ReadRawByte()
		if err != nil {
			return nil, false, 0, false, errUnsafeNumber
		}
		if c == '+' || c == '-' {
			// Leading '+' on the exponent is a decode-side extension over
			// strict JSON (spec.md section 6); strconv already accepts it.
			buf = append(buf, c)
			c, err = r.ReadRawByte()
			if err != nil {
				return nil, false, 0, false, errUnsafeNumber
			}
		}
		if c < '0' || c > '9' {
			return nil, false, 0, false, errUnsafeNumber
		}
		for c >= '0' && c <= '9' {
			buf = append(buf, c)
			digits++
			if digits > maxDigits {
				return nil, false, 0, false, errUnsafeNumber
			}
			c, err = r.ReadRawByte()
			if err != nil {
				return buf, isFloat, digits, true, nil
			}
		}
	}

	// c is the over-read terminator, already consumed from r.
	return buf, isFloat, digits, false, nil
}

// UnsafeNumbers parses bit-width-bounded numbers off a RetractReader. The
// bit cap defends against adversarial "billion-digit" numbers that naive
// big-number parsers accept and then choke on; digit count is tracked
// during the scan above, not after parsing.
type UnsafeNumbers struct{}

func (UnsafeNumbers) parseFixed(r RetractReader, bits int) (text []byte, terminatedByEOF bool, err error) {
	text, _, _, terminatedByEOF, err = scanNumberText(r, maxFixedWidthDigits)
	return text, terminatedByEOF, err
}

// Int64 parses a signed integer of the given bit width (8, 16, 32, or 64).
func (u UnsafeNumbers) Int64(r RetractReader, bits int) (int64, bool, error) {
	text, eof, err := u.parseFixed(r, bits)
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(string(text), 10, bits)
	if err != nil {
		return 0, false, errUnsafeNumber
	}
	return n, eof, nil
}

// Float64 parses a floating point number of the given bit width (32 or 64).
func (u UnsafeNumbers) Float64(r RetractReader, bits int) (float64, bool, error) {
	text, _, _, eof, err := scanNumberText(r, maxFixedWidthDigits)
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseFloat(string(text), bits)
	if err != nil {
		return 0, false, errUnsafeNumber
	}
	return n, eof, nil
}

// BigInt parses an arbitrary-precision integer, capped at
// maxDecimalDigits(NumberMaxBits()) decimal digits.
func (u UnsafeNumbers) BigInt(r RetractReader) (*big.Int, bool, error) {
	text, _, _, eof, err := scanNumberText(r, maxDecimalDigits(NumberMaxBits()))
	if err != nil {
		return nil, false, err
	}
	n, ok := new(big.Int).SetString(string(text), 10)
	if !ok {
		return nil, false, errUnsafeNumber
	}
	return n, eof, nil
}

// BigDecimal parses an arbitrary-precision decimal, capped at
// maxDecimalDigits(NumberMaxBits()) decimal digits (integer, fraction and
// exponent digits together) and NumberMaxBits() bits of precision. math/big.Float is used as the
// backing type: no arbitrary-precision decimal library appears anywhere in
// the retrieval pack (see DESIGN.md), so this is the one place this codec
// falls back to the standard library for a domain concern.
func (u UnsafeNumbers) BigDecimal(r RetractReader) (*big.Float, bool, error) {
	text, _, _, eof, err := scanNumberText(r, maxDecimalDigits(NumberMaxBits()))
	if err != nil {
		return nil, false, err
	}
	n, _, err := big.ParseFloat(string(text), 10, uint(NumberMaxBits()), big.ToNearestEven)
	if err != nil {
		return nil, false, errUnsafeNumber
	}
	return n, eof, nil
}
