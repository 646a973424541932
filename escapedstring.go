package jcodec

import (
	"fmt"
	"unicode/utf16"
)

// OneCharReader is the minimal capability EscapedString needs from its
// source: forward single-rune reads. RetractReader satisfies it.
type OneCharReader interface {
	ReadChar() (rune, error)
}

// EscapedString wraps a OneCharReader positioned just after an opening '"'
// and presents the logical (unescaped) contents of a JSON string one
// codepoint at a time. Escape handling is grounded on the teacher's
// convertCString (json.go), generalized from byte copies into a BSON buffer
// to rune-at-a-time decoding, and fixed per spec.md section 9's open
// questions: letter escapes decode to their RFC-conformant control
// character (not the escape letter itself) and \uXXXX surrogate pairs are
// combined into a single supplementary codepoint when a high surrogate is
// immediately followed by a matching low surrogate escape.
type EscapedString struct {
	src     OneCharReader
	pending []pendingRune
}

type pendingRune struct {
	r   rune
	end bool
	err error
}

// NewEscapedString returns an EscapedString reading from src, which must
// already be positioned just past the opening quote.
func NewEscapedString(src OneCharReader) *EscapedString {
	return &EscapedString{src: src}
}

// Read returns the next logical codepoint. end is true once the closing '"'
// has been consumed, at which point r and err are zero.
func (e *EscapedString) Read() (r rune, end bool, err error) {
	if len(e.pending) > 0 {
		p := e.pending[0]
		e.pending = e.pending[1:]
		return p.r, p.end, p.err
	}
	return e.decodeOne()
}

func (e *EscapedString) decodeOne() (rune, bool, error) {
	c, err := e.src.ReadChar()
	if err != nil {
		return 0, false, err
	}

	switch {
	case c == '"':
		return 0, true, nil
	case c == '\\':
		return e.decodeEscape()
	case c < 0x20:
		return 0, false, fmt.Errorf("invalid control in string")
	default:
		return c, false, nil
	}
}

func (e *EscapedString) decodeEscape() (rune, bool, error) {
	esc, err := e.src.ReadChar()
	if err != nil {
		return 0, false, err
	}

	switch esc {
	case '"':
		return '"', false, nil
	case '\\':
		return '\\', false, nil
	case '/':
		return '/', false, nil
	case 'b':
		return '\b', false, nil
	case 'f':
		return '\f', false, nil
	case 'n':
		return '\n', false, nil
	case 'r':
		return '\r', false, nil
	case 't':
		return '\t', false, nil
	case 'u':
		return e.decodeUnicodeEscape()
	default:
		return 0, false, fmt.Errorf("invalid '\\%c' in string", esc)
	}
}

func (e *EscapedString) decodeUnicodeEscape() (rune, bool, error) {
	cp, err := e.readHex4()
	if err != nil {
		return 0, false, err
	}

	if !utf16.IsSurrogate(rune(cp)) || cp >= 0xDC00 {
		// Not a high surrogate (or is a lone low surrogate): nothing to pair.
		return rune(cp), false, nil
	}

	// High surrogate: look one logical unit ahead for a matching low
	// surrogate escape. Whatever we decode gets queued for the next Read
	// call if it doesn't pair, since we can only return one codepoint now.
	nr, nend, nerr := e.decodeOne()
	if nerr == nil && !nend && nr >= 0xDC00 && nr <= 0xDFFF {
		return utf16.DecodeRune(rune(cp), nr), false, nil
	}
	// Anything already pending was queued by the lookahead itself and so
	// comes after nr in the input: nr goes to the front of the queue.
	e.pending = append([]pendingRune{{r: nr, end: nend, err: nerr}}, e.pending...)
	return rune(cp), false, nil
}

func (e *EscapedString) readHex4() (uint32, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		c, err := e.src.ReadChar()
		if err != nil {
			return 0, err
		}
		d, ok := hexDigitValue(c)
		if !ok {
			return 0, fmt.Errorf("invalid charcode in string")
		}
		v = v*16 + d
	}
	return v, nil
}

func hexDigitValue(c rune) (uint32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	default:
		return 0, false
	}
}
