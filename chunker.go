package jcodec

import (
	"errors"
	"fmt"
)

// Chunker is a push-style framer that splits a byte stream into top-level
// JSON values without fully parsing them: objects and arrays by bracket
// depth, strings by their closing quote, and bare numbers/true/false/null
// by their natural grammar boundary. Whitespace between values is
// discarded.
//
// Grounded on the depth/inString/escaped tracking in ScanJSON
// (benoit-pereira-da-silva-textual, scan_json.go), generalized from a
// bufio.SplitFunc pulled by a Scanner into a push API driven by repeated
// Accept calls (spec.md section 4.10's accept(buf, len) / accept(_, -1)
// protocol), and extended to frame bare top-level primitives, which
// ScanJSON's object/array-only framing does not attempt.
type Chunker struct {
	maxDocBytes int
	strict      bool
	onDocument  func(doc []byte)

	buf     []byte
	started bool
	kind    chunkKind
	depth   int
	inStr   bool
	escaped bool
	want    string // remaining expected bytes of a true/false/null literal
}

type chunkKind uint8

const (
	kindNone chunkKind = iota
	kindBracketed
	kindString
	kindNumber
	kindLiteral
)

// NewChunker builds a Chunker. maxDocBytes bounds the size of any single
// top-level value; strict controls whether an unterminated string/object/
// array at end-of-stream is an error (true) or silently discarded (false).
// onDocument is invoked once per completed top-level value with its exact
// byte span; the slice is only valid for the duration of the call.
func NewChunker(maxDocBytes int, strict bool, onDocument func(doc []byte)) *Chunker {
	return &Chunker{maxDocBytes: maxDocBytes, strict: strict, onDocument: onDocument}
}

var errChunkerUnclosed = errors.New("jcodec: unclosed value at end of stream")

// Accept appends data to the chunker and processes every byte, invoking
// onDocument for each value completed along the way. It is the "accept(buf,
// len)" half of spec.md 4.10's protocol.
func (c *Chunker) Accept(data []byte) error {
	for i := 0; i < len(data); i++ {
		if err := c.step(data[i]); err != nil {
			return err
		}
	}
	return nil
}

// End signals end-of-stream, the "accept(_, -1)" half of the protocol. A
// number running to the literal end of input completes normally (numbers
// have no closing delimiter of their own). Any other unterminated value
// raises an error in strict mode, or is silently discarded otherwise.
func (c *Chunker) End() error {
	if !c.started {
		return nil
	}
	switch c.kind {
	case kindNumber:
		c.completeDoc()
		return nil
	case kindBracketed, kindString, kindLiteral:
		if c.strict {
			return errChunkerUnclosed
		}
		c.reset()
		return nil
	default:
		return nil
	}
}

func (c *Chunker) step(b byte) error {
	if !c.started {
		if isJSONWhitespace(rune(b)) {
			return nil
		}
		c.started = true
		c.buf = append(c.buf[:0], b)
		switch {
		case b == '{' || b == '[':
			c.kind = kindBracketed
			c.depth = 1
		case b == '"':
			c.kind = kindString
			c.inStr = true
		case b == '-' || isASCIIDigit(b):
			c.kind = kindNumber
		case b == 't':
			c.kind = kindLiteral
			c.want = "rue"
		case b == 'f':
			c.kind = kindLiteral
			c.want = "alse"
		case b == 'n':
			c.kind = kindLiteral
			c.want = "ull"
		default:
			return fmt.Errorf("jcodec: unexpected character %q", b)
		}
		return c.checkMaxBytes()
	}

	switch c.kind {
	case kindBracketed:
		c.buf = append(c.buf, b)
		if c.inStr {
			switch {
			case c.escaped:
				c.escaped = false
			case b == '\\':
				c.escaped = true
			case b == '"':
				c.inStr = false
			}
			return c.checkMaxBytes()
		}
		switch b {
		case '"':
			c.inStr = true
		case '{', '[':
			c.depth++
		case '}', ']':
			c.depth--
			if c.depth < 0 {
				return fmt.Errorf("jcodec: unexpected closing %q", b)
			}
			if c.depth == 0 {
				c.completeDoc()
				return nil
			}
		}
		return c.checkMaxBytes()

	case kindString:
		c.buf = append(c.buf, b)
		switch {
		case c.escaped:
			c.escaped = false
		case b == '\\':
			c.escaped = true
		case b == '"':
			c.completeDoc()
			return nil
		}
		return c.checkMaxBytes()

	case kindLiteral:
		if b != c.want[0] {
			return fmt.Errorf("jcodec: invalid literal byte %q", b)
		}
		c.buf = append(c.buf, b)
		c.want = c.want[1:]
		if err := c.checkMaxBytes(); err != nil {
			return err
		}
		if c.want == "" {
			c.completeDoc()
		}
		return nil

	case kindNumber:
		if isNumberContinuation(b) {
			c.buf = append(c.buf, b)
			return c.checkMaxBytes()
		}
		c.completeDoc()
		return c.step(b)
	}
	return nil
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isNumberContinuation(b byte) bool {
	switch b {
	case '+', '-', '.', 'e', 'E':
		return true
	default:
		return isASCIIDigit(b)
	}
}

func (c *Chunker) checkMaxBytes() error {
	if len(c.buf) > c.maxDocBytes {
		return fmt.Errorf("jcodec: value exceeds max_doc_bytes (%d)", c.maxDocBytes)
	}
	return nil
}

func (c *Chunker) completeDoc() {
	doc := make([]byte, len(c.buf))
	copy(doc, c.buf)
	c.reset()
	c.onDocument(doc)
}

func (c *Chunker) reset() {
	c.buf = c.buf[:0]
	c.started = false
	c.kind = kindNone
	c.depth = 0
	c.inStr = false
	c.escaped = false
	c.want = ""
}
