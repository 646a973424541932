package jcodec

import (
	"bufio"
	"strings"
	"testing"
)

func TestTextReaderReadAndRetract(t *testing.T) {
	r := NewTextReader(`ab`)
	c, err := r.ReadChar()
	if err != nil || c != 'a' {
		t.Fatalf("ReadChar = %q, %v", c, err)
	}
	r.Retract()
	c, err = r.ReadChar()
	if err != nil || c != 'a' {
		t.Fatalf("ReadChar after retract = %q, %v", c, err)
	}
	c, err = r.ReadChar()
	if err != nil || c != 'b' {
		t.Fatalf("ReadChar = %q, %v", c, err)
	}
	if _, err := r.ReadChar(); err != ErrUnexpectedEnd {
		t.Fatalf("expected ErrUnexpectedEnd, got %v", err)
	}
}

func TestTextReaderDoubleRetractPanics(t *testing.T) {
	r := NewTextReader(`a`)
	r.ReadChar()
	r.Retract()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double retract")
		}
	}()
	r.Retract()
}

func TestTextReaderNextNonWhitespace(t *testing.T) {
	r := NewTextReader("  \t\n x")
	c, err := r.NextNonWhitespace()
	if err != nil || c != 'x' {
		t.Fatalf("NextNonWhitespace = %q, %v", c, err)
	}
}

func TestTextReaderUnicode(t *testing.T) {
	r := NewTextReader("aéb")
	r.ReadChar()
	c, err := r.ReadChar()
	if err != nil || c != 'é' {
		t.Fatalf("ReadChar = %q, %v", c, err)
	}
	r.Retract()
	c, err = r.ReadChar()
	if err != nil || c != 'é' {
		t.Fatalf("ReadChar after retract = %q, %v", c, err)
	}
}

func TestStreamReaderMatchesTextReader(t *testing.T) {
	const input = `  {"a": 1}`
	sr := NewStreamReader(bufio.NewReader(strings.NewReader(input)))
	tr := NewTextReader(input)

	for i := 0; i < 3; i++ {
		sc, serr := sr.NextNonWhitespace()
		tc, terr := tr.NextNonWhitespace()
		if sc != tc || (serr == nil) != (terr == nil) {
			t.Fatalf("step %d: stream=(%q,%v) text=(%q,%v)", i, sc, serr, tc, terr)
		}
		sr.Retract()
		tr.Retract()
		sc, _ = sr.ReadChar()
		tc, _ = tr.ReadChar()
		if sc != tc {
			t.Fatalf("step %d after retract: stream=%q text=%q", i, sc, tc)
		}
	}
}

func TestStreamReaderRawByte(t *testing.T) {
	sr := NewStreamReader(bufio.NewReader(strings.NewReader("123")))
	b, err := sr.ReadRawByte()
	if err != nil || b != '1' {
		t.Fatalf("ReadRawByte = %q, %v", b, err)
	}
	sr.Retract()
	b, err = sr.ReadRawByte()
	if err != nil || b != '1' {
		t.Fatalf("ReadRawByte after retract = %q, %v", b, err)
	}
}
