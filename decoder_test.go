package jcodec

import "testing"

func TestDecodePrimitives(t *testing.T) {
	if v, err := Decode(`true`, BoolDecoder); err != nil || v != true {
		t.Fatalf("bool: %v, %v", v, err)
	}
	if v, err := Decode(`"hi"`, StringDecoder); err != nil || v != "hi" {
		t.Fatalf("string: %v, %v", v, err)
	}
	if v, err := Decode(`42`, IntDecoder); err != nil || v != 42 {
		t.Fatalf("int: %v, %v", v, err)
	}
	if v, err := Decode(`3.5`, DoubleDecoder); err != nil || v != 3.5 {
		t.Fatalf("double: %v, %v", v, err)
	}
}

func TestDecodeTrailingGarbageIsIgnored(t *testing.T) {
	// Decode reads exactly one value and does not require the reader be
	// fully consumed; trailing content is the caller's concern (e.g. the
	// Chunker handles stream framing separately).
	if v, err := Decode(`42 garbage`, IntDecoder); err != nil || v != 42 {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestDecodeMissingRaisesError(t *testing.T) {
	_, err := IntDecoder.Missing(ErrorTrace(nil))
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "(missing)" {
		t.Fatalf("got %q", err.Error())
	}
}

func TestDecodeBytes(t *testing.T) {
	v, err := DecodeBytes([]byte(`7`), LongDecoder)
	if err != nil || v != 7 {
		t.Fatalf("got %v, %v", v, err)
	}
}

func TestIntFieldDecoder(t *testing.T) {
	n, err := IntFieldDecoder.DecodeField(ErrorTrace(nil), "123")
	if err != nil || n != 123 {
		t.Fatalf("got %v, %v", n, err)
	}
}

func TestStringFieldDecoder(t *testing.T) {
	s, err := StringFieldDecoder.DecodeField(ErrorTrace(nil), "abc")
	if err != nil || s != "abc" {
		t.Fatalf("got %v, %v", s, err)
	}
}
