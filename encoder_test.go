package jcodec

import (
	"math/big"
	"testing"
)

func TestEncodePrimitivesCompact(t *testing.T) {
	if got := Encode(true, BoolEncoder, false); got != "true" {
		t.Fatalf("got %q", got)
	}
	if got := Encode("hi", StringEncoder, false); got != `"hi"` {
		t.Fatalf("got %q", got)
	}
	if got := Encode(int32(42), Int32Encoder, false); got != "42" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeStringEscaping(t *testing.T) {
	got := Encode("a\nb\"c", StringEncoder, false)
	want := `"a\nb\"c"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeStringControlCharacter(t *testing.T) {
	got := Encode("\x01", StringEncoder, false)
	want := "\"\\u0001\""
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeBigInt(t *testing.T) {
	n := new(big.Int)
	n.SetString("123456789012345678901234567890", 10)
	got := Encode(n, BigIntEncoder, false)
	if got != "123456789012345678901234567890" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeIndented(t *testing.T) {
	enc := SliceEncoder[int32]{Elem: Int32Encoder}
	got := Encode([]int32{1, 2}, enc, true)
	want := "[\n  1,\n  2\n]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeDecodeRoundTripSlice(t *testing.T) {
	dec := SliceDecoder[int32]{Elem: IntDecoder}
	enc := SliceEncoder[int32]{Elem: Int32Encoder}

	orig := []int32{1, 2, 3}
	text := Encode(orig, enc, false)
	got, err := Decode(text, dec)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(got) != len(orig) {
		t.Fatalf("got %v, want %v", got, orig)
	}
	for i := range orig {
		if got[i] != orig[i] {
			t.Fatalf("got %v, want %v", got, orig)
		}
	}
}
