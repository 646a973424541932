package jcodec

import "testing"

func TestAnyValueDecoderObjectPreservesKeyOrder(t *testing.T) {
	v, err := Decode(`{"z": 1, "a": 2, "m": [1, "x", null, true]}`, AnyValueDecoder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := v.(*AnyObject)
	if !ok {
		t.Fatalf("got %T, want *AnyObject", v)
	}
	want := []string{"z", "a", "m"}
	if len(obj.Keys) != len(want) {
		t.Fatalf("got keys %v, want %v", obj.Keys, want)
	}
	for i := range want {
		if obj.Keys[i] != want[i] {
			t.Fatalf("got keys %v, want %v", obj.Keys, want)
		}
	}
	arr, ok := obj.Vals[2].([]any)
	if !ok || len(arr) != 4 {
		t.Fatalf("got %v for field m", obj.Vals[2])
	}
	if arr[2] != nil {
		t.Fatalf("expected nil at index 2, got %v", arr[2])
	}
	if b, ok := arr[3].(bool); !ok || !b {
		t.Fatalf("expected true at index 3, got %v", arr[3])
	}
}

func TestAnyValueDecoderEmptyObjectAndArray(t *testing.T) {
	v, err := Decode(`{}`, AnyValueDecoder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := v.(*AnyObject)
	if !ok || len(obj.Keys) != 0 {
		t.Fatalf("got %v", v)
	}

	v, err = Decode(`[]`, AnyValueDecoder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 0 {
		t.Fatalf("got %v", v)
	}
}

func TestAnyValueRoundTripCompact(t *testing.T) {
	v, err := Decode(`{"a":1,"b":[true,false,null,"x"]}`, AnyValueDecoder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := Encode[any](v, AnyValueEncoder, false)
	want := `{"a":1,"b":[true,false,null,"x"]}`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAnyValueDecoderRejectsGarbage(t *testing.T) {
	_, err := Decode(`{"a": }`, AnyValueDecoder)
	if err == nil {
		t.Fatal("expected error")
	}
}
