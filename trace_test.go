package jcodec

import "testing"

func TestErrorTraceString(t *testing.T) {
	var trace ErrorTrace
	trace = trace.WithField("rows")
	trace = trace.WithIndex(0)
	trace = trace.WithField("elements")
	trace = trace.WithIndex(0)
	trace = trace.WithField("distance")
	trace = trace.WithField("value")

	got := trace.Fail("missing").Error()
	want := ".rows[0].elements[0].distance.value(missing)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestErrorTraceVariantFrame(t *testing.T) {
	var trace ErrorTrace
	trace = trace.WithVariant("Circle")
	trace = trace.WithField("radius")

	got := trace.Fail("expected a Double").Error()
	want := "{Circle}.radius(expected a Double)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestErrorTraceSharingDoesNotAlias(t *testing.T) {
	base := ErrorTrace(nil).WithField("a")
	left := base.WithField("left")
	right := base.WithField("right")

	if got := left.Fail("x").Error(); got != ".a.left(x)" {
		t.Fatalf("left: got %q", got)
	}
	if got := right.Fail("x").Error(); got != ".a.right(x)" {
		t.Fatalf("right: got %q", got)
	}
}

func TestDecodeErrorIs(t *testing.T) {
	err := ErrorTrace(nil).Fail("missing")
	if !err.Is(new(DecodeError)) {
		t.Fatal("expected Is(*DecodeError) to be true")
	}
}
