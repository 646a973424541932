package jcodec

import "errors"

// ErrUnexpectedEnd is returned when the input reader is exhausted where at
// least one more character was required. It carries no trace because it can
// happen before any composite decoder has had a chance to record a frame
// (e.g. an empty input).
var ErrUnexpectedEnd = errors.New("unexpected end of input")

// DecodeError is raised by the Lexer and by composite decoders whenever the
// input does not match the expected JSON grammar or shape. It generalizes
// the teacher's flat ParseError into the full breadcrumb path this codec's
// diagnostics require.
type DecodeError struct {
	Trace ErrorTrace
}

func (e *DecodeError) Error() string {
	return e.Trace.String()
}

// Is reports whether target is also a *DecodeError, so that
// errors.Is(err, new(DecodeError)) style checks work without comparing
// traces. Most callers should match on the rendered message instead.
func (e *DecodeError) Is(target error) bool {
	_, ok := target.(*DecodeError)
	return ok
}
