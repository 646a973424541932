package jcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionDecoderNullAndMissing(t *testing.T) {
	dec := OptionDecoder[int32]{Inner: IntDecoder}

	v, err := Decode(`null`, dec)
	if !assert.NoError(t, err) {
		return
	}
	assert.Nil(t, v)

	v, err = dec.Missing(ErrorTrace(nil))
	if !assert.NoError(t, err) {
		return
	}
	assert.Nil(t, v)

	v, err = Decode(`5`, dec)
	if !assert.NoError(t, err) {
		return
	}
	if assert.NotNil(t, v) {
		assert.Equal(t, int32(5), *v)
	}
}

func TestOptionEncoder(t *testing.T) {
	enc := OptionEncoder[int32]{Inner: Int32Encoder}
	assert.Equal(t, "null", Encode[*int32](nil, enc, false))
	n := int32(5)
	assert.Equal(t, "5", Encode(&n, enc, false))
}

func TestEitherDecoderExactlyOneSide(t *testing.T) {
	dec := NewEitherDecoder[int32, string](IntDecoder, StringDecoder)

	e, err := Decode(`{"a": 1}`, dec)
	if !assert.NoError(t, err) {
		return
	}
	lv, ok := e.Left()
	assert.True(t, ok)
	assert.Equal(t, int32(1), lv)

	e, err = Decode(`{"Right": "x"}`, dec)
	if !assert.NoError(t, err) {
		return
	}
	rv, ok := e.Right()
	assert.True(t, ok)
	assert.Equal(t, "x", rv)
}

func TestEitherDecoderBothPresentIsAmbiguous(t *testing.T) {
	dec := NewEitherDecoder[int32, string](IntDecoder, StringDecoder)
	_, err := Decode(`{"a": 1, "b": "x"}`, dec)
	if !assert.Error(t, err) {
		return
	}
	assert.Equal(t, "(ambiguous either, both present)", err.Error())
}

func TestEitherDecoderNeitherPresentIsMissing(t *testing.T) {
	dec := NewEitherDecoder[int32, string](IntDecoder, StringDecoder)
	_, err := Decode(`{}`, dec)
	if !assert.Error(t, err) {
		return
	}
	assert.Equal(t, "(missing)", err.Error())
}

func TestEitherEncoder(t *testing.T) {
	enc := EitherEncoder[int32, string]{LeftEnc: Int32Encoder, RightEnc: StringEncoder}
	got := Encode(LeftOf[int32, string](7), enc, false)
	assert.Equal(t, `{"left":7}`, got)
}

func TestSliceDecoderIndexTrace(t *testing.T) {
	dec := SliceDecoder[int32]{Elem: IntDecoder}
	_, err := Decode(`[1, "x", 3]`, dec)
	if !assert.Error(t, err) {
		return
	}
	assert.Equal(t, "[1](expected an Int)", err.Error())
}

func TestMapDecoderDuplicateKey(t *testing.T) {
	dec := MapDecoder[string, int32]{Key: StringFieldDecoder, Val: IntDecoder}
	_, err := Decode(`{"a": 1, "a": 2}`, dec)
	if !assert.Error(t, err) {
		return
	}
	assert.Equal(t, ".a(duplicate)", err.Error())
}

func TestMapDecodeEncodeRoundTrip(t *testing.T) {
	dec := MapDecoder[string, int32]{Key: StringFieldDecoder, Val: IntDecoder}
	enc := MapEncoder[string, int32]{Key: StringFieldEncoder, Val: Int32Encoder}

	m, err := Decode(`{"b": 2, "a": 1}`, dec)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, map[string]int32{"a": 1, "b": 2}, m)

	text := Encode(m, enc, false)
	assert.Equal(t, `{"a":1,"b":2}`, text)
}

func TestSetDecoderDeduplicates(t *testing.T) {
	dec := SetDecoder[int32]{Elem: IntDecoder}
	s, err := Decode(`[1, 2, 2, 3]`, dec)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, 3, s.Cardinality())
	assert.True(t, s.Contains(2))
}

func TestSortedMapEncoderUsesOrdering(t *testing.T) {
	enc := SortedMapEncoder[int32, string]{
		Key:   IntFieldEncoder,
		Val:   StringEncoder,
		Order: descendingInt32{},
	}
	text := Encode(map[int32]string{1: "a", 2: "b", 3: "c"}, enc, false)
	assert.Equal(t, `{"3":"c","2":"b","1":"a"}`, text)
}

type descendingInt32 struct{}

func (descendingInt32) Less(a, b int32) bool { return a > b }
