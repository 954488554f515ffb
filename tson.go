// Package tson is a typed JSON codec library. Values are converted to and
// from text by explicit, composable codec values instead of whole-document
// reflection: each codec knows one type, and composed codecs (such as the
// array codec) thread one shared scanner or buffer through their elements.
package tson

import (
	"fmt"

	"github.com/tsonlib/tson/buffer"
	"github.com/tsonlib/tson/codec"
	"github.com/tsonlib/tson/scan"
)

// MarshalWith encodes v using c.
func MarshalWith[T any](c codec.Codec[T], v T) []byte {
	var b buffer.Buffer
	c.Encode(&b, v)
	return b.Bytes()
}

// UnmarshalWith decodes one value from data using c. Anything but whitespace
// remaining after the value is an error, and any failure discards the
// partially decoded value.
func UnmarshalWith[T any](c codec.Codec[T], data []byte) (T, error) {
	var zero T
	s := scan.New(data)
	v, err := c.Decode(s)
	if err != nil {
		return zero, fmt.Errorf("decode: %w", err)
	}
	if err := s.EOF(); err != nil {
		return zero, fmt.Errorf("decode: %w", err)
	}
	return v, nil
}

// Marshal encodes v using the default codec for T.
func Marshal[T any](v T) []byte {
	return MarshalWith(codec.Default[T](), v)
}

// Unmarshal decodes one value from data using the default codec for T.
func Unmarshal[T any](data []byte) (T, error) {
	return UnmarshalWith(codec.Default[T](), data)
}
