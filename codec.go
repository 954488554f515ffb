package tson

import "github.com/tsonlib/tson/codec"

// Codec is re-exported from the codec package for callers that only use the
// root API.
type Codec[T any] = codec.Codec[T]
