package codec

import (
	"github.com/tsonlib/tson/buffer"
	"github.com/tsonlib/tson/scan"
)

type booleanCodec struct{}

// Boolean returns the codec for bool.
func Boolean() Codec[bool] {
	return booleanCodec{}
}

func (booleanCodec) Decode(s *scan.Scanner) (bool, error) {
	if c, ok := s.Peek(); ok && c == 't' {
		if err := s.Literal("true"); err != nil {
			return false, err
		}
		return true, nil
	}
	if err := s.Literal("false"); err != nil {
		return false, err
	}
	return false, nil
}

func (booleanCodec) Encode(b *buffer.Buffer, v bool) {
	if v {
		b.AppendString("true")
	} else {
		b.AppendString("false")
	}
}
