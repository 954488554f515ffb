package codec

import (
	"github.com/tsonlib/tson/buffer"
	"github.com/tsonlib/tson/scan"
)

type optionalCodec[T any] struct {
	elem Codec[T]
}

// Optional wraps elem into a codec for *T. JSON null decodes to nil and nil
// encodes to null; the codec also implements the ShouldEncode capability so
// that enclosing codecs which honor it (the array codec does) omit nil
// values entirely instead of emitting null placeholders.
func Optional[T any](elem Codec[T]) Codec[*T] {
	if elem == nil {
		panic("elem can't be nil")
	}
	return optionalCodec[T]{elem: elem}
}

func (c optionalCodec[T]) Decode(s *scan.Scanner) (*T, error) {
	if ch, ok := s.Peek(); ok && ch == 'n' {
		if err := s.Literal("null"); err != nil {
			return nil, err
		}
		return nil, nil
	}
	v, err := c.elem.Decode(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c optionalCodec[T]) Encode(b *buffer.Buffer, v *T) {
	if v == nil {
		b.AppendString("null")
		return
	}
	c.elem.Encode(b, *v)
}

func (optionalCodec[T]) ShouldEncode(v *T) bool {
	return v != nil
}
