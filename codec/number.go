package codec

import (
	"math"
	"reflect"
	"strconv"

	"github.com/tsonlib/tson/buffer"
	"github.com/tsonlib/tson/scan"
)

// Numeric is the set of types [Number] can convert.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type numberCodec[N Numeric] struct {
	kind reflect.Kind
	bits int
}

// Number returns the codec for the numeric type N. Integer kinds reject
// fractional and exponent forms on decode; out-of-range values fail rather
// than wrap.
func Number[N Numeric]() Codec[N] {
	rt := reflect.TypeFor[N]()
	return numberCodec[N]{kind: rt.Kind(), bits: rt.Bits()}
}

func (c numberCodec[N]) Decode(s *scan.Scanner) (N, error) {
	var zero N
	tok, err := s.Number()
	if err != nil {
		return zero, err
	}
	switch c.kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(string(tok), 10, c.bits)
		if err != nil {
			return zero, s.Errorf("invalid integer %q", tok)
		}
		return N(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(string(tok), 10, c.bits)
		if err != nil {
			return zero, s.Errorf("invalid integer %q", tok)
		}
		return N(n), nil
	default:
		f, err := strconv.ParseFloat(string(tok), c.bits)
		if err != nil {
			return zero, s.Errorf("invalid number %q", tok)
		}
		return N(f), nil
	}
}

func (c numberCodec[N]) Encode(b *buffer.Buffer, v N) {
	switch c.kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.Append(strconv.AppendInt(nil, int64(v), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		b.Append(strconv.AppendUint(nil, uint64(v), 10))
	default:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			panic("can't encode non-finite number")
		}
		b.Append(strconv.AppendFloat(nil, f, 'g', -1, c.bits))
	}
}
