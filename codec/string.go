package codec

import (
	"github.com/tsonlib/tson/buffer"
	"github.com/tsonlib/tson/scan"
)

type stringCodec struct{}

// String returns the codec for string.
func String() Codec[string] {
	return stringCodec{}
}

func (stringCodec) Decode(s *scan.Scanner) (string, error) {
	return s.String()
}

func (stringCodec) Encode(b *buffer.Buffer, v string) {
	b.AppendByte('"')
	start := 0
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '"' || c == '\\' || c < 0x20 {
			b.AppendString(v[start:i])
			appendEscape(b, c)
			start = i + 1
		}
	}
	b.AppendString(v[start:])
	b.AppendByte('"')
}

const hexDigits = "0123456789abcdef"

func appendEscape(b *buffer.Buffer, c byte) {
	switch c {
	case '"':
		b.AppendString(`\"`)
	case '\\':
		b.AppendString(`\\`)
	case '\b':
		b.AppendString(`\b`)
	case '\f':
		b.AppendString(`\f`)
	case '\n':
		b.AppendString(`\n`)
	case '\r':
		b.AppendString(`\r`)
	case '\t':
		b.AppendString(`\t`)
	default:
		b.AppendString(`\u00`)
		b.AppendByte(hexDigits[c>>4])
		b.AppendByte(hexDigits[c&0xf])
	}
}
