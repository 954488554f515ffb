// This package contains the main [Codec] interface, element codecs for the
// scalar JSON types, the array codec over the three container shapes, and
// the default-codec registry.
package codec

import (
	"github.com/tsonlib/tson/buffer"
	"github.com/tsonlib/tson/scan"
)

// Codec converts values of a single type to and from their JSON text form.
//
// Implementations must hold no per-call state: a codec may be shared by any
// number of concurrent Decode and Encode calls, provided each call supplies
// its own scanner and buffer.
type Codec[T any] interface {
	// Decode reads one value from the scanner, advancing it past the
	// consumed input. On failure the scanner's position points at the
	// offending input and the partial value must be discarded.
	Decode(s *scan.Scanner) (T, error)
	// Encode writes the JSON form of v into the buffer. It cannot fail.
	Encode(b *buffer.Buffer, v T)
}

// ShouldEncode reports whether c wants v emitted at all. Codecs that can
// represent absent values implement the optional ShouldEncode(T) bool
// method; for every other codec the answer is true. Composed codecs such as
// the array codec consult this before emitting each element.
func ShouldEncode[T any](c Codec[T], v T) bool {
	if sc, ok := c.(interface{ ShouldEncode(v T) bool }); ok {
		return sc.ShouldEncode(v)
	}
	return true
}
