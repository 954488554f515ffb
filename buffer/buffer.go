// This package contains the [Buffer], the shared output sink codecs encode
// into.
package buffer

// Buffer is an in-memory sink for serialized text. The zero value is ready
// to use.
//
// A buffer is used by a single encode call and is not safe for concurrent
// use. Writes cannot fail.
type Buffer struct {
	b []byte
}

// AppendByte adds a single byte to the buffer.
func (b *Buffer) AppendByte(c byte) {
	b.b = append(b.b, c)
}

// Append adds p to the buffer.
func (b *Buffer) Append(p []byte) {
	b.b = append(b.b, p...)
}

// AppendString adds s to the buffer.
func (b *Buffer) AppendString(s string) {
	b.b = append(b.b, s...)
}

// ReplaceOrAppend overwrites a trailing old byte with c, or appends c when
// the last byte written is anything else. It lets a codec elide a trailing
// separator without buffering its whole output.
func (b *Buffer) ReplaceOrAppend(old, c byte) {
	if n := len(b.b); n > 0 && b.b[n-1] == old {
		b.b[n-1] = c
		return
	}
	b.b = append(b.b, c)
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return len(b.b)
}

// Bytes returns the accumulated bytes. The slice aliases the buffer's
// storage and is invalidated by further writes or [Buffer.Reset].
func (b *Buffer) Bytes() []byte {
	return b.b
}

// Reset clears the buffer, keeping its storage for reuse.
func (b *Buffer) Reset() {
	b.b = b.b[:0]
}
