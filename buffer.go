package tson

import "github.com/tsonlib/tson/buffer"

// Buffer is re-exported from the buffer package: the per-call output sink a
// codec encodes into.
type Buffer = buffer.Buffer
