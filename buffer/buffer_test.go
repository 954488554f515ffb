package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsonlib/tson/buffer"
)

func TestBuffer(t *testing.T) {
	var b buffer.Buffer
	require.Equal(t, 0, b.Len())
	require.Empty(t, b.Bytes())

	b.AppendByte('[')
	b.AppendString("1,2")
	b.Append([]byte(",3"))
	require.Equal(t, "[1,2,3", string(b.Bytes()))
	require.Equal(t, 6, b.Len())

	b.Reset()
	require.Equal(t, 0, b.Len())

	b.AppendString("ok")
	require.Equal(t, "ok", string(b.Bytes()))
}

func TestReplaceOrAppend(t *testing.T) {
	t.Run("replaces trailing separator", func(t *testing.T) {
		var b buffer.Buffer
		b.AppendString("[1,2,")
		b.ReplaceOrAppend(',', ']')
		require.Equal(t, "[1,2]", string(b.Bytes()))
	})

	t.Run("appends when last byte differs", func(t *testing.T) {
		var b buffer.Buffer
		b.AppendByte('[')
		b.ReplaceOrAppend(',', ']')
		require.Equal(t, "[]", string(b.Bytes()))
	})

	t.Run("appends to empty buffer", func(t *testing.T) {
		var b buffer.Buffer
		b.ReplaceOrAppend(',', ']')
		require.Equal(t, "]", string(b.Bytes()))
	})
}
