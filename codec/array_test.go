package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsonlib/tson/buffer"
	"github.com/tsonlib/tson/codec"
	"github.com/tsonlib/tson/scan"
)

func decode[T any](t *testing.T, c codec.Codec[T], in string) (T, error) {
	t.Helper()
	s := scan.New([]byte(in))
	v, err := c.Decode(s)
	if err == nil {
		require.NoError(t, s.EOF())
	}
	return v, err
}

func encode[T any](t *testing.T, c codec.Codec[T], v T) string {
	t.Helper()
	var b buffer.Buffer
	c.Encode(&b, v)
	return string(b.Bytes())
}

func TestSlice(t *testing.T) {
	c := codec.Slice(codec.Number[int]())

	t.Run("round trip", func(t *testing.T) {
		in := []int{1, 2, 3}
		out := encode(t, c, in)
		require.Equal(t, "[1,2,3]", out)

		got, err := decode(t, c, out)
		require.NoError(t, err)
		require.Equal(t, in, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := decode(t, c, "[]")
		require.NoError(t, err)
		require.Empty(t, got)

		require.Equal(t, "[]", encode(t, c, nil))
	})

	t.Run("whitespace", func(t *testing.T) {
		got, err := decode(t, c, " [ 1 ,\n2 ,\t3 ] ")
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, got)
	})

	t.Run("duplicates preserved in order", func(t *testing.T) {
		got, err := decode(t, c, "[5,5,1]")
		require.NoError(t, err)
		require.Equal(t, []int{5, 5, 1}, got)
	})

	t.Run("missing open bracket", func(t *testing.T) {
		_, err := decode(t, c, "1,2]")
		var serr *scan.Error
		require.ErrorAs(t, err, &serr)
	})

	t.Run("trailing comma", func(t *testing.T) {
		_, err := decode(t, c, "[1,2,]")
		var serr *scan.Error
		require.ErrorAs(t, err, &serr)
		require.Equal(t, "unexpected ']' after ','", serr.Msg)
	})

	t.Run("element error aborts", func(t *testing.T) {
		got, err := decode(t, c, "[1,true,3]")
		require.Error(t, err)
		require.Nil(t, got)
	})
}

func TestFixedSlice(t *testing.T) {
	c := codec.FixedSlice(3, codec.Number[int]())

	t.Run("round trip", func(t *testing.T) {
		out := encode(t, c, []int{7, 8, 9})
		require.Equal(t, "[7,8,9]", out)

		got, err := decode(t, c, out)
		require.NoError(t, err)
		require.Equal(t, []int{7, 8, 9}, got)
	})

	t.Run("too few", func(t *testing.T) {
		got, err := decode(t, c, "[1,2]")
		var serr *scan.Error
		require.ErrorAs(t, err, &serr)
		require.Equal(t, "too few elements in array", serr.Msg)
		require.Nil(t, got)
	})

	t.Run("too many", func(t *testing.T) {
		// The failure is raised right after the overflowing element is
		// decoded, before the rest of the input is consumed.
		s := scan.New([]byte("[1,2,3,4,5,6]"))
		_, err := c.Decode(s)
		var serr *scan.Error
		require.ErrorAs(t, err, &serr)
		require.Equal(t, "too many elements in array", serr.Msg)
		require.Equal(t, 8, s.Offset())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := decode(t, c, "[]")
		var serr *scan.Error
		require.ErrorAs(t, err, &serr)
		require.Equal(t, "too few elements in array", serr.Msg)
	})

	t.Run("size zero", func(t *testing.T) {
		zero := codec.FixedSlice(0, codec.Number[int]())

		got, err := decode(t, zero, "[]")
		require.NoError(t, err)
		require.Empty(t, got)

		_, err = decode(t, zero, "[1]")
		var serr *scan.Error
		require.ErrorAs(t, err, &serr)
		require.Equal(t, "too many elements in array", serr.Msg)
	})

	t.Run("negative size panics", func(t *testing.T) {
		require.Panics(t, func() { codec.FixedSlice(-1, codec.Number[int]()) })
	})
}

func TestArray(t *testing.T) {
	c := codec.Array[[3]int](codec.Number[int]())

	t.Run("round trip", func(t *testing.T) {
		out := encode(t, c, [3]int{4, 5, 6})
		require.Equal(t, "[4,5,6]", out)

		got, err := decode(t, c, out)
		require.NoError(t, err)
		require.Equal(t, [3]int{4, 5, 6}, got)
	})

	t.Run("too few", func(t *testing.T) {
		_, err := decode(t, c, "[1]")
		var serr *scan.Error
		require.ErrorAs(t, err, &serr)
		require.Equal(t, "too few elements in array", serr.Msg)
	})

	t.Run("too many", func(t *testing.T) {
		_, err := decode(t, c, "[1,2,3,4]")
		var serr *scan.Error
		require.ErrorAs(t, err, &serr)
		require.Equal(t, "too many elements in array", serr.Msg)
	})

	t.Run("zero length", func(t *testing.T) {
		zero := codec.Array[[0]int](codec.Number[int]())

		got, err := decode(t, zero, "[]")
		require.NoError(t, err)
		require.Equal(t, [0]int{}, got)

		require.Equal(t, "[]", encode(t, zero, [0]int{}))
	})

	t.Run("shape mismatch panics", func(t *testing.T) {
		require.Panics(t, func() { codec.Array[[3]string](codec.Number[int]()) })
		require.Panics(t, func() { codec.Array[[]int](codec.Number[int]()) })
	})
}

func TestSet(t *testing.T) {
	c := codec.Set(codec.Number[int]())

	t.Run("duplicates absorbed", func(t *testing.T) {
		got, err := decode(t, c, "[1,1,2]")
		require.NoError(t, err)
		require.Equal(t, map[int]struct{}{1: {}, 2: {}}, got)
	})

	t.Run("round trip as set", func(t *testing.T) {
		in := map[int]struct{}{3: {}, 1: {}, 2: {}}
		got, err := decode(t, c, encode(t, c, in))
		require.NoError(t, err)
		require.Equal(t, in, got)
	})

	t.Run("empty", func(t *testing.T) {
		got, err := decode(t, c, "[]")
		require.NoError(t, err)
		require.Empty(t, got)

		require.Equal(t, "[]", encode(t, c, nil))
	})
}

func TestNested(t *testing.T) {
	c := codec.Slice(codec.Slice(codec.Number[int]()))

	in := [][]int{{1, 2}, nil, {3}}
	out := encode(t, c, in)
	require.Equal(t, "[[1,2],[],[3]]", out)

	got, err := decode(t, c, out)
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 2}, nil, {3}}, got)
}

func TestSparseEncode(t *testing.T) {
	c := codec.Slice(codec.Optional(codec.String()))

	str := func(s string) *string { return &s }

	t.Run("omitted middle element", func(t *testing.T) {
		out := encode(t, c, []*string{str("a"), nil, str("b")})
		require.Equal(t, `["a","b"]`, out)
	})

	t.Run("omitted last element", func(t *testing.T) {
		out := encode(t, c, []*string{str("a"), nil})
		require.Equal(t, `["a"]`, out)
	})

	t.Run("all omitted", func(t *testing.T) {
		out := encode(t, c, []*string{nil, nil})
		require.Equal(t, "[]", out)
	})

	t.Run("null still decodes", func(t *testing.T) {
		got, err := decode(t, c, `["a",null,"b"]`)
		require.NoError(t, err)
		require.Equal(t, []*string{str("a"), nil, str("b")}, got)
	})
}

func TestCustomInserter(t *testing.T) {
	// The inserter set is closed but extensible: the engine only needs the
	// three operations.
	c := codec.Slice(codec.Number[int]())

	var _ codec.Inserter[[]int, int] = codec.SequenceInserter[int]{}
	var _ codec.Inserter[[]int, int] = codec.FixedSequenceInserter[int]{}
	var _ codec.Inserter[map[int]struct{}, int] = codec.AssociativeInserter[int]{}

	got, err := decode(t, c, "[1]")
	require.NoError(t, err)
	require.Equal(t, []int{1}, got)
}
