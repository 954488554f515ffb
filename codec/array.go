package codec

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"unsafe"

	"github.com/tsonlib/tson/buffer"
	"github.com/tsonlib/tson/scan"
)

// Inserter places decoded elements into a destination container and decides
// what a structurally valid final container looks like. Implementations are
// stateless; per-call progress is the int state the array codec threads
// through successive Insert calls and never inspects.
type Inserter[C, E any] interface {
	// InitialState returns the progress state for a fresh decode.
	InitialState() int
	// Insert places v into dst and returns the next progress state. It is
	// called exactly once per decoded element, in encounter order.
	Insert(s *scan.Scanner, state int, dst *C, v E) (int, error)
	// Validate checks the final container, exactly once, after the last
	// Insert.
	Validate(s *scan.Scanner, state int, dst C) error
}

// SequenceInserter appends to a growable sequence. Any final size is valid.
type SequenceInserter[E any] struct{}

func (SequenceInserter[E]) InitialState() int { return 0 }

func (SequenceInserter[E]) Insert(_ *scan.Scanner, state int, dst *[]E, v E) (int, error) {
	*dst = append(*dst, v)
	return state, nil
}

func (SequenceInserter[E]) Validate(*scan.Scanner, int, []E) error { return nil }

// FixedSequenceInserter writes positionally into a sequence whose length is
// fixed before the decode begins. The state is the next write position.
type FixedSequenceInserter[E any] struct{}

func (FixedSequenceInserter[E]) InitialState() int { return 0 }

func (FixedSequenceInserter[E]) Insert(s *scan.Scanner, pos int, dst *[]E, v E) (int, error) {
	if pos >= len(*dst) {
		return pos, s.Errorf("too many elements in array")
	}
	(*dst)[pos] = v
	return pos + 1, nil
}

func (FixedSequenceInserter[E]) Validate(s *scan.Scanner, pos int, dst []E) error {
	if pos != len(dst) {
		return s.Errorf("too few elements in array")
	}
	return nil
}

// AssociativeInserter inserts into a set. Inserting an element that is
// already present is absorbed silently.
type AssociativeInserter[E comparable] struct{}

func (AssociativeInserter[E]) InitialState() int { return 0 }

func (AssociativeInserter[E]) Insert(_ *scan.Scanner, state int, dst *map[E]struct{}, v E) (int, error) {
	(*dst)[v] = struct{}{}
	return state, nil
}

func (AssociativeInserter[E]) Validate(*scan.Scanner, int, map[E]struct{}) error { return nil }

type arrayCodec[C, E any] struct {
	elem Codec[E]
	ins  Inserter[C, E]
	make func() C
	iter func(C) iter.Seq[E]
}

// Slice returns a codec for a growable sequence of elem's type.
func Slice[E any](elem Codec[E]) Codec[[]E] {
	if elem == nil {
		panic("elem can't be nil")
	}
	return &arrayCodec[[]E, E]{
		elem: elem,
		ins:  SequenceInserter[E]{},
		make: func() []E { return nil },
		iter: func(c []E) iter.Seq[E] { return slices.Values(c) },
	}
}

// FixedSlice returns a codec for a sequence of exactly size elements. The
// size is fixed at construction; decoding fewer or more elements fails.
func FixedSlice[E any](size int, elem Codec[E]) Codec[[]E] {
	if size < 0 {
		panic("size can't be < 0")
	}
	if elem == nil {
		panic("elem can't be nil")
	}
	return &arrayCodec[[]E, E]{
		elem: elem,
		ins:  FixedSequenceInserter[E]{},
		make: func() []E { return make([]E, size) },
		iter: func(c []E) iter.Seq[E] { return slices.Values(c) },
	}
}

// Set returns a codec for an unordered set of elem's type. Decoding absorbs
// duplicate elements; encoding order follows map iteration order.
func Set[E comparable](elem Codec[E]) Codec[map[E]struct{}] {
	if elem == nil {
		panic("elem can't be nil")
	}
	return &arrayCodec[map[E]struct{}, E]{
		elem: elem,
		ins:  AssociativeInserter[E]{},
		make: func() map[E]struct{} { return make(map[E]struct{}) },
		iter: func(c map[E]struct{}) iter.Seq[E] { return maps.Keys(c) },
	}
}

func (c *arrayCodec[C, E]) Decode(s *scan.Scanner) (C, error) {
	out := c.make()
	if err := decodeElements(s, c.elem, c.ins, &out); err != nil {
		var zero C
		return zero, err
	}
	return out, nil
}

func (c *arrayCodec[C, E]) Encode(b *buffer.Buffer, v C) {
	encodeElements(b, c.elem, c.iter(v))
}

// decodeElements drives one bracketed run: one element decode plus one
// insert per entry, then the final validation. The progress state is local
// to this call so the enclosing codec stays shareable.
func decodeElements[C, E any](s *scan.Scanner, elem Codec[E], ins Inserter[C, E], dst *C) error {
	state := ins.InitialState()
	err := s.Delimited('[', ']', func() error {
		v, err := elem.Decode(s)
		if err != nil {
			return err
		}
		state, err = ins.Insert(s, state, dst, v)
		return err
	})
	if err != nil {
		return err
	}
	return ins.Validate(s, state, *dst)
}

func encodeElements[E any](b *buffer.Buffer, elem Codec[E], values iter.Seq[E]) {
	b.AppendByte('[')
	for v := range values {
		if ShouldEncode(elem, v) {
			elem.Encode(b, v)
			b.AppendByte(',')
		}
	}
	b.ReplaceOrAppend(',', ']')
}

// Array returns a codec for the Go array type A, which must be [N]E for
// elem's element type E. The shape is checked once, at construction.
func Array[A, E any](elem Codec[E]) Codec[A] {
	if elem == nil {
		panic("elem can't be nil")
	}
	rt := reflect.TypeFor[A]()
	if rt.Kind() != reflect.Array || rt.Elem() != reflect.TypeFor[E]() {
		panic(fmt.Sprintf("%s is not an array of %s", rt, reflect.TypeFor[E]()))
	}
	return &goArrayCodec[A, E]{elem: elem, size: rt.Len()}
}

type goArrayCodec[A, E any] struct {
	elem Codec[E]
	size int
}

// view reinterprets the array as a slice so the fixed-capacity inserter can
// write positionally without reflection on the decode path.
func (c *goArrayCodec[A, E]) view(a *A) []E {
	return unsafe.Slice((*E)(unsafe.Pointer(a)), c.size)
}

func (c *goArrayCodec[A, E]) Decode(s *scan.Scanner) (A, error) {
	var out A
	view := c.view(&out)
	if err := decodeElements(s, c.elem, FixedSequenceInserter[E]{}, &view); err != nil {
		var zero A
		return zero, err
	}
	return out, nil
}

func (c *goArrayCodec[A, E]) Encode(b *buffer.Buffer, v A) {
	encodeElements(b, c.elem, func(yield func(E) bool) {
		for _, e := range c.view(&v) {
			if !yield(e) {
				return
			}
		}
	})
}
