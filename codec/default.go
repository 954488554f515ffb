package codec

import (
	"fmt"
	"reflect"
	"sync"
)

var defaults sync.Map // reflect.Type -> Codec[T]

// Register makes c the default codec for T, replacing any previous binding.
// Registering a container binding makes the container type itself available
// to [Default], so bindings compose ([]int enables [][]int, and so on).
func Register[T any](c Codec[T]) {
	if c == nil {
		panic("codec can't be nil")
	}
	defaults.Store(reflect.TypeFor[T](), c)
}

// Default returns the registered default codec for T. A missing binding is
// a wiring gap, not an input error, so Default panics.
func Default[T any]() Codec[T] {
	c, ok := defaults.Load(reflect.TypeFor[T]())
	if !ok {
		panic(fmt.Sprintf("no default codec for %s", reflect.TypeFor[T]()))
	}
	return c.(Codec[T])
}

// DefaultSlice binds the growable sequence []E to an array codec over E's
// default codec.
func DefaultSlice[E any]() Codec[[]E] {
	return Slice(Default[E]())
}

// DefaultArray binds the Go array type A = [N]E likewise.
func DefaultArray[A, E any]() Codec[A] {
	return Array[A](Default[E]())
}

// DefaultSet binds the set map[E]struct{} likewise.
func DefaultSet[E comparable]() Codec[map[E]struct{}] {
	return Set(Default[E]())
}

func init() {
	Register(Boolean())
	Register(String())
	Register(Number[int]())
	Register(Number[int8]())
	Register(Number[int16]())
	Register(Number[int32]())
	Register(Number[int64]())
	Register(Number[uint]())
	Register(Number[uint8]())
	Register(Number[uint16]())
	Register(Number[uint32]())
	Register(Number[uint64]())
	Register(Number[float32]())
	Register(Number[float64]())
}
