// Package arena provides chunked bump allocation for values that share a
// lifetime. Arenas created against one Budget are charged and released
// together, so a whole object graph is freed by a single Release call.
//
// A Budget may carry an element limit; allocating past the limit panics
// with ErrExhausted, unwinding the construction in one step.
package arena

import "errors"

// ErrExhausted is the panic value raised when an allocation would exceed
// the Budget's element limit.
var ErrExhausted = errors.New("arena: allocation budget exhausted")

const defaultChunk = 64

// A Budget is shared by a group of arenas and caps the total number of
// elements they may allocate between them. Limit 0 means unlimited.
type Budget struct {
	limit    int
	used     int
	released bool
	arenas   []interface{ Release() }
}

// NewBudget returns a budget capped at limit elements, or unlimited if
// limit is 0.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

// Used reports the number of elements charged so far.
func (b *Budget) Used() int { return b.used }

// Limit reports the element cap, 0 meaning unlimited.
func (b *Budget) Limit() int { return b.limit }

// Release frees every arena created against the budget. Calling it a
// second time panics.
func (b *Budget) Release() {
	if b.released {
		panic("arena: budget released twice")
	}
	b.released = true
	for _, a := range b.arenas {
		a.Release()
	}
	b.arenas = nil
}

func (b *Budget) charge(n int) {
	if b == nil {
		return
	}
	b.used += n
	if b.limit > 0 && b.used > b.limit {
		panic(ErrExhausted)
	}
}

// An Arena bump-allocates values of one type in fixed-size chunks.
// Pointers it hands out stay valid until Release, which zeroes and drops
// every chunk at once.
type Arena[T any] struct {
	budget    *Budget
	chunks    [][]T
	chunkSize int
	count     int
	released  bool
}

// NewArena returns an arena charging b, or a standalone unlimited arena if
// b is nil. chunkSize fixes the elements per chunk; 0 picks a default.
func NewArena[T any](b *Budget, chunkSize int) *Arena[T] {
	if chunkSize <= 0 {
		chunkSize = defaultChunk
	}
	a := &Arena[T]{budget: b, chunkSize: chunkSize}
	if b != nil {
		if b.released {
			panic("arena: new arena after release")
		}
		b.arenas = append(b.arenas, a)
	}
	return a
}

// New copies v into the arena and returns its address.
func (a *Arena[T]) New(v T) *T {
	s := a.block(1)
	s[0] = v
	return &s[0]
}

// Slice returns a zeroed arena-backed slice with length and capacity n.
func (a *Arena[T]) Slice(n int) []T {
	return a.block(n)
}

// Copy clones src into arena-backed storage. An empty src yields nil.
func (a *Arena[T]) Copy(src []T) []T {
	if len(src) == 0 {
		return nil
	}
	dst := a.block(len(src))
	copy(dst, src)
	return dst
}

// Len reports the number of elements allocated so far.
func (a *Arena[T]) Len() int { return a.count }

// Release zeroes every chunk and drops them. Afterwards the arena and all
// pointers it handed out are invalid; a second Release panics.
func (a *Arena[T]) Release() {
	if a.released {
		panic("arena: double release")
	}
	a.released = true
	for i := range a.chunks {
		clear(a.chunks[i])
		a.chunks[i] = nil
	}
	a.chunks = nil
}

// block hands out n contiguous elements, growing the chunk list when the
// active chunk cannot fit them. The returned slice is capped at n so a
// caller's append cannot overwrite a neighbor.
func (a *Arena[T]) block(n int) []T {
	if a.released {
		panic("arena: allocate after release")
	}
	if n == 0 {
		return nil
	}
	a.budget.charge(n)
	a.count += n
	last := len(a.chunks) - 1
	if last < 0 || cap(a.chunks[last])-len(a.chunks[last]) < n {
		size := a.chunkSize
		if n > size {
			size = n
		}
		a.chunks = append(a.chunks, make([]T, 0, size))
		last++
	}
	c := a.chunks[last]
	start := len(c)
	a.chunks[last] = c[:start+n]
	return c[start : start+n : start+n]
}
