// Package pool provides scope-bound, cache-line-aligned buffer pooling for the
// transform engine.
//
// A Pool amortizes allocation cost across repeated transform calls: the
// multi-level driver acquires its ping-pong and staging buffers from a Scope at
// level entry and releases them all at scope exit. Buffers are handed out at a
// fixed 64-byte alignment so SIMD loads never straddle cache lines.
//
// Pooling is purely a performance optimization: functional correctness is
// identical whether buffers come from the pool or from fresh allocation, and
// the engine's tests run both ways.
//
// A Pool is owned by a single Transformer and is not safe for concurrent use;
// concurrent transforms each carry their own Pool instance.
package pool

import (
	"math/bits"
	"unsafe"

	"github.com/tphakala/go-wavelet/internal/simdops"
)

// Alignment is the guaranteed byte alignment of pooled buffers.
// 64 bytes covers a full cache line and the widest SIMD register (AVX-512).
const Alignment = 64

// minClassElems is the smallest size class handed out. Tiny buffers round up
// to this so the freelists stay short.
const minClassElems = 64

// Pool recycles aligned buffers of type F, bucketed by power-of-two size class.
type Pool[F simdops.Float] struct {
	classes map[int][][]F
}

// New creates an empty pool.
func New[F simdops.Float]() *Pool[F] {
	return &Pool[F]{classes: make(map[int][][]F)}
}

// Scope opens a new acquisition scope. Every buffer acquired through the scope
// is returned to the pool when Close is called, typically via defer:
//
//	s := p.Scope()
//	defer s.Close()
//	buf := s.Acquire(n)
func (p *Pool[F]) Scope() *Scope[F] {
	return &Scope[F]{pool: p}
}

// Scope tracks buffers acquired from a Pool so they can be released together.
// Ownership of an acquired buffer is exclusive to the scope; after Close the
// buffer's contents are undefined to the previous holder.
type Scope[F simdops.Float] struct {
	pool *Pool[F]
	held [][]F
}

// Acquire returns a buffer of exactly n elements at Alignment-byte alignment.
// Contents are unspecified; callers that need zeroed memory must clear it.
func (s *Scope[F]) Acquire(n int) []F {
	if n <= 0 {
		return nil
	}

	class := sizeClass(n)
	var buf []F

	if list := s.pool.classes[class]; len(list) > 0 {
		buf = list[len(list)-1]
		s.pool.classes[class] = list[:len(list)-1]
	} else {
		buf = alignedAlloc[F](class)
	}

	s.held = append(s.held, buf)
	return buf[:n]
}

// AcquireZeroed is Acquire followed by clearing the returned elements.
func (s *Scope[F]) AcquireZeroed(n int) []F {
	buf := s.Acquire(n)
	clear(buf)
	return buf
}

// Close returns all buffers acquired through this scope to the pool.
// The scope must not be used after Close.
func (s *Scope[F]) Close() {
	for _, buf := range s.held {
		full := buf[:cap(buf)]
		class := len(full)
		s.pool.classes[class] = append(s.pool.classes[class], full)
	}
	s.held = s.held[:0]
}

// sizeClass rounds n up to the pool's power-of-two bucket size.
func sizeClass(n int) int {
	if n < minClassElems {
		return minClassElems
	}
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len(uint(n))
}

// alignedAlloc allocates n elements whose first element sits on an
// Alignment-byte boundary. Go's allocator aligns float slices to the element
// size only, so we over-allocate and slice at the aligned offset. The full
// capacity is pinned to exactly n so the freelist can recover the class size
// from cap() alone.
func alignedAlloc[F simdops.Float](n int) []F {
	var zero F
	elemSize := int(unsafe.Sizeof(zero))
	padElems := Alignment / elemSize

	raw := make([]F, n+padElems)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))

	off := 0
	if rem := addr % Alignment; rem != 0 {
		// addr is always elemSize-aligned, so the byte skip divides evenly.
		off = int(Alignment-rem) / elemSize
	}
	return raw[off : off+n : off+n]
}

// Aligned reports whether the first element of buf sits on an Alignment-byte
// boundary. Exposed for tests and assertions.
func Aligned[F simdops.Float](buf []F) bool {
	if len(buf) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(buf)))%Alignment == 0
}
