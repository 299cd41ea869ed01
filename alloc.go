package memalloc

import "unsafe"

// Allocator is the contract shared by every allocation strategy in this
// package: Linear, Stack, FreeList, Pool and Proxy. The region-backed
// implementations own a single region acquired once at construction;
// Allocate hands out aligned views into it, Deallocate returns them.
// Proxy owns no region and forwards both calls to its delegate.
type Allocator interface {
	// Allocate returns an address a such that a mod alignment == 0, or
	// nil if the request cannot be satisfied within the remaining
	// capacity. size and alignment must both be non-zero; alignment
	// must be a power of two.
	Allocate(size, alignment uintptr) unsafe.Pointer

	// Deallocate releases an address previously returned by Allocate on
	// this same allocator. The caller must not use address afterwards.
	Deallocate(address unsafe.Pointer)

	// Size returns the total capacity of the region in bytes.
	Size() uintptr

	// Start returns the address of the first byte of the region.
	Start() unsafe.Pointer

	// UsedMemory returns the bytes currently handed out, including any
	// alignment padding and per-block headers the strategy inserted.
	UsedMemory() uintptr

	// NumAllocations returns the count of currently live allocations.
	NumAllocations() uintptr
}

// debug keeps the extra bookkeeping the original C++ gated behind
// #if _DEBUG always on: the stack allocator's LIFO back-pointer check
// and the zero-counters assertion at Close. Per the design note that
// this check is cheap, it is not worth a build tag to disable it.
const debug = true

// base is embedded by every region-backed allocator (everything but
// Proxy, which has no region of its own). It owns the mmap'd region and
// the used/allocs accounting shared by all strategies, and mirrors the
// original Allocator base class.
type base struct {
	region *region
	start  unsafe.Pointer
	size   uintptr
	used   uintptr
	allocs uintptr
}

func newBase(size uintptr) base {
	if size == 0 {
		panic("memalloc: size must be > 0")
	}
	r := newRegion(size)
	return base{region: r, start: r.start, size: size}
}

func (b *base) Size() uintptr           { return b.size }
func (b *base) Start() unsafe.Pointer   { return b.start }
func (b *base) UsedMemory() uintptr     { return b.used }
func (b *base) NumAllocations() uintptr { return b.allocs }

// release returns the region to the OS. Every allocator must be closed
// with used_memory == 0 && num_allocations == 0; closing with
// outstanding allocations is a programmer error.
func (b *base) release() {
	if debug && (b.used != 0 || b.allocs != 0) {
		panic("memalloc: allocator closed with live allocations outstanding")
	}
	if b.region != nil {
		b.region.release()
		b.region = nil
	}
	b.start = nil
}
