package memalloc

import "unsafe"

// LinearAllocator bumps a single cursor forward on every Allocate and
// never tracks individual blocks: Deallocate is a no-op and the only way
// to reclaim memory is Clear, which resets the whole region at once.
type LinearAllocator struct {
	base
	top unsafe.Pointer
}

// NewLinear creates a LinearAllocator over a freshly acquired region of
// size bytes.
func NewLinear(size uintptr) *LinearAllocator {
	a := &LinearAllocator{base: newBase(size)}
	a.top = a.start
	return a
}

func (a *LinearAllocator) Allocate(size, alignment uintptr) unsafe.Pointer {
	if size == 0 {
		panic("memalloc: size must be > 0")
	}
	checkAlignment(alignment)

	d := Adjustment(uintptr(a.top), alignment)
	if a.used+d+size > a.size {
		return nil
	}

	aligned := Add(a.top, d)
	a.top = Add(aligned, size)
	a.used += size + d
	a.allocs++
	return aligned
}

// Deallocate is a no-op: linear allocators only release memory in bulk,
// via Clear.
func (a *LinearAllocator) Deallocate(unsafe.Pointer) {}

// Clear resets the cursor to the start of the region and zeroes the
// accounting, regardless of how many allocations were outstanding.
func (a *LinearAllocator) Clear() {
	a.allocs = 0
	a.used = 0
	a.top = a.start
}

// Close releases the region. All outstanding allocations must have been
// cleared via Clear first.
func (a *LinearAllocator) Close() {
	a.release()
}
