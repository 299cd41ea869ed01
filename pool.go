package memalloc

import "unsafe"

// pointerSize is the minimum object size PoolAllocator can service: a
// free slot stores a pointer to the next free slot at its own head.
var pointerSize = unsafe.Sizeof(uintptr(0))

// PoolAllocator hands out fixed-size, fixed-alignment slots in O(1) by
// popping the head of an intrusive free list threaded through the slots
// themselves.
type PoolAllocator struct {
	base
	objectSize      uintptr
	objectAlignment uintptr
	free            unsafe.Pointer
}

// NewPool creates a PoolAllocator over a freshly acquired region of size
// bytes, partitioned into slots of objectSize bytes aligned to
// objectAlignment. objectSize must be at least pointer-sized and
// objectAlignment must be a power of two.
func NewPool(size, objectSize, objectAlignment uintptr) *PoolAllocator {
	if objectSize < pointerSize {
		panic("memalloc: pool object size must be at least pointer-sized")
	}
	checkAlignment(objectAlignment)

	a := &PoolAllocator{
		base:            newBase(size),
		objectSize:      objectSize,
		objectAlignment: objectAlignment,
	}

	d := Adjustment(uintptr(a.start), objectAlignment)
	if d >= size {
		panic("memalloc: pool capacity too small to hold a single aligned object")
	}
	head := Add(a.start, d)

	count := (size - d) / objectSize
	if count == 0 {
		panic("memalloc: pool capacity too small to hold a single object")
	}

	slot := head
	for i := uintptr(0); i < count-1; i++ {
		next := Add(slot, objectSize)
		*(*unsafe.Pointer)(slot) = next
		slot = next
	}
	*(*unsafe.Pointer)(slot) = nil

	a.free = head
	return a
}

// Allocate requires size == the pool's configured object size and
// alignment == its configured alignment; any other request panics.
func (a *PoolAllocator) Allocate(size, alignment uintptr) unsafe.Pointer {
	if size != a.objectSize || alignment != a.objectAlignment {
		panic("memalloc: pool allocate size/alignment does not match the pool's configuration")
	}
	if a.free == nil {
		return nil
	}

	addr := a.free
	a.free = *(*unsafe.Pointer)(addr)
	a.used += a.objectSize
	a.allocs++
	return addr
}

func (a *PoolAllocator) Deallocate(address unsafe.Pointer) {
	if address == nil {
		panic("memalloc: deallocate of nil address")
	}

	*(*unsafe.Pointer)(address) = a.free
	a.free = address
	a.used -= a.objectSize
	a.allocs--
}

// Close releases the region. All outstanding allocations must have
// already been deallocated.
func (a *PoolAllocator) Close() {
	a.release()
}
