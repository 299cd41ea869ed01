package memalloc

import "unsafe"

// stackHeader sits immediately before every address the stack allocator
// returns. prevTop is only meaningful under debug and records the
// address returned by the previous Allocate, letting Deallocate assert
// LIFO order.
type stackHeader struct {
	prevTop    unsafe.Pointer
	adjustment uintptr
}

var stackHeaderSize = unsafe.Sizeof(stackHeader{})

// StackAllocator is a LIFO bump allocator: Allocate advances a cursor
// like LinearAllocator, but each block is preceded by a header recording
// the adjustment used, so Deallocate can walk the cursor back.
type StackAllocator struct {
	base
	top     unsafe.Pointer
	prevTop unsafe.Pointer
}

// NewStack creates a StackAllocator over a freshly acquired region of
// size bytes.
func NewStack(size uintptr) *StackAllocator {
	a := &StackAllocator{base: newBase(size)}
	a.top = a.start
	return a
}

func (a *StackAllocator) Allocate(size, alignment uintptr) unsafe.Pointer {
	if size == 0 {
		panic("memalloc: size must be > 0")
	}
	checkAlignment(alignment)

	d := AdjustmentWithHeader(uintptr(a.top), alignment, stackHeaderSize)
	if a.used+d+size > a.size {
		return nil
	}

	aligned := Add(a.top, d)
	header := (*stackHeader)(Subtract(aligned, stackHeaderSize))
	header.adjustment = d
	if debug {
		header.prevTop = a.prevTop
		a.prevTop = aligned
	}

	a.top = Add(aligned, size)
	a.used += d + size
	a.allocs++
	return aligned
}

// Deallocate releases the most recently allocated, still-live block.
// Under debug, address must equal the last address Allocate returned:
// releasing out of LIFO order panics.
func (a *StackAllocator) Deallocate(address unsafe.Pointer) {
	if debug && address != a.prevTop {
		panic("memalloc: stack deallocate out of LIFO order")
	}

	header := (*stackHeader)(Subtract(address, stackHeaderSize))
	a.used -= (uintptr(a.top) - uintptr(address)) + header.adjustment
	a.top = Subtract(address, header.adjustment)
	if debug {
		a.prevTop = header.prevTop
	}
	a.allocs--
}

// Close releases the region. All outstanding allocations must have
// already been deallocated.
func (a *StackAllocator) Close() {
	a.release()
}
