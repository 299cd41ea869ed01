package memalloc

import "unsafe"

// freeListHeader sits immediately before every live allocation handed
// out by FreeListAllocator and records everything Deallocate needs to
// reconstitute the block as a free node: its total footprint (including
// padding and the header itself) and the adjustment used to align it.
type freeListHeader struct {
	size       uintptr
	adjustment uintptr
}

// freeBlock is written into the first bytes of every unallocated span.
// The free list is a singly-linked chain of these, kept in ascending
// address order.
type freeBlock struct {
	size uintptr
	next *freeBlock
}

var (
	freeListHeaderSize = unsafe.Sizeof(freeListHeader{})
	freeBlockSize      = unsafe.Sizeof(freeBlock{})
)

func init() {
	// Every live allocation's footprint must be re-expressible as a free
	// block on release without needing extra space, so the header must
	// never be smaller than the free block it stands in for.
	if freeListHeaderSize < freeBlockSize {
		panic("memalloc: freeListHeader must be at least as large as freeBlock")
	}
}

// FreeListAllocator services arbitrary-sized allocations with a
// first-fit, split-on-allocate, merge-on-free free list.
type FreeListAllocator struct {
	base
	free *freeBlock
}

// NewFreeList creates a FreeListAllocator over a freshly acquired region
// of size bytes. size must be strictly greater than the free-block
// header, since the region starts life as a single free block.
func NewFreeList(size uintptr) *FreeListAllocator {
	if size <= freeBlockSize {
		panic("memalloc: FreeListAllocator requires capacity greater than the free-block header size")
	}

	a := &FreeListAllocator{base: newBase(size)}
	head := (*freeBlock)(a.start)
	head.size = size
	head.next = nil
	a.free = head
	return a
}

func (a *FreeListAllocator) Allocate(size, alignment uintptr) unsafe.Pointer {
	if size == 0 {
		panic("memalloc: size must be > 0")
	}
	checkAlignment(alignment)

	var prev *freeBlock
	block := a.free

	for block != nil {
		d := AdjustmentWithHeader(uintptr(unsafe.Pointer(block)), alignment, freeListHeaderSize)
		total := size + d

		if block.size < total {
			prev = block
			block = block.next
			continue
		}

		if block.size-total <= freeListHeaderSize {
			// Remainder too small to host its own free block: hand out
			// the whole thing and unlink it.
			total = block.size
			if prev != nil {
				prev.next = block.next
			} else {
				a.free = block.next
			}
		} else {
			// Split: carve a smaller free block out of the remainder.
			split := (*freeBlock)(Add(unsafe.Pointer(block), total))
			split.size = block.size - total
			split.next = block.next
			if prev != nil {
				prev.next = split
			} else {
				a.free = split
			}
		}

		aligned := Add(unsafe.Pointer(block), d)
		header := (*freeListHeader)(Subtract(aligned, freeListHeaderSize))
		header.size = total
		header.adjustment = d

		a.used += total
		a.allocs++
		return aligned
	}

	return nil
}

func (a *FreeListAllocator) Deallocate(address unsafe.Pointer) {
	if address == nil {
		panic("memalloc: deallocate of nil address")
	}

	header := (*freeListHeader)(Subtract(address, freeListHeaderSize))
	total := header.size
	blockStart := uintptr(address) - header.adjustment
	blockEnd := blockStart + total

	// Find prev, the last free block below blockEnd, and cur, the first
	// free block at or beyond it.
	var prev *freeBlock
	cur := a.free
	for cur != nil {
		if uintptr(unsafe.Pointer(cur)) >= blockEnd {
			break
		}
		prev = cur
		cur = cur.next
	}

	var merged *freeBlock
	switch {
	case prev == nil:
		// Freed region precedes every existing free block: link at head.
		merged = (*freeBlock)(unsafe.Pointer(blockStart))
		merged.size = total
		merged.next = a.free
		a.free = merged
	case uintptr(unsafe.Pointer(prev))+prev.size == blockStart:
		// prev touches the freed region: coalesce backward, keeping
		// prev's existing next pointer (a full coalesce, see DESIGN.md).
		prev.size += total
		merged = prev
	default:
		merged = (*freeBlock)(unsafe.Pointer(blockStart))
		merged.size = total
		merged.next = prev.next
		prev.next = merged
	}

	if cur != nil && uintptr(unsafe.Pointer(cur)) == blockEnd {
		// cur touches the freed region: coalesce forward.
		merged.size += cur.size
		merged.next = cur.next
	}

	a.used -= total
	a.allocs--
}

// Close releases the region. All outstanding allocations must have
// already been deallocated.
func (a *FreeListAllocator) Close() {
	a.release()
}
