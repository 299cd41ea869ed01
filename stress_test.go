package memalloc

import (
	"math"
	"testing"
	"unsafe"

	"github.com/cznic/mathutil"
)

// quota bounds the randomized stress scenario below, the same role it
// plays in the teacher package's own test1.
const quota = 8 << 20

// TestFreeListStressQuota mirrors the teacher's randomized
// malloc/verify/shuffle/free cycle: allocate until a byte quota is
// exhausted, write a per-allocation fingerprint and verify every
// fingerprint, shuffle the release order, then release everything and
// verify the zeroed accounting.
func TestFreeListStressQuota(t *testing.T) {
	a := NewFreeList(quota * 2)
	defer a.Close()

	rng, err := mathutil.NewFC32(1, 512, true)
	if err != nil {
		t.Fatal(err)
	}
	rng.Seed(42)

	type block struct {
		addr unsafe.Pointer
		size uintptr
		fill byte
	}

	var blocks []block
	var used uintptr
	for used < quota {
		size := uintptr(rng.Next())
		p := a.Allocate(size, 8)
		if p == nil {
			break
		}
		fill := byte(rng.Next())
		data := unsafe.Slice((*byte)(p), size)
		for i := range data {
			data[i] = fill
		}
		blocks = append(blocks, block{addr: p, size: size, fill: fill})
		used += size
	}

	for _, b := range blocks {
		data := unsafe.Slice((*byte)(b.addr), b.size)
		for i, v := range data {
			if v != b.fill {
				t.Fatalf("corruption at block %p offset %d: got %#x want %#x", b.addr, i, v, b.fill)
			}
		}
	}

	// Shuffle release order using the same PRNG, then release everything.
	for i := range blocks {
		j := int(rng.Next()) % len(blocks)
		blocks[i], blocks[j] = blocks[j], blocks[i]
	}
	for _, b := range blocks {
		a.Deallocate(b.addr)
	}

	if a.NumAllocations() != 0 || a.UsedMemory() != 0 {
		t.Fatalf("after releasing everything: allocs=%d used=%d, want 0, 0", a.NumAllocations(), a.UsedMemory())
	}
}

func BenchmarkFreeListAllocatorMixedSizes(b *testing.B) {
	a := NewFreeList(1 << 24)
	defer a.Close()

	rng, err := mathutil.NewFC32(0, math.MaxInt32, true)
	if err != nil {
		b.Fatal(err)
	}

	sizes := [...]uintptr{16, 256, 2048}
	var ptrs []unsafe.Pointer
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		size := sizes[int(rng.Next())%len(sizes)]
		p := a.Allocate(size, 8)
		if p == nil {
			for _, q := range ptrs {
				a.Deallocate(q)
			}
			ptrs = ptrs[:0]
			continue
		}
		ptrs = append(ptrs, p)
	}
	for _, p := range ptrs {
		a.Deallocate(p)
	}
}
