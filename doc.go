// Package memalloc implements fixed-capacity, region-backed memory
// allocators for hosts that want to bypass the general-purpose heap on
// hot paths: per-frame scratch memory, per-request arenas, fixed-size
// object pools, and instrumented wrappers over other allocators.
//
// Every allocator acquires one contiguous byte region from the OS at
// construction (via an anonymous mmap, see mmap_unix.go/mmap_windows.go)
// and hands out raw, aligned ranges carved from it until Close. There is
// no thread safety, no growable regions, and no coalescing across
// allocator instances: each instance is a single-owner, fixed-capacity
// arena.
//
// Five strategies share one contract (Allocator):
//
//	Linear   - bump pointer, no per-block bookkeeping, bulk Clear
//	Stack    - LIFO bump pointer with a per-block header
//	FreeList - first-fit free-block list with split and merge
//	Pool     - fixed-size slots threaded through an intrusive free list
//	Proxy    - counts traffic through a delegate without owning it
//
// The New (released through Handle.Release) and NewArray/DeleteArray
// helpers in typed.go construct and destroy Go values in place on top of
// any Allocator.
package memalloc
