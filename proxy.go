package memalloc

import "unsafe"

// ProxyAllocator wraps a delegate Allocator and maintains its own
// independent used_memory/num_allocations counters over the traffic it
// observes, while the delegate remains the sole owner of the region. The
// caller must guarantee the delegate outlives the proxy.
type ProxyAllocator struct {
	delegate Allocator
	used     uintptr
	allocs   uintptr
}

// NewProxy creates a ProxyAllocator over delegate. delegate must not be
// nil and must outlive the proxy.
func NewProxy(delegate Allocator) *ProxyAllocator {
	if delegate == nil {
		panic("memalloc: proxy delegate must not be nil")
	}
	return &ProxyAllocator{delegate: delegate}
}

func (p *ProxyAllocator) Allocate(size, alignment uintptr) unsafe.Pointer {
	if size == 0 {
		panic("memalloc: size must be > 0")
	}

	before := p.delegate.UsedMemory()
	address := p.delegate.Allocate(size, alignment)
	p.used += p.delegate.UsedMemory() - before
	p.allocs++
	return address
}

func (p *ProxyAllocator) Deallocate(address unsafe.Pointer) {
	before := p.delegate.UsedMemory()
	p.delegate.Deallocate(address)
	p.used -= before - p.delegate.UsedMemory()
	p.allocs--
}

func (p *ProxyAllocator) Size() uintptr           { return p.delegate.Size() }
func (p *ProxyAllocator) Start() unsafe.Pointer   { return p.delegate.Start() }
func (p *ProxyAllocator) UsedMemory() uintptr     { return p.used }
func (p *ProxyAllocator) NumAllocations() uintptr { return p.allocs }

// Close checks the proxy's own counters are zero. It does not touch the
// delegate, which the proxy never owned.
func (p *ProxyAllocator) Close() {
	if debug && (p.used != 0 || p.allocs != 0) {
		panic("memalloc: proxy closed with live allocations outstanding")
	}
}
