package mheap

import (
	"errors"

	"github.com/sago35/keyinput/pkg"
)

// Ptr is an address returned by an allocator. Nil is never a valid block.
type Ptr uint32

// Nil is the zero address.
const Nil Ptr = 0

// Allocator hands out and takes back blocks of memory.
type Allocator interface {
	Alloc(n uint32) (Ptr, error)
	Free(p Ptr) error
	Bytes(p Ptr) []byte
}

// Heap tries the general-purpose allocator first and falls back to the arena.
// Release goes to whichever of the two owns the address.
type Heap struct {
	sys   Allocator
	arena *Arena

	fallbacks uint64
	failures  uint64
}

// New returns a Heap over sys and arena. sys may be nil, in which case every
// request is served by the arena.
func New(sys Allocator, arena *Arena) *Heap {
	return &Heap{sys: sys, arena: arena}
}

// Alloc reserves n bytes.
func (h *Heap) Alloc(n uint32) (Ptr, error) {
	var sysErr error
	if h.sys != nil {
		p, err := h.sys.Alloc(n)
		if err == nil {
			return p, nil
		}
		sysErr = err
	}
	p, err := h.arena.Alloc(n)
	if err != nil {
		h.failures++
		pkg.LogDebug(pkg.ComponentHeap, "allocation failed", "size", n, "arena", err, "system", sysErr)
		if sysErr != nil {
			return Nil, errors.Join(err, sysErr)
		}
		return Nil, err
	}
	if h.sys != nil {
		h.fallbacks++
	}
	return p, nil
}

// Free releases p. Freeing Nil is a no-op.
func (h *Heap) Free(p Ptr) error {
	if p == Nil {
		return nil
	}
	if h.arena.Contains(p) {
		return h.arena.Free(p)
	}
	if h.sys == nil {
		return pkg.ErrUnknownPointer
	}
	return h.sys.Free(p)
}

// Bytes returns the memory behind p.
func (h *Heap) Bytes(p Ptr) []byte {
	if h.arena.Contains(p) {
		return h.arena.Bytes(p)
	}
	if h.sys == nil {
		return nil
	}
	return h.sys.Bytes(p)
}

// Arena returns the fallback arena.
func (h *Heap) Arena() *Arena { return h.arena }

// Stats reports how often the arena had to step in and how often both
// allocators failed.
func (h *Heap) Stats() (fallbacks, failures uint64) {
	return h.fallbacks, h.failures
}
