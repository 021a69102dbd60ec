package mheap

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sago35/keyinput/pkg"
)

// ArenaBase is the address of the first byte of every arena.
const ArenaBase Ptr = 0x2000_0000

// maxArenaSize keeps arena addresses below SystemBase.
const maxArenaSize = int(SystemBase - ArenaBase)

// header layout: next offset (4) | payload size (4)
const rawHeaderSize = 8

// Arena carves a fixed byte region into blocks. Used blocks are described by
// headers stored inline in the region and linked in address order into a
// circular list bounded by two zero-size sentinels. Free space is never
// tracked; it is the gap between one block's payload and the next header.
type Arena struct {
	buf   []byte
	align uint32
	mask  uint32
	hdr   uint32

	ready bool
	start uint32
	end   uint32
	used  int
}

// NewArena returns an arena of size bytes whose addresses and block sizes are
// multiples of align. align must be one of 1, 2, 4, 8, 16 or 32.
func NewArena(size, align int) (*Arena, error) {
	switch align {
	case 1, 2, 4, 8, 16, 32:
	default:
		return nil, fmt.Errorf("%w: alignment %d", pkg.ErrInvalidConfig, align)
	}
	a := &Arena{
		align: uint32(align),
		mask:  uint32(align - 1),
	}
	a.hdr = a.alignUp(rawHeaderSize)
	if size < int(3*a.hdr) || size > maxArenaSize {
		return nil, fmt.Errorf("%w: arena size %d", pkg.ErrInvalidConfig, size)
	}
	a.buf = make([]byte, size)
	return a, nil
}

func (a *Arena) alignUp(n uint32) uint32 {
	return (n + a.mask) &^ a.mask
}

func (a *Arena) next(off uint32) uint32 {
	return binary.LittleEndian.Uint32(a.buf[off:])
}

func (a *Arena) size(off uint32) uint32 {
	return binary.LittleEndian.Uint32(a.buf[off+4:])
}

func (a *Arena) setNext(off, next uint32) {
	binary.LittleEndian.PutUint32(a.buf[off:], next)
}

func (a *Arena) setSize(off, size uint32) {
	binary.LittleEndian.PutUint32(a.buf[off+4:], size)
}

// init lays down the two sentinels. It only runs once, on the first Alloc.
func (a *Arena) init() error {
	a.start = 0
	a.end = (uint32(len(a.buf)) - a.hdr) &^ a.mask
	if (a.end-a.start)&a.mask != 0 {
		return pkg.ErrMisaligned
	}
	a.setNext(a.start, a.end)
	a.setSize(a.start, 0)
	a.setNext(a.end, a.start)
	a.setSize(a.end, 0)
	a.ready = true
	pkg.LogDebug(pkg.ComponentHeap, "arena initialized", "size", len(a.buf), "align", a.align)
	return nil
}

// padded returns header plus payload rounded up to the alignment.
func (a *Arena) padded(n uint32) (uint32, error) {
	if n == 0 {
		return 0, pkg.ErrInvalidSize
	}
	if n > math.MaxUint32-a.hdr {
		return 0, pkg.ErrInvalidSize
	}
	total := n + a.hdr
	if total&a.mask != 0 {
		if total > math.MaxUint32-a.mask {
			return 0, pkg.ErrInvalidSize
		}
		total = a.alignUp(total)
	}
	return total, nil
}

// gap is the number of unused bytes between the payload of the block at off
// and the header that follows it.
func (a *Arena) gap(off uint32) uint32 {
	return a.next(off) - off - a.hdr - a.size(off)
}

// Alloc reserves n bytes and returns the address of the payload.
func (a *Arena) Alloc(n uint32) (Ptr, error) {
	if !a.ready {
		if err := a.init(); err != nil {
			return Nil, err
		}
	}
	total, err := a.padded(n)
	if err != nil {
		return Nil, err
	}
	if total > a.end-a.start {
		return Nil, pkg.ErrTooLarge
	}

	if a.used == 0 && total <= a.gap(a.start) {
		blk := a.start + a.hdr
		a.link(a.start, blk, total)
		return a.addr(blk) + Ptr(a.hdr), nil
	}

	var (
		found bool
		best  uint32
		prev  uint32
	)
	for cur := a.start; cur != a.end; cur = a.next(cur) {
		g := a.gap(cur)
		if g >= total && (!found || g < best) {
			found, best, prev = true, g, cur
		}
	}
	if !found {
		return Nil, pkg.ErrNoMemory
	}

	blk := a.next(prev) - total
	if blk&a.mask != 0 {
		return Nil, pkg.ErrMisaligned
	}
	a.link(prev, blk, total)
	return a.addr(blk) + Ptr(a.hdr), nil
}

func (a *Arena) link(prev, blk, total uint32) {
	a.setSize(blk, total-a.hdr)
	a.setNext(blk, a.next(prev))
	a.setNext(prev, blk)
	a.used++
}

func (a *Arena) addr(off uint32) Ptr {
	return ArenaBase + Ptr(off)
}

// header returns the header offset for a payload address.
func (a *Arena) header(p Ptr) (uint32, bool) {
	if !a.ready || !a.Contains(p) {
		return 0, false
	}
	off := uint32(p - ArenaBase)
	if off < a.start+2*a.hdr || off >= a.end || off&a.mask != 0 {
		return 0, false
	}
	return off - a.hdr, true
}

// Free releases the block at p. The predecessor is found by walking the list
// from the start sentinel.
func (a *Arena) Free(p Ptr) error {
	blk, ok := a.header(p)
	if !ok {
		return pkg.ErrUnknownPointer
	}
	for cur := a.start; ; cur = a.next(cur) {
		if a.next(cur) == blk {
			a.setNext(cur, a.next(blk))
			a.used--
			return nil
		}
		if cur == a.end {
			return pkg.ErrUnknownPointer
		}
	}
}

// Bytes returns the payload of the block at p, or nil when p is not a live
// arena block.
func (a *Arena) Bytes(p Ptr) []byte {
	blk, ok := a.header(p)
	if !ok {
		return nil
	}
	off := blk + a.hdr
	n := a.size(blk)
	if n > a.end-off {
		return nil
	}
	return a.buf[off : off+n : off+n]
}

// Contains reports whether p lies inside the arena region.
func (a *Arena) Contains(p Ptr) bool {
	return p >= ArenaBase && p < ArenaBase+Ptr(len(a.buf))
}

// Len returns the number of live blocks.
func (a *Arena) Len() int { return a.used }

// Align returns the configured alignment.
func (a *Arena) Align() int { return int(a.align) }

// HeaderSize returns the padded size of a block header.
func (a *Arena) HeaderSize() int { return int(a.hdr) }

// Capacity is the number of bytes between the two sentinels.
func (a *Arena) Capacity() int {
	if !a.ready {
		return int(((uint32(len(a.buf)) - a.hdr) &^ a.mask) - a.hdr)
	}
	return int(a.end - a.start - a.hdr)
}

// LargestGap returns the largest single free range, header included. This is
// the upper bound on the next allocation's padded size.
func (a *Arena) LargestGap() int {
	if !a.ready {
		return a.Capacity()
	}
	var largest uint32
	for cur := a.start; cur != a.end; cur = a.next(cur) {
		if g := a.gap(cur); g > largest {
			largest = g
		}
	}
	return int(largest)
}

// Block describes one live allocation.
type Block struct {
	Addr Ptr
	Size int
}

// Blocks lists live allocations in address order.
func (a *Arena) Blocks() []Block {
	if !a.ready {
		return nil
	}
	var out []Block
	for cur := a.next(a.start); cur != a.end; cur = a.next(cur) {
		out = append(out, Block{Addr: a.addr(cur) + Ptr(a.hdr), Size: int(a.size(cur))})
	}
	return out
}
