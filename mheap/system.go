package mheap

import (
	"math"

	"golang.org/x/sync/semaphore"

	"github.com/sago35/keyinput/pkg"
)

// SystemBase is the lowest address handed out by System. Arena addresses are
// always below it, so ownership can be decided by a range test.
const SystemBase Ptr = 0x6000_0000

// System is the general-purpose allocator: blocks come from the Go heap and
// are addressed through a handle table. An optional byte budget makes it fail
// the way a small device heap does once it runs dry.
type System struct {
	budget *semaphore.Weighted
	limit  int64
	inUse  int64
	align  uint32

	cursor Ptr
	blocks map[Ptr][]byte
}

// NewSystem returns a System allocator. limit caps the bytes outstanding at
// any time; zero means unlimited.
func NewSystem(limit int64, align int) *System {
	if align <= 0 {
		align = 1
	}
	s := &System{
		limit:  limit,
		align:  uint32(align),
		cursor: SystemBase,
		blocks: make(map[Ptr][]byte),
	}
	if limit > 0 {
		s.budget = semaphore.NewWeighted(limit)
	}
	return s
}

// Alloc reserves n bytes.
func (s *System) Alloc(n uint32) (Ptr, error) {
	if n == 0 {
		return Nil, pkg.ErrInvalidSize
	}
	if s.budget != nil && !s.budget.TryAcquire(int64(n)) {
		return Nil, pkg.ErrNoMemory
	}
	p := s.nextAddr(n)
	s.blocks[p] = make([]byte, n)
	s.inUse += int64(n)
	return p, nil
}

// nextAddr picks an aligned address at or above SystemBase that is not in use.
func (s *System) nextAddr(n uint32) Ptr {
	step := Ptr((uint64(n) + uint64(s.align) - 1) / uint64(s.align) * uint64(s.align))
	for {
		p := s.cursor
		if uint64(s.cursor)+uint64(step) > math.MaxUint32 {
			s.cursor = SystemBase
		} else {
			s.cursor += step
		}
		if _, used := s.blocks[p]; !used {
			return p
		}
	}
}

// Free releases the block at p.
func (s *System) Free(p Ptr) error {
	b, ok := s.blocks[p]
	if !ok {
		return pkg.ErrUnknownPointer
	}
	delete(s.blocks, p)
	s.inUse -= int64(len(b))
	if s.budget != nil {
		s.budget.Release(int64(len(b)))
	}
	return nil
}

// Bytes returns the memory behind p, or nil if p is not live.
func (s *System) Bytes(p Ptr) []byte {
	return s.blocks[p]
}

// Len returns the number of live blocks.
func (s *System) Len() int { return len(s.blocks) }

// InUse returns the bytes currently allocated.
func (s *System) InUse() int64 { return s.inUse }

// Limit returns the configured budget, zero when unlimited.
func (s *System) Limit() int64 { return s.limit }
