// Package mheap provides deterministic memory for event records on targets
// where the general-purpose heap is small or missing.
//
// An [Arena] manages one fixed byte region as an address-ordered circular list
// of block headers bounded by two sentinels. Allocation picks the smallest gap
// between neighbouring blocks that still fits (best fit) and places the new
// block at the top of that gap. Release unlinks the block; the space it held
// becomes part of the gap again without any coalescing step. Because free
// space is only ever the gap between two used blocks, the largest request that
// can succeed is bounded by the largest single gap, not by the total free
// bytes.
//
// A [Heap] puts the arena behind a general-purpose [Allocator] such as
// [System]: requests go to the general allocator first and fall back to the
// arena. Releases are routed by address range, so arena and system addresses
// never overlap.
package mheap
