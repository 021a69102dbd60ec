package keyinput

import (
	"encoding/binary"

	"github.com/sago35/keyinput/mheap"
	"github.com/sago35/keyinput/pkg"
)

// event node layout: seq (8) | next (4) | value (1) | pad (3)
const (
	nodeSeq   = 0
	nodeNext  = 8
	nodeValue = 12
	nodeSize  = 16
)

type node struct {
	seq   uint64
	next  mheap.Ptr
	value Value
}

func (drv *Driver) load(p mheap.Ptr) node {
	b := drv.heap.Bytes(p)
	return node{
		seq:   binary.LittleEndian.Uint64(b[nodeSeq:]),
		next:  mheap.Ptr(binary.LittleEndian.Uint32(b[nodeNext:])),
		value: Value(b[nodeValue]),
	}
}

func (drv *Driver) store(p mheap.Ptr, n node) {
	b := drv.heap.Bytes(p)
	binary.LittleEndian.PutUint64(b[nodeSeq:], n.seq)
	binary.LittleEndian.PutUint32(b[nodeNext:], uint32(n.next))
	b[nodeValue] = byte(n.value)
}

func (drv *Driver) setNext(p, next mheap.Ptr) {
	binary.LittleEndian.PutUint32(drv.heap.Bytes(p)[nodeNext:], uint32(next))
}

// record appends v to the queue of d. When memory is exhausted the event is
// dropped and counted.
func (drv *Driver) record(d *Device, v Value) {
	p, err := drv.heap.Alloc(nodeSize)
	if err != nil {
		drv.dropped++
		pkg.LogWarn(pkg.ComponentScan, "event dropped", "key", d.Name, "event", v, "err", err)
		return
	}
	drv.seq++
	drv.store(p, node{seq: drv.seq, next: mheap.Nil, value: v})

	if d.events == mheap.Nil {
		d.events = p
	} else {
		tail := d.events
		for {
			next := drv.load(tail).next
			if next == mheap.Nil {
				break
			}
			tail = next
		}
		drv.setNext(tail, p)
	}
	pkg.LogDebug(pkg.ComponentScan, "event", "key", d.Name, "event", v, "seq", drv.seq)
}

// pop unlinks the head of the queue of d and releases it.
func (drv *Driver) pop(d *Device) error {
	head := d.events
	d.events = drv.load(head).next
	return drv.heap.Free(head)
}

// Pending returns the number of events queued for d.
func (drv *Driver) Pending(d *Device) int {
	n := 0
	for p := d.events; p != mheap.Nil; p = drv.load(p).next {
		n++
	}
	return n
}

// Events returns the events queued for d, oldest first, without removing them.
func (drv *Driver) Events(d *Device) []Event {
	var out []Event
	for p := d.events; p != mheap.Nil; {
		n := drv.load(p)
		out = append(out, Event{Value: n.value, Seq: n.seq})
		p = n.next
	}
	return out
}
