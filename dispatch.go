package keyinput

import (
	"github.com/sago35/keyinput/mheap"
	"github.com/sago35/keyinput/pkg"
)

// DispatchStatic hands the oldest event of d to its handler and releases it.
// It reports whether an event was delivered; a key without a handler or
// without events is left untouched.
func (drv *Driver) DispatchStatic(d *Device) bool {
	if d == nil || d.handler == nil || d.events == mheap.Nil {
		return false
	}
	head := d.events
	ev := drv.load(head)
	d.handler(ev.value)
	if d.events != head {
		// the handler unregistered the key and released its queue
		return true
	}
	if err := drv.pop(d); err != nil {
		pkg.LogError(pkg.ComponentDispatch, "release event", "key", d.Name, "seq", ev.seq, "err", err)
	}
	pkg.LogDebug(pkg.ComponentDispatch, "delivered", "key", d.Name, "event", ev.value, "seq", ev.seq)
	return true
}

// DispatchDynamic delivers the oldest event across all keys. Only queue heads
// are compared; keys with an empty queue or no handler are skipped.
func (drv *Driver) DispatchDynamic() bool {
	var (
		pick   *Device
		oldest uint64
	)
	for d := drv.head; d != nil; d = d.next {
		if d.events == mheap.Nil || d.handler == nil {
			continue
		}
		if seq := drv.load(d.events).seq; pick == nil || seq < oldest {
			pick, oldest = d, seq
		}
	}
	if pick == nil {
		return false
	}
	return drv.DispatchStatic(pick)
}
