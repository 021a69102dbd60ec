package keyinput

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/sago35/keyinput/mheap"
	"github.com/sago35/keyinput/pkg"
)

// Driver owns the registered keys, the event memory and the sequence counter
// that orders events across keys.
//
// A Driver is not safe for concurrent use. When Scan runs from a timer
// interrupt and dispatch from the main loop, the caller must mask the
// interrupt around every call.
type Driver struct {
	cfg  Config
	heap *mheap.Heap

	head *Device
	n    int

	seq     uint64
	dropped uint64
	ticks   uint64
}

// New returns a Driver whose events live in a heap built from cfg.
func New(cfg Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	arena, err := mheap.NewArena(cfg.ArenaSize, cfg.Alignment)
	if err != nil {
		return nil, err
	}
	var sys mheap.Allocator
	if cfg.SystemLimit >= 0 {
		sys = mheap.NewSystem(cfg.SystemLimit, cfg.Alignment)
	}
	return NewWithHeap(cfg, mheap.New(sys, arena))
}

// NewWithHeap returns a Driver that stores events in h.
func NewWithHeap(cfg Config, h *mheap.Heap) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("%w: nil heap", pkg.ErrInvalidConfig)
	}
	return &Driver{cfg: cfg, heap: h}, nil
}

// Register appends d to the registry, binds h and configures the pin.
func (drv *Driver) Register(d *Device, h Handler) error {
	if d == nil {
		return pkg.ErrNilDevice
	}
	if d.Pin == nil {
		return fmt.Errorf("%w: %s has no pin", pkg.ErrNilDevice, d.Name)
	}
	if d.registered {
		return fmt.Errorf("%w: %s", pkg.ErrAlreadyRegistered, d.Name)
	}
	if err := d.Pin.Configure(); err != nil {
		return fmt.Errorf("configure %s: %w", d.Name, err)
	}

	d.reset()
	d.handler = h
	d.next = nil
	d.events = mheap.Nil
	d.clock = time.Unix(0, 0)
	d.limiter = rate.NewLimiter(rate.Every(drv.cfg.AnalogStep), 1)
	d.registered = true

	if drv.head == nil {
		drv.head = d
	} else {
		tail := drv.head
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = d
	}
	drv.n++
	pkg.LogInfo(pkg.ComponentRegistry, "registered", "key", d.Name, "mode", d.Mode)
	return nil
}

// Unregister releases every event still queued for d and removes it from the
// registry. A nil device is ignored.
func (drv *Driver) Unregister(d *Device) error {
	if d == nil {
		return nil
	}
	var errs []error
	for d.events != mheap.Nil {
		if err := drv.pop(d); err != nil {
			errs = append(errs, err)
			break
		}
	}
	if d.registered {
		drv.unlink(d)
		d.registered = false
		pkg.LogInfo(pkg.ComponentRegistry, "unregistered", "key", d.Name)
	}
	d.handler = nil
	d.limiter = nil
	d.reset()
	return errors.Join(errs...)
}

func (drv *Driver) unlink(d *Device) {
	if drv.head == d {
		drv.head = d.next
	} else {
		for prev := drv.head; prev != nil; prev = prev.next {
			if prev.next == d {
				prev.next = d.next
				break
			}
		}
	}
	d.next = nil
	drv.n--
}

// Devices returns the registered keys in registration order.
func (drv *Driver) Devices() []*Device {
	out := make([]*Device, 0, drv.n)
	for d := drv.head; d != nil; d = d.next {
		out = append(out, d)
	}
	return out
}

// Len returns the number of registered keys.
func (drv *Driver) Len() int { return drv.n }

// Config returns the configuration the driver was built with.
func (drv *Driver) Config() Config { return drv.cfg }

// Heap returns the allocator backing the event queues.
func (drv *Driver) Heap() *mheap.Heap { return drv.heap }

// Dropped returns the number of events lost because no memory was left.
func (drv *Driver) Dropped() uint64 { return drv.dropped }

// Ticks returns the number of Scan calls so far.
func (drv *Driver) Ticks() uint64 { return drv.ticks }

// Ops is the driver's operation table, for callers that want to bind the
// five operations without holding the Driver itself.
type Ops struct {
	Register        func(*Device, Handler) error
	Scan            func()
	DispatchStatic  func(*Device) bool
	DispatchDynamic func() bool
	Unregister      func(*Device) error
}

// Ops returns the operation table bound to drv.
func (drv *Driver) Ops() Ops {
	return Ops{
		Register:        drv.Register,
		Scan:            drv.Scan,
		DispatchStatic:  drv.DispatchStatic,
		DispatchDynamic: drv.DispatchDynamic,
		Unregister:      drv.Unregister,
	}
}
