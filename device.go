package keyinput

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/sago35/keyinput/mheap"
)

// Device is one key. Devices are usually declared statically and handed to
// Driver.Register once.
type Device struct {
	Name string
	Pin  Pin
	Mode Mode

	// OnAnalog is called each time the analog magnitude of a continuous key
	// grows.
	OnAnalog func(d *Device, magnitude int)

	state           State
	holdTick        time.Duration
	timeoutTick     time.Duration
	shortPressCount uint8

	handler    Handler
	next       *Device
	events     mheap.Ptr
	registered bool

	analog  int
	limiter *rate.Limiter
	clock   time.Time
}

// NewDevice returns a discrete key bound to pin.
func NewDevice(name string, pin Pin) *Device {
	return &Device{Name: name, Pin: pin}
}

func (d *Device) State() State               { return d.state }
func (d *Device) HoldTick() time.Duration    { return d.holdTick }
func (d *Device) TimeoutTick() time.Duration { return d.timeoutTick }
func (d *Device) Registered() bool           { return d.registered }

// Analog returns the magnitude accumulated by long presses on a continuous
// key.
func (d *Device) Analog() int { return d.analog }

// ResetAnalog sets the analog magnitude back to zero.
func (d *Device) ResetAnalog() { d.analog = 0 }

func (d *Device) reset() {
	d.state = Unpressed
	d.holdTick = 0
	d.timeoutTick = 0
	d.shortPressCount = 0
}
