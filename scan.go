package keyinput

import (
	"github.com/sago35/keyinput/pkg"
)

// Scan samples every registered key once and advances its recognizer. It
// must be called every Config.ScanPeriod.
func (drv *Driver) Scan() {
	drv.ticks++
	for d := drv.head; d != nil; d = d.next {
		drv.step(d, d.Pin.Get())
	}
}

func (drv *Driver) step(d *Device, current Level) {
	cfg := &drv.cfg
	d.clock = d.clock.Add(cfg.ScanPeriod)
	if current == On {
		d.holdTick += cfg.ScanPeriod
	}
	prev := d.state

	switch d.state {
	case Unpressed:
		if current == On {
			d.state = Debouncing
		} else {
			d.reset()
		}
	case Debouncing:
		if d.shortPressCount == 0 {
			if current == Off {
				// bounce
				d.reset()
			} else if d.holdTick >= cfg.shortThreshold() {
				d.state = ShortConfirmed
			}
		} else {
			if current == Off {
				// second tap released before it counted as a press
				d.state = ShortConfirmed
				drv.record(d, Pressed)
			} else if d.holdTick >= cfg.shortThreshold() {
				d.state = DoubleConfirmed
				d.holdTick = 0
				d.shortPressCount = 0
				drv.record(d, DoubleClick)
			}
		}
	case ShortConfirmed:
		if current == Off {
			d.state = AwaitingSecondPress
			d.holdTick = 0
			d.timeoutTick = 0
		} else if d.holdTick >= cfg.longThreshold() {
			d.state = LongConfirmed
		}
	case AwaitingSecondPress:
		if current == Off {
			d.timeoutTick += cfg.ScanPeriod
			if d.timeoutTick >= cfg.DoubleClickWindow {
				d.reset()
				drv.record(d, Pressed)
			}
		} else {
			d.state = Debouncing
			d.shortPressCount = 1
		}
	case DoubleConfirmed:
		if current == Off {
			d.reset()
		}
	case LongConfirmed:
		switch d.Mode {
		case Continuous:
			if current == Off {
				d.reset()
			} else if d.limiter.AllowN(d.clock, 1) {
				d.analog++
				if d.OnAnalog != nil {
					d.OnAnalog(d, d.analog)
				}
			}
		default:
			if current == Off {
				d.reset()
				drv.record(d, LongPressed)
			}
		}
	}

	if d.state != prev {
		pkg.LogDebug(pkg.ComponentScan, "transition", "key", d.Name, "from", prev, "to", d.state)
	}
}
