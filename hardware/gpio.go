//go:build tinygo

package hardware

import (
	"machine"

	"tinygo.org/x/drivers/encoders"

	"github.com/sago35/keyinput"
)

// GPIO is a key on a single pin. Keys short the pin to ground against the
// internal pull-up, so a low pin reads On unless ActiveHigh is set.
type GPIO struct {
	Pin        machine.Pin
	ActiveHigh bool
}

func (g GPIO) Configure() error {
	if g.Pin == machine.NoPin {
		return nil
	}
	mode := machine.PinInputPullup
	if g.ActiveHigh {
		mode = machine.PinInputPulldown
	}
	g.Pin.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (g GPIO) Get() keyinput.Level {
	if g.Pin == machine.NoPin {
		return keyinput.Off
	}
	return keyinput.Level(g.Pin.Get() == g.ActiveHigh)
}

// Rotary turns a quadrature encoder into two keys, one per direction. Each
// detent holds the key down for Pulse scans so that it reads as a short
// press; two quick detents read as a double click.
type Rotary struct {
	Pulse int

	enc        *encoders.QuadratureDevice
	configured bool
	last       int
	pending    [2]int
}

// NewRotary returns an encoder on pins a and b. pulse is the number of scans
// one detent keeps its key down.
func NewRotary(a, b machine.Pin, pulse int) *Rotary {
	return &Rotary{
		Pulse: pulse,
		enc:   encoders.NewQuadratureViaInterrupt(a, b),
	}
}

func (r *Rotary) configure() error {
	if r.configured {
		return nil
	}
	if err := r.enc.Configure(encoders.QuadratureConfig{Precision: 4}); err != nil {
		return err
	}
	r.last = r.enc.Position()
	r.configured = true
	return nil
}

func (r *Rotary) level(dir int) keyinput.Level {
	if pos := r.enc.Position(); pos != r.last {
		if pos < r.last {
			r.pending[0] += (r.last - pos) * r.Pulse
		} else {
			r.pending[1] += (pos - r.last) * r.Pulse
		}
		r.last = pos
	}
	if r.pending[dir] == 0 {
		return keyinput.Off
	}
	r.pending[dir]--
	return keyinput.On
}

type rotaryKey struct {
	r   *Rotary
	dir int
}

func (k rotaryKey) Configure() error    { return k.r.configure() }
func (k rotaryKey) Get() keyinput.Level { return k.r.level(k.dir) }

// CCW returns the key that fires on counter-clockwise detents.
func (r *Rotary) CCW() keyinput.Pin { return rotaryKey{r: r, dir: 0} }

// CW returns the key that fires on clockwise detents.
func (r *Rotary) CW() keyinput.Pin { return rotaryKey{r: r, dir: 1} }
