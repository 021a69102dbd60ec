//go:build tinygo

package hardware

import (
	"tinygo.org/x/drivers"

	"github.com/sago35/keyinput"
)

// Board is a target with keys and a display. The board selected by build
// tags is available as Device.
type Board interface {
	Init() error
	Keys() []*keyinput.Device
	Display() drivers.Displayer
}

// detentPulse keeps a rotary key down just past the press threshold of the
// default configuration.
const detentPulse = 5
