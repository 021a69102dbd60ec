//go:build tinygo && !m5stack_koebiten

package hardware

import (
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ssd1306"

	"github.com/sago35/keyinput"
	"github.com/sago35/keyinput/pkg"
)

var Device Board = &rp2040{}

type rp2040 struct {
	display *ssd1306.Device
	keys    []*keyinput.Device
}

func (z *rp2040) Init() error {
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{
		Frequency: 2_800_000,
		// rp2040
		SDA: machine.GPIO0,
		SCL: machine.GPIO1,
		// xiao-samd21 or xiao-rp2040
		//SDA: machine.D4,
		//SCL: machine.D5,
	})
	if err != nil {
		return err
	}

	d := ssd1306.NewI2C(i2c)
	d.Configure(ssd1306.Config{
		Address: 0x3C,
		Width:   128,
		Height:  64,
	})
	d.SetRotation(drivers.Rotation180)
	d.ClearDisplay()
	z.display = &d

	gpioKeys := []struct {
		name string
		pin  machine.Pin
	}{
		{"up", machine.GPIO4},
		{"left", machine.GPIO5},
		{"down", machine.GPIO6},
		{"right", machine.GPIO7},
		{"A", machine.GPIO27},
		{"B", machine.GPIO28},
	}
	for _, k := range gpioKeys {
		z.keys = append(z.keys, keyinput.NewDevice(k.name, GPIO{Pin: k.pin}))
	}

	rot := NewRotary(machine.GPIO2, machine.GPIO3, detentPulse)
	z.keys = append(z.keys,
		keyinput.NewDevice("ccw", rot.CCW()),
		keyinput.NewDevice("cw", rot.CW()),
	)

	// B doubles as a volume style control
	z.keys[5].Mode = keyinput.Continuous

	pkg.LogInfo(pkg.ComponentBoard, "rp2040 ready", "keys", len(z.keys))
	return nil
}

func (z *rp2040) Keys() []*keyinput.Device {
	return z.keys
}

func (z *rp2040) Display() drivers.Displayer {
	return z.display
}
