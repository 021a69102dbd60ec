//go:build tinygo && m5stack_koebiten

package hardware

import (
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ili9341"

	"github.com/sago35/keyinput"
	"github.com/sago35/keyinput/pkg"
)

var Device Board = &m5stack{}

type m5stack struct {
	display *ili9341.Device
	keys    []*keyinput.Device
}

func (z *m5stack) Init() error {
	err := machine.SPI2.Configure(machine.SPIConfig{
		SCK:       machine.SPI0_SCK_PIN,
		SDO:       machine.SPI0_SDO_PIN,
		SDI:       machine.SPI0_SDI_PIN,
		Frequency: 40e6,
	})
	if err != nil {
		return err
	}

	// configure backlight
	backlight := machine.LCD_BL_PIN
	backlight.Configure(machine.PinConfig{Mode: machine.PinOutput})

	d := ili9341.NewSPI(
		machine.SPI2,
		machine.LCD_DC_PIN,
		machine.LCD_SS_PIN,
		machine.LCD_RST_PIN,
	)

	// configure display
	d.Configure(ili9341.Config{
		Width:            320,
		Height:           240,
		DisplayInversion: true,
	})
	backlight.High()
	d.SetRotation(ili9341.Rotation0Mirror)
	z.display = d

	buttons := []struct {
		name string
		pin  machine.Pin
	}{
		{"A", machine.BUTTON_A},
		{"B", machine.BUTTON_B},
		{"C", machine.BUTTON_C},
	}
	for _, b := range buttons {
		z.keys = append(z.keys, keyinput.NewDevice(b.name, GPIO{Pin: b.pin}))
	}

	pkg.LogInfo(pkg.ComponentBoard, "m5stack ready", "keys", len(z.keys))
	return nil
}

func (z *m5stack) Keys() []*keyinput.Device {
	return z.keys
}

func (z *m5stack) Display() drivers.Displayer {
	return z.display
}
