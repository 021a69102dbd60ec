//go:build tinygo

package main

import (
	"log"
	"time"

	"github.com/sago35/keyinput"
	"github.com/sago35/keyinput/hardware"
)

func main() {
	board := hardware.Device
	if err := board.Init(); err != nil {
		log.Fatal(err)
	}

	drv, err := keyinput.New(keyinput.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}

	scr := newScreen(board.Display())
	for _, k := range board.Keys() {
		name := k.Name
		if err := drv.Register(k, func(v keyinput.Value) { scr.push(name, v) }); err != nil {
			log.Fatal(err)
		}
		if k.Mode == keyinput.Continuous {
			k.OnAnalog = func(d *keyinput.Device, magnitude int) { scr.analog(d.Name, magnitude) }
		}
	}

	ticker := time.NewTicker(drv.Config().ScanPeriod)
	defer ticker.Stop()
	for range ticker.C {
		drv.Scan()
		for drv.DispatchDynamic() {
		}
		scr.draw(drv)
	}
}
