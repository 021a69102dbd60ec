package main

import (
	"fmt"
	"io"

	"github.com/sago35/keyinput"
	"github.com/sago35/keyinput/pkg"
	"github.com/sago35/keyinput/simio"
)

// result summarises one replay.
type result struct {
	ticks   int
	events  int
	dropped uint64
}

// simulate replays s through a fresh driver, scanning once per sample plus
// tail idle periods and dispatching everything after each scan. Every
// delivered gesture is written to out.
func simulate(s *script, cfg keyinput.Config, tail int, analog bool, out io.Writer) (result, error) {
	drv, err := keyinput.New(cfg)
	if err != nil {
		return result{}, err
	}

	var (
		res  result
		tick int
	)
	for _, k := range s.keys {
		name := k.name
		d := keyinput.NewDevice(name, simio.NewPin(k.levels...))
		d.Mode = k.mode
		if analog {
			d.OnAnalog = func(_ *keyinput.Device, magnitude int) {
				fmt.Fprintf(out, "tick=%d key=%s analog=%d\n", tick, name, magnitude)
			}
		}
		err := drv.Register(d, func(v keyinput.Value) {
			res.events++
			fmt.Fprintf(out, "tick=%d key=%s event=%s\n", tick, name, v)
		})
		if err != nil {
			return result{}, err
		}
	}

	total := s.ticks() + tail
	for tick = 1; tick <= total; tick++ {
		drv.Scan()
		for drv.DispatchDynamic() {
		}
	}

	res.ticks = total
	res.dropped = drv.Dropped()
	if res.dropped > 0 {
		pkg.LogWarn(pkg.ComponentSim, "events dropped", "count", res.dropped)
	}
	return res, nil
}
