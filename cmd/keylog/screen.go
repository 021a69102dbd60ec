//go:build tinygo

package main

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"

	"github.com/sago35/keyinput"
)

const historyLines = 6

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)

// screen shows one box per key, filled while the key is down, and the most
// recent gestures below it.
type screen struct {
	d       drivers.Displayer
	history []string
	dirty   bool
	states  []keyinput.State
}

func newScreen(d drivers.Displayer) *screen {
	return &screen{d: d, dirty: true}
}

func (s *screen) push(name string, v keyinput.Value) {
	s.add(fmt.Sprintf("%s %s", name, v))
}

func (s *screen) analog(name string, magnitude int) {
	s.add(fmt.Sprintf("%s level %d", name, magnitude))
}

func (s *screen) add(line string) {
	s.history = append(s.history, line)
	if len(s.history) > historyLines {
		s.history = s.history[len(s.history)-historyLines:]
	}
	s.dirty = true
}

func (s *screen) draw(drv *keyinput.Driver) {
	devs := drv.Devices()
	if len(s.states) != len(devs) {
		s.states = make([]keyinput.State, len(devs))
		s.dirty = true
	}
	for i, d := range devs {
		if s.states[i] != d.State() {
			s.states[i] = d.State()
			s.dirty = true
		}
	}
	if !s.dirty {
		return
	}
	s.dirty = false

	w, h := s.d.Size()
	tinydraw.FilledRectangle(s.d, 0, 0, w, h, black)

	const box = 10
	for i, st := range s.states {
		x := int16(i) * (box + 2)
		if st == keyinput.Unpressed {
			tinydraw.Rectangle(s.d, x, 0, box, box, white)
		} else {
			tinydraw.FilledRectangle(s.d, x, 0, box, box, white)
		}
	}

	for i, line := range s.history {
		tinyfont.WriteLine(s.d, &tinyfont.TomThumb, 0, int16(box+8+i*7), line, white)
	}
	s.d.Display()
}
