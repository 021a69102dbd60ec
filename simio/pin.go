package simio

import (
	"fmt"

	"github.com/eapache/queue"

	"github.com/sago35/keyinput"
)

// Pin replays a script of levels, one per Get. Once the script runs out it
// reports Idle.
type Pin struct {
	// Idle is returned when no scripted level is left.
	Idle keyinput.Level

	// Err, when set, is returned by Configure.
	Err error

	levels     *queue.Queue
	configured int
	reads      int
}

// NewPin returns a pin that will report levels in order.
func NewPin(levels ...keyinput.Level) *Pin {
	p := &Pin{levels: queue.New()}
	p.Push(levels...)
	return p
}

// Push appends levels to the script.
func (p *Pin) Push(levels ...keyinput.Level) {
	for _, l := range levels {
		p.levels.Add(l)
	}
}

// Hold appends n samples of level l.
func (p *Pin) Hold(l keyinput.Level, n int) {
	for i := 0; i < n; i++ {
		p.levels.Add(l)
	}
}

func (p *Pin) Configure() error {
	p.configured++
	return p.Err
}

func (p *Pin) Get() keyinput.Level {
	p.reads++
	if p.levels.Length() == 0 {
		return p.Idle
	}
	return p.levels.Remove().(keyinput.Level)
}

// Len returns the number of scripted samples not yet read.
func (p *Pin) Len() int { return p.levels.Length() }

// Reads returns how many times Get was called.
func (p *Pin) Reads() int { return p.reads }

// Configured returns how many times Configure was called.
func (p *Pin) Configured() int { return p.configured }

// Run returns n samples of level l.
func Run(l keyinput.Level, n int) []keyinput.Level {
	out := make([]keyinput.Level, n)
	for i := range out {
		out[i] = l
	}
	return out
}

// ParseLevels reads a level string: '1', 'x' and 'X' are On; '0', '.', '-'
// and '_' are Off.
func ParseLevels(s string) ([]keyinput.Level, error) {
	out := make([]keyinput.Level, 0, len(s))
	for i, c := range s {
		switch c {
		case '1', 'x', 'X':
			out = append(out, keyinput.On)
		case '0', '.', '-', '_':
			out = append(out, keyinput.Off)
		default:
			return nil, fmt.Errorf("simio: invalid level %q at %d", c, i)
		}
	}
	return out, nil
}
