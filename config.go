package keyinput

import (
	"fmt"
	"time"

	"github.com/sago35/keyinput/pkg"
)

// Config holds the timing of the recognizer and the sizing of the event
// memory.
type Config struct {
	// ScanPeriod is the interval at which Scan is called.
	ScanPeriod time.Duration

	// DebounceSlices and ShortPressSlices together give the number of scan
	// periods a key must be held before a press is confirmed.
	DebounceSlices   int
	ShortPressSlices int

	// LongPressSlices is the number of scan periods a key must be held for a
	// long press.
	LongPressSlices int

	// DoubleClickWindow is how long a released key waits for a second press.
	DoubleClickWindow time.Duration

	// AnalogStep is the hold time per unit of analog magnitude on
	// continuous keys.
	AnalogStep time.Duration

	// ArenaSize and Alignment size the fallback arena.
	ArenaSize int
	Alignment int

	// SystemLimit caps bytes taken from the general-purpose allocator.
	// Zero means unlimited, negative disables it so the arena serves every
	// event.
	SystemLimit int64
}

// DefaultConfig returns a 10ms scan with a 40ms press threshold, a 250ms
// long press and a 200ms double-click window, backed by a 10 KiB arena.
func DefaultConfig() Config {
	return Config{
		ScanPeriod:        10 * time.Millisecond,
		DebounceSlices:    1,
		ShortPressSlices:  3,
		LongPressSlices:   25,
		DoubleClickWindow: 200 * time.Millisecond,
		AnalogStep:        20 * time.Millisecond,
		ArenaSize:         10 * 1024,
		Alignment:         4,
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.ScanPeriod <= 0:
		return fmt.Errorf("%w: scan period %v", pkg.ErrInvalidConfig, c.ScanPeriod)
	case c.DebounceSlices < 0 || c.ShortPressSlices < 0:
		return fmt.Errorf("%w: negative press slices", pkg.ErrInvalidConfig)
	case c.DebounceSlices+c.ShortPressSlices == 0:
		return fmt.Errorf("%w: press threshold is zero", pkg.ErrInvalidConfig)
	case c.LongPressSlices <= c.DebounceSlices+c.ShortPressSlices:
		return fmt.Errorf("%w: long press %d must exceed short press %d",
			pkg.ErrInvalidConfig, c.LongPressSlices, c.DebounceSlices+c.ShortPressSlices)
	case c.DoubleClickWindow <= 0:
		return fmt.Errorf("%w: double click window %v", pkg.ErrInvalidConfig, c.DoubleClickWindow)
	case c.AnalogStep <= 0:
		return fmt.Errorf("%w: analog step %v", pkg.ErrInvalidConfig, c.AnalogStep)
	}
	return nil
}

func (c Config) shortThreshold() time.Duration {
	return time.Duration(c.DebounceSlices+c.ShortPressSlices) * c.ScanPeriod
}

func (c Config) longThreshold() time.Duration {
	return time.Duration(c.LongPressSlices) * c.ScanPeriod
}
