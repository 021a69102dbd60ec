package keyinput

// Level is the raw electrical reading of a key, already corrected for the
// pin's polarity. It is deliberately not related to State.
type Level bool

const (
	Off Level = false
	On  Level = true
)

func (l Level) String() string {
	if l {
		return "on"
	}
	return "off"
}

// Pin is the IO binding of one key. Configure prepares the hardware once at
// registration; Get samples the current level and must not block.
type Pin interface {
	Configure() error
	Get() Level
}

// LevelFunc adapts a plain function to Pin. Configure is a no-op.
type LevelFunc func() Level

func (f LevelFunc) Configure() error { return nil }
func (f LevelFunc) Get() Level       { return f() }

// State is the gesture recognizer state of a key.
type State uint8

const (
	Unpressed State = iota
	Debouncing
	ShortConfirmed
	AwaitingSecondPress
	DoubleConfirmed
	LongConfirmed
)

func (s State) String() string {
	switch s {
	case Unpressed:
		return "unpressed"
	case Debouncing:
		return "debouncing"
	case ShortConfirmed:
		return "short-confirmed"
	case AwaitingSecondPress:
		return "awaiting-second-press"
	case DoubleConfirmed:
		return "double-confirmed"
	case LongConfirmed:
		return "long-confirmed"
	default:
		return "unknown"
	}
}

// Value is a recognized gesture.
type Value uint8

const (
	None Value = iota
	Pressed
	DoubleClick
	LongPressed
)

func (v Value) String() string {
	switch v {
	case Pressed:
		return "PRESSED"
	case DoubleClick:
		return "DOUBLECLICK"
	case LongPressed:
		return "LONGPRESSED"
	default:
		return "NONE"
	}
}

// Mode selects what a long press does.
type Mode uint8

const (
	// Discrete keys emit LongPressed when released after a long press.
	Discrete Mode = iota
	// Continuous keys emit nothing for a long press; instead an analog
	// magnitude grows while the key stays down.
	Continuous
)

func (m Mode) String() string {
	if m == Continuous {
		return "continuous"
	}
	return "discrete"
}

// Handler receives dispatched gestures.
type Handler func(Value)

// Event is a queued gesture. Seq orders events across all keys.
type Event struct {
	Value Value
	Seq   uint64
}
