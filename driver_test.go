package keyinput_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sago35/keyinput"
	"github.com/sago35/keyinput/mheap"
	"github.com/sago35/keyinput/pkg"
	"github.com/sago35/keyinput/simio"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*keyinput.Config)
	}{
		{"zero period", func(c *keyinput.Config) { c.ScanPeriod = 0 }},
		{"negative debounce", func(c *keyinput.Config) { c.DebounceSlices = -1 }},
		{"zero threshold", func(c *keyinput.Config) { c.DebounceSlices, c.ShortPressSlices = 0, 0 }},
		{"long not after short", func(c *keyinput.Config) { c.LongPressSlices = 4 }},
		{"zero window", func(c *keyinput.Config) { c.DoubleClickWindow = 0 }},
		{"zero analog step", func(c *keyinput.Config) { c.AnalogStep = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := keyinput.DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), pkg.ErrInvalidConfig)
			_, err := keyinput.New(cfg)
			assert.ErrorIs(t, err, pkg.ErrInvalidConfig)
		})
	}

	require.NoError(t, keyinput.DefaultConfig().Validate())

	cfg := keyinput.DefaultConfig()
	cfg.Alignment = 3
	_, err := keyinput.New(cfg)
	assert.ErrorIs(t, err, pkg.ErrInvalidConfig)

	_, err = keyinput.NewWithHeap(keyinput.DefaultConfig(), nil)
	assert.ErrorIs(t, err, pkg.ErrInvalidConfig)
}

func TestRegister(t *testing.T) {
	drv := newDriver(t)

	assert.ErrorIs(t, drv.Register(nil, nil), pkg.ErrNilDevice)
	assert.ErrorIs(t, drv.Register(keyinput.NewDevice("nopin", nil), nil), pkg.ErrNilDevice)

	broken := simio.NewPin()
	broken.Err = errors.New("pin busy")
	err := drv.Register(keyinput.NewDevice("broken", broken), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, broken.Err)
	assert.Equal(t, 0, drv.Len())

	a, pinA, _ := key(t, drv, "A", keyinput.Discrete)
	b, _, _ := key(t, drv, "B", keyinput.Discrete)
	c, _, _ := key(t, drv, "C", keyinput.Continuous)

	assert.Equal(t, 1, pinA.Configured())
	assert.Equal(t, []*keyinput.Device{a, b, c}, drv.Devices())
	assert.True(t, a.Registered())
	assert.Equal(t, keyinput.Unpressed, a.State())

	assert.ErrorIs(t, drv.Register(a, nil), pkg.ErrAlreadyRegistered)
	assert.Equal(t, 3, drv.Len())
}

func TestScanReadsEveryKey(t *testing.T) {
	drv := newDriver(t)
	_, pinA, _ := key(t, drv, "A", keyinput.Discrete)
	_, pinB, _ := key(t, drv, "B", keyinput.Discrete)

	scan(drv, 7)
	assert.Equal(t, 7, pinA.Reads())
	assert.Equal(t, 7, pinB.Reads())
	assert.EqualValues(t, 7, drv.Ticks())
}

func TestDispatchStatic(t *testing.T) {
	drv := newDriver(t)
	d, pin, rec := key(t, drv, "A", keyinput.Discrete)

	assert.False(t, drv.DispatchStatic(d))
	assert.False(t, drv.DispatchStatic(nil))

	// two long presses
	for i := 0; i < 2; i++ {
		pin.Hold(keyinput.On, 26)
		pin.Hold(keyinput.Off, 1)
	}
	scan(drv, 54)
	require.Equal(t, 2, drv.Pending(d))

	events := drv.Events(d)
	require.Len(t, events, 2)
	assert.Less(t, events[0].Seq, events[1].Seq)

	assert.True(t, drv.DispatchStatic(d))
	assert.Equal(t, 1, drv.Pending(d))
	assert.True(t, drv.DispatchStatic(d))
	assert.False(t, drv.DispatchStatic(d))
	assert.Equal(t, []keyinput.Value{keyinput.LongPressed, keyinput.LongPressed}, rec.got)
}

func TestDispatchStaticWithoutHandler(t *testing.T) {
	drv := newDriver(t)
	pin := simio.NewPin()
	d := keyinput.NewDevice("silent", pin)
	require.NoError(t, drv.Register(d, nil))

	pin.Hold(keyinput.On, 26)
	pin.Hold(keyinput.Off, 1)
	scan(drv, 27)

	assert.False(t, drv.DispatchStatic(d))
	assert.False(t, drv.DispatchDynamic())
	assert.Equal(t, 1, drv.Pending(d))
}

func TestDispatchDynamicOldestFirst(t *testing.T) {
	drv := newDriver(t)
	var order []string
	reg := func(name string) *simio.Pin {
		pin := simio.NewPin()
		d := keyinput.NewDevice(name, pin)
		require.NoError(t, drv.Register(d, func(v keyinput.Value) {
			order = append(order, name+":"+v.String())
		}))
		return pin
	}

	// idle is registered first and never has an event
	reg("idle")
	late := reg("late")
	early := reg("early")

	early.Hold(keyinput.On, 26)
	early.Hold(keyinput.Off, 1)
	late.Hold(keyinput.Off, 10)
	late.Hold(keyinput.On, 26)
	late.Hold(keyinput.Off, 1)
	scan(drv, 40)

	assert.True(t, drv.DispatchDynamic())
	assert.True(t, drv.DispatchDynamic())
	assert.False(t, drv.DispatchDynamic())
	assert.Equal(t, []string{"early:LONGPRESSED", "late:LONGPRESSED"}, order)
}

func TestDispatchDynamicEmpty(t *testing.T) {
	drv := newDriver(t)
	assert.False(t, drv.DispatchDynamic())

	key(t, drv, "A", keyinput.Discrete)
	key(t, drv, "B", keyinput.Discrete)
	scan(drv, 3)
	assert.False(t, drv.DispatchDynamic())
}

func TestSequenceIsGlobal(t *testing.T) {
	drv := newDriver(t)
	a, pinA, _ := key(t, drv, "A", keyinput.Discrete)
	b, pinB, _ := key(t, drv, "B", keyinput.Discrete)

	for i := 0; i < 3; i++ {
		pinA.Hold(keyinput.On, 26)
		pinA.Hold(keyinput.Off, 1)
		pinB.Hold(keyinput.Off, 5)
		pinB.Hold(keyinput.On, 26)
		pinB.Hold(keyinput.Off, 1)
	}
	scan(drv, 200)

	seen := map[uint64]bool{}
	for _, d := range []*keyinput.Device{a, b} {
		events := drv.Events(d)
		require.Len(t, events, 3)
		for i, ev := range events {
			assert.False(t, seen[ev.Seq], "sequence %d reused", ev.Seq)
			seen[ev.Seq] = true
			if i > 0 {
				assert.Greater(t, ev.Seq, events[i-1].Seq)
			}
		}
	}
}

func TestUnregister(t *testing.T) {
	arena, err := mheap.NewArena(1024, 4)
	require.NoError(t, err)
	drv, err := keyinput.NewWithHeap(keyinput.DefaultConfig(), mheap.New(nil, arena))
	require.NoError(t, err)

	a, pinA, _ := key(t, drv, "A", keyinput.Discrete)
	b, _, _ := key(t, drv, "B", keyinput.Discrete)

	for i := 0; i < 3; i++ {
		pinA.Hold(keyinput.On, 26)
		pinA.Hold(keyinput.Off, 1)
	}
	scan(drv, 81)
	require.Equal(t, 3, drv.Pending(a))
	require.Equal(t, 3, arena.Len())

	require.NoError(t, drv.Unregister(a))
	assert.Equal(t, 0, arena.Len())
	assert.Equal(t, 0, drv.Pending(a))
	assert.False(t, a.Registered())
	assert.Equal(t, []*keyinput.Device{b}, drv.Devices())

	reads := pinA.Reads()
	scan(drv, 5)
	assert.Equal(t, reads, pinA.Reads())

	assert.NoError(t, drv.Unregister(nil))
	assert.NoError(t, drv.Unregister(a))

	require.NoError(t, drv.Register(a, nil))
	assert.Equal(t, []*keyinput.Device{b, a}, drv.Devices())
}

func TestUnregisterFromHandler(t *testing.T) {
	drv := newDriver(t)
	pin := simio.NewPin()
	d := keyinput.NewDevice("once", pin)
	calls := 0
	require.NoError(t, drv.Register(d, func(keyinput.Value) {
		calls++
		require.NoError(t, drv.Unregister(d))
	}))

	for i := 0; i < 2; i++ {
		pin.Hold(keyinput.On, 26)
		pin.Hold(keyinput.Off, 1)
	}
	scan(drv, 54)
	require.Equal(t, 2, drv.Pending(d))

	assert.True(t, drv.DispatchStatic(d))
	assert.False(t, drv.DispatchStatic(d))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, drv.Len())
}

func TestEventsDroppedWhenMemoryRunsOut(t *testing.T) {
	drv := newDriver(t, func(c *keyinput.Config) {
		c.ArenaSize = 64
		c.SystemLimit = -1
	})
	d, pin, rec := key(t, drv, "A", keyinput.Discrete)

	for i := 0; i < 3; i++ {
		pin.Hold(keyinput.On, 26)
		pin.Hold(keyinput.Off, 1)
	}
	scan(drv, 81)

	assert.Equal(t, 2, drv.Pending(d))
	assert.EqualValues(t, 1, drv.Dropped())
	_, failures := drv.Heap().Stats()
	assert.EqualValues(t, 1, failures)

	drain(drv)
	assert.Len(t, rec.got, 2)
	assert.Equal(t, 0, drv.Heap().Arena().Len())

	// memory is back, the next event is queued again
	pin.Hold(keyinput.On, 26)
	pin.Hold(keyinput.Off, 1)
	scan(drv, 27)
	assert.Equal(t, 1, drv.Pending(d))
}

func TestArenaFallbackServesEvents(t *testing.T) {
	drv := newDriver(t, func(c *keyinput.Config) {
		c.SystemLimit = 16
	})
	d, pin, rec := key(t, drv, "A", keyinput.Discrete)

	for i := 0; i < 4; i++ {
		pin.Hold(keyinput.On, 26)
		pin.Hold(keyinput.Off, 1)
	}
	scan(drv, 108)
	require.Equal(t, 4, drv.Pending(d))

	fallbacks, _ := drv.Heap().Stats()
	assert.EqualValues(t, 3, fallbacks)
	assert.Equal(t, 3, drv.Heap().Arena().Len())

	drain(drv)
	assert.Len(t, rec.got, 4)
	assert.Equal(t, 0, drv.Heap().Arena().Len())
	assert.Zero(t, drv.Dropped())
}

func TestOps(t *testing.T) {
	drv := newDriver(t)
	ops := drv.Ops()

	pin := simio.NewPin()
	d := keyinput.NewDevice("A", pin)
	rec := &recorder{}
	require.NoError(t, ops.Register(d, rec.handle))

	pin.Hold(keyinput.On, 5)
	pin.Hold(keyinput.Off, 21)
	for i := 0; i < 26; i++ {
		ops.Scan()
	}
	assert.False(t, ops.DispatchStatic(nil))
	assert.True(t, ops.DispatchDynamic())
	assert.False(t, ops.DispatchDynamic())
	assert.Equal(t, []keyinput.Value{keyinput.Pressed}, rec.got)

	require.NoError(t, ops.Unregister(d))
	assert.Equal(t, 0, drv.Len())
}

func TestLevelFunc(t *testing.T) {
	drv := newDriver(t)
	level := keyinput.Off
	d := keyinput.NewDevice("fn", keyinput.LevelFunc(func() keyinput.Level { return level }))
	rec := &recorder{}
	require.NoError(t, drv.Register(d, rec.handle))

	level = keyinput.On
	scan(drv, 30)
	level = keyinput.Off
	scan(drv, 1)
	drain(drv)
	assert.Equal(t, []keyinput.Value{keyinput.LongPressed}, rec.got)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "on", keyinput.On.String())
	assert.Equal(t, "off", keyinput.Off.String())
	assert.Equal(t, "awaiting-second-press", keyinput.AwaitingSecondPress.String())
	assert.Equal(t, "unknown", keyinput.State(99).String())
	assert.Equal(t, "DOUBLECLICK", keyinput.DoubleClick.String())
	assert.Equal(t, "NONE", keyinput.None.String())
	assert.Equal(t, "continuous", keyinput.Continuous.String())
	assert.Equal(t, 10*time.Millisecond, keyinput.DefaultConfig().ScanPeriod)
}
