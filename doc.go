// Package keyinput turns periodically sampled key levels into gestures.
//
// Each registered [Device] runs a small recognizer that is advanced once per
// [Driver.Scan]. A key held past the press threshold and released becomes a
// [Pressed] event once the double-click window has passed without a second
// press; a second press inside the window held past the threshold becomes a
// [DoubleClick]; a key held past the long-press threshold becomes a
// [LongPressed] on release, or, for [Continuous] keys, drives an analog
// magnitude while held.
//
// Events are stored in per-key queues whose nodes come from an [mheap.Heap],
// so a build without a general-purpose allocator still works from a fixed
// arena. Every event carries a sequence number from one counter shared by all
// keys: [Driver.DispatchStatic] drains one key, [Driver.DispatchDynamic]
// always delivers the oldest event of any key.
//
//	drv, _ := keyinput.New(keyinput.DefaultConfig())
//	ok := keyinput.NewDevice("ok", pin)
//	drv.Register(ok, func(v keyinput.Value) { println(v.String()) })
//	for range time.Tick(drv.Config().ScanPeriod) {
//		drv.Scan()
//		for drv.DispatchDynamic() {
//		}
//	}
package keyinput
