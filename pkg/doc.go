// Package pkg holds the pieces shared by the key driver and its allocator:
// component-tagged structured logging on top of [log/slog] and the sentinel
// errors returned across package boundaries.
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogDebug(pkg.ComponentScan, "state", "key", "A", "to", "debouncing")
//
// Errors are plain sentinels, test them with errors.Is:
//
//	if errors.Is(err, pkg.ErrNoMemory) {
//	    // event dropped
//	}
package pkg
