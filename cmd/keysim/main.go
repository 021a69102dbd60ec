// Command keysim replays key level scripts through the gesture recognizer
// and prints the gestures it delivers.
//
//	key A
//	key vol continuous
//	A 1*5 0*3 1*5    # double click
//	vol 1*40
//
// With -watch the script is replayed every time it changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/sago35/keyinput"
	"github.com/sago35/keyinput/pkg"
)

func main() {
	cfg := keyinput.DefaultConfig()

	flag.DurationVar(&cfg.ScanPeriod, "period", cfg.ScanPeriod, "scan period")
	flag.IntVar(&cfg.DebounceSlices, "debounce", cfg.DebounceSlices, "debounce periods")
	flag.IntVar(&cfg.ShortPressSlices, "short", cfg.ShortPressSlices, "short press periods after debounce")
	flag.IntVar(&cfg.LongPressSlices, "long", cfg.LongPressSlices, "long press periods")
	flag.DurationVar(&cfg.DoubleClickWindow, "window", cfg.DoubleClickWindow, "double click window")
	flag.DurationVar(&cfg.AnalogStep, "analog-step", cfg.AnalogStep, "hold time per analog unit on continuous keys")
	flag.IntVar(&cfg.ArenaSize, "arena", cfg.ArenaSize, "arena size in bytes")
	flag.IntVar(&cfg.Alignment, "align", cfg.Alignment, "arena alignment")
	flag.Int64Var(&cfg.SystemLimit, "system-limit", cfg.SystemLimit, "general allocator budget in bytes (0 unlimited, <0 arena only)")
	tail := flag.Int("tail", -1, "idle periods after the script (default: long enough to close a double click window)")
	analog := flag.Bool("analog", false, "print analog magnitude changes")
	verbose := flag.Bool("v", false, "debug logging")
	jsonLog := flag.Bool("json", false, "JSON logging")
	watch := flag.Bool("watch", false, "replay whenever the script changes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: keysim [flags] SCRIPT\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if *jsonLog {
		pkg.SetLogger(pkg.NewJSONLogger(os.Stderr))
	}
	if *verbose {
		pkg.SetLogLevel(slog.LevelDebug)
	}
	if *tail < 0 {
		*tail = int(cfg.DoubleClickWindow/cfg.ScanPeriod) + 2
	}

	run := func() error {
		return replay(path, cfg, *tail, *analog, os.Stdout)
	}

	if !*watch {
		if err := run(); err != nil {
			fmt.Fprintln(os.Stderr, "keysim:", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := watchScript(ctx, path, run); err != nil {
		fmt.Fprintln(os.Stderr, "keysim:", err)
		os.Exit(1)
	}
}

func replay(path string, cfg keyinput.Config, tail int, analog bool, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := parseScript(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	res, err := simulate(s, cfg, tail, analog, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "ticks=%d events=%d dropped=%d\n", res.ticks, res.events, res.dropped)
	return nil
}

// watchScript runs fn once and again after every write to path until ctx is
// done. The directory is watched so editors that replace the file are
// followed.
func watchScript(ctx context.Context, path string, fn func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	if err := fn(); err != nil {
		fmt.Fprintln(os.Stderr, "keysim:", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pkg.LogInfo(pkg.ComponentSim, "script changed", "path", path, "op", ev.Op.String())
			if err := fn(); err != nil {
				fmt.Fprintln(os.Stderr, "keysim:", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
