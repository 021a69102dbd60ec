package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/sago35/keyinput"
	"github.com/sago35/keyinput/simio"
)

// keyScript is the declared mode and the samples of one key.
type keyScript struct {
	name   string
	mode   keyinput.Mode
	levels []keyinput.Level
}

// script holds keys in declaration order.
type script struct {
	keys []*keyScript
}

func (s *script) key(name string) *keyScript {
	for _, k := range s.keys {
		if k.name == name {
			return k
		}
	}
	return nil
}

// ticks is the length of the longest sample list.
func (s *script) ticks() int {
	n := 0
	for _, k := range s.keys {
		if len(k.levels) > n {
			n = len(k.levels)
		}
	}
	return n
}

// parseScript reads
//
//	key NAME [discrete|continuous]
//	NAME LEVELS...
//
// LEVELS is a simio level string, optionally repeated with a '*N' suffix:
// "1*26 0" is twenty six On samples followed by one Off sample.
func parseScript(r io.Reader) (*script, error) {
	s := &script{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields, err := shlex.Split(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "key" {
			if err := s.declare(fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			continue
		}

		k := s.key(fields[0])
		if k == nil {
			return nil, fmt.Errorf("line %d: undeclared key %q", line, fields[0])
		}
		for _, f := range fields[1:] {
			levels, err := parseLevels(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			k.levels = append(k.levels, levels...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(s.keys) == 0 {
		return nil, fmt.Errorf("no keys declared")
	}
	return s, nil
}

func (s *script) declare(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("usage: key NAME [discrete|continuous]")
	}
	name := args[0]
	if name == "key" {
		return fmt.Errorf("reserved key name %q", name)
	}
	if s.key(name) != nil {
		return fmt.Errorf("key %q declared twice", name)
	}
	k := &keyScript{name: name}
	if len(args) == 2 {
		switch args[1] {
		case "discrete":
		case "continuous":
			k.mode = keyinput.Continuous
		default:
			return fmt.Errorf("unknown mode %q", args[1])
		}
	}
	s.keys = append(s.keys, k)
	return nil
}

func parseLevels(tok string) ([]keyinput.Level, error) {
	body, count, repeated := strings.Cut(tok, "*")
	levels, err := simio.ParseLevels(body)
	if err != nil {
		return nil, err
	}
	if !repeated {
		return levels, nil
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid repeat count %q", count)
	}
	out := make([]keyinput.Level, 0, len(levels)*n)
	for i := 0; i < n; i++ {
		out = append(out, levels...)
	}
	return out, nil
}
