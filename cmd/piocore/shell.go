// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"periph.io/x/altera/v3/piocore"
)

var actions = map[string]func(*piocore.Port) error{
	"high":           (*piocore.Port).High,
	"low":            (*piocore.Port).Low,
	"set":            (*piocore.Port).Set,
	"clear":          (*piocore.Port).Clear,
	"toggle":         (*piocore.Port).Toggle,
	"assert":         (*piocore.Port).Assert,
	"negate":         (*piocore.Port).Negate,
	"on":             (*piocore.Port).On,
	"off":            (*piocore.Port).Off,
	"enable_output":  (*piocore.Port).EnableOutput,
	"disable_output": (*piocore.Port).DisableOutput,
	"active_high":    (*piocore.Port).ActiveHigh,
	"active_low":     (*piocore.Port).ActiveLow,
}

var queries = map[string]func(*piocore.Port) (bool, error){
	"high?":            (*piocore.Port).IsHigh,
	"low?":             (*piocore.Port).IsLow,
	"asserted?":        (*piocore.Port).IsAsserted,
	"negated?":         (*piocore.Port).IsNegated,
	"output_enabled?":  (*piocore.Port).IsOutputEnabled,
	"output_disabled?": (*piocore.Port).IsOutputDisabled,
	"active_high?":     (*piocore.Port).IsActiveHigh,
	"active_low?":      (*piocore.Port).IsActiveLow,
}

// errQuit is returned by exec on "exit".
var errQuit = errors.New("quit")

// shell executes commands against the board's Ports and the slices created
// interactively.
type shell struct {
	e     *env
	w     io.Writer
	local map[string]*piocore.Port
}

func newShell(e *env, w io.Writer) *shell {
	return &shell{e: e, w: w, local: map[string]*piocore.Port{}}
}

func (s *shell) lookup(name string) (*piocore.Port, error) {
	if p := s.local[name]; p != nil {
		return p, nil
	}
	if p := s.e.board.ByName(name); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("unknown port %q", name)
}

// exec runs one command line.
func (s *shell) exec(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "exit", "quit":
		return errQuit
	case "help":
		s.help()
		return nil
	case "list":
		return s.list()
	case "slice":
		return s.slice(args)
	case "release":
		return s.release(args)
	case "value":
		return s.value(args)
	}
	if f := actions[cmd]; f != nil {
		p, err := s.one(args)
		if err != nil {
			return err
		}
		return f(p)
	}
	if f := queries[cmd]; f != nil {
		p, err := s.one(args)
		if err != nil {
			return err
		}
		v, err := f(p)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.w, v)
		return nil
	}
	return fmt.Errorf("unknown command %q, try help", cmd)
}

func (s *shell) one(args []string) (*piocore.Port, error) {
	if len(args) != 1 {
		return nil, errors.New("expected one port name")
	}
	return s.lookup(args[0])
}

func (s *shell) help() {
	fmt.Fprintln(s.w, "Commands:")
	fmt.Fprintln(s.w, "  list                      list ports")
	fmt.Fprintln(s.w, "  slice <port> <sel> <name> derive a port; sel is 3 or 2..5")
	fmt.Fprintln(s.w, "  release <name>            release a derived port")
	fmt.Fprintln(s.w, "  value <port> [v]          read or write a port as an integer")
	fmt.Fprintln(s.w, "  <action> <port>           "+strings.Join(sortedNames(actions), ", "))
	fmt.Fprintln(s.w, "  <query> <port>            "+strings.Join(sortedNames(queries), ", "))
	fmt.Fprintln(s.w, "  exit")
}

func (s *shell) list() error {
	names := s.e.board.Names()
	for n := range s.local {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		p, _ := s.lookup(n)
		fmt.Fprintf(s.w, "%-16s %-16s width=%-2d mask=0x%08x\n", n, p, p.Width(), p.Mask())
	}
	return nil
}

func (s *shell) slice(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: slice <port> <sel> <name>")
	}
	p, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	if _, err := s.lookup(args[2]); err == nil {
		return fmt.Errorf("%q already exists", args[2])
	}
	sel, err := piocore.ParseSelector(args[1])
	if err != nil {
		return err
	}
	n, err := p.Slice(sel)
	if err != nil {
		return err
	}
	s.local[args[2]] = n
	fmt.Fprintf(s.w, "%s = %s\n", args[2], n)
	return nil
}

func (s *shell) release(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: release <name>")
	}
	p := s.local[args[0]]
	if p == nil {
		return fmt.Errorf("%q wasn't created with slice", args[0])
	}
	delete(s.local, args[0])
	return p.Release()
}

func (s *shell) value(args []string) error {
	if len(args) != 1 && len(args) != 2 {
		return errors.New("usage: value <port> [v]")
	}
	p, err := s.lookup(args[0])
	if err != nil {
		return err
	}
	if len(args) == 2 {
		v, err := strconv.ParseInt(args[1], 0, 64)
		if err != nil {
			return err
		}
		return p.SetValue(int(v))
	}
	v, err := p.Value()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.w, "0x%x\n", v)
	return nil
}

// close releases the slices created interactively.
func (s *shell) close() error {
	var errs []error
	for _, p := range s.local {
		errs = append(errs, p.Release())
	}
	s.local = nil
	return errors.Join(errs...)
}

func runShell(e *env) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pio> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s := newShell(e, rl.Stdout())
	defer s.close()
	s.help()
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}
		if err := s.exec(line); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Fprintf(rl.Stderr(), "error: %s\n", err)
		}
	}
}

func sortedNames[T any](m map[string]T) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
