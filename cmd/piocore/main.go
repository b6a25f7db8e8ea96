// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// piocore drives Altera PIO cores from a Lua script or an interactive shell.
//
// The board is described by a YAML file, see piocore.Config. Use -sim to run
// against simulated registers instead of /dev/mem.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	lua "github.com/yuin/gopher-lua"
	"periph.io/x/altera/v3/piocore"
	"periph.io/x/altera/v3/piocore/piocoretest"
	"periph.io/x/altera/v3/piolua"
	"periph.io/x/altera/v3/pmem"
)

// env holds what the shell and scripts operate on.
type env struct {
	board  *piocore.Board
	mapper piocore.Mapper
}

func newEnv(configPath string, sim bool) (*env, error) {
	e := &env{mapper: piocore.MapPhysical}
	if sim {
		m := piocoretest.Fakes{}
		e.mapper = func(base uintptr, size int) (pmem.Bus, io.Closer, error) {
			m.Core(base)
			return m, nil, nil
		}
	}
	cfg := &piocore.Config{}
	if configPath != "" {
		var err error
		if cfg, err = piocore.LoadConfigFile(configPath); err != nil {
			return nil, err
		}
	}
	b, err := cfg.Build(e.mapper)
	if err != nil {
		return nil, err
	}
	e.board = b
	return e, nil
}

// open implements piolua.Opener.
func (e *env) open(base uintptr, width int) (*piocore.Port, error) {
	if base&(piocore.BlockSize-1) != 0 {
		return nil, fmt.Errorf("piocore: invalid base 0x%x: %w", base, piocore.ErrInvalidArgument)
	}
	bus, closer, err := e.mapper(base, piocore.BlockSize)
	if err != nil {
		return nil, err
	}
	p, err := piocore.New(bus, base, width, &piocore.Opts{Closer: closer})
	if err != nil && closer != nil {
		_ = closer.Close()
	}
	return p, err
}

// runScript runs the Lua file at path. The board's Ports are available in
// the global table "board" by name.
func (e *env) runScript(path string) error {
	L := lua.NewState()
	defer L.Close()
	b := piolua.Register(L, e.open)
	t := L.NewTable()
	for _, name := range e.board.Names() {
		t.RawSetString(name, b.Wrap(L, e.board.ByName(name)))
	}
	L.SetGlobal("board", t)
	err := L.DoFile(path)
	return errors.Join(err, b.Close())
}

func mainImpl() error {
	configPath := flag.String("config", os.Getenv(piocore.ConfigEnv), "board description (YAML)")
	sim := flag.Bool("sim", false, "use simulated registers instead of /dev/mem")
	script := flag.String("script", "", "Lua script to run instead of the shell")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	e, err := newEnv(*configPath, *sim)
	if err != nil {
		return err
	}
	log.Printf("loaded %d cores", len(e.board.Cores()))
	if *script != "" {
		err = e.runScript(*script)
	} else {
		err = runShell(e)
	}
	return errors.Join(err, e.board.Release())
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "piocore: %s.\n", err)
		os.Exit(1)
	}
}
