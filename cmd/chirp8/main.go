// Package main implements the chirp8 CHIP-8 emulator binary.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/retroforge/chirp8/internal/chip8"
	sdlio "github.com/retroforge/chirp8/pkg/sdl"
)

func main() {
	cycles := flag.Uint("cycles", 10, "instructions executed per 60 Hz frame")
	debug := flag.Bool("debug", false, "trace executed instructions")
	quiet := flag.Bool("quiet", false, "only log errors")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: chirp8 [flags] <CHIP-8 program>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger := createLogger(*debug, *quiet)

	rom, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Fatal(err.Error())
	}

	vm := chip8.New()
	if *debug {
		vm.SetLogger(logger)
	}
	if err := vm.LoadProgram(rom); err != nil {
		logger.Fatal(err.Error())
	}

	io := sdlio.New(vm, logger)
	defer io.Destroy()
	if err := io.SetupWindow("chirp8 | CHIP-8 Emulator"); err != nil {
		logger.Fatal(err.Error())
	}

	if err := io.Loop(uint32(*cycles)); err != nil {
		logger.Error("Emulation stopped", log.Err(err))
		io.Destroy()
		os.Exit(1)
	}
}

// createLogger creates a logger with a level matching the verbosity flags.
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
