// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/lassandro/gochip8/pkg/audio"
	"github.com/lassandro/gochip8/pkg/debugger"
	"github.com/lassandro/gochip8/pkg/keymap"
	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/lassandro/gochip8/pkg/scheduler"
	"github.com/lassandro/gochip8/pkg/term"
	"github.com/lassandro/gochip8/pkg/video"
)

var helpvar bool
var debugvar bool
var verbosevar bool
var mutevar bool
var frontendvar string
var keymapvar string
var cpuvar int
var fpsvar int
var scalevar int
var framesvar uint64

const usage = "gochip8 [-debug] [-frontend window|term|headless] " +
	"[-keymap cosmac|hex] [-cpu Hz] [-fps Hz] [-scale N] [-mute] filename"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	defaults := scheduler.DefaultConfig()

	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&debugvar, "debug", false, "Runs the machine in a debug CLI")
	flag.BoolVar(
		&verbosevar, "verbose", false,
		"Logs every executed instruction",
	)
	flag.BoolVar(&mutevar, "mute", false, "Disables the sound timer beep")
	flag.StringVar(
		&frontendvar, "frontend", "window",
		"Selects the display: window, term or headless",
	)
	flag.StringVar(
		&keymapvar, "keymap", "cosmac",
		"Selects the keyboard layout: "+strings.Join(keymap.Names, " or "),
	)
	flag.IntVar(&cpuvar, "cpu", defaults.CPUHz, "Instructions per second")
	flag.IntVar(&fpsvar, "fps", defaults.FrameHz, "Display frames per second")
	flag.IntVar(&scalevar, "scale", 10, "Window pixels per display pixel")
	flag.Uint64Var(
		&framesvar, "frames", 0,
		"Stops after this many frames, 0 runs until quit",
	)
	flag.Parse()
}

func gochip8() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	level := slog.LevelInfo
	if verbosevar {
		level = slog.LevelDebug
	}

	logger := slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)
	slog.SetDefault(logger)

	km, err := keymap.ByName(keymapvar)

	if err != nil {
		log.Println(err)
		return 1
	}

	if debugvar && frontendvar == "term" {
		log.Println("-debug reads commands from stdin and cannot share it with -frontend term")
		return 1
	}

	file, err := os.Open(args[0])

	if err != nil {
		log.Println(err)
		return 1
	}

	defer file.Close()

	var mc machine.Machine

	if err := mc.LoadROM(file); err != nil {
		log.Println(err)
		return 1
	}

	logger.Info("rom loaded", "path", args[0], "bytes", mc.ROMSize())

	config := scheduler.DefaultConfig()
	config.CPUHz = cpuvar
	config.FrameHz = fpsvar
	config.FrameLimit = framesvar

	sched, err := scheduler.New(&mc, config)

	if err != nil {
		log.Println(err)
		return 1
	}

	sched.Logger = logger

	signals := []os.Signal{syscall.SIGTERM}
	if !debugvar {
		signals = append(signals, os.Interrupt)
	}

	ctx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	if debugvar {
		var dbg debugger.Debugger
		dbg.HandleBreak = handleBreak
		dbg.HandleRead = handleRead
		dbg.HandleWrite = handleWrite
		mc.Debugger = &dbg
		stopRun = stop

		c := make(chan os.Signal, 1)
		defer signal.Stop(c)

		signal.Notify(c, os.Interrupt)
		go func() {
			for range c {
				fmt.Println()
				dbg.Interrupt()
			}
		}()

		debugREPL(&dbg, &mc)

		if shouldexit {
			return 0
		}
	}

	if !mutevar && frontendvar != "headless" {
		if beeper, err := audio.NewBeeper(); err == nil {
			sched.Audio = beeper
			defer beeper.Close()
		} else {
			logger.Warn("sound disabled", "err", err)
		}
	}

	switch frontendvar {
	case "window":
		err = runWindow(ctx, sched, km)
	case "term":
		err = runTerm(ctx, sched, km)
	case "headless":
		err = sched.Run(ctx)
	default:
		log.Printf("'%s' is not a valid frontend\n", frontendvar)
		return 1
	}

	if err != nil {
		log.Println(err)
		return 1
	}

	return 0
}

func runWindow(ctx context.Context, sched *scheduler.Scheduler, km keymap.KeyMap) error {
	options := video.DefaultOptions()
	options.Scale = scalevar
	options.KeyMap = km
	options.Title = fmt.Sprintf("gochip8 - %s", filepath.Base(flag.Arg(0)))

	window, err := video.NewWindow(options)

	if err != nil {
		return err
	}

	window.Logger = sched.Logger

	sched.Machine.Keypad = window
	sched.Renderer = window
	sched.Events = window

	return window.Run(func() error {
		return sched.Run(ctx)
	})
}

func runTerm(ctx context.Context, sched *scheduler.Scheduler, km keymap.KeyMap) error {
	terminal, err := term.Open(os.Stdin, os.Stdout, km)

	if err != nil {
		return err
	}

	defer terminal.Close()

	// Records written to stderr would tear the canvas
	if !verbosevar {
		sched.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sched.Machine.Keypad = terminal
	sched.Renderer = terminal
	sched.Events = terminal

	err = sched.Run(ctx)

	if err != nil {
		terminal.SetStatus(err.Error())
		terminal.Present()
	}

	return err
}

func main() {
	os.Exit(gochip8())
}
