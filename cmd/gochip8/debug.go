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
	"bufio"
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lassandro/gochip8/pkg/debugger"
	"github.com/lassandro/gochip8/pkg/encoding"
	"github.com/lassandro/gochip8/pkg/machine"
)

var lastcmd []string
var shouldexit bool
var scanner = bufio.NewScanner(os.Stdin)

// Cancels the scheduler when the REPL quits
var stopRun context.CancelFunc

const replHelp = `break    [add 0x###|list|remove #|clear]
watch    [add 0x### read|write|readwrite|list|remove #|clear]
register [V#|I|PC|DT|ST] [value]
memory   [0x###|#] [#]
set      0x### value
disasm   [0x###|#] [#]
jump     0x###
display
continue, next, reset, clear, quit`

func debugBreak(dbg *debugger.Debugger, args []string) {
	const usage = "break [add|list|remove|clear]"

	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "break add [0x###]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		addr, err := encoding.DecodeAddr(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if dbg.AddBreakpoint(addr) {
			fmt.Printf("Breakpoint added [%#03x]\n", addr)
		}

	case "l", "ls", "list":
		const usage = "break list"

		if len(args) != 0 {
			log.Println(usage)
			return
		}

		fmtstring := indexFormat(len(dbg.Breakpoints), "%#03x\n")

		for i, breakpoint := range dbg.Breakpoints {
			fmt.Printf(fmtstring, i, breakpoint.Addr)
		}

	case "r", "rm", "remove":
		const usage = "break remove [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := strconv.Atoi(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if err := dbg.RemoveBreakpoint(i); err != nil {
			log.Println(err)
			return
		}

		fmt.Printf("Breakpoint removed [%d]\n", i)

	case "clear":
		dbg.Breakpoints = nil
		fmt.Println("Breakpoints reset")

	default:
		log.Printf("break: '%s' is not a valid command\n", cmd)
		log.Println(usage)
	}
}

func debugWatch(dbg *debugger.Debugger, args []string) {
	const usage = "watch [add|list|remove|clear]"

	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "watch add [0x###] [read|write|readwrite]"

		if len(args) != 2 {
			log.Println(usage)
			return
		}

		addr, err := encoding.DecodeAddr(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		var wtype debugger.WatchpointType

		switch args[1] {
		case "r", "read":
			wtype = debugger.ReadWatch
		case "w", "write":
			wtype = debugger.WriteWatch
		case "rw", "rwrite", "readwrite":
			wtype = debugger.ReadWriteWatch
		default:
			log.Println(usage)
			return
		}

		if dbg.AddWatchpoint(addr, wtype) {
			fmt.Printf("Watchpoint added [%#03x] (%s)\n", addr, wtype)
		}

	case "l", "ls", "list":
		const usage = "watch list"

		if len(args) != 0 {
			log.Println(usage)
			return
		}

		fmtstring := indexFormat(len(dbg.Watchpoints), "%#03x %s\n")

		for i, watchpoint := range dbg.Watchpoints {
			fmt.Printf(fmtstring, i, watchpoint.Addr, watchpoint.Type)
		}

	case "r", "rm", "remove":
		const usage = "watch remove [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := strconv.Atoi(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if err := dbg.RemoveWatchpoint(i); err != nil {
			log.Println(err)
			return
		}

		fmt.Printf("Watchpoint removed [%d]\n", i)

	case "clear":
		dbg.Watchpoints = nil
		fmt.Println("Watchpoints reset")

	default:
		log.Printf("watch: '%s' is not a valid command\n", cmd)
		log.Println(usage)
	}
}

// indexFormat pads list numbers to the width of the largest one.
func indexFormat(count int, suffix string) string {
	digits := math.Floor(math.Log10(float64(count + 1)))
	return fmt.Sprintf("#%%0%dd: %s", int64(digits)+1, suffix)
}

func debugReg(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "register [V#|I|PC|DT|ST] [value]"

	if len(args) == 0 {
		dbg.PrintRegisters(mc)
		return
	}

	if len(args) != 2 {
		log.Println(usage)
		return
	}

	name := strings.ToUpper(args[0])

	switch name {
	case "I", "PC":
		value, err := encoding.DecodeAddr(args[1])

		if err != nil {
			log.Println(err)
			return
		}

		if name == "I" {
			mc.I = value
		} else {
			mc.PC = value
			mc.Wait = machine.KeyWait{}
		}

		fmt.Printf("\033[1m%s:\033[0m %#03x\n", name, value)

	case "DT", "ST":
		value, err := encoding.DecodeByte(args[1])

		if err != nil {
			log.Println(err)
			return
		}

		if name == "DT" {
			mc.DT = value
		} else {
			mc.ST = value
		}

		fmt.Printf("\033[1m%s:\033[0m %d\n", name, value)

	default:
		reg, err := encoding.DecodeRegister(name)

		if err != nil {
			log.Println(err)
			return
		}

		value, err := encoding.DecodeByte(args[1])

		if err != nil {
			log.Println(err)
			return
		}

		mc.V[reg] = value
		fmt.Printf("\033[1mV%X:\033[0m %#02x\n", reg, value)
	}
}

// decodeRange reads the optional [0x###|#] [#] arguments shared by memory
// and disasm. A lone decimal argument is a count from PC.
func decodeRange(mc *machine.MachineState, args []string, size uint16) (uint16, uint16, bool) {
	addr := mc.PC

	if len(args) > 2 {
		return 0, 0, false
	}

	if len(args) > 0 {
		if value, err := encoding.DecodeAddr(args[0]); err == nil {
			addr = value
		} else if count, err := encoding.DecodeInt(args[0]); err == nil && count > 0 {
			size = uint16(count)
		} else {
			log.Println("Invalid address or count", args[0])
			return 0, 0, false
		}
	}

	if len(args) > 1 {
		count, err := encoding.DecodeInt(args[1])

		if err != nil || count <= 0 {
			log.Println("Invalid count", args[1])
			return 0, 0, false
		}

		size = uint16(count)
	}

	return addr, size, true
}

func debugMemory(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "memory [0x###|#] [#]"

	addr, size, ok := decodeRange(mc, args, 16)

	if !ok {
		log.Println(usage)
		return
	}

	dbg.PrintMem(mc, addr, size)
}

func debugDisasm(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "disasm [0x###|#] [#]"

	addr, size, ok := decodeRange(mc, args, 8)

	if !ok {
		log.Println(usage)
		return
	}

	dbg.PrintDisasm(mc, addr, int(size))
}

func debugSet(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "set [0x###] [value]"

	if len(args) != 2 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeAddr(args[0])

	if err != nil {
		log.Println(err)
		return
	}

	value, err := encoding.DecodeByte(args[1])

	if err != nil {
		log.Println(err)
		return
	}

	mc.Memory[addr] = value
	dbg.PrintMem(mc, addr, 1)
}

func debugJump(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "jump [0x###]"

	if len(args) != 1 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeAddr(args[0])

	if err != nil {
		log.Println(err)
		return
	}

	mc.PC = addr
	mc.Wait = machine.KeyWait{}
	fmt.Printf("\033[1mPC:\033[0m %#03x\n", addr)
}

func debugQuit(dbg *debugger.Debugger) {
	shouldexit = true

	// Keep the rest of the current frame from re-entering the REPL
	dbg.Break = false
	dbg.Breakpoints = nil
	dbg.Watchpoints = nil

	if stopRun != nil {
		stopRun()
	}
}

func debugREPL(dbg *debugger.Debugger, mc *machine.Machine) {
	for {
		fmt.Print("\033[1;30m(dbg)\033[0m ")

		if !scanner.Scan() {
			fmt.Println()
			debugQuit(dbg)
			return
		}

		args := strings.Fields(scanner.Text())

		if len(args) == 0 {
			if len(lastcmd) == 0 {
				continue
			}
			args = lastcmd
		} else {
			lastcmd = make([]string, len(args))
			copy(lastcmd, args)
		}

		cmd := args[0]
		args = args[1:]

		switch cmd {
		case "b", "bp", "break", "breakpoint":
			debugBreak(dbg, args)

		case "w", "wp", "watch", "watchpoint":
			debugWatch(dbg, args)

		case "r", "reg", "register", "registers":
			debugReg(dbg, &mc.State, args)

		case "d", "dis", "disasm":
			debugDisasm(dbg, &mc.State, args)

		case "m", "mem", "memory":
			debugMemory(dbg, &mc.State, args)

		case "set":
			debugSet(dbg, &mc.State, args)

		case "j", "jmp", "jump":
			debugJump(dbg, &mc.State, args)

		case "display":
			dbg.PrintDisplay(&mc.Display)

		case "c", "continue":
			dbg.Break = false
			return

		case "n", "next":
			dbg.Break = true
			return

		case "q", "quit", "exit":
			debugQuit(dbg)
			return

		case "clear":
			fmt.Print("\033[H\033[2J")

		case "reset":
			mc.Restart()
			fmt.Println("Machine reset")

		case "h", "help":
			fmt.Println(replHelp)

		default:
			fmt.Printf("error: '%s' is not a valid command\n", cmd)
		}
	}
}

func handleBreak(dbg *debugger.Debugger, mc *machine.Machine) {
	if shouldexit {
		return
	}

	if !dbg.Break {
		fmt.Println()
		fmt.Println("Program stopped")
		dbg.PrintDisasm(&mc.State, mc.State.PC, 8)
	} else {
		dbg.PrintDisasm(&mc.State, mc.State.PC, 1)
	}

	debugREPL(dbg, mc)
}

func handleRead(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	if shouldexit {
		return
	}

	fmt.Println()
	fmt.Println("Program stopped on read")
	dbg.PrintMem(&mc.State, addr, 1)
	debugREPL(dbg, mc)
}

func handleWrite(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
	if shouldexit {
		return
	}

	fmt.Println()
	fmt.Println("Program stopped on write")
	dbg.PrintMem(&mc.State, addr, 1)
	debugREPL(dbg, mc)
}
