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

package debugger

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lassandro/gochip8/pkg/machine"
)

var ErrNoSuchPoint = errors.New("Invalid breakpoint number")

// Interrupt requests a break after the current instruction. It is safe to
// call from any goroutine.
func (dbg *Debugger) Interrupt() {
	dbg.interrupt.Store(true)
}

func (dbg *Debugger) Step(mc *machine.Machine) {
	if dbg.interrupt.Swap(false) || dbg.Break {
		dbg.HandleBreak(dbg, mc)
		return
	}

	for _, breakpoint := range dbg.Breakpoints {
		if mc.State.PC == breakpoint.Addr {
			dbg.HandleBreak(dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Read(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type&ReadWatch == 0 {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleRead(addr, dbg, mc)
			break
		}
	}
}

func (dbg *Debugger) Write(addr uint16, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Type&WriteWatch == 0 {
			continue
		}

		if addr == watchpoint.Addr {
			dbg.HandleWrite(addr, dbg, mc)
			break
		}
	}
}

// AddBreakpoint reports false if a breakpoint already exists at addr.
func (dbg *Debugger) AddBreakpoint(addr uint16) bool {
	for _, breakpoint := range dbg.Breakpoints {
		if breakpoint.Addr == addr {
			return false
		}
	}

	dbg.Breakpoints = append(dbg.Breakpoints, Breakpoint{addr})

	return true
}

func (dbg *Debugger) RemoveBreakpoint(i int) error {
	if i < 0 || i >= len(dbg.Breakpoints) {
		return ErrNoSuchPoint
	}

	dbg.Breakpoints[i] = dbg.Breakpoints[len(dbg.Breakpoints)-1]
	dbg.Breakpoints = dbg.Breakpoints[:len(dbg.Breakpoints)-1]

	return nil
}

// AddWatchpoint reports false if an identical watchpoint exists.
func (dbg *Debugger) AddWatchpoint(addr uint16, wtype WatchpointType) bool {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Addr == addr && watchpoint.Type == wtype {
			return false
		}
	}

	dbg.Watchpoints = append(dbg.Watchpoints, Watchpoint{addr, wtype})

	return true
}

func (dbg *Debugger) RemoveWatchpoint(i int) error {
	if i < 0 || i >= len(dbg.Watchpoints) {
		return ErrNoSuchPoint
	}

	dbg.Watchpoints[i] = dbg.Watchpoints[len(dbg.Watchpoints)-1]
	dbg.Watchpoints = dbg.Watchpoints[:len(dbg.Watchpoints)-1]

	return nil
}

func (dbg *Debugger) out() io.Writer {
	if dbg.Output == nil {
		return os.Stdout
	}

	return dbg.Output
}

// Disassemble decodes count instructions starting at addr. Decoding stops at
// the end of memory.
func Disassemble(memory []byte, addr uint16, count int) []Line {
	lines := make([]Line, 0, count)

	for i := 0; i < count && int(addr)+1 < len(memory); i++ {
		opcode := uint16(memory[addr])<<8 | uint16(memory[addr+1])

		lines = append(lines, Line{addr, machine.Decode(opcode)})
		addr += 2
	}

	return lines
}

func (dbg *Debugger) PrintDisasm(mc *machine.MachineState, addr uint16, count int) {
	w := dbg.out()

	for _, line := range Disassemble(mc.Memory[:], addr, count) {
		marker := "  "
		if line.Addr == mc.PC {
			marker = "=>"
		}

		for _, breakpoint := range dbg.Breakpoints {
			if breakpoint.Addr == line.Addr {
				marker = "\033[31m*\033[0m" + marker[1:]
				break
			}
		}

		if line.Instruction.Op == machine.OP_INVALID {
			fmt.Fprintf(
				w, "%s \033[1m[%#03x]\033[0m %04X  \033[1;30m%s\033[0m\n",
				marker, line.Addr, line.Instruction.Raw, line.Instruction,
			)
		} else {
			fmt.Fprintf(
				w, "%s \033[1m[%#03x]\033[0m %04X  %s\n",
				marker, line.Addr, line.Instruction.Raw, line.Instruction,
			)
		}
	}
}

func (dbg *Debugger) PrintMem(mc *machine.MachineState, addr, count uint16) {
	w := dbg.out()

	for i := addr; i < addr+count && int(i) < machine.MEMORY_SIZE; i++ {
		if i == addr {
			fmt.Fprintf(w, "\033[1m[%#03x]\033[0m ", i)
		} else if (i-addr)%8 == 0 {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "\033[1m[%#03x]\033[0m ", i)
		}

		result := mc.Memory[i]

		if result == 0 {
			fmt.Fprintf(w, "\033[1;30m%02x\033[0m ", result)
		} else {
			fmt.Fprintf(w, "%02x ", result)
		}
	}

	fmt.Fprintln(w)
}

func (dbg *Debugger) PrintRegisters(mc *machine.MachineState) {
	w := dbg.out()

	for i, register := range mc.V {
		fmt.Fprintf(w, "\033[1mV%X:\033[0m %#02x\t", i, register)
		if i%8 == 7 {
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintf(
		w,
		"\033[1mPC:\033[0m %#03x\t\033[1mI:\033[0m %#03x\t"+
			"\033[1mSP:\033[0m %d\t\033[1mDT:\033[0m %d\t\033[1mST:\033[0m %d\n",
		mc.PC,
		mc.I,
		mc.SP,
		mc.DT,
		mc.ST,
	)

	if mc.SP > 0 {
		fmt.Fprint(w, "\033[1mStack:\033[0m")
		for i := uint8(0); i < mc.SP && int(i) < len(mc.Stack); i++ {
			fmt.Fprintf(w, " %#03x", mc.Stack[i])
		}
		fmt.Fprintln(w)
	}
}

// PrintDisplay draws the display with two pixel rows per text line.
func (dbg *Debugger) PrintDisplay(display *machine.Display) {
	w := dbg.out()

	for y := 0; y < machine.SCREEN_HEIGHT; y += 2 {
		for x := 0; x < machine.SCREEN_WIDTH; x++ {
			top := display.Pixels[y][x]
			bottom := display.Pixels[y+1][x]

			switch {
			case top && bottom:
				fmt.Fprint(w, "█")
			case top:
				fmt.Fprint(w, "▀")
			case bottom:
				fmt.Fprint(w, "▄")
			default:
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w)
	}
}
