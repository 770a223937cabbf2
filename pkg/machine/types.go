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

package machine

// Keypad answers whether one of the 16 virtual keys (0x0-0xF) is held down.
type Keypad interface {
	IsPressed(key uint8) bool
}

type KeyWait struct {
	Waiting bool
	PC      uint16
	Reg     uint8

	// Keypad state seen by the previous poll, used to detect new presses.
	Held [KEYS]bool
}

type MachineState struct {
	V     [REGISTERS]uint8
	I     uint16
	PC    uint16
	SP    uint8
	Stack [STACK_DEPTH]uint16
	DT    uint8
	ST    uint8
	Wait  KeyWait

	Memory [MEMORY_SIZE]byte
}

type MachineDebugger interface {
	Step(mc *Machine)
	Read(addr uint16, mc *Machine)
	Write(addr uint16, mc *Machine)
}

type StepResult struct {
	PC          uint16
	Opcode      uint16
	Instruction Instruction
	Drew        bool
	Waiting     bool
}

type Machine struct {
	Keypad   Keypad
	State    MachineState
	Display  Display
	Debugger MachineDebugger

	// Source of CXNN random bytes. Defaults to math/rand/v2 when nil.
	Random func() uint8

	// Fatal condition that stopped the machine, nil while running.
	Halt error

	rom []byte
}
