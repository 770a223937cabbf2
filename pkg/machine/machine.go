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

import (
	"fmt"
	"io"
	"math/rand/v2"
)

func (mc *MachineState) Reset() {
	*mc = MachineState{}

	// Programs begin at the start of program space with the font at the base
	mc.PC = MEMSPACE_PROGRAM
	copy(mc.Memory[MEMSPACE_FONT:], Font[:])
}

// LoadROM reads a raw program image and loads it at the start of program
// space, resetting the machine. Images that do not fit are rejected rather
// than truncated.
func (mc *Machine) LoadROM(reader io.Reader) error {
	rom, err := io.ReadAll(io.LimitReader(reader, int64(MAX_ROM_SIZE)+1))

	if err != nil {
		return fmt.Errorf("%w: %v", ErrRomLoad, err)
	}

	return mc.LoadBytes(rom)
}

func (mc *Machine) LoadBytes(rom []byte) error {
	if len(rom) > MAX_ROM_SIZE {
		return fmt.Errorf(
			"%w: %d bytes, program space holds %d", ErrRomTooLarge, len(rom),
			MAX_ROM_SIZE,
		)
	}

	mc.rom = append(mc.rom[:0], rom...)
	mc.Restart()

	return nil
}

// Restart returns the machine to its power-on state with the last loaded
// program in memory.
func (mc *Machine) Restart() {
	mc.State.Reset()
	copy(mc.State.Memory[MEMSPACE_PROGRAM:], mc.rom)

	mc.Display = Display{Dirty: true}
	mc.Halt = nil
}

func (mc *Machine) ROMSize() int {
	return len(mc.rom)
}

// Fetch combines the two bytes at PC into a big-endian opcode.
func Fetch(state *MachineState) (uint16, error) {
	if int(state.PC)+1 >= MEMORY_SIZE {
		return 0, &AddressError{state.PC}
	}

	hi := uint16(state.Memory[state.PC])
	lo := uint16(state.Memory[state.PC+1])

	return hi<<8 | lo, nil
}

func checkRange(addr uint16, count int) error {
	if int(addr)+count > MEMORY_SIZE {
		if int(addr) >= MEMORY_SIZE {
			return &AddressError{addr}
		}
		return &AddressError{uint16(MEMORY_SIZE)}
	}

	return nil
}

func (mc *Machine) read(addr uint16) (byte, error) {
	if err := checkRange(addr, 1); err != nil {
		return 0, err
	}

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return mc.State.Memory[addr], nil
}

func (mc *Machine) write(addr uint16, value byte) error {
	if err := checkRange(addr, 1); err != nil {
		return err
	}

	mc.State.Memory[addr] = value

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}

	return nil
}

func (mc *Machine) push(value uint16) error {
	if int(mc.State.SP) >= STACK_DEPTH {
		return ErrStackOverflow
	}

	mc.State.Stack[mc.State.SP] = value
	mc.State.SP++

	return nil
}

func (mc *Machine) pop() (uint16, error) {
	if mc.State.SP == 0 {
		return 0, ErrStackUnderflow
	}

	mc.State.SP--

	return mc.State.Stack[mc.State.SP], nil
}

func (mc *Machine) random() uint8 {
	if mc.Random != nil {
		return mc.Random()
	}

	return uint8(rand.UintN(256))
}

func (mc *Machine) skipIf(cond bool) {
	if cond {
		mc.State.PC += 2
	}
}

// keyEdge polls the keypad and returns the first key that went from released
// to pressed since the previous poll.
func (mc *Machine) keyEdge() (uint8, bool) {
	var held [KEYS]bool

	if mc.Keypad != nil {
		for key := range held {
			held[key] = mc.Keypad.IsPressed(uint8(key))
		}
	}

	pressed := -1

	for key := range held {
		if held[key] && !mc.State.Wait.Held[key] {
			pressed = key
			break
		}
	}

	mc.State.Wait.Held = held

	if pressed < 0 {
		return 0, false
	}

	return uint8(pressed), true
}

func (mc *Machine) halt(pc, opcode uint16, err error) error {
	mc.State.PC = pc
	mc.Halt = &ExecError{PC: pc, Opcode: opcode, Err: err}

	return mc.Halt
}

func (mc *Machine) Step() (StepResult, error) {
	pc := mc.State.PC
	result := StepResult{PC: pc}

	if mc.Halt != nil {
		return result, fmt.Errorf("%w: %v", ErrHalted, mc.Halt)
	}

	opcode, err := Fetch(&mc.State)

	if err != nil {
		return result, mc.halt(pc, opcode, err)
	}

	ins := Decode(opcode)
	result.Opcode = opcode
	result.Instruction = ins

	mc.State.PC += 2

	if err := mc.execute(ins, &result); err != nil {
		return result, mc.halt(pc, opcode, err)
	}

	if result.Waiting {
		// Hold PC on the key wait until a press arrives
		mc.State.PC = pc
		return result, nil
	}

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}

	return result, nil
}

func (mc *Machine) execute(ins Instruction, result *StepResult) error {
	state := &mc.State
	x := ins.X
	y := ins.Y

	switch ins.Op {
	// 00E0 | Clear the display
	case OP_CLS:
		mc.Display.Clear()
		result.Drew = true

	// 00EE | Return from subroutine
	case OP_RET:
		addr, err := mc.pop()

		if err != nil {
			return err
		}

		state.PC = addr

	// 1NNN | Jump
	case OP_JP:
		state.PC = ins.NNN

	// 2NNN | Call subroutine, return address is the next instruction
	case OP_CALL:
		if err := mc.push(state.PC); err != nil {
			return err
		}

		state.PC = ins.NNN

	// 3XNN | Skip if VX == NN
	case OP_SE_IMM:
		mc.skipIf(state.V[x] == ins.NN)

	// 4XNN | Skip if VX != NN
	case OP_SNE_IMM:
		mc.skipIf(state.V[x] != ins.NN)

	// 5XY0 | Skip if VX == VY
	case OP_SE_REG:
		mc.skipIf(state.V[x] == state.V[y])

	// 6XNN | VX = NN
	case OP_LD_IMM:
		state.V[x] = ins.NN

	// 7XNN | VX += NN, no carry
	case OP_ADD_IMM:
		state.V[x] += ins.NN

	// 8XY0 | VX = VY
	case OP_LD_REG:
		state.V[x] = state.V[y]

	// 8XY1 | VX |= VY
	case OP_OR:
		state.V[x] |= state.V[y]

	// 8XY2 | VX &= VY
	case OP_AND:
		state.V[x] &= state.V[y]

	// 8XY3 | VX ^= VY
	case OP_XOR:
		state.V[x] ^= state.V[y]

	// 8XY4 | VX += VY, VF = carry
	case OP_ADD_REG:
		sum := uint16(state.V[x]) + uint16(state.V[y])
		mc.setWithFlag(x, uint8(sum), boolByte(sum > 0xFF))

	// 8XY5 | VX -= VY, VF = VX > VY
	case OP_SUB:
		mc.setWithFlag(
			x, state.V[x]-state.V[y], boolByte(state.V[x] > state.V[y]),
		)

	// 8XY6 | VF = LSB, VX >>= 1
	case OP_SHR:
		mc.setWithFlag(x, state.V[x]>>1, state.V[x]&0x1)

	// 8XY7 | VX = VY - VX, VF = VY > VX
	case OP_SUBN:
		mc.setWithFlag(
			x, state.V[y]-state.V[x], boolByte(state.V[y] > state.V[x]),
		)

	// 8XYE | VF = MSB, VX <<= 1
	case OP_SHL:
		mc.setWithFlag(x, state.V[x]<<1, (state.V[x]>>7)&0x1)

	// 9XY0 | Skip if VX != VY
	case OP_SNE_REG:
		mc.skipIf(state.V[x] != state.V[y])

	// ANNN | I = NNN
	case OP_LD_I:
		state.I = ins.NNN

	// BNNN | Jump to NNN + V0
	case OP_JP_V0:
		state.PC = ins.NNN + uint16(state.V[0])

	// CXNN | VX = random & NN
	case OP_RND:
		state.V[x] = mc.random() & ins.NN

	// DXYN | Draw N rows of sprite data at I to (VX, VY), VF = collision
	case OP_DRW:
		if err := checkRange(state.I, int(ins.N)); err != nil {
			return err
		}

		var sprite [15]byte

		for row := uint16(0); row < uint16(ins.N); row++ {
			sprite[row], _ = mc.read(state.I + row)
		}

		collision := mc.Display.DrawSprite(
			state.V[x], state.V[y], sprite[:ins.N],
		)
		state.V[REG_VF] = boolByte(collision)
		result.Drew = true

	// EX9E | Skip if key VX is held
	case OP_SKP:
		mc.skipIf(mc.keyPressed(state.V[x]))

	// EXA1 | Skip if key VX is not held
	case OP_SKNP:
		mc.skipIf(!mc.keyPressed(state.V[x]))

	// FX07 | VX = DT
	case OP_LD_VX_DT:
		state.V[x] = state.DT

	// FX0A | Wait for a key press, VX = key
	case OP_LD_KEY:
		pc := state.PC - 2

		if !state.Wait.Waiting || state.Wait.PC != pc || state.Wait.Reg != x {
			// Keys already held when the wait begins do not satisfy it
			state.Wait.Waiting = true
			state.Wait.PC = pc
			state.Wait.Reg = x
			mc.keyEdge()
			result.Waiting = true
			break
		}

		key, ok := mc.keyEdge()

		if !ok {
			result.Waiting = true
			break
		}

		state.V[x] = key
		state.Wait.Waiting = false

	// FX15 | DT = VX
	case OP_LD_DT:
		state.DT = state.V[x]

	// FX18 | ST = VX
	case OP_LD_ST:
		state.ST = state.V[x]

	// FX1E | I += VX
	case OP_ADD_I:
		sum := int(state.I) + int(state.V[x])

		// I is never masked, so a sum past 16 bits cannot be represented
		if sum > 0xFFFF {
			return &AddressError{state.I}
		}

		state.I = uint16(sum)

	// FX29 | I = address of font glyph VX
	case OP_LD_FONT:
		state.I = MEMSPACE_FONT + uint16(state.V[x])*FONT_GLYPH_SIZE

	// FX33 | Store BCD of VX at I, I+1, I+2
	case OP_BCD:
		if err := checkRange(state.I, 3); err != nil {
			return err
		}

		value := state.V[x]
		mc.write(state.I, value/100)
		mc.write(state.I+1, (value/10)%10)
		mc.write(state.I+2, value%10)

	// FX55 | Store V0..VX at I
	case OP_STORE:
		if err := checkRange(state.I, int(x)+1); err != nil {
			return err
		}

		for i := uint16(0); i <= uint16(x); i++ {
			mc.write(state.I+i, state.V[i])
		}

	// FX65 | Load V0..VX from I
	case OP_LOAD:
		if err := checkRange(state.I, int(x)+1); err != nil {
			return err
		}

		for i := uint16(0); i <= uint16(x); i++ {
			state.V[i], _ = mc.read(state.I + i)
		}

	// 0NNN machine code calls and every unassigned pattern
	default:
		return ErrInvalidOpcode
	}

	return nil
}

func (mc *Machine) keyPressed(key uint8) bool {
	if mc.Keypad == nil {
		return false
	}

	return mc.Keypad.IsPressed(key & 0xF)
}

// setWithFlag writes VF before VX, so when X is F the result replaces the flag.
func (mc *Machine) setWithFlag(x uint8, value uint8, flag uint8) {
	mc.State.V[REG_VF] = flag
	mc.State.V[x] = value
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}

	return 0
}
