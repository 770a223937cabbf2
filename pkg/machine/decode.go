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
)

type Op uint8

const (
	OP_INVALID Op = iota

	OP_CLS      // 00E0
	OP_RET      // 00EE
	OP_JP       // 1NNN
	OP_CALL     // 2NNN
	OP_SE_IMM   // 3XNN
	OP_SNE_IMM  // 4XNN
	OP_SE_REG   // 5XY0
	OP_LD_IMM   // 6XNN
	OP_ADD_IMM  // 7XNN
	OP_LD_REG   // 8XY0
	OP_OR       // 8XY1
	OP_AND      // 8XY2
	OP_XOR      // 8XY3
	OP_ADD_REG  // 8XY4
	OP_SUB      // 8XY5
	OP_SHR      // 8XY6
	OP_SUBN     // 8XY7
	OP_SHL      // 8XYE
	OP_SNE_REG  // 9XY0
	OP_LD_I     // ANNN
	OP_JP_V0    // BNNN
	OP_RND      // CXNN
	OP_DRW      // DXYN
	OP_SKP      // EX9E
	OP_SKNP     // EXA1
	OP_LD_VX_DT // FX07
	OP_LD_KEY   // FX0A
	OP_LD_DT    // FX15
	OP_LD_ST    // FX18
	OP_ADD_I    // FX1E
	OP_LD_FONT  // FX29
	OP_BCD      // FX33
	OP_STORE    // FX55
	OP_LOAD     // FX65

	OP_COUNT
)

type opPattern struct {
	Mask  uint16
	Value uint16
	Op    Op
}

// Patterns are disjoint: any opcode matches at most one entry, and an opcode
// matching none decodes to OP_INVALID.
var opPatterns = [...]opPattern{
	{0xFFFF, 0x00E0, OP_CLS},
	{0xFFFF, 0x00EE, OP_RET},
	{0xF000, 0x1000, OP_JP},
	{0xF000, 0x2000, OP_CALL},
	{0xF000, 0x3000, OP_SE_IMM},
	{0xF000, 0x4000, OP_SNE_IMM},
	{0xF00F, 0x5000, OP_SE_REG},
	{0xF000, 0x6000, OP_LD_IMM},
	{0xF000, 0x7000, OP_ADD_IMM},
	{0xF00F, 0x8000, OP_LD_REG},
	{0xF00F, 0x8001, OP_OR},
	{0xF00F, 0x8002, OP_AND},
	{0xF00F, 0x8003, OP_XOR},
	{0xF00F, 0x8004, OP_ADD_REG},
	{0xF00F, 0x8005, OP_SUB},
	{0xF00F, 0x8006, OP_SHR},
	{0xF00F, 0x8007, OP_SUBN},
	{0xF00F, 0x800E, OP_SHL},
	{0xF00F, 0x9000, OP_SNE_REG},
	{0xF000, 0xA000, OP_LD_I},
	{0xF000, 0xB000, OP_JP_V0},
	{0xF000, 0xC000, OP_RND},
	{0xF000, 0xD000, OP_DRW},
	{0xF0FF, 0xE09E, OP_SKP},
	{0xF0FF, 0xE0A1, OP_SKNP},
	{0xF0FF, 0xF007, OP_LD_VX_DT},
	{0xF0FF, 0xF00A, OP_LD_KEY},
	{0xF0FF, 0xF015, OP_LD_DT},
	{0xF0FF, 0xF018, OP_LD_ST},
	{0xF0FF, 0xF01E, OP_ADD_I},
	{0xF0FF, 0xF029, OP_LD_FONT},
	{0xF0FF, 0xF033, OP_BCD},
	{0xF0FF, 0xF055, OP_STORE},
	{0xF0FF, 0xF065, OP_LOAD},
}

// Indexed by the high nibble so decoding only scans the candidates sharing it.
var opTable [16][]opPattern

func init() {
	for _, pattern := range opPatterns {
		nibble := pattern.Value >> 12
		opTable[nibble] = append(opTable[nibble], pattern)
	}
}

// Instruction is a decoded opcode. Operand fields are always extracted, whether
// or not Op uses them.
type Instruction struct {
	Op  Op
	Raw uint16
	X   uint8
	Y   uint8
	N   uint8
	NN  uint8
	NNN uint16
}

func Decode(opcode uint16) Instruction {
	ins := Instruction{
		Op:  OP_INVALID,
		Raw: opcode,
		X:   uint8((opcode >> 8) & 0xF),
		Y:   uint8((opcode >> 4) & 0xF),
		N:   uint8(opcode & 0xF),
		NN:  uint8(opcode & 0xFF),
		NNN: opcode & 0xFFF,
	}

	for _, pattern := range opTable[opcode>>12] {
		if opcode&pattern.Mask == pattern.Value {
			ins.Op = pattern.Op
			break
		}
	}

	return ins
}

var opNames = [OP_COUNT]string{
	OP_INVALID:  "???",
	OP_CLS:      "CLS",
	OP_RET:      "RET",
	OP_JP:       "JP",
	OP_CALL:     "CALL",
	OP_SE_IMM:   "SE",
	OP_SNE_IMM:  "SNE",
	OP_SE_REG:   "SE",
	OP_LD_IMM:   "LD",
	OP_ADD_IMM:  "ADD",
	OP_LD_REG:   "LD",
	OP_OR:       "OR",
	OP_AND:      "AND",
	OP_XOR:      "XOR",
	OP_ADD_REG:  "ADD",
	OP_SUB:      "SUB",
	OP_SHR:      "SHR",
	OP_SUBN:     "SUBN",
	OP_SHL:      "SHL",
	OP_SNE_REG:  "SNE",
	OP_LD_I:     "LD",
	OP_JP_V0:    "JP",
	OP_RND:      "RND",
	OP_DRW:      "DRW",
	OP_SKP:      "SKP",
	OP_SKNP:     "SKNP",
	OP_LD_VX_DT: "LD",
	OP_LD_KEY:   "LD",
	OP_LD_DT:    "LD",
	OP_LD_ST:    "LD",
	OP_ADD_I:    "ADD",
	OP_LD_FONT:  "LD",
	OP_BCD:      "LD",
	OP_STORE:    "LD",
	OP_LOAD:     "LD",
}

func (op Op) String() string {
	if op >= OP_COUNT {
		return opNames[OP_INVALID]
	}
	return opNames[op]
}

func (ins Instruction) String() string {
	name := ins.Op.String()

	switch ins.Op {
	case OP_CLS, OP_RET:
		return name
	case OP_JP, OP_CALL:
		return fmt.Sprintf("%s 0x%03X", name, ins.NNN)
	case OP_SE_IMM, OP_SNE_IMM, OP_LD_IMM, OP_ADD_IMM, OP_RND:
		return fmt.Sprintf("%s V%X, 0x%02X", name, ins.X, ins.NN)
	case OP_SE_REG, OP_SNE_REG, OP_LD_REG, OP_OR, OP_AND, OP_XOR,
		OP_ADD_REG, OP_SUB, OP_SUBN:
		return fmt.Sprintf("%s V%X, V%X", name, ins.X, ins.Y)
	case OP_SHR, OP_SHL:
		return fmt.Sprintf("%s V%X", name, ins.X)
	case OP_LD_I:
		return fmt.Sprintf("%s I, 0x%03X", name, ins.NNN)
	case OP_JP_V0:
		return fmt.Sprintf("%s V0, 0x%03X", name, ins.NNN)
	case OP_DRW:
		return fmt.Sprintf("%s V%X, V%X, %d", name, ins.X, ins.Y, ins.N)
	case OP_SKP, OP_SKNP:
		return fmt.Sprintf("%s V%X", name, ins.X)
	case OP_LD_VX_DT:
		return fmt.Sprintf("%s V%X, DT", name, ins.X)
	case OP_LD_KEY:
		return fmt.Sprintf("%s V%X, K", name, ins.X)
	case OP_LD_DT:
		return fmt.Sprintf("%s DT, V%X", name, ins.X)
	case OP_LD_ST:
		return fmt.Sprintf("%s ST, V%X", name, ins.X)
	case OP_ADD_I:
		return fmt.Sprintf("%s I, V%X", name, ins.X)
	case OP_LD_FONT:
		return fmt.Sprintf("%s F, V%X", name, ins.X)
	case OP_BCD:
		return fmt.Sprintf("%s B, V%X", name, ins.X)
	case OP_STORE:
		return fmt.Sprintf("%s [I], V%X", name, ins.X)
	case OP_LOAD:
		return fmt.Sprintf("%s V%X, [I]", name, ins.X)
	}

	return fmt.Sprintf("DW 0x%04X", ins.Raw)
}
