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
	"fmt"
	"io"

	"github.com/lassandro/gochip8/pkg/machine"
)

// WriteListing writes one line per instruction word of a program of size
// bytes loaded at the start of program space. A trailing odd byte is listed
// as data.
func WriteListing(w io.Writer, mc *machine.MachineState, size int) error {
	lines := Disassemble(mc.Memory[:], machine.MEMSPACE_PROGRAM, size/2)

	for _, line := range lines {
		if _, err := fmt.Fprintf(
			w, "%03X: %04X  %s\n",
			line.Addr, line.Instruction.Raw, line.Instruction,
		); err != nil {
			return err
		}
	}

	if size%2 != 0 {
		addr := int(machine.MEMSPACE_PROGRAM) + size - 1
		last := mc.Memory[addr]

		if _, err := fmt.Fprintf(
			w, "%03X: %02X    DB 0x%02X\n", addr, last, last,
		); err != nil {
			return err
		}
	}

	return nil
}
