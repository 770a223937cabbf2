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
	"errors"
	"fmt"
)

var (
	ErrRomLoad           = errors.New("rom load failure")
	ErrRomTooLarge       = errors.New("rom too large")
	ErrInvalidOpcode     = errors.New("invalid opcode")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrHalted            = errors.New("machine halted")
)

type AddressError struct {
	Addr uint16
}

func (err *AddressError) Error() string {
	return fmt.Sprintf("address out of range: %#03x", err.Addr)
}

func (err *AddressError) Unwrap() error {
	return ErrAddressOutOfRange
}

// ExecError carries the location of a fatal condition raised while executing
// an instruction.
type ExecError struct {
	PC     uint16
	Opcode uint16
	Err    error
}

func (err *ExecError) Error() string {
	return fmt.Sprintf("[%#03x] %04X: %v", err.PC, err.Opcode, err.Err)
}

func (err *ExecError) Unwrap() error {
	return err.Err
}
