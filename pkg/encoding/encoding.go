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

package encoding

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidHex      = errors.New("Invalid hex string")
	ErrInvalidRegister = errors.New("Invalid register name")
	ErrAddressRange    = errors.New("Address outside 0x000-0xFFF")
)

// Decodes a hexidecimal string in the formats: 0xFFFF, xFFFF, 0xFF, xFF
func DecodeHex(s string) (uint16, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i == -1 || i != 1 {
		return 0, ErrInvalidHex
	}

	result, err := strconv.ParseUint(s, 0, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes a hexidecimal machine address, rejecting anything past 0xFFF
func DecodeAddr(s string) (uint16, error) {
	addr, err := DecodeHex(s)

	if err != nil {
		return 0, err
	}

	if addr > 0xFFF {
		return 0, ErrAddressRange
	}

	return addr, nil
}

// Decodes a byte in the formats: 0xFF, xFF, #255, 255
func DecodeByte(s string) (uint8, error) {
	if strings.ContainsAny(s, "xX") {
		value, err := DecodeHex(s)

		if err != nil {
			return 0, err
		}

		if value > 0xFF {
			return 0, strconv.ErrRange
		}

		return uint8(value), nil
	}

	value, err := DecodeInt(s)

	if err != nil {
		return 0, err
	}

	if value < 0 || value > 0xFF {
		return 0, strconv.ErrRange
	}

	return uint8(value), nil
}

// Decodes a base-10 string in the formats: #123, 123
func DecodeInt(s string) (int16, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	result, err := strconv.ParseInt(s, 10, 16)

	if err != nil {
		return 0, err
	}

	return int16(result), nil
}

// Decodes a general purpose register name V0-VF, case insensitive
func DecodeRegister(s string) (uint8, error) {
	if len(s) != 2 || (s[0] != 'V' && s[0] != 'v') {
		return 0, ErrInvalidRegister
	}

	result, err := strconv.ParseUint(s[1:], 16, 8)

	if err != nil {
		return 0, ErrInvalidRegister
	}

	return uint8(result), nil
}
