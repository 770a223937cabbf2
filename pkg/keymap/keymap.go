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

package keymap

import (
	"fmt"
	"unicode"

	"github.com/lassandro/gochip8/pkg/machine"
)

// KeyMap assigns a host keyboard character to each of the 16 keypad keys,
// indexed by keypad value.
type KeyMap [machine.KEYS]rune

// The COSMAC VIP keypad laid over the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var Cosmac = KeyMap{
	'X', '1', '2', '3',
	'Q', 'W', 'E', 'A',
	'S', 'D', 'Z', 'C',
	'4', 'R', 'F', 'V',
}

// Hex maps each keypad key to the keyboard character of its hex digit.
var Hex = KeyMap{
	'0', '1', '2', '3',
	'4', '5', '6', '7',
	'8', '9', 'A', 'B',
	'C', 'D', 'E', 'F',
}

var Names = []string{"cosmac", "hex"}

func ByName(name string) (KeyMap, error) {
	switch name {
	case "cosmac":
		return Cosmac, nil
	case "hex":
		return Hex, nil
	}

	return KeyMap{}, fmt.Errorf("Unknown keymap '%s'", name)
}

// Key returns the keypad key bound to r. Letters match in either case.
func (km KeyMap) Key(r rune) (uint8, bool) {
	r = unicode.ToUpper(r)

	for key, bound := range km {
		if bound == r {
			return uint8(key), true
		}
	}

	return 0, false
}
