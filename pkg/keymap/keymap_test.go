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

package keymap_test

import (
	"testing"

	"github.com/lassandro/gochip8/pkg/keymap"
)

func TestByName(t *testing.T) {
	for _, name := range keymap.Names {
		if _, err := keymap.ByName(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}

	if _, err := keymap.ByName("dvorak"); err == nil {
		t.Error("Expected an error for an unknown keymap")
	}
}

func TestKey(t *testing.T) {
	type testCase struct {
		Name   string
		KeyMap keymap.KeyMap
		Rune   rune
		Key    uint8
		Found  bool
	}

	tests := []testCase{
		{"Cosmac 1", keymap.Cosmac, '1', 0x1, true},
		{"Cosmac X", keymap.Cosmac, 'x', 0x0, true},
		{"Cosmac 4", keymap.Cosmac, '4', 0xC, true},
		{"Cosmac V", keymap.Cosmac, 'V', 0xF, true},
		{"Cosmac Z", keymap.Cosmac, 'z', 0xA, true},
		{"Cosmac Unbound", keymap.Cosmac, '9', 0, false},
		{"Hex 0", keymap.Hex, '0', 0x0, true},
		{"Hex a", keymap.Hex, 'a', 0xA, true},
		{"Hex F", keymap.Hex, 'F', 0xF, true},
		{"Hex Unbound", keymap.Hex, 'G', 0, false},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			key, found := test.KeyMap.Key(test.Rune)

			if found != test.Found {
				t.Fatalf("Found: want %v, have %v", test.Found, found)
			}

			if key != test.Key {
				t.Errorf("Key: want %X, have %X", test.Key, key)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	for _, name := range keymap.Names {
		km, _ := keymap.ByName(name)
		seen := make(map[rune]bool)

		for _, r := range km {
			if seen[r] {
				t.Errorf("%s: '%c' is bound twice", name, r)
			}
			seen[r] = true
		}
	}
}
