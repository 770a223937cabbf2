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

package encoding_test

import (
	"errors"
	"testing"

	"github.com/lassandro/gochip8/pkg/encoding"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		Input string
		Want  uint16
		Fail  bool
	}{
		{"0x200", 0x200, false},
		{"x200", 0x200, false},
		{"0XFFFF", 0xFFFF, false},
		{"200", 0, true},
		{"0x", 0, true},
		{"0x10000", 0, true},
		{"1x00", 0, true},
	}

	for _, test := range tests {
		have, err := encoding.DecodeHex(test.Input)

		if test.Fail {
			if err == nil {
				t.Errorf("Expected error for %q\nhave:%#04x", test.Input, have)
			}
			continue
		}

		if err != nil || have != test.Want {
			t.Errorf("Decode mismatch for %q\nwant:%#04x\nhave:%#04x (%v)", test.Input, test.Want, have, err)
		}
	}
}

func TestDecodeAddr(t *testing.T) {
	if addr, err := encoding.DecodeAddr("0xFFF"); err != nil || addr != 0xFFF {
		t.Errorf("Decode mismatch\nwant:0xfff\nhave:%#04x (%v)", addr, err)
	}

	if _, err := encoding.DecodeAddr("0x1000"); !errors.Is(err, encoding.ErrAddressRange) {
		t.Errorf("Error mismatch\nwant:%v\nhave:%v", encoding.ErrAddressRange, err)
	}
}

func TestDecodeByte(t *testing.T) {
	tests := []struct {
		Input string
		Want  uint8
		Fail  bool
	}{
		{"0xFF", 0xFF, false},
		{"x0a", 0x0A, false},
		{"#157", 157, false},
		{"42", 42, false},
		{"256", 0, true},
		{"-1", 0, true},
		{"0x100", 0, true},
		{"abc", 0, true},
	}

	for _, test := range tests {
		have, err := encoding.DecodeByte(test.Input)

		if test.Fail {
			if err == nil {
				t.Errorf("Expected error for %q\nhave:%#02x", test.Input, have)
			}
			continue
		}

		if err != nil || have != test.Want {
			t.Errorf("Decode mismatch for %q\nwant:%#02x\nhave:%#02x (%v)", test.Input, test.Want, have, err)
		}
	}
}

func TestDecodeRegister(t *testing.T) {
	for i, name := range []string{"V0", "v1", "VA", "vf"} {
		want := []uint8{0x0, 0x1, 0xA, 0xF}[i]

		if have, err := encoding.DecodeRegister(name); err != nil || have != want {
			t.Errorf("Decode mismatch for %q\nwant:%d\nhave:%d (%v)", name, want, have, err)
		}
	}

	for _, name := range []string{"", "V", "VG", "R1", "V10"} {
		if _, err := encoding.DecodeRegister(name); !errors.Is(err, encoding.ErrInvalidRegister) {
			t.Errorf("Expected error for %q\nhave:%v", name, err)
		}
	}
}
