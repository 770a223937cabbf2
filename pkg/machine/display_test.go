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

package machine_test

import (
	"testing"

	"github.com/lassandro/gochip8/pkg/machine"
)

func TestDisplayDrawSprite(t *testing.T) {
	var d machine.Display

	sprite := machine.Font[0xF*machine.FONT_GLYPH_SIZE : 0x10*machine.FONT_GLYPH_SIZE]

	if d.DrawSprite(10, 10, sprite) {
		t.Error("Collision on blank display")
	}

	if !d.Dirty {
		t.Error("Draw did not mark display dirty")
	}

	// Zero bits leave existing pixels untouched
	d.Dirty = false
	d.DrawSprite(10, 10, []byte{0x00})

	if d.Dirty || !d.Pixel(10, 10) {
		t.Error("Zero sprite bits modified the display")
	}

	if !d.DrawSprite(10, 10, sprite) {
		t.Error("Collision not reported")
	}

	var blank machine.Display
	if d.Pixels != blank.Pixels {
		t.Error("XOR redraw did not restore the display")
	}
}

func TestDisplayWrap(t *testing.T) {
	var d machine.Display

	d.DrawSprite(63, 31, []byte{0xC0, 0xC0})

	for _, p := range [][2]int{{63, 31}, {0, 31}, {63, 0}, {0, 0}} {
		if !d.Pixel(p[0], p[1]) {
			t.Errorf("Pixel (%d,%d) not lit after wrap", p[0], p[1])
		}
	}
}

func TestDisplayClear(t *testing.T) {
	var d machine.Display

	d.Clear()

	if d.Dirty {
		t.Error("Clearing a blank display marked it dirty")
	}

	d.DrawSprite(0, 0, []byte{0x80})
	d.Dirty = false
	d.Clear()

	if !d.Dirty || d.Pixel(0, 0) {
		t.Error("Clear did not turn off lit pixel")
	}
}

func TestDisplayPixelWrap(t *testing.T) {
	var d machine.Display

	d.Pixels[31][63] = true
	d.Pixels[0][0] = true

	type testCase struct {
		X, Y int
		Want bool
	}

	tests := []testCase{
		{-1, -1, true},
		{63, -33, true},
		{-64, 32, true},
		{64, 0, true},
		{-2, -1, false},
	}

	for _, test := range tests {
		if have := d.Pixel(test.X, test.Y); have != test.Want {
			t.Errorf("(%d, %d)\nwant:%v\nhave:%v", test.X, test.Y, test.Want, have)
		}
	}
}
