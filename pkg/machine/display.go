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

type Display struct {
	Pixels [SCREEN_HEIGHT][SCREEN_WIDTH]bool

	// Set whenever a pixel changes; cleared by whoever presents the frame.
	Dirty bool
}

func (d *Display) Clear() {
	for y := range d.Pixels {
		for x := range d.Pixels[y] {
			if d.Pixels[y][x] {
				d.Pixels[y][x] = false
				d.Dirty = true
			}
		}
	}
}

// Pixel reports the pixel at (x, y). Coordinates wrap in both directions.
func (d *Display) Pixel(x, y int) bool {
	x = ((x % SCREEN_WIDTH) + SCREEN_WIDTH) % SCREEN_WIDTH
	y = ((y % SCREEN_HEIGHT) + SCREEN_HEIGHT) % SCREEN_HEIGHT

	return d.Pixels[y][x]
}

// DrawSprite XORs an 8-pixel wide sprite onto the display with its top-left
// corner at (x, y). Coordinates wrap around both edges. It reports whether any
// lit pixel was turned off.
func (d *Display) DrawSprite(x, y uint8, sprite []byte) bool {
	collision := false

	for row, data := range sprite {
		py := (int(y) + row) % SCREEN_HEIGHT

		for col := 0; col < 8; col++ {
			if data&(0x80>>col) == 0 {
				continue
			}

			px := (int(x) + col) % SCREEN_WIDTH

			if d.Pixels[py][px] {
				collision = true
			}

			d.Pixels[py][px] = !d.Pixels[py][px]
			d.Dirty = true
		}
	}

	return collision
}
