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

package term

import (
	"bufio"
	"io"

	"github.com/lassandro/gochip8/pkg/machine"
)

const (
	SCREEN_COLS = machine.SCREEN_WIDTH
	SCREEN_ROWS = machine.SCREEN_HEIGHT / 2

	// Rows needed including the status line
	MIN_ROWS = SCREEN_ROWS + 1
)

const (
	ESC_HOME        = "\033[H"
	ESC_CLEAR       = "\033[2J"
	ESC_CLEAR_LINE  = "\033[K"
	ESC_HIDE_CURSOR = "\033[?25l"
	ESC_SHOW_CURSOR = "\033[?25h"
	ESC_RESET       = "\033[0m"
)

// Screen draws the display with half block characters, two pixel rows per
// terminal row.
type Screen struct {
	out    *bufio.Writer
	pixels [machine.SCREEN_HEIGHT][machine.SCREEN_WIDTH]bool
	status string
	dirty  bool
}

func NewScreen(out io.Writer) *Screen {
	return &Screen{out: bufio.NewWriter(out), dirty: true}
}

func (scr *Screen) Clear() {
	scr.pixels = [machine.SCREEN_HEIGHT][machine.SCREEN_WIDTH]bool{}
	scr.dirty = true
}

func (scr *Screen) SetPixel(x, y int, on bool) {
	if x < 0 || x >= machine.SCREEN_WIDTH || y < 0 || y >= machine.SCREEN_HEIGHT {
		return
	}

	scr.pixels[y][x] = on
	scr.dirty = true
}

func (scr *Screen) SetStatus(status string) {
	if len(status) > SCREEN_COLS {
		status = status[:SCREEN_COLS]
	}

	scr.status = status
	scr.dirty = true
}

// Present redraws the whole canvas if anything changed since the last call.
func (scr *Screen) Present() error {
	if !scr.dirty {
		return nil
	}

	scr.out.WriteString(ESC_HOME)

	for row := 0; row < SCREEN_ROWS; row++ {
		for x := 0; x < SCREEN_COLS; x++ {
			scr.out.WriteString(halfBlock(
				scr.pixels[row*2][x], scr.pixels[row*2+1][x],
			))
		}
		scr.out.WriteString("\r\n")
	}

	scr.out.WriteString(scr.status)
	scr.out.WriteString(ESC_CLEAR_LINE)

	scr.dirty = false

	return scr.out.Flush()
}

func (scr *Screen) enter() error {
	scr.out.WriteString(ESC_HIDE_CURSOR + ESC_CLEAR)
	scr.dirty = true

	return scr.out.Flush()
}

func (scr *Screen) leave() error {
	scr.out.WriteString(ESC_RESET + ESC_SHOW_CURSOR + "\r\n")

	return scr.out.Flush()
}

func halfBlock(top, bottom bool) string {
	switch {
	case top && bottom:
		return "█"
	case top:
		return "▀"
	case bottom:
		return "▄"
	}

	return " "
}
