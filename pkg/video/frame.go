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

package video

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/lassandro/gochip8/pkg/machine"
)

const (
	FRAME_WIDTH  = machine.SCREEN_WIDTH
	FRAME_HEIGHT = machine.SCREEN_HEIGHT
)

var (
	DefaultForeground = color.RGBA{0xFF, 0xB0, 0x00, 0xFF}
	DefaultBackground = color.RGBA{0x1A, 0x10, 0x00, 0xFF}
)

// Frame is an RGBA image of the display, one texel per CHIP-8 pixel.
type Frame struct {
	Pixels     []byte
	Foreground color.RGBA
	Background color.RGBA
}

func NewFrame(fg, bg color.RGBA) *Frame {
	frame := &Frame{
		Pixels:     make([]byte, FRAME_WIDTH*FRAME_HEIGHT*4),
		Foreground: fg,
		Background: bg,
	}

	frame.Fill(false)

	return frame
}

func (frame *Frame) Set(x, y int, on bool) {
	if x < 0 || x >= FRAME_WIDTH || y < 0 || y >= FRAME_HEIGHT {
		return
	}

	c := frame.Background
	if on {
		c = frame.Foreground
	}

	i := (y*FRAME_WIDTH + x) * 4
	frame.Pixels[i+0] = c.R
	frame.Pixels[i+1] = c.G
	frame.Pixels[i+2] = c.B
	frame.Pixels[i+3] = c.A
}

func (frame *Frame) Fill(on bool) {
	for y := 0; y < FRAME_HEIGHT; y++ {
		for x := 0; x < FRAME_WIDTH; x++ {
			frame.Set(x, y, on)
		}
	}
}

func (frame *Frame) CopyFrom(other *Frame) {
	copy(frame.Pixels, other.Pixels)
}

// Image returns the frame enlarged by scale, sharing no memory with it.
func (frame *Frame) Image(scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, FRAME_WIDTH*scale, FRAME_HEIGHT*scale))

	for y := 0; y < FRAME_HEIGHT*scale; y++ {
		for x := 0; x < FRAME_WIDTH*scale; x++ {
			i := ((y/scale)*FRAME_WIDTH + x/scale) * 4
			j := img.PixOffset(x, y)
			copy(img.Pix[j:j+4], frame.Pixels[i:i+4])
		}
	}

	return img
}

func (frame *Frame) PNG(scale int) ([]byte, error) {
	var buffer bytes.Buffer

	if err := png.Encode(&buffer, frame.Image(scale)); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
