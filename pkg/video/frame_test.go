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

package video_test

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/lassandro/gochip8/pkg/video"
)

var (
	testOn  = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	testOff = color.RGBA{0x00, 0x00, 0x00, 0xFF}
)

func TestFrameSet(t *testing.T) {
	frame := video.NewFrame(testOn, testOff)

	frame.Set(3, 2, true)
	frame.Set(64, 0, true)
	frame.Set(-1, 0, true)

	img := frame.Image(1)

	for y := 0; y < video.FRAME_HEIGHT; y++ {
		for x := 0; x < video.FRAME_WIDTH; x++ {
			want := testOff
			if x == 3 && y == 2 {
				want = testOn
			}

			if have := img.RGBAAt(x, y); have != want {
				t.Fatalf("(%d, %d): want %v, have %v", x, y, want, have)
			}
		}
	}

	frame.Set(3, 2, false)

	if have := frame.Image(1).RGBAAt(3, 2); have != testOff {
		t.Errorf("(3, 2): want %v, have %v", testOff, have)
	}
}

func TestFrameCopy(t *testing.T) {
	front := video.NewFrame(testOn, testOff)
	back := video.NewFrame(testOn, testOff)

	back.Fill(true)
	front.CopyFrom(back)

	if !bytes.Equal(front.Pixels, back.Pixels) {
		t.Error("Frames differ after copy")
	}
}

func TestFramePNG(t *testing.T) {
	frame := video.NewFrame(testOn, testOff)
	frame.Set(0, 0, true)
	frame.Set(63, 31, true)

	data, err := frame.PNG(4)

	if err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(bytes.NewReader(data))

	if err != nil {
		t.Fatal(err)
	}

	bounds := img.Bounds()

	if bounds.Dx() != 256 || bounds.Dy() != 128 {
		t.Fatalf("Size: want 256x128, have %dx%d", bounds.Dx(), bounds.Dy())
	}

	type testCase struct {
		X, Y int
		Want color.RGBA
	}

	tests := []testCase{
		{0, 0, testOn},
		{3, 3, testOn},
		{4, 4, testOff},
		{252, 124, testOn},
		{255, 127, testOn},
		{251, 127, testOff},
	}

	for _, test := range tests {
		r, g, b, a := img.At(test.X, test.Y).RGBA()
		have := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}

		if have != test.Want {
			t.Errorf("(%d, %d): want %v, have %v", test.X, test.Y, test.Want, have)
		}
	}
}
