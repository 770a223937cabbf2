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

package audio

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

const (
	SAMPLE_RATE    = 44100
	TONE_FREQUENCY = 440
	TONE_VOLUME    = 0.2
)

const SAMPLE_SIZE = 4 // float32 little endian

// Tone is a mono square wave generator. It produces silence while inactive
// and restarts its phase on each activation so beeps begin cleanly.
type Tone struct {
	SampleRate int
	Frequency  int
	Volume     float32

	active  atomic.Bool
	restart atomic.Bool
	phase   int
}

func NewTone() *Tone {
	return &Tone{
		SampleRate: SAMPLE_RATE,
		Frequency:  TONE_FREQUENCY,
		Volume:     TONE_VOLUME,
	}
}

func (tone *Tone) SetTone(active bool) {
	if active && !tone.active.Swap(true) {
		tone.restart.Store(true)
	} else if !active {
		tone.active.Store(false)
	}
}

func (tone *Tone) Active() bool {
	return tone.active.Load()
}

// Read fills p with whole float32 samples. A trailing partial sample is left
// unwritten and excluded from n.
func (tone *Tone) Read(p []byte) (int, error) {
	count := len(p) / SAMPLE_SIZE
	active := tone.active.Load()

	if tone.restart.Swap(false) {
		tone.phase = 0
	}

	period := tone.SampleRate / tone.Frequency
	if period < 2 {
		period = 2
	}

	for i := 0; i < count; i++ {
		var sample float32

		if active {
			if tone.phase < period/2 {
				sample = tone.Volume
			} else {
				sample = -tone.Volume
			}

			tone.phase = (tone.phase + 1) % period
		}

		binary.LittleEndian.PutUint32(
			p[i*SAMPLE_SIZE:], math.Float32bits(sample),
		)
	}

	return count * SAMPLE_SIZE, nil
}
