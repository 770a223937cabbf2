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

package scheduler

import (
	"context"
	"time"
)

// Renderer presents the display. SetPixel is only called for cells whose
// state changed since the previous frame.
type Renderer interface {
	Clear()
	SetPixel(x, y int, on bool)
	Present() error
}

type Audio interface {
	SetTone(active bool)
}

type Event uint

const (
	EVENT_NONE  Event = 0
	EVENT_QUIT  Event = 1 << 0
	EVENT_PAUSE Event = 1 << 1
	EVENT_RESET Event = 1 << 2
)

// Events is polled once per frame for host requests.
type Events interface {
	Poll() Event
}

type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
}

type Config struct {
	CPUHz   int
	TimerHz int
	FrameHz int

	// Longest stretch of wall-clock time emulated in one frame. Anything
	// beyond it is dropped instead of replayed in a burst.
	MaxCatchUp time.Duration

	// Stop after this many frames, 0 runs until quit.
	FrameLimit uint64
}

func DefaultConfig() Config {
	return Config{
		CPUHz:      700,
		TimerHz:    60,
		FrameHz:    60,
		MaxCatchUp: 250 * time.Millisecond,
	}
}
