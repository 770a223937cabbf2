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

type NullRenderer struct{}

func (NullRenderer) Clear() {}
func (NullRenderer) SetPixel(int, int, bool) {}
func (NullRenderer) Present() error { return nil }

type NullAudio struct{}

func (NullAudio) SetTone(bool) {}

type NullEvents struct{}

func (NullEvents) Poll() Event { return EVENT_NONE }

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
