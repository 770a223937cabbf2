//go:build headless

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
	"errors"
	"log/slog"

	"github.com/lassandro/gochip8/pkg/scheduler"
)

var ErrUnavailable = errors.New("Window output is not available in headless builds")

type Window struct {
	Logger *slog.Logger
}

func NewWindow(options Options) (*Window, error) {
	return nil, ErrUnavailable
}

func (w *Window) Clear()                     {}
func (w *Window) SetPixel(x, y int, on bool) {}
func (w *Window) Present() error             { return nil }
func (w *Window) IsPressed(key uint8) bool   { return false }
func (w *Window) Poll() scheduler.Event      { return scheduler.EVENT_QUIT }
func (w *Window) SetStatus(status string)    {}

func (w *Window) Run(loop func() error) error {
	return ErrUnavailable
}
