//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

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
	"errors"
	"os"

	"github.com/lassandro/gochip8/pkg/keymap"
)

var ErrNotTerminal = errors.New("Terminal output is only supported on unix systems")

type Terminal struct {
	*Screen
	*Keyboard
}

func Open(in, out *os.File, km keymap.KeyMap) (*Terminal, error) {
	return nil, ErrNotTerminal
}

func (t *Terminal) Close() error {
	return nil
}
