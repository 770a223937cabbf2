//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

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
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"

	"github.com/lassandro/gochip8/pkg/keymap"
	"github.com/lassandro/gochip8/pkg/scheduler"
)

var ErrNotTerminal = errors.New("Terminal output requires an interactive terminal")

// Terminal is a text frontend drawing to out and reading keys from in.
type Terminal struct {
	*Screen
	*Keyboard

	in  *os.File
	raw *RawMode

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func Open(in, out *os.File, km keymap.KeyMap) (*Terminal, error) {
	if !xterm.IsTerminal(int(in.Fd())) || !xterm.IsTerminal(int(out.Fd())) {
		return nil, ErrNotTerminal
	}

	cols, rows, err := xterm.GetSize(int(out.Fd()))

	if err != nil {
		return nil, err
	}

	if cols < SCREEN_COLS || rows < MIN_ROWS {
		return nil, fmt.Errorf(
			"Terminal is %dx%d, at least %dx%d is needed",
			cols, rows, SCREEN_COLS, MIN_ROWS,
		)
	}

	raw, err := EnterRaw(int(in.Fd()))

	if err != nil {
		return nil, err
	}

	t := &Terminal{
		Screen:   NewScreen(out),
		Keyboard: NewKeyboard(km),
		in:       in,
		raw:      raw,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if err := t.enter(); err != nil {
		raw.Restore()
		return nil, err
	}

	go t.readInput()

	return t, nil
}

func (t *Terminal) readInput() {
	defer close(t.done)

	buffer := make([]byte, 32)
	fd := int(t.in.Fd())

	for {
		select {
		case <-t.stop:
			return
		default:
		}

		n, err := unix.Read(fd, buffer)

		if err == unix.EINTR || err == unix.EAGAIN {
			continue
		}

		if err != nil {
			t.post(scheduler.EVENT_QUIT)
			return
		}

		if n > 0 {
			t.Feed(buffer[:n])
		}
	}
}

// Close stops reading input and restores the terminal.
func (t *Terminal) Close() error {
	var err error

	t.once.Do(func() {
		close(t.stop)
		<-t.done

		t.leave()
		err = t.raw.Restore()
	})

	return err
}
