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
	"golang.org/x/sys/unix"
)

// RawMode holds the terminal attributes to restore on exit.
type RawMode struct {
	fd      int
	restore unix.Termios
}

// EnterRaw disables echo and line buffering on fd. Reads return after at most
// a tenth of a second whether or not input arrived.
func EnterRaw(fd int) (*RawMode, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)

	if err != nil {
		return nil, err
	}

	raw := &RawMode{fd: fd, restore: *termios}
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL | unix.IXON
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &termstate); err != nil {
		return nil, err
	}

	return raw, nil
}

func (raw *RawMode) Restore() error {
	return unix.IoctlSetTermios(raw.fd, ioctlSetTermios, &raw.restore)
}
