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
	"sync"
	"time"

	"github.com/lassandro/gochip8/pkg/keymap"
	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/lassandro/gochip8/pkg/scheduler"
)

// Terminals report presses but never releases, so a key counts as held for
// HOLD_TIME after its most recent press or auto-repeat.
const HOLD_TIME = 200 * time.Millisecond

const (
	KEY_ESCAPE = 0x1B
	KEY_SPACE  = ' '
)

// Escape sequence sent by F10
const SEQ_RESET = "\033[21~"

type Keyboard struct {
	KeyMap keymap.KeyMap
	Hold   time.Duration
	Now    func() time.Time

	mutex   sync.Mutex
	pressed [machine.KEYS]time.Time
	events  scheduler.Event
}

func NewKeyboard(km keymap.KeyMap) *Keyboard {
	return &Keyboard{KeyMap: km, Hold: HOLD_TIME, Now: time.Now}
}

// Feed consumes one read from the terminal. A read holding a lone escape is
// the Escape key, longer escape sequences are skipped unless they are F10.
func (kb *Keyboard) Feed(data []byte) {
	now := kb.Now()

	kb.mutex.Lock()
	defer kb.mutex.Unlock()

	if len(data) == 1 && data[0] == KEY_ESCAPE {
		kb.events |= scheduler.EVENT_QUIT
		return
	}

	for i := 0; i < len(data); i++ {
		if data[i] == KEY_ESCAPE {
			end := escapeEnd(data, i)

			if string(data[i:end]) == SEQ_RESET {
				kb.events |= scheduler.EVENT_RESET
			}

			i = end - 1
			continue
		}

		if key, ok := kb.KeyMap.Key(rune(data[i])); ok {
			kb.pressed[key] = now
			continue
		}

		switch data[i] {
		case 'p', 'P', KEY_SPACE:
			kb.events |= scheduler.EVENT_PAUSE
		}
	}
}

// escapeEnd returns the index just past the escape sequence starting at i.
func escapeEnd(data []byte, i int) int {
	if i+1 >= len(data) {
		return i + 1
	}

	switch data[i+1] {
	case '[':
		// CSI: parameters then a final byte in 0x40-0x7E
		for j := i + 2; j < len(data); j++ {
			if data[j] >= 0x40 && data[j] <= 0x7E {
				return j + 1
			}
		}
		return len(data)
	case 'O':
		// SS3: one final byte
		if i+2 < len(data) {
			return i + 3
		}
		return len(data)
	}

	return i + 2
}

func (kb *Keyboard) IsPressed(key uint8) bool {
	kb.mutex.Lock()
	defer kb.mutex.Unlock()

	pressed := kb.pressed[key&0xF]

	return !pressed.IsZero() && kb.Now().Sub(pressed) < kb.Hold
}

func (kb *Keyboard) Poll() scheduler.Event {
	kb.mutex.Lock()
	defer kb.mutex.Unlock()

	events := kb.events
	kb.events = scheduler.EVENT_NONE

	return events
}

func (kb *Keyboard) post(event scheduler.Event) {
	kb.mutex.Lock()
	kb.events |= event
	kb.mutex.Unlock()
}
