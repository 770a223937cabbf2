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

package term_test

import (
	"testing"
	"time"

	"github.com/lassandro/gochip8/pkg/keymap"
	"github.com/lassandro/gochip8/pkg/scheduler"
	"github.com/lassandro/gochip8/pkg/term"
)

type testClock struct {
	now time.Time
}

func (clock *testClock) Now() time.Time {
	return clock.now
}

func setupKeyboard(km keymap.KeyMap) (*term.Keyboard, *testClock) {
	clock := &testClock{time.Unix(1000, 0)}

	kb := term.NewKeyboard(km)
	kb.Now = clock.Now

	return kb, clock
}

func TestKeyboardTranslate(t *testing.T) {
	type testCase struct {
		Name   string
		KeyMap keymap.KeyMap
		Input  string
		Keys   []uint8
		Events scheduler.Event
	}

	tests := []testCase{
		{"Cosmac Keys", keymap.Cosmac, "1qx", []uint8{0x1, 0x4, 0x0}, scheduler.EVENT_NONE},
		{"Cosmac Upper", keymap.Cosmac, "V", []uint8{0xF}, scheduler.EVENT_NONE},
		{"Hex Keys", keymap.Hex, "0aF", []uint8{0x0, 0xA, 0xF}, scheduler.EVENT_NONE},
		{"Unbound", keymap.Cosmac, "9", nil, scheduler.EVENT_NONE},
		{"Escape", keymap.Cosmac, "\033", nil, scheduler.EVENT_QUIT},
		{"Pause", keymap.Cosmac, "p", nil, scheduler.EVENT_PAUSE},
		{"Space", keymap.Hex, " ", nil, scheduler.EVENT_PAUSE},
		{"Reset", keymap.Cosmac, "\033[21~", nil, scheduler.EVENT_RESET},
		{"Arrow Skipped", keymap.Cosmac, "\033[Aw", []uint8{0x5}, scheduler.EVENT_NONE},
		{"SS3 Skipped", keymap.Hex, "\033OP1", []uint8{0x1}, scheduler.EVENT_NONE},
		{"Escape In Burst", keymap.Cosmac, "w\033", []uint8{0x5}, scheduler.EVENT_NONE},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			kb, _ := setupKeyboard(test.KeyMap)
			kb.Feed([]byte(test.Input))

			var want [16]bool
			for _, key := range test.Keys {
				want[key] = true
			}

			for key := uint8(0); key < 16; key++ {
				if have := kb.IsPressed(key); have != want[key] {
					t.Errorf("Key %X: want %v, have %v", key, want[key], have)
				}
			}

			if have := kb.Poll(); have != test.Events {
				t.Errorf("Events: want %v, have %v", test.Events, have)
			}

			if have := kb.Poll(); have != scheduler.EVENT_NONE {
				t.Errorf("Events not drained: have %v", have)
			}
		})
	}
}

func TestKeyboardHold(t *testing.T) {
	kb, clock := setupKeyboard(keymap.Cosmac)

	kb.Feed([]byte("w"))

	clock.now = clock.now.Add(term.HOLD_TIME - time.Millisecond)

	if !kb.IsPressed(0x5) {
		t.Error("Key released before the hold time")
	}

	// Auto-repeat extends the hold
	kb.Feed([]byte("w"))
	clock.now = clock.now.Add(term.HOLD_TIME - time.Millisecond)

	if !kb.IsPressed(0x5) {
		t.Error("Repeat did not extend the hold")
	}

	clock.now = clock.now.Add(time.Millisecond)

	if kb.IsPressed(0x5) {
		t.Error("Key still held after the hold time")
	}
}
