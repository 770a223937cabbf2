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
	"reflect"
	"testing"
)

func TestWrapText(t *testing.T) {
	type testCase struct {
		Name   string
		Input  string
		Cols   int
		Output []string
	}

	tests := []testCase{
		{"Empty", "", 10, nil},
		{"Short", "PAUSED", 10, []string{"PAUSED"}},
		{"Exact", "abc def", 7, []string{"abc def"}},
		{"Split", "abc def ghi", 7, []string{"abc def", "ghi"}},
		{"Spaces", "  abc   def  ", 20, []string{"abc def"}},
		{"Long Word", "abcdefghij kl", 4, []string{"abcd", "efgh", "ij", "kl"}},
		{
			"Halt",
			"[0x202] FFFF: Invalid opcode",
			16,
			[]string{"[0x202] FFFF:", "Invalid opcode"},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			have := wrapText(test.Input, test.Cols)

			if !reflect.DeepEqual(have, test.Output) {
				t.Errorf("want %#v, have %#v", test.Output, have)
			}
		})
	}
}
