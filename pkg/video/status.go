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

import "strings"

// wrapText breaks s into lines of at most cols characters, splitting on
// spaces where possible.
func wrapText(s string, cols int) []string {
	if cols < 1 {
		cols = 1
	}

	var lines []string
	var line string

	for _, word := range strings.Fields(s) {
		for len(word) > cols {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}

			lines = append(lines, word[:cols])
			word = word[cols:]
		}

		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= cols:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}

	if line != "" {
		lines = append(lines, line)
	}

	return lines
}
