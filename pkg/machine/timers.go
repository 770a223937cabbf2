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

package machine

// Rate at which DT and ST count down, independent of instruction throughput.
const TIMER_HZ = 60

// Tick counts both timers down by one, stopping at zero.
func (mc *MachineState) Tick() {
	if mc.DT > 0 {
		mc.DT--
	}

	if mc.ST > 0 {
		mc.ST--
	}
}

// SoundActive reports whether the tone should currently be audible.
func (mc *MachineState) SoundActive() bool {
	return mc.ST > 0
}
