//go:build !headless

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

package audio

import (
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays a Tone through the system audio device.
type Beeper struct {
	*Tone

	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
}

func NewBeeper() (*Beeper, error) {
	tone := NewTone()

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   tone.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})

	if err != nil {
		return nil, err
	}

	<-ready

	beeper := &Beeper{Tone: tone, ctx: ctx}
	beeper.player = ctx.NewPlayer(tone)
	beeper.player.Play()

	return beeper, nil
}

func (beeper *Beeper) Close() error {
	beeper.mutex.Lock()
	defer beeper.mutex.Unlock()

	if beeper.player == nil {
		return nil
	}

	err := beeper.player.Close()
	beeper.player = nil

	return err
}
