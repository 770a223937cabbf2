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

package scheduler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/lassandro/gochip8/pkg/scheduler"
)

const frame = time.Second / 60

type testClock struct {
	now   time.Time
	slept time.Duration
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Sleep(_ context.Context, d time.Duration) {
	c.now = c.now.Add(d)
	c.slept += d
}

type testRenderer struct {
	clears   int
	pixels   int
	presents int
	screen   [machine.SCREEN_HEIGHT][machine.SCREEN_WIDTH]bool
}

func (r *testRenderer) Clear() {
	r.clears++
	r.screen = [machine.SCREEN_HEIGHT][machine.SCREEN_WIDTH]bool{}
}

func (r *testRenderer) SetPixel(x, y int, on bool) {
	r.pixels++
	r.screen[y][x] = on
}

func (r *testRenderer) Present() error {
	r.presents++
	return nil
}

type testAudio struct {
	tones []bool
}

func (a *testAudio) SetTone(active bool) {
	a.tones = append(a.tones, active)
}

type testEvents struct {
	polls  int
	events map[int]scheduler.Event
}

func (e *testEvents) Poll() scheduler.Event {
	e.polls++
	return e.events[e.polls]
}

// Loops forever at 0x200
var idleROM = []byte{0x12, 0x00}

func newScheduler(t *testing.T, rom []byte, cpuHz int) (*scheduler.Scheduler, *machine.Machine) {
	t.Helper()

	var mc machine.Machine
	if err := mc.LoadBytes(rom); err != nil {
		t.Fatal(err)
	}

	config := scheduler.DefaultConfig()
	config.CPUHz = cpuHz

	s, err := scheduler.New(&mc, config)
	if err != nil {
		t.Fatal(err)
	}

	s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	return s, &mc
}

func TestNewInvalidConfig(t *testing.T) {
	var mc machine.Machine

	for _, config := range []scheduler.Config{
		{CPUHz: 0, TimerHz: 60, FrameHz: 60},
		{CPUHz: 700, TimerHz: 0, FrameHz: 60},
		{CPUHz: 700, TimerHz: 60, FrameHz: -1},
	} {
		if _, err := scheduler.New(&mc, config); err == nil {
			t.Errorf("Expected error for %+v", config)
		}
	}
}

func TestTimerRate(t *testing.T) {
	for _, cpuHz := range []int{60, 500, 700, 1000} {
		s, mc := newScheduler(t, idleROM, cpuHz)
		mc.State.DT = 120

		previous := mc.State.DT

		for i := 0; i < 60; i++ {
			if err := s.RunFrame(frame); err != nil {
				t.Fatal(err)
			}

			if mc.State.DT > previous {
				t.Fatalf("DT increased at %dHz\nwant:<=%d\nhave:%d", cpuHz, previous, mc.State.DT)
			}
			previous = mc.State.DT
		}

		if mc.State.DT != 60 {
			t.Errorf("DT mismatch at %dHz\nwant:60\nhave:%d", cpuHz, mc.State.DT)
		}

		if s.Ticks != 60 {
			t.Errorf("Tick count mismatch at %dHz\nwant:60\nhave:%d", cpuHz, s.Ticks)
		}

		if diff := int(s.Instructions) - cpuHz; diff < -1 || diff > 1 {
			t.Errorf("Instruction count mismatch\nwant:%d\nhave:%d", cpuHz, s.Instructions)
		}

		for i := 0; i < 120; i++ {
			s.RunFrame(frame)
		}

		if mc.State.DT != 0 {
			t.Errorf("DT did not settle at 0\nhave:%d", mc.State.DT)
		}
	}
}

func TestCatchUpLimit(t *testing.T) {
	s, _ := newScheduler(t, idleROM, 1000)

	if err := s.RunFrame(10 * time.Second); err != nil {
		t.Fatal(err)
	}

	if s.Instructions > 251 {
		t.Errorf("Catch-up not limited\nwant:<=251\nhave:%d", s.Instructions)
	}
}

func TestPresent(t *testing.T) {
	rom := []byte{
		0xF0, 0x29, // LD F, V0
		0xD1, 0x15, // DRW V1, V1, 5
		0x12, 0x04, // JP 0x204
	}

	s, mc := newScheduler(t, rom, 600)
	renderer := &testRenderer{}
	s.Renderer = renderer

	if err := s.RunFrame(frame); err != nil {
		t.Fatal(err)
	}

	if renderer.clears != 1 {
		t.Errorf("Clear count mismatch\nwant:1\nhave:%d", renderer.clears)
	}

	// Glyph 0 lights 14 pixels
	if renderer.pixels != 14 {
		t.Errorf("SetPixel count mismatch\nwant:14\nhave:%d", renderer.pixels)
	}

	if renderer.screen != mc.Display.Pixels {
		t.Error("Renderer does not match display")
	}

	for i := 0; i < 5; i++ {
		s.RunFrame(frame)
	}

	if renderer.pixels != 14 {
		t.Errorf("Unchanged frames redrew pixels\nwant:14\nhave:%d", renderer.pixels)
	}

	if renderer.presents != 6 {
		t.Errorf("Present count mismatch\nwant:6\nhave:%d", renderer.presents)
	}
}

func TestTone(t *testing.T) {
	s, mc := newScheduler(t, idleROM, 700)
	audio := &testAudio{}
	s.Audio = audio
	mc.State.ST = 3

	for i := 0; i < 5; i++ {
		s.RunFrame(frame)
	}

	if len(audio.tones) != 2 || !audio.tones[0] || audio.tones[1] {
		t.Errorf("Tone sequence mismatch\nwant:[true false]\nhave:%v", audio.tones)
	}
}

func TestPause(t *testing.T) {
	s, mc := newScheduler(t, idleROM, 700)
	mc.State.DT = 10

	s.SetPaused(true)

	for i := 0; i < 5; i++ {
		s.RunFrame(frame)
	}

	if s.Instructions != 0 || mc.State.DT != 10 {
		t.Errorf(
			"Paused scheduler advanced\nhave:%d instructions, DT=%d",
			s.Instructions,
			mc.State.DT,
		)
	}

	if s.Frames != 5 {
		t.Errorf("Paused scheduler stopped presenting\nwant:5\nhave:%d", s.Frames)
	}
}

func TestRun(t *testing.T) {
	t.Run("Quit", func(t *testing.T) {
		s, _ := newScheduler(t, idleROM, 700)
		clock := &testClock{now: time.Unix(0, 0)}
		s.Clock = clock
		s.Events = &testEvents{events: map[int]scheduler.Event{4: scheduler.EVENT_QUIT}}

		if err := s.Run(context.Background()); err != nil {
			t.Fatal(err)
		}

		if s.Frames != 3 {
			t.Errorf("Frame count mismatch\nwant:3\nhave:%d", s.Frames)
		}

		if clock.slept != 3*frame {
			t.Errorf("Throttle mismatch\nwant:%v\nhave:%v", 3*frame, clock.slept)
		}
	})

	t.Run("Frame Limit", func(t *testing.T) {
		var mc machine.Machine
		if err := mc.LoadBytes(idleROM); err != nil {
			t.Fatal(err)
		}

		config := scheduler.DefaultConfig()
		config.CPUHz = 600
		config.FrameLimit = 61

		s, err := scheduler.New(&mc, config)
		if err != nil {
			t.Fatal(err)
		}

		s.Clock = &testClock{now: time.Unix(0, 0)}
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

		if err := s.Run(context.Background()); err != nil {
			t.Fatal(err)
		}

		if s.Frames != 61 {
			t.Errorf("Frame count mismatch\nwant:61\nhave:%d", s.Frames)
		}

		// The first frame emulates no time, the next 60 emulate one second
		if diff := int(s.Instructions) - 600; diff < -1 || diff > 1 {
			t.Errorf("Instruction count mismatch\nwant:600\nhave:%d", s.Instructions)
		}
	})

	t.Run("Halt", func(t *testing.T) {
		s, mc := newScheduler(t, []byte{0xFF, 0xFF}, 700)
		s.Clock = &testClock{now: time.Unix(0, 0)}

		err := s.Run(context.Background())

		if !errors.Is(err, machine.ErrInvalidOpcode) {
			t.Fatalf("Error mismatch\nwant:%v\nhave:%v", machine.ErrInvalidOpcode, err)
		}

		if mc.Halt == nil {
			t.Error("Machine not marked halted")
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		s, _ := newScheduler(t, idleROM, 700)
		s.Clock = &testClock{now: time.Unix(0, 0)}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := s.Run(ctx); err != nil {
			t.Fatal(err)
		}

		if s.Frames != 0 {
			t.Errorf("Cancelled run executed frames\nhave:%d", s.Frames)
		}
	})

	t.Run("Reset And Pause Events", func(t *testing.T) {
		s, mc := newScheduler(t, []byte{0x60, 0x01, 0x70, 0x01, 0x12, 0x02}, 700)
		s.Clock = &testClock{now: time.Unix(0, 0)}
		s.Events = &testEvents{events: map[int]scheduler.Event{
			3: scheduler.EVENT_RESET | scheduler.EVENT_PAUSE,
			4: scheduler.EVENT_QUIT,
		}}

		if err := s.Run(context.Background()); err != nil {
			t.Fatal(err)
		}

		if !s.Paused() {
			t.Error("Pause event not applied")
		}

		// Reset then paused before any further step
		if mc.State.PC != 0x200 || mc.State.V[0] != 0 {
			t.Errorf("Reset not applied\nhave:PC=%#04x V0=%d", mc.State.PC, mc.State.V[0])
		}
	})
}
