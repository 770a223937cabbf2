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

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lassandro/gochip8/pkg/machine"
)

// Scheduler drives a machine in real time. CPU steps, timer ticks and frame
// presentation run on separate cadences, all measured against elapsed
// wall-clock time.
type Scheduler struct {
	Machine  *machine.Machine
	Renderer Renderer
	Audio    Audio
	Events   Events
	Clock    Clock
	Logger   *slog.Logger

	Frames       uint64
	Instructions uint64
	Ticks        uint64

	config      Config
	cpuPeriod   time.Duration
	timerPeriod time.Duration
	framePeriod time.Duration

	cpuAcc   time.Duration
	timerAcc time.Duration

	presented [machine.SCREEN_HEIGHT][machine.SCREEN_WIDTH]bool
	cleared   bool
	tone      bool
	paused    bool
}

func New(mc *machine.Machine, config Config) (*Scheduler, error) {
	if config.CPUHz <= 0 || config.TimerHz <= 0 || config.FrameHz <= 0 {
		return nil, fmt.Errorf(
			"invalid rates: cpu %dHz, timer %dHz, frame %dHz",
			config.CPUHz, config.TimerHz, config.FrameHz,
		)
	}

	if config.MaxCatchUp <= 0 {
		config.MaxCatchUp = DefaultConfig().MaxCatchUp
	}

	return &Scheduler{
		Machine:     mc,
		Renderer:    NullRenderer{},
		Audio:       NullAudio{},
		Events:      NullEvents{},
		Clock:       realClock{},
		Logger:      slog.Default(),
		config:      config,
		cpuPeriod:   time.Second / time.Duration(config.CPUHz),
		timerPeriod: time.Second / time.Duration(config.TimerHz),
		framePeriod: time.Second / time.Duration(config.FrameHz),
	}, nil
}

func (s *Scheduler) Config() Config {
	return s.config
}

func (s *Scheduler) Paused() bool {
	return s.paused
}

func (s *Scheduler) SetPaused(paused bool) {
	s.paused = paused
}

// Reset restarts the loaded program and discards any pending time.
func (s *Scheduler) Reset() {
	s.Machine.Restart()
	s.cpuAcc = 0
	s.timerAcc = 0
}

// Run loops until the context is cancelled, the host asks to quit, the frame
// limit is reached, or the machine halts. Only a halt is reported as an error.
func (s *Scheduler) Run(ctx context.Context) error {
	last := s.Clock.Now()
	next := last

	for {
		if ctx.Err() != nil {
			return nil
		}

		events := s.Events.Poll()

		if events&EVENT_QUIT != 0 {
			s.Logger.Info("quit requested", "frames", s.Frames)
			return nil
		}

		if events&EVENT_RESET != 0 {
			s.Logger.Info("reset")
			s.Reset()
		}

		if events&EVENT_PAUSE != 0 {
			s.paused = !s.paused
			s.Logger.Info("pause", "paused", s.paused)
		}

		now := s.Clock.Now()
		elapsed := now.Sub(last)
		last = now

		if err := s.RunFrame(elapsed); err != nil {
			return err
		}

		if s.config.FrameLimit > 0 && s.Frames >= s.config.FrameLimit {
			return nil
		}

		next = next.Add(s.framePeriod)

		if now.Sub(next) > s.framePeriod {
			// Too far behind to catch up, start a fresh schedule
			s.Logger.Debug("frame overrun", "behind", now.Sub(next))
			next = now.Add(s.framePeriod)
		}

		if wait := next.Sub(s.Clock.Now()); wait > 0 {
			s.Clock.Sleep(ctx, wait)
		}
	}
}

// RunFrame emulates elapsed wall-clock time, then presents the display and
// updates the tone.
func (s *Scheduler) RunFrame(elapsed time.Duration) error {
	if elapsed > s.config.MaxCatchUp {
		s.Logger.Debug(
			"dropping emulated time",
			"elapsed", elapsed,
			"limit", s.config.MaxCatchUp,
		)
		elapsed = s.config.MaxCatchUp
	}

	if elapsed < 0 {
		elapsed = 0
	}

	var err error

	if !s.paused {
		s.cpuAcc += elapsed
		s.timerAcc += elapsed
		err = s.advance()
	}

	s.Frames++

	s.updateTone()

	if presentErr := s.present(); err == nil {
		err = presentErr
	}

	return err
}

// advance consumes both accumulators, interleaving steps and ticks in the
// order they fell due.
func (s *Scheduler) advance() error {
	trace := s.Logger.Enabled(context.Background(), slog.LevelDebug)

	for {
		cpuDue := s.cpuAcc >= s.cpuPeriod
		timerDue := s.timerAcc >= s.timerPeriod

		if !cpuDue && !timerDue {
			return nil
		}

		if timerDue && (!cpuDue || s.timerAcc-s.timerPeriod >= s.cpuAcc-s.cpuPeriod) {
			s.timerAcc -= s.timerPeriod
			s.Machine.State.Tick()
			s.Ticks++
			continue
		}

		s.cpuAcc -= s.cpuPeriod

		result, err := s.Machine.Step()

		if err != nil {
			s.Logger.Error("machine halted", "err", err)
			s.cpuAcc = 0
			s.timerAcc = 0
			return err
		}

		s.Instructions++

		if trace && !result.Waiting {
			s.Logger.Debug(
				"exec",
				"pc", fmt.Sprintf("0x%03X", result.PC),
				"opcode", fmt.Sprintf("%04X", result.Opcode),
				"instr", result.Instruction.String(),
			)
		}
	}
}

func (s *Scheduler) updateTone() {
	active := s.Machine.State.SoundActive() && !s.paused

	if active != s.tone {
		s.tone = active
		s.Audio.SetTone(active)
	}
}

func (s *Scheduler) present() error {
	display := &s.Machine.Display

	if !s.cleared {
		s.Renderer.Clear()
		s.presented = [machine.SCREEN_HEIGHT][machine.SCREEN_WIDTH]bool{}
		s.cleared = true
		display.Dirty = true
	}

	if display.Dirty {
		for y := range display.Pixels {
			for x, on := range display.Pixels[y] {
				if s.presented[y][x] != on {
					s.Renderer.SetPixel(x, y, on)
					s.presented[y][x] = on
				}
			}
		}

		display.Dirty = false
	}

	return s.Renderer.Present()
}
