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

package video

import (
	"fmt"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/lassandro/gochip8/pkg/machine"
	"github.com/lassandro/gochip8/pkg/scheduler"
)

const (
	GLYPH_WIDTH  = 7
	GLYPH_HEIGHT = 13
)

var hostKeys = map[rune]ebiten.Key{
	'0': ebiten.KeyDigit0, '1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2,
	'3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4, '5': ebiten.KeyDigit5,
	'6': ebiten.KeyDigit6, '7': ebiten.KeyDigit7, '8': ebiten.KeyDigit8,
	'9': ebiten.KeyDigit9,
	'A': ebiten.KeyA, 'B': ebiten.KeyB, 'C': ebiten.KeyC, 'D': ebiten.KeyD,
	'E': ebiten.KeyE, 'F': ebiten.KeyF, 'G': ebiten.KeyG, 'H': ebiten.KeyH,
	'I': ebiten.KeyI, 'J': ebiten.KeyJ, 'K': ebiten.KeyK, 'L': ebiten.KeyL,
	'M': ebiten.KeyM, 'N': ebiten.KeyN, 'O': ebiten.KeyO, 'P': ebiten.KeyP,
	'Q': ebiten.KeyQ, 'R': ebiten.KeyR, 'S': ebiten.KeyS, 'T': ebiten.KeyT,
	'U': ebiten.KeyU, 'V': ebiten.KeyV, 'W': ebiten.KeyW, 'X': ebiten.KeyX,
	'Y': ebiten.KeyY, 'Z': ebiten.KeyZ,
}

func hostKey(r rune) (ebiten.Key, bool) {
	key, ok := hostKeys[r]
	return key, ok
}

// Window is an ebiten frontend. It renders the display, reads the keypad
// and reports host events to the scheduler.
//
// Update and Draw run on the ebiten goroutine, the Renderer, Keypad and
// Events methods on the scheduler goroutine. They share only the front
// frame, the key state and pending events, all guarded by mutex.
type Window struct {
	Logger *slog.Logger

	options Options
	keys    [machine.KEYS]ebiten.Key

	back  *Frame
	front *Frame
	image *ebiten.Image
	shade *ebiten.Image
	face  *text.GoXFace

	mutex  sync.RWMutex
	held   [machine.KEYS]bool
	events scheduler.Event
	paused bool
	status string

	fullscreen bool
	stopped    atomic.Bool

	clipboardOnce sync.Once
	clipboardOK   bool
}

func NewWindow(options Options) (*Window, error) {
	if options.Scale < 1 {
		return nil, fmt.Errorf("Invalid window scale %d", options.Scale)
	}

	window := &Window{
		Logger:  slog.Default(),
		options: options,
		back:    NewFrame(options.Foreground, options.Background),
		front:   NewFrame(options.Foreground, options.Background),
	}

	for key, r := range options.KeyMap {
		host, ok := hostKey(r)

		if !ok {
			return nil, fmt.Errorf("Key '%c' cannot be bound to %X", r, key)
		}

		window.keys[key] = host
	}

	return window, nil
}

func (w *Window) Clear() {
	w.back.Fill(false)
}

func (w *Window) SetPixel(x, y int, on bool) {
	w.back.Set(x, y, on)
}

func (w *Window) Present() error {
	w.mutex.Lock()
	w.front.CopyFrom(w.back)
	w.mutex.Unlock()

	return nil
}

func (w *Window) IsPressed(key uint8) bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	return w.held[key&0xF]
}

func (w *Window) Poll() scheduler.Event {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	events := w.events
	w.events = scheduler.EVENT_NONE

	return events
}

// SetStatus shows a message over the display, an empty string hides it.
func (w *Window) SetStatus(status string) {
	w.mutex.Lock()
	w.status = status
	w.mutex.Unlock()
}

func (w *Window) post(event scheduler.Event) {
	w.mutex.Lock()
	w.events |= event
	w.mutex.Unlock()
}

// Run opens the window and blocks until it closes. It must be called from
// the main goroutine. loop runs alongside on its own goroutine; when it fails
// its error stays on screen until the window is closed.
func (w *Window) Run(loop func() error) error {
	ebiten.SetWindowSize(
		FRAME_WIDTH*w.options.Scale, FRAME_HEIGHT*w.options.Scale,
	)
	ebiten.SetWindowTitle(w.options.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	result := make(chan error, 1)

	go func() {
		err := loop()

		if err != nil {
			w.SetStatus(err.Error())
		} else {
			w.stopped.Store(true)
		}

		result <- err
	}()

	err := ebiten.RunGame(w)
	w.post(scheduler.EVENT_QUIT)

	if loopErr := <-result; loopErr != nil {
		return loopErr
	}

	return err
}

func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.post(scheduler.EVENT_QUIT)
		return ebiten.Termination
	}

	if w.stopped.Load() {
		return ebiten.Termination
	}

	var held [machine.KEYS]bool
	for key, host := range w.keys {
		held[key] = ebiten.IsKeyPressed(host)
	}

	w.mutex.Lock()
	w.held = held

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.events |= scheduler.EVENT_PAUSE
		w.paused = !w.paused
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		w.events |= scheduler.EVENT_RESET
	}
	w.mutex.Unlock()

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		w.fullscreen = !w.fullscreen
		ebiten.SetFullscreen(w.fullscreen)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		w.copyScreenshot()
	}

	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(FRAME_WIDTH, FRAME_HEIGHT)
	}

	w.mutex.RLock()
	w.image.WritePixels(w.front.Pixels)
	status := w.status
	paused := w.paused
	w.mutex.RUnlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.options.Scale), float64(w.options.Scale))
	screen.DrawImage(w.image, op)

	if status == "" && paused {
		status = "PAUSED"
	}

	if status != "" {
		w.drawStatus(screen, status)
	}
}

func (w *Window) Layout(_, _ int) (int, int) {
	return FRAME_WIDTH * w.options.Scale, FRAME_HEIGHT * w.options.Scale
}

func (w *Window) drawStatus(screen *ebiten.Image, status string) {
	width := FRAME_WIDTH * w.options.Scale
	lines := wrapText(status, (width-2*GLYPH_WIDTH)/GLYPH_WIDTH)

	if w.shade == nil {
		w.shade = ebiten.NewImage(1, 1)
		w.shade.Fill(color.RGBA{0x00, 0x00, 0x00, 0xC0})
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width), float64((len(lines)+1)*GLYPH_HEIGHT))
	screen.DrawImage(w.shade, op)

	if w.face == nil {
		w.face = text.NewGoXFace(basicfont.Face7x13)
	}

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(GLYPH_WIDTH, float64(i*GLYPH_HEIGHT+GLYPH_HEIGHT/2))
		op.ColorScale.ScaleWithColor(w.options.Foreground)
		text.Draw(screen, line, w.face, op)
	}
}

func (w *Window) copyScreenshot() {
	w.clipboardOnce.Do(func() {
		w.clipboardOK = clipboard.Init() == nil
	})

	if !w.clipboardOK {
		w.Logger.Warn("clipboard unavailable, screenshot skipped")
		return
	}

	w.mutex.RLock()
	data, err := w.front.PNG(w.options.Scale)
	w.mutex.RUnlock()

	if err != nil {
		w.Logger.Error("screenshot failed", "err", err)
		return
	}

	clipboard.Write(clipboard.FmtImage, data)
	w.Logger.Info("screenshot copied to clipboard", "bytes", len(data))
}
