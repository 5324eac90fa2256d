package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/planetview/internal/engine/input"
)

// PollEvents drains the SDL queue into input events. SDL events with no
// counterpart are dropped. The returned slice is reused by the next call.
func (w *Window) PollEvents() []input.Event {
	w.events = w.events[:0]
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := translate(event); ok {
			w.events = append(w.events, ev)
		}
	}
	return w.events
}

func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Kind: input.EventClose}, true

	case *sdl.KeyboardEvent:
		kind := input.EventKeyUp
		if e.Type == sdl.KEYDOWN {
			kind = input.EventKeyDown
		}
		return input.Event{
			Kind:   kind,
			Key:    keys[e.Keysym.Scancode],
			Code:   uint32(e.Keysym.Scancode),
			Repeat: e.Repeat != 0,
		}, true

	case *sdl.MouseMotionEvent:
		return input.Event{Kind: input.EventPointerMove, X: e.X, Y: e.Y}, true

	case *sdl.MouseButtonEvent:
		button, ok := buttons[e.Button]
		if !ok {
			return input.Event{}, false
		}
		kind := input.EventButtonUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			kind = input.EventButtonDown
		}
		return input.Event{Kind: kind, X: e.X, Y: e.Y, Button: button}, true

	case *sdl.MouseWheelEvent:
		return input.Event{
			Kind:    input.EventScroll,
			ScrollX: float32(e.X),
			ScrollY: float32(e.Y),
		}, true

	case *sdl.TextInputEvent:
		return input.Event{Kind: input.EventText, Text: e.GetText()}, true
	}
	return input.Event{}, false
}

// keys maps the scancodes the viewer reacts to. Missing entries read as
// the zero Key, which is KeyOther.
var keys = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_LEFT:   input.KeyLeft,
	sdl.SCANCODE_RIGHT:  input.KeyRight,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F12:    input.KeyScreenshot,
}

var buttons = map[uint8]input.Button{
	sdl.BUTTON_LEFT:   input.ButtonLeft,
	sdl.BUTTON_MIDDLE: input.ButtonMiddle,
	sdl.BUTTON_RIGHT:  input.ButtonRight,
}
