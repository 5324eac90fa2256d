package ui2d

import "github.com/Faultbox/planetview/internal/engine/input"

// InputState is the pointer as the widgets see it. Events are folded in through
// the embedded Pointer; Update and EndFrame bracket a frame for edge detection.
type InputState struct {
	input.Pointer

	// Motion since the previous frame
	DeltaX, DeltaY float32

	wasDown [input.ButtonCount]bool
	lastX   int32
	lastY   int32
}

// Update computes this frame's motion. Call once before laying out widgets.
func (i *InputState) Update() {
	i.DeltaX = float32(i.X - i.lastX)
	i.DeltaY = float32(i.Y - i.lastY)
	i.lastX, i.lastY = i.X, i.Y
}

// EndFrame latches button state and clears the scroll delta.
func (i *InputState) EndFrame() {
	i.wasDown = i.Buttons
	i.ResetScroll()
}

// MouseX returns the pointer x in screen pixels.
func (i *InputState) MouseX() float32 { return float32(i.X) }

// MouseY returns the pointer y in screen pixels.
func (i *InputState) MouseY() float32 { return float32(i.Y) }

// Down reports whether the button is held.
func (i *InputState) Down(b input.Button) bool { return i.Buttons[b] }

// Pressed reports whether the button went down this frame.
func (i *InputState) Pressed(b input.Button) bool { return i.Buttons[b] && !i.wasDown[b] }

// Released reports whether the button came up this frame.
func (i *InputState) Released(b input.Button) bool { return !i.Buttons[b] && i.wasDown[b] }

// Over reports whether the pointer is inside r.
func (i *InputState) Over(r Rect) bool {
	return r.Contains(i.MouseX(), i.MouseY())
}
