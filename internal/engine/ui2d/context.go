package ui2d

import (
	"fmt"

	"github.com/Faultbox/planetview/internal/engine/input"
)

const (
	textScale   = float32(1.5) // The 7x13 glyphs at a readable size
	titleHeight = float32(25)
	padding     = float32(8)
	gap         = float32(4)
)

// Rect is an axis-aligned rectangle in screen pixels, origin top-left.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies inside, right and bottom edges excluded.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// window is a movable panel. Its position survives between frames once dragged.
type window struct {
	rect    Rect
	dragged bool
}

// Context lays out and draws widgets for one frame at a time.
type Context struct {
	renderer *Renderer
	input    *InputState

	windows map[string]*window
	current *window
	prefix  string

	// Widget under the pointer this frame, and the one holding the pointer
	hot    string
	active string

	// Layout cursor inside the current window
	x, y, rowH float32
}

// NewContext creates a context drawing into a screen of the given size.
func NewContext(width, height int) (*Context, error) {
	r, err := New(width, height)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return &Context{
		renderer: r,
		input:    &InputState{},
		windows:  make(map[string]*window),
	}, nil
}

// Close releases resources.
func (c *Context) Close() {
	if c.renderer != nil {
		c.renderer.Close()
	}
}

// Resize updates the screen size.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Input returns the pointer state events are folded into.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a frame.
func (c *Context) Begin() {
	c.input.Update()
	c.renderer.Begin()
	c.hot = ""
}

// End draws the frame's batch.
func (c *Context) End() {
	c.renderer.End()
	c.input.EndFrame()
}

// BeginWindow starts a panel with a title bar that can be dragged.
// The given rectangle applies until the user first drags the panel.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	win, ok := c.windows[id]
	if !ok {
		win = &window{}
		c.windows[id] = win
	}
	if !win.dragged {
		win.rect = Rect{x, y, w, h}
	}
	c.current = win
	c.prefix = id + "/"

	bar := Rect{win.rect.X, win.rect.Y, win.rect.W, titleHeight}
	barID := c.prefix + "title"
	if c.input.Over(bar) && c.input.Pressed(input.ButtonLeft) {
		c.active = barID
	}
	if c.active == barID {
		if c.input.Down(input.ButtonLeft) {
			win.rect.X += c.input.DeltaX
			win.rect.Y += c.input.DeltaY
			win.dragged = true
		} else {
			c.active = ""
		}
	}

	r := win.rect
	c.renderer.DrawPanel(r.X, r.Y, r.W, r.H, ColorPanelBg, ColorPanelBorder)
	c.renderer.DrawRect(r.X+1, r.Y+1, r.W-2, titleHeight-1, ColorButtonNormal)
	_, th := c.renderer.MeasureText(title, textScale)
	c.renderer.DrawText(r.X+padding, r.Y+(titleHeight-th)/2, title, textScale, ColorText)

	c.x = r.X + padding
	c.y = r.Y + titleHeight + padding
	c.rowH = 0
	return true
}

// EndWindow closes the current panel.
func (c *Context) EndWindow() {
	c.current = nil
	c.prefix = ""
}

// Row moves the cursor to a new line of the given height.
func (c *Context) Row(height float32) {
	if c.current == nil {
		return
	}
	c.x = c.current.rect.X + padding
	c.y += c.rowH + gap
	c.rowH = height
}

// Spacer adds vertical space.
func (c *Context) Spacer(height float32) {
	c.y += height
}

// Separator ends the row and draws a horizontal rule.
func (c *Context) Separator() {
	if c.current == nil {
		return
	}
	c.Row(0)
	c.renderer.DrawRect(c.x, c.y, c.current.rect.W-2*padding, 1, ColorPanelBorder)
	c.y += padding
}

// place reserves width x rowH at the cursor; zero width spans the window.
func (c *Context) place(width, defaultH float32) Rect {
	h := c.rowH
	if h == 0 {
		h = defaultH
	}
	if width == 0 {
		width = c.current.rect.X + c.current.rect.W - padding - c.x
	}
	r := Rect{c.x, c.y, width, h}
	c.x += width + gap
	return r
}

// press tracks hot/active state for a widget and reports a press on it this frame.
func (c *Context) press(id string, r Rect) bool {
	if !c.input.Over(r) {
		return false
	}
	c.hot = id
	if c.input.Pressed(input.ButtonLeft) {
		c.active = id
		return true
	}
	return false
}

// Label draws text in the default color.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws text at the cursor.
func (c *Context) LabelColored(text string, color Color) {
	if c.current == nil {
		return
	}
	w, _ := c.renderer.MeasureText(text, textScale)
	c.renderer.DrawText(c.x, c.y, text, textScale, color)
	c.x += w + gap
}

// Button draws a button and reports a click. Buttons fire on press.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.current == nil {
		return false
	}
	id = c.prefix + id
	r := c.place(width, 28)
	clicked := c.press(id, r)
	if c.active == id && !c.input.Down(input.ButtonLeft) {
		c.active = ""
	}

	fill := ColorButtonNormal
	switch {
	case c.active == id:
		fill = ColorButtonActive
	case c.hot == id:
		fill = ColorButtonHover
	}
	c.renderer.DrawRect(r.X, r.Y, r.W, r.H, fill)
	c.renderer.DrawRectOutline(r.X, r.Y, r.W, r.H, 1, ColorPanelBorder)
	c.centerText(r, label)
	return clicked
}

// SliderFloat edits value within [min, max]. While the slider holds the
// pointer the value follows it. Returns true if the value changed.
func (c *Context) SliderFloat(id string, width float32, value *float32, min, max float32, format string) bool {
	if c.current == nil || max <= min {
		return false
	}
	id = c.prefix + id
	r := c.place(width, 24)
	c.press(id, r)

	changed := false
	if c.active == id {
		if c.input.Down(input.ButtonLeft) {
			if v := SliderValue(c.input.MouseX(), r.X, r.W, min, max); v != *value {
				*value = v
				changed = true
			}
		} else {
			c.active = ""
		}
	}

	c.renderer.DrawRect(r.X, r.Y, r.W, r.H, ColorInputBg)
	c.renderer.DrawRectOutline(r.X, r.Y, r.W, r.H, 1, ColorPanelBorder)
	fill := ColorButtonHover
	if c.active == id {
		fill = ColorHighlight
	}
	if fw := (r.W - 2) * clamp01((*value-min)/(max-min)); fw > 0 {
		c.renderer.DrawRect(r.X+1, r.Y+1, fw, r.H-2, fill)
	}
	c.centerText(r, fmt.Sprintf(format, *value))
	return changed
}

func (c *Context) centerText(r Rect, text string) {
	tw, th := c.renderer.MeasureText(text, textScale)
	c.renderer.DrawText(r.X+(r.W-tw)/2, r.Y+(r.H-th)/2, text, textScale, ColorText)
}

// SliderValue maps a pointer x coordinate on a track to a value in [min, max].
func SliderValue(mouseX, trackX, trackW, min, max float32) float32 {
	if trackW <= 0 {
		return min
	}
	return min + clamp01((mouseX-trackX)/trackW)*(max-min)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// WantsPointer reports whether the pointer is over a window or held by a
// widget, so the caller should not treat pointer input as its own.
func (c *Context) WantsPointer() bool {
	if c.active != "" {
		return true
	}
	for _, w := range c.windows {
		if c.input.Over(w.rect) {
			return true
		}
	}
	return false
}
