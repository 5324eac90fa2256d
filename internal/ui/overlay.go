// Package ui draws the planet viewer's overlay with the ui2d toolkit.
package ui

import (
	"fmt"

	"github.com/Faultbox/planetview/internal/engine/input"
	"github.com/Faultbox/planetview/internal/engine/ui2d"
	"github.com/Faultbox/planetview/internal/planet"
)

const (
	panelWidth  = float32(300)
	panelHeight = float32(190)
	panelMargin = float32(10)
)

// Overlay shows frame timing and a sun angle slider in a movable window.
type Overlay struct {
	ctx *ui2d.Context

	// Angle restored by the reset button
	defaultSun float32
}

// NewOverlay creates the overlay for a window of the given size in points.
// Layout and hit testing use points so they line up with pointer events;
// the GL viewport stays in framebuffer pixels.
func NewOverlay(width, height int, defaultSun float32) (*Overlay, error) {
	ctx, err := ui2d.NewContext(width, height)
	if err != nil {
		return nil, fmt.Errorf("create ui2d context: %w", err)
	}
	return &Overlay{ctx: ctx, defaultSun: defaultSun}, nil
}

// HandleEvent forwards pointer and text input to the toolkit.
func (o *Overlay) HandleEvent(e input.Event) {
	o.ctx.Input().Apply(e)
}

// WantsPointer reports whether the pointer is over the overlay.
func (o *Overlay) WantsPointer() bool {
	return o.ctx.WantsPointer()
}

// Render draws the overlay on top of the frame.
func (o *Overlay) Render(stats planet.Stats, sunAngle *float32, width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	o.ctx.Resize(int(width), int(height))
	o.ctx.Begin()
	defer o.ctx.End()

	if o.ctx.BeginWindow("planet", panelMargin, panelMargin, panelWidth, panelHeight, "Planet") {
		o.ctx.Row(20)
		if stats.HasFPS {
			o.ctx.Label(fmt.Sprintf("FPS: %.0f", stats.FPS))
			o.ctx.Row(20)
			o.ctx.LabelColored(fmt.Sprintf("Frame: %.2f ms", float64(stats.AvgFrameTime.Microseconds())/1000), ui2d.ColorTextDim)
		} else {
			o.ctx.LabelColored("FPS: --", ui2d.ColorTextDim)
		}

		o.ctx.Spacer(6)
		o.ctx.Separator()
		o.ctx.Spacer(6)

		o.ctx.Row(20)
		o.ctx.Label("Sun angle")
		o.ctx.Row(24)
		angle := wrapDegrees(*sunAngle)
		if o.ctx.SliderFloat("sun", 0, &angle, 0, 360, "%.0f deg") {
			*sunAngle = angle
		}

		o.ctx.Spacer(6)
		o.ctx.Row(28)
		if o.ctx.Button("reset_sun", 120, "Reset sun") {
			*sunAngle = o.defaultSun
		}

		o.ctx.EndWindow()
	}
}

// Close releases the toolkit's GPU resources.
func (o *Overlay) Close() {
	o.ctx.Close()
}

// wrapDegrees maps an angle into [0, 360) for display on the slider.
func wrapDegrees(a float32) float32 {
	for a < 0 {
		a += 360
	}
	for a >= 360 {
		a -= 360
	}
	return a
}
