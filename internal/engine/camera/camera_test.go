package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAspect(t *testing.T) {
	tests := []struct {
		w, h int32
		want float32
	}{
		{1280, 720, 1280.0 / 720.0},
		{800, 800, 1},
		{800, 0, 1},
		{0, 0, 1},
	}
	for _, tt := range tests {
		if got := Aspect(tt.w, tt.h); got != tt.want {
			t.Errorf("Aspect(%d, %d): expected %g, got %g", tt.w, tt.h, tt.want, got)
		}
	}
}

func TestProjectionTracksSize(t *testing.T) {
	c := New(3, 90, 0.01, 1000)

	wide := c.Projection(1600, 800)
	want := mgl32.Perspective(mgl32.DegToRad(90), 2, 0.01, 1000)
	if !wide.ApproxEqual(want) {
		t.Errorf("expected %v, got %v", want, wide)
	}

	square := c.Projection(800, 800)
	if square.ApproxEqual(wide) {
		t.Error("expected projection to change with the framebuffer size")
	}
	// 90 degree vertical FOV with aspect 1 gives unit focal lengths.
	if square[0] != square[5] || mgl32.Abs(square[5]-1) > 1e-6 {
		t.Errorf("expected unit focal lengths, got %g and %g", square[0], square[5])
	}
}

func TestView(t *testing.T) {
	c := New(3, 90, 0.01, 1000)
	origin := c.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !origin.Vec3().ApproxEqual(mgl32.Vec3{0, 0, -3}) {
		t.Errorf("expected planet center at (0, 0, -3), got %v", origin)
	}
}

func TestHandleZoom(t *testing.T) {
	c := New(3, 90, 0.01, 1000)

	c.HandleZoom(1)
	if c.Distance != 3 {
		t.Errorf("expected zoom locked without a range, got %g", c.Distance)
	}

	c.SetZoomRange(2, 10)
	c.HandleZoom(1)
	if c.Distance >= 3 {
		t.Errorf("expected zoom in to reduce distance, got %g", c.Distance)
	}
	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != 2 {
		t.Errorf("expected distance clamped to 2, got %g", c.Distance)
	}
	for i := 0; i < 100; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != 10 {
		t.Errorf("expected distance clamped to 10, got %g", c.Distance)
	}
}

func TestSetZoomRangeKeepsDistance(t *testing.T) {
	tests := []struct {
		name             string
		distance         float32
		min, max         float32
		wantMin, wantMax float32
	}{
		{"inside", 3, 2, 10, 2, 10},
		{"beyond max", 300, 1.071, 250, 1.071, 300},
		{"below min", 2, 3, 10, 2, 10},
		{"inverted", 500, 428.4, 250, 428.4, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.distance, 90, 0.01, 1000)
			c.SetZoomRange(tt.min, tt.max)
			if c.Distance != tt.distance {
				t.Errorf("expected distance %g, got %g", tt.distance, c.Distance)
			}
			if c.MinDistance != tt.wantMin || c.MaxDistance != tt.wantMax {
				t.Errorf("expected range %g..%g, got %g..%g", tt.wantMin, tt.wantMax, c.MinDistance, c.MaxDistance)
			}
		})
	}
}
