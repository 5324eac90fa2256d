package lighting

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		angle float32
		want  mgl32.Vec3
	}{
		{0, mgl32.Vec3{1, 0, 0}},
		{90, mgl32.Vec3{0, 1, 0}},
		{180, mgl32.Vec3{-1, 0, 0}},
		{270, mgl32.Vec3{0, -1, 0}},
		{45, mgl32.Vec3{0.70710677, 0.70710677, 0}},
	}

	for _, tt := range tests {
		got := SunDirection(tt.angle)
		if !closeTo(got, tt.want) {
			t.Errorf("SunDirection(%g): expected %v, got %v", tt.angle, tt.want, got)
		}
	}
}

func TestSunPosition(t *testing.T) {
	s := NewSun(0, 10000)
	if got := s.Position(); !got.ApproxEqual(mgl32.Vec3{10000, 0, 0}) {
		t.Errorf("expected sun at (10000, 0, 0), got %v", got)
	}
}

func TestSunUpdateOnlyOnChange(t *testing.T) {
	s := NewSun(30, 1)
	if s.Update(30) {
		t.Error("expected no re-derivation for the same angle")
	}
	if !s.Update(120) {
		t.Error("expected re-derivation for a new angle")
	}
	if s.Angle() != 120 {
		t.Errorf("expected angle 120, got %g", s.Angle())
	}
	if !closeTo(s.Direction(), SunDirection(120)) {
		t.Errorf("expected direction for 120 degrees, got %v", s.Direction())
	}
}

// closeTo compares with an absolute tolerance; cos(90) in float32 is not exactly 0.
func closeTo(a, b mgl32.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-6 {
			return false
		}
	}
	return true
}
