package planet

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/planetview/internal/config"
	"github.com/Faultbox/planetview/internal/engine/input"
	"github.com/Faultbox/planetview/internal/engine/sphere"
)

func newTestSession(t *testing.T, overlay Overlay) (*Session, *recordingDevice) {
	t.Helper()
	shaders, _, _ := testShaders(t)
	dev := &recordingDevice{}
	s, err := NewSession(testSettings(), dev, shaders, overlay)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s, dev
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestNewSessionUploads(t *testing.T) {
	s, dev := newTestSession(t, nil)

	if len(dev.log) != 2 || dev.log[0] != "upload_sphere" || dev.log[1] != "upload_stars" {
		t.Fatalf("expected sphere then stars upload, got %v", dev.log)
	}
	if got, want := len(dev.mesh.Vertices), sphere.VertexCount(8); got != want {
		t.Errorf("expected %d vertices uploaded, got %d", want, got)
	}
	if len(dev.stars) != 100 {
		t.Errorf("expected 100 stars uploaded, got %d", len(dev.stars))
	}
	if len(s.Stars()) != 100 {
		t.Errorf("expected session to keep 100 stars, got %d", len(s.Stars()))
	}
}

func TestNewSessionUploadError(t *testing.T) {
	shaders, _, _ := testShaders(t)
	dev := &recordingDevice{starsErr: errors.New("out of memory")}

	_, err := NewSession(testSettings(), dev, shaders, nil)
	if err == nil {
		t.Fatal("expected error from failed star upload")
	}
	if !strings.Contains(err.Error(), "out of memory") {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}

func TestFrameDrawsBothPasses(t *testing.T) {
	s, dev := newTestSession(t, nil)
	dev.reset()

	if !s.Frame(t0, nil, 800, 600) {
		t.Fatal("expected frame to continue")
	}

	want := []string{
		"begin 0",
		"draw planet_shadow",
		"draw cloud_shadow_inside",
		"draw cloud_shadow_outside",
		"begin 1",
		"draw stars",
		"draw planet",
		"draw cloud_inside",
		"draw cloud_outside",
		"blit",
	}
	if len(dev.log) != len(want) {
		t.Fatalf("expected %v, got %v", want, dev.log)
	}
	for i := range want {
		if dev.log[i] != want[i] {
			t.Errorf("call %d: expected %q, got %q", i, want[i], dev.log[i])
		}
	}
	for _, sz := range dev.passSizes {
		if sz != [2]int32{800, 600} {
			t.Errorf("expected passes sized 800x600, got %v", sz)
		}
	}
}

func TestFrameUsesCurrentPrograms(t *testing.T) {
	s, dev := newTestSession(t, nil)
	dev.reset()
	s.Frame(t0, nil, 800, 600)

	progs := s.shaders.Programs()
	byName := map[string]uint32{}
	for _, d := range dev.draws {
		byName[d.Name] = d.Program
	}
	if byName["planet"] != progs.Planet {
		t.Errorf("expected planet program %d, got %d", progs.Planet, byName["planet"])
	}
	if byName["stars"] != progs.Star {
		t.Errorf("expected star program %d, got %d", progs.Star, byName["stars"])
	}
	if byName["cloud_shadow_inside"] != progs.CloudShadow {
		t.Errorf("expected cloud shadow program %d, got %d", progs.CloudShadow, byName["cloud_shadow_inside"])
	}
}

func TestFrameTimeAverage(t *testing.T) {
	s, _ := newTestSession(t, nil)

	s.Frame(t0, nil, 800, 600)
	if st := s.Stats(); st.HasFPS {
		t.Errorf("expected no FPS after the first frame, got %v", st.FPS)
	}

	s.Frame(t0.Add(100*time.Millisecond), nil, 800, 600)
	// 0.95*0 + 0.05*0.1
	want := 0.005
	st := s.Stats()
	if !st.HasFPS {
		t.Fatal("expected FPS after a timed frame")
	}
	if math.Abs(st.AvgFrameTime.Seconds()-want) > 1e-6 {
		t.Errorf("expected average %.4fs, got %v", want, st.AvgFrameTime)
	}
	if math.Abs(st.FPS-1/want) > 1e-3 {
		t.Errorf("expected %.1f FPS, got %.1f", 1/want, st.FPS)
	}

	s.Frame(t0.Add(200*time.Millisecond), nil, 800, 600)
	want = want*0.95 + 0.1*0.05
	if got := s.Stats().AvgFrameTime.Seconds(); math.Abs(got-want) > 1e-6 {
		t.Errorf("expected average %.5fs, got %.5fs", want, got)
	}
}

func TestFrameClockGoingBackwards(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Frame(t0, nil, 800, 600)
	s.Frame(t0.Add(-time.Second), nil, 800, 600)

	if st := s.Stats(); st.HasFPS {
		t.Errorf("expected negative frame time to count as zero, got average %v", st.AvgFrameTime)
	}
}

func TestRotationFollowsHeldKeys(t *testing.T) {
	s, _ := newTestSession(t, nil)
	speed := mgl32.DegToRad(45)

	s.Frame(t0, []input.Event{{Kind: input.EventKeyDown, Key: input.KeyRight}}, 800, 600)
	if s.Rotation() != 0 {
		t.Fatalf("expected no rotation on a zero-length frame, got %v", s.Rotation())
	}

	s.Frame(t0.Add(time.Second), nil, 800, 600)
	if !approx(s.Rotation(), speed) {
		t.Errorf("expected rotation %v after 1s right, got %v", speed, s.Rotation())
	}

	s.Frame(t0.Add(2*time.Second), []input.Event{
		{Kind: input.EventKeyUp, Key: input.KeyRight},
		{Kind: input.EventKeyDown, Key: input.KeyLeft},
	}, 800, 600)
	if !approx(s.Rotation(), 0) {
		t.Errorf("expected rotation back to 0, got %v", s.Rotation())
	}

	s.Frame(t0.Add(3*time.Second), []input.Event{
		{Kind: input.EventKeyDown, Key: input.KeyRight},
	}, 800, 600)
	if !approx(s.Rotation(), 0) {
		t.Errorf("expected both keys to cancel, got %v", s.Rotation())
	}
}

func TestQuitEvents(t *testing.T) {
	tests := []struct {
		name  string
		event input.Event
		quit  bool
	}{
		{"close", input.Event{Kind: input.EventClose}, true},
		{"escape down", input.Event{Kind: input.EventKeyDown, Key: input.KeyEscape}, true},
		{"escape up", input.Event{Kind: input.EventKeyUp, Key: input.KeyEscape}, false},
		{"other key", input.Event{Kind: input.EventKeyDown, Key: input.KeyOther}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, dev := newTestSession(t, nil)
			dev.reset()

			cont := s.Frame(t0, []input.Event{tt.event}, 800, 600)
			if cont == tt.quit {
				t.Fatalf("expected continue=%v, got %v", !tt.quit, cont)
			}
			if tt.quit && len(dev.log) != 0 {
				t.Errorf("expected nothing drawn on quit, got %v", dev.log)
			}
		})
	}
}

func TestSunFollowsAngle(t *testing.T) {
	s, dev := newTestSession(t, nil)
	s.Frame(t0, nil, 800, 600)

	if d := s.Sun().Direction(); !approx(d.X(), 1) || !approx(d.Y(), 0) {
		t.Fatalf("expected sun along +X, got %v", d)
	}

	s.SetSunAngle(90)
	dev.reset()
	s.Frame(t0.Add(time.Millisecond), nil, 800, 600)

	d := s.Sun().Direction()
	if !approx(d.X(), 0) || !approx(d.Y(), 1) || !approx(d.Z(), 0) {
		t.Errorf("expected sun along +Y, got %v", d)
	}
	for _, call := range dev.draws {
		if !approx(call.Uniforms.SunPos.Y(), 10000) {
			t.Errorf("%s: expected sun_pos y 10000, got %v", call.Name, call.Uniforms.SunPos)
		}
	}
}

func TestOverlayMovesSunNextFrame(t *testing.T) {
	angle := float32(180)
	overlay := &scriptedOverlay{setSun: &angle}
	s, _ := newTestSession(t, overlay)

	s.Frame(t0, nil, 800, 600)
	if s.SunAngle() != 180 {
		t.Fatalf("expected overlay to set angle 180, got %v", s.SunAngle())
	}
	if d := s.Sun().Direction(); !approx(d.X(), 1) {
		t.Errorf("expected sun unchanged until next frame, got %v", d)
	}

	s.Frame(t0.Add(time.Millisecond), nil, 800, 600)
	if d := s.Sun().Direction(); !approx(d.X(), -1) {
		t.Errorf("expected sun along -X, got %v", d)
	}
	if overlay.renders != 2 {
		t.Errorf("expected 2 overlay renders, got %d", overlay.renders)
	}
}

func TestOverlayReceivesEvents(t *testing.T) {
	overlay := &scriptedOverlay{}
	s, _ := newTestSession(t, overlay)

	events := []input.Event{
		{Kind: input.EventPointerMove, X: 10, Y: 20},
		{Kind: input.EventButtonDown, Button: input.ButtonLeft, X: 10, Y: 20},
	}
	s.Frame(t0, events, 800, 600)

	if len(overlay.events) != 2 {
		t.Fatalf("expected 2 events forwarded, got %d", len(overlay.events))
	}
	p := s.Pointer()
	if p.X != 10 || p.Y != 20 || !p.Buttons[input.ButtonLeft] {
		t.Errorf("expected pointer at 10,20 with left held, got %+v", p)
	}
}

func TestScrollZoomsUnlessOverlayWantsPointer(t *testing.T) {
	overlay := &scriptedOverlay{}
	s, _ := newTestSession(t, overlay)
	scroll := []input.Event{{Kind: input.EventScroll, ScrollY: 1}}

	start := s.Camera().Distance
	s.Frame(t0, scroll, 800, 600)
	if s.Camera().Distance >= start {
		t.Errorf("expected scroll up to zoom in from %v, got %v", start, s.Camera().Distance)
	}

	overlay.pointer = true
	held := s.Camera().Distance
	s.Frame(t0.Add(time.Millisecond), scroll, 800, 600)
	if s.Camera().Distance != held {
		t.Errorf("expected overlay to capture scroll, distance moved %v -> %v", held, s.Camera().Distance)
	}

	if s.Pointer().ScrollY != 1 {
		t.Errorf("expected per-frame scroll 1, got %v", s.Pointer().ScrollY)
	}
	s.Frame(t0.Add(2*time.Millisecond), nil, 800, 600)
	if s.Pointer().ScrollY != 0 {
		t.Errorf("expected scroll reset, got %v", s.Pointer().ScrollY)
	}
}

func TestProjectionTracksFramebuffer(t *testing.T) {
	s, dev := newTestSession(t, nil)

	s.Frame(t0, nil, 800, 600)
	wide := dev.draws[0].Uniforms.P

	dev.reset()
	s.Frame(t0.Add(time.Millisecond), nil, 600, 600)
	square := dev.draws[0].Uniforms.P

	if wide == square {
		t.Error("expected projection to change with the framebuffer size")
	}
	want := mgl32.Perspective(mgl32.DegToRad(90), 1, 0.01, 1000)
	if !square.ApproxEqual(want) {
		t.Errorf("expected square projection %v, got %v", want, square)
	}
	if vp := dev.draws[0].Uniforms.Viewport; vp != (mgl32.Vec2{600, 600}) {
		t.Errorf("expected viewport 600x600, got %v", vp)
	}

	dev.reset()
	s.Frame(t0.Add(2*time.Millisecond), nil, 600, 0)
	if got := dev.draws[0].Uniforms.P; !got.ApproxEqual(want) {
		t.Errorf("expected zero height to fall back to aspect 1, got %v", got)
	}
}

func TestTransforms(t *testing.T) {
	s, _ := newTestSession(t, nil)

	// North pole ends up on screen-up after the -90 degree tilt.
	pole := s.PlanetMV().Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	if !approx(pole.X(), 0) || !approx(pole.Y(), 1) || !approx(pole.Z(), -3) {
		t.Errorf("expected pole at (0,1,-3), got %v", pole)
	}

	cloud := s.CloudMV().Mul4x1(mgl32.Vec4{0, 0, 1, 1})
	if !approx(cloud.Y(), 1.02) {
		t.Errorf("expected cloud pole at y 1.02, got %v", cloud)
	}

	star := s.StarMV().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	if !approx(star.X(), 500) {
		t.Errorf("expected star at x 500, got %v", star)
	}
}

func TestFrameTimeUniform(t *testing.T) {
	s, dev := newTestSession(t, nil)
	s.Frame(t0, nil, 800, 600)
	dev.reset()
	s.Frame(t0.Add(1500*time.Millisecond), nil, 800, 600)

	if got := dev.draws[0].Uniforms.Time; !approx(got, 1.5) {
		t.Errorf("expected time uniform 1.5, got %v", got)
	}
}

func TestStatsTitle(t *testing.T) {
	if got := (Stats{}).Title("Planet"); got != "Planet" {
		t.Errorf("expected bare title, got %q", got)
	}
	st := Stats{FPS: 59.7, HasFPS: true}
	if got := st.Title("Planet"); got != "Planet - 60 FPS" {
		t.Errorf("expected %q, got %q", "Planet - 60 FPS", got)
	}
}

func TestNewSettings(t *testing.T) {
	cfg := config.Default()
	set := NewSettings(cfg)

	if !approx(set.RotationSpeed, math.Pi/4) {
		t.Errorf("expected 45 deg/s as pi/4 rad/s, got %v", set.RotationSpeed)
	}
	if set.Segments != cfg.Planet.Segments {
		t.Errorf("expected %d segments, got %d", cfg.Planet.Segments, set.Segments)
	}
	if set.SunDistance != cfg.Sun.Distance {
		t.Errorf("expected sun distance %v, got %v", cfg.Sun.Distance, set.SunDistance)
	}
	if lo, hi := cfg.ZoomRange(); set.ZoomMin != lo || set.ZoomMax != hi {
		t.Errorf("expected zoom range %v..%v, got %v..%v", lo, hi, set.ZoomMin, set.ZoomMax)
	}
	if set.LightmapPreview != cfg.Debug.LightmapPreview {
		t.Errorf("expected preview %v, got %v", cfg.Debug.LightmapPreview, set.LightmapPreview)
	}
}

func TestOverlayFallsBackToFramebufferSize(t *testing.T) {
	overlay := &scriptedOverlay{}
	s, _ := newTestSession(t, overlay)

	s.Frame(t0, nil, 800, 600)
	s.SetOverlaySize(400, 300)
	s.Frame(t0.Add(time.Millisecond), nil, 800, 600)

	want := [][2]int32{{800, 600}, {400, 300}}
	if len(overlay.sizes) != 2 || overlay.sizes[0] != want[0] || overlay.sizes[1] != want[1] {
		t.Errorf("expected overlay sizes %v, got %v", want, overlay.sizes)
	}
}

func TestScreenshotIgnoresKeyRepeat(t *testing.T) {
	s, _ := newTestSession(t, nil)

	s.Frame(t0, []input.Event{{Kind: input.EventKeyDown, Key: input.KeyScreenshot}}, 800, 600)
	if !s.ScreenshotRequested() {
		t.Fatal("expected F12 press to request a screenshot")
	}
	s.Frame(t0.Add(time.Millisecond), []input.Event{{Kind: input.EventKeyDown, Key: input.KeyScreenshot, Repeat: true}}, 800, 600)
	if s.ScreenshotRequested() {
		t.Error("expected auto-repeat to be ignored")
	}
}

func TestConfiguredDistanceOutsideZoomRange(t *testing.T) {
	shaders, _, _ := testShaders(t)
	set := testSettings()
	set.CameraDistance = 300

	s, err := NewSession(set, &recordingDevice{}, shaders, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.Camera().Distance != 300 {
		t.Fatalf("expected configured distance 300, got %v", s.Camera().Distance)
	}

	s.Frame(t0, []input.Event{{Kind: input.EventScroll, ScrollY: -1}}, 800, 600)
	if s.Camera().Distance != 300 {
		t.Errorf("expected zoom out to stop at 300, got %v", s.Camera().Distance)
	}
	s.Frame(t0.Add(time.Millisecond), []input.Event{{Kind: input.EventScroll, ScrollY: 1}}, 800, 600)
	if s.Camera().Distance >= 300 {
		t.Errorf("expected zoom in below 300, got %v", s.Camera().Distance)
	}
}
