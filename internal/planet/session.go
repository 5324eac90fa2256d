package planet

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/engine/camera"
	"github.com/Faultbox/planetview/internal/engine/input"
	"github.com/Faultbox/planetview/internal/engine/lighting"
	"github.com/Faultbox/planetview/internal/engine/scene"
	"github.com/Faultbox/planetview/internal/engine/sphere"
	"github.com/Faultbox/planetview/internal/engine/starfield"
	"github.com/Faultbox/planetview/internal/logger"
)

// frameTimeSmoothing is the weight kept from the previous average each frame.
const frameTimeSmoothing = 0.95

// Overlay draws UI on top of the finished frame.
type Overlay interface {
	// HandleEvent receives every event that did not end the session.
	HandleEvent(e input.Event)
	// Render may edit the sun angle; the change takes effect next frame.
	// The size is in the same units as pointer events.
	Render(stats Stats, sunAngle *float32, width, height int32)
	// WantsPointer reports that pointer input belongs to the overlay.
	WantsPointer() bool
}

// Stats is the frame timing handed to the overlay and the window title.
type Stats struct {
	AvgFrameTime time.Duration
	FPS          float64
	HasFPS       bool // False until a non-zero frame time has been averaged in
}

// Title formats the window title with the FPS reading when there is one.
func (s Stats) Title(base string) string {
	if !s.HasFPS {
		return base
	}
	return fmt.Sprintf("%s - %.0f FPS", base, s.FPS)
}

// Session is the whole mutable render state. It is created once and mutated
// only by Frame, on the thread that owns the graphics context.
type Session struct {
	settings Settings
	device   scene.Device
	shaders  *ShaderSet
	overlay  Overlay

	mesh   sphere.Mesh
	stars  []mgl32.Vec3
	camera *camera.Camera
	sun    *lighting.Sun

	sunAngle  float32 // Authoritative; the overlay edits it
	rotation  float32 // Radians about the vertical axis
	rotLeft   bool
	rotRight  bool
	avgFrame  float64 // Seconds, exponential moving average
	pointer   input.Pointer
	capture   bool // Screenshot requested this frame
	uiWidth   int32
	uiHeight  int32
	started   bool
	startTime time.Time
	lastTime  time.Time
}

// NewSession builds the mesh and starfield and uploads them to the device.
// overlay may be nil.
func NewSession(set Settings, dev scene.Device, shaders *ShaderSet, overlay Overlay) (*Session, error) {
	s := &Session{
		settings: set,
		device:   dev,
		shaders:  shaders,
		overlay:  overlay,
		mesh:     sphere.Build(set.Radius, set.Segments),
		stars:    starfield.New(set.StarCount, set.StarSeed),
		camera:   camera.New(set.CameraDistance, set.FOV, set.Near, set.Far),
		sun:      lighting.NewSun(set.SunAngle, set.SunDistance),
		sunAngle: set.SunAngle,
	}
	if set.ZoomMax > 0 {
		s.camera.SetZoomRange(set.ZoomMin, set.ZoomMax)
	}

	if err := dev.UploadSphere(s.mesh); err != nil {
		return nil, fmt.Errorf("uploading sphere: %w", err)
	}
	if err := dev.UploadStars(s.stars); err != nil {
		return nil, fmt.Errorf("uploading stars: %w", err)
	}

	logger.Info("session created",
		zap.Int("vertices", len(s.mesh.Vertices)),
		zap.Int("triangles", len(s.mesh.Triangles)),
		zap.Int("stars", len(s.stars)),
	)
	return s, nil
}

// Frame runs one frame. It returns false when the session should end, in which
// case nothing is drawn.
func (s *Session) Frame(now time.Time, events []input.Event, width, height int32) bool {
	// Timing
	dt := 0.0
	if s.started {
		dt = now.Sub(s.lastTime).Seconds()
		if dt < 0 {
			dt = 0
		}
	} else {
		s.started = true
		s.startTime = now
	}
	s.lastTime = now
	s.avgFrame = s.avgFrame*frameTimeSmoothing + dt*(1-frameTimeSmoothing)

	// Shader hot reload
	s.shaders.Reload()

	// Input
	if !s.handleEvents(events) {
		return false
	}
	s.sun.Update(s.sunAngle)

	// Rotation
	step := float32(dt) * s.settings.RotationSpeed
	if s.rotRight {
		s.rotation += step
	}
	if s.rotLeft {
		s.rotation -= step
	}

	// Passes
	f := s.buildFrame(now, width, height)
	scene.RenderShadowPass(s.device, &f)
	scene.RenderCompositePass(s.device, &f)

	if s.overlay != nil {
		uw, uh := width, height
		if s.uiWidth > 0 && s.uiHeight > 0 {
			uw, uh = s.uiWidth, s.uiHeight
		}
		s.overlay.Render(s.Stats(), &s.sunAngle, uw, uh)
	}
	return true
}

// SetOverlaySize sets the window size in points the overlay lays out in.
// Until it is set the overlay gets the framebuffer size.
func (s *Session) SetOverlaySize(width, height int32) {
	s.uiWidth, s.uiHeight = width, height
}

func (s *Session) handleEvents(events []input.Event) bool {
	s.pointer.ResetScroll()
	s.capture = false

	for _, e := range events {
		switch e.Kind {
		case input.EventClose:
			return false
		case input.EventKeyDown, input.EventKeyUp:
			down := e.Kind == input.EventKeyDown
			switch e.Key {
			case input.KeyEscape:
				if down {
					return false
				}
			case input.KeyLeft:
				s.rotLeft = down
			case input.KeyRight:
				s.rotRight = down
			case input.KeyScreenshot:
				if down && !e.Repeat {
					s.capture = true
				}
			}
		case input.EventScroll:
			if s.overlay == nil || !s.overlay.WantsPointer() {
				s.camera.HandleZoom(e.ScrollY)
			}
		}

		s.pointer.Apply(e)
		if s.overlay != nil {
			s.overlay.HandleEvent(e)
		}
	}
	return true
}

// buildFrame computes every transform from the current state and framebuffer size.
func (s *Session) buildFrame(now time.Time, width, height int32) scene.Frame {
	return scene.Frame{
		Width:           width,
		Height:          height,
		Time:            float32(now.Sub(s.startTime).Seconds()),
		Projection:      s.camera.Projection(width, height),
		PlanetMV:        s.PlanetMV(),
		CloudMV:         s.CloudMV(),
		StarMV:          s.StarMV(),
		SunPos:          s.sun.Position(),
		Programs:        s.shaders.Programs(),
		LightmapPreview: s.settings.LightmapPreview,
	}
}

// PlanetMV pushes the planet away from the eye, spins it about the vertical
// axis, and stands its pole axis upright.
func (s *Session) PlanetMV() mgl32.Mat4 {
	return s.camera.View().
		Mul4(mgl32.HomogRotate3DY(s.rotation)).
		Mul4(mgl32.HomogRotate3DX(-mgl32.DegToRad(90)))
}

// CloudMV is the planet transform scaled out to the cloud shell.
func (s *Session) CloudMV() mgl32.Mat4 {
	c := s.settings.CloudScale
	return s.PlanetMV().Mul4(mgl32.Scale3D(c, c, c))
}

// StarMV keeps the starfield centered on the eye.
func (s *Session) StarMV() mgl32.Mat4 {
	d := s.settings.StarDistance
	return mgl32.Scale3D(d, d, d)
}

// Stats returns the current frame timing.
func (s *Session) Stats() Stats {
	st := Stats{AvgFrameTime: time.Duration(s.avgFrame * float64(time.Second))}
	if s.avgFrame > 0 {
		st.FPS = 1 / s.avgFrame
		st.HasFPS = true
	}
	return st
}

// ScreenshotRequested reports whether the last frame asked for a capture.
func (s *Session) ScreenshotRequested() bool { return s.capture }

// Rotation returns the planet rotation in radians.
func (s *Session) Rotation() float32 { return s.rotation }

// SunAngle returns the authoritative sun angle in degrees.
func (s *Session) SunAngle() float32 { return s.sunAngle }

// SetSunAngle changes the sun angle; the direction follows on the next frame.
func (s *Session) SetSunAngle(angle float32) { s.sunAngle = angle }

// Sun returns the cached sun.
func (s *Session) Sun() *lighting.Sun { return s.sun }

// Pointer returns the accumulated pointer state.
func (s *Session) Pointer() input.Pointer { return s.pointer }

// Camera returns the session camera.
func (s *Session) Camera() *camera.Camera { return s.camera }

// Mesh returns the shared planet and cloud mesh.
func (s *Session) Mesh() sphere.Mesh { return s.mesh }

// Stars returns the starfield.
func (s *Session) Stars() []mgl32.Vec3 { return s.stars }
