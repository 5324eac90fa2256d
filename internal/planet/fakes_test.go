package planet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/planetview/internal/engine/input"
	"github.com/Faultbox/planetview/internal/engine/scene"
	"github.com/Faultbox/planetview/internal/engine/sphere"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// memSource serves shader files from memory.
type memSource struct {
	files map[string]string
	times map[string]time.Time
}

func newMemSource(dir string) *memSource {
	s := &memSource{files: map[string]string{}, times: map[string]time.Time{}}
	for _, p := range ShaderPaths(dir) {
		s.put(p, "void main() {}", t0)
	}
	return s
}

func (s *memSource) put(path, content string, mod time.Time) {
	s.files[path] = content
	s.times[path] = mod
}

func (s *memSource) ModTime(path string) (time.Time, error) {
	mod, ok := s.times[path]
	if !ok {
		return time.Time{}, os.ErrNotExist
	}
	return mod, nil
}

func (s *memSource) ReadFile(path string) (string, error) {
	content, ok := s.files[path]
	if !ok {
		return "", os.ErrNotExist
	}
	return content, nil
}

// countingCompiler hands out increasing ids and rejects "syntax error".
type countingCompiler struct {
	next     uint32
	compiles int
	released []uint32
}

func (c *countingCompiler) Compile(vertexSrc, fragmentSrc string) (uint32, error) {
	c.compiles++
	if strings.Contains(vertexSrc, "syntax error") || strings.Contains(fragmentSrc, "syntax error") {
		return 0, errors.New("0:1: syntax error")
	}
	c.next++
	return c.next, nil
}

func (c *countingCompiler) Release(id uint32) {
	c.released = append(c.released, id)
}

// stubNotifier reports the paths queued since the last drain.
type stubNotifier struct {
	pending map[string]bool
	drains  int
}

func (n *stubNotifier) touch(path string) {
	if n.pending == nil {
		n.pending = map[string]bool{}
	}
	n.pending[path] = true
}

func (n *stubNotifier) Drain() map[string]bool {
	n.drains++
	out := n.pending
	n.pending = nil
	return out
}

// recordingDevice keeps every call in order.
type recordingDevice struct {
	log       []string
	draws     []scene.DrawCall
	mesh      sphere.Mesh
	stars     []mgl32.Vec3
	sphereErr error
	starsErr  error
	passSizes [][2]int32
	blitCalls int
}

func (d *recordingDevice) UploadSphere(m sphere.Mesh) error {
	d.log = append(d.log, "upload_sphere")
	d.mesh = m
	return d.sphereErr
}

func (d *recordingDevice) UploadStars(stars []mgl32.Vec3) error {
	d.log = append(d.log, "upload_stars")
	d.stars = stars
	return d.starsErr
}

func (d *recordingDevice) BeginPass(target scene.Target, w, h int32) {
	d.log = append(d.log, fmt.Sprintf("begin %d", target))
	d.passSizes = append(d.passSizes, [2]int32{w, h})
}

func (d *recordingDevice) Draw(call scene.DrawCall) {
	d.log = append(d.log, "draw "+call.Name)
	d.draws = append(d.draws, call)
}

func (d *recordingDevice) BlitLightmap(int32, int32, float32) {
	d.log = append(d.log, "blit")
	d.blitCalls++
}

func (d *recordingDevice) reset() {
	d.log = nil
	d.draws = nil
	d.passSizes = nil
}

// scriptedOverlay records events and optionally moves the sun when rendered.
type scriptedOverlay struct {
	events  []input.Event
	renders int
	stats   []Stats
	sizes   [][2]int32
	setSun  *float32
	pointer bool
}

func (o *scriptedOverlay) HandleEvent(e input.Event) {
	o.events = append(o.events, e)
}

func (o *scriptedOverlay) Render(stats Stats, sunAngle *float32, width, height int32) {
	o.renders++
	o.stats = append(o.stats, stats)
	o.sizes = append(o.sizes, [2]int32{width, height})
	if o.setSun != nil {
		*sunAngle = *o.setSun
	}
}

func (o *scriptedOverlay) WantsPointer() bool { return o.pointer }

func testSettings() Settings {
	return Settings{
		Radius:          1,
		Segments:        8,
		CloudScale:      1.02,
		RotationSpeed:   mgl32.DegToRad(45),
		CameraDistance:  3,
		FOV:             90,
		Near:            0.01,
		Far:             1000,
		ZoomMin:         1.071,
		ZoomMax:         250,
		SunAngle:        0,
		SunDistance:     10000,
		StarCount:       100,
		StarSeed:        7,
		StarDistance:    500,
		LightmapPreview: 0.25,
	}
}

const testShaderDir = "shaders"

func testShaders(t *testing.T) (*ShaderSet, *memSource, *countingCompiler) {
	t.Helper()
	src := newMemSource(testShaderDir)
	c := &countingCompiler{}
	set, err := LoadShaders(testShaderDir, src, c)
	if err != nil {
		t.Fatalf("LoadShaders failed: %v", err)
	}
	return set, src, c
}

func shaderPath(name string) string {
	return filepath.Join(testShaderDir, name)
}
