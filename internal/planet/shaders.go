package planet

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/engine/scene"
	"github.com/Faultbox/planetview/internal/engine/shader"
	"github.com/Faultbox/planetview/internal/logger"
)

// Shader unit names.
const (
	UnitPlanet       = "planet"
	UnitPlanetShadow = "planet_shadow"
	UnitCloud        = "cloud"
	UnitCloudShadow  = "cloud_shadow"
	UnitStar         = "star"
)

// unitFiles maps each unit to its vertex and fragment source files.
var unitFiles = []struct {
	name, vertex, fragment string
}{
	{UnitPlanet, "planet.vert", "planet.frag"},
	{UnitPlanetShadow, "planet.vert", "planet_shadowmap.frag"},
	{UnitCloud, "cloud.vert", "cloud.frag"},
	{UnitCloudShadow, "cloud.vert", "cloud_shadowmap.frag"},
	{UnitStar, "star.vert", "star.frag"},
}

// ShaderPaths lists every source file the units read from dir.
func ShaderPaths(dir string) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, f := range unitFiles {
		for _, name := range []string{f.vertex, f.fragment} {
			p := filepath.Join(dir, name)
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	return paths
}

// Notifier reports which files changed since it was last asked.
type Notifier interface {
	Drain() map[string]bool
}

// ShaderSet holds the five shader units and keeps them current.
type ShaderSet struct {
	units    []*shader.Unit
	byName   map[string]*shader.Unit
	notifier Notifier
	log      *zap.Logger

	// Last error logged per unit; cleared once the unit is healthy again
	failing map[string]string
}

// LoadShaders compiles every unit from dir. Any failure is fatal and releases
// the units already built.
func LoadShaders(dir string, src shader.Source, c shader.Compiler) (*ShaderSet, error) {
	s := &ShaderSet{
		byName:  make(map[string]*shader.Unit, len(unitFiles)),
		failing: make(map[string]string),
		log:     logger.Named("shaders"),
	}

	for _, f := range unitFiles {
		u, err := shader.Load(f.name, filepath.Join(dir, f.vertex), filepath.Join(dir, f.fragment), src, c)
		if err != nil {
			s.Release()
			return nil, fmt.Errorf("loading shaders from %s: %w", dir, err)
		}
		s.units = append(s.units, u)
		s.byName[f.name] = u
	}

	s.log.Info("shaders loaded", zap.String("dir", dir), zap.Int("units", len(s.units)))
	return s, nil
}

// Watch switches from polling every unit each frame to checking only units
// whose files were reported changed, plus units whose last reload failed.
func (s *ShaderSet) Watch(n Notifier) {
	s.notifier = n
}

// Reload checks units for stale sources and rebuilds them. Errors are logged
// once per distinct message and never returned; the unit keeps its last good
// program. Returns the number of units rebuilt.
func (s *ShaderSet) Reload() int {
	var touched map[string]bool
	if s.notifier != nil {
		touched = s.notifier.Drain()
	}

	reloaded := 0
	for _, u := range s.units {
		if s.notifier != nil {
			vertex, fragment := u.Paths()
			_, failing := s.failing[u.Name()]
			if !touched[vertex] && !touched[fragment] && !failing {
				continue
			}
		}

		ok, err := u.ReloadIfStale()
		if err != nil {
			msg := err.Error()
			if s.failing[u.Name()] != msg {
				s.log.Warn("shader reload failed, keeping previous program",
					zap.String("unit", u.Name()),
					zap.Error(err),
				)
				s.failing[u.Name()] = msg
			}
			continue
		}

		delete(s.failing, u.Name())
		if ok {
			reloaded++
			s.log.Info("shader reloaded",
				zap.String("unit", u.Name()),
				zap.Uint32("program", u.Program().ID),
			)
		}
	}
	return reloaded
}

// Unit returns a unit by name, or nil.
func (s *ShaderSet) Unit(name string) *shader.Unit {
	return s.byName[name]
}

// Failing reports whether the unit's most recent reload attempt failed.
func (s *ShaderSet) Failing(name string) bool {
	_, ok := s.failing[name]
	return ok
}

// Programs returns the current program of every unit.
func (s *ShaderSet) Programs() scene.Programs {
	return scene.Programs{
		Planet:       s.byName[UnitPlanet].Program().ID,
		PlanetShadow: s.byName[UnitPlanetShadow].Program().ID,
		Cloud:        s.byName[UnitCloud].Program().ID,
		CloudShadow:  s.byName[UnitCloudShadow].Program().ID,
		Star:         s.byName[UnitStar].Program().ID,
	}
}

// Release frees every program.
func (s *ShaderSet) Release() {
	for _, u := range s.units {
		u.Release()
	}
}
