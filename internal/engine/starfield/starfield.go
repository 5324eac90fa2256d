// Package starfield generates uniformly distributed star directions for the point-cloud backdrop.
package starfield

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// minLength rejects Gaussian samples too close to the origin to normalize reliably.
const minLength = 1e-6

// Build returns count unit vectors sampled uniformly on the sphere.
// Each point normalizes three independent standard normal samples, which avoids
// the pole clustering of independent angle sampling.
func Build(count int, rng *rand.Rand) []mgl32.Vec3 {
	if count <= 0 {
		return []mgl32.Vec3{}
	}

	stars := make([]mgl32.Vec3, 0, count)
	for len(stars) < count {
		x, y, z := rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()
		l := math.Sqrt(x*x + y*y + z*z)
		if l < minLength {
			continue
		}
		stars = append(stars, mgl32.Vec3{float32(x / l), float32(y / l), float32(z / l)})
	}
	return stars
}

// New builds a starfield from a seed. Seed 0 picks a fresh random source,
// so every session gets a different sky.
func New(count int, seed uint64) []mgl32.Vec3 {
	var src rand.Source
	if seed == 0 {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	} else {
		src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
	return Build(count, rand.New(src))
}
