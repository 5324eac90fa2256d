package starfield

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestBuildCount(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, count := range []int{0, 1, 10, 5000} {
		stars := Build(count, rng)
		if len(stars) != count {
			t.Errorf("expected %d stars, got %d", count, len(stars))
		}
	}
}

func TestBuildNegativeCount(t *testing.T) {
	stars := Build(-3, rand.New(rand.NewPCG(1, 2)))
	if stars == nil || len(stars) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", stars)
	}
}

func TestBuildUnitLength(t *testing.T) {
	stars := Build(2000, rand.New(rand.NewPCG(7, 7)))
	for i, s := range stars {
		if math.Abs(float64(s.Len())-1) > 1e-5 {
			t.Errorf("star %d has length %g", i, s.Len())
		}
	}
}

func TestBuildUniform(t *testing.T) {
	const count = 20000
	stars := Build(count, rand.New(rand.NewPCG(42, 99)))

	// Each axis splits the sphere into hemispheres of equal area.
	for axis := 0; axis < 3; axis++ {
		positive := 0
		for _, s := range stars {
			if s[axis] > 0 {
				positive++
			}
		}
		if frac := float64(positive) / count; frac < 0.47 || frac > 0.53 {
			t.Errorf("axis %d: expected balanced hemispheres, got %.3f positive", axis, frac)
		}
	}

	// Uniform on the sphere means z is uniform on [-1, 1]; the polar caps |z| > 0.9
	// hold 10% of the points.
	caps := 0
	for _, s := range stars {
		if math.Abs(float64(s[2])) > 0.9 {
			caps++
		}
	}
	if frac := float64(caps) / count; frac < 0.08 || frac > 0.12 {
		t.Errorf("expected ~10%% of stars in the polar caps, got %.3f", frac)
	}
}

func TestNewSeeded(t *testing.T) {
	a := New(100, 1234)
	b := New(100, 1234)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("star %d differs for the same seed: %v vs %v", i, a[i], b[i])
		}
	}

	c := New(100, 4321)
	same := 0
	for i := range a {
		if a[i] == c[i] {
			same++
		}
	}
	if same == len(a) {
		t.Error("expected different seeds to produce different starfields")
	}
}

func TestNewUnseeded(t *testing.T) {
	stars := New(50, 0)
	if len(stars) != 50 {
		t.Fatalf("expected 50 stars, got %d", len(stars))
	}
}
