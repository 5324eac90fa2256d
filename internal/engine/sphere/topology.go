package sphere

import "fmt"

// Weld returns a remap table that sends every seam duplicate to its column-0 twin.
// All other indices map to themselves. Topology checks run on the welded indices,
// since the seam copies exist only to keep texture coordinates continuous.
func Weld(m Mesh) []uint32 {
	remap := make([]uint32, len(m.Vertices))
	for i := range remap {
		remap[i] = uint32(i)
	}

	hsegs := m.HorizontalSegments()
	stride := hsegs + 1
	for j := 0; j < m.Segments-1; j++ {
		row := 1 + j*stride
		remap[row+hsegs] = uint32(row)
	}
	return remap
}

type edge struct {
	a, b uint32
}

// CheckClosed verifies the welded mesh is a closed 2-manifold: every directed edge
// occurs exactly once and its reverse occurs exactly once.
func CheckClosed(m Mesh) error {
	remap := Weld(m)
	directed := make(map[edge]int, len(m.Triangles)*3)

	for ti, t := range m.Triangles {
		for k := 0; k < 3; k++ {
			a := remap[t[k]]
			b := remap[t[(k+1)%3]]
			if a == b {
				return fmt.Errorf("triangle %d is degenerate after welding: %v", ti, t)
			}
			directed[edge{a, b}]++
		}
	}

	for e, n := range directed {
		if n != 1 {
			return fmt.Errorf("edge %d->%d used %d times", e.a, e.b, n)
		}
		if directed[edge{e.b, e.a}] != 1 {
			return fmt.Errorf("edge %d->%d has no matching reverse edge", e.a, e.b)
		}
	}
	return nil
}
