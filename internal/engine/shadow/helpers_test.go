package shadow

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-shadows/internal/engine/model"
	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// flatten returns the flattened geometry and adjacency of mesh.
func flatten(t *testing.T, mesh Mesh) (*Geometry, Adjacency) {
	t.Helper()
	g := &Geometry{}
	g.Flatten(mesh)
	return g, BuildAdjacency(nil, g.Vertices, g.Indices)
}

// singleTriangle is an open mesh of one triangle facing +Z.
func singleTriangle() *model.Mesh {
	return &model.Mesh{Buffers: []model.Buffer{{
		Positions: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Indices:   []uint32{0, 1, 2},
	}}}
}

// requireWatertight checks that every directed triangle edge of the soup is
// matched by the same edge in the opposite direction.
func requireWatertight(t *testing.T, points []math.Vec3) {
	t.Helper()
	require.Zero(t, len(points)%3, "point count must be a multiple of 3")

	type directed struct{ from, to math.Vec3 }
	counts := make(map[directed]int)
	for i := 0; i < len(points); i += 3 {
		for e := 0; e < 3; e++ {
			counts[directed{points[i+e], points[i+(e+1)%3]}]++
		}
	}
	for d, n := range counts {
		require.Equalf(t, n, counts[directed{d.to, d.from}],
			"edge %v -> %v has no matching reverse edge", d.from, d.to)
	}
}
