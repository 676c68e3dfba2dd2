package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-shadows/internal/engine/model"
	"github.com/Faultbox/midgard-shadows/pkg/math"
)

func TestFlatVerticesCube(t *testing.T) {
	verts := FlatVertices(model.Cube(2))
	require.Len(t, verts, 36)

	for i := 0; i < len(verts); i += 3 {
		n := verts[i].Normal
		assert.InDelta(t, 1, n.Length(), 1e-5)
		// Outward: the normal points the same way as the face center.
		center := verts[i].Position.Add(verts[i+1].Position).Add(verts[i+2].Position)
		assert.Greater(t, n.Dot(center), float32(0))
		assert.Equal(t, n, verts[i+1].Normal)
		assert.Equal(t, n, verts[i+2].Normal)
	}
}

func TestFlatVerticesPlane(t *testing.T) {
	for _, v := range FlatVertices(model.Plane(4)) {
		assert.Equal(t, math.Vec3{Y: 1}, v.Normal)
	}
}

func TestFlatVerticesSkipsInvalid(t *testing.T) {
	mesh := &model.Mesh{Buffers: []model.Buffer{{
		Positions: []math.Vec3{{}, {X: 1}, {X: 2}},
		Indices:   []uint32{0, 1, 2, 0, 1, 5},
	}}}

	verts := FlatVertices(mesh)
	require.Len(t, verts, 3)
	assert.True(t, verts[0].Normal.IsZero(), "collinear triangle has no normal")
}
