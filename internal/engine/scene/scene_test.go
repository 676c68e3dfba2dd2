package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-shadows/internal/engine/lighting"
	"github.com/Faultbox/midgard-shadows/internal/engine/shadow"
	"github.com/Faultbox/midgard-shadows/pkg/math"
)

const cubeScene = `
name: cube
mesh:
  primitive: cube
  size: 2
transform:
  position: [0, 0, 0]
lights:
  - type: point
    position: [0, 0, 100]
    radius: 1000
  - type: directional
    direction: [0, -1, 0]
    cast_shadows: false
`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	s, err := Load(writeScene(t, cubeScene))
	require.NoError(t, err)

	assert.Equal(t, "cube", s.Name)
	assert.Equal(t, 8, s.Mesh.VertexCount())
	assert.Equal(t, 12, s.Mesh.TriangleCount())
	require.Len(t, s.Lights, 2)

	assert.Equal(t, lighting.Point, s.Lights[0].Type)
	assert.Equal(t, math.Vec3{Z: 100}, s.Lights[0].Position)
	assert.True(t, s.Lights[0].CastShadows)

	assert.Equal(t, lighting.Directional, s.Lights[1].Type)
	assert.False(t, s.Lights[1].CastShadows)
}

func TestLoadDefaultsNameToPath(t *testing.T) {
	path := writeScene(t, "mesh: {primitive: plane}\n")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestUpdate(t *testing.T) {
	s, err := Parse([]byte(cubeScene))
	require.NoError(t, err)

	opts := shadow.DefaultOptions()
	opts.Method = shadow.ZPass
	opts.NoZPassCaps = true
	s.Attach(opts)

	vols := s.Update()
	require.Len(t, vols, 1)
	assert.Equal(t, 0, vols[0].Light)
	assert.Equal(t, 8, vols[0].TriangleCount())
	assert.Equal(t, uint64(1), s.Frame())
	assert.Len(t, s.ActiveLights(), 2)
}

func TestUpdateAttachesDefaults(t *testing.T) {
	s, err := Parse([]byte(cubeScene))
	require.NoError(t, err)
	assert.Nil(t, s.Node())
	assert.Nil(t, s.ActiveLights())

	vols := s.Update()
	require.NotNil(t, s.Node())
	assert.Equal(t, shadow.ZFail, s.Node().Method())
	require.Len(t, vols, 1)
	assert.Equal(t, 12, vols[0].TriangleCount())
}

func TestUpdateLimitsLights(t *testing.T) {
	s, err := Parse([]byte(`
mesh: {primitive: sphere, rings: 4, segments: 6}
lights:
  - {position: [5, 0, 0], radius: 10}
  - {position: [0, 5, 0], radius: 10}
  - {position: [0, 0, 5], radius: 10}
`))
	require.NoError(t, err)

	opts := shadow.DefaultOptions()
	opts.MaxLights = 2
	s.Attach(opts)

	vols := s.Update()
	assert.Len(t, s.ActiveLights(), 2)
	assert.Len(t, vols, 2)
}

func TestUpdateFollowsTransform(t *testing.T) {
	s, err := Parse([]byte(`
mesh: {primitive: cube}
transform:
  position: [0, 0, 50]
lights:
  - {position: [0, 0, 100], radius: 40}
`))
	require.NoError(t, err)

	// 50 units away, outside the radius.
	assert.Empty(t, s.Update())

	s.World = math.Translate(0, 0, 70)
	assert.Len(t, s.Update(), 1)
}

func TestInlineBuffers(t *testing.T) {
	s, err := Parse([]byte(`
mesh:
  buffers:
    - positions: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
      indices: [0, 1, 2]
    - positions: [[1, 0, 0], [0, 0, 0], [0, -1, 0]]
      indices: [0, 1, 2]
`))
	require.NoError(t, err)
	require.Equal(t, 2, s.Mesh.BufferCount())
	assert.Equal(t, 6, s.Mesh.VertexCount())

	s.Attach(shadow.DefaultOptions())
	s.Update()
	// The two triangles meet along (0,0,0)-(1,0,0) across buffers.
	assert.Equal(t, 4, s.Node().Adjacency().BoundaryEdges())
}

func TestTransformMatrix(t *testing.T) {
	scale := [3]float32{2, 2, 2}
	tr := TransformSpec{
		Position: [3]float32{1, 2, 3},
		Rotation: &RotationSpec{Axis: [3]float32{0, 0, 1}, Degrees: 90},
		Scale:    &scale,
	}
	got := tr.Matrix().TransformVec3(math.Vec3{X: 1})
	assert.InDelta(t, 1, got.X, 1e-5)
	assert.InDelta(t, 4, got.Y, 1e-5)
	assert.InDelta(t, 3, got.Z, 1e-5)

	assert.Equal(t, math.Identity(), TransformSpec{}.Matrix())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"bad yaml", "mesh: [", ErrInvalidScene},
		{"no mesh", "name: empty\n", ErrInvalidScene},
		{"unknown primitive", "mesh: {primitive: torus}\n", ErrUnknownPrimitive},
		{"primitive and buffers", "mesh: {primitive: cube, buffers: [{positions: [[0,0,0]], indices: []}]}\n", ErrInvalidScene},
		{"negative size", "mesh: {primitive: cube, size: -1}\n", ErrInvalidScene},
		{"partial triangle", "mesh: {buffers: [{positions: [[0,0,0],[1,0,0]], indices: [0, 1]}]}\n", ErrInvalidScene},
		{"index out of range", "mesh: {buffers: [{positions: [[0,0,0]], indices: [0, 0, 3]}]}\n", ErrInvalidScene},
		{"unknown light", "mesh: {primitive: cube}\nlights: [{type: spot}]\n", ErrInvalidScene},
		{"directional without direction", "mesh: {primitive: cube}\nlights: [{type: directional}]\n", ErrInvalidScene},
		{"negative radius", "mesh: {primitive: cube}\nlights: [{radius: -2}]\n", ErrInvalidScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestSunLight(t *testing.T) {
	s, err := Parse([]byte("mesh: {primitive: cube}\nlights: [{type: sun, longitude: 0, latitude: 90}]\n"))
	require.NoError(t, err)
	require.Len(t, s.Lights, 1)

	l := s.Lights[0]
	assert.Equal(t, lighting.Directional, l.Type)
	assert.True(t, l.CastShadows)
	assert.InDelta(t, -1, l.Direction.Y, 1e-5)
	assert.InDelta(t, 0, l.Direction.X, 1e-5)
	assert.InDelta(t, 0, l.Direction.Z, 1e-5)
}
