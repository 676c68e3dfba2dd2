package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-shadows/pkg/math"
)

func TestOrbitPosition(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	c.Distance = 5
	c.RotationX = 0
	c.RotationY = 0

	got := c.Position()
	assert.InDelta(t, 1, got.X, 1e-5)
	assert.InDelta(t, 2, got.Y, 1e-5)
	assert.InDelta(t, 8, got.Z, 1e-5)
	assert.InDelta(t, 5, got.Distance(c.Center), 1e-4)
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.RotationX)
	c.HandleDrag(0, -1e6)
	assert.Equal(t, c.MinPitch, c.RotationX)
}

func TestHandleZoomClampsDistance(t *testing.T) {
	c := NewOrbitCamera()
	before := c.Distance
	c.HandleZoom(1)
	assert.Less(t, c.Distance, before)

	for i := 0; i < 200; i++ {
		c.HandleZoom(5)
	}
	assert.Equal(t, c.MinDistance, c.Distance)
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 3, Y: 1, Z: 1})

	assert.Equal(t, math.Vec3{X: 1}, c.Center)
	assert.Greater(t, c.Distance, float32(2))
}

func TestViewLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 4, Y: -2, Z: 7}

	got := c.ViewMatrix().TransformVec3(c.Center)
	assert.InDelta(t, 0, got.X, 1e-4)
	assert.InDelta(t, 0, got.Y, 1e-4)
	assert.InDelta(t, -c.Distance, got.Z, 1e-4)
}
