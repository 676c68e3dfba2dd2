package shadow

import (
	"slices"

	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// Volume is the shadow volume of one light: a flat point list where every
// three consecutive points form a triangle, in object space.
//
// The backing array only grows. Reset truncates the list but keeps the
// capacity, so a volume reused every frame stops allocating once it has seen
// its largest frame.
type Volume struct {
	// Light is the index of the light in the list passed to Node.Update.
	Light int
	// FrontFaces and SilhouetteEdges describe the last construction.
	FrontFaces      int
	SilhouetteEdges int

	points []math.Vec3
}

// Reset empties the volume and assigns it to a light slot.
func (v *Volume) Reset(light int) {
	v.Light = light
	v.FrontFaces = 0
	v.SilhouetteEdges = 0
	v.points = v.points[:0]
}

// Reserve grows the capacity to hold at least n points.
func (v *Volume) Reserve(n int) {
	if n > cap(v.points) {
		v.points = slices.Grow(v.points, n-len(v.points))
	}
}

// Points returns the triangle soup. The slice aliases the volume and is
// valid until the next Reset.
func (v *Volume) Points() []math.Vec3 {
	return v.points
}

// Len returns the number of points.
func (v *Volume) Len() int {
	return len(v.points)
}

// Cap returns the number of points the volume can hold without allocating.
func (v *Volume) Cap() int {
	return cap(v.points)
}

// TriangleCount returns Len()/3.
func (v *Volume) TriangleCount() int {
	return len(v.points) / 3
}

// Empty reports whether the volume has no triangles.
func (v *Volume) Empty() bool {
	return len(v.points) == 0
}

// Bounds returns the axis-aligned bounds of the volume. ok is false when the
// volume is empty.
func (v *Volume) Bounds() (min, max math.Vec3, ok bool) {
	if len(v.points) == 0 {
		return math.Vec3{}, math.Vec3{}, false
	}
	min, max = v.points[0], v.points[0]
	for _, p := range v.points[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max, true
}

func (v *Volume) addTriangle(a, b, c math.Vec3) {
	v.points = append(v.points, a, b, c)
}
