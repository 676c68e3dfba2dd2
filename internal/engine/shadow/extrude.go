package shadow

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// DefaultInfinity is the default extrusion distance.
const DefaultInfinity = 10000

// ErrUnknownMethod is returned by ParseMethod.
var ErrUnknownMethod = errors.New("unknown shadow method")

// Method is the stencil counting convention a volume is drawn with.
type Method int

const (
	// ZFail counts back faces that fail the depth test. Needs capped volumes.
	ZFail Method = iota
	// ZPass counts faces that pass the depth test. Caps are optional.
	ZPass
)

// String returns the config name of the method.
func (m Method) String() string {
	switch m {
	case ZFail:
		return "zfail"
	case ZPass:
		return "zpass"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseMethod parses "zfail" or "zpass".
func ParseMethod(s string) (Method, error) {
	switch s {
	case "zfail":
		return ZFail, nil
	case "zpass":
		return ZPass, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Extruder turns a classified mesh into volume triangles.
type Extruder struct {
	Method Method
	// Infinity scales the light vector to push the far end of the volume out
	// of the scene. It is not range-checked.
	Infinity float32
	// NoZPassCaps omits caps from ZPass volumes. ZFail volumes are always capped.
	NoZPassCaps bool
}

// Capped reports whether near and far caps are emitted.
func (x Extruder) Capped() bool {
	return x.Method == ZFail || !x.NoZPassCaps
}

// PointCount returns the number of points Extrude appends for the given
// classification.
func (x Extruder) PointCount(frontFaces, silhouetteEdges int) int {
	n := 6 * silhouetteEdges
	if x.Capped() {
		n += 6 * frontFaces
	}
	return n
}

// Extrude appends the volume triangles to dst. Every point is moved away from
// the light by light*Infinity to form the far end.
//
// Caps come first: for each front-facing triangle a near cap with reversed
// winding and a far cap with the original winding. Then each silhouette edge
// (A, B) adds the quad (A, B, A') (B, B', A').
func (x Extruder) Extrude(dst *Volume, g *Geometry, front []bool, edges []Edge, light math.Vec3) {
	ls := SafeLight(light).Scale(x.Infinity)

	if x.Capped() {
		for f, isFront := range front {
			if !isFront {
				continue
			}
			a, b, c := g.Face(f)
			dst.addTriangle(a, c, b)
			dst.addTriangle(a.Sub(ls), b.Sub(ls), c.Sub(ls))
		}
	}

	for _, e := range edges {
		farA := e.A.Sub(ls)
		farB := e.B.Sub(ls)
		dst.addTriangle(e.A, e.B, farA)
		dst.addTriangle(e.B, farB, farA)
	}
}
