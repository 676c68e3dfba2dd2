// Package stencil draws shadow volumes into the stencil buffer and composites
// the shadowed area with a full-screen quad.
package stencil

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-shadows/internal/engine/shadow"
)

// Pass is one culled draw of a shadow volume.
type Pass struct {
	// Cull is the face culled during the draw, gl.FRONT or gl.BACK.
	Cull uint32
	// DepthFail and DepthPass are the stencil ops applied to the drawn faces.
	DepthFail uint32
	DepthPass uint32
}

// Passes returns the two culled draws for method, in draw order. The
// incrementing draw comes first so clamped counters never underflow.
//
// Volumes are wound clockwise when seen from outside, so these assume
// FrontFace(CW).
func Passes(method shadow.Method) [2]Pass {
	if method == shadow.ZPass {
		return [2]Pass{
			{Cull: gl.BACK, DepthFail: gl.KEEP, DepthPass: gl.INCR},
			{Cull: gl.FRONT, DepthFail: gl.KEEP, DepthPass: gl.DECR},
		}
	}
	return [2]Pass{
		{Cull: gl.FRONT, DepthFail: gl.INCR, DepthPass: gl.KEEP},
		{Cull: gl.BACK, DepthFail: gl.DECR, DepthPass: gl.KEEP},
	}
}

// FaceOps holds the stencil ops for one face orientation in a single
// two-sided draw.
type FaceOps struct {
	DepthFail uint32
	DepthPass uint32
}

// SeparateOps returns the front and back face ops for drawing a volume once
// with culling disabled. Both faces land in one draw in no fixed order, so
// the counters wrap instead of clamping.
func SeparateOps(method shadow.Method) (front, back FaceOps) {
	if method == shadow.ZPass {
		return FaceOps{DepthFail: gl.KEEP, DepthPass: gl.INCR_WRAP},
			FaceOps{DepthFail: gl.KEEP, DepthPass: gl.DECR_WRAP}
	}
	return FaceOps{DepthFail: gl.DECR_WRAP, DepthPass: gl.KEEP},
		FaceOps{DepthFail: gl.INCR_WRAP, DepthPass: gl.KEEP}
}

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

// Corners are the colors of the composite quad, in left-up, left-down,
// right-up, right-down order.
type Corners [4]Color

// Solid returns corners that all share c.
func Solid(c Color) Corners {
	return Corners{c, c, c, c}
}

// DefaultShadowColor is a translucent black.
var DefaultShadowColor = Color{0, 0, 0, 0.5}
