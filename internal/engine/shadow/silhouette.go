package shadow

import "github.com/Faultbox/midgard-shadows/pkg/math"

// lightEpsilon stands in for a zero light vector.
var lightEpsilon = math.Vec3{X: 0.0001, Y: 0.0001, Z: 0.0001}

// SafeLight returns light, or a small positive vector when light is zero.
func SafeLight(light math.Vec3) math.Vec3 {
	if light.IsZero() {
		return lightEpsilon
	}
	return light
}

// IsFrontFacing reports whether the counter-clockwise triangle (a, b, c) faces
// the light vector, i.e. the light lies strictly on the positive side of its
// plane. Triangles edge-on to the light are back-facing.
func IsFrontFacing(a, b, c, light math.Vec3) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	return n.Dot(light) > 0
}

// Edge is a silhouette edge, kept as positions in the winding order of the
// front-facing triangle it belongs to.
type Edge struct {
	A, B math.Vec3
}

// Classifier holds the per-light facing table and silhouette list. Both are
// scratch buffers, overwritten on every Classify call.
type Classifier struct {
	front []bool
	edges []Edge
}

// Classify marks every triangle of g as front- or back-facing for the light
// vector and collects the silhouette: each edge of a front-facing triangle
// whose neighbor is back-facing or missing. Edges are emitted in
// triangle/edge scan order.
//
// The returned slices alias the classifier and are valid until the next call.
func (c *Classifier) Classify(g *Geometry, adj Adjacency, light math.Vec3) ([]bool, []Edge) {
	light = SafeLight(light)
	faces := g.FaceCount()

	if cap(c.front) < faces {
		c.front = make([]bool, faces)
	} else {
		c.front = c.front[:faces]
	}
	for f := 0; f < faces; f++ {
		a, b, cc := g.Face(f)
		c.front[f] = IsFrontFacing(a, b, cc, light)
	}

	c.edges = c.edges[:0]
	for f := 0; f < faces; f++ {
		if !c.front[f] {
			continue
		}
		for e := 0; e < 3; e++ {
			// A table that does not cover f is treated as all boundary.
			if f < len(adj) {
				if n := adj[f][e]; n != f && n < faces && c.front[n] {
					continue
				}
			}
			v0, v1 := g.EdgePositions(f, e)
			c.edges = append(c.edges, Edge{A: v0, B: v1})
		}
	}

	return c.front, c.edges
}

// CountFront returns the number of true entries in a facing table.
func CountFront(front []bool) int {
	n := 0
	for _, f := range front {
		if f {
			n++
		}
	}
	return n
}
