package shadow

import "github.com/Faultbox/midgard-shadows/pkg/math"

// Adjacency holds, for every triangle, the triangle across each of its three
// edges, in the same edge order as Geometry.EdgePositions. A triangle that
// lists itself marks a boundary: the edge is open or has no usable neighbor.
type Adjacency [][3]int

// IsBoundary reports whether edge e of triangle f has no neighbor.
func (a Adjacency) IsBoundary(f, e int) bool {
	return a[f][e] == f
}

// BoundaryEdges returns the number of boundary entries in the table.
func (a Adjacency) BoundaryEdges() int {
	n := 0
	for f := range a {
		for e := 0; e < 3; e++ {
			if a[f][e] == f {
				n++
			}
		}
	}
	return n
}

// edgeKey identifies an edge by its endpoint positions, independent of order.
type edgeKey struct {
	lo, hi math.Vec3
}

func makeEdgeKey(p, q math.Vec3) edgeKey {
	p, q = canonical(p), canonical(q)
	if q.Less(p) {
		p, q = q, p
	}
	return edgeKey{lo: p, hi: q}
}

// canonical folds negative zero into zero so both hash alike.
func canonical(v math.Vec3) math.Vec3 {
	if v.X == 0 {
		v.X = 0
	}
	if v.Y == 0 {
		v.Y = 0
	}
	if v.Z == 0 {
		v.Z = 0
	}
	return v
}

// BuildAdjacency computes the neighbor of every triangle edge. Two triangles
// are neighbors when they share an edge with the same two endpoint positions,
// in either direction; indices are not compared, so vertices duplicated
// across buffers still connect.
//
// When three or more triangles share an edge, the neighbor is the first other
// triangle in index order. Triangles with two corners at the same position
// never become anyone's neighbor, but still find neighbors along their
// non-degenerate edges.
//
// Positions are compared exactly. Weld nearly coincident vertices first or
// their edges count as boundaries.
//
// dst is reused when it has enough capacity.
func BuildAdjacency(dst Adjacency, vertices []math.Vec3, indices []uint32) Adjacency {
	faces := len(indices) / 3
	if cap(dst) < faces {
		dst = make(Adjacency, faces)
	} else {
		dst = dst[:faces]
	}

	corners := func(f int) [3]math.Vec3 {
		i := 3 * f
		return [3]math.Vec3{vertices[indices[i]], vertices[indices[i+1]], vertices[indices[i+2]]}
	}

	// Faces are appended in ascending order, so each list is in index order.
	edges := make(map[edgeKey][]int, faces*3/2)
	for f := 0; f < faces; f++ {
		p := corners(f)
		if p[0] == p[1] || p[1] == p[2] || p[2] == p[0] {
			continue
		}
		for e := 0; e < 3; e++ {
			k := makeEdgeKey(p[e], p[(e+1)%3])
			edges[k] = append(edges[k], f)
		}
	}

	for f := 0; f < faces; f++ {
		p := corners(f)
		for e := 0; e < 3; e++ {
			dst[f][e] = f
			v0, v1 := p[e], p[(e+1)%3]
			if v0 == v1 {
				continue
			}
			for _, g := range edges[makeEdgeKey(v0, v1)] {
				if g != f {
					dst[f][e] = g
					break
				}
			}
		}
	}

	return dst
}
