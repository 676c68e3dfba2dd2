package shadow

import "github.com/Faultbox/midgard-shadows/pkg/math"

// Mesh is the source geometry of a shadow volume: an ordered list of buffers,
// each with its own positions and triangle indices local to that buffer.
type Mesh interface {
	BufferCount() int
	BufferAt(i int) (positions []math.Vec3, indices []uint32)
}

// Geometry is a mesh flattened into one position array and one triangle list.
type Geometry struct {
	Vertices []math.Vec3
	Indices  []uint32

	// source totals from the last Flatten, used as the shape-change detector
	srcVertices int
	srcIndices  int
}

// Flatten copies every buffer of mesh into g, offsetting indices by the
// running vertex count. Coincident vertices are not merged. Triangles with an
// index outside their own buffer are dropped, as are trailing indices that do
// not form a whole triangle.
//
// It returns true when the total source vertex or index count differs from the
// previous call. Edits that keep both counts are not detected.
func (g *Geometry) Flatten(mesh Mesh) bool {
	g.Vertices = g.Vertices[:0]
	g.Indices = g.Indices[:0]

	var totalVertices, totalIndices int
	if mesh != nil {
		for i := 0; i < mesh.BufferCount(); i++ {
			positions, indices := mesh.BufferAt(i)
			totalVertices += len(positions)
			totalIndices += len(indices)

			base := uint32(len(g.Vertices))
			count := uint32(len(positions))
			g.Vertices = append(g.Vertices, positions...)

			for t := 0; t+2 < len(indices); t += 3 {
				a, b, c := indices[t], indices[t+1], indices[t+2]
				if a >= count || b >= count || c >= count {
					continue
				}
				g.Indices = append(g.Indices, base+a, base+b, base+c)
			}
		}
	}

	changed := totalVertices != g.srcVertices || totalIndices != g.srcIndices
	g.srcVertices = totalVertices
	g.srcIndices = totalIndices
	return changed
}

// FaceCount returns the number of triangles.
func (g *Geometry) FaceCount() int {
	return len(g.Indices) / 3
}

// Face returns the three corner positions of triangle f.
func (g *Geometry) Face(f int) (a, b, c math.Vec3) {
	i := 3 * f
	return g.Vertices[g.Indices[i]], g.Vertices[g.Indices[i+1]], g.Vertices[g.Indices[i+2]]
}

// EdgePositions returns the endpoints of edge e of triangle f.
// Edge 0 runs v0->v1, edge 1 v1->v2 and edge 2 v2->v0.
func (g *Geometry) EdgePositions(f, e int) (math.Vec3, math.Vec3) {
	i := 3 * f
	return g.Vertices[g.Indices[i+e]], g.Vertices[g.Indices[i+(e+1)%3]]
}
