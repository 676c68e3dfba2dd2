package renderer

import (
	"github.com/Faultbox/midgard-shadows/internal/engine/model"
	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// Vertex is a flat-shaded mesh vertex.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// FlatVertices expands every triangle of mesh into three vertices sharing the
// face normal. Degenerate triangles get a zero normal; triangles with an index
// outside their buffer are skipped.
func FlatVertices(mesh *model.Mesh) []Vertex {
	out := make([]Vertex, 0, mesh.TriangleCount()*3)
	for i := 0; i < mesh.BufferCount(); i++ {
		positions, indices := mesh.BufferAt(i)
		n := uint32(len(positions))
		for t := 0; t+2 < len(indices); t += 3 {
			ia, ib, ic := indices[t], indices[t+1], indices[t+2]
			if ia >= n || ib >= n || ic >= n {
				continue
			}
			a, b, c := positions[ia], positions[ib], positions[ic]
			normal := b.Sub(a).Cross(c.Sub(a)).Normalize()
			out = append(out,
				Vertex{Position: a, Normal: normal},
				Vertex{Position: b, Normal: normal},
				Vertex{Position: c, Normal: normal},
			)
		}
	}
	return out
}
