package model

import "github.com/Faultbox/midgard-shadows/pkg/math"

// BufferCount returns the number of sub-buffers.
func (m *Mesh) BufferCount() int {
	if m == nil {
		return 0
	}
	return len(m.Buffers)
}

// BufferAt returns the positions and triangle indices of buffer i.
func (m *Mesh) BufferAt(i int) ([]math.Vec3, []uint32) {
	b := &m.Buffers[i]
	return b.Positions, b.Indices
}

// VertexCount returns the total vertex count over all buffers.
func (m *Mesh) VertexCount() int {
	n := 0
	for i := range m.Buffers {
		n += len(m.Buffers[i].Positions)
	}
	return n
}

// TriangleCount returns the total triangle count over all buffers.
func (m *Mesh) TriangleCount() int {
	n := 0
	for i := range m.Buffers {
		n += len(m.Buffers[i].Indices) / 3
	}
	return n
}

// Bounds returns the bounding box of every position in the mesh.
// An empty mesh has zero bounds.
func (m *Mesh) Bounds() Bounds {
	var b Bounds
	first := true
	for i := range m.Buffers {
		for _, p := range m.Buffers[i].Positions {
			if first {
				b = Bounds{Min: p, Max: p}
				first = false
				continue
			}
			b.Min = b.Min.Min(p)
			b.Max = b.Max.Max(p)
		}
	}
	return b
}

// Transform returns a copy of the mesh with every position transformed by m4.
// Winding is left unchanged, so mirroring transforms flip facing.
func (m *Mesh) Transform(m4 math.Mat4) *Mesh {
	out := &Mesh{Name: m.Name, Buffers: make([]Buffer, len(m.Buffers))}
	for i := range m.Buffers {
		src := &m.Buffers[i]
		dst := &out.Buffers[i]
		dst.Positions = make([]math.Vec3, len(src.Positions))
		for j, p := range src.Positions {
			dst.Positions[j] = m4.TransformVec3(p)
		}
		dst.Indices = append([]uint32(nil), src.Indices...)
	}
	return out
}
