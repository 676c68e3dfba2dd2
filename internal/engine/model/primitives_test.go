package model

import (
	"testing"

	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// assertOutward checks that every triangle of a convex, origin-centered mesh
// is wound counter-clockwise when seen from outside.
func assertOutward(t *testing.T, m *Mesh) {
	t.Helper()
	for bi, b := range m.Buffers {
		for i := 0; i+2 < len(b.Indices); i += 3 {
			p0 := b.Positions[b.Indices[i]]
			p1 := b.Positions[b.Indices[i+1]]
			p2 := b.Positions[b.Indices[i+2]]
			n := p1.Sub(p0).Cross(p2.Sub(p0))
			centroid := p0.Add(p1).Add(p2).Scale(1.0 / 3)
			if n.Dot(centroid) <= 0 {
				t.Errorf("%s buffer %d triangle %d faces inward", m.Name, bi, i/3)
			}
		}
	}
}

func TestCube(t *testing.T) {
	m := Cube(2)
	if m.VertexCount() != 8 {
		t.Errorf("VertexCount = %d, want 8", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", m.TriangleCount())
	}
	assertOutward(t, m)

	b := m.Bounds()
	if b.Min != (math.Vec3{X: -1, Y: -1, Z: -1}) || b.Max != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Bounds = %+v", b)
	}
	if b.Center() != (math.Vec3{}) {
		t.Errorf("Center = %v, want origin", b.Center())
	}
}

func TestCubeUnwelded(t *testing.T) {
	m := CubeUnwelded(2)
	if m.BufferCount() != 6 {
		t.Errorf("BufferCount = %d, want 6", m.BufferCount())
	}
	if m.VertexCount() != 24 {
		t.Errorf("VertexCount = %d, want 24", m.VertexCount())
	}
	if m.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", m.TriangleCount())
	}
	assertOutward(t, m)
}

func TestPlaneFacesUp(t *testing.T) {
	m := Plane(4)
	b := m.Buffers[0]
	for i := 0; i < len(b.Indices); i += 3 {
		p0 := b.Positions[b.Indices[i]]
		p1 := b.Positions[b.Indices[i+1]]
		p2 := b.Positions[b.Indices[i+2]]
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		if n.Y <= 0 {
			t.Errorf("triangle %d normal %v does not face +Y", i/3, n)
		}
	}
}

func TestSphere(t *testing.T) {
	m := Sphere(1, 6, 8)
	// 2 poles + 5 rings of 8
	if m.VertexCount() != 42 {
		t.Errorf("VertexCount = %d, want 42", m.VertexCount())
	}
	// 8 top + 8 bottom + 4 bands * 8 quads * 2
	if m.TriangleCount() != 80 {
		t.Errorf("TriangleCount = %d, want 80", m.TriangleCount())
	}
	assertOutward(t, m)

	for _, idx := range m.Buffers[0].Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestSphereClampsDetail(t *testing.T) {
	m := Sphere(1, 0, 0)
	if m.TriangleCount() != 6 {
		t.Errorf("minimum sphere TriangleCount = %d, want 6", m.TriangleCount())
	}
}

func TestNilMesh(t *testing.T) {
	var m *Mesh
	if m.BufferCount() != 0 {
		t.Error("nil mesh should have no buffers")
	}
}

func TestTransform(t *testing.T) {
	m := Cube(2).Transform(math.Translate(10, 0, 0))
	b := m.Bounds()
	if b.Center() != (math.Vec3{X: 10}) {
		t.Errorf("translated center = %v, want (10,0,0)", b.Center())
	}
}
