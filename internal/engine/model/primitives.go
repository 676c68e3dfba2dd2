package model

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// All primitives are wound counter-clockwise when seen from outside.

// cubeCorner returns corner i of an axis-aligned cube with half extent h.
// Bit 0 selects +X, bit 1 +Y, bit 2 +Z.
func cubeCorner(i int, h float32) math.Vec3 {
	c := math.Vec3{X: -h, Y: -h, Z: -h}
	if i&1 != 0 {
		c.X = h
	}
	if i&2 != 0 {
		c.Y = h
	}
	if i&4 != 0 {
		c.Z = h
	}
	return c
}

// cubeFaces lists the four corners of each face in +X, -X, +Y, -Y, +Z, -Z order.
var cubeFaces = [6][4]uint32{
	{1, 3, 7, 5},
	{0, 4, 6, 2},
	{2, 6, 7, 3},
	{0, 1, 5, 4},
	{4, 5, 7, 6},
	{0, 2, 3, 1},
}

// Cube returns a welded cube centered at the origin: one buffer, 8 vertices,
// 12 triangles.
func Cube(size float32) *Mesh {
	h := size / 2
	b := Buffer{Positions: make([]math.Vec3, 8)}
	for i := range b.Positions {
		b.Positions[i] = cubeCorner(i, h)
	}
	for _, f := range cubeFaces {
		b.Indices = append(b.Indices, f[0], f[1], f[2], f[0], f[2], f[3])
	}
	return &Mesh{Name: "cube", Buffers: []Buffer{b}}
}

// CubeUnwelded returns a cube with one buffer per face. Corners are duplicated
// across buffers, so topology is only recoverable by position.
func CubeUnwelded(size float32) *Mesh {
	h := size / 2
	m := &Mesh{Name: "cube_unwelded", Buffers: make([]Buffer, 0, len(cubeFaces))}
	for _, f := range cubeFaces {
		b := Buffer{
			Positions: make([]math.Vec3, 4),
			Indices:   []uint32{0, 1, 2, 0, 2, 3},
		}
		for j, corner := range f {
			b.Positions[j] = cubeCorner(int(corner), h)
		}
		m.Buffers = append(m.Buffers, b)
	}
	return m
}

// Plane returns a single-sided square in the XZ plane facing +Y.
func Plane(size float32) *Mesh {
	h := size / 2
	b := Buffer{
		Positions: []math.Vec3{
			{X: -h, Y: 0, Z: -h},
			{X: h, Y: 0, Z: -h},
			{X: h, Y: 0, Z: h},
			{X: -h, Y: 0, Z: h},
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
	return &Mesh{Name: "plane", Buffers: []Buffer{b}}
}

// Sphere returns a closed, welded UV sphere. rings is the number of latitude
// bands (at least 2) and segments the number of longitude slices (at least 3).
func Sphere(radius float32, rings, segments int) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}

	var b Buffer
	top := uint32(0)
	b.Positions = append(b.Positions, math.Vec3{Y: radius})

	for r := 1; r < rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		y := math32.Cos(phi) * radius
		rr := math32.Sin(phi) * radius
		for s := 0; s < segments; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(segments)
			b.Positions = append(b.Positions, math.Vec3{
				X: rr * math32.Cos(theta),
				Y: y,
				Z: -rr * math32.Sin(theta),
			})
		}
	}

	bottom := uint32(len(b.Positions))
	b.Positions = append(b.Positions, math.Vec3{Y: -radius})

	ring := func(r, s int) uint32 {
		return uint32(1 + (r-1)*segments + s%segments)
	}

	for s := 0; s < segments; s++ {
		b.Indices = append(b.Indices, top, ring(1, s), ring(1, s+1))
	}
	for r := 1; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			a, bb := ring(r, s), ring(r, s+1)
			c, d := ring(r+1, s), ring(r+1, s+1)
			b.Indices = append(b.Indices, a, c, d, a, d, bb)
		}
	}
	last := rings - 1
	for s := 0; s < segments; s++ {
		b.Indices = append(b.Indices, ring(last, s), bottom, ring(last, s+1))
	}

	return &Mesh{Name: "sphere", Buffers: []Buffer{b}}
}
