// Package model provides the triangle meshes that shadows are built from.
package model

import "github.com/Faultbox/midgard-shadows/pkg/math"

// Buffer is one sub-mesh: a position array and a triangle list indexing it.
type Buffer struct {
	Positions []math.Vec3
	Indices   []uint32
}

// Mesh is an ordered list of buffers. Indices are local to their buffer.
type Mesh struct {
	Name    string
	Buffers []Buffer
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the center point of the bounds.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns the distance from center to corner (half-diagonal).
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Scale(0.5).Length()
}
