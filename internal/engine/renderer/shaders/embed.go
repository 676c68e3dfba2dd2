// Package shaders provides embedded GLSL sources for scene rendering.
package shaders

import _ "embed"

// MeshVertexShader transforms flat-shaded mesh vertices.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader applies ambient plus one diffuse term.
//
//go:embed mesh.frag
var MeshFragmentShader string
