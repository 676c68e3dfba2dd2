// Package shaders provides embedded GLSL sources for stencil shadows.
package shaders

import _ "embed"

// VolumeVertexShader transforms shadow volume points by a single MVP matrix.
//
//go:embed volume.vert
var VolumeVertexShader string

// VolumeFragmentShader writes nothing visible; only stencil state matters.
//
//go:embed volume.frag
var VolumeFragmentShader string

// ShadowVertexShader emits a full-screen quad from gl_VertexID.
//
//go:embed shadow.vert
var ShadowVertexShader string

// ShadowFragmentShader outputs the interpolated corner color.
//
//go:embed shadow.frag
var ShadowFragmentShader string
