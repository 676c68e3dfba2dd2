// Package renderer draws the lit scene that stencil shadows are cast onto.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-shadows/internal/engine/model"
	"github.com/Faultbox/midgard-shadows/internal/engine/renderer/shaders"
	"github.com/Faultbox/midgard-shadows/internal/engine/shader"
	"github.com/Faultbox/midgard-shadows/internal/logger"
	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
}

// Mesh is a mesh uploaded to the GPU.
type Mesh struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// Renderer draws flat-shaded meshes.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger

	locMVP      int32
	locModel    int32
	locLightDir int32
	locColor    int32
	locAmbient  int32
}

// New initializes OpenGL and compiles the mesh program.
// Must be called after the OpenGL context is current.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.ClearStencil(0)

	program, err := shader.Compile(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}
	r.program = program
	r.locMVP = program.Uniform("uMVP")
	r.locModel = program.Uniform("uModel")
	r.locLightDir = program.Uniform("uLightDir")
	r.locColor = program.Uniform("uColor")
	r.locAmbient = program.Uniform("uAmbient")

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases the program.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.program.Delete()
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin clears color, depth and stencil for a new frame.
func (r *Renderer) Begin() {
	gl.DepthMask(true)
	gl.StencilMask(0xFF)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

// Upload copies a mesh to the GPU as flat-shaded triangles.
func (r *Renderer) Upload(mesh *model.Mesh) *Mesh {
	vertices := FlatVertices(mesh)
	m := &Mesh{vertexCount: int32(len(vertices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	stride := int32(unsafe.Sizeof(Vertex{}))
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), gl.Ptr(vertices), gl.STATIC_DRAW)
	}

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(Vertex{}.Normal))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	r.log.Debug("mesh uploaded", zap.String("mesh", mesh.Name), zap.Int32("vertices", m.vertexCount))
	return m
}

// Delete releases the mesh buffers.
func (m *Mesh) Delete() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}

// DrawParams are the per-draw uniforms of DrawMesh.
type DrawParams struct {
	ViewProj math.Mat4
	Model    math.Mat4
	// LightDir points towards the light, in world space.
	LightDir math.Vec3
	Color    [4]float32
	Ambient  float32
}

// DrawMesh draws an uploaded mesh.
func (r *Renderer) DrawMesh(m *Mesh, p DrawParams) {
	if m.vertexCount == 0 {
		return
	}
	mvp := p.ViewProj.Mul(p.Model)

	r.program.Use()
	gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())
	gl.UniformMatrix4fv(r.locModel, 1, false, p.Model.Ptr())
	gl.Uniform3f(r.locLightDir, p.LightDir.X, p.LightDir.Y, p.LightDir.Z)
	gl.Uniform4f(r.locColor, p.Color[0], p.Color[1], p.Color[2], p.Color[3])
	gl.Uniform1f(r.locAmbient, p.Ambient)

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
	gl.BindVertexArray(0)
}

// SetWireframe toggles line rasterization.
func (r *Renderer) SetWireframe(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() []byte {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
