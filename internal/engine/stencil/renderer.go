package stencil

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-shadows/internal/engine/shader"
	"github.com/Faultbox/midgard-shadows/internal/engine/shadow"
	"github.com/Faultbox/midgard-shadows/internal/engine/stencil/shaders"
	"github.com/Faultbox/midgard-shadows/internal/logger"
	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// Options configures a Renderer.
type Options struct {
	// TwoSided draws each volume once with separate front and back stencil
	// ops instead of two culled draws.
	TwoSided bool
	Logger   *zap.Logger
}

// Renderer draws shadow volumes into the stencil buffer of the current
// framebuffer. It requires a current GL 4.1 context with a stencil buffer.
type Renderer struct {
	volumeProgram *shader.Program
	shadowProgram *shader.Program

	locMVP    int32
	locColors int32

	volumeVAO uint32
	volumeVBO uint32
	vboPoints int // capacity of volumeVBO in points

	quadVAO uint32

	twoSided bool
	log      *zap.Logger
}

// NewRenderer compiles the stencil programs and allocates the vertex buffer.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Logger == nil {
		opts.Logger = logger.Named("stencil")
	}

	volumeProgram, err := shader.Compile(shaders.VolumeVertexShader, shaders.VolumeFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("volume program: %w", err)
	}
	shadowProgram, err := shader.Compile(shaders.ShadowVertexShader, shaders.ShadowFragmentShader)
	if err != nil {
		volumeProgram.Delete()
		return nil, fmt.Errorf("shadow program: %w", err)
	}

	r := &Renderer{
		volumeProgram: volumeProgram,
		shadowProgram: shadowProgram,
		locMVP:        volumeProgram.Uniform("uMVP"),
		locColors:     shadowProgram.Uniform("uColors"),
		twoSided:      opts.TwoSided,
		log:           opts.Logger,
	}

	gl.GenVertexArrays(1, &r.volumeVAO)
	gl.BindVertexArray(r.volumeVAO)
	gl.GenBuffers(1, &r.volumeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.volumeVBO)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(unsafe.Sizeof(math.Vec3{})), 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	// The composite quad has no attributes but core profile still needs a VAO.
	gl.GenVertexArrays(1, &r.quadVAO)

	r.log.Debug("stencil renderer created", zap.Bool("two_sided", r.twoSided))
	return r, nil
}

// upload copies points into the vertex buffer, growing it when needed.
func (r *Renderer) upload(points []math.Vec3) {
	size := len(points) * int(unsafe.Sizeof(math.Vec3{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, r.volumeVBO)
	if len(points) > r.vboPoints {
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(points), gl.STREAM_DRAW)
		r.vboPoints = len(points)
		r.log.Debug("volume buffer grown", zap.Int("points", r.vboPoints))
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(points))
}

// DrawVolume renders one volume into the stencil buffer. mvp maps the
// volume's object space to clip space. Color and depth writes are disabled
// for the draw and restored afterwards.
func (r *Renderer) DrawVolume(points []math.Vec3, mvp math.Mat4, method shadow.Method) {
	if len(points) < 3 {
		return
	}
	count := int32(len(points) / 3 * 3)

	r.volumeProgram.Use()
	gl.UniformMatrix4fv(r.locMVP, 1, false, mvp.Ptr())
	gl.BindVertexArray(r.volumeVAO)
	r.upload(points)

	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)
	gl.ColorMask(false, false, false, false)
	gl.Enable(gl.STENCIL_TEST)
	gl.StencilFunc(gl.ALWAYS, 0, 0xFF)
	gl.FrontFace(gl.CW)

	if r.twoSided {
		front, back := SeparateOps(method)
		gl.Disable(gl.CULL_FACE)
		gl.StencilOpSeparate(gl.FRONT, gl.KEEP, front.DepthFail, front.DepthPass)
		gl.StencilOpSeparate(gl.BACK, gl.KEEP, back.DepthFail, back.DepthPass)
		gl.DrawArrays(gl.TRIANGLES, 0, count)
	} else {
		gl.Enable(gl.CULL_FACE)
		for _, p := range Passes(method) {
			gl.CullFace(p.Cull)
			gl.StencilOp(gl.KEEP, p.DepthFail, p.DepthPass)
			gl.DrawArrays(gl.TRIANGLES, 0, count)
		}
	}

	// Restore the defaults the scene renders with
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.StencilOp(gl.KEEP, gl.KEEP, gl.KEEP)
	gl.Disable(gl.STENCIL_TEST)
	gl.ColorMask(true, true, true, true)
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
	gl.BindVertexArray(0)
}

// DrawVolumes renders every volume of a node with the node's method.
func (r *Renderer) DrawVolumes(node *shadow.Node, mvp math.Mat4) {
	for _, vol := range node.Volumes() {
		r.DrawVolume(vol.Points(), mvp, node.Method())
	}
}

// DrawShadow blends corners over every pixel whose stencil value is non-zero.
// When clearStencil is set the stencil buffer is cleared afterwards.
func (r *Renderer) DrawShadow(corners Corners, clearStencil bool) {
	r.shadowProgram.Use()
	gl.Uniform4fv(r.locColors, 4, &corners[0][0])

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.STENCIL_TEST)
	gl.StencilFunc(gl.NOTEQUAL, 0, 0xFF)
	gl.StencilOp(gl.KEEP, gl.KEEP, gl.KEEP)

	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	if clearStencil {
		gl.Clear(gl.STENCIL_BUFFER_BIT)
	}

	gl.Disable(gl.STENCIL_TEST)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	if r.volumeVBO != 0 {
		gl.DeleteBuffers(1, &r.volumeVBO)
		r.volumeVBO = 0
	}
	if r.volumeVAO != 0 {
		gl.DeleteVertexArrays(1, &r.volumeVAO)
		r.volumeVAO = 0
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
		r.quadVAO = 0
	}
	r.volumeProgram.Delete()
	r.shadowProgram.Delete()
}
