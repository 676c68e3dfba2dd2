// Package viewer implements the interactive shadow volume viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-shadows/internal/engine/camera"
	"github.com/Faultbox/midgard-shadows/internal/engine/input"
	"github.com/Faultbox/midgard-shadows/internal/engine/lighting"
	"github.com/Faultbox/midgard-shadows/internal/engine/model"
	"github.com/Faultbox/midgard-shadows/internal/engine/renderer"
	"github.com/Faultbox/midgard-shadows/internal/engine/scene"
	"github.com/Faultbox/midgard-shadows/internal/engine/shadow"
	"github.com/Faultbox/midgard-shadows/internal/engine/snapshot"
	"github.com/Faultbox/midgard-shadows/internal/engine/stencil"
	"github.com/Faultbox/midgard-shadows/internal/engine/window"
	"github.com/Faultbox/midgard-shadows/internal/logger"
	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// lightSpeed is the light orbit speed in radians per second.
const lightSpeed = 0.6

// Config holds viewer configuration.
type Config struct {
	Title    string
	Width    int
	Height   int
	VSync    bool
	TwoSided bool
	Shadow   shadow.Options

	// SnapshotDir receives F12 captures.
	SnapshotDir string
}

// Viewer renders one scene with stencil shadows.
type Viewer struct {
	config  Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	stencil  *stencil.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	snapshot *snapshot.Writer

	scene       *scene.Scene
	lights      []lighting.Light // lights as loaded, before animation
	center      math.Vec3        // world center of the mesh
	mesh        *renderer.Mesh
	ground      *renderer.Mesh
	groundModel math.Mat4

	animate    bool
	wireframe  bool
	capture    bool
	angle      float32
	volumeTris int
}

// New opens the window and prepares GPU resources for sc.
func New(cfg Config, sc *scene.Scene) (*Viewer, error) {
	v := &Viewer{
		config:  cfg,
		log:     logger.Named("viewer"),
		scene:   sc,
		lights:  append([]lighting.Light(nil), sc.Lights...),
		animate: true,
	}
	v.log.Info("initializing viewer",
		zap.String("scene", sc.Name),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		VSync:  cfg.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer loads GL, so it must come after the window
	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: [4]float32{0.55, 0.62, 0.72, 1},
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.stencil, err = stencil.NewRenderer(stencil.Options{
		TwoSided: cfg.TwoSided,
		Logger:   logger.Named("stencil"),
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create stencil renderer: %w", err)
	}

	v.input = input.New()
	v.snapshot = snapshot.NewWriter(cfg.SnapshotDir, "shadowview")
	sc.Attach(cfg.Shadow)
	v.mesh = v.renderer.Upload(sc.Mesh)

	bounds := sc.Mesh.Transform(sc.World).Bounds()
	v.center = bounds.Center()
	v.setupGround(bounds)

	v.camera = camera.NewOrbitCamera()
	v.camera.FitToBounds(bounds.Min, bounds.Max)
	v.camera.Distance *= 1.5

	v.log.Info("viewer initialized")
	return v, nil
}

// setupGround places a receiver plane just below the mesh.
func (v *Viewer) setupGround(bounds model.Bounds) {
	size := math32.Max(bounds.Radius()*8, 1)
	v.ground = v.renderer.Upload(model.Plane(1))
	v.groundModel = math.Translate(v.center.X, bounds.Min.Y-0.01*size, v.center.Z).
		Mul(math.Scale(size, 1, size))
}

// Run starts the render loop and returns when the window closes.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		if err := v.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		v.render()
		if v.capture {
			v.capture = false
			v.saveSnapshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf("%s - %s - %d fps, %d volume triangles",
				v.config.Title, v.scene.Node().Method(), frameCount, v.volumeTris))
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Int("volume_triangles", v.volumeTris))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.Size())
		case input.EventDrag:
			v.camera.HandleDrag(event.DX, event.DY)
		case input.EventWheel:
			v.camera.HandleZoom(event.DY)
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_M:
		opts := v.config.Shadow
		if v.scene.Node().Method() == shadow.ZFail {
			opts.Method = shadow.ZPass
		} else {
			opts.Method = shadow.ZFail
		}
		v.config.Shadow = opts
		v.scene.Attach(opts)
		v.log.Info("shadow method changed", zap.Stringer("method", opts.Method))
	case sdl.SCANCODE_SPACE:
		v.animate = !v.animate
	case sdl.SCANCODE_V:
		v.wireframe = !v.wireframe
	case sdl.SCANCODE_F12:
		v.capture = true
	}
}

func (v *Viewer) saveSnapshot() {
	width, height := v.renderer.Size()
	path, err := v.snapshot.SaveGL(v.renderer.ReadPixels(), width, height)
	if err != nil {
		v.log.Warn("snapshot failed", zap.Error(err))
		return
	}
	v.log.Info("snapshot saved", zap.String("path", path))
}

// update moves the lights and rebuilds the shadow volumes.
func (v *Viewer) update(dt float32) error {
	if v.animate {
		v.angle = math32.Mod(v.angle+lightSpeed*dt, 2*math32.Pi)
	}
	for i, l := range v.lights {
		v.scene.Lights[i] = l.RotatedY(v.center, v.angle)
	}

	v.volumeTris = 0
	for _, vol := range v.scene.Update() {
		v.volumeTris += vol.TriangleCount()
	}
	return nil
}

// render draws the lit scene, fills the stencil buffer with the volumes and
// darkens the shadowed pixels.
func (v *Viewer) render() {
	width, height := v.renderer.Size()
	viewProj := v.camera.ProjectionMatrix(width, height).Mul(v.camera.ViewMatrix())
	lightDir := v.keyLightDir()

	v.renderer.Begin()
	v.renderer.SetWireframe(v.wireframe)
	v.renderer.DrawMesh(v.ground, renderer.DrawParams{
		ViewProj: viewProj,
		Model:    v.groundModel,
		LightDir: lightDir,
		Color:    [4]float32{0.8, 0.8, 0.75, 1},
		Ambient:  0.35,
	})
	v.renderer.DrawMesh(v.mesh, renderer.DrawParams{
		ViewProj: viewProj,
		Model:    v.scene.World,
		LightDir: lightDir,
		Color:    [4]float32{0.85, 0.45, 0.2, 1},
		Ambient:  0.35,
	})
	v.renderer.SetWireframe(false)

	v.stencil.DrawVolumes(v.scene.Node(), viewProj.Mul(v.scene.World))
	v.stencil.DrawShadow(stencil.Solid(stencil.DefaultShadowColor), false)
}

// keyLightDir returns the world direction towards the first active light.
func (v *Viewer) keyLightDir() math.Vec3 {
	active := v.scene.ActiveLights()
	if len(active) == 0 {
		return math.Vec3{Y: 1}
	}
	l := active[0]
	if l.Type == lighting.Directional {
		return l.Direction.Negate()
	}
	dir := l.Position.Sub(v.center)
	if dir.LengthSQ() == 0 {
		return math.Vec3{Y: 1}
	}
	return dir.Normalize()
}

// Close releases viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.mesh != nil {
		v.mesh.Delete()
	}
	if v.ground != nil {
		v.ground.Delete()
	}
	if v.stencil != nil {
		v.stencil.Destroy()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
