package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-shadows/internal/engine/lighting"
	"github.com/Faultbox/midgard-shadows/internal/engine/model"
	"github.com/Faultbox/midgard-shadows/pkg/math"
)

var (
	// ErrInvalidScene is returned for scene files that cannot be built.
	ErrInvalidScene = errors.New("invalid scene")
	// ErrUnknownPrimitive is returned for an unrecognized mesh primitive.
	ErrUnknownPrimitive = errors.New("unknown mesh primitive")
)

// File is the YAML layout of a scene file.
type File struct {
	Name      string        `yaml:"name"`
	Mesh      MeshSpec      `yaml:"mesh"`
	Transform TransformSpec `yaml:"transform"`
	Lights    []LightSpec   `yaml:"lights"`
}

// MeshSpec selects a built-in primitive or lists buffers inline.
type MeshSpec struct {
	Primitive string       `yaml:"primitive,omitempty"` // cube, cube_unwelded, plane, sphere
	Size      float32      `yaml:"size,omitempty"`
	Rings     int          `yaml:"rings,omitempty"`
	Segments  int          `yaml:"segments,omitempty"`
	Buffers   []BufferSpec `yaml:"buffers,omitempty"`
}

// BufferSpec is one inline mesh buffer.
type BufferSpec struct {
	Positions [][3]float32 `yaml:"positions"`
	Indices   []uint32     `yaml:"indices"`
}

// TransformSpec places the mesh in the world.
type TransformSpec struct {
	Position [3]float32    `yaml:"position"`
	Rotation *RotationSpec `yaml:"rotation,omitempty"`
	Scale    *[3]float32   `yaml:"scale,omitempty"`
}

// RotationSpec is a rotation about an axis, in degrees.
type RotationSpec struct {
	Axis    [3]float32 `yaml:"axis"`
	Degrees float32    `yaml:"degrees"`
}

// LightSpec describes one light.
type LightSpec struct {
	Type        string     `yaml:"type"` // point, directional or sun
	Position    [3]float32 `yaml:"position,omitempty"`
	Direction   [3]float32 `yaml:"direction,omitempty"`
	Radius      float32    `yaml:"radius,omitempty"`
	Longitude   float32    `yaml:"longitude,omitempty"` // sun, degrees
	Latitude    float32    `yaml:"latitude,omitempty"`  // sun, degrees above the horizon
	CastShadows *bool      `yaml:"cast_shadows,omitempty"`
}

// Primitive defaults.
const (
	DefaultSize     = 2
	DefaultRings    = 16
	DefaultSegments = 24
)

// Build creates the mesh.
func (s MeshSpec) Build() (*model.Mesh, error) {
	if s.Primitive != "" && len(s.Buffers) > 0 {
		return nil, fmt.Errorf("%w: mesh has both primitive and buffers", ErrInvalidScene)
	}
	if len(s.Buffers) > 0 {
		return s.buildBuffers()
	}

	size := s.Size
	if size == 0 {
		size = DefaultSize
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative mesh size %v", ErrInvalidScene, size)
	}

	switch s.Primitive {
	case "cube":
		return model.Cube(size), nil
	case "cube_unwelded":
		return model.CubeUnwelded(size), nil
	case "plane":
		return model.Plane(size), nil
	case "sphere":
		rings, segments := s.Rings, s.Segments
		if rings == 0 {
			rings = DefaultRings
		}
		if segments == 0 {
			segments = DefaultSegments
		}
		return model.Sphere(size/2, rings, segments), nil
	case "":
		return nil, fmt.Errorf("%w: mesh needs a primitive or buffers", ErrInvalidScene)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, s.Primitive)
	}
}

func (s MeshSpec) buildBuffers() (*model.Mesh, error) {
	m := &model.Mesh{Name: "inline", Buffers: make([]model.Buffer, len(s.Buffers))}
	for i, bs := range s.Buffers {
		if len(bs.Indices)%3 != 0 {
			return nil, fmt.Errorf("%w: buffer %d: %d indices is not a triangle list", ErrInvalidScene, i, len(bs.Indices))
		}
		for _, idx := range bs.Indices {
			if int(idx) >= len(bs.Positions) {
				return nil, fmt.Errorf("%w: buffer %d: index %d out of range (%d positions)", ErrInvalidScene, i, idx, len(bs.Positions))
			}
		}
		b := &m.Buffers[i]
		b.Positions = make([]math.Vec3, len(bs.Positions))
		for j, p := range bs.Positions {
			b.Positions[j] = math.FromArray(p)
		}
		b.Indices = append([]uint32(nil), bs.Indices...)
	}
	return m, nil
}

// Matrix returns the world matrix, translation * rotation * scale.
func (t TransformSpec) Matrix() math.Mat4 {
	rot := math.QuatIdentity()
	if t.Rotation != nil {
		rot = math.QuatFromAxisDegrees(math.FromArray(t.Rotation.Axis), t.Rotation.Degrees)
	}
	scale := math.Vec3{X: 1, Y: 1, Z: 1}
	if t.Scale != nil {
		scale = math.FromArray(*t.Scale)
	}
	return math.Compose(math.FromArray(t.Position), rot, scale)
}

// Light builds the light descriptor. Lights cast shadows unless cast_shadows is false.
func (s LightSpec) Light() (lighting.Light, error) {
	var l lighting.Light
	switch s.Type {
	case "point", "":
		if s.Radius < 0 {
			return l, fmt.Errorf("%w: negative light radius %v", ErrInvalidScene, s.Radius)
		}
		l = lighting.NewPoint(math.FromArray(s.Position), s.Radius)
	case "directional":
		dir := math.FromArray(s.Direction)
		if dir.IsZero() {
			return l, fmt.Errorf("%w: directional light needs a direction", ErrInvalidScene)
		}
		l = lighting.NewDirectional(dir)
	case "sun":
		l = lighting.NewSun(s.Longitude, s.Latitude)
	default:
		return l, fmt.Errorf("%w: unknown light type %q", ErrInvalidScene, s.Type)
	}
	if s.CastShadows != nil {
		l.CastShadows = *s.CastShadows
	}
	return l, nil
}
