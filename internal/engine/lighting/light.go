// Package lighting describes the lights that shadow volumes are built for.
package lighting

import (
	"fmt"

	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// DefaultMaxLights is the light list capacity used when none is given.
const DefaultMaxLights = 8

// Type identifies the kind of light source.
type Type int

const (
	// Point lights emit from a position and only influence objects inside Radius.
	Point Type = iota
	// Directional lights have no position and influence every object.
	Directional
)

// String returns a human-readable light type name.
func (t Type) String() string {
	switch t {
	case Point:
		return "point"
	case Directional:
		return "directional"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Light is a read-only light descriptor supplied by the scene each frame.
type Light struct {
	Type        Type
	Position    math.Vec3 // World position (point lights)
	Direction   math.Vec3 // Direction the light travels (directional lights)
	Radius      float32   // Influence radius (point lights)
	CastShadows bool
}

// NewPoint returns a shadow-casting point light.
func NewPoint(position math.Vec3, radius float32) Light {
	return Light{
		Type:        Point,
		Position:    position,
		Radius:      radius,
		CastShadows: true,
	}
}

// NewDirectional returns a shadow-casting directional light travelling along dir.
func NewDirectional(dir math.Vec3) Light {
	return Light{
		Type:        Directional,
		Direction:   dir.Normalize(),
		CastShadows: true,
	}
}

// InRange reports whether an object at worldPos lies inside the light's influence.
// Directional lights are always in range.
func (l Light) InRange(worldPos math.Vec3) bool {
	if l.Type == Directional {
		return true
	}
	return l.Position.DistanceSQ(worldPos) <= l.Radius*l.Radius
}

// LocalVector returns the light vector in the object space described by
// invWorld. For point lights it is the light position; for directional lights
// it is the direction towards the light. Either way the volume is extruded
// along its negation.
func (l Light) LocalVector(invWorld math.Mat4) math.Vec3 {
	if l.Type == Directional {
		return invWorld.TransformDirection(l.Direction.Negate())
	}
	return invWorld.TransformVec3(l.Position)
}

// RotatedY returns the light spun about the vertical axis through center by
// angle radians. Point lights move around center; directional lights turn.
func (l Light) RotatedY(center math.Vec3, angle float32) Light {
	rot := math.RotateAxis(math.Vec3{Y: 1}, angle)
	if l.Type == Directional {
		l.Direction = rot.TransformDirection(l.Direction)
		return l
	}
	l.Position = rot.TransformVec3(l.Position.Sub(center)).Add(center)
	return l
}

// List holds the lights active for one frame, bounded by a maximum count.
type List struct {
	Lights []Light
	max    int
}

// NewList creates an empty light list holding at most max lights.
func NewList(max int) *List {
	if max <= 0 {
		max = DefaultMaxLights
	}
	return &List{
		Lights: make([]Light, 0, max),
		max:    max,
	}
}

// Max returns the list capacity.
func (l *List) Max() int {
	return l.max
}

// Clear removes all lights from the list.
func (l *List) Clear() {
	l.Lights = l.Lights[:0]
}

// Add appends a light. Returns false if the list is full.
func (l *List) Add(light Light) bool {
	if len(l.Lights) >= l.max {
		return false
	}
	l.Lights = append(l.Lights, light)
	return true
}

// Set replaces all lights in the list, truncating to the maximum.
func (l *List) Set(lights []Light) {
	l.Clear()
	count := len(lights)
	if count > l.max {
		count = l.max
	}
	l.Lights = append(l.Lights, lights[:count]...)
}

// Len returns the number of lights in the list.
func (l *List) Len() int {
	return len(l.Lights)
}
