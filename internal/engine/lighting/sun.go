package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a normalized
// vector pointing towards the sun. Longitude rotates around Y, latitude is the
// elevation from the horizon.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := longitude * math32.Pi / 180
	latRad := latitude * math32.Pi / 180

	return math.Vec3{
		X: math32.Cos(latRad) * math32.Sin(lonRad),
		Y: math32.Sin(latRad),
		Z: math32.Cos(latRad) * math32.Cos(lonRad),
	}
}

// NewSun returns a directional light shining from the given sky angles.
func NewSun(longitude, latitude float32) Light {
	return NewDirectional(SunDirection(longitude, latitude).Negate())
}
