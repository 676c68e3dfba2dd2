package lighting

import (
	stdmath "math"
	"testing"

	"github.com/Faultbox/midgard-shadows/pkg/math"
)

func TestInRange(t *testing.T) {
	light := NewPoint(math.Vec3{X: 0, Y: 0, Z: 10}, 10)

	tests := []struct {
		name string
		pos  math.Vec3
		want bool
	}{
		{"at origin on the boundary", math.Vec3{}, true},
		{"inside", math.Vec3{Z: 5}, true},
		{"just outside", math.Vec3{Z: -0.01}, false},
		{"far away", math.Vec3{X: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := light.InRange(tt.pos); got != tt.want {
				t.Errorf("InRange(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestDirectionalAlwaysInRange(t *testing.T) {
	light := NewDirectional(math.Vec3{Y: -1})
	if !light.InRange(math.Vec3{X: 1e6, Y: 1e6, Z: 1e6}) {
		t.Error("directional light should always be in range")
	}
}

func TestLocalVectorPoint(t *testing.T) {
	light := NewPoint(math.Vec3{X: 5, Y: 0, Z: 100}, 1000)
	world := math.Translate(5, 0, 0)

	got := light.LocalVector(world.Inverse())
	want := math.Vec3{X: 0, Y: 0, Z: 100}
	if got.DistanceSQ(want) > 1e-6 {
		t.Errorf("LocalVector = %v, want %v", got, want)
	}
}

func TestLocalVectorDirectionalIgnoresTranslation(t *testing.T) {
	light := NewDirectional(math.Vec3{Y: -2})
	world := math.Translate(50, 50, 50)

	got := light.LocalVector(world.Inverse())
	want := math.Vec3{Y: 1}
	if got.DistanceSQ(want) > 1e-6 {
		t.Errorf("LocalVector = %v, want %v", got, want)
	}
}

func TestListBounds(t *testing.T) {
	list := NewList(2)
	if !list.Add(NewPoint(math.Vec3{}, 1)) || !list.Add(NewPoint(math.Vec3{}, 2)) {
		t.Fatal("expected first two lights to fit")
	}
	if list.Add(NewPoint(math.Vec3{}, 3)) {
		t.Error("expected Add to fail on a full list")
	}

	list.Set([]Light{
		NewPoint(math.Vec3{}, 1),
		NewPoint(math.Vec3{}, 2),
		NewPoint(math.Vec3{}, 3),
	})
	if list.Len() != 2 {
		t.Errorf("Set should truncate to 2, got %d", list.Len())
	}

	list.Clear()
	if list.Len() != 0 {
		t.Errorf("Clear left %d lights", list.Len())
	}
	if NewList(0).Max() != DefaultMaxLights {
		t.Error("non-positive max should fall back to the default")
	}
}

func TestSunOverhead(t *testing.T) {
	sun := NewSun(0, 90)
	if sun.Type != Directional {
		t.Fatalf("sun type = %v, want directional", sun.Type)
	}
	// Straight overhead: light travels down the Y axis
	if sun.Direction.Y > -0.999 {
		t.Errorf("overhead sun direction = %v, want ~(0,-1,0)", sun.Direction)
	}
}

func TestRotatedY(t *testing.T) {
	near := func(a, b math.Vec3) bool {
		return a.Sub(b).Length() < 1e-4
	}
	center := math.Vec3{X: 5, Y: 1}

	point := NewPoint(math.Vec3{X: 6, Y: 3}, 10)
	got := point.RotatedY(center, stdmath.Pi/2)
	if !near(got.Position, math.Vec3{X: 5, Y: 3, Z: -1}) {
		t.Errorf("rotated point = %v, want (5, 3, -1)", got.Position)
	}
	if got.Radius != 10 || !got.CastShadows {
		t.Error("rotation should keep the other fields")
	}

	sun := NewDirectional(math.Vec3{X: 1, Y: -1})
	turned := sun.RotatedY(center, stdmath.Pi)
	if !near(turned.Direction, math.Vec3{X: -sun.Direction.X, Y: sun.Direction.Y}) {
		t.Errorf("rotated direction = %v", turned.Direction)
	}
}
