package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	if got := v.Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
	if got := v.LengthSQ(); got != 49 {
		t.Errorf("Vec3.LengthSQ() = %v, want 49", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); !z.IsZero() {
		t.Errorf("zero vector Normalize() = %v, want zero", z)
	}
}

func TestVec3DistanceSQ(t *testing.T) {
	a := Vec3{1, 1, 1}
	b := Vec3{1, 1, 4}
	if got := a.DistanceSQ(b); got != 9 {
		t.Errorf("DistanceSQ = %v, want 9", got)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, -1, 0}
	if got := a.Min(b); got != (Vec3{1, -1, -2}) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != (Vec3{3, 5, 0}) {
		t.Errorf("Max = %v", got)
	}
}

func TestVec3Less(t *testing.T) {
	tests := []struct {
		a, b Vec3
		want bool
	}{
		{Vec3{0, 0, 0}, Vec3{1, 0, 0}, true},
		{Vec3{1, 0, 0}, Vec3{0, 9, 9}, false},
		{Vec3{1, 1, 0}, Vec3{1, 2, 0}, true},
		{Vec3{1, 1, 3}, Vec3{1, 1, 2}, false},
		{Vec3{1, 1, 1}, Vec3{1, 1, 1}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.want {
			t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
