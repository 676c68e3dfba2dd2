package stencil

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/midgard-shadows/internal/engine/shadow"
)

func TestPasses(t *testing.T) {
	tests := []struct {
		name   string
		method shadow.Method
		want   [2]Pass
	}{
		{
			name:   "zpass counts visible faces",
			method: shadow.ZPass,
			want: [2]Pass{
				{Cull: gl.BACK, DepthFail: gl.KEEP, DepthPass: gl.INCR},
				{Cull: gl.FRONT, DepthFail: gl.KEEP, DepthPass: gl.DECR},
			},
		},
		{
			name:   "zfail counts hidden faces",
			method: shadow.ZFail,
			want: [2]Pass{
				{Cull: gl.FRONT, DepthFail: gl.INCR, DepthPass: gl.KEEP},
				{Cull: gl.BACK, DepthFail: gl.DECR, DepthPass: gl.KEEP},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Passes(tt.method))
		})
	}
}

func TestPassesIncrementFirst(t *testing.T) {
	for _, m := range []shadow.Method{shadow.ZPass, shadow.ZFail} {
		p := Passes(m)
		assert.Contains(t, []uint32{p[0].DepthFail, p[0].DepthPass}, uint32(gl.INCR), m.String())
		assert.NotEqual(t, p[0].Cull, p[1].Cull, m.String())
	}
}

func TestSeparateOpsMatchPasses(t *testing.T) {
	wrap := map[uint32]uint32{gl.INCR: gl.INCR_WRAP, gl.DECR: gl.DECR_WRAP, gl.KEEP: gl.KEEP}

	for _, m := range []shadow.Method{shadow.ZPass, shadow.ZFail} {
		front, back := SeparateOps(m)
		// The pass culling BACK draws front faces, and the other way round.
		for _, p := range Passes(m) {
			want := FaceOps{DepthFail: wrap[p.DepthFail], DepthPass: wrap[p.DepthPass]}
			if p.Cull == gl.BACK {
				assert.Equal(t, want, front, m.String())
			} else {
				assert.Equal(t, want, back, m.String())
			}
		}
	}
}

func TestSolid(t *testing.T) {
	c := Color{0.1, 0.2, 0.3, 0.4}
	got := Solid(c)
	for i := range got {
		assert.Equal(t, c, got[i])
	}
}
