package formats

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-shadows/pkg/math"
)

func sampleSVOL() *SVOL {
	return &SVOL{
		Method: 1,
		Volumes: []SVOLVolume{
			{
				Light:           0,
				FrontFaces:      2,
				SilhouetteEdges: 4,
				Points:          []math.Vec3{{X: 1, Y: 2, Z: 3}, {X: -1}, {Z: -999999}},
			},
			{Light: 3},
		},
	}
}

func TestSVOLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVOL(&buf, sampleSVOL()))

	got, err := ParseSVOL(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, SVOLVersion, got.Version)
	assert.Equal(t, uint8(1), got.Method)
	require.Len(t, got.Volumes, 2)
	assert.Equal(t, sampleSVOL().Volumes[0], got.Volumes[0])
	assert.Equal(t, int32(3), got.Volumes[1].Light)
	assert.Empty(t, got.Volumes[1].Points)
	assert.Equal(t, 1, got.Volumes[0].TriangleCount())
}

func TestSVOLHeaderLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVOL(&buf, &SVOL{Method: 0}))
	assert.Equal(t, []byte{'S', 'V', 'O', 'L', 1, 0, 0, 0, 0, 0, 0}, buf.Bytes())
}

func TestParseSVOLErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVOL(&buf, sampleSVOL()))
	valid := buf.Bytes()

	badVersion := append([]byte(nil), valid...)
	badVersion[4] = 9

	hugeCount := append([]byte(nil), valid[:7]...)
	hugeCount = append(hugeCount, 0xFF, 0xFF, 0xFF, 0xFF)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrTruncatedSVOLData},
		{"bad magic", append([]byte("GRSM"), valid[4:]...), ErrInvalidSVOLMagic},
		{"bad version", badVersion, ErrUnsupportedSVOLVersion},
		{"huge count", hugeCount, ErrInvalidVolumeCount},
		{"cut points", valid[:len(valid)-40], ErrTruncatedSVOLData},
		{"cut header", valid[:14], ErrTruncatedSVOLData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSVOL(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestSVOLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.svol")
	require.NoError(t, WriteSVOLFile(path, sampleSVOL()))

	got, err := ParseSVOLFile(path)
	require.NoError(t, err)
	assert.Len(t, got.Volumes, 2)

	_, err = ParseSVOLFile(filepath.Join(t.TempDir(), "missing.svol"))
	assert.Error(t, err)
}
