// SVOL (shadow volume) binary dump format.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// SVOL format errors.
var (
	ErrInvalidSVOLMagic       = errors.New("invalid SVOL magic: expected 'SVOL'")
	ErrUnsupportedSVOLVersion = errors.New("unsupported SVOL version")
	ErrTruncatedSVOLData      = errors.New("truncated SVOL data")
	ErrInvalidVolumeCount     = errors.New("invalid SVOL volume count")
)

const svolMagic = "SVOL"

// SVOLVersion is the current format version.
var SVOLVersion = Version{Major: 1, Minor: 0}

// maxSVOLVolumes bounds the volume count accepted by the parser.
const maxSVOLVolumes = 1 << 16

// Version is a file format version.
type Version struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// SVOL is a frame of shadow volumes for one object.
//
// Layout, little endian:
//
//	magic "SVOL", major u8, minor u8, method u8, volume count u32,
//	then per volume: light i32, front faces u32, silhouette edges u32,
//	point count u32, points as 3 x f32.
type SVOL struct {
	Version Version
	Method  uint8
	Volumes []SVOLVolume
}

// SVOLVolume is one light's volume.
type SVOLVolume struct {
	Light           int32
	FrontFaces      uint32
	SilhouetteEdges uint32
	Points          []math.Vec3
}

// TriangleCount returns the number of triangles in the volume.
func (v *SVOLVolume) TriangleCount() int {
	return len(v.Points) / 3
}

// WriteSVOL encodes s. The version field is ignored; the current version is written.
func WriteSVOL(w io.Writer, s *SVOL) error {
	var buf bytes.Buffer
	buf.WriteString(svolMagic)
	buf.WriteByte(SVOLVersion.Major)
	buf.WriteByte(SVOLVersion.Minor)
	buf.WriteByte(s.Method)
	binary.Write(&buf, binary.LittleEndian, uint32(len(s.Volumes)))

	for i := range s.Volumes {
		v := &s.Volumes[i]
		binary.Write(&buf, binary.LittleEndian, v.Light)
		binary.Write(&buf, binary.LittleEndian, v.FrontFaces)
		binary.Write(&buf, binary.LittleEndian, v.SilhouetteEdges)
		binary.Write(&buf, binary.LittleEndian, uint32(len(v.Points)))
		for _, p := range v.Points {
			binary.Write(&buf, binary.LittleEndian, p.Array())
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// WriteSVOLFile writes s to path.
func WriteSVOLFile(path string, s *SVOL) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating SVOL file: %w", err)
	}
	if err := WriteSVOL(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParseSVOL decodes an SVOL file.
func ParseSVOL(data []byte) (*SVOL, error) {
	if len(data) < 11 {
		return nil, ErrTruncatedSVOLData
	}

	r := bytes.NewReader(data)

	magic := make([]byte, 4)
	r.Read(magic)
	if string(magic) != svolMagic {
		return nil, ErrInvalidSVOLMagic
	}

	s := &SVOL{}
	binary.Read(r, binary.LittleEndian, &s.Version.Major)
	binary.Read(r, binary.LittleEndian, &s.Version.Minor)
	if s.Version.Major != SVOLVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSVOLVersion, s.Version)
	}
	binary.Read(r, binary.LittleEndian, &s.Method)

	var count uint32
	binary.Read(r, binary.LittleEndian, &count)
	if count > maxSVOLVolumes {
		return nil, ErrInvalidVolumeCount
	}

	s.Volumes = make([]SVOLVolume, count)
	for i := range s.Volumes {
		if err := parseSVOLVolume(r, &s.Volumes[i]); err != nil {
			return nil, fmt.Errorf("parsing volume %d: %w", i, err)
		}
	}

	return s, nil
}

func parseSVOLVolume(r *bytes.Reader, v *SVOLVolume) error {
	var header struct {
		Light           int32
		FrontFaces      uint32
		SilhouetteEdges uint32
		PointCount      uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return ErrTruncatedSVOLData
	}
	if int64(header.PointCount)*12 > int64(r.Len()) {
		return ErrTruncatedSVOLData
	}

	v.Light = header.Light
	v.FrontFaces = header.FrontFaces
	v.SilhouetteEdges = header.SilhouetteEdges
	v.Points = make([]math.Vec3, header.PointCount)
	for i := range v.Points {
		var p [3]float32
		binary.Read(r, binary.LittleEndian, &p)
		v.Points[i] = math.FromArray(p)
	}
	return nil
}

// ParseSVOLFile parses an SVOL file from disk.
func ParseSVOLFile(path string) (*SVOL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading SVOL file: %w", err)
	}
	return ParseSVOL(data)
}
