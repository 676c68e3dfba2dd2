// Package formats reads and writes shadow volume files.
// OBJ (Wavefront) export of triangle soups.
package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// OBJObject is one named triangle soup: every three points form a face.
type OBJObject struct {
	Name   string
	Points []math.Vec3
}

// WriteOBJ writes objects as Wavefront OBJ. Each point becomes its own
// vertex; faces index the running vertex list from 1. Trailing points that
// do not form a whole triangle are skipped.
func WriteOBJ(w io.Writer, objects []OBJObject) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# shadow volumes: %d objects\n", len(objects))
	base := 1
	for _, obj := range objects {
		n := len(obj.Points) / 3 * 3
		fmt.Fprintf(bw, "o %s\n", obj.Name)
		for _, p := range obj.Points[:n] {
			bw.WriteString("v ")
			bw.WriteString(formatFloat(p.X))
			bw.WriteByte(' ')
			bw.WriteString(formatFloat(p.Y))
			bw.WriteByte(' ')
			bw.WriteString(formatFloat(p.Z))
			bw.WriteByte('\n')
		}
		for i := 0; i < n; i += 3 {
			fmt.Fprintf(bw, "f %d %d %d\n", base+i, base+i+1, base+i+2)
		}
		base += n
	}

	return bw.Flush()
}

// WriteOBJFile writes objects to path.
func WriteOBJFile(path string, objects []OBJObject) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OBJ file: %w", err)
	}
	if err := WriteOBJ(f, objects); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
