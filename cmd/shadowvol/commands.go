package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-shadows/internal/config"
	"github.com/Faultbox/midgard-shadows/internal/engine/scene"
	"github.com/Faultbox/midgard-shadows/internal/engine/shadow"
	"github.com/Faultbox/midgard-shadows/internal/logger"
	"github.com/Faultbox/midgard-shadows/pkg/formats"
	"github.com/Faultbox/midgard-shadows/pkg/math"
)

var errUsage = errors.New("usage")

// loadScene loads a scene and attaches a node built with opts.
func loadScene(path string, opts shadow.Options) (*scene.Scene, error) {
	s, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	s.Attach(opts)
	return s, nil
}

func cmdInfo(out io.Writer, args []string, opts shadow.Options) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: shadowvol info <scene.yaml>", errUsage)
	}

	s, err := loadScene(args[0], opts)
	if err != nil {
		return err
	}
	vols := s.Update()
	node := s.Node()
	geom := node.Geometry()
	adj := node.Adjacency()
	b := s.Mesh.Bounds()

	fmt.Fprintf(out, "Scene:     %s\n", s.Name)
	fmt.Fprintf(out, "Mesh:      %s\n", s.Mesh.Name)
	fmt.Fprintf(out, "Buffers:   %d\n", s.Mesh.BufferCount())
	fmt.Fprintf(out, "Vertices:  %d\n", len(geom.Vertices))
	fmt.Fprintf(out, "Triangles: %d\n", geom.FaceCount())
	fmt.Fprintf(out, "Boundary:  %d edges\n", adj.BoundaryEdges())
	fmt.Fprintf(out, "Bounds:    (%g, %g, %g) - (%g, %g, %g)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	pos := s.World.Translation()
	fmt.Fprintf(out, "Position:  (%g, %g, %g)\n", pos.X, pos.Y, pos.Z)
	fmt.Fprintf(out, "Method:    %s\n", node.Method())
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Lights: %d (max %d)\n", len(s.Lights), opts.MaxLights)
	withVolume := make(map[int]bool, len(vols))
	for _, v := range vols {
		withVolume[v.Light] = true
	}
	for i, l := range s.Lights {
		status := "volume"
		switch {
		case i >= len(s.ActiveLights()):
			status = "ignored (over max)"
		case !l.CastShadows:
			status = "no shadows"
		case !withVolume[i]:
			status = "out of range"
		}
		fmt.Fprintf(out, "  [%d] %-11s %s\n", i, l.Type, status)
	}
	return nil
}

func cmdBuild(out io.Writer, args []string, opts shadow.Options) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(out)
	frames := fs.Int("frames", 1, "Number of frames to build")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: shadowvol build [-frames N] <scene.yaml>", errUsage)
	}
	if *frames < 1 {
		return fmt.Errorf("%w: -frames must be at least 1", errUsage)
	}

	s, err := loadScene(fs.Arg(0), opts)
	if err != nil {
		return err
	}

	start := time.Now()
	var vols []*shadow.Volume
	for i := 0; i < *frames; i++ {
		vols = s.Update()
	}
	elapsed := time.Since(start)

	logger.Info("volumes built",
		zap.String("scene", s.Name),
		zap.Int("frames", *frames),
		zap.Duration("elapsed", elapsed),
	)

	fmt.Fprintf(out, "Scene: %s (%s, %d frames, %v/frame)\n",
		s.Name, s.Node().Method(), *frames, elapsed/time.Duration(*frames))
	fmt.Fprintf(out, "%-6s %-6s %-9s %-10s %-8s\n", "Light", "Front", "Edges", "Triangles", "Capacity")
	total := 0
	for _, v := range vols {
		fmt.Fprintf(out, "%-6d %-6d %-9d %-10d %-8d\n",
			v.Light, v.FrontFaces, v.SilhouetteEdges, v.TriangleCount(), v.Cap())
		total += v.TriangleCount()
		if lo, hi, ok := v.Bounds(); ok {
			loA, hiA := lo.Array(), hi.Array()
			logger.Debug("volume bounds",
				zap.Int("light", v.Light),
				zap.Float32s("min", loA[:]),
				zap.Float32s("max", hiA[:]),
			)
		}
	}
	fmt.Fprintf(out, "Total: %d volumes, %d triangles\n", len(vols), total)
	return nil
}

func cmdExport(out io.Writer, args []string, opts shadow.Options) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: shadowvol export <scene.yaml> <out.obj|out.svol>", errUsage)
	}
	scenePath, outPath := args[0], args[1]

	s, err := loadScene(scenePath, opts)
	if err != nil {
		return err
	}
	vols := s.Update()

	switch ext := strings.ToLower(filepath.Ext(outPath)); ext {
	case ".obj":
		objects := make([]formats.OBJObject, len(vols))
		for i, v := range vols {
			objects[i] = formats.OBJObject{
				Name:   fmt.Sprintf("volume_%d", v.Light),
				Points: v.Points(),
			}
		}
		err = formats.WriteOBJFile(outPath, objects)
	case ".svol":
		err = formats.WriteSVOLFile(outPath, toSVOL(s.Node().Method(), vols))
	default:
		return fmt.Errorf("unsupported export format %q", ext)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %d volumes to %s\n", len(vols), outPath)
	return nil
}

func toSVOL(method shadow.Method, vols []*shadow.Volume) *formats.SVOL {
	s := &formats.SVOL{Method: uint8(method), Volumes: make([]formats.SVOLVolume, len(vols))}
	for i, v := range vols {
		s.Volumes[i] = formats.SVOLVolume{
			Light:           int32(v.Light),
			FrontFaces:      uint32(v.FrontFaces),
			SilhouetteEdges: uint32(v.SilhouetteEdges),
			Points:          append([]math.Vec3(nil), v.Points()...),
		}
	}
	return s
}

// cmdConfig writes the effective config, with flag overrides applied, to
// path or to the user config directory.
func cmdConfig(out io.Writer, args []string, cfg *config.Config) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: shadowvol config [path]", errUsage)
	}

	path := filepath.Join(config.ConfigDir(), "config.yaml")
	var err error
	if len(args) == 1 {
		path = args[0]
		err = cfg.SaveTo(path)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Fprintf(out, "Config written to %s\n", path)
	return nil
}
