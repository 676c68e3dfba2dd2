// Package scene loads a shadow-casting mesh and its lights from YAML and
// drives the shadow volume node for it.
package scene

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-shadows/internal/engine/lighting"
	"github.com/Faultbox/midgard-shadows/internal/engine/model"
	"github.com/Faultbox/midgard-shadows/internal/engine/shadow"
	"github.com/Faultbox/midgard-shadows/internal/logger"
	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// Scene is one shadow-casting mesh lit by a list of lights.
type Scene struct {
	Name   string
	Mesh   *model.Mesh
	World  math.Mat4
	Lights []lighting.Light

	active *lighting.List
	node   *shadow.Node
	frame  uint64
}

// Load reads and builds a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Parse builds a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return FromFile(&f)
}

// FromFile builds a scene from a decoded file.
func FromFile(f *File) (*Scene, error) {
	mesh, err := f.Mesh.Build()
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Name:   f.Name,
		Mesh:   mesh,
		World:  f.Transform.Matrix(),
		Lights: make([]lighting.Light, 0, len(f.Lights)),
	}
	for i, ls := range f.Lights {
		l, err := ls.Light()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.Lights = append(s.Lights, l)
	}
	return s, nil
}

// Attach creates the shadow node for the scene mesh. Calling it again
// replaces the node.
func (s *Scene) Attach(opts shadow.Options) {
	s.node = shadow.NewNode(s.Mesh, opts)
	s.active = lighting.NewList(opts.MaxLights)
	s.frame = 0

	logger.Named("scene").Debug("shadow node attached",
		zap.String("scene", s.Name),
		zap.Stringer("method", opts.Method),
		zap.Int("lights", len(s.Lights)),
	)
}

// Node returns the shadow node, or nil before Attach.
func (s *Scene) Node() *shadow.Node {
	return s.node
}

// Frame returns the number of updates since Attach.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// ActiveLights returns the lights passed to the node on the last Update.
func (s *Scene) ActiveLights() []lighting.Light {
	if s.active == nil {
		return nil
	}
	return s.active.Lights
}

// Update rebuilds the shadow volumes for the current mesh, transform and
// lights. The node is attached with default options on first use.
func (s *Scene) Update() []*shadow.Volume {
	if s.node == nil {
		s.Attach(shadow.DefaultOptions())
	}
	s.active.Set(s.Lights)
	s.node.Update(s.active.Lights, s.World)
	s.frame++
	return s.node.Volumes()
}
