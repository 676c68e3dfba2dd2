package shadow

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-shadows/internal/engine/lighting"
	"github.com/Faultbox/midgard-shadows/internal/logger"
	"github.com/Faultbox/midgard-shadows/pkg/math"
)

// Options configures a Node.
type Options struct {
	Method   Method
	Infinity float32
	// NoZPassCaps drops the near and far caps of ZPass volumes.
	NoZPassCaps bool
	// MaxLights bounds how many entries of the light list are considered.
	MaxLights int
	// Logger receives debug output. Defaults to the "shadow" child of the
	// global logger at construction time.
	Logger *zap.Logger
}

// DefaultOptions returns z-fail volumes extruded to DefaultInfinity.
func DefaultOptions() Options {
	return Options{
		Method:    ZFail,
		Infinity:  DefaultInfinity,
		MaxLights: lighting.DefaultMaxLights,
	}
}

// Node owns the shadow volumes of one mesh: one reusable volume per
// shadow-casting light in range, rebuilt on every Update.
type Node struct {
	mesh     Mesh
	extruder Extruder
	maxLight int
	log      *zap.Logger

	geom       Geometry
	adj        Adjacency
	adjValid   bool
	classifier Classifier

	volumes []*Volume
	used    int
}

// NewNode creates a node for mesh. A nil mesh is allowed and yields empty volumes.
func NewNode(mesh Mesh, opts Options) *Node {
	if opts.Infinity <= 0 {
		opts.Infinity = DefaultInfinity
	}
	if opts.MaxLights <= 0 {
		opts.MaxLights = lighting.DefaultMaxLights
	}
	if opts.Logger == nil {
		opts.Logger = logger.Named("shadow")
	}
	return &Node{
		mesh: mesh,
		extruder: Extruder{
			Method:      opts.Method,
			Infinity:    opts.Infinity,
			NoZPassCaps: opts.NoZPassCaps,
		},
		maxLight: opts.MaxLights,
		log:      opts.Logger,
	}
}

// SetMesh replaces the shadow mesh and forces an adjacency rebuild on the
// next Update, even when the new mesh has the same counts as the old one.
func (n *Node) SetMesh(mesh Mesh) {
	n.mesh = mesh
	n.adjValid = false
}

// Mesh returns the current shadow mesh.
func (n *Node) Mesh() Mesh {
	return n.mesh
}

// Method returns the stencil method the volumes are built for.
func (n *Node) Method() Method {
	return n.extruder.Method
}

// Extruder returns the extrusion settings.
func (n *Node) Extruder() Extruder {
	return n.extruder
}

// Geometry returns the flattened mesh from the last Update.
func (n *Node) Geometry() *Geometry {
	return &n.geom
}

// Adjacency returns the adjacency table from the last rebuild.
func (n *Node) Adjacency() Adjacency {
	return n.adj
}

// Volumes returns the volumes built by the last Update, one per shadow-casting
// light in range, in light order. Volumes beyond these are kept for reuse but
// hold stale data.
func (n *Node) Volumes() []*Volume {
	return n.volumes[:n.used]
}

// Update rebuilds the volumes for this frame. world is the object's world
// transform; lights are in world space. Lights that do not cast shadows, or
// whose radius does not reach the object's origin, get no volume.
func (n *Node) Update(lights []lighting.Light, world math.Mat4) {
	n.used = 0

	if n.geom.Flatten(n.mesh) || !n.adjValid {
		n.adj = BuildAdjacency(n.adj, n.geom.Vertices, n.geom.Indices)
		n.adjValid = true
		n.log.Debug("adjacency rebuilt",
			zap.Int("vertices", len(n.geom.Vertices)),
			zap.Int("faces", n.geom.FaceCount()),
			zap.Int("boundary_edges", n.adj.BoundaryEdges()),
		)
	}

	inv, ok := world.Invert()
	if !ok {
		n.log.Debug("singular world transform, no volumes built")
		return
	}
	objPos := world.Translation()

	if len(lights) > n.maxLight {
		lights = lights[:n.maxLight]
	}

	for i, l := range lights {
		if !l.CastShadows {
			continue
		}
		if !l.InRange(objPos) {
			if ce := n.log.Check(zap.DebugLevel, "light out of range"); ce != nil {
				ce.Write(zap.Int("light", i), zap.Float32("radius", l.Radius))
			}
			continue
		}
		n.build(n.nextVolume(i), l.LocalVector(inv))
	}

	if ce := n.log.Check(zap.DebugLevel, "shadow volumes updated"); ce != nil {
		ce.Write(zap.Int("volumes", n.used), zap.Stringer("method", n.extruder.Method))
	}
}

// build fills vol for one object-space light vector.
func (n *Node) build(vol *Volume, light math.Vec3) {
	front, edges := n.classifier.Classify(&n.geom, n.adj, light)
	vol.FrontFaces = CountFront(front)
	vol.SilhouetteEdges = len(edges)
	vol.Reserve(n.extruder.PointCount(vol.FrontFaces, vol.SilhouetteEdges))
	n.extruder.Extrude(vol, &n.geom, front, edges, light)
}

// nextVolume returns the next free volume, allocating one only when every
// existing volume is in use this frame.
func (n *Node) nextVolume(light int) *Volume {
	if n.used == len(n.volumes) {
		n.volumes = append(n.volumes, &Volume{})
	}
	vol := n.volumes[n.used]
	vol.Reset(light)
	n.used++
	return vol
}
