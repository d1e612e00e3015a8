// Package slide resolves spheres moving through a static triangulated environment.
//
// A Mesh owns the triangles and a 2D spatial grid over their horizontal extent. Triangles are
// added once at load time, the mesh is built, and from then on every query is a pure read:
// a built Mesh can be shared by any number of goroutines without locking.
package slide

import (
	"github.com/akmonengine/slide/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Handle is the stable index of a triangle inside its Mesh
type Handle int

// NoTriangle is the handle reported by results without contact
const NoTriangle Handle = -1

var (
	// ErrMeshBuilt is returned when the mesh is modified or built again after Build
	ErrMeshBuilt = errors.New("collision mesh is already built")
	// ErrEmptyMesh is returned when building a mesh without triangles
	ErrEmptyMesh = errors.New("collision mesh has no triangles")
)

// Mesh is the static collision environment
type Mesh struct {
	triangles []actor.Triangle
	bounds    actor.AABB
	grid      *SpatialGrid
	config    Config
	logger    *zap.Logger
	built     bool
}

// NewMesh creates an empty mesh. A nil logger disables logging.
func NewMesh(config Config, logger *zap.Logger) (*Mesh, error) {
	if err := config.Validate("mesh"); err != nil {
		return nil, errors.Wrap(err, "invalid mesh config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Mesh{
		grid:   NewSpatialGrid(config.GridResolution),
		config: config,
		logger: logger,
	}, nil
}

// AddTriangle registers a triangle and returns its handle
func (m *Mesh) AddTriangle(v1, v2, v3 mgl64.Vec3) (Handle, error) {
	if m.built {
		return NoTriangle, ErrMeshBuilt
	}

	tri := actor.NewTriangle(v1, v2, v3)
	if len(m.triangles) == 0 {
		m.bounds = tri.AABB()
	} else {
		m.bounds = m.bounds.Union(tri.AABB())
	}
	m.triangles = append(m.triangles, tri)

	h := Handle(len(m.triangles) - 1)
	m.grid.track(h)

	return h, nil
}

// Build indexes the triangles. It must be called exactly once, after the last AddTriangle
// and before the first spatially filtered query.
func (m *Mesh) Build() error {
	if m.built {
		return ErrMeshBuilt
	}
	if len(m.triangles) == 0 {
		return ErrEmptyMesh
	}

	m.grid.Build(m.triangles, m.bounds)
	m.built = true

	if m.grid.Degenerate() {
		m.logger.Warn("collision mesh has zero horizontal extent, spatial grid disabled",
			zap.Int("triangles", len(m.triangles)),
			zap.Float64s("min", m.bounds.Min[:]),
			zap.Float64s("max", m.bounds.Max[:]),
		)
		return nil
	}

	m.logger.Info("collision mesh built",
		zap.Int("triangles", len(m.triangles)),
		zap.Int("grid_resolution", m.grid.Resolution()),
		zap.Float64s("min", m.bounds.Min[:]),
		zap.Float64s("max", m.bounds.Max[:]),
	)

	return nil
}

// Built reports whether Build succeeded
func (m *Mesh) Built() bool {
	return m.built
}

// Len returns the number of triangles
func (m *Mesh) Len() int {
	return len(m.triangles)
}

// Triangle returns the triangle behind a handle. The triangle must not be modified.
func (m *Mesh) Triangle(h Handle) *actor.Triangle {
	return &m.triangles[h]
}

// Bounds returns the bounding box of every triangle
func (m *Mesh) Bounds() actor.AABB {
	return m.bounds
}

// Grid returns the spatial index
func (m *Mesh) Grid() *SpatialGrid {
	return m.grid
}

// Config returns the configuration the mesh was created with
func (m *Mesh) Config() Config {
	return m.config
}
