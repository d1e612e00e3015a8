package slide

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

type query func(prev, pos mgl64.Vec3, radius float64) Resolution

// CollideAndSlide moves a sphere from prev toward pos, stopping at each contact and redirecting
// the rest of the motion along the touched surface, for at most Config.SlideIterations passes.
// The result holds the final position, the last contact and whether any pass collided.
func (m *Mesh) CollideAndSlide(prev, pos mgl64.Vec3, radius float64) Resolution {
	return m.slide(prev, pos, radius, m.Collide, "collide")
}

// RepelAndSlide is CollideAndSlide built on Repel: spatially filtered, and tolerant of spheres
// that start the motion already touching the environment.
func (m *Mesh) RepelAndSlide(prev, pos mgl64.Vec3, radius float64) Resolution {
	return m.slide(prev, pos, radius, m.Repel, "repel")
}

func (m *Mesh) slide(prev, pos mgl64.Vec3, radius float64, step query, name string) Resolution {
	result := noCollision(pos)
	resolved := prev
	target := pos
	collided := false
	done := false

	for pass := 0; pass < m.config.SlideIterations; pass++ {
		res := step(resolved, target, radius)
		if !res.Collided {
			resolved = target
			done = true
			break
		}

		collided = true
		result = res

		// stay a skin away from the surface so the next pass does not catch the same contact
		resolved = res.Position.Add(res.Normal.Mul(m.config.Skin))

		leftover := target.Sub(resolved)
		// a spent motion still runs the next pass: repel may have other overlaps to clear
		slide := leftover.Sub(res.Normal.Mul(leftover.Dot(res.Normal)))
		target = resolved.Add(slide)
	}

	if !done {
		m.logger.Debug("slide iteration budget exhausted",
			zap.String("query", name),
			zap.Int("iterations", m.config.SlideIterations),
			zap.Float64s("from", prev[:]),
			zap.Float64s("to", pos[:]),
		)
	}

	result.Position = resolved
	result.Collided = collided

	return result
}

// Grounded probes below a sphere: it is grounded when a repel toward
// pos + down*(radius+distance) stops within distance. A zero down is never grounded.
func (m *Mesh) Grounded(pos mgl64.Vec3, radius float64, down mgl64.Vec3, distance float64) bool {
	return grounded(m.Repel, pos, radius, down, distance)
}

func grounded(repel query, pos mgl64.Vec3, radius float64, down mgl64.Vec3, distance float64) bool {
	l := down.Len()
	if l == 0 {
		return false
	}
	down = down.Mul(1 / l)

	res := repel(pos, pos.Add(down.Mul(radius+distance)), radius)

	return res.Position.Sub(pos).Dot(down) <= distance
}
