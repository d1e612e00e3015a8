package slide

import (
	"math"

	"github.com/akmonengine/slide/actor"
	"github.com/akmonengine/slide/sweep"
	"github.com/go-gl/mathgl/mgl64"
)

// Resolution is the outcome of one query. It is produced fresh by every query.
type Resolution struct {
	// Position is the corrected sphere centre the caller should assign
	Position mgl64.Vec3
	// Contact is the touched point of the environment, zero without collision
	Contact mgl64.Vec3
	// Normal is Position - Contact, normalized, zero without collision
	Normal mgl64.Vec3
	// T is the fraction of the requested displacement travelled before contact.
	// For repel queries it is the projection of the correction onto the displacement.
	T float64
	// Triangle is the handle of the touched triangle, NoTriangle without collision
	Triangle Handle
	Collided bool
}

func noCollision(pos mgl64.Vec3) Resolution {
	return Resolution{Position: pos, T: 1, Triangle: NoTriangle}
}

// CollideTriangle sweeps a sphere from pos along disp against a single triangle.
//
// Seven candidate times are computed: the face plane, the three edges and the three vertices.
// The plane candidate counts only if its contact point lies inside the triangle. Candidates
// outside [0,1] are rejected, and on equal times the first one in the order
// plane, edge 1->2, 2->3, 3->1, vertex 1, 2, 3 wins.
//
// The plane is two-sided: it is tested with the face normal oriented toward pos, and only
// stops a sphere moving toward it.
//
// Returns the contact time, the contact point and whether there was a contact at all.
func CollideTriangle(tri *actor.Triangle, pos, disp mgl64.Vec3, radius float64) (float64, mgl64.Vec3, bool) {
	best := math.Inf(1)
	var contact mgl64.Vec3
	found := false

	// Plane, only when moving toward it
	normal := tri.Facing(pos)
	if normal.Dot(disp) < 0 {
		if t := sweep.ToPlane(pos, disp, radius, tri.V1, normal); accept(t, best) {
			point := pos.Add(disp.Mul(t)).Sub(normal.Mul(radius))
			if tri.ContainsProjection(point) {
				best, contact, found = t, point, true
			}
		}
	}

	// Edges
	for _, edge := range tri.Edges() {
		if t := sweep.ToSegment(pos, disp, radius, edge.Start, edge.Vector); accept(t, best) {
			center := pos.Add(disp.Mul(t))
			best, contact, found = t, actor.ClosestPointOnSegment(edge.Start, edge.Vector, center), true
		}
	}

	// Vertices
	for _, vertex := range tri.Vertices() {
		if t := sweep.ToPoint(pos, disp, radius, vertex); accept(t, best) {
			best, contact, found = t, vertex, true
		}
	}

	return best, contact, found
}

// accept keeps t when it lies within the current tick and strictly improves on best.
// NaN is always rejected.
func accept(t, best float64) bool {
	return t >= 0 && t <= 1 && t < best
}

// CollideTriangle runs the single-triangle sweep from prev to pos against the triangle h
func (m *Mesh) CollideTriangle(h Handle, prev, pos mgl64.Vec3, radius float64) Resolution {
	disp := pos.Sub(prev)

	t, contact, ok := CollideTriangle(&m.triangles[h], prev, disp, radius)
	if !ok {
		return noCollision(pos)
	}

	return contactResolution(prev.Add(disp.Mul(t)), contact, t, h)
}

// Collide sweeps a sphere from prev to pos against every triangle of the mesh, without spatial
// filtering, and stops it at the earliest contact within the motion.
func (m *Mesh) Collide(prev, pos mgl64.Vec3, radius float64) Resolution {
	disp := pos.Sub(prev)

	best := math.Inf(1)
	var contact mgl64.Vec3
	handle := NoTriangle

	for i := range m.triangles {
		t, point, ok := CollideTriangle(&m.triangles[i], prev, disp, radius)
		if ok && t < best {
			best, contact, handle = t, point, Handle(i)
		}
	}

	if handle == NoTriangle {
		return noCollision(pos)
	}

	return contactResolution(prev.Add(disp.Mul(best)), contact, best, handle)
}

// Repel moves a sphere from prev to pos against the triangles indexed near both positions and
// pushes it out of any triangle it ends up overlapping, including when it already overlapped at
// prev. Triangle results are compared by how far along the displacement their corrected
// position lies, and the smallest wins.
func (m *Mesh) Repel(prev, pos mgl64.Vec3, radius float64) Resolution {
	disp := pos.Sub(prev)
	dispLenSqr := disp.LenSqr()

	best := math.Inf(1)
	result := noCollision(pos)

	for _, h := range m.grid.Candidates(prev, pos) {
		corrected, contact, ok := repelTriangle(&m.triangles[h], prev, pos, disp, radius, m.config.Skin)
		if !ok {
			continue
		}

		progress := 0.0
		if dispLenSqr > 0 {
			progress = corrected.Sub(prev).Dot(disp) / dispLenSqr
		}

		if progress < best {
			best = progress
			result = contactResolution(corrected, contact, progress, h)
		}
	}

	return result
}

// repelTriangle returns the corrected position of a sphere moving from prev to pos against tri.
//
// A contact swept within the motion stops the sphere there. Otherwise, if the sphere overlaps
// the triangle at pos, it is pushed back to radius+skin from the closest point, clear of the
// triangle on the next query. When the centre crossed the triangle plane during the motion it is
// pushed back to the side prev was on.
func repelTriangle(tri *actor.Triangle, prev, pos, disp mgl64.Vec3, radius, skin float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	if t, contact, ok := CollideTriangle(tri, prev, disp, radius); ok {
		return prev.Add(disp.Mul(t)), contact, true
	}

	closest := tri.ClosestPoint(pos)
	offset := pos.Sub(closest)
	dist := offset.Len()
	if !(dist < radius) {
		return pos, mgl64.Vec3{}, false
	}

	facing := tri.Facing(prev)
	if side := facing.Dot(pos.Sub(tri.V1)); side < 0 || dist == 0 {
		return pos.Add(facing.Mul(radius + skin - side)), closest, true
	}

	return closest.Add(offset.Mul((radius + skin) / dist)), closest, true
}

func contactResolution(position, contact mgl64.Vec3, t float64, h Handle) Resolution {
	return Resolution{
		Position: position,
		Contact:  contact,
		Normal:   contactNormal(position, contact),
		T:        t,
		Triangle: h,
		Collided: true,
	}
}

// contactNormal returns (position - contact) normalized, or zero when both coincide
func contactNormal(position, contact mgl64.Vec3) mgl64.Vec3 {
	n := position.Sub(contact)
	l := n.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return n.Mul(1 / l)
}
