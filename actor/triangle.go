package actor

import "github.com/go-gl/mathgl/mgl64"

// Edge is one side of a triangle: the segment Start -> Start+Vector.
type Edge struct {
	Start  mgl64.Vec3
	Vector mgl64.Vec3
	// Normal lies in the triangle plane and points away from the triangle
	Normal mgl64.Vec3
}

// Triangle is a static collision triangle. Every derived vector is computed once by NewTriangle;
// a Triangle is never mutated afterwards.
//
// The face normal follows the right-hand rule on Edge12 × Edge31, and each edge normal is
// Normal × edge, which makes the edge normals point outward whatever the winding.
// A zero-area triangle has undefined (NaN) normals.
type Triangle struct {
	V1, V2, V3 mgl64.Vec3

	Edge12, Edge23, Edge31 mgl64.Vec3

	Normal mgl64.Vec3

	Edge12Normal, Edge23Normal, Edge31Normal mgl64.Vec3

	Centroid mgl64.Vec3

	Edge12Center, Edge23Center, Edge31Center mgl64.Vec3
}

// NewTriangle precomputes edges, normals, centroid and edge midpoints.
func NewTriangle(v1, v2, v3 mgl64.Vec3) Triangle {
	edge12 := v2.Sub(v1)
	edge23 := v3.Sub(v2)
	edge31 := v1.Sub(v3)

	normal := edge12.Cross(edge31).Normalize()

	return Triangle{
		V1: v1, V2: v2, V3: v3,

		Edge12: edge12,
		Edge23: edge23,
		Edge31: edge31,

		Normal:       normal,
		Edge12Normal: normal.Cross(edge12).Normalize(),
		Edge23Normal: normal.Cross(edge23).Normalize(),
		Edge31Normal: normal.Cross(edge31).Normalize(),

		Centroid:     v1.Add(v2).Add(v3).Mul(1.0 / 3.0),
		Edge12Center: lerp(v1, v2, 0.5),
		Edge23Center: lerp(v2, v3, 0.5),
		Edge31Center: lerp(v3, v1, 0.5),
	}
}

// Vertices returns V1, V2, V3 in order.
func (t *Triangle) Vertices() [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{t.V1, t.V2, t.V3}
}

// Edges returns the three edges in order 1->2, 2->3, 3->1.
func (t *Triangle) Edges() [3]Edge {
	return [3]Edge{
		{Start: t.V1, Vector: t.Edge12, Normal: t.Edge12Normal},
		{Start: t.V2, Vector: t.Edge23, Normal: t.Edge23Normal},
		{Start: t.V3, Vector: t.Edge31, Normal: t.Edge31Normal},
	}
}

// SignedDistance returns the distance from point to the triangle plane, positive on the Normal side.
func (t *Triangle) SignedDistance(point mgl64.Vec3) float64 {
	return t.Normal.Dot(point.Sub(t.V1))
}

// Facing returns the face normal oriented toward point.
func (t *Triangle) Facing(point mgl64.Vec3) mgl64.Vec3 {
	if t.SignedDistance(point) < 0 {
		return t.Normal.Mul(-1)
	}
	return t.Normal
}

// ContainsProjection reports whether the projection of point along the normal falls inside the
// triangle: the point is on the inner side of all three edge normals.
func (t *Triangle) ContainsProjection(point mgl64.Vec3) bool {
	return t.Edge12Normal.Dot(point.Sub(t.V1)) <= 0 &&
		t.Edge23Normal.Dot(point.Sub(t.V2)) <= 0 &&
		t.Edge31Normal.Dot(point.Sub(t.V3)) <= 0
}

// ClosestPoint returns the point of the triangle closest to point.
func (t *Triangle) ClosestPoint(point mgl64.Vec3) mgl64.Vec3 {
	projected := point.Sub(t.Normal.Mul(t.SignedDistance(point)))
	if t.ContainsProjection(projected) {
		return projected
	}

	// outside the face: the closest point lies on an edge
	edges := t.Edges()
	closest := ClosestPointOnSegment(edges[0].Start, edges[0].Vector, point)
	bestDist := point.Sub(closest).LenSqr()

	for _, edge := range edges[1:] {
		candidate := ClosestPointOnSegment(edge.Start, edge.Vector, point)
		if dist := point.Sub(candidate).LenSqr(); dist < bestDist {
			closest = candidate
			bestDist = dist
		}
	}

	return closest
}

// AABB returns the bounding box of the three vertices.
func (t *Triangle) AABB() AABB {
	return NewAABB(t.V1).Extend(t.V2).Extend(t.V3)
}

// ClosestPointOnSegment returns the point of the segment start -> start+segment closest to point.
func ClosestPointOnSegment(start, segment, point mgl64.Vec3) mgl64.Vec3 {
	lenSqr := segment.LenSqr()
	if lenSqr == 0 {
		return start
	}

	s := point.Sub(start).Dot(segment) / lenSqr
	s = mgl64.Clamp(s, 0, 1)

	return start.Add(segment.Mul(s))
}

func lerp(a, b mgl64.Vec3, amount float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(amount))
}
