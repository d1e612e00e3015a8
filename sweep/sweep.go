// Package sweep implements closed-form time-of-impact solvers for a moving sphere against static primitives.
//
// Every solver takes the sphere centre at the start of the motion, the full displacement over the
// motion (not normalized) and the sphere radius, and returns the time t at which the sphere surface
// first touches the primitive, so that the centre at contact is pos + disp*t.
//
// Times are NOT clamped to [0,1]: callers decide which range is meaningful. "No contact" is always
// reported as +Inf (or, for degenerate inputs, another non-finite value), never as an error, so that
// results can be combined with plain min() comparisons.
//
// References:
//   - Ericson: "Real-Time Collision Detection" (2005), 5.5 Intersection of moving objects
//   - Fauerby: "Improved Collision detection and Response" (2003)
package sweep

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NoContact is returned by every solver when the sphere never touches the primitive.
var NoContact = math.Inf(1)

// ToPlane returns the time at which the signed distance from the sphere centre to the plane
// equals radius. The plane is given by any point on it and its unit normal; the distance is
// measured along the normal, so only the side the normal points to is considered.
//
// Returns NoContact when the displacement is parallel to the plane.
func ToPlane(pos, disp mgl64.Vec3, radius float64, pointOnPlane, normal mgl64.Vec3) float64 {
	// solve: n·(pos + disp*t - p) = r
	div := normal.Dot(disp)
	if div == 0 {
		return NoContact
	}

	return (radius - normal.Dot(pos.Sub(pointOnPlane))) / div
}

// ToPoint returns the earliest time at which |pos + disp*t - point| = radius.
//
// Returns NoContact for a zero displacement or when the path never comes within radius of the point.
func ToPoint(pos, disp mgl64.Vec3, radius float64, point mgl64.Vec3) float64 {
	rel := pos.Sub(point)

	a := disp.Dot(disp)
	b := 2 * disp.Dot(rel)
	c := rel.Dot(rel) - radius*radius

	return smallestRoot(a, b, c)
}

// ToLine returns the earliest time at which the distance from the sphere centre to the infinite
// line equals radius. The distance is |(pos + disp*t - pointOnLine) × direction|, so direction
// must be unit length for the result to be a true distance.
//
// Returns NoContact when the displacement is zero or parallel to the line, or when the path never
// comes within radius of the line.
func ToLine(pos, disp mgl64.Vec3, radius float64, pointOnLine, direction mgl64.Vec3) float64 {
	// |B + A t|² = r² with A = disp × dir, B = rel × dir
	a := disp.Cross(direction)
	b := pos.Sub(pointOnLine).Cross(direction)

	return smallestRoot(a.Dot(a), 2*a.Dot(b), b.Dot(b)-radius*radius)
}

// ToSegment solves ToLine against the segment's supporting line, then keeps the result only if
// the contact falls within the segment, i.e. the centre at contact projects onto
// pointOnSegment + segment*s with s in [0,1].
func ToSegment(pos, disp mgl64.Vec3, radius float64, pointOnSegment, segment mgl64.Vec3) float64 {
	lenSqr := segment.Dot(segment)
	if lenSqr == 0 {
		return NoContact
	}

	t := ToLine(pos, disp, radius, pointOnSegment, segment.Mul(1/math.Sqrt(lenSqr)))
	if math.IsInf(t, 0) || math.IsNaN(t) {
		return NoContact
	}

	center := pos.Add(disp.Mul(t))
	s := center.Sub(pointOnSegment).Dot(segment) / lenSqr
	if s < 0 || s > 1 {
		return NoContact
	}

	return t
}

// SegmentParameter returns s such that pointOnSegment + segment*s is the projection of point on the
// segment's supporting line.
func SegmentParameter(point, pointOnSegment, segment mgl64.Vec3) float64 {
	return point.Sub(pointOnSegment).Dot(segment) / segment.Dot(segment)
}

// smallestRoot returns the smaller real root of a*t² + b*t + c = 0, or NoContact.
func smallestRoot(a, b, c float64) float64 {
	if a == 0 {
		return NoContact
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return NoContact
	}

	root := math.Sqrt(discriminant)
	t1 := (-b - root) / (2 * a)
	t2 := (-b + root) / (2 * a)

	return math.Min(t1, t2)
}
