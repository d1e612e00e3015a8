package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

// unitTriangle lies in z=0 with its right angle at the origin
func unitTriangle() Triangle {
	return NewTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
}

func TestNewTriangle_Normals(t *testing.T) {
	tri := unitTriangle()

	tests := []struct {
		name     string
		got      mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"face normal", tri.Normal, mgl64.Vec3{0, 0, -1}},
		{"edge 1-2", tri.Edge12Normal, mgl64.Vec3{0, -1, 0}},
		{"edge 2-3", tri.Edge23Normal, mgl64.Vec3{1 / math.Sqrt2, 1 / math.Sqrt2, 0}},
		{"edge 3-1", tri.Edge31Normal, mgl64.Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.ApproxEqualThreshold(tt.expected, epsilon) {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestNewTriangle_EdgeNormalsPointOutward(t *testing.T) {
	// both windings of the same triangle
	triangles := map[string]Triangle{
		"counter clockwise": unitTriangle(),
		"clockwise":         NewTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}),
	}

	for name, tri := range triangles {
		t.Run(name, func(t *testing.T) {
			for i, edge := range tri.Edges() {
				midpoint := edge.Start.Add(edge.Vector.Mul(0.5))
				if edge.Normal.Dot(tri.Centroid.Sub(midpoint)) >= 0 {
					t.Errorf("edge %d normal %v points toward the centroid", i, edge.Normal)
				}
				if math.Abs(edge.Normal.Dot(tri.Normal)) > epsilon {
					t.Errorf("edge %d normal %v is not in the triangle plane", i, edge.Normal)
				}
			}
		})
	}
}

func TestNewTriangle_Centers(t *testing.T) {
	tri := NewTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3, 0, 0}, mgl64.Vec3{0, 3, 3})

	if !tri.Centroid.ApproxEqualThreshold(mgl64.Vec3{1, 1, 1}, epsilon) {
		t.Errorf("Centroid = %v, want {1, 1, 1}", tri.Centroid)
	}
	if !tri.Edge12Center.ApproxEqualThreshold(mgl64.Vec3{1.5, 0, 0}, epsilon) {
		t.Errorf("Edge12Center = %v", tri.Edge12Center)
	}
	if !tri.Edge23Center.ApproxEqualThreshold(mgl64.Vec3{1.5, 1.5, 1.5}, epsilon) {
		t.Errorf("Edge23Center = %v", tri.Edge23Center)
	}
	if !tri.Edge31Center.ApproxEqualThreshold(mgl64.Vec3{0, 1.5, 1.5}, epsilon) {
		t.Errorf("Edge31Center = %v", tri.Edge31Center)
	}
}

func TestTriangle_DegenerateHasNaNNormal(t *testing.T) {
	tri := NewTriangle(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{2, 0, 0})

	if !math.IsNaN(tri.Normal.X()) {
		t.Errorf("collinear triangle normal = %v, want NaN", tri.Normal)
	}
}

func TestTriangle_SignedDistanceAndFacing(t *testing.T) {
	tri := unitTriangle()

	if d := tri.SignedDistance(mgl64.Vec3{0.2, 0.2, 2}); math.Abs(d+2) > epsilon {
		t.Errorf("SignedDistance above = %v, want -2", d)
	}
	if d := tri.SignedDistance(mgl64.Vec3{5, 5, -1}); math.Abs(d-1) > epsilon {
		t.Errorf("SignedDistance below = %v, want 1", d)
	}

	if n := tri.Facing(mgl64.Vec3{0, 0, 2}); n != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Facing above = %v, want {0, 0, 1}", n)
	}
	if n := tri.Facing(mgl64.Vec3{0, 0, -2}); n != (mgl64.Vec3{0, 0, -1}) {
		t.Errorf("Facing below = %v, want {0, 0, -1}", n)
	}
}

func TestTriangle_ContainsProjection(t *testing.T) {
	tri := unitTriangle()

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{"inside, above", mgl64.Vec3{0.2, 0.2, 5}, true},
		{"inside, below", mgl64.Vec3{0.2, 0.2, -5}, true},
		{"on a vertex", mgl64.Vec3{0, 0, 0}, true},
		{"on the hypotenuse", mgl64.Vec3{0.5, 0.5, 1}, true},
		{"past the hypotenuse", mgl64.Vec3{1, 1, 0}, false},
		{"behind edge 1-2", mgl64.Vec3{0.5, -0.1, 0}, false},
		{"behind edge 3-1", mgl64.Vec3{-0.1, 0.5, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tri.ContainsProjection(tt.point); got != tt.expected {
				t.Errorf("ContainsProjection(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestTriangle_ClosestPoint(t *testing.T) {
	tri := unitTriangle()

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"over the face", mgl64.Vec3{0.25, 0.25, 3}, mgl64.Vec3{0.25, 0.25, 0}},
		{"beside edge 3-1", mgl64.Vec3{-1, 0.5, 1}, mgl64.Vec3{0, 0.5, 0}},
		{"beyond the hypotenuse", mgl64.Vec3{1, 1, 0}, mgl64.Vec3{0.5, 0.5, 0}},
		{"near vertex 2", mgl64.Vec3{2, -1, 0}, mgl64.Vec3{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tri.ClosestPoint(tt.point)
			if !got.ApproxEqualThreshold(tt.expected, epsilon) {
				t.Errorf("ClosestPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestTriangle_AABB(t *testing.T) {
	tri := NewTriangle(mgl64.Vec3{1, -2, 0}, mgl64.Vec3{-1, 3, 4}, mgl64.Vec3{0, 0, -1})
	box := tri.AABB()

	if box.Min != (mgl64.Vec3{-1, -2, -1}) || box.Max != (mgl64.Vec3{1, 3, 4}) {
		t.Errorf("AABB = %+v", box)
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	start := mgl64.Vec3{0, 0, 0}
	segment := mgl64.Vec3{2, 0, 0}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"middle", mgl64.Vec3{1, 1, 0}, mgl64.Vec3{1, 0, 0}},
		{"before start", mgl64.Vec3{-3, 1, 1}, mgl64.Vec3{0, 0, 0}},
		{"after end", mgl64.Vec3{5, 0, -1}, mgl64.Vec3{2, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClosestPointOnSegment(start, segment, tt.point)
			if !got.ApproxEqualThreshold(tt.expected, epsilon) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}

	t.Run("zero length", func(t *testing.T) {
		if got := ClosestPointOnSegment(start, mgl64.Vec3{}, mgl64.Vec3{4, 4, 4}); got != start {
			t.Errorf("got %v, want start", got)
		}
	})
}
