package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestAABBOverlaps(t *testing.T) {
	unit := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name     string
		other    AABB
		expected bool
	}{
		{"identical", unit, true},
		{"partial overlap on X", AABB{Min: mgl64.Vec3{0.5, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}, true},
		{"touching faces", AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}, true},
		{"contained", AABB{Min: mgl64.Vec3{0.25, 0.25, 0.25}, Max: mgl64.Vec3{0.75, 0.75, 0.75}}, true},
		{"separated on X", AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}}, false},
		{"separated on Y", AABB{Min: mgl64.Vec3{0, -3, 0}, Max: mgl64.Vec3{1, -2, 1}}, false},
		{"separated on Z", AABB{Min: mgl64.Vec3{0, 0, 1.1}, Max: mgl64.Vec3{1, 1, 3}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unit.Overlaps(tt.other); got != tt.expected {
				t.Errorf("Overlaps = %v, want %v", got, tt.expected)
			}
			// Test symmetry
			if got := tt.other.Overlaps(unit); got != tt.expected {
				t.Errorf("Overlaps = %v, want %v (symmetry test)", got, tt.expected)
			}
		})
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected bool
	}{
		{"center", mgl64.Vec3{0, 0, 0}, true},
		{"corner", mgl64.Vec3{1, 1, 1}, true},
		{"outside X", mgl64.Vec3{1.5, 0, 0}, false},
		{"outside Z", mgl64.Vec3{0, 0, -1.01}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.ContainsPoint(tt.point); got != tt.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestAABBExtend(t *testing.T) {
	box := NewAABB(mgl64.Vec3{1, 1, 1})
	if box.Size() != (mgl64.Vec3{}) {
		t.Fatalf("single point box has size %v", box.Size())
	}

	box = box.Extend(mgl64.Vec3{-1, 3, 1}).Extend(mgl64.Vec3{0, 0, 2})

	if box.Min != (mgl64.Vec3{-1, 0, 1}) {
		t.Errorf("Min = %v, want {-1, 0, 1}", box.Min)
	}
	if box.Max != (mgl64.Vec3{1, 3, 2}) {
		t.Errorf("Max = %v, want {1, 3, 2}", box.Max)
	}
	if box.Size() != (mgl64.Vec3{2, 3, 1}) {
		t.Errorf("Size = %v, want {2, 3, 1}", box.Size())
	}
}

func TestAABBUnion(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	b := AABB{Min: mgl64.Vec3{-2, 0.5, 0.5}, Max: mgl64.Vec3{0, 4, 0.75}}

	union := a.Union(b)
	expected := AABB{Min: mgl64.Vec3{-2, 0, 0}, Max: mgl64.Vec3{1, 4, 1}}

	if union != expected {
		t.Errorf("Union = %+v, want %+v", union, expected)
	}
	if b.Union(a) != expected {
		t.Errorf("Union is not symmetric")
	}
}
