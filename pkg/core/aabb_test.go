package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func randomAABB(random *rand.Rand) AABB {
	a := NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
	b := NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
	return NewAABBFromPoints(a, b)
}

func TestAABB_PadsDegenerateAxes(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 0, 1))
	if box.Y.Size() < minAxisThickness {
		t.Errorf("Expected Y axis padded to at least %v, got %v", minAxisThickness, box.Y.Size())
	}
	if box.X.Size() != 1 {
		t.Errorf("Non-degenerate axis should not be padded, got size %v", box.X.Size())
	}
}

func TestAABB_FromPointsOrderIndependent(t *testing.T) {
	a := NewAABBFromPoints(NewVec3(1, 2, 3), NewVec3(-1, -2, -3))
	b := NewAABBFromPoints(NewVec3(-1, -2, -3), NewVec3(1, 2, 3))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Boxes differ (-a +b):\n%s", diff)
	}
}

func TestAABB_MergeProperties(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	approx := cmpopts.EquateApprox(0, 1e-12)

	for i := 0; i < 200; i++ {
		a, b, c := randomAABB(random), randomAABB(random), randomAABB(random)

		if diff := cmp.Diff(a.Merge(b), b.Merge(a), approx); diff != "" {
			t.Fatalf("Merge is not commutative (-ab +ba):\n%s", diff)
		}
		if diff := cmp.Diff(a.Merge(b).Merge(c), a.Merge(b.Merge(c)), approx); diff != "" {
			t.Fatalf("Merge is not associative:\n%s", diff)
		}
		merged := a.Merge(b)
		if !merged.Contains(a) || !merged.Contains(b) {
			t.Fatalf("Merge(%v, %v) = %v does not contain both inputs", a, b, merged)
		}
	}

	box := randomAABB(random)
	if diff := cmp.Diff(box, EmptyAABB.Merge(box)); diff != "" {
		t.Errorf("EmptyAABB should be the identity of Merge:\n%s", diff)
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		rayT     Interval
		expected bool
	}{
		{"straight through", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), UniverseInterval, true},
		{"pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), NewInterval(0, math.Inf(1)), false},
		{"parallel outside slab", NewRay(NewVec3(0, 2, -5), NewVec3(0, 0, 1)), UniverseInterval, false},
		{"diagonal", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), NewInterval(0, math.Inf(1)), true},
		{"interval ends before box", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), NewInterval(0, 3), false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 0.3, 0)), NewInterval(0.001, math.Inf(1)), true},
		{"grazing edge of slab", NewRay(NewVec3(1, 0, -5), NewVec3(0, 0, 1)), UniverseInterval, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, tt.rayT); got != tt.expected {
				t.Errorf("Hit = %t, expected %t", got, tt.expected)
			}
		})
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		max      Vec3
		expected int
	}{
		{"x longest", NewVec3(3, 1, 1), 0},
		{"y longest", NewVec3(1, 3, 1), 1},
		{"z longest", NewVec3(1, 1, 3), 2},
		{"x and y tie", NewVec3(2, 2, 1), 0},
		{"y and z tie", NewVec3(1, 2, 2), 1},
		{"cube", NewVec3(1, 1, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := NewAABBFromPoints(NewVec3(0, 0, 0), tt.max)
			if got := box.LongestAxis(); got != tt.expected {
				t.Errorf("LongestAxis = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestAABB_TranslateAndCorners(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 2, 3)).Translate(NewVec3(10, 0, -1))

	want := NewAABBFromPoints(NewVec3(10, 0, -1), NewVec3(11, 2, 2))
	if diff := cmp.Diff(want, box, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Translate mismatch (-want +got):\n%s", diff)
	}

	corners := box.Corners()
	if corners[0] != box.Min() || corners[7] != box.Max() {
		t.Errorf("Expected first and last corners to be Min and Max, got %v and %v", corners[0], corners[7])
	}
	seen := make(map[Vec3]bool)
	for _, corner := range corners {
		seen[corner] = true
	}
	if len(seen) != 8 {
		t.Errorf("Expected 8 distinct corners, got %d", len(seen))
	}
}
