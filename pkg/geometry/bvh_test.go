package geometry

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func randomSpheres(sampler core.Sampler, count int) []Shape {
	shapes := make([]Shape, count)
	for i := range shapes {
		center := core.RandomVec3(sampler, -20, 20)
		radius := core.RandomInRange(sampler, 0.2, 1.5)
		shapes[i] = NewSphere(center, radius, material.NewLambertian(core.RandomVec3(sampler, 0, 1)))
	}
	return shapes
}

// randomMixedShapes cycles through every deterministic primitive type
func randomMixedShapes(sampler core.Sampler, count int) []Shape {
	shapes := make([]Shape, count)
	for i := range shapes {
		center := core.RandomVec3(sampler, -20, 20)
		size := core.RandomInRange(sampler, 0.3, 2)
		mat := material.NewLambertian(core.RandomVec3(sampler, 0, 1))
		switch i % 4 {
		case 0:
			shapes[i] = NewSphere(center, size, mat)
		case 1:
			u := core.RandomUnitVector(sampler).Mul(size)
			v := u.Cross(core.RandomUnitVector(sampler)).Normalize().Mul(size)
			shapes[i] = NewQuad(center, u, v, mat)
		case 2:
			shapes[i] = NewTriangle(center,
				center.Add(core.RandomVec3(sampler, -size, size)),
				center.Add(core.RandomVec3(sampler, -size, size)), mat)
		default:
			half := core.NewVec3(size, size/2, size/3)
			box := NewBox(half.Mul(-1), half, mat)
			angle := core.RandomInRange(sampler, 0, 360)
			shapes[i] = NewTranslate(NewRotateY(box, angle), center)
		}
	}
	return shapes
}

func TestBVH_MatchesBruteForce(t *testing.T) {
	generators := map[string]func(core.Sampler, int) []Shape{
		"spheres": randomSpheres,
		"mixed":   randomMixedShapes,
	}

	for name, generate := range generators {
		for _, count := range []int{1, 2, 3, 10, 1000} {
			t.Run(fmt.Sprintf("%s/%d primitives", name, count), func(t *testing.T) {
				sampler := core.NewSeededSampler(int64(count))
				shapes := generate(sampler, count)
				world := NewWorld(shapes...)
				bvh := NewBVH(shapes)

				for i := 0; i < 5000; i++ {
					origin := core.RandomVec3(sampler, -30, 30)
					direction := core.RandomUnitVector(sampler)
					if i%2 == 0 {
						// Aim at a primitive so that plenty of rays hit
						target := shapes[i%count].BoundingBox().Center()
						direction = target.Sub(origin)
					}
					ray := core.NewRay(origin, direction)

					rayT := hitRange
					if i%3 != 0 {
						lo := core.RandomInRange(sampler, 0, 40)
						rayT = core.NewInterval(lo, lo+core.RandomInRange(sampler, 0, 40))
					}

					var want, got material.HitRecord
					wantHit := world.Hit(ray, rayT, nil, &want)
					gotHit := bvh.Hit(ray, rayT, nil, &got)

					if wantHit != gotHit {
						t.Fatalf("ray %d in %v: BVH hit=%t, brute force hit=%t", i, rayT, gotHit, wantHit)
					}
					if !wantHit {
						continue
					}
					if diff := cmp.Diff(want, got, approx); diff != "" {
						t.Fatalf("ray %d in %v: hit record mismatch (-world +bvh):\n%s", i, rayT, diff)
					}
				}
			})
		}
	}
}

func TestBVH_MediumScatterMatchesBruteForce(t *testing.T) {
	medium := NewConstantMedium(NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), testMat), 0.5, core.NewVec3(1, 1, 1))
	far1 := NewSphere(core.NewVec3(50, 0, 0), 1, testMat)
	far2 := NewSphere(core.NewVec3(-50, 0, 0), 1, testMat)

	tests := []struct {
		name  string
		world Shape
	}{
		{"world", NewWorld(medium)},
		{"single primitive BVH", NewBVH([]Shape{medium})},
		{"odd split BVH", NewBVH([]Shape{medium, far1, far2})},
	}

	const trials = 20000
	ray := core.NewRay(core.NewVec3(0.2, 0.1, 5), core.NewVec3(0, 0, -1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler := core.NewSeededSampler(6)
			hits := 0
			for i := 0; i < trials; i++ {
				var rec material.HitRecord
				if tt.world.Hit(ray, hitRange, sampler, &rec) {
					hits++
				}
			}
			// 2 units at density 0.5 scatter with probability 1-e^-1
			want := 1 - math.Exp(-1)
			if frac := float64(hits) / trials; math.Abs(frac-want) > 0.02 {
				t.Errorf("Scatter fraction %.3f, want %.3f", frac, want)
			}
		})
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	var rec material.HitRecord
	if bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), hitRange, nil, &rec) {
		t.Error("Empty BVH should never hit")
	}
	if !bvh.BoundingBox().IsEmpty() {
		t.Errorf("Empty BVH box should be empty, got %v", bvh.BoundingBox())
	}
}

func TestBVH_BoxContainsEveryPrimitive(t *testing.T) {
	shapes := randomSpheres(core.NewSeededSampler(3), 100)
	bvh := NewBVH(shapes)
	for i, s := range shapes {
		if !bvh.BoundingBox().Contains(s.BoundingBox()) {
			t.Errorf("Root box does not contain primitive %d", i)
		}
	}
}

func TestBVH_DoesNotReorderInput(t *testing.T) {
	shapes := randomSpheres(core.NewSeededSampler(4), 50)
	before := make([]Shape, len(shapes))
	copy(before, shapes)

	NewBVH(shapes)

	for i := range shapes {
		if shapes[i] != before[i] {
			t.Fatalf("Input slice modified at index %d", i)
		}
	}
}

func TestBVH_Stats(t *testing.T) {
	tests := []struct {
		count     int
		wantNodes int
		maxDepth  int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 1},
		{4, 3, 2},
		{1024, 1023, 10},
	}
	for _, tt := range tests {
		stats := NewBVH(randomSpheres(core.NewSeededSampler(5), tt.count)).Stats()
		if stats.Primitives != tt.count || stats.Nodes != tt.wantNodes || stats.MaxDepth != tt.maxDepth {
			t.Errorf("%d primitives: got %+v, want %d nodes, depth %d", tt.count, stats, tt.wantNodes, tt.maxDepth)
		}
	}
}

func TestBVH_MixedShapesWithInfiniteDirectionComponents(t *testing.T) {
	shapes := []Shape{
		NewQuad(core.NewVec3(-1, -1, -3), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), testMat),
		NewSphere(core.NewVec3(0, 0, -6), 1, testMat),
		NewBox(core.NewVec3(3, 3, -4), core.NewVec3(4, 4, -5), testMat),
	}
	bvh := NewBVH(shapes)

	// Axis-aligned direction: the slab test divides by zero on x and y
	var rec material.HitRecord
	if !bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), hitRange, nil, &rec) {
		t.Fatal("Expected to hit the quad")
	}
	if math.Abs(rec.T-3) > 1e-9 {
		t.Errorf("Expected nearest hit at t=3, got %v", rec.T)
	}
}
