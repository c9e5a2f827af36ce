package geometry

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	approx   = cmpopts.EquateApprox(0, 1e-9)
	hitRange = core.NewInterval(0.001, math.Inf(1))
	testMat  = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMat)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	var rec material.HitRecord
	if sphere.Hit(ray, hitRange, nil, &rec) {
		t.Errorf("Expected miss, but got hit at t=%f", rec.T)
	}
	if rec != (material.HitRecord{}) {
		t.Errorf("Miss should leave the record untouched, got %+v", rec)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMat)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec material.HitRecord
			if !sphere.Hit(core.NewRay(tt.rayOrigin, tt.rayDirection), hitRange, nil, &rec) {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(rec.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, rec.T)
			}
			if rec.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, rec.FrontFace)
			}
			if diff := cmp.Diff(tt.expectedNormal, rec.Normal, approx); diff != "" {
				t.Errorf("Normal mismatch (-want +got):\n%s", diff)
			}
			if rec.Material != testMat {
				t.Error("Expected sphere material in hit record")
			}
		})
	}
}

func TestSphere_HitDistanceFromOrigin(t *testing.T) {
	sampler := core.NewSeededSampler(7)
	for i := 0; i < 200; i++ {
		center := core.RandomVec3(sampler, -10, 10)
		radius := core.RandomInRange(sampler, 0.1, 2)
		origin := core.RandomVec3(sampler, 15, 30)
		sphere := NewSphere(center, radius, testMat)

		// Direction length deliberately not 1
		direction := center.Sub(origin).Mul(0.37)
		var rec material.HitRecord
		if !sphere.Hit(core.NewRay(origin, direction), hitRange, nil, &rec) {
			t.Fatalf("Ray aimed at the center missed sphere %v r=%v", center, radius)
		}

		want := origin.Sub(center).Len() - radius
		got := rec.T * direction.Len()
		if math.Abs(got-want) > 1e-7*want {
			t.Errorf("Hit distance %v, want %v", got, want)
		}
	}
}

func TestSphere_UV(t *testing.T) {
	tests := []struct {
		point core.Vec3
		want  core.Vec2
	}{
		{core.NewVec3(1, 0, 0), core.NewVec2(0.5, 0.5)},
		{core.NewVec3(0, 1, 0), core.NewVec2(0.5, 1.0)},
		{core.NewVec3(0, -1, 0), core.NewVec2(0.5, 0.0)},
		{core.NewVec3(-1, 0, 0), core.NewVec2(0.0, 0.5)},
		{core.NewVec3(0, 0, 1), core.NewVec2(0.25, 0.5)},
		{core.NewVec3(0, 0, -1), core.NewVec2(0.75, 0.5)},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, sphereUV(tt.point), approx); diff != "" {
			t.Errorf("sphereUV(%v) mismatch (-want +got):\n%s", tt.point, diff)
		}
	}
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0.5, testMat)

	box := sphere.BoundingBox()
	if box.Y.Min > -0.5 || box.Y.Max < 2.5 {
		t.Errorf("Bounding box %v does not cover the whole motion", box)
	}

	ray := core.NewRayAtTime(core.NewVec3(0, 2, 5), core.NewVec3(0, 0, -1), 0)
	var rec material.HitRecord
	if sphere.Hit(ray, hitRange, nil, &rec) {
		t.Error("At time 0 the sphere is still at the origin")
	}

	ray = core.NewRayAtTime(core.NewVec3(0, 2, 5), core.NewVec3(0, 0, -1), 1)
	if !sphere.Hit(ray, hitRange, nil, &rec) {
		t.Fatal("At time 1 the sphere should be at y=2")
	}
	if math.Abs(rec.T-4.5) > 1e-9 {
		t.Errorf("Expected t=4.5, got %v", rec.T)
	}
}

func TestSphere_NegativeRadiusPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for negative radius")
		}
	}()
	NewSphere(core.Vec3{}, -1, testMat)
}
