package material

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-pathtracer/pkg/core"
)

// fixedSampler returns the same values on every call
type fixedSampler struct {
	value1D float64
	value3D core.Vec3
}

func (f fixedSampler) Get1D() float64 { return f.value1D }
func (f fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(f.value1D, f.value1D)
}
func (f fixedSampler) Get3D() core.Vec3 { return f.value3D }

var approx = cmpopts.EquateApprox(0, 1e-9)

func upHit(mat Material) *HitRecord {
	return &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  mat,
	}
}

func TestLambertian_ScatterAboveSurface(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.7, 0.5, 0.3))
	ray := core.NewRayAtTime(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), 0.25)
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 200; i++ {
		result, ok := lambertian.Scatter(ray, upHit(lambertian), sampler)
		if !ok {
			t.Fatal("Lambertian should always scatter")
		}
		if result.Scattered.Direction.Dot(core.NewVec3(0, 1, 0)) < 0 {
			t.Errorf("Scattered direction %v points below the surface", result.Scattered.Direction)
		}
		if result.Scattered.Time != 0.25 {
			t.Errorf("Expected scattered time 0.25, got %v", result.Scattered.Time)
		}
		if diff := cmp.Diff(core.NewVec3(0.7, 0.5, 0.3), result.Attenuation); diff != "" {
			t.Errorf("Attenuation mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// Maps to the unit vector (0,-1,0), exactly opposite the normal
	sampler := fixedSampler{value3D: core.NewVec3(0.5, 0.25, 0.5)}

	result, ok := lambertian.Scatter(ray, upHit(lambertian), sampler)
	if !ok {
		t.Fatal("Lambertian should always scatter")
	}
	if diff := cmp.Diff(core.NewVec3(0, 1, 0), result.Scattered.Direction); diff != "" {
		t.Errorf("Expected fallback to the normal (-want +got):\n%s", diff)
	}
}

func TestMetal_PerfectMirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0)
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	result, ok := metal.Scatter(ray, upHit(metal), core.NewSeededSampler(1))
	if !ok {
		t.Fatal("Mirror should reflect a ray arriving from above")
	}

	want := core.NewVec3(1, 1, 0).Normalize()
	if diff := cmp.Diff(want, result.Scattered.Direction, approx); diff != "" {
		t.Errorf("Reflected direction mismatch (-want +got):\n%s", diff)
	}
}

func TestMetal_FuzzClamped(t *testing.T) {
	tests := []struct {
		fuzz float64
		want float64
	}{
		{-0.5, 0},
		{0.3, 0.3},
		{2.0, 1.0},
	}
	for _, tt := range tests {
		if got := NewMetal(core.NewVec3(1, 1, 1), tt.fuzz).Fuzz; got != tt.want {
			t.Errorf("NewMetal(fuzz=%v).Fuzz = %v, want %v", tt.fuzz, got, tt.want)
		}
	}
}

func TestMetal_AbsorbsBelowSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	// Grazing ray, the fuzz vector (0,-1,0) pushes the reflection under the surface
	ray := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	sampler := fixedSampler{value3D: core.NewVec3(0.5, 0.25, 0.5)}

	if _, ok := metal.Scatter(ray, upHit(metal), sampler); ok {
		t.Error("Expected ray fuzzed below the surface to be absorbed")
	}
}

func TestDielectric_AlwaysScattersWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0).Normalize())
	sampler := core.NewSeededSampler(42)

	sawRefraction := false
	for i := 0; i < 500; i++ {
		result, ok := glass.Scatter(ray, upHit(glass), sampler)
		if !ok {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != core.NewVec3(1, 1, 1) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}
		if result.Scattered.Direction[1] < 0 {
			sawRefraction = true
		}
	}
	if !sawRefraction {
		t.Error("Expected at least one refracted ray at 45 degrees")
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Exiting the glass at a steep angle: sin(theta)*1.5 > 1
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0.2, 0).Normalize())
	hit := &HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, -1, 0),
		FrontFace: false,
		Material:  glass,
	}

	// A sample of 0.999 would pick refraction whenever it is possible
	result, ok := glass.Scatter(ray, hit, fixedSampler{value1D: 0.999})
	if !ok {
		t.Fatal("Dielectric should always scatter")
	}
	if result.Scattered.Direction[1] >= 0 {
		t.Errorf("Expected total internal reflection back into the glass, got %v", result.Scattered.Direction)
	}
}

func TestReflectance(t *testing.T) {
	// Normal incidence on glass gives ((1-1.5)/(1+1.5))^2 = 0.04
	if got := Reflectance(1.0, 1.5); math.Abs(got-0.04) > 1e-12 {
		t.Errorf("Reflectance(1, 1.5) = %v, want 0.04", got)
	}
	if got := Reflectance(0.0, 1.5); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Reflectance at grazing angle = %v, want 1", got)
	}
}

func TestDiffuseLight(t *testing.T) {
	light := NewDiffuseLight(core.NewVec3(4, 4, 4))
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	if _, ok := light.Scatter(ray, upHit(light), core.NewSeededSampler(1)); ok {
		t.Error("DiffuseLight should never scatter")
	}
	if got := Emitted(light, core.Vec2{}, core.Vec3{}); got != core.NewVec3(4, 4, 4) {
		t.Errorf("Emitted = %v, want (4,4,4)", got)
	}
	if got := Emitted(NewLambertian(core.NewVec3(1, 1, 1)), core.Vec2{}, core.Vec3{}); got != (core.Vec3{}) {
		t.Errorf("Non-emitter emitted %v", got)
	}
}

func TestIsotropic_ScatterIsUnitFromHitPoint(t *testing.T) {
	iso := NewIsotropic(core.NewVec3(0.2, 0.4, 0.6))
	hit := upHit(iso)
	hit.Point = core.NewVec3(1, 2, 3)
	sampler := core.NewSeededSampler(9)

	for i := 0; i < 100; i++ {
		result, ok := iso.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), hit, sampler)
		if !ok {
			t.Fatal("Isotropic should always scatter")
		}
		if result.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered origin %v, want %v", result.Scattered.Origin, hit.Point)
		}
		if math.Abs(result.Scattered.Direction.Len()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got %v", result.Scattered.Direction)
		}
	}
}

func TestMix_RatioSelectsMaterial(t *testing.T) {
	red := NewLambertian(core.NewVec3(1, 0, 0))
	blue := NewLambertian(core.NewVec3(0, 0, 1))
	mix := NewMix(red, blue, 0.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	tests := []struct {
		sample float64
		want   core.Vec3
	}{
		{0.1, core.NewVec3(0, 0, 1)},
		{0.9, core.NewVec3(1, 0, 0)},
	}
	for _, tt := range tests {
		sampler := fixedSampler{value1D: tt.sample, value3D: core.NewVec3(0.5, 0.9, 0.5)}
		result, _ := mix.Scatter(ray, upHit(mix), sampler)
		if result.Attenuation != tt.want {
			t.Errorf("sample %v: attenuation %v, want %v", tt.sample, result.Attenuation, tt.want)
		}
	}
}

func TestLayered_MetalCoatingReflectsOnly(t *testing.T) {
	layered := NewLayered(NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0), NewLambertian(core.NewVec3(1, 0, 0)))
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	result, ok := layered.Scatter(ray, upHit(layered), core.NewSeededSampler(3))
	if !ok {
		t.Fatal("Expected outer metal to reflect")
	}
	if result.Attenuation != core.NewVec3(0.9, 0.9, 0.9) {
		t.Errorf("Outward reflection should only carry the outer attenuation, got %v", result.Attenuation)
	}
}
