package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ConstantMedium is a volume of uniform density bounded by a closed shape, like smoke or fog
type ConstantMedium struct {
	Boundary      Shape
	Density       float64
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium creates a medium filling boundary with an isotropic phase function of the given color
func NewConstantMedium(boundary Shape, density float64, albedo core.Vec3) *ConstantMedium {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// NewTexturedConstantMedium creates a medium whose phase function takes its color from a texture
func NewTexturedConstantMedium(boundary Shape, density float64, albedo material.Texture) *ConstantMedium {
	if density < 0 || math.IsNaN(density) {
		panic("geometry: medium density must not be negative")
	}
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
		negInvDensity: -1 / density,
	}
}

// Hit samples a scattering distance inside the boundary.
// The boundary must be convex; the reported normal is arbitrary.
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	if m.Density == 0 {
		return false
	}

	var entry, exit material.HitRecord
	if !m.Boundary.Hit(ray, core.UniverseInterval, sampler, &entry) {
		return false
	}
	if !m.Boundary.Hit(ray, core.NewInterval(entry.T+0.0001, math.Inf(1)), sampler, &exit) {
		return false
	}

	t1 := math.Max(entry.T, rayT.Min)
	t2 := math.Min(exit.T, rayT.Max)
	if t1 >= t2 {
		return false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Len()
	distanceInsideBoundary := (t2 - t1) * rayLength

	hitDistance := 0.0
	if !math.IsInf(m.Density, 1) {
		hitDistance = m.negInvDensity * math.Log(sampler.Get1D())
	}
	if hitDistance >= distanceInsideBoundary {
		return false
	}

	rec.T = t1 + hitDistance/rayLength
	rec.Point = ray.At(rec.T)
	rec.Normal = core.NewVec3(1, 0, 0)
	rec.FrontFace = true
	rec.UV = core.Vec2{}
	rec.Material = m.PhaseFunction

	return true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
