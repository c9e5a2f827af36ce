package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Layered represents a material with two layers, an outer and inner material.
// Light hits the outer layer first; if it scatters inward it hits the inner layer.
type Layered struct {
	Outer Material // Coating, usually a dielectric
	Inner Material // Base material
}

// NewLayered creates a new layered material
func NewLayered(outer, inner Material) *Layered {
	return &Layered{
		Outer: outer,
		Inner: inner,
	}
}

// Scatter implements the Material interface for layered scattering
func (l *Layered) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	outerHit := *hit
	outerHit.Material = l.Outer

	outerResult, outerScatters := l.Outer.Scatter(rayIn, &outerHit, sampler)
	if !outerScatters {
		return ScatterResult{}, false
	}

	// Rays leaving the outer layer away from the surface never reach the inner one
	scatteredDirection := outerResult.Scattered.Direction.Normalize()
	if scatteredDirection.Dot(hit.Normal) >= 0 {
		return outerResult, true
	}

	innerRay := core.NewRayAtTime(hit.Point, scatteredDirection, rayIn.Time)
	innerHit := *hit
	innerHit.Material = l.Inner

	innerResult, innerScatters := l.Inner.Scatter(innerRay, &innerHit, sampler)
	if !innerScatters {
		return outerResult, true
	}

	return ScatterResult{
		Scattered:   innerResult.Scattered,
		Attenuation: core.MultiplyVec(outerResult.Attenuation, innerResult.Attenuation),
	}, true
}
