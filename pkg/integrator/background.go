package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Background is the radiance returned by rays that escape the scene.
// It blends from Bottom (looking straight down) to Top (looking straight up).
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// SolidBackground returns a background of one uniform color
func SolidBackground(color core.Vec3) Background {
	return Background{Top: color, Bottom: color}
}

// SkyBackground returns the classic white-to-blue sky gradient
func SkyBackground() Background {
	return Background{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Radiance returns the background color seen along ray
func (b Background) Radiance(ray core.Ray) core.Vec3 {
	if b.Top == b.Bottom {
		return b.Top
	}
	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection[1] + 1.0)
	return core.Lerp(b.Bottom, b.Top, a)
}
