package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate offsets a shape without copying it
type Translate struct {
	Object Shape
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so it appears moved by offset
func NewTranslate(object Shape, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit moves the ray into object space, then moves the hit point back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	offsetRay := core.NewRayAtTime(ray.Origin.Sub(t.Offset), ray.Direction, ray.Time)

	if !t.Object.Hit(offsetRay, rayT, sampler, rec) {
		return false
	}

	rec.Point = rec.Point.Add(t.Offset)
	return true
}

// BoundingBox returns the translated box of the wrapped shape
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// RotateY rotates a shape about the Y axis through the origin
type RotateY struct {
	Object   Shape
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees, counter-clockwise looking down -Y
func NewRotateY(object Shape, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	inf := math.Inf(1)
	lo := core.NewVec3(inf, inf, inf)
	hi := core.NewVec3(-inf, -inf, -inf)
	for _, corner := range object.BoundingBox().Corners() {
		p := r.toWorld(corner)
		for axis := 0; axis < 3; axis++ {
			lo[axis] = math.Min(lo[axis], p[axis])
			hi[axis] = math.Max(hi[axis], p[axis])
		}
	}
	r.bbox = core.NewAABBFromPoints(lo, hi)

	return r
}

// toObject applies the inverse rotation
func (r *RotateY) toObject(p core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*p[0]-r.sinTheta*p[2],
		p[1],
		r.sinTheta*p[0]+r.cosTheta*p[2],
	)
}

// toWorld applies the forward rotation
func (r *RotateY) toWorld(p core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*p[0]+r.sinTheta*p[2],
		p[1],
		-r.sinTheta*p[0]+r.cosTheta*p[2],
	)
}

// Hit rotates the ray into object space and the hit back into world space
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	if !r.Object.Hit(rotated, rayT, sampler, rec) {
		return false
	}

	rec.Point = r.toWorld(rec.Point)
	rec.Normal = r.toWorld(rec.Normal)
	return true
}

// BoundingBox returns the box around the eight rotated corners
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}
