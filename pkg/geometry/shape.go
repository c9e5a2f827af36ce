package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit fills rec and returns true only for an intersection with t in rayT;
// on a miss rec is left untouched. Shapes are immutable once built.
type Shape interface {
	Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool
	BoundingBox() core.AABB
}
