package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// World is a flat list of shapes tested by brute force
type World struct {
	Shapes []Shape
	bbox   core.AABB
}

// NewWorld creates a world containing shapes
func NewWorld(shapes ...Shape) *World {
	w := &World{bbox: core.EmptyAABB}
	for _, s := range shapes {
		w.Add(s)
	}
	return w
}

// Add appends a shape and grows the bounding box
func (w *World) Add(shape Shape) {
	w.Shapes = append(w.Shapes, shape)
	w.bbox = w.bbox.Merge(shape.BoundingBox())
}

// Hit returns the closest intersection among all shapes
func (w *World) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := rayT.Max

	for _, shape := range w.Shapes {
		if shape.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), sampler, rec) {
			hitAnything = true
			closestSoFar = rec.T
		}
	}

	return hitAnything
}

// BoundingBox returns the union of every shape's box
func (w *World) BoundingBox() core.AABB {
	return w.bbox
}
