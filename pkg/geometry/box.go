package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box is an axis-aligned box made of six quads sharing one material
type Box struct {
	Min, Max core.Vec3
	Material material.Material
	sides    *World
}

// NewBox creates the box spanned by two opposite corners given in any order
func NewBox(a, b core.Vec3, mat material.Material) *Box {
	lo := core.NewVec3(math.Min(a[0], b[0]), math.Min(a[1], b[1]), math.Min(a[2], b[2]))
	hi := core.NewVec3(math.Max(a[0], b[0]), math.Max(a[1], b[1]), math.Max(a[2], b[2]))

	dx := core.NewVec3(hi[0]-lo[0], 0, 0)
	dy := core.NewVec3(0, hi[1]-lo[1], 0)
	dz := core.NewVec3(0, 0, hi[2]-lo[2])

	sides := NewWorld(
		NewQuad(core.NewVec3(lo[0], lo[1], hi[2]), dx, dy, mat),         // front
		NewQuad(core.NewVec3(hi[0], lo[1], hi[2]), dz.Mul(-1), dy, mat), // right
		NewQuad(core.NewVec3(hi[0], lo[1], lo[2]), dx.Mul(-1), dy, mat), // back
		NewQuad(core.NewVec3(lo[0], lo[1], lo[2]), dz, dy, mat),         // left
		NewQuad(core.NewVec3(lo[0], hi[1], hi[2]), dx, dz.Mul(-1), mat), // top
		NewQuad(core.NewVec3(lo[0], lo[1], lo[2]), dx, dz, mat),         // bottom
	)

	return &Box{Min: lo, Max: hi, Material: mat, sides: sides}
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	return b.sides.Hit(ray, rayT, sampler, rec)
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.sides.BoundingBox()
}
