package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere whose center may move linearly over the shutter interval
type Sphere struct {
	Center   core.Ray // Center at time 0 and its displacement per unit time
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a stationary sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return NewMovingSphere(center, center, radius, mat)
}

// NewMovingSphere creates a sphere whose center travels from center1 at time 0 to center2 at time 1
func NewMovingSphere(center1, center2 core.Vec3, radius float64, mat material.Material) *Sphere {
	if radius < 0 {
		panic("geometry: sphere radius must not be negative")
	}

	rvec := core.NewVec3(radius, radius, radius)
	box1 := core.NewAABBFromPoints(center1.Sub(rvec), center1.Add(rvec))
	box2 := core.NewAABBFromPoints(center2.Sub(rvec), center2.Add(rvec))

	return &Sphere{
		Center:   core.NewRay(center1, center2.Sub(center1)),
		Radius:   radius,
		Material: mat,
		bbox:     box1.Merge(box2),
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, rec *material.HitRecord) bool {
	center := s.Center.At(ray.Time)
	oc := center.Sub(ray.Origin)

	// Quadratic with b = -2h
	a := core.LengthSquared(ray.Direction)
	h := ray.Direction.Dot(oc)
	c := core.LengthSquared(oc) - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)

	// Nearest root in range
	root := (h - sqrtD) / a
	if !rayT.Contains(root) {
		root = (h + sqrtD) / a
		if !rayT.Contains(root) {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	outwardNormal := rec.Point.Sub(center).Mul(1.0 / s.Radius)
	rec.SetFaceNormal(ray, outwardNormal)
	rec.UV = sphereUV(outwardNormal)
	rec.Material = s.Material

	return true
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u wraps around the Y axis starting from X=-1; v runs from Y=-1 to Y=+1.
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(-p[1])
	phi := math.Atan2(-p[2], p[0]) + math.Pi

	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the box swept by the sphere over the shutter interval
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}
