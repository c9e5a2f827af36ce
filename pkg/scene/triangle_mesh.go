package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry
func NewTriangleMeshScene() *Scene {
	camera := renderer.CameraConfig{
		Width:           600,
		Height:          338,
		SamplesPerPixel: 150,
		MaxDepth:        40,
		VFov:            45.0,
		LookFrom:        core.NewVec3(0, 2, 6),
		LookAt:          core.NewVec3(0, 1, 0),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0.3,
		FocusDistance:   6.3,
		Background:      integrator.SkyBackground(),
	}

	s := New("triangle-mesh", camera)

	// Warm overhead light and a cool fill light
	s.Add(
		geometry.NewSphere(core.NewVec3(2, 6, 3), 1.5, material.NewDiffuseLight(core.NewVec3(12.0, 11.0, 10.0))),
		geometry.NewSphere(core.NewVec3(-3, 4, 2), 0.8, material.NewDiffuseLight(core.NewVec3(6.0, 7.0, 8.0))),
	)

	s.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 100, material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))))

	redMetal := material.NewMetal(core.NewVec3(0.8, 0.2, 0.2), 0.1)
	blueLambertian := material.NewLambertian(core.NewVec3(0.2, 0.3, 0.8))
	goldMetal := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.05)

	s.Add(
		placeMesh(boxMesh(core.NewVec3(1, 1, 1)), redMetal, 30, core.NewVec3(-2, 0.5, 0)),
		placeMesh(pyramidMesh(1.5, 2.0), blueLambertian, 45, core.NewVec3(0, 1, 0)),
		placeMesh(icosahedronMesh(0.8), goldMetal, 60, core.NewVec3(2, 0.8, 0)),
	)

	return s
}

// placeMesh builds a BVH over a mesh centered at the origin, turns it about
// the Y axis and moves it to center.
func placeMesh(mesh *loaders.PLYData, mat material.Material, degrees float64, center core.Vec3) geometry.Shape {
	var shape geometry.Shape = geometry.NewBVH(mesh.Triangles(mat))
	shape = geometry.NewRotateY(shape, degrees)
	return geometry.NewTranslate(shape, center)
}

// boxMesh creates a box of the given size as 12 outward-facing triangles
func boxMesh(size core.Vec3) *loaders.PLYData {
	h := size.Mul(0.5)
	return &loaders.PLYData{
		Vertices: []core.Vec3{
			{-h[0], -h[1], -h[2]}, // 0: left-bottom-back
			{+h[0], -h[1], -h[2]}, // 1: right-bottom-back
			{+h[0], +h[1], -h[2]}, // 2: right-top-back
			{-h[0], +h[1], -h[2]}, // 3: left-top-back
			{-h[0], -h[1], +h[2]}, // 4: left-bottom-front
			{+h[0], -h[1], +h[2]}, // 5: right-bottom-front
			{+h[0], +h[1], +h[2]}, // 6: right-top-front
			{-h[0], +h[1], +h[2]}, // 7: left-top-front
		},
		Faces: []int{
			0, 2, 1, 0, 3, 2, // back (Z-)
			4, 5, 6, 4, 6, 7, // front (Z+)
			0, 4, 7, 0, 7, 3, // left (X-)
			1, 2, 6, 1, 6, 5, // right (X+)
			0, 1, 5, 0, 5, 4, // bottom (Y-)
			3, 7, 6, 3, 6, 2, // top (Y+)
		},
	}
}

// pyramidMesh creates a square pyramid centered at the origin
func pyramidMesh(baseSize, height float64) *loaders.PLYData {
	b := baseSize * 0.5
	h := height * 0.5
	return &loaders.PLYData{
		Vertices: []core.Vec3{
			{-b, -h, -b}, // 0: left-back
			{+b, -h, -b}, // 1: right-back
			{+b, -h, +b}, // 2: right-front
			{-b, -h, +b}, // 3: left-front
			{0, +h, 0},   // 4: apex
		},
		Faces: []int{
			0, 1, 2, 0, 2, 3, // base
			0, 4, 1, // back
			1, 4, 2, // right
			2, 4, 3, // front
			3, 4, 0, // left
		},
	}
}

// icosahedronMesh creates a regular icosahedron with the given circumradius
func icosahedronMesh(radius float64) *loaders.PLYData {
	phi := (1.0 + math.Sqrt(5)) / 2.0
	scale := radius / math.Sqrt(1+phi*phi)

	vertices := []core.Vec3{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	for i := range vertices {
		vertices[i] = vertices[i].Mul(scale)
	}

	return &loaders.PLYData{
		Vertices: vertices,
		Faces: []int{
			// 5 faces around point 0
			0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
			// 5 adjacent faces
			1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
			// 5 faces around point 3
			3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
			// 5 adjacent faces
			4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
		},
	}
}
