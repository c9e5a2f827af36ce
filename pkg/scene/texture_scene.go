package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewTextureScene creates a scene demonstrating texture mapping on each
// primitive type, left to right.
func NewTextureScene() *Scene {
	camera := renderer.CameraConfig{
		Width:           800,
		Height:          450,
		SamplesPerPixel: 100,
		MaxDepth:        10,
		VFov:            50.0, // Wide enough to see all shapes
		LookFrom:        core.NewVec3(0, 2, 10),
		LookAt:          core.NewVec3(0, 1, 0),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0, // No DOF for texture clarity
		FocusDistance:   10,
		Background: integrator.Background{
			Top:    core.NewVec3(0.3, 0.4, 0.6), // subtle blue
			Bottom: core.NewVec3(0.2, 0.2, 0.2), // dim gray
		},
	}

	s := New("textures", camera)

	checkerboard := material.NewCheckerboardTexture(256, 256, 32,
		core.NewVec3(0.9, 0.9, 0.9), // White
		core.NewVec3(0.2, 0.2, 0.8), // Blue
	)
	redGreenGradient := material.NewGradientTexture(256, 256,
		core.NewVec3(1.0, 0.2, 0.2), // Red (top)
		core.NewVec3(0.2, 1.0, 0.2), // Green (bottom)
	)
	uvDebug := material.NewUVDebugTexture(256, 256)
	fineBrickPattern := material.NewCheckerboardTexture(512, 512, 16,
		core.NewVec3(0.7, 0.3, 0.1),  // Orange
		core.NewVec3(0.5, 0.2, 0.05), // Dark brown
	)
	solidChecker := material.NewCheckerColors(0.25,
		core.NewVec3(0.1, 0.1, 0.1),
		core.NewVec3(0.9, 0.8, 0.2),
	)
	marble := material.NewNoiseTexture(core.NewSeededSampler(7), 4)

	checkerMat := material.NewTexturedLambertian(checkerboard)
	gradientMat := material.NewTexturedLambertian(redGreenGradient)
	uvDebugMat := material.NewTexturedLambertian(uvDebug)
	brickMat := material.NewTexturedLambertian(fineBrickPattern)

	s.Add(
		// Sphere with UV checkerboard
		geometry.NewSphere(core.NewVec3(-6, 1, 0), 1.0, checkerMat),
		// Sphere with solid (3D) checker
		geometry.NewSphere(core.NewVec3(-3.5, 1, 0), 1.0, material.NewTexturedLambertian(solidChecker)),
		// Marble sphere
		geometry.NewSphere(core.NewVec3(-1, 1, 0), 1.0, material.NewTexturedLambertian(marble)),
	)

	// Box with brick pattern, turned to show two faces
	var box geometry.Shape = geometry.NewBox(core.NewVec3(-0.8, 0, -0.8), core.NewVec3(0.8, 1.6, 0.8), brickMat)
	box = geometry.NewRotateY(box, 30)
	s.Add(geometry.NewTranslate(box, core.NewVec3(1.5, 0, 0)))

	s.Add(
		// Quad with gradient (vertical, slightly rotated)
		geometry.NewQuad(core.NewVec3(3.5, 0, 0.2), core.NewVec3(1.5, 0, -0.3), core.NewVec3(0, 2, 0), gradientMat),
		// Triangle with UV debug
		geometry.NewTriangle(core.NewVec3(5.5, 0, 0), core.NewVec3(7, 0, 0), core.NewVec3(6.25, 2, 0), uvDebugMat),
		// Ground
		geometry.NewQuad(core.NewVec3(-10, 0, -5), core.NewVec3(0, 0, 15), core.NewVec3(20, 0, 0), brickMat),
	)

	// Area light
	s.Add(geometry.NewSphere(core.NewVec3(0, 8, 5), 2.0, material.NewDiffuseLight(core.NewVec3(20, 20, 20))))

	return s
}
