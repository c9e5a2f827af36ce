package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene() *Scene {
	camera := renderer.CameraConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 200,
		MaxDepth:        50,
		VFov:            40.0,                     // Narrower field of view for focus effect
		LookFrom:        core.NewVec3(0, 0.75, 2), // Higher and farther back
		LookAt:          core.NewVec3(0, 0.5, -1), // Center sphere
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    1.0,
		FocusDistance:   3.0,
		Background:      integrator.SkyBackground(),
	}

	s := New("default", camera)

	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Mul(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)
	airBubble := material.NewDielectric(1.0 / 1.5)

	// Glass coating over a red diffuse base
	coatedRed := material.NewLayered(glass, lambertianRed)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, coatedRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),
	)

	// Hollow glass sphere with a blue sphere inside
	s.Add(
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.24, airBubble),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue),
	)

	// Large but finite ground so the scene has proper bounds
	s.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, lambertianGreen))

	// Distant warm sun
	s.Add(geometry.NewSphere(core.NewVec3(30, 30.5, 15), 10, material.NewDiffuseLight(core.NewVec3(15.0, 14.0, 13.0))))

	return s
}
