package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// CameraConfig contains all camera and sampling parameters for a render
type CameraConfig struct {
	Width           int     // Image width in pixels
	Height          int     // Image height in pixels
	SamplesPerPixel int     // Random samples averaged into each pixel
	MaxDepth        int     // Maximum number of ray bounces
	VFov            float64 // Vertical field of view in degrees

	LookFrom core.Vec3 // Camera position
	LookAt   core.Vec3 // Point the camera looks at
	Up       core.Vec3 // Camera-relative "up" direction

	DefocusAngle  float64 // Variation angle of rays through each pixel, in degrees (0 = pinhole)
	FocusDistance float64 // Distance from LookFrom to the plane of perfect focus

	Background integrator.Background // Radiance of rays that escape the scene
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDistance:   10,
		Background:      integrator.SkyBackground(),
	}
}

// Validate reports the first invalid field, if any
func (c CameraConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	case !(c.VFov > 0 && c.VFov < 180):
		return fmt.Errorf("vertical field of view must be in (0, 180) degrees, got %v", c.VFov)
	case !(c.FocusDistance > 0):
		return fmt.Errorf("focus distance must be positive, got %v", c.FocusDistance)
	case !(c.DefocusAngle >= 0):
		return fmt.Errorf("defocus angle must not be negative, got %v", c.DefocusAngle)
	case c.LookFrom == c.LookAt:
		return fmt.Errorf("look-from and look-at are both %v", c.LookFrom)
	case core.NearZero(c.Up.Cross(c.LookFrom.Sub(c.LookAt))):
		return fmt.Errorf("up vector %v is parallel to the view direction", c.Up)
	}
	return nil
}

// Camera generates primary rays for pixel coordinates.
// Pixel (0,0) is the top-left corner of the image.
type Camera struct {
	config       CameraConfig
	center       core.Vec3 // Camera center
	pixel00      core.Vec3 // Location of pixel (0,0)
	pixelDeltaU  core.Vec3 // Offset to pixel to the right
	pixelDeltaV  core.Vec3 // Offset to pixel below
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera creates a camera. It panics if the configuration is invalid.
func NewCamera(config CameraConfig) *Camera {
	if err := config.Validate(); err != nil {
		panic("renderer: invalid camera config: " + err.Error())
	}

	center := config.LookFrom

	// Viewport dimensions at the focus plane
	h := math.Tan(core.DegreesToRadians(config.VFov) / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * float64(config.Width) / float64(config.Height)

	// Orthonormal camera basis
	w := config.LookFrom.Sub(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Mul(viewportWidth)
	viewportV := v.Mul(-viewportHeight)

	pixelDeltaU := viewportU.Mul(1.0 / float64(config.Width))
	pixelDeltaV := viewportV.Mul(1.0 / float64(config.Height))

	viewportUpperLeft := center.
		Sub(w.Mul(config.FocusDistance)).
		Sub(viewportU.Mul(0.5)).
		Sub(viewportV.Mul(0.5))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Mul(0.5))

	defocusRadius := config.FocusDistance * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:       config,
		center:       center,
		pixel00:      pixel00,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		defocusDiskU: u.Mul(defocusRadius),
		defocusDiskV: v.Mul(defocusRadius),
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay returns a jittered ray through pixel (i, j), starting on the defocus
// disk and cast at a random time in [0,1)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	pixelSample := c.pixelPoint(float64(i)+offset[0]-0.5, float64(j)+offset[1]-0.5)

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRayAtTime(origin, pixelSample.Sub(origin), sampler.Get1D())
}

// PixelCenterRay returns the ray from the camera center through the middle of pixel (i, j)
func (c *Camera) PixelCenterRay(i, j int) core.Ray {
	return core.NewRay(c.center, c.pixelPoint(float64(i), float64(j)).Sub(c.center))
}

func (c *Camera) pixelPoint(x, y float64) core.Vec3 {
	return c.pixel00.Add(c.pixelDeltaU.Mul(x)).Add(c.pixelDeltaV.Mul(y))
}

func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Mul(p[0])).Add(c.defocusDiskV.Mul(p[1]))
}
