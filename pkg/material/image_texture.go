package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

var unitInterval = core.NewInterval(0, 1)

// ImageTexture provides color from a 2D raster
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		panic("material: image texture dimensions do not match pixel data")
	}
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Value samples the texture using nearest-neighbor filtering.
// UV is clamped to [0,1]; V=0 is the bottom row of the image.
func (t *ImageTexture) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	u := unitInterval.Clamp(uv[0])
	v := 1.0 - unitInterval.Clamp(uv[1])

	x := int(u * float64(t.Width-1))
	y := int(v * float64(t.Height-1))

	return t.Pixels[y*t.Width+x]
}
