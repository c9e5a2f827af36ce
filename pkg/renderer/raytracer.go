package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// DefaultTileSize is the edge length of square render tiles
const DefaultTileSize = 32

// Options controls how a render is scheduled. None of them change pixel
// values except Seed.
type Options struct {
	Seed       int64  // Master seed; each tile derives its own stream from it
	NumWorkers int    // Number of parallel workers (0 = use CPU count)
	TileSize   int    // Edge length of render tiles (0 = DefaultTileSize)
	SceneName  string // Used to tag metrics

	Logger core.Logger

	// Progress, if set, is called after every tile with the number of
	// completed tiles. Calls are serialized.
	Progress func(done, total int)
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Seed:       42,
		NumWorkers: 0,
		TileSize:   DefaultTileSize,
		Logger:     NewDefaultLogger(),
	}
}

// Raytracer renders a frozen world through a camera
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	integrator integrator.Integrator
	options    Options
}

// NewRaytracer creates a new raytracer. It panics if config is invalid.
func NewRaytracer(world geometry.Shape, config CameraConfig, options Options) *Raytracer {
	if options.Logger == nil {
		options.Logger = core.NopLogger{}
	}
	if options.TileSize <= 0 {
		options.TileSize = DefaultTileSize
	}

	return &Raytracer{
		world:      world,
		camera:     NewCamera(config),
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth, config.Background),
		options:    options,
	}
}

// Camera returns the camera used for primary rays
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Render renders the full image. It returns early with an error wrapping
// ctx.Err() if ctx is cancelled; tiles are never interrupted midway.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	config := rt.camera.Config()

	tracer := otel.Tracer("go-pathtracer/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Raytracer.Render")
	defer span.End()
	span.SetAttributes(
		attribute.Int("width", config.Width),
		attribute.Int("height", config.Height),
		attribute.Int("samples_per_pixel", config.SamplesPerPixel),
	)

	ctx = withSceneTag(ctx, rt.options.SceneName)

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))
	tiles := NewTileGrid(config.Width, config.Height, rt.options.TileSize, rt.options.Seed)
	pool := NewWorkerPool(rt.options.NumWorkers)

	rt.options.Logger.Printf("Rendering %dx%d, %d samples/pixel, depth %d: %d tiles on %d workers\n",
		config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth, len(tiles), pool.NumWorkers())

	var mu sync.Mutex
	total := RenderStats{SamplesPerPixel: config.SamplesPerPixel}

	err := pool.Run(ctx, tiles, func(ctx context.Context, tile *Tile) error {
		tileStats := rt.renderTile(tile, img)
		recordTile(ctx, tileStats)

		mu.Lock()
		defer mu.Unlock()
		total.merge(tileStats)
		if rt.options.Progress != nil {
			rt.options.Progress(total.TilesRendered, len(tiles))
		}
		return nil
	})
	total.Duration = time.Since(start)
	if err != nil {
		return nil, total, fmt.Errorf("while rendering: %w", err)
	}

	recordRender(ctx, total)
	rt.options.Logger.Printf("Rendered %d samples in %v\n", total.TotalSamples, total.Duration)
	if total.NaNSamples > 0 {
		rt.options.Logger.Printf("Discarded %d NaN sample channels\n", total.NaNSamples)
	}

	return img, total, nil
}

// renderTile fills the tile's pixels of img. Tiles never overlap, so
// concurrent calls write disjoint parts of the buffer.
func (rt *Raytracer) renderTile(tile *Tile, img *image.RGBA) RenderStats {
	spp := rt.camera.config.SamplesPerPixel
	stats := RenderStats{
		TotalPixels:     tile.Bounds.Dx() * tile.Bounds.Dy(),
		SamplesPerPixel: spp,
	}

	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			var accum core.Vec3
			for s := 0; s < spp; s++ {
				ray := rt.camera.GetRay(i, j, tile.Sampler)
				sample, dropped := dropNaN(rt.integrator.RayColor(ray, rt.world, tile.Sampler))
				accum = accum.Add(sample)
				stats.NaNSamples += dropped
			}
			stats.TotalSamples += spp

			img.SetRGBA(i, j, ToRGBA(accum.Mul(1.0/float64(spp))))
		}
	}

	return stats
}

// dropNaN zeroes NaN channels and reports how many there were
func dropNaN(c core.Vec3) (core.Vec3, int) {
	dropped := 0
	for i := range c {
		if math.IsNaN(c[i]) {
			c[i] = 0
			dropped++
		}
	}
	return c, dropped
}

var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToRGBA converts a linear color to an 8-bit sRGB-ish pixel with gamma 2
func ToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(256 * intensity.Clamp(linearToGamma(c[0]))),
		G: uint8(256 * intensity.Clamp(linearToGamma(c[1]))),
		B: uint8(256 * intensity.Clamp(linearToGamma(c[2]))),
		A: 255,
	}
}
