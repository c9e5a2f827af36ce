package scene

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func TestBuiltinScenesBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Create(name)
			if err != nil {
				t.Fatalf("Create(%q) error: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if err := s.Camera.Validate(); err != nil {
				t.Errorf("Invalid camera: %v", err)
			}
			if len(s.Shapes) == 0 {
				t.Fatal("Scene has no shapes")
			}

			if err := s.Build(context.Background()); err != nil {
				t.Fatalf("Build() error: %v", err)
			}
			if got := s.BVH.Stats().Primitives; got != s.PrimitiveCount() {
				t.Errorf("BVH holds %d primitives, scene has %d", got, s.PrimitiveCount())
			}
			if s.World() != geometry.Shape(s.BVH) {
				t.Error("World() should return the BVH after Build")
			}
		})
	}
}

func TestBuiltinScenesAreDeterministic(t *testing.T) {
	a, _ := Create("random-spheres")
	b, _ := Create("random-spheres")
	if len(a.Shapes) != len(b.Shapes) {
		t.Fatalf("Shape counts differ: %d vs %d", len(a.Shapes), len(b.Shapes))
	}
	for i := range a.Shapes {
		if a.Shapes[i].BoundingBox() != b.Shapes[i].BoundingBox() {
			t.Fatalf("Shape %d differs between instances", i)
		}
	}
}

func TestBuildCancelled(t *testing.T) {
	s := New("cancelled", renderer.DefaultCameraConfig())
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Build(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if s.BVH != nil {
		t.Error("BVH should not be built after cancellation")
	}
}

func TestWorldBeforeBuild(t *testing.T) {
	s := New("unbuilt", renderer.DefaultCameraConfig())
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -2), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	var rec material.HitRecord
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if !s.World().Hit(ray, core.NewInterval(0.001, math.Inf(1)), core.NewSeededSampler(1), &rec) {
		t.Fatal("Expected hit through unbuilt world")
	}
	if math.Abs(rec.T-1.5) > 1e-9 {
		t.Errorf("Expected t=1.5, got %v", rec.T)
	}
}

func TestGroundQuadFacesUp(t *testing.T) {
	ground := NewGroundQuad(core.NewVec3(1, 2, 3), 10, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	var rec material.HitRecord
	ray := core.NewRay(core.NewVec3(1, 5, 3), core.NewVec3(0, -1, 0))
	if !ground.Hit(ray, core.NewInterval(0.001, math.Inf(1)), core.NewSeededSampler(1), &rec) {
		t.Fatal("Expected hit on ground quad")
	}
	if !rec.FrontFace {
		t.Error("Ray from above should hit the front face")
	}
	if math.Abs(rec.Point.Y()-2) > 1e-9 {
		t.Errorf("Expected hit at y=2, got %v", rec.Point)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one-sphere.yaml")
	writeFile(t, path, `
camera:
  width: 8
  height: 8
  samples_per_pixel: 1
  look_from: [0, 0, 3]
  look_at: [0, 0, 0]
materials:
  m: {type: lambertian, albedo: [0.5, 0.5, 0.5]}
shapes:
  - {type: sphere, material: m, center: [0, 0, 0], radius: 1}
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Name != "one-sphere.yaml" {
		t.Errorf("Expected name from file, got %q", s.Name)
	}
	if s.PrimitiveCount() != 1 || s.Camera.Width != 8 {
		t.Errorf("Unexpected scene: %d shapes, width %d", s.PrimitiveCount(), s.Camera.Width)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing scene file")
	}
}

// A tiny render of each scene with real materials exercises the full pipeline
func TestBuiltinScenesRender(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping render in short mode")
	}
	for _, name := range []string{"cornell-smoke", "textures", "triangle-mesh"} {
		t.Run(name, func(t *testing.T) {
			s, _ := Create(name)
			if err := s.Build(context.Background()); err != nil {
				t.Fatal(err)
			}

			config := s.Camera
			config.Width, config.Height = 16, 9
			config.SamplesPerPixel = 2
			config.MaxDepth = 4

			rt := renderer.NewRaytracer(s.World(), config, renderer.Options{Seed: 1, NumWorkers: 2, TileSize: 8})
			img, stats, err := rt.Render(context.Background())
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 9 {
				t.Errorf("Unexpected image size %v", img.Bounds())
			}
			if stats.TotalSamples != 16*9*2 {
				t.Errorf("Expected %d samples, got %d", 16*9*2, stats.TotalSamples)
			}
		})
	}
}
