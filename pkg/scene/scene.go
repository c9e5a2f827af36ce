package scene

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	Camera renderer.CameraConfig
	Shapes []geometry.Shape // Objects in the scene
	BVH    *geometry.BVH    // Acceleration structure, set by Build

	Logger core.Logger
}

// New creates an empty scene viewed through the given camera
func New(name string, camera renderer.CameraConfig) *Scene {
	return &Scene{
		Name:   name,
		Camera: camera,
		Shapes: make([]geometry.Shape, 0),
		Logger: core.NopLogger{},
	}
}

// Add appends shapes to the scene. Shapes added after Build are not
// visible until Build is called again.
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// Build freezes the current shapes into a BVH. The scene must not be
// modified while a render using the BVH is in progress.
func (s *Scene) Build(ctx context.Context) error {
	tracer := otel.Tracer("go-pathtracer/scene")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Scene.Build")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("while building scene %q: %w", s.Name, err)
	}

	s.BVH = geometry.NewBVH(s.Shapes)

	stats := s.BVH.Stats()
	span.SetAttributes(
		attribute.String("scene", s.Name),
		attribute.Int("primitives", stats.Primitives),
		attribute.Int("nodes", stats.Nodes),
		attribute.Int("max_depth", stats.MaxDepth),
	)
	if s.Logger != nil {
		s.Logger.Printf("Built BVH for %q: %d primitives, %d nodes, depth %d\n",
			s.Name, stats.Primitives, stats.Nodes, stats.MaxDepth)
	}
	return nil
}

// World returns the structure rays should be traced against: the BVH if the
// scene has been built, otherwise a linear list of its shapes.
func (s *Scene) World() geometry.Shape {
	if s.BVH != nil {
		return s.BVH
	}
	return geometry.NewWorld(s.Shapes...)
}

// PrimitiveCount returns the number of top-level shapes. Meshes and boxes
// count as one.
func (s *Scene) PrimitiveCount() int {
	return len(s.Shapes)
}

// NewGroundQuad creates a large horizontal quad centered at the given point
// with its normal pointing up (0,1,0).
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X()-size/2, center.Y(), center.Z()-size/2)
	// u × v = (0, size², 0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}
