package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// SceneData is the result of loading a scene file
type SceneData struct {
	Name   string
	Camera renderer.CameraConfig
	Shapes []geometry.Shape
}

// vector is a YAML sequence of three numbers
type vector []float64

func (v vector) vec3(field string) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("%s: expected 3 components, got %d", field, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func vectorOf(v core.Vec3) vector {
	return vector{v[0], v[1], v[2]}
}

type sceneFile struct {
	Name       string                  `yaml:"name"`
	Camera     cameraSpec              `yaml:"camera"`
	Background *backgroundSpec         `yaml:"background"`
	Textures   map[string]textureSpec  `yaml:"textures"`
	Materials  map[string]materialSpec `yaml:"materials"`
	Shapes     []shapeSpec             `yaml:"shapes"`
}

type cameraSpec struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	SamplesPerPixel int     `yaml:"samples_per_pixel"`
	MaxDepth        int     `yaml:"max_depth"`
	VFov            float64 `yaml:"vfov"`
	LookFrom        vector  `yaml:"look_from"`
	LookAt          vector  `yaml:"look_at"`
	Up              vector  `yaml:"up"`
	DefocusAngle    float64 `yaml:"defocus_angle"`
	FocusDistance   float64 `yaml:"focus_distance"`
}

type backgroundSpec struct {
	Color  vector `yaml:"color"`
	Top    vector `yaml:"top"`
	Bottom vector `yaml:"bottom"`
}

type textureSpec struct {
	Type  string  `yaml:"type"`
	Color vector  `yaml:"color"`
	Even  vector  `yaml:"even"`
	Odd   vector  `yaml:"odd"`
	Scale float64 `yaml:"scale"`
	Path  string  `yaml:"path"`
	Seed  int64   `yaml:"seed"`
}

type materialSpec struct {
	Type            string   `yaml:"type"`
	Albedo          vector   `yaml:"albedo"`
	Texture         string   `yaml:"texture"`
	Fuzz            float64  `yaml:"fuzz"`
	RefractiveIndex float64  `yaml:"refractive_index"`
	Emission        vector   `yaml:"emission"`
	Materials       []string `yaml:"materials"` // mix: blended pair, layered: outer then inner
	Ratio           float64  `yaml:"ratio"`
}

type shapeSpec struct {
	Type     string `yaml:"type"`
	Material string `yaml:"material"`

	// sphere
	Center  vector  `yaml:"center"`
	Center2 vector  `yaml:"center2"`
	Radius  float64 `yaml:"radius"`

	// quad
	Corner vector `yaml:"corner"`
	U      vector `yaml:"u"`
	V      vector `yaml:"v"`

	// triangle
	Vertices []vector `yaml:"vertices"`

	// box
	Min vector `yaml:"min"`
	Max vector `yaml:"max"`

	// medium
	Boundary *shapeSpec `yaml:"boundary"`
	Density  float64    `yaml:"density"`
	Color    vector     `yaml:"color"`
	Texture  string     `yaml:"texture"`

	// mesh
	Path string `yaml:"path"`

	RotateY   float64 `yaml:"rotate_y"`
	Translate vector  `yaml:"translate"`
}

// LoadSceneFile reads a YAML scene description. Relative texture and mesh
// paths are resolved against the scene file's directory.
func LoadSceneFile(path string) (*SceneData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("while reading scene file: %w", err)
	}

	scene, err := ParseScene(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("while loading scene %s: %w", path, err)
	}
	if scene.Name == "" {
		scene.Name = filepath.Base(path)
	}
	return scene, nil
}

// ParseScene builds a scene from YAML. baseDir anchors relative file paths.
func ParseScene(data []byte, baseDir string) (*SceneData, error) {
	defaults := renderer.DefaultCameraConfig()
	file := sceneFile{
		Camera: cameraSpec{
			Width:           defaults.Width,
			Height:          defaults.Height,
			SamplesPerPixel: defaults.SamplesPerPixel,
			MaxDepth:        defaults.MaxDepth,
			VFov:            defaults.VFov,
			LookFrom:        vectorOf(defaults.LookFrom),
			LookAt:          vectorOf(defaults.LookAt),
			Up:              vectorOf(defaults.Up),
			DefocusAngle:    defaults.DefocusAngle,
			FocusDistance:   defaults.FocusDistance,
		},
	}
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("while parsing YAML: %w", err)
	}

	camera, err := file.Camera.config(defaults.Background)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	if file.Background != nil {
		camera.Background, err = file.Background.background()
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
	}
	if err := camera.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	b := &sceneBuilder{
		file:      &file,
		baseDir:   baseDir,
		textures:  make(map[string]material.Texture),
		materials: make(map[string]material.Material),
		resolving: make(map[string]bool),
	}

	shapes := make([]geometry.Shape, 0, len(file.Shapes))
	for i := range file.Shapes {
		shape, err := b.shape(&file.Shapes[i], nil)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		shapes = append(shapes, shape)
	}

	return &SceneData{Name: file.Name, Camera: camera, Shapes: shapes}, nil
}

func (c cameraSpec) config(bg integrator.Background) (renderer.CameraConfig, error) {
	lookFrom, err := c.LookFrom.vec3("look_from")
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	lookAt, err := c.LookAt.vec3("look_at")
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	up, err := c.Up.vec3("up")
	if err != nil {
		return renderer.CameraConfig{}, err
	}
	return renderer.CameraConfig{
		Width:           c.Width,
		Height:          c.Height,
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
		VFov:            c.VFov,
		LookFrom:        lookFrom,
		LookAt:          lookAt,
		Up:              up,
		DefocusAngle:    c.DefocusAngle,
		FocusDistance:   c.FocusDistance,
		Background:      bg,
	}, nil
}

func (s backgroundSpec) background() (integrator.Background, error) {
	if s.Color != nil {
		color, err := s.Color.vec3("color")
		if err != nil {
			return integrator.Background{}, err
		}
		return integrator.SolidBackground(color), nil
	}
	top, err := s.Top.vec3("top")
	if err != nil {
		return integrator.Background{}, err
	}
	bottom, err := s.Bottom.vec3("bottom")
	if err != nil {
		return integrator.Background{}, err
	}
	return integrator.Background{Top: top, Bottom: bottom}, nil
}

// sceneBuilder resolves named textures and materials on first use
type sceneBuilder struct {
	file      *sceneFile
	baseDir   string
	textures  map[string]material.Texture
	materials map[string]material.Material
	resolving map[string]bool
}

func (b *sceneBuilder) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.baseDir, path)
}

func (b *sceneBuilder) texture(name string) (material.Texture, error) {
	if tex, ok := b.textures[name]; ok {
		return tex, nil
	}
	spec, ok := b.file.Textures[name]
	if !ok {
		return nil, fmt.Errorf("unknown texture %q", name)
	}

	var tex material.Texture
	switch spec.Type {
	case "solid":
		color, err := spec.Color.vec3("color")
		if err != nil {
			return nil, err
		}
		tex = material.NewSolidColor(color)
	case "checker":
		even, err := spec.Even.vec3("even")
		if err != nil {
			return nil, err
		}
		odd, err := spec.Odd.vec3("odd")
		if err != nil {
			return nil, err
		}
		if !(spec.Scale > 0) {
			return nil, fmt.Errorf("texture %q: checker scale must be positive", name)
		}
		tex = material.NewCheckerColors(spec.Scale, even, odd)
	case "image":
		img, err := LoadImageTexture(b.resolvePath(spec.Path))
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		tex = img
	case "noise":
		scale := spec.Scale
		if scale == 0 {
			scale = 1
		}
		tex = material.NewNoiseTexture(core.NewSeededSampler(spec.Seed), scale)
	default:
		return nil, fmt.Errorf("texture %q: unknown type %q", name, spec.Type)
	}

	b.textures[name] = tex
	return tex, nil
}

// albedo returns the named texture if set, otherwise a solid color
func (b *sceneBuilder) albedo(spec materialSpec, field string, color vector) (material.Texture, error) {
	if spec.Texture != "" {
		return b.texture(spec.Texture)
	}
	c, err := color.vec3(field)
	if err != nil {
		return nil, err
	}
	return material.NewSolidColor(c), nil
}

func (b *sceneBuilder) material(name string) (material.Material, error) {
	if mat, ok := b.materials[name]; ok {
		return mat, nil
	}
	spec, ok := b.file.Materials[name]
	if !ok {
		return nil, fmt.Errorf("unknown material %q", name)
	}
	if b.resolving[name] {
		return nil, fmt.Errorf("material %q refers to itself", name)
	}
	b.resolving[name] = true
	defer delete(b.resolving, name)

	mat, err := b.buildMaterial(spec)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", name, err)
	}
	b.materials[name] = mat
	return mat, nil
}

func (b *sceneBuilder) buildMaterial(spec materialSpec) (material.Material, error) {
	switch spec.Type {
	case "lambertian":
		tex, err := b.albedo(spec, "albedo", spec.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedLambertian(tex), nil
	case "metal":
		albedo, err := spec.Albedo.vec3("albedo")
		if err != nil {
			return nil, err
		}
		return material.NewMetal(albedo, spec.Fuzz), nil
	case "dielectric":
		if !(spec.RefractiveIndex > 0) {
			return nil, fmt.Errorf("refractive_index must be positive")
		}
		return material.NewDielectric(spec.RefractiveIndex), nil
	case "diffuse_light":
		tex, err := b.albedo(spec, "emission", spec.Emission)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedDiffuseLight(tex), nil
	case "isotropic":
		tex, err := b.albedo(spec, "albedo", spec.Albedo)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedIsotropic(tex), nil
	case "mix", "layered":
		if len(spec.Materials) != 2 {
			return nil, fmt.Errorf("%s needs 2 materials, got %d", spec.Type, len(spec.Materials))
		}
		first, err := b.material(spec.Materials[0])
		if err != nil {
			return nil, err
		}
		second, err := b.material(spec.Materials[1])
		if err != nil {
			return nil, err
		}
		if spec.Type == "mix" {
			return material.NewMix(first, second, spec.Ratio), nil
		}
		return material.NewLayered(first, second), nil
	default:
		return nil, fmt.Errorf("unknown type %q", spec.Type)
	}
}

// boundaryMaterial is used by medium boundaries that name no material.
// Rays never scatter off the boundary itself.
var boundaryMaterial = material.NewIsotropic(core.NewVec3(1, 1, 1))

// shape builds a shape and applies rotate_y then translate. fallback is used
// when the spec names no material; nil makes a material mandatory.
func (b *sceneBuilder) shape(spec *shapeSpec, fallback material.Material) (geometry.Shape, error) {
	var shape geometry.Shape
	var err error
	if spec.Type == "medium" {
		shape, err = b.medium(spec)
	} else {
		mat := fallback
		if spec.Material != "" || fallback == nil {
			mat, err = b.material(spec.Material)
		}
		if err != nil {
			return nil, err
		}
		shape, err = baseShape(spec, mat, b.resolvePath)
	}
	if err != nil {
		return nil, err
	}

	if spec.RotateY != 0 {
		shape = geometry.NewRotateY(shape, spec.RotateY)
	}
	if spec.Translate != nil {
		offset, err := spec.Translate.vec3("translate")
		if err != nil {
			return nil, err
		}
		shape = geometry.NewTranslate(shape, offset)
	}
	return shape, nil
}

func baseShape(spec *shapeSpec, mat material.Material, resolvePath func(string) string) (geometry.Shape, error) {
	var err error
	switch spec.Type {
	case "sphere":
		center, err := spec.Center.vec3("center")
		if err != nil {
			return nil, err
		}
		if spec.Radius < 0 {
			return nil, fmt.Errorf("sphere radius must not be negative, got %v", spec.Radius)
		}
		if spec.Center2 != nil {
			center2, err := spec.Center2.vec3("center2")
			if err != nil {
				return nil, err
			}
			return geometry.NewMovingSphere(center, center2, spec.Radius, mat), nil
		}
		return geometry.NewSphere(center, spec.Radius, mat), nil
	case "quad":
		corner, err := spec.Corner.vec3("corner")
		if err != nil {
			return nil, err
		}
		u, err := spec.U.vec3("u")
		if err != nil {
			return nil, err
		}
		v, err := spec.V.vec3("v")
		if err != nil {
			return nil, err
		}
		if core.NearZero(u.Cross(v)) {
			return nil, fmt.Errorf("quad edges %v and %v are parallel", u, v)
		}
		return geometry.NewQuad(corner, u, v, mat), nil
	case "triangle":
		if len(spec.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(spec.Vertices))
		}
		var vs [3]core.Vec3
		for i, v := range spec.Vertices {
			if vs[i], err = v.vec3(fmt.Sprintf("vertices[%d]", i)); err != nil {
				return nil, err
			}
		}
		return geometry.NewTriangle(vs[0], vs[1], vs[2], mat), nil
	case "box":
		lo, err := spec.Min.vec3("min")
		if err != nil {
			return nil, err
		}
		hi, err := spec.Max.vec3("max")
		if err != nil {
			return nil, err
		}
		return geometry.NewBox(lo, hi, mat), nil
	case "mesh":
		data, err := LoadPLY(resolvePath(spec.Path))
		if err != nil {
			return nil, err
		}
		triangles := data.Triangles(mat)
		if len(triangles) == 0 {
			return nil, fmt.Errorf("mesh %s has no triangles", spec.Path)
		}
		return geometry.NewBVH(triangles), nil
	default:
		return nil, fmt.Errorf("unknown shape type %q", spec.Type)
	}
}

func (b *sceneBuilder) medium(spec *shapeSpec) (geometry.Shape, error) {
	if spec.Boundary == nil {
		return nil, fmt.Errorf("medium needs a boundary")
	}
	if spec.Boundary.Type == "medium" {
		return nil, fmt.Errorf("medium boundary cannot itself be a medium")
	}
	if !(spec.Density >= 0) {
		return nil, fmt.Errorf("medium density must not be negative, got %v", spec.Density)
	}

	boundary, err := b.shape(spec.Boundary, boundaryMaterial)
	if err != nil {
		return nil, fmt.Errorf("boundary: %w", err)
	}

	if spec.Texture != "" {
		tex, err := b.texture(spec.Texture)
		if err != nil {
			return nil, err
		}
		return geometry.NewTexturedConstantMedium(boundary, spec.Density, tex), nil
	}
	color, err := spec.Color.vec3("color")
	if err != nil {
		return nil, err
	}
	return geometry.NewConstantMedium(boundary, spec.Density, color), nil
}
